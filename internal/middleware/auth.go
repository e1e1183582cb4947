package middleware

import (
	"net/http"

	"github.com/tripterrior/tripterrior/internal/auth"
)

// TokenCookieName is the cookie holding the bearer token. The name and
// the non-HttpOnly flag are part of the contract with the auth provider
// bridge, which sets it.
const TokenCookieName = "JWT"

// RequireToken checks for the token cookie and injects its value into
// the request context. Missing or empty cookie redirects to the sign-in
// page. HTMX-aware: partial requests get an HX-Redirect header instead
// of a 303.
//
// The token is not verified here; the backend rejects bad tokens on the
// first API call and that surfaces as a 401 handled by the page.
func RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(TokenCookieName)
		if err != nil || cookie.Value == "" {
			redirectToSignIn(w, r)
			return
		}

		ctx := auth.WithToken(r.Context(), cookie.Value)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func redirectToSignIn(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/signin")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}
