package handler

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/tripterrior/tripterrior/internal/auth"
	"github.com/tripterrior/tripterrior/internal/middleware"
)

// AuthHandler bridges the external auth provider into a browser session.
// The provider redirects here with the JWT as a query parameter; we set
// it as a cookie and send the user home. No credential ever touches
// this server beyond that token.
type AuthHandler struct {
	templates *template.Template
	baseURL   string
	logger    *slog.Logger
}

func NewAuthHandler(templates *template.Template, baseURL string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		templates: templates,
		baseURL:   baseURL,
		logger:    logger,
	}
}

// SignInPage renders the sign-in entry page.
func (h *AuthHandler) SignInPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.templates, h.logger, "signin.html", nil)
}

// Bridge handles GET /api/auth?jwt=<token>. The cookie is deliberately
// not HttpOnly: the calendar island reads it for its own fetches.
func (h *AuthHandler) Bridge(w http.ResponseWriter, r *http.Request) {
	jwt := r.URL.Query().Get("jwt")
	if jwt == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "JWT token is missing"})
		return
	}

	ttl := auth.CookieTTL(jwt, auth.DefaultCookieTTL)
	if ttl <= 0 {
		h.logger.Warn("auth bridge called with expired token")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "JWT token is expired"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    jwt,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.baseURL+"/", http.StatusSeeOther)
}

// Logout clears the token cookie and returns to the sign-in page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:   middleware.TokenCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}
