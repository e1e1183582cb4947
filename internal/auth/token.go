package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultCookieTTL is the session cookie lifetime when the token carries
// no usable expiry claim.
const DefaultCookieTTL = 24 * time.Hour

// CookieTTL returns how long the session cookie should live for the
// given token. The token's signature is NOT verified here — that is the
// backend's job on every API call — we only peek at the exp claim so the
// cookie never outlives the token itself.
//
// Returns fallback when the token has no parseable exp claim, the
// remaining validity clamped to fallback otherwise, and 0 when the token
// is already expired.
func CookieTTL(token string, fallback time.Duration) time.Duration {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return fallback
	}
	if claims.ExpiresAt == nil {
		return fallback
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return 0
	}
	if remaining > fallback {
		return fallback
	}
	return remaining
}
