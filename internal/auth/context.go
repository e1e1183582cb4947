// Package auth carries the bearer token through request contexts.
//
// The token is established once by the auth bridge (cookie) and injected
// at the middleware boundary; everything downstream reads it from the
// context instead of reaching into ambient cookie storage. It is never
// mutated by request handling.
package auth

import "context"

type contextKey struct{}

// WithToken returns a context carrying the bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextKey{}, token)
}

// Token returns the bearer token from the context, or "" if absent.
func Token(ctx context.Context) string {
	tok, _ := ctx.Value(contextKey{}).(string)
	return tok
}

// HasToken reports whether a non-empty token is present in the context.
func HasToken(ctx context.Context) bool {
	return Token(ctx) != ""
}
