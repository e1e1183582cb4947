package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tripterrior/tripterrior/internal/api"
	"github.com/tripterrior/tripterrior/internal/auth"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newBackend starts a fake remote API and returns a client pointed at it.
func newBackend(t *testing.T, h http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return api.NewClient(api.Config{BaseURL: srv.URL})
}

// authedRequest builds a request carrying a token, as the auth
// middleware would have left it.
func authedRequest(method, target string, form string) *http.Request {
	var body io.Reader
	if form != "" {
		body = strings.NewReader(form)
	}
	r := httptest.NewRequest(method, target, body)
	if form != "" {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return r.WithContext(auth.WithToken(r.Context(), "test-token"))
}

