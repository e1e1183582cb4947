// Package server wires the handlers, middleware, and routes.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/tripterrior/tripterrior/internal/api"
	"github.com/tripterrior/tripterrior/internal/handler"
	"github.com/tripterrior/tripterrior/internal/middleware"
	"github.com/tripterrior/tripterrior/internal/schedule"
	ws "github.com/tripterrior/tripterrior/internal/websocket"
	"github.com/tripterrior/tripterrior/web"
)

type Server struct {
	hub         *ws.Hub
	authH       *handler.AuthHandler
	feedH       *handler.FeedHandler
	calendarH   *handler.CalendarHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

// New builds a Server on top of the backend API client.
func New(client *api.Client, baseURL string, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	templates := web.Templates()
	submitter := schedule.NewSubmitter(client)

	return &Server{
		hub:         hub,
		authH:       handler.NewAuthHandler(templates, baseURL, logger.With("component", "auth")),
		feedH:       handler.NewFeedHandler(client, hub, templates, logger.With("component", "feed")),
		calendarH:   handler.NewCalendarHandler(client, submitter, hub, templates, logger.With("component", "calendar")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no token required)
	outerMux.HandleFunc("GET /signin", s.authH.SignInPage)
	outerMux.HandleFunc("GET /api/auth", s.rateLimitedHandler(s.authH.Bridge))
	outerMux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(web.Static())))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — everything else needs the token cookie
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)
	outerMux.Handle("/", middleware.RequireToken(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter, middleware.RealIP, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /logout", s.authH.Logout)

	// Pages
	mux.HandleFunc("GET /{$}", s.feedH.List)
	mux.HandleFunc("GET /main/{id}", s.feedH.Detail)
	mux.HandleFunc("GET /myfamily/calendar", s.calendarH.Page)

	// Feed partials (HTMX)
	mux.HandleFunc("GET /partials/feeds/{id}/comments", s.feedH.CommentSection)
	mux.HandleFunc("POST /partials/feeds/{id}/comments", s.feedH.CommentCreate)
	mux.HandleFunc("DELETE /partials/feeds/{id}/comments/{commentID}", s.feedH.CommentDelete)
	mux.HandleFunc("POST /partials/feeds/{id}/like", s.feedH.FeedLike)
	mux.HandleFunc("POST /partials/comments/{id}/like", s.feedH.CommentLike)

	// Family creation (HTMX)
	mux.HandleFunc("POST /partials/family", s.calendarH.FamilyCreate)

	// Calendar partials (HTMX)
	mux.HandleFunc("GET /partials/calendar/events", s.calendarH.EventsPartial)
	mux.HandleFunc("GET /partials/calendar/schedule/new", s.calendarH.ScheduleNewForm)
	mux.HandleFunc("POST /partials/calendar/schedule", s.calendarH.ScheduleCreate)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.Handler(s.hub, s.logger.With("component", "websocket")))
}
