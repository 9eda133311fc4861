// Package server exposes the CRM use cases over a JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/nexusai/nexus-crm/internal/metrics"
	"github.com/nexusai/nexus-crm/internal/service"
)

// maxBodyBytes caps request bodies; contract texts are the largest payload.
const maxBodyBytes = 4 << 20

// Config for the HTTP API handler.
type Config struct {
	Service     service.CRMService
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
	CORSOrigins []string
}

type api struct {
	svc     service.CRMService
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New returns an http.Handler exposing the CRM API under /api and the
// Prometheus endpoint at /metrics.
func New(cfg Config) http.Handler {
	a := &api{svc: cfg.Service, metrics: cfg.Metrics, logger: cfg.Logger}
	if a.metrics == nil {
		a.metrics = metrics.New()
	}
	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler)
	router.Use(a.observe)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	router.Method(http.MethodGet, "/metrics", a.metrics.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", a.health)
		r.Get("/public-config", a.publicConfig)

		r.Get("/insights", a.insights)
		r.Post("/report", a.report(false))
		r.Post("/contracts/analyze", a.analyzeContract(false))
		r.Post("/contracts/draft", a.draftContract(false))
		r.Post("/chat", a.chat)
		r.Get("/chat/greeting", a.greeting)

		r.Route("/ai", func(r chi.Router) {
			r.Post("/report", a.report(true))
			r.Post("/suggestions", a.aiSuggestions)
			r.Post("/contract-analysis", a.analyzeContract(true))
			r.Post("/contract-draft", a.draftContract(true))
		})
	})

	return router
}

// observe logs every request and records it under its route pattern, so
// /metrics labels stay bounded.
func (a *api) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)
		a.metrics.RecordHTTP(route, r.Method, status, elapsed)

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		a.logger.Log(r.Context(), level, "http_request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", elapsed.Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
