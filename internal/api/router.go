package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Arbiter/internal/decision"
)

type RouterOptions struct {
	AdminToken         string
	RateLimitPerMinute int
}

func NewRouter(s *decision.Session, opts RouterOptions, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	limit := opts.RateLimitPerMinute
	if limit <= 0 {
		limit = 120
	}

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(limit))

	d := NewDecisionHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/criteria", d.Criteria)
		r.Get("/alternatives", d.Alternatives)
		r.Get("/scale", d.Scale)
		r.Get("/matrix", d.Matrix)
		r.Put("/matrix/comparisons", d.Compare)
		r.Get("/result", d.Result)
		r.Post("/evaluate", d.Evaluate)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(opts.AdminToken))
			r.Post("/matrix/reset", d.Reset)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
