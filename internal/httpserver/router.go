package httpserver

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/miky2184/chargeability-manager-api/internal/auth"
	"github.com/miky2184/chargeability-manager-api/internal/config"
	"github.com/miky2184/chargeability-manager-api/internal/db"
	"github.com/miky2184/chargeability-manager-api/internal/handlers"
	"github.com/miky2184/chargeability-manager-api/internal/middleware"
	"github.com/miky2184/chargeability-manager-api/internal/repo"
)

// New builds the full route tree: public credential endpoints, the deploy
// webhook, and the bearer-gated data endpoints.
func New(cfg config.Config, exec *db.Executor, users *repo.UserRepo, tokens *auth.TokenManager) http.Handler {
	authHandler := &handlers.AuthHandler{Users: users, Tokens: tokens}
	userHandler := &handlers.UserHandler{}
	reportHandler := &handlers.ReportHandler{Exec: exec}
	wbsHandler := &handlers.WbsHandler{Exec: exec}
	resourceHandler := &handlers.ResourceHandler{Exec: exec}
	webhookHandler := &handlers.WebhookHandler{RepoPath: cfg.DeployRepoPath, Service: cfg.DeployService}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Prometheus)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	// Credential endpoints: rate limited per IP, body size capped.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthRateLimiter().Middleware)
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Post("/token", authHandler.Token)
		r.Post("/register", authHandler.Register)
	})

	r.Post("/chargeability-manager-api-webhook", webhookHandler.Deploy)

	// Everything below requires a valid bearer token whose subject still exists.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens, users))
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

		r.Get("/users/me", userHandler.Me)

		r.Get("/forecast", reportHandler.Forecast)
		r.Get("/chargeability", reportHandler.Chargeability)
		r.Get("/time-reports", reportHandler.TimeReports)

		r.Get("/wbs", wbsHandler.List)
		r.Post("/wbs", wbsHandler.Create)
		r.Put("/wbs/{wbs_id}", wbsHandler.Update)
		r.Delete("/wbs/{wbs_id}", wbsHandler.Delete)

		r.Get("/resources", resourceHandler.List)
		r.Post("/resources", resourceHandler.Create)
		r.Put("/resources/{resource_id}", resourceHandler.Update)
		r.Delete("/resources/{resource_id}", resourceHandler.Delete)
	})

	return r
}
