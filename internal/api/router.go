package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rflorenc/cloud-resource-workbench/internal/metrics"
	"github.com/rflorenc/cloud-resource-workbench/internal/models"
)

// UserHeader carries the name of the operator issuing a request.
const UserHeader = "X-Bkapi-User-Name"

// Server holds shared state for all API handlers.
type Server struct {
	Secrets *models.SecretStore
	Tasks   *models.TaskStore
	Metrics *metrics.Metrics
	Logger  *zap.Logger

	validate *validator.Validate
}

// NewServer wires a Server with fresh stores.
func NewServer(logger *zap.Logger) *Server {
	return &Server{
		Secrets:  models.NewSecretStore(),
		Tasks:    models.NewTaskStore(),
		Metrics:  metrics.New(),
		Logger:   logger,
		validate: validator.New(),
	}
}

// NewRouter builds the chi router with all API routes.
func NewRouter(s *Server) http.Handler {
	if s.validate == nil {
		s.validate = validator.New()
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	if s.Metrics == nil {
		s.Metrics = metrics.New()
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		// Resource counts
		r.Post("/cloud/vendors/{vendor}/accounts/res_counts/by_secrets", s.ResCountsBySecrets)

		// Secrets
		r.Post("/cloud/secrets", s.CreateSecret)
		r.Get("/cloud/secrets", s.ListSecrets)
		r.Delete("/cloud/secrets/{id}", s.DeleteSecret)
		r.Post("/cloud/secrets/{id}/sync", s.SyncSecret)

		// Tasks
		r.Get("/task/properties", s.ListTaskProperties)
		r.Post("/tasks/list", s.ListTasks)
		r.Get("/tasks/{id}", s.GetTask)
		r.Post("/tasks/{id}/cancel", s.CancelTask)
	})

	// WebSocket (outside /api to avoid JSON content-type assumptions)
	r.Get("/ws/tasks/{id}/logs", s.StreamTaskLogs)

	r.Handle("/metrics", promhttp.HandlerFor(s.Metrics.Registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+UserHeader)
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
