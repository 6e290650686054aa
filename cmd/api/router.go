package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/fittrack/internal/config"
	"github.com/crucial707/fittrack/internal/handlers"
	mw "github.com/crucial707/fittrack/internal/middleware"
	"github.com/crucial707/fittrack/internal/repo"
	"github.com/crucial707/fittrack/internal/timestamp"
)

// newRouter wires repositories, handlers, and the middleware chain. The
// resolver is a parameter so tests can inject a deterministic one.
func newRouter(db *sql.DB, cfg config.Config, resolver timestamp.Resolver) http.Handler {
	userRepo := repo.NewUserRepo(db)
	exerciseRepo := repo.NewExerciseRepo(db)

	userH := &handlers.UserHandler{Repo: userRepo}
	exerciseH := &handlers.ExerciseHandler{Repo: exerciseRepo, Resolver: resolver}
	logH := &handlers.LogHandler{Users: userRepo, Exercises: exerciseRepo}

	limiter := mw.PerMinute(cfg.RateLimitPerMinute)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.RequestLog)
	r.Use(mw.Recoverer)
	r.Use(mw.Prometheus)
	r.Use(mw.SecurityHeaders(false))
	r.Use(mw.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.JSONError(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/users", userH.ListUsers)
		r.Get("/users/{id}/logs", logH.GetLogs)

		// Mutating routes carry body-size and per-IP rate limits.
		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)
			r.Use(mw.MaxBytes(mw.DefaultMaxBodyBytes))
			r.Post("/users", userH.CreateUser)
			r.Post("/exercise/new-user", userH.CreateUser)
			r.Post("/users/{id}/exercises", exerciseH.AddExercise)
			r.Post("/exercise/add", exerciseH.AddExercise)
		})
	})

	return r
}
