package routes

import (
	"net/http"
	"time"

	"carcheck/backend/internal/api"
	"carcheck/backend/internal/db"
	"carcheck/backend/internal/logging"
	"carcheck/backend/internal/metrics"
	"carcheck/backend/internal/middleware"
	"carcheck/backend/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(upSince time.Time, redisClient *redis.Client) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-API-Key", "X-User-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")
	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, redisClient, upSince))

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(metricsReg, redisClient)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Initialize handlers with dependencies
	handlers := api.NewHandlers(deps)

	// Background maintenance sweep keeps the fleet gauges and status cache warm
	workers.InitWorkers(db.PgDB, deps.Repo.Car, deps.Services.Cars, deps.Services.Cache, metricsReg)

	RegisterAPIRoutes(r, deps.Repo.Keys, handlers)

	return r
}
