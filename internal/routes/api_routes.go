package routes

import (
	"carcheck/backend/internal/api"
	"carcheck/backend/internal/db/repositories"
	"carcheck/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, keyRepo *repositories.KeysRepo, handlers *api.Handlers) {

	// Public: share-token redemption. The token itself is the credential.
	r.Get("/share/{token}", handlers.ViewSharedCar())

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.AuthMiddleware(keyRepo)) // global: all routes must be authenticated

		v1.Route("/cars", func(cars chi.Router) {
			cars.Get("/", handlers.ListCars())
			cars.Post("/", handlers.CreateCar())

			cars.Route("/{carID}", func(car chi.Router) {
				car.Get("/", handlers.GetCar())
				car.Put("/", handlers.UpdateCar())
				car.Delete("/", handlers.DeleteCar())

				car.Put("/mileage", handlers.UpdateMileage())
				car.Put("/tuv", handlers.UpdateTUV())
				car.Put("/inspection", handlers.UpdateInspection())
				car.Put("/insurance", handlers.UpdateInsurance())

				car.Get("/status", handlers.GetCarStatus())
				car.Get("/events", handlers.GetCarEvents())

				car.Post("/fuel", handlers.AddFuelEntry())
				car.Get("/fuel/stats", handlers.GetFuelStats())
				car.Put("/fuel/{entryID}", handlers.UpdateFuelEntry())
				car.Delete("/fuel/{entryID}", handlers.DeleteFuelEntry())

				car.Post("/tires", handlers.CreateTire())
				car.Get("/tires/wear", handlers.GetTireWear())
				car.Put("/tires/{tireID}", handlers.UpdateTire())
				car.Post("/tire-change", handlers.ChangeTire())

				car.Post("/share", handlers.CreateShareLink())
			})
		})
	})
}
