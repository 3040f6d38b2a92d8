package api

import (
	"encoding/json"
	"net/http"
	"time"

	"carcheck/backend/internal/models/dtos"
	gormModels "carcheck/backend/internal/models/gorm"

	"github.com/go-chi/chi/v5"
)

// ListCarsHandler handles GET /api/v1/cars
//
// @Summary      List cars
// @Description  Returns every car owned by the acting user, without sub-records.
// @Tags         Cars
// @Produce      json
// @Param        X-API-Key  header  string  true  "API KEY"
// @Param        X-User-Id  header  string  true  "User ID"
// @Success      200  {object}  responses.APIResponse[[]gorm.Car]
// @Router       /api/v1/cars [get]
func ListCarsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		cars, err := deps.Repo.Car.ListForUser(r.Context(), claims.UserID())
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &cars)
	}
}

// GetCarHandler handles GET /api/v1/cars/{carID}
//
// @Summary      Get a car
// @Description  Returns one car with its fuel ledger, tire sets, tire change events and audit log.
// @Tags         Cars
// @Produce      json
// @Param        carID  path  string  true  "Car ID"
// @Success      200  {object}  responses.APIResponse[gorm.Car]
// @Failure      404  {object}  responses.APIResponse[any]
// @Router       /api/v1/cars/{carID} [get]
func GetCarHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		car, err := deps.Repo.Car.GetByIDForUser(r.Context(), chi.URLParam(r, "carID"), claims.UserID())
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Car not found")
			return
		}

		respondWithSuccess(w, http.StatusOK, car)
	}
}

// CreateCarHandler handles POST /api/v1/cars
//
// @Summary      Create a car
// @Tags         Cars
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.CreateCarReq  true  "Car payload"
// @Success      201  {object}  responses.APIResponse[gorm.Car]
// @Failure      400  {object}  responses.APIResponse[any]
// @Router       /api/v1/cars [post]
func CreateCarHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.CreateCarReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		car, err := deps.Services.Cars.CreateCar(r.Context(), claims.UserID(), &req)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusCreated, car)
	}
}

// UpdateCarHandler handles PUT /api/v1/cars/{carID}
//
// @Summary      Update car details
// @Tags         Cars
// @Accept       json
// @Produce      json
// @Param        carID  path  string             true  "Car ID"
// @Param        input  body  dtos.UpdateCarReq  true  "Fields to update"
// @Success      200  {object}  responses.APIResponse[gorm.Car]
// @Router       /api/v1/cars/{carID} [put]
func UpdateCarHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.UpdateCarReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		car, err := deps.Services.Cars.UpdateCar(r.Context(), claims.UserID(), chi.URLParam(r, "carID"), &req)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, car)
	}
}

// DeleteCarHandler handles DELETE /api/v1/cars/{carID}
//
// @Summary      Delete a car and all its records
// @Tags         Cars
// @Produce      json
// @Param        carID  path  string  true  "Car ID"
// @Success      200  {object}  responses.APIResponse[any]
// @Router       /api/v1/cars/{carID} [delete]
func DeleteCarHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		if err := deps.Repo.Car.Delete(r.Context(), chi.URLParam(r, "carID"), claims.UserID()); err != nil {
			respondWithError(w, http.StatusNotFound, "Car not found")
			return
		}

		msg := "Car deleted"
		respondWithSuccess(w, http.StatusOK, &msg)
	}
}

// UpdateMileageHandler handles PUT /api/v1/cars/{carID}/mileage
//
// @Summary      Update the odometer reading
// @Tags         Cars
// @Accept       json
// @Produce      json
// @Param        carID  path  string                true  "Car ID"
// @Param        input  body  dtos.MileageUpdateReq true  "New mileage"
// @Success      200  {object}  responses.APIResponse[gorm.Car]
// @Router       /api/v1/cars/{carID}/mileage [put]
func UpdateMileageHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.MileageUpdateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		car, err := deps.Services.Cars.UpdateMileage(r.Context(), claims.UserID(), chi.URLParam(r, "carID"), int(req.Mileage))
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, car)
	}
}

// GetCarStatusHandler handles GET /api/v1/cars/{carID}/status
//
// @Summary      Get the computed maintenance status
// @Description  Classification, progress and severity per criterion, plus the projected seasonal tire change.
// @Tags         Cars
// @Produce      json
// @Param        carID  path  string  true  "Car ID"
// @Success      200  {object}  responses.APIResponse[responses.CarStatusResponse]
// @Router       /api/v1/cars/{carID}/status [get]
func GetCarStatusHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		car, err := deps.Repo.Car.GetByIDForUser(r.Context(), chi.URLParam(r, "carID"), claims.UserID())
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Car not found")
			return
		}

		status := deps.Services.Cars.Status(car, time.Now())
		respondWithSuccess(w, http.StatusOK, status)
	}
}

// GetCarEventsHandler handles GET /api/v1/cars/{carID}/events
//
// @Summary      Get the audit log
// @Description  Returns the car's append-only event history, newest first.
// @Tags         Cars
// @Produce      json
// @Param        carID  path  string  true  "Car ID"
// @Success      200  {object}  responses.APIResponse[[]gorm.CarEvent]
// @Router       /api/v1/cars/{carID}/events [get]
func GetCarEventsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		car, err := deps.Repo.Car.GetByIDForUser(r.Context(), chi.URLParam(r, "carID"), claims.UserID())
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Car not found")
			return
		}

		events := car.Events
		if events == nil {
			events = []gormModels.CarEvent{}
		}
		respondWithSuccess(w, http.StatusOK, &events)
	}
}

// ============================================================================
// Handler Methods (Wrapped for DI pattern - Hybrid Approach)
// ============================================================================

func (h *Handlers) ListCars() http.HandlerFunc      { return ListCarsHandler(h.deps) }
func (h *Handlers) GetCar() http.HandlerFunc        { return GetCarHandler(h.deps) }
func (h *Handlers) CreateCar() http.HandlerFunc     { return CreateCarHandler(h.deps) }
func (h *Handlers) UpdateCar() http.HandlerFunc     { return UpdateCarHandler(h.deps) }
func (h *Handlers) DeleteCar() http.HandlerFunc     { return DeleteCarHandler(h.deps) }
func (h *Handlers) UpdateMileage() http.HandlerFunc { return UpdateMileageHandler(h.deps) }
func (h *Handlers) GetCarStatus() http.HandlerFunc  { return GetCarStatusHandler(h.deps) }
func (h *Handlers) GetCarEvents() http.HandlerFunc  { return GetCarEventsHandler(h.deps) }
