package api

import (
	"encoding/json"
	"net/http"

	"carcheck/backend/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// CreateTireHandler handles POST /api/v1/cars/{carID}/tires
//
// @Summary      Register a tire set
// @Description  Adds a tire set to the car. Only one non-archived set per type is allowed.
// @Tags         Tires
// @Accept       json
// @Produce      json
// @Param        carID  path  string             true  "Car ID"
// @Param        input  body  dtos.TireCreateReq true  "Tire set payload"
// @Success      201  {object}  responses.APIResponse[gorm.Car]
// @Failure      400  {object}  responses.APIResponse[any]
// @Router       /api/v1/cars/{carID}/tires [post]
func CreateTireHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.TireCreateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		car, err := deps.Services.Tires.CreateTire(r.Context(), claims.UserID(), chi.URLParam(r, "carID"), &req)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusCreated, car)
	}
}

// UpdateTireHandler handles PUT /api/v1/cars/{carID}/tires/{tireID}
//
// @Summary      Edit a tire set
// @Description  Updates set metadata or archives it. Archiving is terminal and refused while mounted.
// @Tags         Tires
// @Accept       json
// @Produce      json
// @Param        carID   path  string             true  "Car ID"
// @Param        tireID  path  string             true  "Tire set ID"
// @Param        input   body  dtos.TireUpdateReq true  "Fields to update"
// @Success      200  {object}  responses.APIResponse[gorm.Car]
// @Router       /api/v1/cars/{carID}/tires/{tireID} [put]
func UpdateTireHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.TireUpdateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		car, err := deps.Services.Tires.UpdateTire(r.Context(), claims.UserID(),
			chi.URLParam(r, "carID"), chi.URLParam(r, "tireID"), &req)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, car)
	}
}

// ChangeTireHandler handles POST /api/v1/cars/{carID}/tire-change
//
// @Summary      Mount a tire set
// @Description  Mounts a set, first settling the wear of the currently mounted set via an unmount event.
// @Tags         Tires
// @Accept       json
// @Produce      json
// @Param        carID  path  string             true  "Car ID"
// @Param        input  body  dtos.TireChangeReq true  "Mount payload"
// @Success      200  {object}  responses.APIResponse[gorm.Car]
// @Failure      400  {object}  responses.APIResponse[any]
// @Router       /api/v1/cars/{carID}/tire-change [post]
func ChangeTireHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.TireChangeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		car, err := deps.Services.Tires.ChangeTire(r.Context(), claims.UserID(), chi.URLParam(r, "carID"), &req)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		deps.Metrics.TireChangesTotal.Inc()
		respondWithSuccess(w, http.StatusOK, car)
	}
}

// GetTireWearHandler handles GET /api/v1/cars/{carID}/tires/wear
//
// @Summary      Get tire wear
// @Description  Reports each set's cumulative mileage; the mounted set's figure is derived from the live odometer.
// @Tags         Tires
// @Produce      json
// @Param        carID  path  string  true  "Car ID"
// @Success      200  {object}  responses.APIResponse[[]responses.TireWearResponse]
// @Router       /api/v1/cars/{carID}/tires/wear [get]
func GetTireWearHandler(deps *Dependencies) http.HandlerFunc {
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

		wear := deps.Services.Tires.Wear(car)
		respondWithSuccess(w, http.StatusOK, &wear)
	}
}

func (h *Handlers) CreateTire() http.HandlerFunc  { return CreateTireHandler(h.deps) }
func (h *Handlers) UpdateTire() http.HandlerFunc  { return UpdateTireHandler(h.deps) }
func (h *Handlers) ChangeTire() http.HandlerFunc  { return ChangeTireHandler(h.deps) }
func (h *Handlers) GetTireWear() http.HandlerFunc { return GetTireWearHandler(h.deps) }
