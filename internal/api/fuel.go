package api

import (
	"encoding/json"
	"net/http"

	"carcheck/backend/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// AddFuelEntryHandler handles POST /api/v1/cars/{carID}/fuel
//
// @Summary      Add a fill-up
// @Description  Inserts a fuel entry at its chronological position and reconciles the ledger.
// @Tags         Fuel
// @Accept       json
// @Produce      json
// @Param        carID  path  string            true  "Car ID"
// @Param        input  body  dtos.FuelEntryReq true  "Fill-up payload"
// @Success      201  {object}  responses.APIResponse[gorm.Car]
// @Failure      400  {object}  responses.APIResponse[any]
// @Router       /api/v1/cars/{carID}/fuel [post]
func AddFuelEntryHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.FuelEntryReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		car, err := deps.Services.Fuel.AddEntry(r.Context(), claims.UserID(), chi.URLParam(r, "carID"), &req)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		deps.Metrics.LedgerMutationsTotal.WithLabelValues("insert").Inc()
		respondWithSuccess(w, http.StatusCreated, car)
	}
}

// UpdateFuelEntryHandler handles PUT /api/v1/cars/{carID}/fuel/{entryID}
//
// @Summary      Edit a fill-up
// @Description  Rewrites a fuel entry and reconciles the ledger at its old and new position.
// @Tags         Fuel
// @Accept       json
// @Produce      json
// @Param        carID    path  string            true  "Car ID"
// @Param        entryID  path  string            true  "Fuel entry ID"
// @Param        input    body  dtos.FuelEntryReq true  "Fill-up payload"
// @Success      200  {object}  responses.APIResponse[gorm.Car]
// @Router       /api/v1/cars/{carID}/fuel/{entryID} [put]
func UpdateFuelEntryHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.FuelEntryReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		car, err := deps.Services.Fuel.UpdateEntry(r.Context(), claims.UserID(),
			chi.URLParam(r, "carID"), chi.URLParam(r, "entryID"), &req)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		deps.Metrics.LedgerMutationsTotal.WithLabelValues("update").Inc()
		respondWithSuccess(w, http.StatusOK, car)
	}
}

// DeleteFuelEntryHandler handles DELETE /api/v1/cars/{carID}/fuel/{entryID}
//
// @Summary      Remove a fill-up
// @Description  Deletes a fuel entry and re-links its successor across the gap.
// @Tags         Fuel
// @Produce      json
// @Param        carID    path  string  true  "Car ID"
// @Param        entryID  path  string  true  "Fuel entry ID"
// @Success      200  {object}  responses.APIResponse[gorm.Car]
// @Router       /api/v1/cars/{carID}/fuel/{entryID} [delete]
func DeleteFuelEntryHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		car, err := deps.Services.Fuel.DeleteEntry(r.Context(), claims.UserID(),
			chi.URLParam(r, "carID"), chi.URLParam(r, "entryID"))
		if err != nil {
			respondServiceError(w, err)
			return
		}

		deps.Metrics.LedgerMutationsTotal.WithLabelValues("delete").Inc()
		respondWithSuccess(w, http.StatusOK, car)
	}
}

// GetFuelStatsHandler handles GET /api/v1/cars/{carID}/fuel/stats
//
// @Summary      Get fuel ledger aggregates
// @Tags         Fuel
// @Produce      json
// @Param        carID  path  string  true  "Car ID"
// @Success      200  {object}  responses.APIResponse[responses.FuelStatsResponse]
// @Router       /api/v1/cars/{carID}/fuel/stats [get]
func GetFuelStatsHandler(deps *Dependencies) http.HandlerFunc {
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

		stats := deps.Services.Fuel.Stats(car)
		respondWithSuccess(w, http.StatusOK, stats)
	}
}

func (h *Handlers) AddFuelEntry() http.HandlerFunc    { return AddFuelEntryHandler(h.deps) }
func (h *Handlers) UpdateFuelEntry() http.HandlerFunc { return UpdateFuelEntryHandler(h.deps) }
func (h *Handlers) DeleteFuelEntry() http.HandlerFunc { return DeleteFuelEntryHandler(h.deps) }
func (h *Handlers) GetFuelStats() http.HandlerFunc    { return GetFuelStatsHandler(h.deps) }
