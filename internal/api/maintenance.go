package api

import (
	"encoding/json"
	"net/http"

	"carcheck/backend/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// UpdateTUVHandler handles PUT /api/v1/cars/{carID}/tuv
//
// @Summary      Update the statutory test record
// @Description  Sets the last test appointment; the next one is always derived two years later.
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        carID  path  string            true  "Car ID"
// @Param        input  body  dtos.TUVUpdateReq true  "TUV payload"
// @Success      200  {object}  responses.APIResponse[gorm.Car]
// @Router       /api/v1/cars/{carID}/tuv [put]
func UpdateTUVHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.TUVUpdateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		car, err := deps.Services.Maintenance.UpdateTUV(r.Context(), claims.UserID(), chi.URLParam(r, "carID"), &req)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, car)
	}
}

// UpdateInspectionHandler handles PUT /api/v1/cars/{carID}/inspection
//
// @Summary      Update the service inspection record
// @Description  Edits the inspection configuration and recomputes the due-date projections.
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        carID  path  string                   true  "Car ID"
// @Param        input  body  dtos.InspectionUpdateReq true  "Inspection payload"
// @Success      200  {object}  responses.APIResponse[gorm.Car]
// @Router       /api/v1/cars/{carID}/inspection [put]
func UpdateInspectionHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.InspectionUpdateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		car, err := deps.Services.Maintenance.UpdateInspection(r.Context(), claims.UserID(), chi.URLParam(r, "carID"), &req)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, car)
	}
}

// UpdateInsuranceHandler handles PUT /api/v1/cars/{carID}/insurance
//
// @Summary      Update the insurance record
// @Description  Edits provider, policy number, and expiry date. Empty strings clear a field.
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        carID  path  string                  true  "Car ID"
// @Param        input  body  dtos.InsuranceUpdateReq true  "Insurance payload"
// @Success      200  {object}  responses.APIResponse[gorm.Car]
// @Router       /api/v1/cars/{carID}/insurance [put]
func UpdateInsuranceHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		var req dtos.InsuranceUpdateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		car, err := deps.Services.Maintenance.UpdateInsurance(r.Context(), claims.UserID(), chi.URLParam(r, "carID"), &req)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, car)
	}
}

func (h *Handlers) UpdateTUV() http.HandlerFunc        { return UpdateTUVHandler(h.deps) }
func (h *Handlers) UpdateInspection() http.HandlerFunc { return UpdateInspectionHandler(h.deps) }
func (h *Handlers) UpdateInsurance() http.HandlerFunc  { return UpdateInsuranceHandler(h.deps) }
