package api

import (
	"net/http"
	"time"

	"carcheck/backend/internal/auth"
	"carcheck/backend/internal/models/dtos/responses"

	"github.com/go-chi/chi/v5"
)

const shareTokenTTL = 24 * time.Hour

// CreateShareLinkHandler handles POST /api/v1/cars/{carID}/share
//
// @Summary      Issue a read-only share link
// @Description  Signs a single-use token granting read access to one car.
// @Tags         Share
// @Produce      json
// @Param        carID  path  string  true  "Car ID"
// @Success      201  {object}  responses.APIResponse[responses.ShareLinkResponse]
// @Router       /api/v1/cars/{carID}/share [post]
func CreateShareLinkHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := requireClaims(w, r)
		if claims == nil {
			return
		}

		// Issue only for cars the user actually owns.
		car, err := deps.Repo.Car.GetByIDForUser(r.Context(), chi.URLParam(r, "carID"), claims.UserID())
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Car not found")
			return
		}

		token, err := deps.Services.ShareLinks.GenerateToken(claims.UserID(), car.ID, shareTokenTTL)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to generate share link")
			return
		}

		deps.Metrics.ShareTokensIssued.Inc()

		resp := &responses.ShareLinkResponse{
			URL:       "/share/" + token,
			ExpiresIn: int(shareTokenTTL.Seconds()),
		}
		respondWithSuccess(w, http.StatusCreated, resp)
	}
}

// ViewSharedCarHandler handles GET /share/{token}
//
// This route is public: the token itself is the credential. It is consumed
// on first use.
//
// @Summary      View a shared car
// @Description  Redeems a single-use share token and returns the car with its computed status.
// @Tags         Share
// @Produce      json
// @Param        token  path  string  true  "Share token"
// @Success      200  {object}  responses.APIResponse[responses.SharedCarView]
// @Failure      401  {object}  responses.APIResponse[any]
// @Router       /share/{token} [get]
func ViewSharedCarHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grant, err := deps.Services.ShareLinks.RedeemToken(r.Context(), chi.URLParam(r, "token"))
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired share link")
			return
		}

		// The redeemed token establishes a read-only identity scoped to one
		// car, same claims model as the authenticated routes.
		claims := &auth.ShareClaims{OwnerIDValue: grant.OwnerID, CarIDValue: grant.CarID}
		r = r.WithContext(auth.SetUserClaims(r.Context(), claims))

		car, err := deps.Repo.Car.GetByID(r.Context(), claims.CarID())
		if err != nil || car.UserID != claims.UserID() {
			respondWithError(w, http.StatusNotFound, "Car not found")
			return
		}

		view := &responses.SharedCarView{
			Car:    car,
			Status: deps.Services.Cars.Status(car, time.Now()),
		}
		respondWithSuccess(w, http.StatusOK, view)
	}
}

func (h *Handlers) CreateShareLink() http.HandlerFunc { return CreateShareLinkHandler(h.deps) }
func (h *Handlers) ViewSharedCar() http.HandlerFunc   { return ViewSharedCarHandler(h.deps) }
