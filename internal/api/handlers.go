package api

import (
	"net/http"

	"carcheck/backend/internal/auth"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// requireClaims pulls the authenticated identity from the request context.
// Returns nil after writing a 401 when the auth middleware did not run.
func requireClaims(w http.ResponseWriter, r *http.Request) auth.UserClaims {
	claims := auth.GetUserClaims(r.Context())
	if claims == nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized: missing claims")
	}
	return claims
}
