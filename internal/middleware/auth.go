package middleware

import (
	"net/http"

	"carcheck/backend/internal/auth"
	"carcheck/backend/internal/db/repositories"
)

// AuthMiddleware authenticates every request from an API key plus the
// X-User-Id header naming the acting user. Read-only share-token access
// bypasses this middleware entirely via the public share route.
func AuthMiddleware(keysRepo *repositories.KeysRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				http.Error(w, "Unauthorized. Missing API Key", http.StatusUnauthorized)
				return
			}

			keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
			if err != nil {
				http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
				return
			}
			if !keyRes.Status {
				http.Error(w, "Unauthorized. Inactive API Key", http.StatusUnauthorized)
				return
			}

			userID := r.Header.Get("X-User-Id")
			if userID == "" {
				http.Error(w, "Unauthorized. Missing user", http.StatusUnauthorized)
				return
			}

			claims := &auth.APIKeyClaims{UserIDValue: userID}
			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
