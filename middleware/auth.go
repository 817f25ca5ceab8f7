package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"uptask-project/backend/models"
	"uptask-project/backend/utils"
)

// UserResolver turns a session credential's subject into a live user.
// *services.AuthService satisfies it.
type UserResolver interface {
	FindUserByID(ctx context.Context, id string) (models.User, error)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// Authenticate rejects requests without a valid bearer credential and attaches
// the resolved user to the request context. No handler behind it ever runs for
// an anonymous request.
func Authenticate(users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondMessage(w, http.StatusUnauthorized, "Not authorized")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondMessage(w, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
				return
			}

			claims, err := utils.ValidateSessionToken(parts[1])
			if err != nil {
				respondMessage(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			user, err := users.FindUserByID(r.Context(), claims.UserID)
			if err != nil {
				respondMessage(w, http.StatusUnauthorized, "Not authorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}
