package middleware

import (
	"net/http"
	"strings"
	"time"

	"flightontime/backend/internal/auth"
	"flightontime/backend/internal/common"
	"flightontime/backend/internal/constants"
	"flightontime/backend/internal/logging"
)

// AuthMiddleware requires a valid HS256 bearer token and stores the caller claims on the context
func AuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				common.RespondError(w, time.Now(), constants.ErrCodeUnauthorized, "", http.StatusUnauthorized)
				return
			}

			raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			claims, err := auth.ParseToken(secret, raw)
			if err != nil {
				logging.Debug("Rejected caller token", "error", err)
				common.RespondError(w, time.Now(), constants.ErrCodeUnauthorized, "", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission rejects callers whose role does not grant action
func RequirePermission(action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				common.RespondError(w, time.Now(), constants.ErrCodeUnauthorized, "", http.StatusUnauthorized)
				return
			}
			if !claims.HasPermission(action) {
				common.RespondError(w, time.Now(), constants.ErrCodeForbidden, "", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
