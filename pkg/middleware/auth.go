package middleware

import (
	"crypto/subtle"
	"net/http"

	"google-reviews/pkg/utils"

	"go.uber.org/zap"
)

const adminRealm = `Basic realm="google-reviews admin"`

// AdminBasicAuth guards the admin API with HTTP basic auth. The password is
// checked against a bcrypt hash. With no hash configured every request is
// refused.
func AdminBasicAuth(user, passwordHash string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if passwordHash == "" {
				logger.Warn("Admin API disabled, ADMIN_PASSWORD_HASH is not set",
					zap.String("path", r.URL.Path))
				utils.ResponseServiceUnavailable(w, "Admin API is not configured")
				return
			}

			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", adminRealm)
				utils.ResponseUnauthorized(w, "Missing credentials")
				return
			}

			userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(user)) == 1
			if !userMatch || !utils.CheckPasswordHash(password, passwordHash) {
				logger.Warn("Admin authentication failed",
					zap.String("user", username),
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr))
				w.Header().Set("WWW-Authenticate", adminRealm)
				utils.ResponseUnauthorized(w, "Invalid credentials")
				return
			}

			ctx := utils.SetAdminUserContext(r.Context(), username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
