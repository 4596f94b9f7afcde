package middleware

import (
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
)

const adminRealm = `Basic realm="salon-admin", charset="UTF-8"`

// AdminAuth guards the back office with HTTP Basic credentials checked against a bcrypt hash.
func AdminAuth(username, passwordHash string, logger Logger) func(http.Handler) http.Handler {
	hash := []byte(passwordHash)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", adminRealm)
				handlers.RespondUnauthorized(w, "admin credentials required")
				return
			}

			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
			passErr := bcrypt.CompareHashAndPassword(hash, []byte(pass))
			if !userOK || passErr != nil {
				logger.Warn("%s %s - admin authentication failed for user=%q", r.Method, r.URL.Path, user)
				handlers.RespondForbidden(w, "invalid admin credentials")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
