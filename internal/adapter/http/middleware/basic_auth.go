package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/api-sage/bank-account-ledger/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

// BasicAuth guards the API with channel credentials. The channel key is
// checked against a bcrypt hash so the plaintext key never lives in server
// memory past startup.
func BasicAuth(channelID, channelKeyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if channelID == "" || channelKeyHash == "" {
				logger.Error("basic auth middleware missing server configuration", nil, logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "server auth configuration is missing", http.StatusInternalServerError)
				return
			}

			id, key, ok := r.BasicAuth()
			if !ok || !secureEqual(id, channelID) ||
				bcrypt.CompareHashAndPassword([]byte(channelKeyHash), []byte(key)) != nil {
				logger.Info("basic auth middleware unauthorized request", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
