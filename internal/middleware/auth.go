package middleware

import (
	"net/http"
	"strings"
)

// TokenVerifier validates admin bearer tokens
type TokenVerifier interface {
	VerifyToken(tokenString string) error
}

// Auth guards admin routes: it requires a valid bearer token issued by the
// admin login endpoint.
func Auth(verifier TokenVerifier) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if err := verifier.VerifyToken(token); err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
