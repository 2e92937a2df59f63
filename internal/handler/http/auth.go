package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fungigrow/storeapi/internal/models"
)

// AuthService is interface for admin authentication
type AuthService interface {
	// Login verifies the admin password and returns a signed token
	Login(password string) (string, error)
}

// AuthHandler represents HTTP handler for admin authentication
type AuthHandler struct {
	svc AuthService
}

// NewAuthHandler creates new AuthHandler instance
func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges the admin password for a bearer token
// 200 — token issued;
// 400 — malformed request;
// 401 — wrong password.
func (ah *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
			writeError(w, http.StatusBadRequest, "password is required")
			return
		}
		defer r.Body.Close()

		token, err := ah.svc.Login(req.Password)
		if err != nil {
			if errors.Is(err, models.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "invalid credentials")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(loginResponse{Token: token})
	}
}

// HealthCheck responds 200 "OK"
func HealthCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
