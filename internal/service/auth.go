package service

import (
	"time"

	"github.com/fungigrow/storeapi/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const adminTokenTTL = 24 * time.Hour

// AuthService issues admin tokens for catalog and blog mutations
type AuthService struct {
	passwordHash []byte
	jwtSecret    []byte
}

// NewAuthService creates new AuthService instance
func NewAuthService(passwordHash, jwtSecret string) *AuthService {
	return &AuthService{
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
	}
}

// Login verifies the admin password and returns a signed token
func (as *AuthService) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(as.passwordHash, []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "admin",
		"iat": now.Unix(),
		"exp": now.Add(adminTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(as.jwtSecret)
}

// VerifyToken validates a token string and reports whether it grants admin
// access
func (as *AuthService) VerifyToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, models.ErrInvalidCredentials
		}
		return as.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return models.ErrInvalidCredentials
	}
	return nil
}
