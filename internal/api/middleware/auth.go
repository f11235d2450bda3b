package middleware

import (
	"net/http"
	"strings"

	"github.com/bpofinance/bpofinance/internal/service"
)

// AuthMiddleware guards the API with the operator API key or a bearer token
type AuthMiddleware struct {
	authService *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authService *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Authenticate validates the X-API-Key header or a Bearer JWT
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authenticated := false

		// Try API key first
		if apiKey := r.Header.Get("X-API-Key"); apiKey != "" {
			if err := m.authService.ValidateAPIKey(apiKey); err == nil {
				authenticated = true
			}
		}

		// Try Bearer token if no API key matched
		if !authenticated {
			authHeader := r.Header.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token := strings.TrimPrefix(authHeader, "Bearer ")
				if err := m.authService.ValidateToken(token); err == nil {
					authenticated = true
				}
			}
		}

		if !authenticated {
			http.Error(w, `{"status":401,"error":"Unauthorized","message":null}`, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
