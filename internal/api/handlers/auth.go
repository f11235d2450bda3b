package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bpofinance/bpofinance/internal/service"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type tokenRequest struct {
	APIKey string `json:"api_key"`
}

// Token handles POST /api/auth/token
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Malformed Request", "invalid request body: "+err.Error())
		return
	}

	if req.APIKey == "" {
		respondValidationError(w, []string{"api_key: is required"})
		return
	}

	if err := h.authService.ValidateAPIKey(req.APIKey); err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized", "invalid API key")
		return
	}

	tokenResp, err := h.authService.GenerateToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal Error", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, tokenResp)
}
