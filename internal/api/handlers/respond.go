package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts serialize as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrorResponse is the error envelope shared by all failure responses
type ErrorResponse struct {
	Status  int     `json:"status"`
	Error   string  `json:"error"`
	Message *string `json:"message"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error envelope. An empty message serializes as null.
func respondError(w http.ResponseWriter, status int, errorLabel, message string) {
	env := ErrorResponse{Status: status, Error: errorLabel}
	if message != "" {
		env.Message = &message
	}
	respondJSON(w, status, env)
}

// respondValidationError joins per-field messages into a single envelope
func respondValidationError(w http.ResponseWriter, fieldErrors []string) {
	respondError(w, http.StatusBadRequest, "Validation Error", strings.Join(fieldErrors, "; "))
}
