package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bpofinance/bpofinance/internal/domain"
	"github.com/bpofinance/bpofinance/internal/service"
)

// ReceivableHandler handles receivable HTTP requests
type ReceivableHandler struct {
	service *service.ReceivableService
}

// NewReceivableHandler creates a new receivable handler
func NewReceivableHandler(svc *service.ReceivableService) *ReceivableHandler {
	return &ReceivableHandler{service: svc}
}

// receivableRequest is the create/update request body
type receivableRequest struct {
	Description string           `json:"description"`
	Customer    string           `json:"customer"`
	Amount      *decimal.Decimal `json:"amount"`
	DueDate     *string          `json:"dueDate"`
	Category    *string         `json:"category"`
}

func (req *receivableRequest) validate() (service.ReceivableInput, []string) {
	var fieldErrors []string
	var in service.ReceivableInput

	if strings.TrimSpace(req.Description) == "" {
		fieldErrors = append(fieldErrors, "description: must not be blank")
	}
	if strings.TrimSpace(req.Customer) == "" {
		fieldErrors = append(fieldErrors, "customer: must not be blank")
	}
	if req.Amount == nil {
		fieldErrors = append(fieldErrors, "amount: is required")
	}
	if req.DueDate == nil {
		fieldErrors = append(fieldErrors, "dueDate: is required")
	} else {
		dueDate, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			fieldErrors = append(fieldErrors, "dueDate: must be an ISO date (YYYY-MM-DD)")
		} else {
			in.DueDate = dueDate
		}
	}

	if len(fieldErrors) > 0 {
		return in, fieldErrors
	}

	in.Description = req.Description
	in.Customer = req.Customer
	in.Amount = *req.Amount
	in.Category = req.Category
	return in, nil
}

// receivableResponse is the response body for a single receivable
type receivableResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Customer    string          `json:"customer"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"dueDate"`
	Status      string          `json:"status"`
	Category    *string         `json:"category"`
	ReceivedAt  *string         `json:"receivedAt"`
}

func newReceivableResponse(rec *domain.Receivable) receivableResponse {
	resp := receivableResponse{
		ID:          rec.ID.String(),
		Description: rec.Description,
		Customer:    rec.Customer,
		Amount:      rec.Amount,
		DueDate:     rec.DueDate.Format(dateLayout),
		Status:      string(rec.Status),
		Category:    rec.Category,
	}
	if rec.ReceivedAt != nil {
		receivedAt := rec.ReceivedAt.Format(time.RFC3339)
		resp.ReceivedAt = &receivedAt
	}
	return resp
}

// List handles GET /api/receivables
func (h *ReceivableHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, fieldErrors := parseReceivableFilter(r)
	if len(fieldErrors) > 0 {
		respondValidationError(w, fieldErrors)
		return
	}

	receivables, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal Error", err.Error())
		return
	}

	responses := make([]receivableResponse, 0, len(receivables))
	for i := range receivables {
		responses = append(responses, newReceivableResponse(&receivables[i]))
	}

	respondJSON(w, http.StatusOK, responses)
}

func parseReceivableFilter(r *http.Request) (domain.ReceivableFilter, []string) {
	var filter domain.ReceivableFilter
	var fieldErrors []string
	q := r.URL.Query()

	if raw := q.Get("status"); raw != "" {
		status, err := domain.ParseReceivableStatus(raw)
		if err != nil {
			fieldErrors = append(fieldErrors, "status: must be one of PENDING, RECEIVED, OVERDUE")
		} else {
			filter.Status = &status
		}
	}
	if raw := q.Get("customer"); raw != "" {
		customer := raw
		filter.Customer = &customer
	}
	if raw := q.Get("dueFrom"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			fieldErrors = append(fieldErrors, "dueFrom: must be an ISO date (YYYY-MM-DD)")
		} else {
			filter.DueFrom = &from
		}
	}
	if raw := q.Get("dueTo"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			fieldErrors = append(fieldErrors, "dueTo: must be an ISO date (YYYY-MM-DD)")
		} else {
			filter.DueTo = &to
		}
	}

	return filter, fieldErrors
}

// Create handles POST /api/receivables
func (h *ReceivableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req receivableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Malformed Request", "invalid request body: "+err.Error())
		return
	}

	in, fieldErrors := req.validate()
	if len(fieldErrors) > 0 {
		respondValidationError(w, fieldErrors)
		return
	}

	rec, err := h.service.Create(r.Context(), in)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal Error", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, newReceivableResponse(rec))
}

// Get handles GET /api/receivables/{id}
func (h *ReceivableHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rec, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, id)
		return
	}

	respondJSON(w, http.StatusOK, newReceivableResponse(rec))
}

// Update handles PUT /api/receivables/{id}
func (h *ReceivableHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req receivableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Malformed Request", "invalid request body: "+err.Error())
		return
	}

	in, fieldErrors := req.validate()
	if len(fieldErrors) > 0 {
		respondValidationError(w, fieldErrors)
		return
	}

	rec, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.respondServiceError(w, err, id)
		return
	}

	respondJSON(w, http.StatusOK, newReceivableResponse(rec))
}

// Delete handles DELETE /api/receivables/{id}
func (h *ReceivableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err, id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Receive handles PATCH /api/receivables/{id}/receive
func (h *ReceivableHandler) Receive(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rec, err := h.service.Receive(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, id)
		return
	}

	respondJSON(w, http.StatusOK, newReceivableResponse(rec))
}

func (h *ReceivableHandler) respondServiceError(w http.ResponseWriter, err error, id uuid.UUID) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not Found", fmt.Sprintf("Receivable not found: %s", id))
	case errors.Is(err, service.ErrAlreadySettled):
		respondError(w, http.StatusConflict, "Conflict", fmt.Sprintf("Receivable already received: %s", id))
	default:
		respondError(w, http.StatusInternalServerError, "Internal Error", err.Error())
	}
}
