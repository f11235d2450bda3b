package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bpofinance/bpofinance/internal/domain"
	"github.com/bpofinance/bpofinance/internal/service"
)

const dateLayout = "2006-01-02"

// PayableHandler handles payable HTTP requests
type PayableHandler struct {
	service *service.PayableService
}

// NewPayableHandler creates a new payable handler
func NewPayableHandler(svc *service.PayableService) *PayableHandler {
	return &PayableHandler{service: svc}
}

// payableRequest is the create/update request body
type payableRequest struct {
	Description string           `json:"description"`
	Vendor      string           `json:"vendor"`
	Amount      *decimal.Decimal `json:"amount"`
	DueDate     *string          `json:"dueDate"`
	Category    *string          `json:"category"`
}

// validate collects per-field errors and assembles the service input
func (req *payableRequest) validate() (service.PayableInput, []string) {
	var fieldErrors []string
	var in service.PayableInput

	if strings.TrimSpace(req.Description) == "" {
		fieldErrors = append(fieldErrors, "description: must not be blank")
	}
	if strings.TrimSpace(req.Vendor) == "" {
		fieldErrors = append(fieldErrors, "vendor: must not be blank")
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
	in.Vendor = req.Vendor
	in.Amount = *req.Amount
	in.Category = req.Category
	return in, nil
}

// payableResponse is the response body for a single payable
type payableResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Vendor      string          `json:"vendor"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"dueDate"`
	Status      string          `json:"status"`
	Category    *string         `json:"category"`
	PaidAt      *string         `json:"paidAt"`
}

func newPayableResponse(p *domain.Payable) payableResponse {
	resp := payableResponse{
		ID:          p.ID.String(),
		Description: p.Description,
		Vendor:      p.Vendor,
		Amount:      p.Amount,
		DueDate:     p.DueDate.Format(dateLayout),
		Status:      string(p.Status),
		Category:    p.Category,
	}
	if p.PaidAt != nil {
		paidAt := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	return resp
}

// List handles GET /api/payables
func (h *PayableHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, fieldErrors := parsePayableFilter(r)
	if len(fieldErrors) > 0 {
		respondValidationError(w, fieldErrors)
		return
	}

	payables, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal Error", err.Error())
		return
	}

	responses := make([]payableResponse, 0, len(payables))
	for i := range payables {
		responses = append(responses, newPayableResponse(&payables[i]))
	}

	respondJSON(w, http.StatusOK, responses)
}

func parsePayableFilter(r *http.Request) (domain.PayableFilter, []string) {
	var filter domain.PayableFilter
	var fieldErrors []string
	q := r.URL.Query()

	if raw := q.Get("status"); raw != "" {
		status, err := domain.ParsePayableStatus(raw)
		if err != nil {
			fieldErrors = append(fieldErrors, "status: must be one of PENDING, PAID, OVERDUE")
		} else {
			filter.Status = &status
		}
	}
	if raw := q.Get("vendor"); raw != "" {
		vendor := raw
		filter.Vendor = &vendor
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

// Create handles POST /api/payables
func (h *PayableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req payableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Malformed Request", "invalid request body: "+err.Error())
		return
	}

	in, fieldErrors := req.validate()
	if len(fieldErrors) > 0 {
		respondValidationError(w, fieldErrors)
		return
	}

	p, err := h.service.Create(r.Context(), in)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal Error", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, newPayableResponse(p))
}

// Get handles GET /api/payables/{id}
func (h *PayableHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	p, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, id)
		return
	}

	respondJSON(w, http.StatusOK, newPayableResponse(p))
}

// Update handles PUT /api/payables/{id}
func (h *PayableHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req payableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Malformed Request", "invalid request body: "+err.Error())
		return
	}

	in, fieldErrors := req.validate()
	if len(fieldErrors) > 0 {
		respondValidationError(w, fieldErrors)
		return
	}

	p, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.respondServiceError(w, err, id)
		return
	}

	respondJSON(w, http.StatusOK, newPayableResponse(p))
}

// Delete handles DELETE /api/payables/{id}
func (h *PayableHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Pay handles PATCH /api/payables/{id}/pay
func (h *PayableHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	p, err := h.service.Pay(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, id)
		return
	}

	respondJSON(w, http.StatusOK, newPayableResponse(p))
}

func (h *PayableHandler) respondServiceError(w http.ResponseWriter, err error, id uuid.UUID) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not Found", fmt.Sprintf("Payable not found: %s", id))
	case errors.Is(err, service.ErrAlreadySettled):
		respondError(w, http.StatusConflict, "Conflict", fmt.Sprintf("Payable already paid: %s", id))
	default:
		respondError(w, http.StatusInternalServerError, "Internal Error", err.Error())
	}
}

// parseID extracts and validates the {id} path parameter
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondValidationError(w, []string{"id: must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}
