package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bpofinance/bpofinance/internal/domain"
	"github.com/bpofinance/bpofinance/internal/service"
)

type fakeReceivableStore struct {
	receivables map[uuid.UUID]domain.Receivable
}

func newFakeReceivableStore() *fakeReceivableStore {
	return &fakeReceivableStore{receivables: make(map[uuid.UUID]domain.Receivable)}
}

func (s *fakeReceivableStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Receivable, error) {
	r, ok := s.receivables[id]
	if !ok {
		return nil, nil
	}
	copied := r
	return &copied, nil
}

func (s *fakeReceivableStore) FindFiltered(_ context.Context, filter domain.ReceivableFilter) ([]domain.Receivable, error) {
	var result []domain.Receivable
	for _, r := range s.receivables {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.Customer != nil && !strings.Contains(strings.ToLower(r.Customer), strings.ToLower(*filter.Customer)) {
			continue
		}
		if filter.DueFrom != nil && r.DueDate.Before(*filter.DueFrom) {
			continue
		}
		if filter.DueTo != nil && r.DueDate.After(*filter.DueTo) {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (s *fakeReceivableStore) Create(_ context.Context, r *domain.Receivable) error {
	s.receivables[r.ID] = *r
	return nil
}

func (s *fakeReceivableStore) Update(_ context.Context, r *domain.Receivable) error {
	s.receivables[r.ID] = *r
	return nil
}

func (s *fakeReceivableStore) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := s.receivables[id]; !ok {
		return 0, nil
	}
	delete(s.receivables, id)
	return 1, nil
}

func newReceivableTestRouter(store *fakeReceivableStore) http.Handler {
	svc := service.NewReceivableService(store, fixedClock{now: handlerTestNow})
	h := NewReceivableHandler(svc)

	r := chi.NewRouter()
	r.Route("/api/receivables", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
			r.Patch("/receive", h.Receive)
		})
	})
	return r
}

func seedReceivable(store *fakeReceivableStore, customer string, dueOffsetDays int, status domain.ReceivableStatus) uuid.UUID {
	id := uuid.New()
	rec := domain.Receivable{
		ID:          id,
		Description: "Invoice for " + customer,
		Customer:    customer,
		Amount:      decimal.RequireFromString("8400.00"),
		DueDate:     domain.DateOnly(handlerTestNow).AddDate(0, 0, dueOffsetDays),
		Status:      status,
		CreatedAt:   handlerTestNow,
	}
	if status == domain.ReceivableStatusReceived {
		received := handlerTestNow
		rec.ReceivedAt = &received
	}
	store.receivables[id] = rec
	return id
}

func TestReceivableCreate(t *testing.T) {
	router := newReceivableTestRouter(newFakeReceivableStore())

	body := `{"description":"Consulting sprint","customer":"Globex Corp","amount":8400.00,"dueDate":"2026-07-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/receivables", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (body: %s)", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	decodeBody(t, w.Body.Bytes(), &resp)
	if resp["status"] != "PENDING" {
		t.Errorf("expected status PENDING got %v", resp["status"])
	}
	if resp["receivedAt"] != nil {
		t.Errorf("expected receivedAt null got %v", resp["receivedAt"])
	}
}

func TestReceivableCreateValidation(t *testing.T) {
	router := newReceivableTestRouter(newFakeReceivableStore())

	body := `{"description":"","customer":"  ","amount":10,"dueDate":"2026-07-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/receivables", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	var errResp ErrorResponse
	decodeBody(t, w.Body.Bytes(), &errResp)
	want := "description: must not be blank; customer: must not be blank"
	if errResp.Message == nil || *errResp.Message != want {
		t.Errorf("expected message %q got %v", want, errResp.Message)
	}
}

func TestReceivableReceive(t *testing.T) {
	store := newFakeReceivableStore()
	id := seedReceivable(store, "Initech", -7, domain.ReceivableStatusPending)
	router := newReceivableTestRouter(store)

	req := httptest.NewRequest(http.MethodPatch, "/api/receivables/"+id.String()+"/receive", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (body: %s)", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	decodeBody(t, w.Body.Bytes(), &resp)
	if resp["status"] != "RECEIVED" {
		t.Errorf("expected status RECEIVED got %v", resp["status"])
	}
	if resp["receivedAt"] == nil {
		t.Error("expected receivedAt set")
	}

	// second receive is rejected
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest(http.MethodPatch, "/api/receivables/"+id.String()+"/receive", nil))
	if w2.Code != http.StatusConflict {
		t.Fatalf("expected 409 on repeated receive got %d", w2.Code)
	}
}

func TestReceivableListDerivesOverdue(t *testing.T) {
	store := newFakeReceivableStore()
	seedReceivable(store, "Initech", -7, domain.ReceivableStatusPending)
	seedReceivable(store, "Globex Corp", 14, domain.ReceivableStatusPending)
	seedReceivable(store, "Umbrella Ltd", -40, domain.ReceivableStatusReceived)
	router := newReceivableTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/receivables", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	var resp []map[string]interface{}
	decodeBody(t, w.Body.Bytes(), &resp)
	if len(resp) != 3 {
		t.Fatalf("expected 3 receivables got %d", len(resp))
	}

	statuses := make(map[string]string)
	for _, r := range resp {
		statuses[r["customer"].(string)] = r["status"].(string)
	}
	if statuses["Initech"] != "OVERDUE" {
		t.Errorf("expected Initech OVERDUE got %s", statuses["Initech"])
	}
	if statuses["Globex Corp"] != "PENDING" {
		t.Errorf("expected Globex Corp PENDING got %s", statuses["Globex Corp"])
	}
	if statuses["Umbrella Ltd"] != "RECEIVED" {
		t.Errorf("expected Umbrella Ltd RECEIVED got %s", statuses["Umbrella Ltd"])
	}
}

func TestReceivableCustomerFilter(t *testing.T) {
	store := newFakeReceivableStore()
	seedReceivable(store, "Initech", -7, domain.ReceivableStatusPending)
	seedReceivable(store, "Globex Corp", 14, domain.ReceivableStatusPending)
	router := newReceivableTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/receivables?customer=glob", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp []map[string]interface{}
	decodeBody(t, w.Body.Bytes(), &resp)
	if len(resp) != 1 {
		t.Fatalf("expected 1 receivable got %d", len(resp))
	}
	if resp[0]["customer"] != "Globex Corp" {
		t.Errorf("expected Globex Corp got %v", resp[0]["customer"])
	}
}

func TestReceivableDeleteNotFound(t *testing.T) {
	router := newReceivableTestRouter(newFakeReceivableStore())

	req := httptest.NewRequest(http.MethodDelete, "/api/receivables/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
