package repository

import (
	"testing"
	"time"

	"github.com/bpofinance/bpofinance/internal/domain"
)

func TestWhereBuilder_NoConditions(t *testing.T) {
	var b whereBuilder
	if got := b.clause(); got != "" {
		t.Errorf("empty builder produced clause %q, want empty string", got)
	}
	if len(b.args) != 0 {
		t.Errorf("empty builder produced %d args", len(b.args))
	}
}

func TestWhereBuilder_SingleCondition(t *testing.T) {
	var b whereBuilder
	b.add("status = $%d", "PENDING")

	if got, want := b.clause(), " WHERE status = $1"; got != want {
		t.Errorf("clause() = %q, want %q", got, want)
	}
	if len(b.args) != 1 || b.args[0] != "PENDING" {
		t.Errorf("args = %v, want [PENDING]", b.args)
	}
}

func TestWhereBuilder_ConjunctionAndOrdinals(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	status := domain.PayableStatusPending
	vendor := "Fornecedor A"
	filter := domain.PayableFilter{Status: &status, Vendor: &vendor, DueFrom: &from, DueTo: &to}

	var b whereBuilder
	b.add("status = $%d", *filter.Status)
	b.add("LOWER(vendor) LIKE $%d", containsPattern(*filter.Vendor))
	b.add("due_date >= $%d", *filter.DueFrom)
	b.add("due_date <= $%d", *filter.DueTo)

	want := " WHERE status = $1 AND LOWER(vendor) LIKE $2 AND due_date >= $3 AND due_date <= $4"
	if got := b.clause(); got != want {
		t.Errorf("clause() = %q, want %q", got, want)
	}
	if len(b.args) != 4 {
		t.Fatalf("args = %v, want 4 entries", b.args)
	}
	if b.args[1] != "%fornecedor a%" {
		t.Errorf("vendor arg = %v, want %%fornecedor a%%", b.args[1])
	}
}

func TestWhereBuilder_OpenEndedRange(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var b whereBuilder
	b.add("due_date >= $%d", from)

	if got, want := b.clause(), " WHERE due_date >= $1"; got != want {
		t.Errorf("clause() = %q, want %q", got, want)
	}
}

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fornecedor A", "%fornecedor a%"},
		{"ACME", "%acme%"},
		{"", "%%"},
	}

	for _, tt := range tests {
		if got := containsPattern(tt.in); got != tt.want {
			t.Errorf("containsPattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
