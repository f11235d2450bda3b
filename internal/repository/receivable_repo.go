package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/bpofinance/bpofinance/internal/domain"
)

const receivableColumns = `id, description, customer, amount, due_date, status, category, received_at, created_at, updated_at`

// ReceivableRepository handles receivable persistence
type ReceivableRepository struct {
	db *sql.DB
}

// NewReceivableRepository creates a new receivable repository with a shared
// database connection
func NewReceivableRepository(db *sql.DB) *ReceivableRepository {
	return &ReceivableRepository{db: db}
}

// FindByID finds a receivable by ID, returning (nil, nil) when absent
func (r *ReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE id = $1`

	var rec domain.Receivable
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.Description,
		&rec.Customer,
		&rec.Amount,
		&rec.DueDate,
		&rec.Status,
		&rec.Category,
		&rec.ReceivedAt,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find receivable: %w", err)
	}

	return &rec, nil
}

// FindFiltered returns receivables matching the provided filter set
func (r *ReceivableRepository) FindFiltered(ctx context.Context, filter domain.ReceivableFilter) ([]domain.Receivable, error) {
	var where whereBuilder
	if filter.Status != nil {
		where.add("status = $%d", *filter.Status)
	}
	if filter.Customer != nil {
		where.add("LOWER(customer) LIKE $%d", containsPattern(*filter.Customer))
	}
	if filter.DueFrom != nil {
		where.add("due_date >= $%d", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		where.add("due_date <= $%d", *filter.DueTo)
	}

	query := `SELECT ` + receivableColumns + ` FROM receivables` + where.clause() + ` ORDER BY due_date, created_at`

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list receivables: %w", err)
	}
	defer rows.Close()

	receivables := make([]domain.Receivable, 0)
	for rows.Next() {
		var rec domain.Receivable
		if err := rows.Scan(
			&rec.ID,
			&rec.Description,
			&rec.Customer,
			&rec.Amount,
			&rec.DueDate,
			&rec.Status,
			&rec.Category,
			&rec.ReceivedAt,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan receivable: %w", err)
		}
		receivables = append(receivables, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receivables: %w", err)
	}

	return receivables, nil
}

// Create inserts a new receivable
func (r *ReceivableRepository) Create(ctx context.Context, rec *domain.Receivable) error {
	query := `
		INSERT INTO receivables (id, description, customer, amount, due_date, status, category, received_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Description,
		rec.Customer,
		rec.Amount,
		rec.DueDate,
		rec.Status,
		rec.Category,
		rec.ReceivedAt,
		rec.CreatedAt,
		rec.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create receivable: %w", err)
	}

	return nil
}

// Update overwrites the stored receivable row
func (r *ReceivableRepository) Update(ctx context.Context, rec *domain.Receivable) error {
	query := `
		UPDATE receivables
		SET description = $2, customer = $3, amount = $4, due_date = $5,
		    status = $6, category = $7, received_at = $8, updated_at = $9
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Description,
		rec.Customer,
		rec.Amount,
		rec.DueDate,
		rec.Status,
		rec.Category,
		rec.ReceivedAt,
		rec.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update receivable: %w", err)
	}

	return nil
}

// Delete removes a receivable by ID and reports the number of rows deleted
func (r *ReceivableRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM receivables WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete receivable: %w", err)
	}

	return result.RowsAffected()
}
