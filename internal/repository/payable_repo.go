package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/bpofinance/bpofinance/internal/domain"
)

const payableColumns = `id, description, vendor, amount, due_date, status, category, paid_at, created_at, updated_at`

// PayableRepository handles payable persistence
type PayableRepository struct {
	db *sql.DB
}

// NewPayableRepository creates a new payable repository and opens the
// database connection shared with the other repositories
func NewPayableRepository(databaseURL string) (*PayableRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return &PayableRepository{db: db}, nil
}

// Close closes the database connection
func (r *PayableRepository) Close() error {
	return r.db.Close()
}

// GetDB returns the underlying database connection for sharing
func (r *PayableRepository) GetDB() *sql.DB {
	return r.db
}

// FindByID finds a payable by ID, returning (nil, nil) when absent
func (r *PayableRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payable, error) {
	query := `SELECT ` + payableColumns + ` FROM payables WHERE id = $1`

	var p domain.Payable
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Description,
		&p.Vendor,
		&p.Amount,
		&p.DueDate,
		&p.Status,
		&p.Category,
		&p.PaidAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payable: %w", err)
	}

	return &p, nil
}

// FindFiltered returns payables matching the provided filter set. Omitted
// filters impose no constraint; no filters at all returns every record.
func (r *PayableRepository) FindFiltered(ctx context.Context, filter domain.PayableFilter) ([]domain.Payable, error) {
	var where whereBuilder
	if filter.Status != nil {
		where.add("status = $%d", *filter.Status)
	}
	if filter.Vendor != nil {
		where.add("LOWER(vendor) LIKE $%d", containsPattern(*filter.Vendor))
	}
	if filter.DueFrom != nil {
		where.add("due_date >= $%d", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		where.add("due_date <= $%d", *filter.DueTo)
	}

	query := `SELECT ` + payableColumns + ` FROM payables` + where.clause() + ` ORDER BY due_date, created_at`

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payables: %w", err)
	}
	defer rows.Close()

	payables := make([]domain.Payable, 0)
	for rows.Next() {
		var p domain.Payable
		if err := rows.Scan(
			&p.ID,
			&p.Description,
			&p.Vendor,
			&p.Amount,
			&p.DueDate,
			&p.Status,
			&p.Category,
			&p.PaidAt,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payable: %w", err)
		}
		payables = append(payables, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payables: %w", err)
	}

	return payables, nil
}

// Create inserts a new payable
func (r *PayableRepository) Create(ctx context.Context, p *domain.Payable) error {
	query := `
		INSERT INTO payables (id, description, vendor, amount, due_date, status, category, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Description,
		p.Vendor,
		p.Amount,
		p.DueDate,
		p.Status,
		p.Category,
		p.PaidAt,
		p.CreatedAt,
		p.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create payable: %w", err)
	}

	return nil
}

// Update overwrites the stored payable row
func (r *PayableRepository) Update(ctx context.Context, p *domain.Payable) error {
	query := `
		UPDATE payables
		SET description = $2, vendor = $3, amount = $4, due_date = $5,
		    status = $6, category = $7, paid_at = $8, updated_at = $9
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Description,
		p.Vendor,
		p.Amount,
		p.DueDate,
		p.Status,
		p.Category,
		p.PaidAt,
		p.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update payable: %w", err)
	}

	return nil
}

// Delete removes a payable by ID and reports the number of rows deleted
func (r *PayableRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM payables WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete payable: %w", err)
	}

	return result.RowsAffected()
}
