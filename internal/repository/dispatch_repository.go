package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/termii-gateway/internal/domain"
)

// DispatchRepository stores the dispatch log.
type DispatchRepository struct {
	db *sqlx.DB
}

func NewDispatchRepository(db *sqlx.DB) *DispatchRepository {
	return &DispatchRepository{db: db}
}

func (r *DispatchRepository) Create(ctx context.Context, d *domain.Dispatch) error {
	query := `
		INSERT INTO dispatches (id, operation, status_code, error, duration_ms, created_at)
		VALUES (:id, :operation, :status_code, :error, :duration_ms, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, d); err != nil {
		return fmt.Errorf("failed to create dispatch: %w", err)
	}

	return nil
}

// GetAll returns a page of dispatches, newest first, optionally narrowed to
// one operation.
func (r *DispatchRepository) GetAll(
	ctx context.Context,
	operation *string,
	page, pageSize int,
) ([]domain.Dispatch, int64, error) {
	offset := (page - 1) * pageSize

	where := ""
	var args []any
	if operation != nil {
		where = "WHERE operation = ?"
		args = append(args, *operation)
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*) FROM dispatches " + where
	if err := r.db.GetContext(ctx, &totalCount, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count dispatches: %w", err)
	}

	query := `
		SELECT id, operation, status_code, error, duration_ms, created_at
		FROM dispatches
		` + where + `
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	dispatches := []domain.Dispatch{}
	if err := r.db.SelectContext(ctx, &dispatches, query, append(args, pageSize, offset)...); err != nil {
		return nil, 0, fmt.Errorf("failed to get dispatches: %w", err)
	}

	return dispatches, totalCount, nil
}

// GetStats counts dispatches answered with a 2xx status against the rest.
func (r *DispatchRepository) GetStats(ctx context.Context) (domain.DispatchStats, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN error IS NULL AND status_code BETWEEN 200 AND 299 THEN 1 ELSE 0 END), 0) AS succeeded,
			COALESCE(SUM(CASE WHEN error IS NOT NULL OR status_code NOT BETWEEN 200 AND 299 THEN 1 ELSE 0 END), 0) AS failed
		FROM dispatches
	`

	var stats domain.DispatchStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return domain.DispatchStats{}, fmt.Errorf("failed to get dispatch stats: %w", err)
	}

	return stats, nil
}
