package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ru28/complaint-management-system/internal/domain"
)

// ResolutionRepository manages resolution records. Resolutions are
// append-only; there is no update or delete.
type ResolutionRepository interface {
	Create(ctx context.Context, resolution *domain.Resolution) error
	ListByComplaint(ctx context.Context, complaintID string) ([]domain.Resolution, error)
}

type resolutionRepository struct {
	pool *pgxpool.Pool
}

// NewResolutionRepository instantiates repository.
func NewResolutionRepository(pool *pgxpool.Pool) ResolutionRepository {
	return &resolutionRepository{pool: pool}
}

func (r *resolutionRepository) Create(ctx context.Context, resolution *domain.Resolution) error {
	const query = `
        INSERT INTO resolutions (complaint_id, response)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`

	return querierFrom(ctx, r.pool).QueryRow(ctx, query,
		resolution.ComplaintID,
		resolution.Response,
	).Scan(&resolution.ID, &resolution.CreatedAt, &resolution.UpdatedAt)
}

func (r *resolutionRepository) ListByComplaint(ctx context.Context, complaintID string) ([]domain.Resolution, error) {
	const query = `
        SELECT id, complaint_id, response, created_at, updated_at
        FROM resolutions WHERE complaint_id=$1
        ORDER BY updated_at DESC`

	rows, err := querierFrom(ctx, r.pool).Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResolutions(rows)
}

func scanResolutions(rows pgx.Rows) ([]domain.Resolution, error) {
	var result []domain.Resolution
	for rows.Next() {
		var resolution domain.Resolution
		if err := rows.Scan(
			&resolution.ID,
			&resolution.ComplaintID,
			&resolution.Response,
			&resolution.CreatedAt,
			&resolution.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, resolution)
	}
	return result, rows.Err()
}
