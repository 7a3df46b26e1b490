package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ru28/complaint-management-system/internal/domain"
)

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error)
	ListWithLatestResolution(ctx context.Context) ([]domain.ComplaintWithResolution, error)
	SetStatus(ctx context.Context, id string, status domain.ComplaintStatus) error
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, user_id, first_name, last_name, email, phone_number, detail, status, created_at, updated_at`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (user_id, first_name, last_name, email, phone_number, detail, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`

	return querierFrom(ctx, r.pool).QueryRow(ctx, query,
		complaint.UserID,
		complaint.FirstName,
		complaint.LastName,
		complaint.Email,
		complaint.PhoneNumber,
		complaint.Detail,
		complaint.Status,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaints WHERE id=$1`

	var complaint domain.Complaint
	if err := querierFrom(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&complaint.ID,
		&complaint.UserID,
		&complaint.FirstName,
		&complaint.LastName,
		&complaint.Email,
		&complaint.PhoneNumber,
		&complaint.Detail,
		&complaint.Status,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaints WHERE user_id=$1 ORDER BY created_at DESC`

	rows, err := querierFrom(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

// ListWithLatestResolution joins every complaint with its most recently
// updated resolution, newest complaints first.
func (r *complaintRepository) ListWithLatestResolution(ctx context.Context) ([]domain.ComplaintWithResolution, error) {
	const query = `
        SELECT c.id, c.user_id, c.first_name, c.last_name, c.email, c.phone_number,
               c.detail, c.status, c.created_at, c.updated_at,
               r.id, r.complaint_id, r.response, r.created_at, r.updated_at
        FROM complaints c
        LEFT JOIN LATERAL (
            SELECT id, complaint_id, response, created_at, updated_at
            FROM resolutions
            WHERE complaint_id = c.id
            ORDER BY updated_at DESC
            LIMIT 1
        ) r ON TRUE
        ORDER BY c.created_at DESC`

	rows, err := querierFrom(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ComplaintWithResolution
	for rows.Next() {
		var item domain.ComplaintWithResolution
		var resID, resComplaintID, resResponse *string
		var resCreatedAt, resUpdatedAt *time.Time
		if err := rows.Scan(
			&item.Complaint.ID,
			&item.Complaint.UserID,
			&item.Complaint.FirstName,
			&item.Complaint.LastName,
			&item.Complaint.Email,
			&item.Complaint.PhoneNumber,
			&item.Complaint.Detail,
			&item.Complaint.Status,
			&item.Complaint.CreatedAt,
			&item.Complaint.UpdatedAt,
			&resID,
			&resComplaintID,
			&resResponse,
			&resCreatedAt,
			&resUpdatedAt,
		); err != nil {
			return nil, err
		}
		if resID != nil {
			item.Resolution = &domain.Resolution{
				ID:          *resID,
				ComplaintID: *resComplaintID,
				Response:    *resResponse,
				CreatedAt:   *resCreatedAt,
				UpdatedAt:   *resUpdatedAt,
			}
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *complaintRepository) SetStatus(ctx context.Context, id string, status domain.ComplaintStatus) error {
	const query = `UPDATE complaints SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := querierFrom(ctx, r.pool).Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.UserID,
			&complaint.FirstName,
			&complaint.LastName,
			&complaint.Email,
			&complaint.PhoneNumber,
			&complaint.Detail,
			&complaint.Status,
			&complaint.CreatedAt,
			&complaint.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}
