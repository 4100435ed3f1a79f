package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// uniqueViolation is the PostgreSQL error code raised when an insert
// hits a unique index.
const uniqueViolation = "23505"

const requestColumns = `id, pet_id, pet_name, requester_email, requester_name, phone, address, present_owner_email, created_at`

// RequestRepositoryPG implements domain.AdoptionRequestRepository. The
// duplicate-pending-request invariant is enforced by the unique index on
// (pet_id, requester_email), which makes the check-then-insert a single
// atomic statement.
type RequestRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewRequestRepository creates a new RequestRepositoryPG.
func NewRequestRepository(pool *pgxpool.Pool) *RequestRepositoryPG {
	return &RequestRepositoryPG{pool: pool}
}

// Create inserts a pending request, failing with ErrDuplicateRequest
// when one already exists for the same pet and requester.
func (r *RequestRepositoryPG) Create(ctx context.Context, req *domain.AdoptionRequest) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO adoption_requests (id, pet_id, pet_name, requester_email, requester_name, phone, address, present_owner_email, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`, req.ID, req.PetID, req.PetName, req.RequesterEmail, req.RequesterName, req.Phone, req.Address, req.PresentOwnerEmail, req.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateRequest
		}
		return err
	}
	return nil
}

// GetByID fetches a pending request by id.
func (r *RequestRepositoryPG) GetByID(ctx context.Context, id string) (*domain.AdoptionRequest, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM adoption_requests WHERE id = $1;`, id)
	var req domain.AdoptionRequest
	if err := row.Scan(&req.ID, &req.PetID, &req.PetName, &req.RequesterEmail, &req.RequesterName, &req.Phone, &req.Address, &req.PresentOwnerEmail, &req.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// ListByOwner returns the pending requests against one owner's listings,
// newest first.
func (r *RequestRepositoryPG) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.AdoptionRequest, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+requestColumns+` FROM adoption_requests WHERE present_owner_email = $1 ORDER BY created_at DESC, id DESC;
`, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.AdoptionRequest
	for rows.Next() {
		var req domain.AdoptionRequest
		if err := rows.Scan(&req.ID, &req.PetID, &req.PetName, &req.RequesterEmail, &req.RequesterName, &req.Phone, &req.Address, &req.PresentOwnerEmail, &req.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a resolved request from the ledger.
func (r *RequestRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM adoption_requests WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.AdoptionRequestRepository = (*RequestRepositoryPG)(nil)
