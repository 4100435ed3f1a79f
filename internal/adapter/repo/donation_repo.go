package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

const donationColumns = `id, campaign_id, campaign_name, email, transaction_id, amount_int, refunded, created_at`

// DonationRepositoryPG implements domain.DonationRecordRepository using
// PostgreSQL. Records are the audit trail: inserted once, flipped to
// refunded at most once, never deleted.
type DonationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepositoryPG {
	return &DonationRepositoryPG{pool: pool}
}

// Create inserts a new donation record.
func (r *DonationRepositoryPG) Create(ctx context.Context, rec *domain.DonationRecord) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO donation_records (id, campaign_id, campaign_name, email, transaction_id, amount_int, refunded, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`, rec.ID, rec.CampaignID, rec.CampaignName, rec.Email, rec.TransactionID, rec.AmountInt, rec.Refunded, rec.CreatedAt)
	return err
}

// GetByID fetches a record by id.
func (r *DonationRepositoryPG) GetByID(ctx context.Context, id string) (*domain.DonationRecord, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+donationColumns+` FROM donation_records WHERE id = $1;`, id)
	var rec domain.DonationRecord
	if err := row.Scan(&rec.ID, &rec.CampaignID, &rec.CampaignName, &rec.Email, &rec.TransactionID, &rec.AmountInt, &rec.Refunded, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ListByDonator returns one donor's records, newest first.
func (r *DonationRepositoryPG) ListByDonator(ctx context.Context, email string) ([]domain.DonationRecord, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+donationColumns+` FROM donation_records WHERE email = $1 ORDER BY created_at DESC, id DESC;
`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.DonationRecord
	for rows.Next() {
		var rec domain.DonationRecord
		if err := rows.Scan(&rec.ID, &rec.CampaignID, &rec.CampaignName, &rec.Email, &rec.TransactionID, &rec.AmountInt, &rec.Refunded, &rec.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// SetRefunded marks the audit record.
func (r *DonationRepositoryPG) SetRefunded(ctx context.Context, id string, refunded bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE donation_records SET refunded = $2 WHERE id = $1;`, id, refunded)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.DonationRecordRepository = (*DonationRepositoryPG)(nil)
