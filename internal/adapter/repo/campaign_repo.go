package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

const campaignColumns = `id, creator_email, name, category, image_url, short_description, long_description, target_int, donated_int, paused, last_date, created_at`

// CampaignRepositoryPG implements domain.CampaignRepository. The donator
// sequence lives in campaign_donators ordered by insertion; appends and
// removals update donated_int inside a single transaction so the running
// total never drifts from the sum of the entries.
type CampaignRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository creates a new CampaignRepositoryPG.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{pool: pool}
}

// Create inserts a new campaign.
func (r *CampaignRepositoryPG) Create(ctx context.Context, campaign *domain.Campaign) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO campaigns (id, creator_email, name, category, image_url, short_description, long_description, target_int, donated_int, paused, last_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`, campaign.ID, campaign.CreatorEmail, campaign.Name, campaign.Category, campaign.ImageURL, campaign.ShortDescription, campaign.LongDescription, campaign.TargetInt, campaign.DonatedInt, campaign.Paused, campaign.LastDate, campaign.CreatedAt)
	return err
}

// GetByID fetches a campaign with its donator sequence. Both reads run
// in one transaction so the returned total always equals the sum of the
// returned entries, even under concurrent donator writes.
func (r *CampaignRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	var campaign *domain.Campaign
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1;`, id)
		c, err := scanCampaign(row)
		if err != nil {
			return err
		}
		rows, err := tx.Query(ctx, `
SELECT email, transaction_id, amount_int FROM campaign_donators WHERE campaign_id = $1 ORDER BY position;
`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var d domain.Donator
			if err := rows.Scan(&d.Email, &d.TransactionID, &d.AmountInt); err != nil {
				return err
			}
			c.Donators = append(c.Donators, d)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		campaign = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

// List runs the paginated listing, newest first. Donator sequences are
// not loaded for list views.
func (r *CampaignRepositoryPG) List(ctx context.Context, q domain.CampaignQuery) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+campaignColumns+`
FROM campaigns
WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
  AND ($2 = '' OR category = $2)
  AND ($3 = '' OR id <> $3)
ORDER BY created_at DESC, id DESC
OFFSET $4 LIMIT $5;
`, q.Search, q.Category, q.ExcludeID, q.Page*q.Limit, q.Limit)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

// ListByCreator returns one creator's campaigns, newest first.
func (r *CampaignRepositoryPG) ListByCreator(ctx context.Context, creatorEmail string) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+campaignColumns+` FROM campaigns WHERE creator_email = $1 ORDER BY created_at DESC, id DESC;
`, creatorEmail)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

// Update rewrites the descriptive fields. donated_int and the donator
// sequence are only ever touched by AppendDonator and
// RemoveDonatorByTransaction.
func (r *CampaignRepositoryPG) Update(ctx context.Context, campaign *domain.Campaign) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE campaigns
SET name = $2, category = $3, image_url = $4, short_description = $5,
    long_description = $6, target_int = $7, last_date = $8
WHERE id = $1;
`, campaign.ID, campaign.Name, campaign.Category, campaign.ImageURL, campaign.ShortDescription, campaign.LongDescription, campaign.TargetInt, campaign.LastDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetPaused toggles donation intake.
func (r *CampaignRepositoryPG) SetPaused(ctx context.Context, id string, paused bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET paused = $2 WHERE id = $1;`, id, paused)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a campaign and its donator rows.
func (r *CampaignRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendDonator inserts the donator row and increments donated_int in
// one transaction. A transaction id already present on the campaign
// fails with ErrDuplicateTransaction via the unique index.
func (r *CampaignRepositoryPG) AppendDonator(ctx context.Context, campaignID string, d domain.Donator) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
UPDATE campaigns SET donated_int = donated_int + $2 WHERE id = $1;
`, campaignID, d.AmountInt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		_, err = tx.Exec(ctx, `
INSERT INTO campaign_donators (campaign_id, email, transaction_id, amount_int)
VALUES ($1, $2, $3, $4);
`, campaignID, d.Email, d.TransactionID, d.AmountInt)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateTransaction
		}
		return err
	})
}

// RemoveDonatorByTransaction deletes the donator row matched by
// transaction id and decrements donated_int by exactly that row's
// amount, in one transaction. Returns the removed entry.
func (r *CampaignRepositoryPG) RemoveDonatorByTransaction(ctx context.Context, campaignID, transactionID string) (*domain.Donator, error) {
	var removed domain.Donator
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
DELETE FROM campaign_donators
WHERE campaign_id = $1 AND transaction_id = $2
RETURNING email, transaction_id, amount_int;
`, campaignID, transactionID)
		if err := row.Scan(&removed.Email, &removed.TransactionID, &removed.AmountInt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return err
		}
		tag, err := tx.Exec(ctx, `
UPDATE campaigns SET donated_int = donated_int - $2 WHERE id = $1;
`, campaignID, removed.AmountInt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("campaign %s missing for donator %s: %w", campaignID, transactionID, domain.ErrInconsistentState)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	if err := row.Scan(&c.ID, &c.CreatorEmail, &c.Name, &c.Category, &c.ImageURL, &c.ShortDescription, &c.LongDescription, &c.TargetInt, &c.DonatedInt, &c.Paused, &c.LastDate, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func collectCampaigns(rows pgx.Rows) ([]domain.Campaign, error) {
	defer rows.Close()
	var items []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(&c.ID, &c.CreatorEmail, &c.Name, &c.Category, &c.ImageURL, &c.ShortDescription, &c.LongDescription, &c.TargetInt, &c.DonatedInt, &c.Paused, &c.LastDate, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.CampaignRepository = (*CampaignRepositoryPG)(nil)
