package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

const petColumns = `id, name, category, age, location, short_description, long_description, image_url, adopted, owner_email, created_at`

// PetRepositoryPG implements domain.PetRepository using PostgreSQL.
type PetRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewPetRepository creates a new PetRepositoryPG.
func NewPetRepository(pool *pgxpool.Pool) *PetRepositoryPG {
	return &PetRepositoryPG{pool: pool}
}

// Create inserts a new listing.
func (r *PetRepositoryPG) Create(ctx context.Context, pet *domain.Pet) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO pets (id, name, category, age, location, short_description, long_description, image_url, adopted, owner_email, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`, pet.ID, pet.Name, pet.Category, pet.Age, pet.Location, pet.ShortDescription, pet.LongDescription, pet.ImageURL, pet.Adopted, pet.OwnerEmail, pet.CreatedAt)
	return err
}

// GetByID fetches a listing by id.
func (r *PetRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Pet, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1;`, id)
	return scanPet(row)
}

// List returns every listing, newest first.
func (r *PetRepositoryPG) List(ctx context.Context) ([]domain.Pet, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+petColumns+` FROM pets ORDER BY created_at DESC, id DESC;`)
	if err != nil {
		return nil, err
	}
	return collectPets(rows)
}

// ListByOwner returns the owner's listings, newest first.
func (r *PetRepositoryPG) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Pet, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+petColumns+` FROM pets WHERE owner_email = $1 ORDER BY created_at DESC, id DESC;
`, ownerEmail)
	if err != nil {
		return nil, err
	}
	return collectPets(rows)
}

// SearchAvailable runs the paginated search over unadopted listings:
// case-insensitive substring match on the name, exact category filter.
func (r *PetRepositoryPG) SearchAvailable(ctx context.Context, q domain.AvailablePetQuery) ([]domain.Pet, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+petColumns+`
FROM pets
WHERE adopted = FALSE
  AND ($1 = '' OR name ILIKE '%' || $1 || '%')
  AND ($2 = '' OR category = $2)
ORDER BY created_at DESC, id DESC
OFFSET $3 LIMIT $4;
`, q.Search, q.Category, q.Page*q.Limit, q.Limit)
	if err != nil {
		return nil, err
	}
	return collectPets(rows)
}

// Update rewrites the caller-editable fields.
func (r *PetRepositoryPG) Update(ctx context.Context, pet *domain.Pet) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE pets
SET name = $2, category = $3, age = $4, location = $5,
    short_description = $6, long_description = $7, image_url = $8
WHERE id = $1;
`, pet.ID, pet.Name, pet.Category, pet.Age, pet.Location, pet.ShortDescription, pet.LongDescription, pet.ImageURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetAdopted flips the adopted flag, transferring ownership in the same
// statement when ownerEmail is non-empty.
func (r *PetRepositoryPG) SetAdopted(ctx context.Context, id string, adopted bool, ownerEmail string) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE pets
SET adopted = $2,
    owner_email = CASE WHEN $3 = '' THEN owner_email ELSE $3 END
WHERE id = $1;
`, id, adopted, ownerEmail)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a listing.
func (r *PetRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pets WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPet(row pgx.Row) (*domain.Pet, error) {
	var p domain.Pet
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Age, &p.Location, &p.ShortDescription, &p.LongDescription, &p.ImageURL, &p.Adopted, &p.OwnerEmail, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func collectPets(rows pgx.Rows) ([]domain.Pet, error) {
	defer rows.Close()
	var items []domain.Pet
	for rows.Next() {
		var p domain.Pet
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Age, &p.Location, &p.ShortDescription, &p.LongDescription, &p.ImageURL, &p.Adopted, &p.OwnerEmail, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.PetRepository = (*PetRepositoryPG)(nil)
