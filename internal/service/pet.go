package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"server/internal/domain"
)

// PetService manages pet listings.
type PetService struct {
	pets domain.PetRepository
}

// NewPetService creates a PetService.
func NewPetService(pets domain.PetRepository) *PetService {
	return &PetService{pets: pets}
}

// PetInput carries the caller-supplied listing fields.
type PetInput struct {
	Name             string
	Category         string
	Age              string
	Location         string
	ShortDescription string
	LongDescription  string
	ImageURL         string
}

// Create stores a new listing owned by the principal, not yet adopted.
func (s *PetService) Create(ctx context.Context, p domain.Principal, in PetInput) (*domain.Pet, error) {
	if p.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	pet := &domain.Pet{
		ID:               uuid.NewString(),
		Name:             in.Name,
		Category:         in.Category,
		Age:              in.Age,
		Location:         in.Location,
		ShortDescription: in.ShortDescription,
		LongDescription:  in.LongDescription,
		ImageURL:         in.ImageURL,
		Adopted:          false,
		OwnerEmail:       p.Email,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.pets.Create(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

// Get returns a single listing. Public.
func (s *PetService) Get(ctx context.Context, id string) (*domain.Pet, error) {
	return s.pets.GetByID(ctx, id)
}

// List returns every listing, adopted or not. Admin only.
func (s *PetService) List(ctx context.Context, p domain.Principal) ([]domain.Pet, error) {
	if err := domain.AuthorizeAdmin(p); err != nil {
		return nil, err
	}
	return s.pets.List(ctx)
}

// ListByOwner returns the principal's own listings, or any owner's when
// the principal is an admin.
func (s *PetService) ListByOwner(ctx context.Context, p domain.Principal, ownerEmail string) ([]domain.Pet, error) {
	if err := domain.AuthorizeOwner(p, ownerEmail); err != nil {
		return nil, err
	}
	return s.pets.ListByOwner(ctx, ownerEmail)
}

// SearchAvailable runs the public paginated search over unadopted
// listings, newest first. Returns the page plus the follow-up page
// number, nil on the last page.
func (s *PetService) SearchAvailable(ctx context.Context, q domain.AvailablePetQuery) ([]domain.Pet, *int, error) {
	items, err := s.pets.SearchAvailable(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	return items, NextPage(q.Page, q.Limit, len(items)), nil
}

// Update rewrites the caller-editable fields. Creator or admin.
func (s *PetService) Update(ctx context.Context, p domain.Principal, id string, in PetInput) (*domain.Pet, error) {
	pet, err := s.pets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.AuthorizeOwner(p, pet.OwnerEmail); err != nil {
		return nil, err
	}
	pet.Name = in.Name
	pet.Category = in.Category
	pet.Age = in.Age
	pet.Location = in.Location
	pet.ShortDescription = in.ShortDescription
	pet.LongDescription = in.LongDescription
	pet.ImageURL = in.ImageURL
	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

// SetAdopted flips the adopted flag. Normal flow only ever sets it to
// true, but the interface permits flipping back. Creator or admin.
func (s *PetService) SetAdopted(ctx context.Context, p domain.Principal, id string, adopted bool) error {
	pet, err := s.pets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.AuthorizeOwner(p, pet.OwnerEmail); err != nil {
		return err
	}
	return s.pets.SetAdopted(ctx, id, adopted, "")
}

// Delete removes a listing. Creator or admin.
func (s *PetService) Delete(ctx context.Context, p domain.Principal, id string) error {
	pet, err := s.pets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.AuthorizeOwner(p, pet.OwnerEmail); err != nil {
		return err
	}
	return s.pets.Delete(ctx, id)
}
