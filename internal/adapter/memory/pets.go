package memory

import (
	"context"
	"sync"

	"server/internal/domain"
)

// PetStore implements domain.PetRepository.
type PetStore struct {
	mu   sync.Mutex
	pets map[string]domain.Pet
}

func (s *PetStore) Create(ctx context.Context, pet *domain.Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pets[pet.ID] = *pet
	return nil
}

func (s *PetStore) GetByID(ctx context.Context, id string) (*domain.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := p
	return &out, nil
}

func (s *PetStore) List(ctx context.Context) ([]domain.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(domain.Pet) bool { return true }), nil
}

func (s *PetStore) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(p domain.Pet) bool { return p.OwnerEmail == ownerEmail }), nil
}

func (s *PetStore) SearchAvailable(ctx context.Context, q domain.AvailablePetQuery) ([]domain.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.sorted(func(p domain.Pet) bool {
		if p.Adopted {
			return false
		}
		if !containsFold(p.Name, q.Search) {
			return false
		}
		return q.Category == "" || p.Category == q.Category
	})
	return paginate(items, q.Page, q.Limit), nil
}

func (s *PetStore) Update(ctx context.Context, pet *domain.Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pets[pet.ID]; !ok {
		return domain.ErrNotFound
	}
	s.pets[pet.ID] = *pet
	return nil
}

// SetAdopted flips the adopted flag and, when ownerEmail is non-empty,
// transfers ownership in the same step.
func (s *PetStore) SetAdopted(ctx context.Context, id string, adopted bool, ownerEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pets[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Adopted = adopted
	if ownerEmail != "" {
		p.OwnerEmail = ownerEmail
	}
	s.pets[id] = p
	return nil
}

func (s *PetStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pets[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.pets, id)
	return nil
}

func (s *PetStore) sorted(keep func(domain.Pet) bool) []domain.Pet {
	items := make([]domain.Pet, 0, len(s.pets))
	for _, p := range s.pets {
		if keep(p) {
			items = append(items, p)
		}
	}
	byCreatedDesc(items,
		func(p domain.Pet) int64 { return p.CreatedAt.UnixNano() },
		func(p domain.Pet) string { return p.ID })
	return items
}

var _ domain.PetRepository = (*PetStore)(nil)
