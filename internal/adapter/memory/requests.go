package memory

import (
	"context"
	"sync"

	"server/internal/domain"
)

// RequestStore implements domain.AdoptionRequestRepository. The duplicate
// check and the insert run under the same lock.
type RequestStore struct {
	mu       sync.Mutex
	requests map[string]domain.AdoptionRequest
}

func (s *RequestStore) Create(ctx context.Context, req *domain.AdoptionRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.requests {
		if existing.PetID == req.PetID && existing.RequesterEmail == req.RequesterEmail {
			return domain.ErrDuplicateRequest
		}
	}
	s.requests[req.ID] = *req
	return nil
}

func (s *RequestStore) GetByID(ctx context.Context, id string) (*domain.AdoptionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := r
	return &out, nil
}

func (s *RequestStore) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.AdoptionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.AdoptionRequest, 0)
	for _, r := range s.requests {
		if r.PresentOwnerEmail == ownerEmail {
			items = append(items, r)
		}
	}
	byCreatedDesc(items,
		func(r domain.AdoptionRequest) int64 { return r.CreatedAt.UnixNano() },
		func(r domain.AdoptionRequest) string { return r.ID })
	return items, nil
}

func (s *RequestStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.requests, id)
	return nil
}

var _ domain.AdoptionRequestRepository = (*RequestStore)(nil)
