package memory

import (
	"context"
	"sync"

	"server/internal/domain"
)

// DonationStore implements domain.DonationRecordRepository.
type DonationStore struct {
	mu      sync.Mutex
	records map[string]domain.DonationRecord

	// FailNextCreate and FailNextSetRefunded make the next call of the
	// respective method return the given error. Test hooks for exercising
	// the compensation paths in the campaign service.
	FailNextCreate      error
	FailNextSetRefunded error
}

func (s *DonationStore) Create(ctx context.Context, rec *domain.DonationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailNextCreate; err != nil {
		s.FailNextCreate = nil
		return err
	}
	s.records[rec.ID] = *rec
	return nil
}

func (s *DonationStore) GetByID(ctx context.Context, id string) (*domain.DonationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := r
	return &out, nil
}

func (s *DonationStore) ListByDonator(ctx context.Context, email string) ([]domain.DonationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.DonationRecord, 0)
	for _, r := range s.records {
		if r.Email == email {
			items = append(items, r)
		}
	}
	byCreatedDesc(items,
		func(r domain.DonationRecord) int64 { return r.CreatedAt.UnixNano() },
		func(r domain.DonationRecord) string { return r.ID })
	return items, nil
}

func (s *DonationStore) SetRefunded(ctx context.Context, id string, refunded bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailNextSetRefunded; err != nil {
		s.FailNextSetRefunded = nil
		return err
	}
	r, ok := s.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Refunded = refunded
	s.records[id] = r
	return nil
}

var _ domain.DonationRecordRepository = (*DonationStore)(nil)
