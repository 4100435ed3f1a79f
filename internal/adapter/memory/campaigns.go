package memory

import (
	"context"
	"sync"

	"server/internal/domain"
)

// CampaignStore implements domain.CampaignRepository. Donator appends and
// removals update the running total under the store lock, so the
// sum invariant holds between calls.
type CampaignStore struct {
	mu        sync.Mutex
	campaigns map[string]domain.Campaign
}

func (s *CampaignStore) Create(ctx context.Context, campaign *domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[campaign.ID] = cloneCampaign(*campaign)
	return nil
}

func (s *CampaignStore) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneCampaign(c)
	return &out, nil
}

func (s *CampaignStore) List(ctx context.Context, q domain.CampaignQuery) ([]domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.sorted(func(c domain.Campaign) bool {
		if q.ExcludeID != "" && c.ID == q.ExcludeID {
			return false
		}
		if !containsFold(c.Name, q.Search) {
			return false
		}
		return q.Category == "" || c.Category == q.Category
	})
	return paginate(items, q.Page, q.Limit), nil
}

func (s *CampaignStore) ListByCreator(ctx context.Context, creatorEmail string) ([]domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(c domain.Campaign) bool { return c.CreatorEmail == creatorEmail }), nil
}

func (s *CampaignStore) Update(ctx context.Context, campaign *domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[campaign.ID]; !ok {
		return domain.ErrNotFound
	}
	s.campaigns[campaign.ID] = cloneCampaign(*campaign)
	return nil
}

func (s *CampaignStore) SetPaused(ctx context.Context, id string, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Paused = paused
	s.campaigns[id] = c
	return nil
}

func (s *CampaignStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.campaigns, id)
	return nil
}

func (s *CampaignStore) AppendDonator(ctx context.Context, campaignID string, d domain.Donator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[campaignID]
	if !ok {
		return domain.ErrNotFound
	}
	// Transaction ids are unique per campaign; Refund locates the entry
	// to reverse by transaction id.
	for _, existing := range c.Donators {
		if existing.TransactionID == d.TransactionID {
			return domain.ErrDuplicateTransaction
		}
	}
	c.Donators = append(c.Donators, d)
	c.DonatedInt += d.AmountInt
	s.campaigns[campaignID] = c
	return nil
}

func (s *CampaignStore) RemoveDonatorByTransaction(ctx context.Context, campaignID, transactionID string) (*domain.Donator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[campaignID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for i, d := range c.Donators {
		if d.TransactionID == transactionID {
			c.Donators = append(c.Donators[:i:i], c.Donators[i+1:]...)
			c.DonatedInt -= d.AmountInt
			s.campaigns[campaignID] = c
			removed := d
			return &removed, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *CampaignStore) sorted(keep func(domain.Campaign) bool) []domain.Campaign {
	items := make([]domain.Campaign, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		if keep(c) {
			items = append(items, cloneCampaign(c))
		}
	}
	byCreatedDesc(items,
		func(c domain.Campaign) int64 { return c.CreatedAt.UnixNano() },
		func(c domain.Campaign) string { return c.ID })
	return items
}

// cloneCampaign copies the donator slice so callers never alias the
// stored sequence.
func cloneCampaign(c domain.Campaign) domain.Campaign {
	c.Donators = append([]domain.Donator(nil), c.Donators...)
	return c
}

var _ domain.CampaignRepository = (*CampaignStore)(nil)
