// Package memory provides an in-process implementation of the domain
// repositories guarded by per-store mutexes. It backs the test suite and
// small single-node deployments; the check-then-write sections run under
// the store lock so they are atomic the same way the SQL adapter's
// transactions are.
package memory

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"server/internal/domain"
)

// Store bundles the in-memory repositories over one data set.
type Store struct {
	Users     *UserStore
	Pets      *PetStore
	Requests  *RequestStore
	Campaigns *CampaignStore
	Donations *DonationStore
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		Users:     &UserStore{users: map[string]domain.User{}},
		Pets:      &PetStore{pets: map[string]domain.Pet{}},
		Requests:  &RequestStore{requests: map[string]domain.AdoptionRequest{}},
		Campaigns: &CampaignStore{campaigns: map[string]domain.Campaign{}},
		Donations: &DonationStore{records: map[string]domain.DonationRecord{}},
	}
}

var foldCaser = cases.Fold()

// containsFold reports whether s contains substr under Unicode case folding.
func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(foldCaser.String(s), foldCaser.String(substr))
}

// byCreatedDesc orders newest first, falling back to id for a stable
// order when timestamps collide.
func byCreatedDesc[T any](items []T, createdAt func(T) int64, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := createdAt(items[i]), createdAt(items[j])
		if ci != cj {
			return ci > cj
		}
		return id(items[i]) > id(items[j])
	})
}

// paginate applies zero-based page/limit slicing.
func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	start := page * limit
	if start < 0 || start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
