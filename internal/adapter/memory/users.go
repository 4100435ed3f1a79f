package memory

import (
	"context"
	"sort"
	"sync"

	"server/internal/domain"
)

// UserStore implements domain.UserRepository.
type UserStore struct {
	mu    sync.Mutex
	users map[string]domain.User
}

// Upsert creates the user on first sight and returns the stored record
// otherwise. An upsert carrying StatusRequested on an existing user
// updates the status only, matching the login/role-request flow.
func (s *UserStore) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[user.Email]
	if ok {
		if user.Status == domain.UserStatusRequested {
			existing.Status = domain.UserStatusRequested
			s.users[user.Email] = existing
		}
		out := existing
		return &out, nil
	}
	stored := *user
	s.users[user.Email] = stored
	out := stored
	return &out, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := u
	return &out, nil
}

func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		items = append(items, u)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Email < items[j].Email })
	return items, nil
}

func (s *UserStore) UpdateRole(ctx context.Context, email string, role domain.UserRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	u.Status = domain.UserStatusVerified
	s.users[email] = u
	return nil
}

func (s *UserStore) UpdateStatus(ctx context.Context, email string, status domain.UserStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return domain.ErrNotFound
	}
	u.Status = status
	s.users[email] = u
	return nil
}

var _ domain.UserRepository = (*UserStore)(nil)
