package service

import (
	"context"
	"fmt"
	"time"

	"server/internal/domain"
)

// UserService manages account records and the role-upgrade flow.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a UserService.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// LoginInput carries the identity fields supplied at login.
type LoginInput struct {
	Email  string
	Name   string
	Photo  string
	Status domain.UserStatus
}

// Login upserts the account: first login creates the record with the
// user role, a repeat login returns the stored record unchanged, and a
// login carrying StatusRequested updates the status only.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*domain.User, error) {
	if in.Email == "" {
		return nil, fmt.Errorf("login: email required: %w", domain.ErrUnauthorized)
	}
	user := &domain.User{
		Email:    in.Email,
		Name:     in.Name,
		Photo:    in.Photo,
		Role:     domain.UserRoleUser,
		Status:   domain.UserStatusNone,
		JoinedAt: time.Now().UTC(),
	}
	if in.Status == domain.UserStatusRequested {
		user.Status = domain.UserStatusRequested
	}
	return s.users.Upsert(ctx, user)
}

// Get returns the account for email. Non-admins may only read their own.
func (s *UserService) Get(ctx context.Context, p domain.Principal, email string) (*domain.User, error) {
	if err := domain.AuthorizeOwner(p, email); err != nil {
		return nil, err
	}
	return s.users.GetByEmail(ctx, email)
}

// List returns every account. Admin only.
func (s *UserService) List(ctx context.Context, p domain.Principal) ([]domain.User, error) {
	if err := domain.AuthorizeAdmin(p); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// SetRole changes an account role. Admin only.
func (s *UserService) SetRole(ctx context.Context, p domain.Principal, email string, role domain.UserRole) error {
	if err := domain.AuthorizeAdmin(p); err != nil {
		return err
	}
	if role != domain.UserRoleUser && role != domain.UserRoleAdmin {
		return fmt.Errorf("set role: unknown role %q", role)
	}
	return s.users.UpdateRole(ctx, email, role)
}

// RequestRoleUpgrade marks the principal's own account as Requested so
// an admin can review it.
func (s *UserService) RequestRoleUpgrade(ctx context.Context, p domain.Principal) error {
	if p.Email == "" {
		return domain.ErrUnauthorized
	}
	return s.users.UpdateStatus(ctx, p.Email, domain.UserStatusRequested)
}

// Principal resolves the stored role for an authenticated email. Unknown
// accounts fall back to the plain user role rather than failing, since a
// valid token can predate the first user upsert.
func (s *UserService) Principal(ctx context.Context, email string) domain.Principal {
	p := domain.Principal{Email: email, Role: domain.UserRoleUser}
	user, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		p.Role = user.Role
	}
	return p
}
