package domain

// Principal is the authenticated identity making a request, derived from
// the verified token plus the stored user record.
type Principal struct {
	Email string
	Role  UserRole
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}

// AuthorizeOwner allows access to resources keyed by ownerEmail: the
// principal must own the resource or be an admin. Email comparison is
// exact, case-sensitive.
func AuthorizeOwner(p Principal, ownerEmail string) error {
	if p.Email == "" {
		return ErrUnauthorized
	}
	if p.IsAdmin() || p.Email == ownerEmail {
		return nil
	}
	return ErrForbidden
}

// AuthorizeAdmin allows admin-only actions: listing all users, changing
// roles, listing all pets, deleting campaigns.
func AuthorizeAdmin(p Principal) error {
	if p.Email == "" {
		return ErrUnauthorized
	}
	if !p.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
