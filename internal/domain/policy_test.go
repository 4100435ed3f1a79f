package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeOwner(t *testing.T) {
	owner := Principal{Email: "owner@example.com", Role: UserRoleUser}
	admin := Principal{Email: "admin@example.com", Role: UserRoleAdmin}
	stranger := Principal{Email: "other@example.com", Role: UserRoleUser}

	assert.NoError(t, AuthorizeOwner(owner, "owner@example.com"))
	assert.NoError(t, AuthorizeOwner(admin, "owner@example.com"))
	assert.ErrorIs(t, AuthorizeOwner(stranger, "owner@example.com"), ErrForbidden)
	assert.ErrorIs(t, AuthorizeOwner(Principal{}, "owner@example.com"), ErrUnauthorized)
}

func TestAuthorizeOwnerIsCaseSensitive(t *testing.T) {
	p := Principal{Email: "Owner@Example.com", Role: UserRoleUser}
	assert.ErrorIs(t, AuthorizeOwner(p, "owner@example.com"), ErrForbidden)
}

func TestAuthorizeAdmin(t *testing.T) {
	assert.NoError(t, AuthorizeAdmin(Principal{Email: "a@example.com", Role: UserRoleAdmin}))
	assert.ErrorIs(t, AuthorizeAdmin(Principal{Email: "u@example.com", Role: UserRoleUser}), ErrForbidden)
	assert.ErrorIs(t, AuthorizeAdmin(Principal{}), ErrUnauthorized)
}
