package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"server/internal/domain"
)

func TestLoginCreatesThenReturnsExisting(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	user, err := env.users.Login(ctx, LoginInput{Email: "carol@example.com", Name: "Carol"})
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleUser, user.Role)
	assert.Equal(t, domain.UserStatusNone, user.Status)

	// Promote, then log in again: the stored record wins.
	require.NoError(t, env.users.SetRole(ctx, root, "carol@example.com", domain.UserRoleAdmin))
	again, err := env.users.Login(ctx, LoginInput{Email: "carol@example.com", Name: "Someone Else"})
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleAdmin, again.Role)
	assert.Equal(t, "Carol", again.Name)
}

func TestLoginRequiresEmail(t *testing.T) {
	env := newTestEnv()
	_, err := env.users.Login(context.Background(), LoginInput{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginWithRequestedStatusFlagsExistingAccount(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.users.Login(ctx, LoginInput{Email: "carol@example.com"})
	require.NoError(t, err)

	user, err := env.users.Login(ctx, LoginInput{Email: "carol@example.com", Status: domain.UserStatusRequested})
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusRequested, user.Status)
}

func TestGetUserAuthz(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_, err := env.users.Login(ctx, LoginInput{Email: alice.Email})
	require.NoError(t, err)

	_, err = env.users.Get(ctx, bob, alice.Email)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	user, err := env.users.Get(ctx, alice, alice.Email)
	require.NoError(t, err)
	assert.Equal(t, alice.Email, user.Email)

	_, err = env.users.Get(ctx, root, alice.Email)
	require.NoError(t, err)
}

func TestListUsersAdminOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_, err := env.users.Login(ctx, LoginInput{Email: alice.Email})
	require.NoError(t, err)

	_, err = env.users.List(ctx, alice)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	users, err := env.users.List(ctx, root)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSetRole(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_, err := env.users.Login(ctx, LoginInput{Email: alice.Email})
	require.NoError(t, err)

	assert.ErrorIs(t, env.users.SetRole(ctx, alice, alice.Email, domain.UserRoleAdmin), domain.ErrForbidden)
	assert.Error(t, env.users.SetRole(ctx, root, alice.Email, domain.UserRole("owner")))
	assert.ErrorIs(t, env.users.SetRole(ctx, root, "missing@example.com", domain.UserRoleAdmin), domain.ErrNotFound)

	require.NoError(t, env.users.SetRole(ctx, root, alice.Email, domain.UserRoleAdmin))
	user, err := env.users.Get(ctx, root, alice.Email)
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleAdmin, user.Role)
	assert.Equal(t, domain.UserStatusVerified, user.Status)
}

func TestRequestRoleUpgrade(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_, err := env.users.Login(ctx, LoginInput{Email: alice.Email})
	require.NoError(t, err)

	assert.ErrorIs(t, env.users.RequestRoleUpgrade(ctx, domain.Principal{}), domain.ErrUnauthorized)
	require.NoError(t, env.users.RequestRoleUpgrade(ctx, alice))

	user, err := env.users.Get(ctx, alice, alice.Email)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusRequested, user.Status)
}

func TestPrincipalResolvesStoredRole(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_, err := env.users.Login(ctx, LoginInput{Email: alice.Email})
	require.NoError(t, err)
	require.NoError(t, env.users.SetRole(ctx, root, alice.Email, domain.UserRoleAdmin))

	p := env.users.Principal(ctx, alice.Email)
	assert.True(t, p.IsAdmin())

	// A token for an account that never hit the upsert still acts as a
	// plain user.
	p = env.users.Principal(ctx, "ghost@example.com")
	assert.Equal(t, domain.UserRoleUser, p.Role)
}
