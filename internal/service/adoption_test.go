package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"server/internal/domain"
)

func newPet(t *testing.T, env *testEnv, owner domain.Principal) *domain.Pet {
	t.Helper()
	pet, err := env.pets.Create(context.Background(), owner, PetInput{Name: "Biscuit", Category: "dog"})
	require.NoError(t, err)
	return pet
}

func TestSubmitRequest(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	pet := newPet(t, env, alice)

	req, err := env.adoptions.Submit(ctx, bob, SubmitInput{PetID: pet.ID, Name: "Bob", Phone: "555-0101", Address: "12 Main St"})
	require.NoError(t, err)
	assert.Equal(t, pet.ID, req.PetID)
	assert.Equal(t, pet.Name, req.PetName)
	assert.Equal(t, bob.Email, req.RequesterEmail)
	assert.Equal(t, alice.Email, req.PresentOwnerEmail)
}

func TestSubmitRequestUnknownPet(t *testing.T) {
	env := newTestEnv()
	_, err := env.adoptions.Submit(context.Background(), bob, SubmitInput{PetID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmitRequestUnauthenticated(t *testing.T) {
	env := newTestEnv()
	pet := newPet(t, env, alice)
	_, err := env.adoptions.Submit(context.Background(), domain.Principal{}, SubmitInput{PetID: pet.ID})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// A second pending request for the same pet and requester always fails;
// once the first is resolved a new one goes through.
func TestSubmitRequestDeduplicates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	pet := newPet(t, env, alice)

	first, err := env.adoptions.Submit(ctx, bob, SubmitInput{PetID: pet.ID})
	require.NoError(t, err)

	_, err = env.adoptions.Submit(ctx, bob, SubmitInput{PetID: pet.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)

	// A different requester is not a duplicate.
	_, err = env.adoptions.Submit(ctx, root, SubmitInput{PetID: pet.ID})
	require.NoError(t, err)

	require.NoError(t, env.adoptions.Resolve(ctx, alice, first.ID, domain.DecisionReject))

	_, err = env.adoptions.Submit(ctx, bob, SubmitInput{PetID: pet.ID})
	require.NoError(t, err)
}

func TestListForOwnerAuthz(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	pet := newPet(t, env, alice)
	_, err := env.adoptions.Submit(ctx, bob, SubmitInput{PetID: pet.ID})
	require.NoError(t, err)

	_, err = env.adoptions.ListForOwner(ctx, bob, alice.Email)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	reqs, err := env.adoptions.ListForOwner(ctx, alice, alice.Email)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)

	reqs, err = env.adoptions.ListForOwner(ctx, root, alice.Email)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)
}

// create pet -> request -> duplicate fails -> accept: pet adopted, owner
// transferred, ledger entry gone.
func TestResolveAccept(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	pet := newPet(t, env, alice)

	req, err := env.adoptions.Submit(ctx, bob, SubmitInput{PetID: pet.ID})
	require.NoError(t, err)
	_, err = env.adoptions.Submit(ctx, bob, SubmitInput{PetID: pet.ID})
	require.ErrorIs(t, err, domain.ErrDuplicateRequest)

	require.NoError(t, env.adoptions.Resolve(ctx, alice, req.ID, domain.DecisionAccept))

	got, err := env.pets.Get(ctx, pet.ID)
	require.NoError(t, err)
	assert.True(t, got.Adopted)
	assert.Equal(t, bob.Email, got.OwnerEmail)

	reqs, err := env.adoptions.ListForOwner(ctx, alice, alice.Email)
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestResolveRejectKeepsPetAvailable(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	pet := newPet(t, env, alice)

	req, err := env.adoptions.Submit(ctx, bob, SubmitInput{PetID: pet.ID})
	require.NoError(t, err)
	require.NoError(t, env.adoptions.Resolve(ctx, alice, req.ID, domain.DecisionReject))

	got, err := env.pets.Get(ctx, pet.ID)
	require.NoError(t, err)
	assert.False(t, got.Adopted)
	assert.Equal(t, alice.Email, got.OwnerEmail)

	reqs, err := env.adoptions.ListForOwner(ctx, alice, alice.Email)
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestResolveAuthz(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	pet := newPet(t, env, alice)

	req, err := env.adoptions.Submit(ctx, bob, SubmitInput{PetID: pet.ID})
	require.NoError(t, err)

	// The requester does not get to resolve their own request.
	assert.ErrorIs(t, env.adoptions.Resolve(ctx, bob, req.ID, domain.DecisionAccept), domain.ErrForbidden)
	require.NoError(t, env.adoptions.Resolve(ctx, root, req.ID, domain.DecisionAccept))
}

func TestResolveUnknownRequest(t *testing.T) {
	env := newTestEnv()
	err := env.adoptions.Resolve(context.Background(), alice, "missing", domain.DecisionAccept)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveRejectsUnknownDecision(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	pet := newPet(t, env, alice)
	req, err := env.adoptions.Submit(ctx, bob, SubmitInput{PetID: pet.ID})
	require.NoError(t, err)

	require.Error(t, env.adoptions.Resolve(ctx, alice, req.ID, domain.Decision("maybe")))

	// Still pending, pet untouched.
	got, err := env.pets.Get(ctx, pet.ID)
	require.NoError(t, err)
	assert.False(t, got.Adopted)
	reqs, err := env.adoptions.ListForOwner(ctx, alice, alice.Email)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)
}
