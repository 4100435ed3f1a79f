package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"server/internal/domain"
)

var (
	alice = domain.Principal{Email: "alice@example.com", Role: domain.UserRoleUser}
	bob   = domain.Principal{Email: "bob@example.com", Role: domain.UserRoleUser}
	root  = domain.Principal{Email: "admin@example.com", Role: domain.UserRoleAdmin}
)

func newCampaign(t *testing.T, env *testEnv, creator domain.Principal, target int64) *domain.Campaign {
	t.Helper()
	campaign, err := env.campaigns.Create(context.Background(), creator, CampaignInput{
		Name:      "Shelter roof repair",
		Category:  "shelter",
		TargetInt: target,
		LastDate:  time.Now().Add(30 * 24 * time.Hour),
	})
	require.NoError(t, err)
	return campaign
}

func TestCreateCampaignStartsEmpty(t *testing.T) {
	env := newTestEnv()
	campaign := newCampaign(t, env, alice, 500_00)

	assert.Equal(t, int64(0), campaign.DonatedInt)
	assert.Empty(t, campaign.Donators)
	assert.False(t, campaign.Paused)
	assert.Equal(t, alice.Email, campaign.CreatorEmail)
}

func TestCreateCampaignRejectsNonPositiveTarget(t *testing.T) {
	env := newTestEnv()
	_, err := env.campaigns.Create(context.Background(), alice, CampaignInput{Name: "x", TargetInt: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestRecordDonationKeepsRunningTotal(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	campaign := newCampaign(t, env, alice, 500_00)

	_, err := env.campaigns.RecordDonation(ctx, bob, DonationInput{CampaignID: campaign.ID, AmountInt: 50_00, TransactionID: "txn1"})
	require.NoError(t, err)
	_, err = env.campaigns.RecordDonation(ctx, root, DonationInput{CampaignID: campaign.ID, AmountInt: 25_00, TransactionID: "txn2"})
	require.NoError(t, err)

	got, err := env.campaigns.Get(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(75_00), got.DonatedInt)
	assert.Equal(t, got.DonatedInt, got.DonatorTotal())
	require.Len(t, got.Donators, 2)
	assert.Equal(t, "txn1", got.Donators[0].TransactionID)
	assert.Equal(t, "txn2", got.Donators[1].TransactionID)
}

func TestRecordDonationRejectsNonPositiveAmount(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	campaign := newCampaign(t, env, alice, 500_00)

	for _, amount := range []int64{0, -50_00} {
		_, err := env.campaigns.RecordDonation(ctx, bob, DonationInput{CampaignID: campaign.ID, AmountInt: amount, TransactionID: "txn1"})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}

	got, err := env.campaigns.Get(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Zero(t, got.DonatedInt)
	assert.Empty(t, got.Donators)
}

func TestRecordDonationRejectsPausedCampaign(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	campaign := newCampaign(t, env, alice, 500_00)
	require.NoError(t, env.campaigns.SetPaused(ctx, alice, campaign.ID, true))

	_, err := env.campaigns.RecordDonation(ctx, bob, DonationInput{CampaignID: campaign.ID, AmountInt: 10_00, TransactionID: "txn1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRecordDonationUnknownCampaign(t *testing.T) {
	env := newTestEnv()
	_, err := env.campaigns.RecordDonation(context.Background(), bob, DonationInput{CampaignID: "missing", AmountInt: 10_00, TransactionID: "txn1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// The donator append is rolled back when the audit insert fails, so the
// campaign never shows money with no matching record.
func TestRecordDonationCompensatesFailedAuditInsert(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	campaign := newCampaign(t, env, alice, 500_00)

	env.store.Donations.FailNextCreate = errors.New("disk full")
	_, err := env.campaigns.RecordDonation(ctx, bob, DonationInput{CampaignID: campaign.ID, AmountInt: 10_00, TransactionID: "txn1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInconsistentState)

	got, err := env.campaigns.Get(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Zero(t, got.DonatedInt)
	assert.Empty(t, got.Donators)
	assert.Equal(t, got.DonatedInt, got.DonatorTotal())
}

// create campaign (target 500) -> donate 50 -> refund: total back to 0,
// donator gone, audit record permanently marked refunded.
func TestRefundScenario(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	campaign := newCampaign(t, env, alice, 500_00)

	rec, err := env.campaigns.RecordDonation(ctx, bob, DonationInput{CampaignID: campaign.ID, AmountInt: 50_00, TransactionID: "txn1"})
	require.NoError(t, err)

	got, err := env.campaigns.Get(ctx, campaign.ID)
	require.NoError(t, err)
	require.Equal(t, int64(50_00), got.DonatedInt)
	require.Len(t, got.Donators, 1)

	require.NoError(t, env.campaigns.Refund(ctx, bob, rec.ID))

	got, err = env.campaigns.Get(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Zero(t, got.DonatedInt)
	assert.Empty(t, got.Donators)
	assert.Equal(t, got.DonatedInt, got.DonatorTotal())

	stored, err := env.store.Donations.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, stored.Refunded)

	// The donator entry is gone, so refunding again fails.
	assert.ErrorIs(t, env.campaigns.Refund(ctx, bob, rec.ID), domain.ErrNotFound)
}

// A transaction id can be recorded against a campaign only once, so
// Refund's lookup by transaction id always reverses the right entry.
func TestRecordDonationRejectsReusedTransaction(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	campaign := newCampaign(t, env, alice, 500_00)

	first, err := env.campaigns.RecordDonation(ctx, bob, DonationInput{CampaignID: campaign.ID, AmountInt: 30_00, TransactionID: "txn1"})
	require.NoError(t, err)

	_, err = env.campaigns.RecordDonation(ctx, root, DonationInput{CampaignID: campaign.ID, AmountInt: 50_00, TransactionID: "txn1"})
	assert.ErrorIs(t, err, domain.ErrDuplicateTransaction)

	got, err := env.campaigns.Get(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30_00), got.DonatedInt)
	require.Len(t, got.Donators, 1)

	require.NoError(t, env.campaigns.Refund(ctx, bob, first.ID))
	got, err = env.campaigns.Get(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Zero(t, got.DonatedInt)
	assert.Empty(t, got.Donators)
}

// A refund that fails before touching the campaign leaves the donator
// sequence exactly as it was, order included.
func TestRefundFailureLeavesDonatorOrderIntact(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	campaign := newCampaign(t, env, alice, 500_00)

	var recs []string
	for i, txn := range []string{"txn1", "txn2", "txn3"} {
		rec, err := env.campaigns.RecordDonation(ctx, bob, DonationInput{CampaignID: campaign.ID, AmountInt: int64(10_00 * (i + 1)), TransactionID: txn})
		require.NoError(t, err)
		recs = append(recs, rec.ID)
	}

	env.store.Donations.FailNextSetRefunded = errors.New("disk full")
	require.Error(t, env.campaigns.Refund(ctx, bob, recs[1]))

	got, err := env.campaigns.Get(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(60_00), got.DonatedInt)
	require.Len(t, got.Donators, 3)
	for i, txn := range []string{"txn1", "txn2", "txn3"} {
		assert.Equal(t, txn, got.Donators[i].TransactionID)
	}

	stored, err := env.store.Donations.GetByID(ctx, recs[1])
	require.NoError(t, err)
	assert.False(t, stored.Refunded)
}

// When the donator entry is gone but the record is not yet refunded, the
// refund fails and the compensation un-marks the record.
func TestRefundMissingDonatorRestoresRecord(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	campaign := newCampaign(t, env, alice, 500_00)

	rec, err := env.campaigns.RecordDonation(ctx, bob, DonationInput{CampaignID: campaign.ID, AmountInt: 30_00, TransactionID: "txn1"})
	require.NoError(t, err)
	_, err = env.store.Campaigns.RemoveDonatorByTransaction(ctx, campaign.ID, "txn1")
	require.NoError(t, err)

	err = env.campaigns.Refund(ctx, bob, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrInconsistentState)

	stored, err := env.store.Donations.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, stored.Refunded)
}

func TestRefundRemovesOnlyMatchingTransaction(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	campaign := newCampaign(t, env, alice, 500_00)

	first, err := env.campaigns.RecordDonation(ctx, bob, DonationInput{CampaignID: campaign.ID, AmountInt: 30_00, TransactionID: "txn1"})
	require.NoError(t, err)
	_, err = env.campaigns.RecordDonation(ctx, root, DonationInput{CampaignID: campaign.ID, AmountInt: 20_00, TransactionID: "txn2"})
	require.NoError(t, err)

	require.NoError(t, env.campaigns.Refund(ctx, bob, first.ID))

	got, err := env.campaigns.Get(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20_00), got.DonatedInt)
	require.Len(t, got.Donators, 1)
	assert.Equal(t, "txn2", got.Donators[0].TransactionID)
	assert.Equal(t, got.DonatedInt, got.DonatorTotal())
}

func TestRefundAuthorization(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	campaign := newCampaign(t, env, alice, 500_00)

	rec, err := env.campaigns.RecordDonation(ctx, bob, DonationInput{CampaignID: campaign.ID, AmountInt: 30_00, TransactionID: "txn1"})
	require.NoError(t, err)

	assert.ErrorIs(t, env.campaigns.Refund(ctx, alice, rec.ID), domain.ErrForbidden)
	assert.NoError(t, env.campaigns.Refund(ctx, root, rec.ID))
}

func TestRefundUnknownRecord(t *testing.T) {
	env := newTestEnv()
	assert.ErrorIs(t, env.campaigns.Refund(context.Background(), bob, "missing"), domain.ErrNotFound)
}

func TestCampaignUpdateGatedByCreator(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	campaign := newCampaign(t, env, alice, 500_00)

	name := "New roof, new hope"
	_, err := env.campaigns.Update(ctx, bob, campaign.ID, domain.CampaignUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := env.campaigns.Update(ctx, alice, campaign.ID, domain.CampaignUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)

	// Admin may update someone else's campaign.
	target := int64(750_00)
	updated, err = env.campaigns.Update(ctx, root, campaign.ID, domain.CampaignUpdate{TargetInt: &target})
	require.NoError(t, err)
	assert.Equal(t, target, updated.TargetInt)
}

func TestCampaignUpdateLeavesLedgerAlone(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	campaign := newCampaign(t, env, alice, 500_00)
	_, err := env.campaigns.RecordDonation(ctx, bob, DonationInput{CampaignID: campaign.ID, AmountInt: 40_00, TransactionID: "txn1"})
	require.NoError(t, err)

	name := "Renamed"
	_, err = env.campaigns.Update(ctx, alice, campaign.ID, domain.CampaignUpdate{Name: &name})
	require.NoError(t, err)

	got, err := env.campaigns.Get(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40_00), got.DonatedInt)
	require.Len(t, got.Donators, 1)
}

func TestCampaignDeleteAdminOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	campaign := newCampaign(t, env, alice, 500_00)

	assert.ErrorIs(t, env.campaigns.Delete(ctx, alice, campaign.ID), domain.ErrForbidden)
	require.NoError(t, env.campaigns.Delete(ctx, root, campaign.ID))
	_, err := env.campaigns.Get(ctx, campaign.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetPausedGatedByCreator(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	campaign := newCampaign(t, env, alice, 500_00)

	assert.ErrorIs(t, env.campaigns.SetPaused(ctx, bob, campaign.ID, true), domain.ErrForbidden)
	require.NoError(t, env.campaigns.SetPaused(ctx, alice, campaign.ID, true))

	got, err := env.campaigns.Get(ctx, campaign.ID)
	require.NoError(t, err)
	assert.True(t, got.Paused)
}

func TestListOthersExcludesGivenCampaign(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	first := newCampaign(t, env, alice, 500_00)
	second := newCampaign(t, env, alice, 200_00)

	others, err := env.campaigns.ListOthers(ctx, first.ID, 10)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, second.ID, others[0].ID)
}

func TestListDonationsByDonatorAuthz(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	campaign := newCampaign(t, env, alice, 500_00)
	_, err := env.campaigns.RecordDonation(ctx, bob, DonationInput{CampaignID: campaign.ID, AmountInt: 10_00, TransactionID: "txn1"})
	require.NoError(t, err)

	_, err = env.campaigns.ListDonationsByDonator(ctx, alice, bob.Email)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	recs, err := env.campaigns.ListDonationsByDonator(ctx, bob, bob.Email)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, campaign.Name, recs[0].CampaignName)

	recs, err = env.campaigns.ListDonationsByDonator(ctx, root, bob.Email)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
