package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"server/internal/domain"
)

// CampaignService is the donation campaign ledger. Every write that
// touches a campaign's donator sequence goes through the repository's
// atomic append/remove primitives so DonatedInt always equals the sum of
// the donator amounts.
type CampaignService struct {
	campaigns domain.CampaignRepository
	donations domain.DonationRecordRepository
	logger    zerolog.Logger
}

// NewCampaignService creates a CampaignService.
func NewCampaignService(campaigns domain.CampaignRepository, donations domain.DonationRecordRepository, logger zerolog.Logger) *CampaignService {
	return &CampaignService{campaigns: campaigns, donations: donations, logger: logger}
}

// CampaignInput carries the caller-supplied campaign fields.
type CampaignInput struct {
	Name             string
	Category         string
	ImageURL         string
	ShortDescription string
	LongDescription  string
	TargetInt        int64
	LastDate         time.Time
}

// Create stores a new campaign with a zero total, an empty donator
// sequence, and pause off.
func (s *CampaignService) Create(ctx context.Context, p domain.Principal, in CampaignInput) (*domain.Campaign, error) {
	if p.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.TargetInt <= 0 {
		return nil, fmt.Errorf("create campaign: target must be positive: %w", domain.ErrInvalidAmount)
	}
	campaign := &domain.Campaign{
		ID:               uuid.NewString(),
		CreatorEmail:     p.Email,
		Name:             in.Name,
		Category:         in.Category,
		ImageURL:         in.ImageURL,
		ShortDescription: in.ShortDescription,
		LongDescription:  in.LongDescription,
		TargetInt:        in.TargetInt,
		DonatedInt:       0,
		Donators:         nil,
		Paused:           false,
		LastDate:         in.LastDate,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// DonationInput carries an already-captured payment: the gateway charged
// the amount and handed back the transaction id before this call.
type DonationInput struct {
	CampaignID    string
	AmountInt     int64
	TransactionID string
}

// RecordDonation appends the donator to the campaign (incrementing the
// running total in the same atomic step) and writes the audit record.
// When the audit insert fails the donator append is compensated; if that
// compensation also fails the call surfaces ErrInconsistentState with
// the ids needed for reconciliation.
func (s *CampaignService) RecordDonation(ctx context.Context, p domain.Principal, in DonationInput) (*domain.DonationRecord, error) {
	if p.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.AmountInt <= 0 {
		return nil, fmt.Errorf("record donation: amount %d: %w", in.AmountInt, domain.ErrInvalidAmount)
	}
	campaign, err := s.campaigns.GetByID(ctx, in.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign.Paused {
		return nil, fmt.Errorf("record donation: campaign %s is paused: %w", campaign.ID, domain.ErrForbidden)
	}

	donator := domain.Donator{
		Email:         p.Email,
		TransactionID: in.TransactionID,
		AmountInt:     in.AmountInt,
	}
	if err := s.campaigns.AppendDonator(ctx, campaign.ID, donator); err != nil {
		return nil, err
	}

	rec := &domain.DonationRecord{
		ID:            uuid.NewString(),
		CampaignID:    campaign.ID,
		CampaignName:  campaign.Name,
		Email:         p.Email,
		TransactionID: in.TransactionID,
		AmountInt:     in.AmountInt,
		Refunded:      false,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.donations.Create(ctx, rec); err != nil {
		if _, undoErr := s.campaigns.RemoveDonatorByTransaction(ctx, campaign.ID, in.TransactionID); undoErr != nil {
			s.logger.Error().Err(undoErr).
				Str("campaign_id", campaign.ID).
				Str("transaction_id", in.TransactionID).
				Msg("donation compensation failed")
			return nil, fmt.Errorf("record donation: campaign %s txn %s: donator appended but audit record missing: %w",
				campaign.ID, in.TransactionID, domain.ErrInconsistentState)
		}
		return nil, fmt.Errorf("record donation: campaign %s txn %s: %w", campaign.ID, in.TransactionID, err)
	}
	return rec, nil
}

// Refund removes the donator entry matched by transaction id, decrements
// the campaign total by exactly that entry's amount, and marks the audit
// record refunded. The refund is permanent: an already-refunded record
// fails with ErrNotFound. Only the donor or an admin may refund.
//
// The audit record is marked first and the donator removed second; the
// compensation for a failed removal only un-marks the record, so the
// campaign's ordered donator sequence is never disturbed on a failure.
func (s *CampaignService) Refund(ctx context.Context, p domain.Principal, donationRecordID string) error {
	rec, err := s.donations.GetByID(ctx, donationRecordID)
	if err != nil {
		return err
	}
	if err := domain.AuthorizeOwner(p, rec.Email); err != nil {
		return err
	}
	if rec.Refunded {
		return fmt.Errorf("refund donation %s: already refunded: %w", rec.ID, domain.ErrNotFound)
	}

	if err := s.donations.SetRefunded(ctx, rec.ID, true); err != nil {
		return fmt.Errorf("refund donation %s: %w", rec.ID, err)
	}
	if _, err := s.campaigns.RemoveDonatorByTransaction(ctx, rec.CampaignID, rec.TransactionID); err != nil {
		if undoErr := s.donations.SetRefunded(ctx, rec.ID, false); undoErr != nil {
			s.logger.Error().Err(undoErr).
				Str("donation_id", rec.ID).
				Str("campaign_id", rec.CampaignID).
				Msg("refund compensation failed")
			return fmt.Errorf("refund donation %s: record marked but campaign %s not updated: %w",
				rec.ID, rec.CampaignID, domain.ErrInconsistentState)
		}
		return fmt.Errorf("refund donation %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns a single campaign. Public.
func (s *CampaignService) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.campaigns.GetByID(ctx, id)
}

// List runs the public paginated campaign listing, newest first.
func (s *CampaignService) List(ctx context.Context, q domain.CampaignQuery) ([]domain.Campaign, *int, error) {
	items, err := s.campaigns.List(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	return items, NextPage(q.Page, q.Limit, len(items)), nil
}

// ListOthers returns up to limit campaigns excluding the given one, used
// for the "other campaigns" strip on a campaign page.
func (s *CampaignService) ListOthers(ctx context.Context, excludeID string, limit int) ([]domain.Campaign, error) {
	items, err := s.campaigns.List(ctx, domain.CampaignQuery{ExcludeID: excludeID, Page: 0, Limit: limit})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListByCreator returns the creator's campaigns. Creator or admin.
func (s *CampaignService) ListByCreator(ctx context.Context, p domain.Principal, creatorEmail string) ([]domain.Campaign, error) {
	if err := domain.AuthorizeOwner(p, creatorEmail); err != nil {
		return nil, err
	}
	return s.campaigns.ListByCreator(ctx, creatorEmail)
}

// ListDonationsByDonator returns the donor's audit records. Donor or admin.
func (s *CampaignService) ListDonationsByDonator(ctx context.Context, p domain.Principal, email string) ([]domain.DonationRecord, error) {
	if err := domain.AuthorizeOwner(p, email); err != nil {
		return nil, err
	}
	return s.donations.ListByDonator(ctx, email)
}

// SetPaused toggles donation intake. Creator or admin.
func (s *CampaignService) SetPaused(ctx context.Context, p domain.Principal, id string, paused bool) error {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.AuthorizeOwner(p, campaign.CreatorEmail); err != nil {
		return err
	}
	return s.campaigns.SetPaused(ctx, id, paused)
}

// Update rewrites the supplied campaign fields, leaving the donator
// sequence and the running total untouched. Creator or admin.
func (s *CampaignService) Update(ctx context.Context, p domain.Principal, id string, in domain.CampaignUpdate) (*domain.Campaign, error) {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.AuthorizeOwner(p, campaign.CreatorEmail); err != nil {
		return nil, err
	}
	if in.Name != nil {
		campaign.Name = *in.Name
	}
	if in.Category != nil {
		campaign.Category = *in.Category
	}
	if in.ImageURL != nil {
		campaign.ImageURL = *in.ImageURL
	}
	if in.ShortDescription != nil {
		campaign.ShortDescription = *in.ShortDescription
	}
	if in.LongDescription != nil {
		campaign.LongDescription = *in.LongDescription
	}
	if in.TargetInt != nil {
		if *in.TargetInt <= 0 {
			return nil, fmt.Errorf("update campaign: target must be positive: %w", domain.ErrInvalidAmount)
		}
		campaign.TargetInt = *in.TargetInt
	}
	if in.LastDate != nil {
		campaign.LastDate = *in.LastDate
	}
	if err := s.campaigns.Update(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Delete removes a campaign entirely. Admin only.
func (s *CampaignService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := domain.AuthorizeAdmin(p); err != nil {
		return err
	}
	return s.campaigns.Delete(ctx, id)
}
