package domain

import "time"

// DonationRecord is the audit copy of a captured donation. It references
// the campaign donator entry by transaction id only, is never deleted,
// and its only mutation is flipping Refunded to true.
type DonationRecord struct {
	ID            string
	CampaignID    string
	CampaignName  string
	Email         string
	TransactionID string
	AmountInt     int64
	Refunded      bool
	CreatedAt     time.Time
}
