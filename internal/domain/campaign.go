package domain

import "time"

// Donator is a single contribution entry embedded in a campaign.
// Amounts are integer minor units (cents).
type Donator struct {
	Email         string
	TransactionID string
	AmountInt     int64
}

// Campaign is a fundraising effort. DonatedInt must equal the sum of
// Donators amounts at all times; every write that touches one side
// touches the other in the same atomic step.
type Campaign struct {
	ID               string
	CreatorEmail     string
	Name             string
	Category         string
	ImageURL         string
	ShortDescription string
	LongDescription  string
	TargetInt        int64
	DonatedInt       int64
	Donators         []Donator
	Paused           bool
	LastDate         time.Time
	CreatedAt        time.Time
}

// DonatorTotal sums the embedded donator amounts.
func (c Campaign) DonatorTotal() int64 {
	var total int64
	for _, d := range c.Donators {
		total += d.AmountInt
	}
	return total
}

// CampaignQuery filters the paginated campaign listing. ExcludeID drops
// one campaign from the results, used for "other campaigns" views.
type CampaignQuery struct {
	Search    string
	Category  string
	ExcludeID string
	Page      int
	Limit     int
}

// CampaignUpdate carries the mutable campaign fields for UpdateCampaign.
// Nil pointers leave the current value untouched.
type CampaignUpdate struct {
	Name             *string
	Category         *string
	ImageURL         *string
	ShortDescription *string
	LongDescription  *string
	TargetInt        *int64
	LastDate         *time.Time
}
