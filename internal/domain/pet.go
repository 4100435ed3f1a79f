package domain

import "time"

// Pet represents a listing available for adoption.
type Pet struct {
	ID               string
	Name             string
	Category         string
	Age              string
	Location         string
	ShortDescription string
	LongDescription  string
	ImageURL         string
	Adopted          bool
	OwnerEmail       string
	CreatedAt        time.Time
}

// AvailablePetQuery filters the paginated available-pets listing.
// Search matches the pet name case-insensitively; Category is an exact
// match and ignored when empty. Page is zero-based.
type AvailablePetQuery struct {
	Search   string
	Category string
	Page     int
	Limit    int
}
