package domain

import "context"

// UserRepository defines access methods for users.
type UserRepository interface {
	Upsert(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, email string, role UserRole) error
	UpdateStatus(ctx context.Context, email string, status UserStatus) error
}

// PetRepository defines persistence for pet listings.
type PetRepository interface {
	Create(ctx context.Context, pet *Pet) error
	GetByID(ctx context.Context, id string) (*Pet, error)
	List(ctx context.Context) ([]Pet, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]Pet, error)
	SearchAvailable(ctx context.Context, q AvailablePetQuery) ([]Pet, error)
	Update(ctx context.Context, pet *Pet) error
	SetAdopted(ctx context.Context, id string, adopted bool, ownerEmail string) error
	Delete(ctx context.Context, id string) error
}

// AdoptionRequestRepository is the pending-request ledger. Create must be
// atomic with the duplicate check: a second pending request for the same
// (pet, requester) pair fails with ErrDuplicateRequest.
type AdoptionRequestRepository interface {
	Create(ctx context.Context, req *AdoptionRequest) error
	GetByID(ctx context.Context, id string) (*AdoptionRequest, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]AdoptionRequest, error)
	Delete(ctx context.Context, id string) error
}

// CampaignRepository handles campaign persistence. AppendDonator and
// RemoveDonatorByTransaction mutate the donator sequence and the running
// total in one atomic step so the sum invariant holds between calls.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *Campaign) error
	GetByID(ctx context.Context, id string) (*Campaign, error)
	List(ctx context.Context, q CampaignQuery) ([]Campaign, error)
	ListByCreator(ctx context.Context, creatorEmail string) ([]Campaign, error)
	Update(ctx context.Context, campaign *Campaign) error
	SetPaused(ctx context.Context, id string, paused bool) error
	Delete(ctx context.Context, id string) error
	AppendDonator(ctx context.Context, campaignID string, d Donator) error
	RemoveDonatorByTransaction(ctx context.Context, campaignID, transactionID string) (*Donator, error)
}

// DonationRecordRepository is the append-only donation audit trail.
type DonationRecordRepository interface {
	Create(ctx context.Context, rec *DonationRecord) error
	GetByID(ctx context.Context, id string) (*DonationRecord, error)
	ListByDonator(ctx context.Context, email string) ([]DonationRecord, error)
	SetRefunded(ctx context.Context, id string, refunded bool) error
}
