package domain

import "time"

// AdoptionRequest links a requester to a pet listing. The ledger holds
// only pending requests: resolving a request removes it regardless of
// the decision.
type AdoptionRequest struct {
	ID                string
	PetID             string
	PetName           string
	RequesterEmail    string
	RequesterName     string
	Phone             string
	Address           string
	PresentOwnerEmail string
	CreatedAt         time.Time
}

// Decision is the outcome of resolving an adoption request.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// Valid reports whether the decision is one of the known outcomes.
func (d Decision) Valid() bool {
	return d == DecisionAccept || d == DecisionReject
}
