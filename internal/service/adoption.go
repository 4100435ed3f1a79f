package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"server/internal/domain"
)

// AdoptionService is the pending-request ledger plus the accept flow
// that hands the pet over to the requester.
type AdoptionService struct {
	requests domain.AdoptionRequestRepository
	pets     domain.PetRepository
	logger   zerolog.Logger
}

// NewAdoptionService creates an AdoptionService.
func NewAdoptionService(requests domain.AdoptionRequestRepository, pets domain.PetRepository, logger zerolog.Logger) *AdoptionService {
	return &AdoptionService{requests: requests, pets: pets, logger: logger}
}

// SubmitInput carries the requester contact details for a new request.
type SubmitInput struct {
	PetID   string
	Name    string
	Phone   string
	Address string
}

// Submit files an adoption request for the principal. A second pending
// request for the same pet by the same requester fails with
// ErrDuplicateRequest; the check and the insert are one atomic step in
// the repository.
func (s *AdoptionService) Submit(ctx context.Context, p domain.Principal, in SubmitInput) (*domain.AdoptionRequest, error) {
	if p.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	pet, err := s.pets.GetByID(ctx, in.PetID)
	if err != nil {
		return nil, err
	}
	req := &domain.AdoptionRequest{
		ID:                uuid.NewString(),
		PetID:             pet.ID,
		PetName:           pet.Name,
		RequesterEmail:    p.Email,
		RequesterName:     in.Name,
		Phone:             in.Phone,
		Address:           in.Address,
		PresentOwnerEmail: pet.OwnerEmail,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ListForOwner returns the pending requests against the owner's
// listings. The principal must be that owner or an admin.
func (s *AdoptionService) ListForOwner(ctx context.Context, p domain.Principal, ownerEmail string) ([]domain.AdoptionRequest, error) {
	if err := domain.AuthorizeOwner(p, ownerEmail); err != nil {
		return nil, err
	}
	return s.requests.ListByOwner(ctx, ownerEmail)
}

// Resolve removes the request from the ledger regardless of decision.
// Accepting additionally marks the pet adopted and transfers ownership
// to the requester; that pet write happens first and is rolled back if
// the ledger removal fails. A rollback that itself fails leaves the two
// stores disagreeing and surfaces ErrInconsistentState with both ids.
func (s *AdoptionService) Resolve(ctx context.Context, p domain.Principal, requestID string, decision domain.Decision) error {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if err := domain.AuthorizeOwner(p, req.PresentOwnerEmail); err != nil {
		return err
	}
	if !decision.Valid() {
		return fmt.Errorf("resolve request %s: unknown decision %q", requestID, decision)
	}

	if decision == domain.DecisionAccept {
		if err := s.pets.SetAdopted(ctx, req.PetID, true, req.RequesterEmail); err != nil {
			return err
		}
	}
	if err := s.requests.Delete(ctx, requestID); err != nil {
		if decision != domain.DecisionAccept {
			return err
		}
		if undoErr := s.pets.SetAdopted(ctx, req.PetID, false, req.PresentOwnerEmail); undoErr != nil {
			s.logger.Error().Err(undoErr).
				Str("request_id", requestID).
				Str("pet_id", req.PetID).
				Msg("adoption rollback failed")
			return fmt.Errorf("resolve request %s: pet %s adopted but request not removed: %w",
				requestID, req.PetID, domain.ErrInconsistentState)
		}
		return fmt.Errorf("resolve request %s: %w", requestID, err)
	}
	return nil
}
