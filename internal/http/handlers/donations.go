package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/service"
)

type donationDTO struct {
	ID            string    `json:"id"`
	CampaignID    string    `json:"campaignId"`
	CampaignName  string    `json:"campaignName"`
	Email         string    `json:"email"`
	TransactionID string    `json:"transactionId"`
	Amount        int64     `json:"amount"`
	Refunded      bool      `json:"refunded"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toDonationDTO(rec *domain.DonationRecord) donationDTO {
	return donationDTO{
		ID:            rec.ID,
		CampaignID:    rec.CampaignID,
		CampaignName:  rec.CampaignName,
		Email:         rec.Email,
		TransactionID: rec.TransactionID,
		Amount:        rec.AmountInt,
		Refunded:      rec.Refunded,
		CreatedAt:     rec.CreatedAt,
	}
}

type donationRequest struct {
	CampaignID    string `json:"campaignId"`
	Amount        int64  `json:"amount"`
	TransactionID string `json:"transactionId"`
}

// DonationsCreate records a donation the payment gateway already
// captured: the amount is in minor units and the transaction id comes
// from the gateway.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.CampaignID == "" || req.TransactionID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "campaignId and transactionId required")
		return
	}
	rec, err := a.Campaigns.RecordDonation(r.Context(), a.principal(r), service.DonationInput{
		CampaignID:    req.CampaignID,
		AmountInt:     req.Amount,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, toDonationDTO(rec))
}

// DonationsByDonator lists one donor's records. Self or admin.
func (a *App) DonationsByDonator(w http.ResponseWriter, r *http.Request) {
	recs, err := a.Campaigns.ListDonationsByDonator(r.Context(), a.principal(r), chi.URLParam(r, "email"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items := make([]donationDTO, 0, len(recs))
	for i := range recs {
		items = append(items, toDonationDTO(&recs[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// DonationRefund reverses a donation: the donator entry leaves the
// campaign, the total drops by exactly that amount, and the audit record
// is marked refunded for good.
func (a *App) DonationRefund(w http.ResponseWriter, r *http.Request) {
	if err := a.Campaigns.Refund(r.Context(), a.principal(r), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"success": true})
}
