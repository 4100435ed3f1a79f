package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/service"
)

type donatorDTO struct {
	Email         string `json:"email"`
	TransactionID string `json:"transactionId"`
	Amount        int64  `json:"amount"`
}

type campaignDTO struct {
	ID               string       `json:"id"`
	CreatorEmail     string       `json:"creatorEmail"`
	Name             string       `json:"name"`
	Category         string       `json:"category"`
	ImageURL         string       `json:"imageUrl"`
	ShortDescription string       `json:"shortDescription"`
	LongDescription  string       `json:"longDescription"`
	Target           int64        `json:"target"`
	Donated          int64        `json:"donated"`
	Donators         []donatorDTO `json:"donators,omitempty"`
	Paused           bool         `json:"paused"`
	LastDate         time.Time    `json:"lastDate"`
	CreatedAt        time.Time    `json:"createdAt"`
}

func toCampaignDTO(c *domain.Campaign, withDonators bool) campaignDTO {
	dto := campaignDTO{
		ID:               c.ID,
		CreatorEmail:     c.CreatorEmail,
		Name:             c.Name,
		Category:         c.Category,
		ImageURL:         c.ImageURL,
		ShortDescription: c.ShortDescription,
		LongDescription:  c.LongDescription,
		Target:           c.TargetInt,
		Donated:          c.DonatedInt,
		Paused:           c.Paused,
		LastDate:         c.LastDate,
		CreatedAt:        c.CreatedAt,
	}
	if withDonators {
		dto.Donators = make([]donatorDTO, 0, len(c.Donators))
		for _, d := range c.Donators {
			dto.Donators = append(dto.Donators, donatorDTO{Email: d.Email, TransactionID: d.TransactionID, Amount: d.AmountInt})
		}
	}
	return dto
}

func campaignDTOs(campaigns []domain.Campaign) []campaignDTO {
	items := make([]campaignDTO, 0, len(campaigns))
	for i := range campaigns {
		items = append(items, toCampaignDTO(&campaigns[i], false))
	}
	return items
}

type campaignRequest struct {
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	ImageURL         string    `json:"imageUrl"`
	ShortDescription string    `json:"shortDescription"`
	LongDescription  string    `json:"longDescription"`
	Target           int64     `json:"target"`
	LastDate         time.Time `json:"lastDate"`
}

// CampaignsCreate stores a new campaign for the caller. Target is in
// minor currency units.
func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Name == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name required")
		return
	}
	campaign, err := a.Campaigns.Create(r.Context(), a.principal(r), service.CampaignInput{
		Name:             req.Name,
		Category:         req.Category,
		ImageURL:         req.ImageURL,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		TargetInt:        req.Target,
		LastDate:         req.LastDate,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, toCampaignDTO(campaign, true))
}

// CampaignsList is the public paginated listing.
func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	q := domain.CampaignQuery{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Page:     queryInt(r, "page", 0),
		Limit:    queryInt(r, "limit", defaultPageLimit),
	}
	campaigns, nextPage, err := a.Campaigns.List(r.Context(), q)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": campaignDTOs(campaigns), "nextPage": nextPage})
}

// CampaignGet returns one campaign with its donator sequence. Public.
func (a *App) CampaignGet(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.Campaigns.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toCampaignDTO(campaign, true))
}

// CampaignOthers returns a handful of campaigns excluding this one.
func (a *App) CampaignOthers(w http.ResponseWriter, r *http.Request) {
	campaigns, err := a.Campaigns.ListOthers(r.Context(), chi.URLParam(r, "id"), queryInt(r, "limit", defaultPageLimit))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": campaignDTOs(campaigns)})
}

// CampaignsByCreator lists one creator's campaigns. Self or admin.
func (a *App) CampaignsByCreator(w http.ResponseWriter, r *http.Request) {
	campaigns, err := a.Campaigns.ListByCreator(r.Context(), a.principal(r), chi.URLParam(r, "email"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": campaignDTOs(campaigns)})
}

type campaignUpdateRequest struct {
	Name             *string    `json:"name"`
	Category         *string    `json:"category"`
	ImageURL         *string    `json:"imageUrl"`
	ShortDescription *string    `json:"shortDescription"`
	LongDescription  *string    `json:"longDescription"`
	Target           *int64     `json:"target"`
	LastDate         *time.Time `json:"lastDate"`
}

// CampaignUpdate rewrites the supplied fields. Creator or admin.
func (a *App) CampaignUpdate(w http.ResponseWriter, r *http.Request) {
	var req campaignUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	campaign, err := a.Campaigns.Update(r.Context(), a.principal(r), chi.URLParam(r, "id"), domain.CampaignUpdate{
		Name:             req.Name,
		Category:         req.Category,
		ImageURL:         req.ImageURL,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		TargetInt:        req.Target,
		LastDate:         req.LastDate,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toCampaignDTO(campaign, true))
}

type pauseRequest struct {
	Paused bool `json:"paused"`
}

// CampaignPause toggles donation intake. Creator or admin.
func (a *App) CampaignPause(w http.ResponseWriter, r *http.Request) {
	var req pauseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Campaigns.SetPaused(r.Context(), a.principal(r), chi.URLParam(r, "id"), req.Paused); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"success": true})
}

// CampaignDelete removes a campaign. Admin only.
func (a *App) CampaignDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Campaigns.Delete(r.Context(), a.principal(r), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
