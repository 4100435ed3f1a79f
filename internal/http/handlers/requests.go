package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/service"
)

type requestDTO struct {
	ID                string    `json:"id"`
	PetID             string    `json:"petId"`
	PetName           string    `json:"petName"`
	RequesterEmail    string    `json:"requesterEmail"`
	RequesterName     string    `json:"requesterName"`
	Phone             string    `json:"phone"`
	Address           string    `json:"address"`
	PresentOwnerEmail string    `json:"presentOwnerEmail"`
	CreatedAt         time.Time `json:"createdAt"`
}

func toRequestDTO(req *domain.AdoptionRequest) requestDTO {
	return requestDTO{
		ID:                req.ID,
		PetID:             req.PetID,
		PetName:           req.PetName,
		RequesterEmail:    req.RequesterEmail,
		RequesterName:     req.RequesterName,
		Phone:             req.Phone,
		Address:           req.Address,
		PresentOwnerEmail: req.PresentOwnerEmail,
		CreatedAt:         req.CreatedAt,
	}
}

type submitRequest struct {
	PetID   string `json:"petId"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// RequestsCreate files an adoption request for the caller. A second
// pending request for the same pet returns 409.
func (a *App) RequestsCreate(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.PetID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "petId required")
		return
	}
	created, err := a.Adoptions.Submit(r.Context(), a.principal(r), service.SubmitInput{
		PetID:   req.PetID,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, toRequestDTO(created))
}

// RequestsByOwner lists the pending requests against one owner's
// listings. Self or admin.
func (a *App) RequestsByOwner(w http.ResponseWriter, r *http.Request) {
	reqs, err := a.Adoptions.ListForOwner(r.Context(), a.principal(r), chi.URLParam(r, "email"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items := make([]requestDTO, 0, len(reqs))
	for i := range reqs {
		items = append(items, toRequestDTO(&reqs[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// RequestResolve removes the request, accepting or rejecting it. The
// decision query parameter must be accept or reject.
func (a *App) RequestResolve(w http.ResponseWriter, r *http.Request) {
	decision := domain.Decision(r.URL.Query().Get("decision"))
	if !decision.Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "decision must be accept or reject")
		return
	}
	if err := a.Adoptions.Resolve(r.Context(), a.principal(r), chi.URLParam(r, "id"), decision); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
