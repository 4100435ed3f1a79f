package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/service"
)

// defaultPageLimit is the page size used when the client sends none.
const defaultPageLimit = 6

type petDTO struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Age              string    `json:"age"`
	Location         string    `json:"location"`
	ShortDescription string    `json:"shortDescription"`
	LongDescription  string    `json:"longDescription"`
	ImageURL         string    `json:"imageUrl"`
	Adopted          bool      `json:"adopted"`
	OwnerEmail       string    `json:"ownerEmail"`
	CreatedAt        time.Time `json:"createdAt"`
}

func toPetDTO(p *domain.Pet) petDTO {
	return petDTO{
		ID:               p.ID,
		Name:             p.Name,
		Category:         p.Category,
		Age:              p.Age,
		Location:         p.Location,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		ImageURL:         p.ImageURL,
		Adopted:          p.Adopted,
		OwnerEmail:       p.OwnerEmail,
		CreatedAt:        p.CreatedAt,
	}
}

func petDTOs(pets []domain.Pet) []petDTO {
	items := make([]petDTO, 0, len(pets))
	for i := range pets {
		items = append(items, toPetDTO(&pets[i]))
	}
	return items
}

type petRequest struct {
	Name             string `json:"name"`
	Category         string `json:"category"`
	Age              string `json:"age"`
	Location         string `json:"location"`
	ShortDescription string `json:"shortDescription"`
	LongDescription  string `json:"longDescription"`
	ImageURL         string `json:"imageUrl"`
}

func (p petRequest) input() service.PetInput {
	return service.PetInput{
		Name:             p.Name,
		Category:         p.Category,
		Age:              p.Age,
		Location:         p.Location,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		ImageURL:         p.ImageURL,
	}
}

// PetsCreate stores a new listing owned by the caller.
func (a *App) PetsCreate(w http.ResponseWriter, r *http.Request) {
	var req petRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Name == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name required")
		return
	}
	pet, err := a.Pets.Create(r.Context(), a.principal(r), req.input())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, toPetDTO(pet))
}

// PetsList returns every listing. Admin only.
func (a *App) PetsList(w http.ResponseWriter, r *http.Request) {
	pets, err := a.Pets.List(r.Context(), a.principal(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": petDTOs(pets)})
}

// PetsAvailable is the public paginated search over unadopted listings.
func (a *App) PetsAvailable(w http.ResponseWriter, r *http.Request) {
	q := domain.AvailablePetQuery{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Page:     queryInt(r, "page", 0),
		Limit:    queryInt(r, "limit", defaultPageLimit),
	}
	pets, nextPage, err := a.Pets.SearchAvailable(r.Context(), q)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": petDTOs(pets), "nextPage": nextPage})
}

// PetGet returns one listing. Public.
func (a *App) PetGet(w http.ResponseWriter, r *http.Request) {
	pet, err := a.Pets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toPetDTO(pet))
}

// PetsByOwner returns one owner's listings. Self or admin.
func (a *App) PetsByOwner(w http.ResponseWriter, r *http.Request) {
	pets, err := a.Pets.ListByOwner(r.Context(), a.principal(r), chi.URLParam(r, "email"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": petDTOs(pets)})
}

// PetUpdate rewrites a listing. Creator or admin.
func (a *App) PetUpdate(w http.ResponseWriter, r *http.Request) {
	var req petRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	pet, err := a.Pets.Update(r.Context(), a.principal(r), chi.URLParam(r, "id"), req.input())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toPetDTO(pet))
}

type adoptedRequest struct {
	Adopted bool `json:"adopted"`
}

// PetSetAdopted flips the adopted flag. Creator or admin.
func (a *App) PetSetAdopted(w http.ResponseWriter, r *http.Request) {
	var req adoptedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Pets.SetAdopted(r.Context(), a.principal(r), chi.URLParam(r, "id"), req.Adopted); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"success": true})
}

// PetDelete removes a listing. Creator or admin.
func (a *App) PetDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Pets.Delete(r.Context(), a.principal(r), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
