package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/service"
)

// App bundles the services behind the HTTP surface.
type App struct {
	Users     *service.UserService
	Pets      *service.PetService
	Adoptions *service.AdoptionService
	Campaigns *service.CampaignService
	Logger    zerolog.Logger

	JWTSecret    string
	CookieSecure bool
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, msg string) {
	a.json(w, code, map[string]any{"error": map[string]string{"code": kind, "message": msg}})
}

// fail maps domain sentinels to the stable error envelope. Inconsistent
// state keeps the wrapped message because it carries the entity ids a
// reconciliation needs; everything unrecognized collapses to a generic
// 500 with the detail kept in the logs.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing or invalid credential")
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", "insufficient rights")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrDuplicateRequest):
		a.error(w, http.StatusConflict, "duplicate_request", "a pending request already exists")
	case errors.Is(err, domain.ErrDuplicateTransaction):
		a.error(w, http.StatusConflict, "duplicate_transaction", "transaction id already recorded")
	case errors.Is(err, domain.ErrInvalidAmount):
		a.error(w, http.StatusBadRequest, "invalid_amount", "amount must be positive")
	case errors.Is(err, domain.ErrInconsistentState):
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("inconsistent state")
		a.error(w, http.StatusInternalServerError, "inconsistent_state", err.Error())
	default:
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// principal resolves the caller identity from the verified token plus
// the stored role. Unauthenticated requests yield a zero principal,
// which every service rejects with ErrUnauthorized.
func (a *App) principal(r *http.Request) domain.Principal {
	email := middleware.EmailFromContext(r.Context())
	if email == "" {
		return domain.Principal{}
	}
	return a.Users.Principal(r.Context(), email)
}
