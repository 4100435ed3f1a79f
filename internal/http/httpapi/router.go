package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"server/internal/http/handlers"
	"server/internal/middleware"
)

// Config carries the router-level knobs.
type Config struct {
	AllowedOrigins  []string
	RateLimitPerMin int
	CountryLookup   middleware.CountryLookup
}

// NewRouter builds the full HTTP surface. Reads of public listing data
// need no token; every mutation and every owner-scoped read sits behind
// the auth middleware.
func NewRouter(app *handlers.App, cfg Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Geo(cfg.CountryLookup))
	r.Use(middleware.Logger(app.Logger))
	if cfg.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
	}

	r.Get("/healthz", app.Health)

	// Session endpoints and the login upsert carry no token yet.
	r.Post("/jwt", app.JWTIssue)
	r.Get("/logout", app.Logout)
	r.Put("/users", app.UsersUpsert)

	// Public catalog reads.
	r.Get("/pets/available", app.PetsAvailable)
	r.Get("/pets/{id}", app.PetGet)
	r.Get("/campaigns", app.CampaignsList)
	r.Get("/campaigns/{id}", app.CampaignGet)
	r.Get("/campaigns/{id}/others", app.CampaignOthers)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(app.JWTSecret))

		r.Get("/users", app.UsersList)
		r.Get("/users/{email}", app.UserGet)
		r.Patch("/users/request-role", app.UserRequestRole)
		r.Patch("/users/{email}/role", app.UserSetRole)

		r.Post("/pets", app.PetsCreate)
		r.Get("/pets", app.PetsList)
		r.Get("/pets/owner/{email}", app.PetsByOwner)
		r.Put("/pets/{id}", app.PetUpdate)
		r.Patch("/pets/{id}/adopted", app.PetSetAdopted)
		r.Delete("/pets/{id}", app.PetDelete)

		r.Post("/adoption-requests", app.RequestsCreate)
		r.Get("/adoption-requests/owner/{email}", app.RequestsByOwner)
		r.Delete("/adoption-requests/{id}", app.RequestResolve)

		r.Post("/campaigns", app.CampaignsCreate)
		r.Get("/campaigns/creator/{email}", app.CampaignsByCreator)
		r.Put("/campaigns/{id}", app.CampaignUpdate)
		r.Patch("/campaigns/{id}/pause", app.CampaignPause)
		r.Delete("/campaigns/{id}", app.CampaignDelete)

		r.Post("/donations", app.DonationsCreate)
		r.Get("/donations/donator/{email}", app.DonationsByDonator)
		r.Post("/donations/{id}/refund", app.DonationRefund)
	})

	return r
}
