package service

import (
	"github.com/rs/zerolog"

	"server/internal/adapter/memory"
)

type testEnv struct {
	store     *memory.Store
	users     *UserService
	pets      *PetService
	adoptions *AdoptionService
	campaigns *CampaignService
}

func newTestEnv() *testEnv {
	store := memory.NewStore()
	logger := zerolog.Nop()
	return &testEnv{
		store:     store,
		users:     NewUserService(store.Users),
		pets:      NewPetService(store.Pets),
		adoptions: NewAdoptionService(store.Requests, store.Pets, logger),
		campaigns: NewCampaignService(store.Campaigns, store.Donations, logger),
	}
}
