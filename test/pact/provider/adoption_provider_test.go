//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/pawfectmatch/adoption-api/test/pact"

	adoptionserver "github.com/pawfectmatch/adoption-api/go"
	accountmemory "github.com/pawfectmatch/adoption-api/internal/domains/accounts/adapters/memory"
	accountobs "github.com/pawfectmatch/adoption-api/internal/domains/accounts/adapters/observability"
	accountapp "github.com/pawfectmatch/adoption-api/internal/domains/accounts/application"
	adoptionmemory "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/adapters/memory"
	adoptionobs "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/adapters/observability"
	adoptionapp "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/application"
	listingmemory "github.com/pawfectmatch/adoption-api/internal/domains/listings/adapters/memory"
	listingobs "github.com/pawfectmatch/adoption-api/internal/domains/listings/adapters/observability"
	listingworkflows "github.com/pawfectmatch/adoption-api/internal/domains/listings/adapters/workflows"
	listingapp "github.com/pawfectmatch/adoption-api/internal/domains/listings/application"
	listingdomain "github.com/pawfectmatch/adoption-api/internal/domains/listings/domain"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestAdoptionProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateListingsBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetListings(t)
			return nil, nil
		},
		pacttest.StateListingExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetListings(t)
			if setup {
				app.seedListing(t, pacttest.ExistingListingID)
			}
			return nil, nil
		},
		pacttest.StateListingMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetListings(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetListings(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo   *listingmemory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	listingRepo := listingmemory.NewRepository()
	idempotencyStore := listingmemory.NewIdempotencyStore()
	listingService := listingobs.New(listingapp.NewService(listingRepo, listingapp.WithIdempotencyStore(idempotencyStore)))
	orchestrator := listingworkflows.NewInlineListingWorkflows(listingService)

	adoptionService := adoptionobs.New(adoptionapp.NewService(adoptionmemory.NewRepository(), listingService))
	accountService := accountobs.New(accountapp.NewService(accountmemory.NewDirectory(), accountmemory.NewSessionStore()))

	handlers := adoptionserver.ApiHandleFunctions{
		ListingAPI:  adoptionserver.NewListingAPI(listingService, adoptionService, orchestrator),
		AdoptionAPI: adoptionserver.NewAdoptionAPI(adoptionService),
		AccountAPI:  adoptionserver.NewAccountAPI(accountService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = adoptionserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:   listingRepo,
		server: server,
	}
}

func (a *contractProviderApp) resetListings(t testing.TB) {
	t.Helper()
	listings, err := a.repo.List(context.Background())
	require.NoError(t, err)
	for _, projection := range listings {
		_ = a.repo.Delete(context.Background(), projection.Pet.ID)
	}
}

func (a *contractProviderApp) seedListing(t testing.TB, id string) {
	t.Helper()
	pet, err := listingdomain.NewPet(id, "Fluffy Pact Cat", "Ragdoll", "3 years", "Cat", "Portland, OR")
	require.NoError(t, err)
	pet.ReplaceImages([]string{"https://example.pact/listings/fluffy.png"})
	_, err = a.repo.Save(context.Background(), pet)
	require.NoError(t, err)
}
