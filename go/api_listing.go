package adoptionserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	adoptionports "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/ports"
	listinghttpmapper "github.com/pawfectmatch/adoption-api/internal/domains/listings/adapters/http/mapper"
	listingapp "github.com/pawfectmatch/adoption-api/internal/domains/listings/application"
	listingtypes "github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
	listingports "github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"
)

// ListingAPI wires HTTP transport with the listings bounded context service
// and workflows. Removing a listing also purges pending applications, so the
// adoptions service participates in the delete path.
type ListingAPI struct {
	service   listingports.Service
	adoptions adoptionports.Service
	workflows listingports.WorkflowOrchestrator
}

// NewListingAPI creates a ListingAPI backed by the provided services.
func NewListingAPI(service listingports.Service, adoptions adoptionports.Service, workflows listingports.WorkflowOrchestrator) ListingAPI {
	return ListingAPI{service: service, adoptions: adoptions, workflows: workflows}
}

// Post /v2/listings
// Publish a new pet listing
func (api *ListingAPI) AddListing(c *gin.Context) {
	var payload listinghttpmapper.MutationPet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := listingtypes.AddListingInput{
		Draft:          listinghttpmapper.ToListingDraft(payload),
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	}
	saved, err := api.createListing(c.Request.Context(), input)
	if err != nil {
		respondListingServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, listinghttpmapper.FromProjection(saved))
}

func (api *ListingAPI) createListing(ctx context.Context, input listingtypes.AddListingInput) (*listingtypes.ListingProjection, error) {
	if api.workflows != nil {
		return api.workflows.CreateListing(ctx, input)
	}
	return api.service.AddListing(ctx, input)
}

// Get /v2/listings
// Browse the catalog, optionally filtered by free-text query
func (api *ListingAPI) SearchListings(c *gin.Context) {
	query := c.Query("q")
	availableOnly := c.Query("available") == "true"
	if query == "" && !availableOnly {
		result, err := api.service.List(c.Request.Context())
		if err != nil {
			respondListingServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, listinghttpmapper.FromProjectionList(result))
		return
	}
	input := listingtypes.SearchListingsInput{Query: query, AvailableOnly: availableOnly}
	result, err := api.service.Search(c.Request.Context(), input)
	if err != nil {
		respondListingServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, listinghttpmapper.FromProjectionList(result))
}

// Get /v2/listings/:petId
// Find a listing by ID
func (api *ListingAPI) GetListingById(c *gin.Context) {
	id := c.Param("petId")
	pet, err := api.service.GetByID(c.Request.Context(), listingtypes.ListingIdentifier{ID: id})
	if err != nil {
		respondListingServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, listinghttpmapper.FromProjection(pet))
}

// Put /v2/listings/:petId
// Update an existing listing
func (api *ListingAPI) UpdateListing(c *gin.Context) {
	id := c.Param("petId")
	var payload listinghttpmapper.MutationPet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateListing(c.Request.Context(), listinghttpmapper.ToUpdateInput(id, payload))
	if err != nil {
		respondListingServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, listinghttpmapper.FromProjection(updated))
}

// Delete /v2/listings/:petId
// Remove a listing and purge its pending applications
func (api *ListingAPI) DeleteListing(c *gin.Context) {
	id := c.Param("petId")
	if err := api.service.RemoveListing(c.Request.Context(), listingtypes.ListingIdentifier{ID: id}); err != nil {
		respondListingServiceError(c, err)
		return
	}
	if api.adoptions != nil {
		if err := api.adoptions.PurgeForListing(c.Request.Context(), id); err != nil {
			respondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	c.Status(http.StatusOK)
}

func respondListingServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, listingports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, listingports.ErrIdempotencyConflict):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, listingapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
