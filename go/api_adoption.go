package adoptionserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	adoptionhttpmapper "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/adapters/http/mapper"
	adoptionapp "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/application"
	adoptiontypes "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/application/types"
	adoptiondomain "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/domain"
	adoptionports "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/ports"
	listingports "github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"
)

// AdoptionAPI wires HTTP transport with the adoptions bounded context service.
type AdoptionAPI struct {
	service adoptionports.Service
}

// NewAdoptionAPI creates an AdoptionAPI backed by the provided service.
func NewAdoptionAPI(service adoptionports.Service) AdoptionAPI {
	return AdoptionAPI{service: service}
}

// Post /v2/listings/:petId/applications
// Submit an adoption application for a listing
func (api *AdoptionAPI) SubmitApplication(c *gin.Context) {
	petID := c.Param("petId")
	var payload adoptionhttpmapper.ApplicationForm
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.Submit(c.Request.Context(), adoptionhttpmapper.ToSubmitInput(petID, payload))
	if err != nil {
		respondAdoptionServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromProjection(saved))
}

// Post /v2/applications/:applicationId/decision
// Approve or reject a pending application
func (api *AdoptionAPI) DecideApplication(c *gin.Context) {
	id := c.Param("applicationId")
	var payload adoptionhttpmapper.Decision
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	decided, err := api.service.Decide(c.Request.Context(), adoptionhttpmapper.ToDecideInput(id, payload))
	if err != nil {
		respondAdoptionServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromProjection(decided))
}

// Get /v2/applications/:applicationId
// Find an application by ID
func (api *AdoptionAPI) GetApplicationById(c *gin.Context) {
	id := c.Param("applicationId")
	application, err := api.service.GetByID(c.Request.Context(), adoptiontypes.ApplicationIdentifier{ID: id})
	if err != nil {
		respondAdoptionServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromProjection(application))
}

// Get /v2/applications
// List applications, hiding decided orphans unless includeOrphans=true
func (api *AdoptionAPI) ListApplications(c *gin.Context) {
	input := adoptiontypes.ListApplicationsInput{
		ExcludeOrphans: c.Query("includeOrphans") != "true",
		PetID:          c.Query("petId"),
		ApplicantEmail: c.Query("applicantEmail"),
	}
	result, err := api.service.List(c.Request.Context(), input)
	if err != nil {
		respondAdoptionServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromProjectionList(result))
}

func respondAdoptionServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, adoptionports.ErrNotFound), errors.Is(err, listingports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, adoptionapp.ErrListingUnavailable), errors.Is(err, adoptiondomain.ErrNotPending):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, adoptionapp.ErrInvalidDecision), errors.Is(err, adoptionapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
