package adoptionserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	accounthttpmapper "github.com/pawfectmatch/adoption-api/internal/domains/accounts/adapters/http/mapper"
	accountapp "github.com/pawfectmatch/adoption-api/internal/domains/accounts/application"
	accountdomain "github.com/pawfectmatch/adoption-api/internal/domains/accounts/domain"
	accountports "github.com/pawfectmatch/adoption-api/internal/domains/accounts/ports"
)

// AccountAPI wires HTTP transport with the accounts bounded context service.
type AccountAPI struct {
	service accountports.Service
}

// NewAccountAPI creates an AccountAPI backed by the provided service.
func NewAccountAPI(service accountports.Service) AccountAPI {
	return AccountAPI{service: service}
}

// Get /v2/session
// Restore the persisted session, if any
func (api *AccountAPI) RestoreSession(c *gin.Context) {
	session, err := api.service.Restore(c.Request.Context())
	if err != nil {
		respondAccountServiceError(c, err)
		return
	}
	if session == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, accounthttpmapper.FromDomainSession(session, ""))
}

// Post /v2/session
// Log in with role-scoped credentials
func (api *AccountAPI) Login(c *gin.Context) {
	var payload accounthttpmapper.Credentials
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	role, err := accountdomain.ParseRole(payload.Role)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	session, token, err := api.service.Login(c.Request.Context(), role, payload.Email, payload.Password)
	if err != nil {
		respondAccountServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounthttpmapper.FromDomainSession(session, token))
}

// Delete /v2/session
// Log out and clear the persisted session
func (api *AccountAPI) Logout(c *gin.Context) {
	if err := api.service.Logout(c.Request.Context()); err != nil {
		respondAccountServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Post /v2/buyers
// Register a buyer account
func (api *AccountAPI) RegisterBuyer(c *gin.Context) {
	var payload accounthttpmapper.Registration
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	account, err := api.service.RegisterBuyer(c.Request.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		respondAccountServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounthttpmapper.FromDomainAccount(account))
}

// Post /v2/sellers/applications
// File a seller signup for admin review
func (api *AccountAPI) ApplyAsSeller(c *gin.Context) {
	var payload accounthttpmapper.Registration
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	account, err := api.service.ApplyAsSeller(c.Request.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		respondAccountServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounthttpmapper.FromDomainAccount(account))
}

// Get /v2/sellers/applications
// List seller signups awaiting review
func (api *AccountAPI) PendingSellerApplications(c *gin.Context) {
	pending, err := api.service.PendingSellerApplications(c.Request.Context())
	if err != nil {
		respondAccountServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounthttpmapper.FromDomainAccounts(pending))
}

// Post /v2/sellers/applications/:email/approve
// Promote a pending seller signup to an active seller
func (api *AccountAPI) ApproveSeller(c *gin.Context) {
	if err := api.service.ApproveSeller(c.Request.Context(), c.Param("email")); err != nil {
		respondAccountServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Post /v2/sellers/applications/:email/reject
// Discard a pending seller signup
func (api *AccountAPI) RejectSeller(c *gin.Context) {
	if err := api.service.RejectSeller(c.Request.Context(), c.Param("email")); err != nil {
		respondAccountServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Get /v2/sellers
// List active sellers
func (api *AccountAPI) ListSellers(c *gin.Context) {
	sellers, err := api.service.ListSellers(c.Request.Context())
	if err != nil {
		respondAccountServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounthttpmapper.FromDomainAccounts(sellers))
}

// Delete /v2/sellers/:email
// Remove an active seller
func (api *AccountAPI) RemoveSeller(c *gin.Context) {
	if err := api.service.RemoveSeller(c.Request.Context(), c.Param("email")); err != nil {
		respondAccountServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Put /v2/accounts/:role/:email
// Update profile fields; blank fields keep their stored values
func (api *AccountAPI) UpdateProfile(c *gin.Context) {
	role, err := accountdomain.ParseRole(c.Param("role"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var payload accounthttpmapper.ProfileUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	account, err := api.service.UpdateProfile(c.Request.Context(), role, c.Param("email"), payload.Name, payload.Password)
	if err != nil {
		respondAccountServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounthttpmapper.FromDomainAccount(account))
}

// Delete /v2/accounts/:role/:email
// Delete an account and clear any matching session
func (api *AccountAPI) DeleteAccount(c *gin.Context) {
	role, err := accountdomain.ParseRole(c.Param("role"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := api.service.DeleteAccount(c.Request.Context(), role, c.Param("email")); err != nil {
		respondAccountServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func respondAccountServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, accountapp.ErrAuthentication):
		respondError(c, http.StatusUnauthorized, err)
	case errors.Is(err, accountports.ErrAccountNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, accountapp.ErrAlreadyRegistered):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, accountapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, accountports.ErrDirectoryUnavailable):
		respondError(c, http.StatusBadGateway, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
