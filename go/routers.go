package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// Routes is the list of the generated Route.
type Routes []Route

// ApiHandleFunctions bundles the per-context API implementations.
type ApiHandleFunctions struct {
	ListingAPI  ListingAPI
	AdoptionAPI AdoptionAPI
	AccountAPI  AccountAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// Index is the index handler.
func Index(c *gin.Context) {
	c.String(http.StatusOK, "Hello World!")
}

func defaultFunc(c *gin.Context) {}

func getRoutes(handleFunctions ApiHandleFunctions) Routes {
	return Routes{
		{
			"Index",
			http.MethodGet,
			"/v2/",
			Index,
		},
		{
			"AddListing",
			http.MethodPost,
			"/v2/listings",
			handleFunctions.ListingAPI.AddListing,
		},
		{
			"SearchListings",
			http.MethodGet,
			"/v2/listings",
			handleFunctions.ListingAPI.SearchListings,
		},
		{
			"GetListingById",
			http.MethodGet,
			"/v2/listings/:petId",
			handleFunctions.ListingAPI.GetListingById,
		},
		{
			"UpdateListing",
			http.MethodPut,
			"/v2/listings/:petId",
			handleFunctions.ListingAPI.UpdateListing,
		},
		{
			"DeleteListing",
			http.MethodDelete,
			"/v2/listings/:petId",
			handleFunctions.ListingAPI.DeleteListing,
		},
		{
			"SubmitApplication",
			http.MethodPost,
			"/v2/listings/:petId/applications",
			handleFunctions.AdoptionAPI.SubmitApplication,
		},
		{
			"ListApplications",
			http.MethodGet,
			"/v2/applications",
			handleFunctions.AdoptionAPI.ListApplications,
		},
		{
			"GetApplicationById",
			http.MethodGet,
			"/v2/applications/:applicationId",
			handleFunctions.AdoptionAPI.GetApplicationById,
		},
		{
			"DecideApplication",
			http.MethodPost,
			"/v2/applications/:applicationId/decision",
			handleFunctions.AdoptionAPI.DecideApplication,
		},
		{
			"RestoreSession",
			http.MethodGet,
			"/v2/session",
			handleFunctions.AccountAPI.RestoreSession,
		},
		{
			"Login",
			http.MethodPost,
			"/v2/session",
			handleFunctions.AccountAPI.Login,
		},
		{
			"Logout",
			http.MethodDelete,
			"/v2/session",
			handleFunctions.AccountAPI.Logout,
		},
		{
			"RegisterBuyer",
			http.MethodPost,
			"/v2/buyers",
			handleFunctions.AccountAPI.RegisterBuyer,
		},
		{
			"ApplyAsSeller",
			http.MethodPost,
			"/v2/sellers/applications",
			handleFunctions.AccountAPI.ApplyAsSeller,
		},
		{
			"PendingSellerApplications",
			http.MethodGet,
			"/v2/sellers/applications",
			handleFunctions.AccountAPI.PendingSellerApplications,
		},
		{
			"ApproveSeller",
			http.MethodPost,
			"/v2/sellers/applications/:email/approve",
			handleFunctions.AccountAPI.ApproveSeller,
		},
		{
			"RejectSeller",
			http.MethodPost,
			"/v2/sellers/applications/:email/reject",
			handleFunctions.AccountAPI.RejectSeller,
		},
		{
			"ListSellers",
			http.MethodGet,
			"/v2/sellers",
			handleFunctions.AccountAPI.ListSellers,
		},
		{
			"RemoveSeller",
			http.MethodDelete,
			"/v2/sellers/:email",
			handleFunctions.AccountAPI.RemoveSeller,
		},
		{
			"UpdateProfile",
			http.MethodPut,
			"/v2/accounts/:role/:email",
			handleFunctions.AccountAPI.UpdateProfile,
		},
		{
			"DeleteAccount",
			http.MethodDelete,
			"/v2/accounts/:role/:email",
			handleFunctions.AccountAPI.DeleteAccount,
		},
	}
}
