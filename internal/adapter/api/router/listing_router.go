package router

import (
	"github.com/labstack/echo/v4"

	"tradebinder/internal/adapter/api/handler"
	"tradebinder/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, listingHandler *handler.ListingHandler, matchingHandler *handler.MatchingHandler, offerHandler *handler.OfferHandler, authMiddleware *middleware.AuthMiddleware) {
	listings := e.Group("/v1/listings")
	listings.Use(authMiddleware.Authenticate)

	listings.POST("", listingHandler.CreateListing)
	listings.GET("", listingHandler.BrowseListings)
	listings.GET("/mine", listingHandler.ListMyListings)
	listings.GET("/:id", listingHandler.GetListing)
	listings.PUT("/:id", listingHandler.UpdateListing)
	listings.POST("/:id/complete", listingHandler.CompleteListing)
	listings.POST("/:id/expire", listingHandler.ExpireListing)

	// Matching engine
	listings.GET("/:id/opportunities", matchingHandler.FindOpportunities)
	listings.POST("/:id/quick-match", matchingHandler.QuickMatch)

	// Offers scoped to a listing (owner view)
	listings.GET("/:id/offers", offerHandler.ListOffersForListing)
}
