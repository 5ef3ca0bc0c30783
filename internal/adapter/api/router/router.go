package router

import (
	"github.com/labstack/echo/v4"

	"tradebinder/internal/adapter/api/handler"
	"tradebinder/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	listingHandler *handler.ListingHandler,
	matchingHandler *handler.MatchingHandler,
	offerHandler *handler.OfferHandler,
	collectionHandler *handler.CollectionHandler,
	chatHandler *handler.ChatHandler,
	wsHandler *handler.WebSocketHandler,
	healthHandler *handler.HealthHandler,
) {
	SetupListingRouter(e, listingHandler, matchingHandler, offerHandler, authMiddleware)
	SetupOfferRouter(e, offerHandler, authMiddleware)
	SetupCollectionRouter(e, collectionHandler, authMiddleware)
	SetupChatRouter(e, chatHandler, authMiddleware)
	SetupWebSocketRouter(e, wsHandler)
	SetupHealthRouter(e, healthHandler)
}
