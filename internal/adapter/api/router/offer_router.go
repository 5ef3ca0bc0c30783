package router

import (
	"github.com/labstack/echo/v4"

	"tradebinder/internal/adapter/api/handler"
	"tradebinder/internal/adapter/api/middleware"
)

func SetupOfferRouter(e *echo.Echo, offerHandler *handler.OfferHandler, authMiddleware *middleware.AuthMiddleware) {
	offers := e.Group("/v1/offers")
	offers.Use(authMiddleware.Authenticate)

	offers.POST("", offerHandler.CreateOffer)
	offers.GET("/mine", offerHandler.ListMyOffers)
	offers.GET("/:id", offerHandler.GetOffer)
	offers.POST("/:id/accept", offerHandler.AcceptOffer)
	offers.POST("/:id/decline", offerHandler.DeclineOffer)
	offers.POST("/:id/withdraw", offerHandler.WithdrawOffer)
}
