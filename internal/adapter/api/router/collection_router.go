package router

import (
	"github.com/labstack/echo/v4"

	"tradebinder/internal/adapter/api/handler"
	"tradebinder/internal/adapter/api/middleware"
)

func SetupCollectionRouter(e *echo.Echo, collectionHandler *handler.CollectionHandler, authMiddleware *middleware.AuthMiddleware) {
	collection := e.Group("/v1/collection")
	collection.Use(authMiddleware.Authenticate)

	collection.POST("/items", collectionHandler.AddItem)
	collection.GET("/items", collectionHandler.ListItems)
	collection.PUT("/items/:id/tradeable", collectionHandler.SetTradeable)
}
