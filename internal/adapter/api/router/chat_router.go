package router

import (
	"github.com/labstack/echo/v4"

	"tradebinder/internal/adapter/api/handler"
	"tradebinder/internal/adapter/api/middleware"
)

// SetupChatRouter sets up all conversation routes (excluding WebSocket)
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chats := e.Group("/v1/conversations")
	chats.Use(authMiddleware.Authenticate)

	chats.POST("", chatHandler.StartConversation)
	chats.GET("", chatHandler.GetConversations)
	chats.GET("/:id", chatHandler.GetConversation)

	chats.POST("/:id/messages", chatHandler.SendMessage)
	chats.GET("/:id/messages", chatHandler.GetMessages)

	chats.POST("/:id/complete", chatHandler.CompleteTrade)
	chats.POST("/:id/cancel", chatHandler.CancelNegotiation)
}
