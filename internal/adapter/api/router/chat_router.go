package router

import (
	"github.com/labstack/echo/v4"

	"econexus/internal/adapter/api/handler"
	"econexus/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	conversations := e.Group("/v1/conversations")
	conversations.Use(authMiddleware.Authenticate)

	conversations.POST("", chatHandler.StartConversation)
	conversations.GET("", chatHandler.ListConversations)
	conversations.GET("/:id", chatHandler.GetConversation)
	conversations.PUT("/:id/read", chatHandler.MarkRead)

	conversations.POST("/:id/messages", chatHandler.SendMessage)
	conversations.GET("/:id/messages", chatHandler.ListMessages)
}
