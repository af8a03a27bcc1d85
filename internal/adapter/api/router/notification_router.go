package router

import (
	"github.com/labstack/echo/v4"

	"econexus/internal/adapter/api/handler"
	"econexus/internal/adapter/api/middleware"
)

func SetupNotificationRouter(e *echo.Echo, notificationHandler *handler.NotificationHandler, authMiddleware *middleware.AuthMiddleware) {
	notifications := e.Group("/v1/notifications")
	notifications.Use(authMiddleware.Authenticate)

	notifications.GET("", notificationHandler.List)
	notifications.GET("/unread-count", notificationHandler.UnreadCount)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)
}
