package router

import (
	"github.com/labstack/echo/v4"

	"econexus/internal/adapter/api/handler"
)

// SetupWebSocketRouter registers the live-update endpoint. Authentication
// happens inside the handler via the token query parameter.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/v1/ws", wsHandler.HandleWebSocket)
}
