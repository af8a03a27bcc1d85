package router

import (
	"github.com/labstack/echo/v4"

	"econexus/internal/adapter/api/handler"
	"econexus/internal/adapter/api/middleware"
)

func SetupConfigRouter(e *echo.Echo, configHandler *handler.ConfigHandler, authMiddleware *middleware.AuthMiddleware) {
	cfg := e.Group("/v1/config")
	cfg.Use(authMiddleware.Authenticate)

	cfg.GET("/maps-key", configHandler.MapsKey)
}
