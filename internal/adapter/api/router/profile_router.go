package router

import (
	"github.com/labstack/echo/v4"

	"econexus/internal/adapter/api/handler"
	"econexus/internal/adapter/api/middleware"
)

func SetupProfileRouter(e *echo.Echo, profileHandler *handler.ProfileHandler, authMiddleware *middleware.AuthMiddleware) {
	profiles := e.Group("/v1/profiles")
	profiles.Use(authMiddleware.Authenticate)

	profiles.POST("", profileHandler.CreateProfile)
	profiles.GET("/me", profileHandler.GetMyProfile)
	profiles.PATCH("/me", profileHandler.UpdateMyProfile)

	// Role directories used by the dashboards
	directory := e.Group("/v1")
	directory.Use(authMiddleware.Authenticate)
	directory.GET("/recyclers", profileHandler.ListRecyclers)
	directory.GET("/transporters", profileHandler.ListTransporters)
}
