package router

import (
	"github.com/labstack/echo/v4"

	"econexus/internal/adapter/api/handler"
	"econexus/internal/adapter/api/middleware"
)

func SetupMaterialRouter(e *echo.Echo, materialHandler *handler.MaterialHandler, authMiddleware *middleware.AuthMiddleware) {
	materials := e.Group("/v1/materials")
	materials.Use(authMiddleware.Authenticate)

	materials.POST("", materialHandler.Create)
	materials.GET("", materialHandler.List)
	materials.POST("/:id/sold", materialHandler.MarkSold)
}
