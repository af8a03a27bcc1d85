package router

import (
	"github.com/labstack/echo/v4"

	"econexus/internal/adapter/api/handler"
	"econexus/internal/adapter/api/middleware"
)

func SetupWasteRequestRouter(e *echo.Echo, requestHandler *handler.WasteRequestHandler, authMiddleware *middleware.AuthMiddleware) {
	requests := e.Group("/v1/waste-requests")
	requests.Use(authMiddleware.Authenticate)

	requests.POST("", requestHandler.Create)
	requests.GET("", requestHandler.List)
	requests.GET("/:id", requestHandler.GetByID)

	// Status workflow: pending -> accepted -> in-transit -> completed
	requests.POST("/:id/accept", requestHandler.Accept)
	requests.POST("/:id/dispatch", requestHandler.Dispatch)
	requests.POST("/:id/complete", requestHandler.Complete)
	requests.POST("/:id/cancel", requestHandler.Cancel)
}
