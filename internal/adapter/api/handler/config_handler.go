package handler

import (
	"github.com/labstack/echo/v4"

	"econexus/pkg/config"
	"econexus/pkg/response"
)

type ConfigHandler struct {
	cfg *config.Config
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// MapsKey exposes the maps provider key to the dashboard's map widget.
// An empty key is a valid response; the widget degrades to a placeholder.
func (h *ConfigHandler) MapsKey(c echo.Context) error {
	return response.Success(c, map[string]string{"maps_api_key": h.cfg.MapsAPIKey})
}
