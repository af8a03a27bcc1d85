package handler

import (
	"github.com/labstack/echo/v4"

	"econexus/internal/usecase"
	"econexus/pkg/response"
)

type ProfileHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewProfileHandler(userUseCase *usecase.UserUseCase) *ProfileHandler {
	return &ProfileHandler{
		userUseCase: userUseCase,
	}
}

type createProfileRequest struct {
	DisplayName  string   `json:"display_name" validate:"required"`
	Role         string   `json:"role" validate:"required,oneof=Industrialist Recycler Transporter"`
	Location     string   `json:"location"`
	PlantName    string   `json:"plant_name"`
	Materials    []string `json:"materials"`
	VehicleTypes []string `json:"vehicle_types"`
}

type updateProfileRequest struct {
	DisplayName  string   `json:"display_name"`
	Location     string   `json:"location"`
	PlantName    string   `json:"plant_name"`
	Materials    []string `json:"materials"`
	VehicleTypes []string `json:"vehicle_types"`
}

func (h *ProfileHandler) CreateProfile(c echo.Context) error {
	var req createProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	profile, err := h.userUseCase.CreateProfile(c.Request().Context(), uid, usecase.CreateProfileInput{
		DisplayName:  req.DisplayName,
		Role:         req.Role,
		Location:     req.Location,
		PlantName:    req.PlantName,
		Materials:    req.Materials,
		VehicleTypes: req.VehicleTypes,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, profile)
}

func (h *ProfileHandler) GetMyProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	profile, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *ProfileHandler) UpdateMyProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	profile, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		DisplayName:  req.DisplayName,
		Location:     req.Location,
		PlantName:    req.PlantName,
		Materials:    req.Materials,
		VehicleTypes: req.VehicleTypes,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *ProfileHandler) ListRecyclers(c echo.Context) error {
	limit, offset := pagination(c)

	recyclers, total, err := h.userUseCase.ListRecyclers(c.Request().Context(), limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, recyclers, total, limit, offset)
}

func (h *ProfileHandler) ListTransporters(c echo.Context) error {
	limit, offset := pagination(c)

	transporters, total, err := h.userUseCase.ListTransporters(c.Request().Context(), limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, transporters, total, limit, offset)
}
