package handler

import (
	"github.com/labstack/echo/v4"

	"econexus/internal/usecase"
	"econexus/pkg/response"
)

type MaterialHandler struct {
	materialUseCase *usecase.MaterialUseCase
}

func NewMaterialHandler(materialUseCase *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{
		materialUseCase: materialUseCase,
	}
}

type createMaterialRequest struct {
	Type     string  `json:"type" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"gte=0"`
}

func (h *MaterialHandler) Create(c echo.Context) error {
	var req createMaterialRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	material, err := h.materialUseCase.Create(c.Request().Context(), uid, usecase.CreateMaterialInput{
		Type:     req.Type,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, material)
}

func (h *MaterialHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	limit, offset := pagination(c)

	if c.QueryParam("mine") == "true" {
		materials, total, err := h.materialUseCase.ListMine(c.Request().Context(), uid, limit, offset)
		if err != nil {
			return response.Error(c, err)
		}
		return response.Paginated(c, materials, total, limit, offset)
	}

	materials, total, err := h.materialUseCase.ListAvailable(c.Request().Context(), limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, materials, total, limit, offset)
}

func (h *MaterialHandler) MarkSold(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.materialUseCase.MarkSold(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "sold"})
}
