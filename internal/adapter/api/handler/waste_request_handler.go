package handler

import (
	"github.com/labstack/echo/v4"

	"econexus/internal/domain/entity"
	"econexus/internal/usecase"
	"econexus/pkg/errors"
	"econexus/pkg/response"
)

type WasteRequestHandler struct {
	requestUseCase *usecase.WasteRequestUseCase
}

func NewWasteRequestHandler(requestUseCase *usecase.WasteRequestUseCase) *WasteRequestHandler {
	return &WasteRequestHandler{
		requestUseCase: requestUseCase,
	}
}

type createWasteRequestRequest struct {
	Type     string  `json:"type" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Notes    string  `json:"notes"`
}

func (h *WasteRequestHandler) Create(c echo.Context) error {
	var req createWasteRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	request, err := h.requestUseCase.Create(c.Request().Context(), uid, usecase.CreateWasteRequestInput{
		Type:     req.Type,
		Quantity: req.Quantity,
		Notes:    req.Notes,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, request)
}

func (h *WasteRequestHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	limit, offset := pagination(c)

	if c.QueryParam("mine") == "true" {
		requests, total, err := h.requestUseCase.ListMine(c.Request().Context(), uid, limit, offset)
		if err != nil {
			return response.Error(c, err)
		}
		return response.Paginated(c, requests, total, limit, offset)
	}

	requestStatus := c.QueryParam("status")
	if requestStatus == "" {
		requestStatus = entity.RequestStatusPending
	}
	switch requestStatus {
	case entity.RequestStatusPending, entity.RequestStatusAccepted, entity.RequestStatusInTransit,
		entity.RequestStatusCompleted, entity.RequestStatusCancelled:
	default:
		return response.Error(c, errors.BadRequest("Unknown status filter", nil))
	}

	requests, total, err := h.requestUseCase.ListByStatus(c.Request().Context(), requestStatus, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, requests, total, limit, offset)
}

func (h *WasteRequestHandler) GetByID(c echo.Context) error {
	request, err := h.requestUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *WasteRequestHandler) Accept(c echo.Context) error {
	uid := c.Get("uid").(string)

	request, err := h.requestUseCase.Accept(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *WasteRequestHandler) Dispatch(c echo.Context) error {
	uid := c.Get("uid").(string)

	request, err := h.requestUseCase.Dispatch(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *WasteRequestHandler) Complete(c echo.Context) error {
	uid := c.Get("uid").(string)

	request, err := h.requestUseCase.Complete(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *WasteRequestHandler) Cancel(c echo.Context) error {
	uid := c.Get("uid").(string)

	request, err := h.requestUseCase.Cancel(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}
