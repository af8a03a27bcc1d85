package handler

import (
	"github.com/labstack/echo/v4"

	"econexus/internal/usecase"
	"econexus/pkg/response"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func (h *NotificationHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	limit, offset := pagination(c)

	notifications, total, err := h.notificationUseCase.List(c.Request().Context(), uid, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, notifications, total, limit, offset)
}

func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	uid := c.Get("uid").(string)

	count, err := h.notificationUseCase.UnreadCount(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int64{"unread": count})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.notificationUseCase.MarkRead(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"read": true})
}
