package handler

import (
	"github.com/labstack/echo/v4"

	"econexus/internal/usecase"
	"econexus/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type startConversationRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

func (h *ChatHandler) StartConversation(c echo.Context) error {
	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	conversation, err := h.chatUseCase.StartConversation(c.Request().Context(), uid, req.RecipientID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, conversation)
}

func (h *ChatHandler) ListConversations(c echo.Context) error {
	uid := c.Get("uid").(string)
	limit, offset := pagination(c)

	conversations, total, err := h.chatUseCase.ListConversations(c.Request().Context(), uid, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, conversations, total, limit, offset)
}

func (h *ChatHandler) GetConversation(c echo.Context) error {
	uid := c.Get("uid").(string)

	conversation, err := h.chatUseCase.GetConversation(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversation)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), uid, usecase.SendMessageInput{
		ConversationID: c.Param("id"),
		Text:           req.Text,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	uid := c.Get("uid").(string)
	limit, offset := pagination(c)

	messages, total, err := h.chatUseCase.ListMessages(c.Request().Context(), uid, c.Param("id"), limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, limit, offset)
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.chatUseCase.MarkRead(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "read"})
}
