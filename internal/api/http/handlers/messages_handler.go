package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-roster/internal/api/dto"
	"github.com/spec-kit/shift-roster/internal/auth"
	"github.com/spec-kit/shift-roster/internal/service"
	apperrors "github.com/spec-kit/shift-roster/pkg/util/errorutil"
)

// MessagesHandler exposes manager broadcasts.
type MessagesHandler struct {
	service *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messageService *service.MessageService) *MessagesHandler {
	return &MessagesHandler{service: messageService}
}

// Broadcast POST /messages/broadcast.
func (h *MessagesHandler) Broadcast(c *fiber.Ctx) error {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.BroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	msg, err := h.service.Broadcast(c.UserContext(), actor, req.Message)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": broadcastResponse(msg)})
}

// ListMessages GET /messages.
func (h *MessagesHandler) ListMessages(c *fiber.Ctx) error {
	msgs, err := h.service.ListRecent(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	items := make([]dto.BroadcastResponse, 0, len(msgs))
	for i := range msgs {
		items = append(items, broadcastResponse(&msgs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
