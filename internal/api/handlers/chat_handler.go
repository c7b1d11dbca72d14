package handlers

import (
	"catalog-assistant/internal/dto"
	"catalog-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat godoc
// @Summary Send a chat message
// @Description Answer a shopper's message from the trained knowledge base. A missing or blank message gets the general reply.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Router /api/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp := h.chatService.Answer(c.Context(), req.Message, req.ConversationHistory)
	return c.JSON(dto.ChatResponse{
		Success:  true,
		Response: resp,
	})
}

// QuickActions godoc
// @Summary List quick actions
// @Description Canned messages offered as buttons by the chat widget
// @Tags chat
// @Produce json
// @Success 200 {array} dto.QuickAction
// @Router /api/chat/quick-actions [get]
func (h *ChatHandler) QuickActions(c *fiber.Ctx) error {
	return c.JSON(h.chatService.QuickActions())
}

// QuickAction godoc
// @Summary Run a quick action
// @Description Answer the canonical message behind a quick action
// @Tags chat
// @Produce json
// @Param action path string true "Quick action name"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Router /api/chat/quick-actions/{action} [post]
func (h *ChatHandler) QuickAction(c *fiber.Ctx) error {
	resp, err := h.chatService.AnswerQuickAction(c.Context(), c.Params("action"))
	if err != nil {
		h.logger.Warn("Unknown quick action", zap.String("action", c.Params("action")))
		return errorJSON(c, statusFor(err), err.Error())
	}

	return c.JSON(dto.ChatResponse{
		Success:  true,
		Response: resp,
	})
}
