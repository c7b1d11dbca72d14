package service

import (
	"context"
	"errors"

	"catalog-assistant/internal/dto"
	"catalog-assistant/internal/models"
	"catalog-assistant/internal/repository"

	"go.uber.org/zap"
)

var ErrUnknownQuickAction = errors.New("unknown quick action")

// quickActions are canned messages; they go through the same classification as typed text.
var quickActions = []dto.QuickAction{
	{Name: "show_products", Label: "Show products", Message: "show me products under 10000"},
	{Name: "budget_picks", Label: "Under 50", Message: "show me something under 50"},
	{Name: "shipping_info", Label: "Shipping info", Message: "what are your shipping options?"},
	{Name: "return_policy", Label: "Return policy", Message: "what is your return policy?"},
	{Name: "product_care", Label: "Product care", Message: "how should I care for my purchase?"},
	{Name: "help", Label: "Help", Message: "help"},
}

type ChatService struct {
	engine        *QueryEngine
	knowledgeRepo *repository.KnowledgeRepository
	logger        *zap.Logger
}

func NewChatService(engine *QueryEngine, knowledgeRepo *repository.KnowledgeRepository, logger *zap.Logger) *ChatService {
	return &ChatService{
		engine:        engine,
		knowledgeRepo: knowledgeRepo,
		logger:        logger,
	}
}

// Answer replies to message using the current knowledge base. history is
// accepted but does not influence the reply.
func (s *ChatService) Answer(ctx context.Context, message string, history []dto.ChatTurn) models.ChatResponse {
	kb := s.knowledgeRepo.Current(ctx)
	intent, resp := s.engine.classify(message, kb)

	s.logger.Debug("Chat message answered",
		zap.String("intent", intent),
		zap.String("type", string(resp.Type)),
		zap.Int("products", len(resp.Products)),
		zap.Int("history_turns", len(history)),
	)
	return resp
}

func (s *ChatService) QuickActions() []dto.QuickAction {
	out := make([]dto.QuickAction, len(quickActions))
	copy(out, quickActions)
	return out
}

func (s *ChatService) AnswerQuickAction(ctx context.Context, name string) (models.ChatResponse, error) {
	for _, action := range quickActions {
		if action.Name == name {
			return s.Answer(ctx, action.Message, nil), nil
		}
	}
	return models.ChatResponse{}, ErrUnknownQuickAction
}
