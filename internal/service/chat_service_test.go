package service

import (
	"context"
	"testing"

	"catalog-assistant/internal/dto"
	"catalog-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTrainedChatService(t *testing.T) *ChatService {
	t.Helper()
	repo := newTestRepo(t)
	require.NoError(t, repo.Save(context.Background(), trainedKnowledgeBase()))
	return NewChatService(NewQueryEngine(), repo, zap.NewNop())
}

func TestChatService_Untrained(t *testing.T) {
	svc := NewChatService(NewQueryEngine(), newTestRepo(t), zap.NewNop())

	resp := svc.Answer(context.Background(), "hello", nil)
	assert.Equal(t, models.ResponseTypeError, resp.Type)
}

func TestChatService_HistoryDoesNotAffectReply(t *testing.T) {
	svc := newTrainedChatService(t)
	ctx := context.Background()

	history := []dto.ChatTurn{
		{Role: "user", Content: "show me something under 30"},
		{Role: "assistant", Content: "Here are some great options under 30:"},
	}
	assert.Equal(t, svc.Answer(ctx, "what about returns", nil), svc.Answer(ctx, "what about returns", history))
}

func TestChatService_QuickActions(t *testing.T) {
	svc := newTrainedChatService(t)
	ctx := context.Background()

	actions := svc.QuickActions()
	require.NotEmpty(t, actions)

	for _, action := range actions {
		t.Run(action.Name, func(t *testing.T) {
			resp, err := svc.AnswerQuickAction(ctx, action.Name)
			require.NoError(t, err)
			assert.Equal(t, svc.Answer(ctx, action.Message, nil), resp, "quick action is the canonical message")
			assert.NotEqual(t, models.ResponseTypeGeneral, resp.Type)
		})
	}

	_, err := svc.AnswerQuickAction(ctx, "nope")
	assert.ErrorIs(t, err, ErrUnknownQuickAction)
}

func TestChatService_QuickActionsIsCopy(t *testing.T) {
	svc := newTrainedChatService(t)
	actions := svc.QuickActions()
	actions[0].Message = "mutated"
	assert.NotEqual(t, "mutated", svc.QuickActions()[0].Message)
}
