package dto

import "catalog-assistant/internal/models"

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message string `json:"message"`
	// ConversationHistory is accepted for widget compatibility; replies do not depend on it.
	ConversationHistory []ChatTurn `json:"conversation_history,omitempty"`
}

type ChatResponse struct {
	Success  bool                `json:"success"`
	Response models.ChatResponse `json:"response"`
}

type QuickAction struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Message string `json:"message"`
}
