package dto

import "github.com/SscSPs/expense_portal/internal/core/domain"

// ChatRequest is a message for the assistant.
type ChatRequest struct {
	Message string `json:"message" form:"message"`
}

// ChatResponse returns the assistant's reply and the whole transcript.
type ChatResponse struct {
	Reply      domain.ChatMessage   `json:"reply"`
	Transcript []domain.ChatMessage `json:"transcript"`
}
