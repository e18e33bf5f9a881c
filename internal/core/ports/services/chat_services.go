package services

import (
	"context"

	"github.com/SscSPs/expense_portal/internal/core/domain"
)

// ChatSvcFacade relays director messages to the assistant.
type ChatSvcFacade interface {
	// Send appends the message and the assistant's reply to the session
	// transcript and returns the reply entry.
	Send(ctx context.Context, session *domain.Session, text string) (*domain.ChatMessage, error)
}
