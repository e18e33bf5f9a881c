package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_portal/internal/apperrors"
	"github.com/SscSPs/expense_portal/internal/core/domain"
	"github.com/SscSPs/expense_portal/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/expense_portal/internal/core/ports/services"
	"github.com/google/uuid"
)

type chatService struct {
	BaseService
	gateway gateways.ChatGateway
	now     func() time.Time
}

func NewChatService(gateway gateways.ChatGateway) portssvc.ChatSvcFacade {
	return &chatService{gateway: gateway, now: time.Now}
}

func (s *chatService) Send(ctx context.Context, session *domain.Session, text string) (*domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("message", domain.MsgChatEmpty)
	}

	sentAt := s.now()
	session.AppendChat(domain.ChatMessage{
		ID:     uuid.NewString(),
		Role:   domain.ChatRoleUser,
		Text:   text,
		SentAt: sentAt,
	})

	raw, err := s.gateway.SendChat(ctx, domain.ChatRequest{
		Message:   text,
		UserID:    session.User.UserID,
		UserName:  session.User.DisplayName(),
		Timestamp: sentAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		notice := domain.MsgChatFailed
		if errors.Is(err, apperrors.ErrDemoMode) {
			notice = domain.MsgDemoWebhook
		} else {
			s.LogError(ctx, err, "Chat webhook failed", slog.String("session_id", session.ID))
		}
		session.AppendChat(domain.ChatMessage{
			ID:     uuid.NewString(),
			Role:   domain.ChatRoleSystem,
			Text:   notice,
			SentAt: s.now(),
		})
		return nil, fmt.Errorf("failed to relay chat message: %w", err)
	}

	reply := ExtractChatReply(raw)
	if reply == "" {
		s.LogInfo(ctx, "Chat reply had no usable text", slog.String("session_id", session.ID))
		reply = domain.MsgChatNoReply
	}

	msg := domain.ChatMessage{
		ID:     uuid.NewString(),
		Role:   domain.ChatRoleAssistant,
		Text:   reply,
		SentAt: s.now(),
	}
	session.AppendChat(msg)
	return &msg, nil
}
