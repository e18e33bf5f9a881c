package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/expense_portal/internal/apperrors"
	"github.com/SscSPs/expense_portal/internal/core/domain"
	"github.com/SscSPs/expense_portal/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDirectorSession() *domain.Session {
	return domain.NewSession("s-1", domain.User{UserID: "u-2", FirstName: "Maria", LastName: "Georgieva", EmployeeID: "FIN001"}, true, time.Now())
}

func TestChatSend_AppendsBothSides(t *testing.T) {
	ctx := context.Background()
	gateway := new(MockChatGateway)
	gateway.On("SendChat", ctx, mock.MatchedBy(func(req domain.ChatRequest) bool {
		return req.Message == "Колко чакат?" && req.UserID == "u-2" && req.UserName == "Maria Georgieva" && req.Timestamp != ""
	})).Return(json.RawMessage(`[{"output":"Има **2** разхода за одобрение."}]`), nil).Once()

	session := newDirectorSession()
	reply, err := services.NewChatService(gateway).Send(ctx, session, "  Колко чакат?  ")

	require.NoError(t, err)
	assert.Equal(t, domain.ChatRoleAssistant, reply.Role)
	assert.Equal(t, "Има **2** разхода за одобрение.", reply.Text)

	transcript := session.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, domain.ChatRoleUser, transcript[0].Role)
	assert.Equal(t, "Колко чакат?", transcript[0].Text)
	gateway.AssertExpectations(t)
}

func TestChatSend_EmptyMessage(t *testing.T) {
	gateway := new(MockChatGateway)
	session := newDirectorSession()

	_, err := services.NewChatService(gateway).Send(context.Background(), session, "   ")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, session.Transcript())
	gateway.AssertNotCalled(t, "SendChat", mock.Anything, mock.Anything)
}

func TestChatSend_NoUsableReply(t *testing.T) {
	ctx := context.Background()
	gateway := new(MockChatGateway)
	gateway.On("SendChat", ctx, mock.Anything).Return(json.RawMessage(`{"ok":1}`), nil).Once()

	reply, err := services.NewChatService(gateway).Send(ctx, newDirectorSession(), "hello")

	require.NoError(t, err)
	assert.Equal(t, domain.MsgChatNoReply, reply.Text)
}

func TestChatSend_FailureAddsNotice(t *testing.T) {
	ctx := context.Background()
	gateway := new(MockChatGateway)
	gateway.On("SendChat", ctx, mock.Anything).Return(nil, &apperrors.UpstreamError{Service: "chat webhook", StatusCode: 500}).Once()

	session := newDirectorSession()
	_, err := services.NewChatService(gateway).Send(ctx, session, "hello")

	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	transcript := session.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, domain.ChatRoleSystem, transcript[1].Role)
	assert.Equal(t, domain.MsgChatFailed, transcript[1].Text)
}

func TestExtractChatReply(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"message key", `{"message":"Hi there"}`, "Hi there"},
		{"key order", `{"answer":"second","response":"first"}`, "first"},
		{"output in array", `[{"output":"From n8n"}]`, "From n8n"},
		{"bare string", `"plain reply"`, "plain reply"},
		{"long string fallback", `{"meta":{"id":"short"},"body":{"content":"This is long enough"}}`, "This is long enough"},
		{"sorted keys", `{"z":"zzzzzzzzzzzzzz","a":"aaaaaaaaaaaaaa"}`, "aaaaaaaaaaaaaa"},
		{"only short strings", `{"a":"tiny","b":"small"}`, ""},
		{"rune counting", `{"x":"ЗдравейтеЗ"}`, "ЗдравейтеЗ"},
		{"invalid", `{`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, services.ExtractChatReply(json.RawMessage(tc.raw)))
		})
	}
}
