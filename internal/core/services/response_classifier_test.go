package services_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/expense_portal/internal/core/domain"
	"github.com/SscSPs/expense_portal/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestClassifyResponse(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		kind     domain.OutcomeKind
		accepted bool
		message  string
	}{
		{"plain success", `{"success":true}`, domain.OutcomeSuccess, true, domain.MsgSubmitted},
		{"empty object", `{}`, domain.OutcomeSuccess, true, domain.MsgSubmitted},
		{"success false", `{"success":false,"message":"X"}`, domain.OutcomeError, false, "X"},
		{"error true", `{"error":true,"details":"blurry"}`, domain.OutcomeError, false, "blurry"},
		{"error string", `{"error":"Bad receipt"}`, domain.OutcomeError, false, "Bad receipt"},
		{"invalid receipt code", `{"errorCode":"INVALID_RECEIPT","reason":"not a receipt"}`, domain.OutcomeError, false, "not a receipt"},
		{"other error code", `{"errorCode":"SOMETHING"}`, domain.OutcomeSuccess, true, domain.MsgSubmitted},
		{"valid false", `{"success":true,"valid":false}`, domain.OutcomeError, false, domain.MsgProcessingFailed},
		{"array wrapper", `[{"success":false}]`, domain.OutcomeError, false, domain.MsgProcessingFailed},
		{"nested wrappers", `{"data":[{"result":{"error":true,"message":"deep"}}]}`, domain.OutcomeError, false, "deep"},
		{"nested error object", `{"error":{"message":"inner","reason":"why"}}`, domain.OutcomeError, false, "inner"},
		{"embedded rejected", `{"success":true,"expense":{"status":"Rejected","status_reason":"policy"}}`, domain.OutcomeError, true, domain.MsgExpenseRejected},
		{"embedded review", `{"success":true,"expense":{"status":"Manual Review"}}`, domain.OutcomeWarning, true, domain.MsgExpenseInReview},
		{"embedded approved", `{"success":true,"expense":{"status":"Approved"}}`, domain.OutcomeSuccess, true, domain.MsgSubmitted},
		{"tagged ok", `{"ok":true,"payload":{}}`, domain.OutcomeSuccess, true, domain.MsgSubmitted},
		{"tagged error", `{"ok":false,"error":{"message":"M","details":"D","reason":"R","suggestions":["S"]}}`, domain.OutcomeError, false, "M"},
		{"tagged error without message", `{"ok":false,"error":{"details":"D"}}`, domain.OutcomeError, false, "D"},
		{"tagged rejected", `{"ok":true,"payload":{"expense":{"status":"Rejected"}}}`, domain.OutcomeError, true, domain.MsgExpenseRejected},
		{"array wrapped rejected", `[{"expense":{"status":"Rejected","statusReason":"policy"}}]`, domain.OutcomeError, true, domain.MsgExpenseRejected},
		{"output wrapped rejected", `{"output":{"expense":{"status":"Rejected"}}}`, domain.OutcomeError, true, domain.MsgExpenseRejected},
		{"wrapped review", `[{"output":{"data":{"status":"Manual Review"}}}]`, domain.OutcomeWarning, true, domain.MsgExpenseInReview},
		{"wrapped object without status", `{"output":{"expense":{"merchant":"Lidl"}}}`, domain.OutcomeSuccess, true, domain.MsgSubmitted},
		{"tagged ok with success false", `{"ok":true,"success":false,"message":"X"}`, domain.OutcomeError, false, "X"},
		{"tagged ok with error", `{"ok":true,"error":{"message":"inner"}}`, domain.OutcomeError, false, "inner"},
		{"tagged ok with failed payload", `{"ok":true,"payload":{"valid":false,"reason":"blurry"}}`, domain.OutcomeError, false, "blurry"},
		{"not json", `nope`, domain.OutcomeError, false, domain.MsgProcessingFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outcome := services.ClassifyResponse(json.RawMessage(tc.raw))
			assert.Equal(t, tc.kind, outcome.Kind)
			assert.Equal(t, tc.accepted, outcome.Accepted)
			assert.Equal(t, tc.message, outcome.Message)
		})
	}
}

func TestClassifyResponse_TaggedErrorDetails(t *testing.T) {
	outcome := services.ClassifyResponse(json.RawMessage(`{"ok":false,"error":{"message":"M","details":"D","reason":"R","suggestions":["S1","S2"]}}`))

	assert.Equal(t, "D", outcome.Details)
	assert.Equal(t, "R", outcome.Reason)
	assert.Equal(t, []string{"S1", "S2"}, outcome.Suggestions)
}

func TestClassifyResponse_EmbeddedReason(t *testing.T) {
	outcome := services.ClassifyResponse(json.RawMessage(`{"success":true,"expense":{"status":"Rejected","statusReason":"cigarettes are not reimbursed","amount":12.5}}`))

	assert.Equal(t, "cigarettes are not reimbursed", outcome.Reason)
	if assert.NotNil(t, outcome.Expense) {
		assert.Equal(t, "12.5", outcome.Expense.Amount)
	}
}

func TestClassifyResponse_WrappedEmbeddedReason(t *testing.T) {
	outcome := services.ClassifyResponse(json.RawMessage(`[{"expense":{"status":"Rejected","statusReason":"personal purchase"}}]`))

	assert.Equal(t, "personal purchase", outcome.Reason)
	if assert.NotNil(t, outcome.Expense) {
		assert.Equal(t, domain.StatusRejected, outcome.Expense.Status)
	}
}
