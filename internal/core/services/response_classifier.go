package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SscSPs/expense_portal/internal/core/domain"
)

// resultKeys mark the object that carries a legacy workflow verdict.
var resultKeys = []string{"error", "success", "errorCode"}

const invalidReceiptCode = "INVALID_RECEIPT"

// ClassifyResponse turns a submission webhook reply into an outcome.
//
// Replies carrying a boolean "ok" use the tagged contract
// {ok, payload | error{message, details, reason, suggestions}}. A failure
// marker next to ok:true (success:false, error, valid:false) still fails the
// reply. Anything else goes through the legacy decoder, which unwraps
// single-key objects and arrays until it finds an object with error, success
// or errorCode, or one embedding an expense with a status.
func ClassifyResponse(raw json.RawMessage) domain.SubmissionOutcome {
	root, err := decodeAny(raw)
	if err != nil {
		return failedOutcome(nil)
	}

	if obj, ok := root.(map[string]any); ok {
		if okFlag, tagged := obj["ok"].(bool); tagged {
			return classifyTagged(okFlag, obj)
		}
	}
	return classifyLegacy(root)
}

func decodeAny(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func classifyTagged(ok bool, obj map[string]any) domain.SubmissionOutcome {
	if !ok {
		errObj, _ := obj["error"].(map[string]any)
		if errObj == nil {
			// {ok:false, error:"text"} is tolerated
			errObj = map[string]any{"message": stringField(obj, "error")}
		}
		return failedOutcome(errObj)
	}

	payload, _ := obj["payload"].(map[string]any)
	for _, candidate := range []map[string]any{obj, payload} {
		if candidate != nil && isFailure(candidate) {
			return failureFrom(candidate)
		}
	}
	return acceptedOutcome(payload)
}

func classifyLegacy(root any) domain.SubmissionOutcome {
	result := findResultObject(root)
	if result == nil {
		result, _ = root.(map[string]any)
	}
	if result == nil {
		return acceptedOutcome(nil)
	}

	if isFailure(result) {
		return failureFrom(result)
	}
	return acceptedOutcome(result)
}

func failureFrom(result map[string]any) domain.SubmissionOutcome {
	if nested, ok := result["error"].(map[string]any); ok {
		return failedOutcome(mergeDetail(result, nested))
	}
	return failedOutcome(result)
}

// findResultObject walks single-key wrapper objects and array wrappers
// (first element) until it meets an object exposing a result key or an
// embedded expense.
func findResultObject(v any) map[string]any {
	switch node := v.(type) {
	case map[string]any:
		for _, key := range resultKeys {
			if _, ok := node[key]; ok {
				return node
			}
		}
		if embeddedExpense(node) != nil {
			return node
		}
		if len(node) == 1 {
			for _, inner := range node {
				return findResultObject(inner)
			}
		}
	case []any:
		if len(node) > 0 {
			return findResultObject(node[0])
		}
	}
	return nil
}

func isFailure(obj map[string]any) bool {
	if truthy(obj["error"]) {
		return true
	}
	if success, ok := obj["success"].(bool); ok && !success {
		return true
	}
	if code, ok := obj["errorCode"].(string); ok && code == invalidReceiptCode {
		return true
	}
	if valid, ok := obj["valid"].(bool); ok && !valid {
		return true
	}
	return false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		return t.String() != "0"
	default:
		return true
	}
}

// mergeDetail lets fields of a nested error object fill gaps in its parent.
func mergeDetail(parent, nested map[string]any) map[string]any {
	merged := make(map[string]any, len(parent)+len(nested))
	for k, v := range nested {
		merged[k] = v
	}
	for _, k := range []string{"message", "details", "reason", "suggestions"} {
		if _, ok := merged[k]; !ok {
			if v, ok := parent[k]; ok {
				merged[k] = v
			}
		}
	}
	return merged
}

func failedOutcome(obj map[string]any) domain.SubmissionOutcome {
	outcome := domain.SubmissionOutcome{Kind: domain.OutcomeError, Accepted: false}
	if obj != nil {
		outcome.Message = stringField(obj, "message")
		outcome.Details = stringField(obj, "details")
		outcome.Reason = stringField(obj, "reason")
		outcome.Suggestions = stringList(obj["suggestions"])
		if outcome.Message == "" {
			if msg, ok := obj["error"].(string); ok {
				outcome.Message = msg
			}
		}
	}
	if outcome.Message == "" {
		outcome.Message = firstNonEmpty(outcome.Details, outcome.Reason, domain.MsgProcessingFailed)
	}
	return outcome
}

func acceptedOutcome(obj map[string]any) domain.SubmissionOutcome {
	outcome := domain.SubmissionOutcome{
		Kind:     domain.OutcomeSuccess,
		Accepted: true,
		Message:  domain.MsgSubmitted,
	}

	embedded := embeddedExpense(obj)
	if embedded == nil {
		return outcome
	}
	outcome.Expense = embedded

	switch embedded.Status {
	case domain.StatusRejected:
		outcome.Kind = domain.OutcomeError
		outcome.Message = domain.MsgExpenseRejected
		outcome.Reason = embedded.StatusReason
	case domain.StatusManualReview:
		outcome.Kind = domain.OutcomeWarning
		outcome.Message = domain.MsgExpenseInReview
		outcome.Reason = embedded.StatusReason
	}
	return outcome
}

func embeddedExpense(obj map[string]any) *domain.EmbeddedExpense {
	if obj == nil {
		return nil
	}
	var exp map[string]any
	for _, key := range []string{"expense", "data"} {
		if candidate, ok := obj[key].(map[string]any); ok {
			if _, hasStatus := candidate["status"]; hasStatus {
				exp = candidate
				break
			}
		}
	}
	if exp == nil {
		return nil
	}
	return &domain.EmbeddedExpense{
		Status:       domain.ExpenseStatus(stringField(exp, "status")),
		StatusReason: firstNonEmpty(stringField(exp, "statusReason"), stringField(exp, "status_reason")),
		Merchant:     stringField(exp, "merchant"),
		Amount:       stringField(exp, "amount"),
	}
}

func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case nil:
		return ""
	case bool, map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case string:
		if strings.TrimSpace(t) != "" {
			return []string{strings.TrimSpace(t)}
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
