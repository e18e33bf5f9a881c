// Package webhook talks to the workflow-automation endpoints: expense
// submission, approve/reject decisions and the assistant chat.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/SscSPs/expense_portal/internal/apperrors"
	"github.com/SscSPs/expense_portal/internal/core/domain"
	"github.com/SscSPs/expense_portal/internal/core/ports/gateways"
)

// Endpoints holds the webhook URLs. An empty URL puts that call in demo mode.
type Endpoints struct {
	SubmissionURL string
	DecisionURL   string
	ChatURL       string
}

// Client implements the workflow gateways over HTTP. Calls carry no
// timeout of their own; they end when the context or the transport does.
type Client struct {
	endpoints  Endpoints
	httpClient *http.Client
}

var (
	_ gateways.SubmissionGateway = (*Client)(nil)
	_ gateways.DecisionGateway   = (*Client)(nil)
	_ gateways.ChatGateway       = (*Client)(nil)
)

// NewClient creates a webhook client. A nil httpClient uses http.DefaultClient.
func NewClient(endpoints Endpoints, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoints: endpoints, httpClient: httpClient}
}

// Gateways exposes the client through the gateway ports.
func (c *Client) Gateways() gateways.WorkflowGateways {
	return gateways.WorkflowGateways{Submission: c, Decision: c, Chat: c}
}

// SubmitExpense posts the draft as multipart/form-data.
func (c *Client) SubmitExpense(ctx context.Context, req gateways.SubmissionRequest) (json.RawMessage, error) {
	if c.endpoints.SubmissionURL == "" {
		return nil, apperrors.ErrDemoMode
	}

	body, contentType, err := encodeSubmission(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode submission: %w", err)
	}

	raw, err := c.do(ctx, "submission webhook", c.endpoints.SubmissionURL, contentType, body)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// PostDecision posts {action, expenseId, reason} and decodes {success, message}.
func (c *Client) PostDecision(ctx context.Context, decision domain.Decision) (*domain.DecisionResult, error) {
	if c.endpoints.DecisionURL == "" {
		return nil, apperrors.ErrDemoMode
	}

	payload, err := json.Marshal(decision)
	if err != nil {
		return nil, fmt.Errorf("failed to encode decision: %w", err)
	}

	raw, err := c.do(ctx, "decision webhook", c.endpoints.DecisionURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var result domain.DecisionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &apperrors.UpstreamError{Service: "decision webhook", Err: fmt.Errorf("unexpected reply shape: %w", err)}
	}
	return &result, nil
}

// SendChat posts the chat request and returns the raw reply.
func (c *Client) SendChat(ctx context.Context, req domain.ChatRequest) (json.RawMessage, error) {
	if c.endpoints.ChatURL == "" {
		return nil, apperrors.ErrDemoMode
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	return c.do(ctx, "chat webhook", c.endpoints.ChatURL, "application/json", bytes.NewReader(payload))
}

// do sends a POST and returns the body when the status is 2xx and the body
// is valid JSON. Everything else is an UpstreamError.
func (c *Client) do(ctx context.Context, service, url, contentType string, body io.Reader) (json.RawMessage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, &apperrors.UpstreamError{Service: service, Err: err}
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &apperrors.UpstreamError{Service: service, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.UpstreamError{Service: service, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.UpstreamError{Service: service, StatusCode: resp.StatusCode}
	}

	respBody = bytes.TrimSpace(respBody)
	if !json.Valid(respBody) {
		return nil, &apperrors.UpstreamError{Service: service, StatusCode: resp.StatusCode, Err: fmt.Errorf("malformed JSON body")}
	}
	return json.RawMessage(respBody), nil
}

func encodeSubmission(req gateways.SubmissionRequest) (io.Reader, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	draft := req.Draft
	fields := [][2]string{
		{"firstName", req.User.FirstName},
		{"lastName", req.User.LastName},
		{"employeeId", req.User.EmployeeID},
		{"userId", req.User.UserID},
		{"inputMode", string(draft.Mode)},
	}
	if draft.Mode == domain.ModeManual {
		m := draft.Manual
		fields = append(fields,
			[2]string{"merchant", m.Merchant},
			[2]string{"receiptNumber", m.ReceiptNumber},
			[2]string{"date", m.Date},
			[2]string{"amount", m.Amount},
			[2]string{"currency", m.Currency},
			[2]string{"category", m.Category},
			[2]string{"description", m.Description},
		)
	} else {
		fields = append(fields, [2]string{"comment", draft.Comment})
	}

	for _, f := range fields {
		if err := writer.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	if draft.HasFile() {
		part, err := createFilePart(writer, "receipt", draft.File)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(draft.File.Data); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &body, writer.FormDataContentType(), nil
}

// createFilePart is multipart.Writer.CreateFormFile with the file's own
// content type instead of application/octet-stream.
func createFilePart(writer *multipart.Writer, field string, file *domain.ReceiptFile) (io.Writer, error) {
	name := file.Name
	if name == "" {
		name = "receipt"
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, escapeQuotes(name)))
	h.Set("Content-Type", contentType)
	return writer.CreatePart(h)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
