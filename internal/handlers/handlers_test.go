package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/expense_portal/internal/adapters/webhook"
	"github.com/SscSPs/expense_portal/internal/core/domain"
	portssvc "github.com/SscSPs/expense_portal/internal/core/ports/services"
	"github.com/SscSPs/expense_portal/internal/core/services"
	"github.com/SscSPs/expense_portal/internal/dto"
	"github.com/SscSPs/expense_portal/internal/handlers"
	"github.com/SscSPs/expense_portal/internal/middleware"
	"github.com/SscSPs/expense_portal/internal/platform/config"
	"github.com/SscSPs/expense_portal/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const fixtureYAML = `
users:
  - id: u-1
    first_name: Ivan
    last_name: Petrov
    employee_id: EMP001
  - id: u-2
    first_name: Maria
    last_name: Georgieva
    employee_id: FIN001
  - id: u-3
    first_name: Georgi
    last_name: Dimitrov
    employee_id: EMP003
expenses:
  - id: e-1
    user_id: u-1
    merchant: Lidl
    category: food
    amount: "12.50"
    currency: BGN
    status: Approved
    created_at: 2024-03-01T10:00:00Z
  - id: e-2
    user_id: u-1
    merchant: Shell
    category: transport
    amount: "80"
    currency: BGN
    status: Manual Review
    created_at: 2024-03-05T10:00:00Z
  - id: e-3
    merchant: Legacy
    amount: "5"
    status: Rejected
    created_at: 2024-02-01T10:00:00Z
`

// fakeWorkflow stands in for the automation webhooks.
type fakeWorkflow struct {
	server *httptest.Server

	submitReply   atomic.Value // string
	decisionReply atomic.Value // string
	submitHits    atomic.Int32
	decisionHits  atomic.Int32
	chatHits      atomic.Int32
	mu            sync.Mutex
	lastSubmitted url.Values
}

func newFakeWorkflow() *fakeWorkflow {
	f := &fakeWorkflow{}
	f.submitReply.Store(`{"success":true}`)
	f.decisionReply.Store(`{"success":true}`)

	mux := http.NewServeMux()
	mux.HandleFunc("/submit", func(w http.ResponseWriter, r *http.Request) {
		f.submitHits.Add(1)
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			f.mu.Lock()
			f.lastSubmitted = r.MultipartForm.Value
			f.mu.Unlock()
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, f.submitReply.Load().(string))
	})
	mux.HandleFunc("/decision", func(w http.ResponseWriter, r *http.Request) {
		f.decisionHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, f.decisionReply.Load().(string))
	})
	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		f.chatHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"output":"Общо 1 разход чака одобрение."}`)
	})
	f.server = httptest.NewServer(mux)
	return f
}

func (f *fakeWorkflow) submitted(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if vals := f.lastSubmitted[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

type HandlersTestSuite struct {
	suite.Suite
	router   *gin.Engine
	workflow *fakeWorkflow
	services *portssvc.ServiceContainer
	cfg      *config.Config
}

func (suite *HandlersTestSuite) SetupTest() {
	suite.setup(true)
}

func (suite *HandlersTestSuite) setup(historyFallbackAll bool) {
	gin.SetMode(gin.TestMode)

	store, err := memory.ParseFixture([]byte(fixtureYAML))
	suite.Require().NoError(err)

	suite.workflow = newFakeWorkflow()
	suite.cfg = &config.Config{
		SessionSecret:         "test-secret-key-that-is-long-enough",
		SessionCookieName:     "expense_session",
		SessionExpiryDuration: time.Hour,
		JWTIssuer:             "expense-test",
		RefreshInterval:       time.Hour,
		PostSubmitReloadDelay: 10 * time.Millisecond,
		DirectorIDPrefix:      "FIN",
		DefaultCurrency:       "BGN",
		HistoryFallbackAll:    historyFallbackAll,
		LoginRateLimit:        "1000-M",
		SubmitRateLimit:       "1000-M",
		IsProduction:          true,
	}

	client := webhook.NewClient(webhook.Endpoints{
		SubmissionURL: suite.workflow.server.URL + "/submit",
		DecisionURL:   suite.workflow.server.URL + "/decision",
		ChatURL:       suite.workflow.server.URL + "/chat",
	}, suite.workflow.server.Client())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.services = services.NewServiceContainer(suite.cfg, store.Provider(), client.Gateways(), logger)

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(logger))
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, suite.cfg, suite.services, handlers.RouteDeps{}))
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.services.Session.Shutdown()
	suite.workflow.server.Close()
}

func (suite *HandlersTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return suite.serve(req)
}

func (suite *HandlersTestSuite) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return suite.serve(req)
}

// loginCookie logs in through the form and returns the session cookie.
func (suite *HandlersTestSuite) loginCookie(first, last, employeeID string) *http.Cookie {
	w := suite.postForm("/login", url.Values{
		"firstName":  {first},
		"lastName":   {last},
		"employeeId": {employeeID},
	})
	suite.Require().Equal(http.StatusSeeOther, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == suite.cfg.SessionCookieName {
			return c
		}
	}
	suite.FailNow("session cookie not set")
	return nil
}

// loginToken logs in through the API and returns the bearer token.
func (suite *HandlersTestSuite) loginToken(first, last, employeeID string) string {
	body, _ := json.Marshal(dto.LoginRequest{FirstName: first, LastName: last, EmployeeID: employeeID})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := suite.serve(req)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotEmpty(resp.Token)
	return resp.Token
}

func (suite *HandlersTestSuite) apiRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return suite.serve(req)
}

func manualForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("inputMode", "manual"))
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// --- Pages ---

func (suite *HandlersTestSuite) TestHome_AnonymousRendersLogin() {
	w := suite.get("/")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `id="loginForm"`)
	suite.NotContains(w.Body.String(), domain.MsgLoginFirst)
}

func (suite *HandlersTestSuite) TestLoginPage_UnknownIdentity() {
	w := suite.postForm("/login", url.Values{
		"firstName":  {"Ivan"},
		"lastName":   {"Petrov"},
		"employeeId": {"EMP999"},
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), domain.MsgIdentityNotFound)
	suite.Empty(w.Result().Cookies())
}

func (suite *HandlersTestSuite) TestLoginPage_EmptyField() {
	w := suite.postForm("/login", url.Values{
		"firstName":  {"Ivan"},
		"lastName":   {"  "},
		"employeeId": {"EMP001"},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), domain.MsgFillAllFields)
}

func (suite *HandlersTestSuite) TestLoginPage_RendersDashboard() {
	cookie := suite.loginCookie("Ivan", "Petrov", "EMP001")

	w := suite.get("/", cookie)

	suite.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	suite.Contains(body, "Добре дошли, Ivan Petrov!")
	suite.Contains(body, "Lidl")
	suite.Contains(body, "92.50 лв")
	suite.Contains(body, `id="expenseForm"`)
	suite.NotContains(body, "Legacy")
}

func (suite *HandlersTestSuite) TestDashboard_EmptyHistory() {
	suite.TearDownTest()
	suite.setup(false)
	cookie := suite.loginCookie("Georgi", "Dimitrov", "EMP003")

	w := suite.get("/", cookie)

	suite.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	suite.Contains(body, `id="noDataMessage"`)
	suite.Contains(body, `<strong id="totalAmount">0.00 лв</strong>`)
	suite.Contains(body, `<strong id="approvedAmount">0.00 лв</strong>`)
	suite.Contains(body, `<strong id="pendingAmount">0.00 лв</strong>`)
	suite.Contains(body, `<strong id="rejectedAmount">0.00 лв</strong>`)
	suite.NotContains(body, "Legacy")
}

func (suite *HandlersTestSuite) TestDashboard_LegacyFallbackShowsAllRows() {
	cookie := suite.loginCookie("Georgi", "Dimitrov", "EMP003")

	w := suite.get("/", cookie)

	suite.Contains(w.Body.String(), "Legacy")
	suite.Contains(w.Body.String(), "97.50 лв")
}

func (suite *HandlersTestSuite) TestLoginPage_DirectorRedirectsToDirectorView() {
	w := suite.postForm("/login", url.Values{
		"firstName":  {"Maria"},
		"lastName":   {"Georgieva"},
		"employeeId": {"FIN001"},
	})

	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/director", w.Header().Get("Location"))
}

func (suite *HandlersTestSuite) TestProtectedPage_RedirectsToLogin() {
	w := suite.get("/expenses/e-1")

	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/?notice=login", w.Header().Get("Location"))
}

func (suite *HandlersTestSuite) TestExpenseDetails() {
	cookie := suite.loginCookie("Ivan", "Petrov", "EMP001")

	w := suite.get("/expenses/e-2", cookie)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Shell")
	suite.Contains(w.Body.String(), "80.00 лв")

	w = suite.get("/expenses/missing", cookie)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestRefreshPage_RedirectsHome() {
	cookie := suite.loginCookie("Ivan", "Petrov", "EMP001")

	w := suite.postForm("/history/refresh", url.Values{}, cookie)

	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/", w.Header().Get("Location"))
}

func (suite *HandlersTestSuite) TestLogoutPage_EndsSession() {
	cookie := suite.loginCookie("Ivan", "Petrov", "EMP001")

	w := suite.postForm("/logout", url.Values{}, cookie)
	suite.Equal(http.StatusSeeOther, w.Code)

	w = suite.get("/expenses/e-1", cookie)
	suite.Equal(http.StatusSeeOther, w.Code)
}

func (suite *HandlersTestSuite) TestDirectorPage_ForbiddenForEmployee() {
	cookie := suite.loginCookie("Ivan", "Petrov", "EMP001")

	w := suite.get("/director", cookie)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(w.Body.String(), domain.MsgForbidden)
}

func (suite *HandlersTestSuite) TestDirectorPage_ShowsPending() {
	cookie := suite.loginCookie("Maria", "Georgieva", "FIN001")

	w := suite.get("/director", cookie)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "/director/expenses/e-2/approve")
}

func (suite *HandlersTestSuite) TestApprovePage_RefusedKeepsItem() {
	suite.workflow.decisionReply.Store(`{"success":false,"message":"Бюджетът е изчерпан"}`)
	cookie := suite.loginCookie("Maria", "Georgieva", "FIN001")

	w := suite.postForm("/director/expenses/e-2/approve", url.Values{}, cookie)
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal(int32(1), suite.workflow.decisionHits.Load())

	w = suite.get("/director", cookie)
	suite.Contains(w.Body.String(), "Бюджетът е изчерпан")
	suite.Contains(w.Body.String(), "/director/expenses/e-2/approve")
}

func (suite *HandlersTestSuite) TestRejectPage_EmptyReasonSendsNothing() {
	cookie := suite.loginCookie("Maria", "Georgieva", "FIN001")

	w := suite.postForm("/director/expenses/e-2/reject", url.Values{"reason": {""}}, cookie)

	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal(int32(0), suite.workflow.decisionHits.Load())

	w = suite.get("/director", cookie)
	suite.Contains(w.Body.String(), domain.MsgDecisionCancelled)
}

func (suite *HandlersTestSuite) TestSubmitPage_FailureEchoesDraft() {
	cookie := suite.loginCookie("Ivan", "Petrov", "EMP001")
	body, contentType := manualForm(suite.T(), map[string]string{
		"merchant":    "Kaufland",
		"date":        "2024-03-10",
		"amount":      "abc",
		"category":    "food",
		"description": "Обяд",
	})
	req := httptest.NewRequest(http.MethodPost, "/expenses", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)

	w := suite.serve(req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(w.Body.String(), `value="Kaufland"`)
	suite.Contains(w.Body.String(), domain.MsgInvalidAmount)
	suite.NotContains(w.Body.String(), `http-equiv="refresh"`)
	suite.Contains(w.Body.String(), `data-refresh-url="/history/panel"`)
	suite.Equal(int32(0), suite.workflow.submitHits.Load())
}

func (suite *HandlersTestSuite) TestPages_NoWholePageReload() {
	employee := suite.loginCookie("Ivan", "Petrov", "EMP001")
	director := suite.loginCookie("Maria", "Georgieva", "FIN001")

	w := suite.get("/", employee)
	suite.Equal(http.StatusOK, w.Code)
	suite.NotContains(w.Body.String(), `http-equiv="refresh"`)

	w = suite.get("/director", director)
	suite.Equal(http.StatusOK, w.Code)
	suite.NotContains(w.Body.String(), `http-equiv="refresh"`)
	suite.Contains(w.Body.String(), `data-refresh-url="/director/panel"`)
	suite.Contains(w.Body.String(), `class="chat-form"`)
}

func (suite *HandlersTestSuite) TestHistoryPanel_RendersOnlyHistory() {
	cookie := suite.loginCookie("Ivan", "Petrov", "EMP001")

	w := suite.get("/history/panel", cookie)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("no-store", w.Header().Get("Cache-Control"))
	body := w.Body.String()
	suite.Contains(body, `id="totalAmount"`)
	suite.Contains(body, `id="expensesTableBody"`)
	suite.Contains(body, "Lidl")
	suite.NotContains(body, `id="expenseForm"`)
	suite.NotContains(body, "<html")
}

func (suite *HandlersTestSuite) TestHistoryPanel_LeavesFlashesForThePage() {
	cookie := suite.loginCookie("Ivan", "Petrov", "EMP001")
	body, contentType := manualForm(suite.T(), map[string]string{
		"merchant": "Kaufland",
		"date":     "2024-03-10",
		"amount":   "15,20",
		"category": "food",
	})
	req := httptest.NewRequest(http.MethodPost, "/expenses", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	suite.Require().Equal(http.StatusSeeOther, suite.serve(req).Code)

	w := suite.get("/history/panel", cookie)
	suite.NotContains(w.Body.String(), domain.MsgSubmitted)

	w = suite.get("/", cookie)
	suite.Contains(w.Body.String(), domain.MsgSubmitted)
}

func (suite *HandlersTestSuite) TestDirectorPanel() {
	w := suite.get("/director/panel", suite.loginCookie("Ivan", "Petrov", "EMP001"))
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.get("/director/panel", suite.loginCookie("Maria", "Georgieva", "FIN001"))

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "/director/expenses/e-2/approve")
	suite.NotContains(w.Body.String(), "chat-form")
	suite.NotContains(w.Body.String(), "<html")
}

func (suite *HandlersTestSuite) TestSubmitPage_SuccessRedirectsWithNotice() {
	cookie := suite.loginCookie("Ivan", "Petrov", "EMP001")
	body, contentType := manualForm(suite.T(), map[string]string{
		"merchant":    "Kaufland",
		"date":        "2024-03-10",
		"amount":      "15,20",
		"category":    "food",
		"description": "Обяд",
	})
	req := httptest.NewRequest(http.MethodPost, "/expenses", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)

	w := suite.serve(req)

	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal(int32(1), suite.workflow.submitHits.Load())
	suite.Equal("15.2", suite.workflow.submitted("amount"))
	suite.Equal("BGN", suite.workflow.submitted("currency"))

	w = suite.get("/", cookie)
	suite.Contains(w.Body.String(), domain.MsgSubmitted)
}

// --- JSON API ---

func (suite *HandlersTestSuite) TestAPIHistory_Unauthorized() {
	w := suite.apiRequest(http.MethodGet, "/api/v1/history", "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestAPILogin_UnknownIdentity() {
	body, _ := json.Marshal(dto.LoginRequest{FirstName: "Ivan", LastName: "Petrov", EmployeeID: "EMP404"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := suite.serve(req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.MsgIdentityNotFound, resp.Error)
}

func (suite *HandlersTestSuite) TestAPIHistory_ReturnsSnapshotNewestFirst() {
	token := suite.loginToken("Ivan", "Petrov", "EMP001")

	w := suite.apiRequest(http.MethodGet, "/api/v1/history", token, nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.HistoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Expenses, 2)
	suite.Equal("e-2", resp.Expenses[0].ExpenseID)
	suite.Equal("e-1", resp.Expenses[1].ExpenseID)
	suite.Equal("Чака одобрение", resp.Expenses[0].StatusLabel)
	suite.Equal("92.5", resp.Summary.Totals.Total.String())
	suite.Equal("80", resp.Summary.Totals.Pending.String())
}

func (suite *HandlersTestSuite) TestAPIDirector_ForbiddenForEmployee() {
	token := suite.loginToken("Ivan", "Petrov", "EMP001")

	w := suite.apiRequest(http.MethodGet, "/api/v1/director/stats", token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlersTestSuite) TestAPIDirector_Stats() {
	token := suite.loginToken("Maria", "Georgieva", "FIN001")

	w := suite.apiRequest(http.MethodGet, "/api/v1/director/stats", token, nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var stats domain.DirectorStats
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &stats))
	suite.Equal(3, stats.TotalCount)
	suite.Equal(1, stats.ApprovedCount)
	suite.Equal(1, stats.PendingCount)
	suite.Equal(1, stats.RejectedCount)
	suite.Equal("97.5", stats.TotalAmount.String())
}

func (suite *HandlersTestSuite) TestAPIDecision_ApproveDismissesPending() {
	token := suite.loginToken("Maria", "Georgieva", "FIN001")

	w := suite.apiRequest(http.MethodPost, "/api/v1/director/decisions", token, dto.DecisionRequest{
		Action:    "approve",
		ExpenseID: "e-2",
	})

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.DecisionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal(domain.MsgDecisionApproved, resp.Message)
	suite.Equal(int32(1), suite.workflow.decisionHits.Load())

	// The store still reports e-2 pending; the session keeps it hidden.
	w = suite.apiRequest(http.MethodGet, "/api/v1/director/pending", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var pending dto.PendingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &pending))
	suite.Empty(pending.Expenses)
}

func (suite *HandlersTestSuite) TestAPIDecision_RejectWithoutReasonIsCancelled() {
	token := suite.loginToken("Maria", "Georgieva", "FIN001")

	w := suite.apiRequest(http.MethodPost, "/api/v1/director/decisions", token, dto.DecisionRequest{
		Action:    "reject",
		ExpenseID: "e-2",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.MsgDecisionCancelled, resp.Error)
	suite.Equal(int32(0), suite.workflow.decisionHits.Load())
}

func (suite *HandlersTestSuite) TestAPIDecision_UnknownActionIsRejectedByBinding() {
	token := suite.loginToken("Maria", "Georgieva", "FIN001")

	w := suite.apiRequest(http.MethodPost, "/api/v1/director/decisions", token, map[string]string{
		"action":    "escalate",
		"expenseId": "e-2",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(int32(0), suite.workflow.decisionHits.Load())
}

func (suite *HandlersTestSuite) TestAPIChat_ReturnsReplyAndTranscript() {
	token := suite.loginToken("Maria", "Georgieva", "FIN001")

	w := suite.apiRequest(http.MethodPost, "/api/v1/director/chat", token, dto.ChatRequest{Message: "Колко чакат?"})

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ChatResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Общо 1 разход чака одобрение.", resp.Reply.Text)
	suite.Equal(domain.ChatRoleAssistant, resp.Reply.Role)
	suite.Len(resp.Transcript, 2)
}

func (suite *HandlersTestSuite) TestAPIChat_EmptyMessage() {
	token := suite.loginToken("Maria", "Georgieva", "FIN001")

	w := suite.apiRequest(http.MethodPost, "/api/v1/director/chat", token, dto.ChatRequest{Message: "   "})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(int32(0), suite.workflow.chatHits.Load())
}

func (suite *HandlersTestSuite) TestAPISubmit_InvalidAmountNeverReachesWorkflow() {
	token := suite.loginToken("Ivan", "Petrov", "EMP001")
	body, contentType := manualForm(suite.T(), map[string]string{
		"merchant":    "Lidl",
		"date":        "2024-03-10",
		"amount":      "0",
		"category":    "food",
		"description": "Обяд",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := suite.serve(req)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.MsgInvalidAmount, resp.Error)
	suite.Equal(int32(0), suite.workflow.submitHits.Load())
}

func (suite *HandlersTestSuite) TestAPISubmit_WorkflowFailureIsUnprocessable() {
	suite.workflow.submitReply.Store(`[{"json":{"error":true,"message":"Бележката не е четима","suggestions":["Снимайте отново"]}}]`)
	token := suite.loginToken("Ivan", "Petrov", "EMP001")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	suite.Require().NoError(mw.WriteField("inputMode", "receipt"))
	suite.Require().NoError(mw.WriteField("comment", "Такси до летището"))
	suite.Require().NoError(mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := suite.serve(req)

	suite.Require().Equal(http.StatusUnprocessableEntity, w.Code, w.Body.String())
	var resp dto.SubmissionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Outcome.Accepted)
	suite.Equal("Бележката не е четима", resp.Outcome.Message)
	suite.Equal([]string{"Снимайте отново"}, resp.Outcome.Suggestions)
	suite.Equal("EMP001", suite.workflow.submitted("employeeId"))
	suite.Equal("receipt", suite.workflow.submitted("inputMode"))
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func TestTemplatesParse(t *testing.T) {
	tmpl, err := handlers.LoadTemplates()
	require.NoError(t, err)
	for _, name := range []string{"login.html", "dashboard.html", "details.html", "director.html", "error.html", "history-panel", "director-panel"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}
