package handlers

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/expense_portal/internal/apperrors"
	"github.com/SscSPs/expense_portal/internal/core/domain"
	"github.com/SscSPs/expense_portal/internal/dto"
	"github.com/SscSPs/expense_portal/internal/middleware"
	"github.com/SscSPs/expense_portal/internal/platform/config"
	"github.com/SscSPs/expense_portal/internal/utils"
	"github.com/SscSPs/expense_portal/web"
	"github.com/gin-gonic/gin"
)

// panelRefreshSeconds is how often app.js reloads the history and director
// panels in place. The rest of the page, and any draft in it, is left alone.
const panelRefreshSeconds = 30

// TemplateFuncs are the presentation helpers available to every page.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"currency": utils.FormatCurrency,
		"date":     utils.FormatDate,
		"datePtr":  utils.FormatDatePtr,
		"badge":    utils.StatusBadge,
		"category": utils.CategoryLabel,
		"merchant": utils.MerchantOrUnknown,
		"chat":     utils.ChatMarkup,
	}
}

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	return web.Templates(TemplateFuncs())
}

// pageData is the view model shared by every page; each page reads the
// fields it needs.
type pageData struct {
	Title          string
	User           *dto.UserResponse
	LoggedOutLabel string
	Flashes        []domain.Flash
	RefreshSeconds int
	Error          string

	Login dto.LoginRequest

	Draft           domain.SubmissionDraft
	Outcome         *domain.SubmissionOutcome
	Expenses        []domain.Expense
	Summary         domain.Summary
	Categories      []config.Category
	Accept          string
	DefaultCurrency string

	Expense *domain.Expense
	BackURL string

	Stats      domain.DirectorStats
	Pending    []domain.Expense
	Transcript []domain.ChatMessage
}

func newPageData(title string, session *domain.Session) pageData {
	data := pageData{Title: title, LoggedOutLabel: domain.MsgLoggedOut}
	if session != nil {
		user := dto.ToUserResponse(session)
		data.User = &user
		data.Flashes = session.PopFlashes()
	}
	return data
}

func (d *pageData) withDashboard(session *domain.Session, defaultCurrency string) {
	expenses, summary, _ := session.History()
	d.Expenses = expenses
	d.Summary = summary
	d.Categories = config.Categories()
	d.Accept = strings.Join(config.AllowedFileTypes(), ",")
	d.DefaultCurrency = defaultCurrency
	d.RefreshSeconds = panelRefreshSeconds
}

func (d *pageData) withDirector(session *domain.Session) {
	d.Stats, d.Pending = session.DirectorView()
	d.Transcript = session.Transcript()
	d.RefreshSeconds = panelRefreshSeconds
}

// renderPanel writes one of the fragments app.js swaps into a loaded page.
func renderPanel(c *gin.Context, name string, data pageData) {
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, name, data)
}

func renderError(c *gin.Context, status int, title, message string) {
	session, _ := middleware.GetSessionFromContext(c)
	data := newPageData(title, session)
	data.Error = message
	c.HTML(status, "error.html", data)
}

// userMessage turns a service error into the message shown in the UI.
func userMessage(err error, fallback string) string {
	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, apperrors.ErrDemoMode):
		return domain.MsgDemoWebhook
	default:
		return fallback
	}
}

// apiError writes the JSON error for err, choosing the status by its kind.
func apiError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromContext(c)

	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: verr.Message})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: fallback})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: domain.MsgLoginFirst})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: domain.MsgForbidden})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: fallback})
	case errors.Is(err, apperrors.ErrDemoMode):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: domain.MsgDemoWebhook})
	case errors.Is(err, apperrors.ErrUpstream):
		logger.Warn("Upstream failure", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: fallback})
	default:
		logger.Error("Unhandled error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}

// mustSession returns the session attached by the session middleware. Routes
// using it are always behind RequireSession.
func mustSession(c *gin.Context) *domain.Session {
	session, _ := middleware.GetSessionFromContext(c)
	return session
}
