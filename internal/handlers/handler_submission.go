package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/SscSPs/expense_portal/internal/apperrors"
	"github.com/SscSPs/expense_portal/internal/core/domain"
	portssvc "github.com/SscSPs/expense_portal/internal/core/ports/services"
	"github.com/SscSPs/expense_portal/internal/dto"
	"github.com/SscSPs/expense_portal/internal/middleware"
	"github.com/SscSPs/expense_portal/internal/platform/config"
	"github.com/SscSPs/expense_portal/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// SubmissionHandler accepts expense submissions from the form and the API.
type SubmissionHandler struct {
	submissions     portssvc.SubmissionSvcFacade
	sessions        portssvc.SessionSvcFacade
	posthog         *utils.PosthogClientWrapper
	reloadDelay     time.Duration
	defaultCurrency string
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(
	submissions portssvc.SubmissionSvcFacade,
	sessions portssvc.SessionSvcFacade,
	cfg *config.Config,
	posthog *utils.PosthogClientWrapper,
) *SubmissionHandler {
	return &SubmissionHandler{
		submissions:     submissions,
		sessions:        sessions,
		posthog:         posthog,
		reloadDelay:     cfg.PostSubmitReloadDelay,
		defaultCurrency: cfg.DefaultCurrency,
	}
}

func registerSubmissionRoutes(r *gin.Engine, api *gin.RouterGroup, h *SubmissionHandler, submitLimit routeLimit) {
	r.POST("/expenses", middleware.RequireSession(), submitLimit.Page, h.SubmitPage)
	api.POST("/expenses", middleware.RequireSession(), submitLimit.API, h.Submit)
}

// readDraft builds a draft from a multipart form. A file larger than the
// upload limit is read only up to one byte past it so validation can
// reject it without buffering the rest.
func readDraft(c *gin.Context) (domain.SubmissionDraft, error) {
	draft := domain.SubmissionDraft{
		Mode:    domain.ParseInputMode(c.PostForm("inputMode")),
		Comment: c.PostForm("comment"),
	}
	if err := c.ShouldBindWith(&draft.Manual, binding.FormMultipart); err != nil {
		// Unbindable fields stay empty and are reported by validation.
		middleware.GetLoggerFromContext(c).Debug("Manual fields not bound", slog.String("error", err.Error()))
	}

	header, err := c.FormFile("receipt")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return draft, nil
		}
		return draft, fmt.Errorf("failed to read upload: %w", err)
	}
	file, err := readReceipt(header)
	if err != nil {
		return draft, err
	}
	draft.File = file
	return draft, nil
}

func readReceipt(header *multipart.FileHeader) (*domain.ReceiptFile, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, config.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return &domain.ReceiptFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// submit runs the submission and, when the workflow took it, schedules the
// delayed history reload.
func (h *SubmissionHandler) submit(c *gin.Context, session *domain.Session, draft domain.SubmissionDraft) (*domain.SubmissionOutcome, error) {
	outcome, err := h.submissions.Submit(c.Request.Context(), session.User, draft)
	if err != nil {
		return nil, err
	}
	if outcome.Accepted {
		h.sessions.ScheduleRefresh(session, h.reloadDelay)
	}
	middleware.PosthogEvent(c, h.posthog, "expense_submitted", map[string]any{
		"input_mode": string(draft.Mode),
		"has_file":   draft.HasFile(),
		"kind":       string(outcome.Kind),
		"accepted":   outcome.Accepted,
	})
	return outcome, nil
}

// SubmitPage handles the expense form. An accepted submission redirects back
// to the dashboard with a notice; anything else re-renders the form with the
// draft so it can be corrected.
func (h *SubmissionHandler) SubmitPage(c *gin.Context) {
	session := mustSession(c)

	draft, err := readDraft(c)
	if err != nil {
		middleware.GetLoggerFromContext(c).Warn("Unreadable submission", slog.String("error", err.Error()))
		h.renderFailure(c, session, draft, http.StatusBadRequest, &domain.SubmissionOutcome{
			Kind:    domain.OutcomeError,
			Message: domain.MsgSubmitFailed,
		})
		return
	}

	outcome, err := h.submit(c, session, draft)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, apperrors.ErrDemoMode):
			status = http.StatusServiceUnavailable
		}
		h.renderFailure(c, session, draft, status, &domain.SubmissionOutcome{
			Kind:    domain.OutcomeError,
			Message: userMessage(err, domain.MsgSubmitFailed),
		})
		return
	}

	if outcome.Failed() {
		h.renderFailure(c, session, draft, http.StatusUnprocessableEntity, outcome)
		return
	}

	session.AddFlash(outcome.Kind, outcome.Message)
	if outcome.Reason != "" {
		session.AddFlash(outcome.Kind, outcome.Reason)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *SubmissionHandler) renderFailure(c *gin.Context, session *domain.Session, draft domain.SubmissionDraft, status int, outcome *domain.SubmissionOutcome) {
	data := newPageData("Моите разходи", session)
	data.withDashboard(session, h.defaultCurrency)
	draft.File = nil
	data.Draft = draft
	data.Outcome = outcome
	c.Header("Cache-Control", "no-store")
	c.HTML(status, "dashboard.html", data)
}

// Submit godoc
// @Summary Submit an expense
// @Description Sends a receipt photo and/or comment, or a manually entered expense, to the processing workflow.
// @Tags expenses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param inputMode formData string false "receipt or manual"
// @Param receipt formData file false "Receipt image"
// @Param comment formData string false "Comment (receipt mode)"
// @Param merchant formData string false "Merchant (manual mode)"
// @Param receiptNumber formData string false "Receipt number"
// @Param date formData string false "Date, YYYY-MM-DD (manual mode)"
// @Param amount formData string false "Amount (manual mode)"
// @Param currency formData string false "Currency code"
// @Param category formData string false "Category code (manual mode)"
// @Param description formData string false "Description (manual mode)"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.SubmissionResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /expenses [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	session := mustSession(c)

	draft, err := readDraft(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: domain.MsgSubmitFailed})
		return
	}

	outcome, err := h.submit(c, session, draft)
	if err != nil {
		apiError(c, err, domain.MsgSubmitFailed)
		return
	}

	status := http.StatusOK
	if outcome.Failed() {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, dto.SubmissionResponse{Outcome: *outcome})
}
