package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_portal/internal/apperrors"
	"github.com/SscSPs/expense_portal/internal/core/domain"
	portssvc "github.com/SscSPs/expense_portal/internal/core/ports/services"
	"github.com/SscSPs/expense_portal/internal/dto"
	"github.com/SscSPs/expense_portal/internal/middleware"
	"github.com/SscSPs/expense_portal/internal/utils"
	"github.com/gin-gonic/gin"
)

// DirectorHandler serves the director view: statistics, pending decisions
// and the assistant chat.
type DirectorHandler struct {
	director portssvc.DirectorSvcFacade
	chat     portssvc.ChatSvcFacade
	posthog  *utils.PosthogClientWrapper
}

// NewDirectorHandler creates a new DirectorHandler.
func NewDirectorHandler(director portssvc.DirectorSvcFacade, chat portssvc.ChatSvcFacade, posthog *utils.PosthogClientWrapper) *DirectorHandler {
	return &DirectorHandler{director: director, chat: chat, posthog: posthog}
}

func registerDirectorRoutes(r *gin.Engine, api *gin.RouterGroup, h *DirectorHandler) {
	pages := r.Group("/director", middleware.RequireSession(), middleware.RequireDirector())
	{
		pages.GET("", h.DirectorPage)
		pages.GET("/panel", h.DirectorPanel)
		pages.POST("/expenses/:expenseID/approve", h.ApprovePage)
		pages.POST("/expenses/:expenseID/reject", h.RejectPage)
		pages.POST("/chat", h.ChatPage)
	}

	director := api.Group("/director", middleware.RequireSession(), middleware.RequireDirector())
	{
		director.GET("/stats", h.GetStats)
		director.GET("/pending", h.ListPending)
		director.POST("/decisions", h.Decide)
		director.POST("/chat", h.Chat)
	}
}

// DirectorPage renders the director view from the session snapshot.
func (h *DirectorHandler) DirectorPage(c *gin.Context) {
	session := mustSession(c)
	data := newPageData("Директор", session)
	data.withDirector(session)
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "director.html", data)
}

// DirectorPanel renders the statistics and pending list without the chat.
func (h *DirectorHandler) DirectorPanel(c *gin.Context) {
	var data pageData
	data.withDirector(mustSession(c))
	renderPanel(c, "director-panel", data)
}

func (h *DirectorHandler) ApprovePage(c *gin.Context) {
	h.decidePage(c, domain.Decision{Action: domain.ActionApprove, ExpenseID: c.Param("expenseID")})
}

func (h *DirectorHandler) RejectPage(c *gin.Context) {
	h.decidePage(c, domain.Decision{
		Action:    domain.ActionReject,
		ExpenseID: c.Param("expenseID"),
		Reason:    c.PostForm("reason"),
	})
}

func (h *DirectorHandler) decidePage(c *gin.Context, decision domain.Decision) {
	session := mustSession(c)
	result, err := h.decide(c, session, decision)
	switch {
	case err != nil:
		kind := domain.OutcomeError
		if errors.Is(err, apperrors.ErrValidation) {
			kind = domain.OutcomeWarning
		}
		session.AddFlash(kind, userMessage(err, domain.MsgDecisionFailed))
	case result.Success:
		session.AddFlash(domain.OutcomeSuccess, result.Message)
	default:
		session.AddFlash(domain.OutcomeError, result.Message)
	}
	c.Redirect(http.StatusSeeOther, "/director")
}

func (h *DirectorHandler) decide(c *gin.Context, session *domain.Session, decision domain.Decision) (*domain.DecisionResult, error) {
	result, err := h.director.Decide(c.Request.Context(), session, decision)
	if err != nil {
		return nil, err
	}
	middleware.PosthogEvent(c, h.posthog, "expense_decision", map[string]any{
		"action":     string(decision.Action),
		"expense_id": decision.ExpenseID,
		"success":    result.Success,
	})
	return result, nil
}

// ChatPage relays a message and returns to the director view, where the
// transcript shows the reply or the failure notice.
func (h *DirectorHandler) ChatPage(c *gin.Context) {
	session := mustSession(c)
	if _, err := h.chat.Send(c.Request.Context(), session, c.PostForm("message")); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			session.AddFlash(domain.OutcomeWarning, userMessage(err, domain.MsgChatEmpty))
		} else {
			middleware.GetLoggerFromContext(c).Warn("Chat relay failed", slog.String("error", err.Error()))
		}
	} else {
		middleware.PosthogEvent(c, h.posthog, "director_chat", nil)
	}
	c.Redirect(http.StatusSeeOther, "/director#chat")
}

// GetStats godoc
// @Summary Global expense statistics
// @Tags director
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.DirectorStats
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /director/stats [get]
func (h *DirectorHandler) GetStats(c *gin.Context) {
	stats, err := h.director.GetStats(c.Request.Context())
	if err != nil {
		apiError(c, err, domain.MsgLoadFailed)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListPending godoc
// @Summary Expenses awaiting a decision
// @Description Reloads the pending list; items decided in this session are left out.
// @Tags director
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PendingResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /director/pending [get]
func (h *DirectorHandler) ListPending(c *gin.Context) {
	session := mustSession(c)
	if err := h.director.ReloadSession(c.Request.Context(), session); err != nil {
		apiError(c, err, domain.MsgLoadFailed)
		return
	}
	_, pending := session.DirectorView()
	c.JSON(http.StatusOK, dto.PendingResponse{Expenses: dto.ToExpenseResponses(pending)})
}

// Decide godoc
// @Summary Approve or reject an expense
// @Description Posts the decision to the approval workflow. A reject needs a reason.
// @Tags director
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param decision body dto.DecisionRequest true "Decision"
// @Success 200 {object} dto.DecisionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /director/decisions [post]
func (h *DirectorHandler) Decide(c *gin.Context) {
	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: domain.MsgDecisionFailed})
		return
	}

	result, err := h.decide(c, mustSession(c), req.Decision())
	if err != nil {
		apiError(c, err, domain.MsgDecisionFailed)
		return
	}
	c.JSON(http.StatusOK, dto.DecisionResponse{Success: result.Success, Message: result.Message})
}

// Chat godoc
// @Summary Ask the assistant
// @Tags director
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body dto.ChatRequest true "Message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /director/chat [post]
func (h *DirectorHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: domain.MsgChatEmpty})
		return
	}

	session := mustSession(c)
	reply, err := h.chat.Send(c.Request.Context(), session, req.Message)
	if err != nil {
		apiError(c, err, domain.MsgChatFailed)
		return
	}
	middleware.PosthogEvent(c, h.posthog, "director_chat", nil)
	c.JSON(http.StatusOK, dto.ChatResponse{Reply: *reply, Transcript: session.Transcript()})
}
