package handlers

import (
	"net/http"

	"github.com/SscSPs/expense_portal/internal/core/domain"
	portssvc "github.com/SscSPs/expense_portal/internal/core/ports/services"
	"github.com/SscSPs/expense_portal/internal/dto"
	"github.com/SscSPs/expense_portal/internal/middleware"
	"github.com/gin-gonic/gin"
)

// DashboardHandler renders the login page, the employee dashboard and the
// expense details, and serves the history API.
type DashboardHandler struct {
	sessions        portssvc.SessionSvcFacade
	defaultCurrency string
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(sessions portssvc.SessionSvcFacade, defaultCurrency string) *DashboardHandler {
	return &DashboardHandler{sessions: sessions, defaultCurrency: defaultCurrency}
}

func registerDashboardRoutes(r *gin.Engine, api *gin.RouterGroup, h *DashboardHandler) {
	r.GET("/", h.Home)

	pages := r.Group("/", middleware.RequireSession())
	{
		pages.GET("/history/panel", h.HistoryPanel)
		pages.POST("/history/refresh", h.RefreshHistory)
		pages.GET("/expenses/:expenseID", h.ExpenseDetails)
	}

	authed := api.Group("", middleware.RequireSession())
	{
		authed.GET("/me", h.GetMe)
		authed.GET("/history", h.GetHistory)
		authed.GET("/expenses/:expenseID", h.GetExpense)
	}
}

// Home renders the dashboard for a logged-in user and the login page otherwise.
// The logged-out page is identical for every visitor, so the shell cache may
// store it.
func (h *DashboardHandler) Home(c *gin.Context) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		data := newPageData("Вход", nil)
		if c.Query("notice") == "login" {
			data.Error = domain.MsgLoginFirst
		}
		c.HTML(http.StatusOK, "login.html", data)
		return
	}

	data := newPageData("Моите разходи", session)
	data.withDashboard(session, h.defaultCurrency)
	data.Draft = domain.SubmissionDraft{Mode: domain.ModeReceipt}
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "dashboard.html", data)
}

// HistoryPanel renders the summary and history table on their own. Flashes
// stay queued for the next full page.
func (h *DashboardHandler) HistoryPanel(c *gin.Context) {
	var data pageData
	data.withDashboard(mustSession(c), h.defaultCurrency)
	renderPanel(c, "history-panel", data)
}

// RefreshHistory re-runs the fetch cycle on demand.
func (h *DashboardHandler) RefreshHistory(c *gin.Context) {
	session := mustSession(c)
	if err := h.sessions.Refresh(c.Request.Context(), session); err != nil {
		middleware.GetLoggerFromContext(c).Warn("On-demand refresh failed", "error", err.Error())
		session.AddFlash(domain.OutcomeError, domain.MsgLoadFailed)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// ExpenseDetails shows one expense from the session snapshot.
func (h *DashboardHandler) ExpenseDetails(c *gin.Context) {
	session := mustSession(c)
	expense, ok := session.FindExpense(c.Param("expenseID"))
	if !ok {
		renderError(c, http.StatusNotFound, "Детайли", domain.MsgLoadFailed)
		return
	}

	data := newPageData("Детайли", session)
	data.Expense = &expense
	data.BackURL = "/"
	if session.IsDirector && c.Query("from") == "director" {
		data.BackURL = "/director"
	}
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "details.html", data)
}

// GetMe godoc
// @Summary Current user
// @Tags history
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /me [get]
func (h *DashboardHandler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToUserResponse(mustSession(c)))
}

// GetHistory godoc
// @Summary Expense history
// @Description Returns the session's history snapshot and summary. With refresh=true the snapshot is reloaded first.
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param refresh query bool false "Reload before returning"
// @Success 200 {object} dto.HistoryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /history [get]
func (h *DashboardHandler) GetHistory(c *gin.Context) {
	session := mustSession(c)
	if c.Query("refresh") == "true" {
		if err := h.sessions.Refresh(c.Request.Context(), session); err != nil {
			apiError(c, err, domain.MsgLoadFailed)
			return
		}
	}
	expenses, summary, loadedAt := session.History()
	c.JSON(http.StatusOK, dto.ToHistoryResponse(expenses, summary, loadedAt))
}

// GetExpense godoc
// @Summary Expense details
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /expenses/{expenseID} [get]
func (h *DashboardHandler) GetExpense(c *gin.Context) {
	expense, ok := mustSession(c).FindExpense(c.Param("expenseID"))
	if !ok {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "expense not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}
