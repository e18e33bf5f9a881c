package handlers

import (
	"errors"
	"fmt"
	"log/slog"
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
)

// AuthHandler handles login and logout for both the pages and the API.
type AuthHandler struct {
	sessions      portssvc.SessionSvcFacade
	posthog       *utils.PosthogClientWrapper
	secret        string
	issuer        string
	cookieName    string
	expiry        time.Duration
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions portssvc.SessionSvcFacade, cfg *config.Config, posthog *utils.PosthogClientWrapper) *AuthHandler {
	return &AuthHandler{
		sessions:      sessions,
		posthog:       posthog,
		secret:        cfg.SessionSecret,
		issuer:        cfg.JWTIssuer,
		cookieName:    cfg.SessionCookieName,
		expiry:        cfg.SessionExpiryDuration,
		secureCookies: cfg.IsProduction,
	}
}

func registerAuthRoutes(r *gin.Engine, api *gin.RouterGroup, h *AuthHandler, loginLimit routeLimit) {
	r.POST("/login", loginLimit.Page, h.LoginPage)
	r.POST("/logout", h.LogoutPage)

	auth := api.Group("/auth")
	{
		auth.POST("/login", loginLimit.API, h.Login)
		auth.POST("/logout", middleware.RequireSession(), h.Logout)
	}
}

// login starts a session and signs its token.
func (h *AuthHandler) login(c *gin.Context, req dto.LoginRequest) (*domain.Session, string, error) {
	session, err := h.sessions.Login(c.Request.Context(), req.Identity())
	if err != nil {
		return nil, "", err
	}
	token, err := utils.GenerateSessionToken(session.ID, h.secret, h.expiry, h.issuer)
	if err != nil {
		h.sessions.Logout(c.Request.Context(), session.ID)
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	h.posthog.Enqueue(session.User.UserID, "login", map[string]any{"director": session.IsDirector})
	return session, token, nil
}

func loginMessage(err error) string {
	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, apperrors.ErrNotFound):
		return domain.MsgIdentityNotFound
	default:
		return domain.MsgLoginFailed
	}
}

// LoginPage handles the login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	var req dto.LoginRequest
	// Missing fields are reported by the identity check below.
	_ = c.ShouldBind(&req)

	session, token, err := h.login(c, req)
	if err != nil {
		logger := middleware.GetLoggerFromContext(c)
		logger.Info("Login failed", slog.String("employee_id", req.EmployeeID), slog.String("error", err.Error()))

		data := newPageData("Вход", nil)
		data.Login = req
		data.Error = loginMessage(err)
		status := http.StatusUnauthorized
		if errors.Is(err, apperrors.ErrValidation) {
			status = http.StatusBadRequest
		}
		c.HTML(status, "login.html", data)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, int(h.expiry.Seconds()), "/", "", h.secureCookies, true)
	session.AddFlash(domain.OutcomeSuccess, fmt.Sprintf(domain.MsgWelcomeFormat, session.User.DisplayName()))

	target := "/"
	if session.IsDirector {
		target = "/director"
	}
	c.Redirect(http.StatusSeeOther, target)
}

// LogoutPage ends the session and clears the cookie.
func (h *AuthHandler) LogoutPage(c *gin.Context) {
	if session, ok := middleware.GetSessionFromContext(c); ok {
		h.sessions.Logout(c.Request.Context(), session.ID)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// Login godoc
// @Summary Start a session
// @Description Verifies the (first name, last name, employee ID) triple and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Identity"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: domain.MsgFillAllFields})
		return
	}

	session, token, err := h.login(c, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: domain.MsgIdentityNotFound})
			return
		}
		apiError(c, err, domain.MsgLoginFailed)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.ToUserResponse(session)})
}

// Logout godoc
// @Summary End the session
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context(), mustSession(c).ID)
	c.Status(http.StatusNoContent)
}
