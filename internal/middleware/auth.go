package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/expense_portal/internal/core/domain"
	portssvc "github.com/SscSPs/expense_portal/internal/core/ports/services"
	"github.com/SscSPs/expense_portal/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionAuthConfig tells LoadSession where the session token lives.
type SessionAuthConfig struct {
	Secret     string
	CookieName string
}

// LoadSession resolves the session token from the session cookie, or from an
// "Authorization: Bearer" header for API clients, and attaches the live
// session to the request. It never aborts; RequireSession does that.
func LoadSession(cfg SessionAuthConfig, sessions portssvc.SessionSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString := sessionToken(c, cfg.CookieName)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := utils.ParseSessionToken(tokenString, cfg.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				logger.Info("Session token has expired")
			} else {
				logger.Warn("Invalid session token", slog.String("error", err.Error()))
			}
			c.Next()
			return
		}

		if claims.Subject == "" {
			logger.Error("Session ID (subject) missing from valid token")
			c.Next()
			return
		}

		session, err := sessions.GetSession(claims.Subject)
		if err != nil {
			// Server restarted or the session was reaped; the cookie is stale.
			logger.Info("Session not found for token", slog.String("session_id", claims.Subject))
			c.Next()
			return
		}

		withSession(c, session)
		enriched := logger.With(slog.String("user_id", session.User.UserID))
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), enriched))

		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

// RequireSession aborts requests without a session. Browser requests are
// redirected to the login page, API requests get a 401.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetSessionFromContext(c); ok {
			c.Next()
			return
		}
		GetLoggerFromCtx(c.Request.Context()).Warn("Request without session")
		if isAPIRequest(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.MsgLoginFirst})
			return
		}
		c.Redirect(http.StatusSeeOther, "/?notice=login")
		c.Abort()
	}
}

// RequireDirector aborts requests whose session lacks the director view
// with a 403. Pages render the "error.html" template.
func RequireDirector() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := GetSessionFromContext(c)
		if ok && s.IsDirector {
			c.Next()
			return
		}
		GetLoggerFromCtx(c.Request.Context()).Warn("Director route denied")
		if isAPIRequest(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.MsgForbidden})
			return
		}
		if !ok {
			c.Redirect(http.StatusSeeOther, "/?notice=login")
			c.Abort()
			return
		}
		c.HTML(http.StatusForbidden, "error.html", gin.H{
			"Title":          "403",
			"Error":          domain.MsgForbidden,
			"LoggedOutLabel": domain.MsgLoggedOut,
		})
		c.Abort()
	}
}

func isAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}
