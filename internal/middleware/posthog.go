package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/expense_portal/internal/core/domain"
	"github.com/SscSPs/expense_portal/internal/utils"
	"github.com/gin-gonic/gin"
)

var untrackedPaths = map[string]bool{
	"/health":        true,
	"/sw.js":         true,
	"/manifest.json": true,
}

var untrackedPrefixes = []string{"/static/", "/vendor/", "/swagger/"}

func untracked(path string) bool {
	if untrackedPaths[path] {
		return true
	}
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// PosthogMiddleware reports every successful request made within a session.
// The event is named after the route template, so
// "/director/expenses/:expenseID/approve" becomes
// "director_expenses_:expenseID_approve".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || untracked(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.Next()

		// 3xx counts as success: form posts answer with a redirect.
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		session, ok := GetSessionFromContext(c)
		if !ok {
			return
		}

		route := c.FullPath()
		eventName := strings.ReplaceAll(strings.Trim(route, "/"), "/", "_")
		if eventName == "" {
			eventName = "dashboard"
		}

		props := sessionProperties(c, session)
		props["route"] = route
		props["status_code"] = c.Writer.Status()
		if expenseID := c.Param("expenseID"); expenseID != "" {
			props["expense_id"] = expenseID
		}
		posthogClient.Enqueue(session.User.UserID, eventName, props)
	}
}

// PosthogEvent sends a named business event, e.g. "expense_submitted",
// for the current session.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	session, ok := GetSessionFromContext(c)
	if !ok {
		return
	}

	props := sessionProperties(c, session)
	for k, v := range properties {
		props[k] = v
	}
	posthogClient.Enqueue(session.User.UserID, eventName, props)
}

func sessionProperties(c *gin.Context, session *domain.Session) map[string]any {
	role := "employee"
	if session.IsDirector {
		role = "director"
	}
	return map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"role":    role,
		"api":     isAPIRequest(c),
	}
}
