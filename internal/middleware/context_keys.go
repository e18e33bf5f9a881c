package middleware

import (
	"context"

	"github.com/SscSPs/expense_portal/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// sessionKey is the key used to store the caller's *domain.Session.
const sessionKey = contextKey("session")

// GetUserIDFromContext returns the ID of the session's user, if any.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID := c.GetString(string(userIDKey)); userID != "" {
		return userID, true
	}
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetSessionFromContext returns the session attached by LoadSession.
func GetSessionFromContext(c *gin.Context) (*domain.Session, bool) {
	val, exists := c.Get(string(sessionKey))
	if !exists {
		return nil, false
	}
	s, ok := val.(*domain.Session)
	return s, ok && s != nil
}

func withSession(c *gin.Context, s *domain.Session) {
	c.Set(string(sessionKey), s)
	c.Set(string(userIDKey), s.User.UserID)
	ctx := context.WithValue(c.Request.Context(), userIDKey, s.User.UserID)
	c.Request = c.Request.WithContext(ctx)
}
