package middleware

import (
	"context"
	"errors"
	"strings"

	"tenant-portal-svc/internal/models"
	"tenant-portal-svc/internal/service"
	"tenant-portal-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key holding the *models.Session
const SessionKey = "session"

// Authenticator resolves a bearer token to a session
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Session, error)
}

// RequireSession rejects requests without a live session
func RequireSession(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			utils.UnauthorizedResponse(c, "Vui lòng đăng nhập")
			return
		}

		session, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if errors.Is(err, service.ErrUnauthorized) {
			utils.UnauthorizedResponse(c, service.Message(err, "Phiên đăng nhập không hợp lệ hoặc đã hết hạn"))
			return
		}
		if err != nil {
			utils.InternalServerErrorResponse(c, "Không đọc được phiên đăng nhập", err)
			return
		}
		c.Set(SessionKey, session)
		c.Next()
	}
}

// CurrentSession returns the session RequireSession stored
func CurrentSession(c *gin.Context) *models.Session {
	if v, ok := c.Get(SessionKey); ok {
		if s, ok := v.(*models.Session); ok {
			return s
		}
	}
	return nil
}
