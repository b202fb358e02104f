package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerr "github.com/roozbehm/ledger-service/internal/domain/error"
	coreport "github.com/roozbehm/ledger-service/internal/domain/port/core"
	"github.com/roozbehm/ledger-service/internal/domain/port/security"
	"github.com/roozbehm/ledger-service/internal/infrastructure/adapter/api/dto"
)

// CallerIDKey is the gin context key under which the authenticated caller's
// public user identifier is stored.
const CallerIDKey = "callerId"

// RequireAuth verifies the Bearer token on protected routes and stores the
// caller's identity in the request context.
func RequireAuth(tokens security.TokenService, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		const prefix = "Bearer "
		if header == "" || !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrMissingToken),
				Message: domainerr.ErrMissingToken.Error(),
			})
			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(header, prefix))
		if err != nil {
			logger.Warn("Token verification failed", map[string]any{
				"path": c.Request.URL.Path,
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidToken),
				Message: domainerr.ErrInvalidToken.Error(),
			})
			return
		}

		c.Set(CallerIDKey, userID)
		c.Next()
	}
}

// CallerID returns the authenticated caller's identity from the request context
func CallerID(c *gin.Context) string {
	return c.GetString(CallerIDKey)
}
