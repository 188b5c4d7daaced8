package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "famfinance/internal/errors"
)

const (
	// UserIDKey is the gin context key holding the resolved owner id.
	UserIDKey = "userID"
	// UserIDHeader carries the owner id when the query string does not.
	UserIDHeader = "X-Usuario-ID"
	userIDQuery  = "usuario_id"
)

// UserContext resolves the owner of the request from the X-Usuario-ID header
// or the usuario_id query parameter. A missing owner is left for the handler
// to reject; a malformed one aborts with 400.
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if raw == "" {
			raw = strings.TrimSpace(c.Query(userIDQuery))
		}
		if raw == "" {
			c.Next()
			return
		}

		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			_ = c.Error(apperrors.WithMessage(apperrors.ErrInvalidInput, "usuario_id inválido"))
			c.Abort()
			return
		}

		c.Set(UserIDKey, uint(id))
		c.Next()
	}
}
