package middleware

import (
	"net/http"
	"strings"

	"fleetops/internal/domain"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// TokenParser verifies a bearer token and returns the caller.
type TokenParser interface {
	ParseToken(raw string) (domain.RequestContext, error)
}

// Auth rejects requests without a valid bearer token and stores the caller
// for handlers.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, raw, ok := strings.Cut(strings.TrimSpace(header), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		caller, err := parser.ParseToken(strings.TrimSpace(raw))
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

// Caller returns the authenticated caller. ok is false outside Auth.
func Caller(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	rc, ok := v.(domain.RequestContext)
	return rc, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       "unauthorized",
		"request_id": GetRequestID(c),
	})
}
