package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userId"
	usernameKey = "username"
)

// Identity reads the caller's user ID from the X-User-Id header and stores it
// in context. Auth endpoints are left open; everything else under the
// protected group requires an identity. No session token is issued by this
// service, so the header carries the identifier returned by signup/login.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		raw := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "unauthorized", "message": "missing identity"},
			})
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "unauthorized", "message": "invalid identity"},
			})
			return
		}

		c.Set(userIDKey, id)
		if name := strings.TrimSpace(c.GetHeader("X-Username")); name != "" {
			c.Set(usernameKey, name)
		}
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the identity middleware.
func UserIDFromContext(c *gin.Context) int64 {
	if c == nil {
		return 0
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(int64); ok {
		return id
	}
	return 0
}

// UsernameFromContext fetches the username set by the identity middleware.
func UsernameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(usernameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}
