// Package middleware provides HTTP middleware for the Gin router.
//
// Go Learning Note — Middleware Pattern (Gin):
// A Gin middleware is any gin.HandlerFunc. Each one runs, then either calls
// c.Next() to hand control down the chain or c.Abort() to stop it. Writing an
// error response without c.Abort() would still run the route handler.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Keys for the values MockAuth stores on the gin.Context.
const (
	UserIDKey   = "user_id"
	UserTypeKey = "user_type"

	UserTypeAgent  = "agent"
	UserTypeDriver = "driver"
)

// MockAuth reads "Authorization: Bearer <user-id>". Ids starting with
// "agent-" belong to rental desk staff who manage the fleet; ids starting
// with "driver-" belong to customers who rent cars. Anything else is
// rejected. A production deployment would verify a signed token here instead.
func MockAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		userID := parts[1]
		var userType string
		switch {
		case strings.HasPrefix(userID, "agent-"):
			userType = UserTypeAgent
		case strings.HasPrefix(userID, "driver-"):
			userType = UserTypeDriver
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user id format"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UserTypeKey, userType)
		c.Next()
	}
}

// RequireAgent only lets rental agents through. Use after MockAuth.
func RequireAgent() gin.HandlerFunc {
	return requireType(UserTypeAgent, "agent access required")
}

// RequireDriver only lets drivers through. Use after MockAuth.
func RequireDriver() gin.HandlerFunc {
	return requireType(UserTypeDriver, "driver access required")
}

func requireType(want, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userType, exists := c.Get(UserTypeKey); !exists || userType != want {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msg})
			return
		}
		c.Next()
	}
}

// GetUserID returns the id MockAuth stored, or "" on routes without auth.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetUserType returns "agent", "driver", or "" on routes without auth.
func GetUserType(c *gin.Context) string {
	return c.GetString(UserTypeKey)
}
