package middleware

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// OperatorKey is the gin context key holding the logged-in admin's name;
// assignment provenance (assignedBy) is stamped from it.
const OperatorKey = "operator"

var (
	tokenMu sync.RWMutex
	tokens  = map[string]string{} // token -> operator display name
)

// RegisterToken records a freshly-issued login token. Tokens live for the
// process lifetime; a restart logs everyone out.
func RegisterToken(token, operator string) {
	tokenMu.Lock()
	defer tokenMu.Unlock()
	tokens[token] = operator
}

func operatorForToken(token string) (string, bool) {
	tokenMu.RLock()
	defer tokenMu.RUnlock()
	name, ok := tokens[token]
	return name, ok
}

// RequireAuth gates admin routes on a bearer token issued by /api/auth/login.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		operator, ok := operatorForToken(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(OperatorKey, operator)
		c.Next()
	}
}
