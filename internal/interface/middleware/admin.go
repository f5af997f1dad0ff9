package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navmark/navmark/pkg/response"
)

// AdminOnly gates administrative routes. An account passes if its role is
// "admin" or its username is on the configured allowlist. Runs after Auth.
func AdminOnly(allowlist map[string]struct{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			response.Abort(c, http.StatusUnauthorized, "Access token required")
			return
		}
		if u.Role != "admin" {
			if _, ok := allowlist[u.Username]; !ok {
				response.Abort(c, http.StatusForbidden, "Admin access required")
				return
			}
		}
		c.Next()
	}
}
