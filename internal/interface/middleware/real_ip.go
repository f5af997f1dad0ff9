package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP resolves the client address behind a reverse proxy and stores it in
// the context for rate limiting and logging.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.GetHeader("X-Forwarded-For")
		if ip != "" {
			// First hop in the chain is the original client.
			if i := strings.IndexByte(ip, ','); i >= 0 {
				ip = ip[:i]
			}
			ip = strings.TrimSpace(ip)
		}
		if ip == "" {
			ip = c.GetHeader("X-Real-IP")
		}
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set("client_ip", ip)
		c.Next()
	}
}

// ClientIP returns the address resolved by RealIP.
func ClientIP(c *gin.Context) string {
	if ip := c.GetString("client_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}
