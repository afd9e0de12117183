package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// getClientIP resolves the caller's address for rate limiting. Gin's ClientIP
// already walks the forwarding headers against the trusted proxy list; the
// fallback strips the port from the raw remote address.
func getClientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
