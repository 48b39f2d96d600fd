package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsMethods = "GET, POST, OPTIONS"
	corsHeaders = "Content-Type, X-Request-ID"
)

// corsMiddleware answers preflights and echoes an allowed origin. An empty
// list or a "*" entry allows any origin.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	wildcard := len(allowed) == 0
	origins := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		origin = strings.ToLower(strings.TrimSpace(origin))
		if origin == "*" {
			wildcard = true
		}
		origins[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		headers := c.Writer.Header()
		origin := c.GetHeader("Origin")
		switch {
		case wildcard:
			headers.Set("Access-Control-Allow-Origin", "*")
		case origin != "":
			if _, ok := origins[strings.ToLower(origin)]; ok {
				headers.Set("Access-Control-Allow-Origin", origin)
			}
			headers.Add("Vary", "Origin")
		}
		headers.Set("Access-Control-Allow-Methods", corsMethods)
		headers.Set("Access-Control-Allow-Headers", corsHeaders)
		headers.Set("Access-Control-Expose-Headers", requestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
