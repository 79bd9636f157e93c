package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsPolicy serves the chat view, which posts queries and opens the
// bridge socket, so only GET/POST are advertised.
type corsPolicy struct {
	origins map[string]struct{}
}

// allowedOrigin returns the Access-Control-Allow-Origin value for origin,
// or "" when the origin gets no CORS headers.
func (p corsPolicy) allowedOrigin(origin string) string {
	if len(p.origins) == 0 {
		return "*"
	}
	if _, ok := p.origins[origin]; ok && origin != "" {
		return origin
	}
	return ""
}

// CORS allows the listed origins, or every origin when the list is empty.
// Editor webviews use opaque origins such as vscode-webview://<id>.
func CORS(allowlist []string) gin.HandlerFunc {
	p := corsPolicy{origins: make(map[string]struct{}, len(allowlist))}
	for _, origin := range allowlist {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			p.origins[trimmed] = struct{}{}
		}
	}
	return func(c *gin.Context) {
		if allow := p.allowedOrigin(c.GetHeader("Origin")); allow != "" {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", allow)
			if allow != "*" {
				h.Set("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
