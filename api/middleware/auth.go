package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// BearerExtractionMiddleware pulls the opaque bearer value out of the
// Authorization header and stashes it for the custom context. The value is
// passed through unmodified; resolving it to a user happens at mutation time.
func BearerExtractionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if after, found := strings.CutPrefix(header, "Bearer "); found {
			c.Set("BearerToken", strings.TrimSpace(after))
		}
		c.Next()
	}
}
