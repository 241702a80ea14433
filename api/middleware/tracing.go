package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/photostack/photostack/internal/tracing"
)

func TracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(
			c.Request.Context(),
			c.Request.Method+" "+c.FullPath(),
			c.Request.Header,
		)
		defer span.Finish()

		tracing.TagComponentRest(span)
		tracing.SetDefaultServiceSpanTags(ctx, span)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
