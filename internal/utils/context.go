package utils

import (
	"context"

	"github.com/gin-gonic/gin"
)

// CustomContext carries per-request auth data from the transport layer into
// resolution. BearerToken is the opaque credential as presented, unmodified.
type CustomContext struct {
	AppSource   string
	RequestID   string
	BearerToken string
}

var customContextKey = "CUSTOM_CONTEXT"

func WithCustomContext(ctx context.Context, customContext *CustomContext) context.Context {
	return context.WithValue(ctx, customContextKey, customContext)
}

func WithCustomContextFromGinRequest(c *gin.Context, appSource string) context.Context {
	customContext := &CustomContext{
		AppSource:   appSource,
		RequestID:   c.GetString("RequestId"),
		BearerToken: c.GetString("BearerToken"),
	}
	return WithCustomContext(c.Request.Context(), customContext)
}

func GetContext(ctx context.Context) *CustomContext {
	customContext, ok := ctx.Value(customContextKey).(*CustomContext)
	if !ok {
		return new(CustomContext)
	}
	return customContext
}

func GetAppSourceFromContext(ctx context.Context) string {
	return GetContext(ctx).AppSource
}

func GetRequestIDFromContext(ctx context.Context) string {
	return GetContext(ctx).RequestID
}

func GetBearerTokenFromContext(ctx context.Context) string {
	return GetContext(ctx).BearerToken
}
