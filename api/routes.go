package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/photostack/photostack/api/handlers"
	"github.com/photostack/photostack/api/middleware"
	"github.com/photostack/photostack/graph"
	"github.com/photostack/photostack/internal/tracing"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(ctx context.Context, r *gin.Engine, engine *graph.Engine, appSource string) {
	if engine == nil {
		panic("Engine cannot be nil")
	}

	// Add recovery middlewares
	r.Use(gin.Recovery())                                         // Gin's built-in recovery
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer())) // Our custom Jaeger recovery

	// Health check endpoint (no custom context needed)
	r.GET("/health", handlers.HealthCheck)

	// GraphQL endpoint with the full middleware chain
	gql := r.Group("/graphql")
	gql.Use(middleware.RequestIDMiddleware())
	gql.Use(middleware.BearerExtractionMiddleware())
	gql.Use(middleware.CustomContextMiddleware(appSource))
	gql.Use(middleware.TracingMiddleware())
	{
		gql.POST("", handlers.GraphQL(engine))
	}
}
