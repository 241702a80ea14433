package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vektah/gqlparser/v2/gqlerror"

	api_errors "github.com/photostack/photostack/api/errors"
	"github.com/photostack/photostack/graph"
)

// GraphQL handles POST /graphql. Resolution errors ride in the response body;
// only a malformed envelope produces a non-200 status.
func GraphQL(engine *graph.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req graph.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, graph.Response{
				Errors: gqlerror.List{
					api_errors.NewError("malformed request body", api_errors.CodeValidation, nil),
				},
			})
			return
		}

		response := engine.Execute(c.Request.Context(), req)
		c.JSON(http.StatusOK, response)
	}
}
