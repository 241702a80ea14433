package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photostack/photostack/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runChain(t *testing.T, req *http.Request, handlers ...gin.HandlerFunc) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = req
	for _, handler := range handlers {
		handler(c)
	}
	return c, recorder
}

func TestBearerExtraction(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer tok-ichi")

	c, _ := runChain(t, req, BearerExtractionMiddleware())

	assert.Equal(t, "tok-ichi", c.GetString("BearerToken"))
}

func TestBearerExtractionNoHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)

	c, _ := runChain(t, req, BearerExtractionMiddleware())

	assert.Equal(t, "", c.GetString("BearerToken"))
}

func TestBearerExtractionWrongScheme(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	c, _ := runChain(t, req, BearerExtractionMiddleware())

	assert.Equal(t, "", c.GetString("BearerToken"))
}

func TestRequestIDGenerated(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)

	c, recorder := runChain(t, req, RequestIDMiddleware())

	id := c.GetString("RequestId")
	require.NotEmpty(t, id)
	assert.Equal(t, id, recorder.Header().Get("X-Request-Id"))
}

func TestRequestIDPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("X-Request-Id", "req-123")

	c, recorder := runChain(t, req, RequestIDMiddleware())

	assert.Equal(t, "req-123", c.GetString("RequestId"))
	assert.Equal(t, "req-123", recorder.Header().Get("X-Request-Id"))
}

func TestCustomContextCarriesBearerAndRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer tok-ichi")
	req.Header.Set("X-Request-Id", "req-123")

	c, _ := runChain(t, req,
		RequestIDMiddleware(),
		BearerExtractionMiddleware(),
		CustomContextMiddleware("photostack-test"),
	)

	ctx := c.Request.Context()
	assert.Equal(t, "tok-ichi", utils.GetBearerTokenFromContext(ctx))
	assert.Equal(t, "req-123", utils.GetRequestIDFromContext(ctx))
	assert.Equal(t, "photostack-test", utils.GetAppSourceFromContext(ctx))
}
