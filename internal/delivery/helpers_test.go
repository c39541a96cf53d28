package delivery

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/eunwoo0701/cafe-delight/internal/auth"
	"github.com/eunwoo0701/cafe-delight/internal/domain"
	"github.com/eunwoo0701/cafe-delight/internal/middleware"
)

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour)
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// testRouterBundle wires a router the same way main does: an /api group plus
// the real token-backed auth middlewares.
type testRouterBundle struct {
	router       *gin.Engine
	api          gin.IRouter
	tokens       *auth.TokenManager
	requireAuth  gin.HandlerFunc
	requireAdmin gin.HandlerFunc
}

func newRouterBundle(t *testing.T) *testRouterBundle {
	t.Helper()
	router := newTestRouter()
	tokens := testTokens()
	logger := testLogger()
	return &testRouterBundle{
		router:       router,
		api:          router.Group("/api"),
		tokens:       tokens,
		requireAuth:  middleware.Auth(tokens, logger),
		requireAdmin: middleware.AdminOnly(logger),
	}
}

func bearerFor(t *testing.T, tokens *auth.TokenManager, id int64, role domain.Role) string {
	t.Helper()
	token, err := tokens.Issue(&domain.User{ID: id, Role: role})
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

func dataAsMap(t *testing.T, resp Response) map[string]interface{} {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "expected object Data, got %T", resp.Data)
	return data
}
