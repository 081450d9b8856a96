package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go-gin-gorm-blog/internal/domain"
	resp "go-gin-gorm-blog/internal/transport/http/response"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeResolver map[string]domain.Principal

func (f fakeResolver) Resolve(_ context.Context, tok string) (domain.Principal, error) {
	if tok == "" {
		return domain.Principal{}, domain.Unauthorized("Access token required")
	}
	if tok == "boom" {
		return domain.Principal{}, domain.Internal("Failed to load user", errors.New("connection refused"))
	}
	p, ok := f[tok]
	if !ok {
		return domain.Principal{}, domain.Unauthorized("Invalid token")
	}
	return p, nil
}

func do(r http.Handler, method, path string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) resp.Resp {
	t.Helper()
	var out resp.Resp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAuthenticateAndRequireRole(t *testing.T) {
	res := fakeResolver{
		"tok-author": {ID: "a", Role: domain.RoleAuthor},
		"tok-reader": {ID: "r", Role: domain.RoleReader},
	}
	r := gin.New()
	r.GET("/me", Authenticate(res, zap.NewNop()), func(c *gin.Context) {
		p, _ := CurrentPrincipal(c)
		c.String(http.StatusOK, p.ID)
	})
	r.POST("/write", Authenticate(res, zap.NewNop()), RequireRole(domain.RoleAuthor), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := do(r, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access token required", decode(t, w).Msg)

	w = do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Basic tok-author"})
	assert.Equal(t, "Access token required", decode(t, w).Msg)

	w = do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decode(t, w).Msg)

	w = do(r, http.MethodGet, "/me", map[string]string{"Authorization": "bearer  tok-reader "})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "r", w.Body.String())

	w = do(r, http.MethodPost, "/write", map[string]string{"Authorization": "Bearer tok-reader"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Author access required", decode(t, w).Msg)

	w = do(r, http.MethodPost, "/write", map[string]string{"Authorization": "Bearer tok-author"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAuthenticate_LogsStoreFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	res := fakeResolver{}
	r := gin.New()
	r.Use(RequestID())
	r.GET("/me", Authenticate(res, zap.New(core)), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer boom", KeyRequestID: "rid-1"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")

	entries := logs.FilterMessage("resolve principal failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "rid-1", entries[0].ContextMap()["rid"])
	assert.Contains(t, entries[0].ContextMap()["error"], "connection refused")

	// 4xx 不记错误日志
	do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, 1, logs.Len())
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequireRole(domain.RoleReader), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := do(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimitPerIP(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitPerIP(0.001, 2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", nil).Code)
	}
	w := do(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, resp.CodeTooManyRequests, decode(t, w).Code)
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(20 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	w := do(r, http.MethodGet, "/slow", nil)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	w := do(r, http.MethodGet, "/", map[string]string{KeyRequestID: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(KeyRequestID))
	assert.Equal(t, "abc-123", w.Body.String())

	w = do(r, http.MethodGet, "/", nil)
	assert.Len(t, w.Header().Get(KeyRequestID), 36)

	w = do(r, http.MethodGet, "/", map[string]string{KeyRequestID: "a b"})
	assert.Len(t, w.Header().Get(KeyRequestID), 36)
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := do(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, resp.CodeServerError, decode(t, w).Code)
	assert.Equal(t, 1, logs.Len())
}

func TestAccessLog_MasksTokenAndTagsUser(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestID(), AccessLog(zap.New(core)))
	r.GET("/x", func(c *gin.Context) {
		SetPrincipal(c, domain.Principal{ID: "u1"})
		c.Status(http.StatusNotFound)
	})

	do(r, http.MethodGet, "/x?token=secret&page=2", nil)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.WarnLevel, entry.Level)
	ctx := entry.ContextMap()
	assert.Equal(t, "u1", ctx["user_id"])
	assert.EqualValues(t, 404, ctx["status"])
	q := ctx["query"].(map[string][]string)
	assert.Equal(t, []string{"****"}, q["token"])
	assert.Equal(t, []string{"2"}, q["page"])
}

func TestMetrics(t *testing.T) {
	m := NewHTTPMetrics(prometheus.NewRegistry())
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", m.Handler())

	do(r, http.MethodGet, "/ping", nil)
	w := do(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `http_requests_total{method="GET",path="/ping",status="200"} 1`))
}

func TestConcurrencyLimit_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(ConcurrencyLimit(0))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", nil).Code)
}
