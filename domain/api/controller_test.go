package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/akeren/betrayal-web/config/router"
	"github.com/akeren/betrayal-web/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newAPIRouter(t *testing.T) *router.RouterService {
	t.Helper()

	rs := router.CreateRouterService(log.NewDiscardLogger(), nil, &router.RouterConfig{
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(NewAPIController())
	return rs
}

func do(t *testing.T, rs *router.RouterService, method, path, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestHello(t *testing.T) {
	rs := newAPIRouter(t)

	status, resp := do(t, rs, http.MethodGet, "/api", "")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `"Hello, World!"`, string(resp.Data))
}

func TestHello_TrailingSlashRedirects(t *testing.T) {
	rs := newAPIRouter(t)

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/", nil))

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/api", w.Header().Get("Location"))
}

func TestEcho(t *testing.T) {
	rs := newAPIRouter(t)

	status, resp := do(t, rs, http.MethodPost, "/api/echo", `{"player":"ada","votes":[1,2],"alive":true}`)

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"player":"ada","votes":[1,2],"alive":true}`, string(resp.Data))
}

func TestEcho_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "empty body", body: "", message: "Request body is required"},
		{name: "array", body: `[1,2,3]`, message: "Request body must be a JSON object"},
		{name: "malformed", body: `{"player":`, message: "Request body must be a JSON object"},
	}

	rs := newAPIRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := do(t, rs, http.MethodPost, "/api/echo", tt.body)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}
