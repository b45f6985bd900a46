package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akeren/betrayal-web/config/router"
	"github.com/akeren/betrayal-web/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCache struct{ err error }

func (s stubCache) Ping(context.Context) error { return s.err }

type stubCatalog []string

func (s stubCatalog) Pages() []string { return s }

func healthOf(t *testing.T, cache Cache, views PageCatalog, startTime time.Time) (int, HealthStatus) {
	t.Helper()

	rs := router.CreateRouterService(log.NewDiscardLogger(), nil, &router.RouterConfig{
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(NewMonitoringControllerFactory(log.NewDiscardLogger(), cache, views, startTime).CreateController())

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp struct {
		Data HealthStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp.Data
}

func TestHealth_Healthy(t *testing.T) {
	status, health := healthOf(t, stubCache{}, stubCatalog{"landing"}, time.Now().Add(-90*time.Second))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, health.Cache)
	assert.Equal(t, 1, health.Views)
	assert.Equal(t, []string{"landing"}, health.Pages)
	assert.GreaterOrEqual(t, health.Uptime, 90)
}

func TestHealth_CacheOptional(t *testing.T) {
	status, health := healthOf(t, nil, stubCatalog{"landing"}, time.Time{})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, health.Cache)

	status, health = healthOf(t, stubCache{err: errors.New("dial tcp: refused")}, stubCatalog{"landing"}, time.Time{})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, health.Cache)
}

func TestHealth_NoViews(t *testing.T) {
	status, health := healthOf(t, nil, stubCatalog{}, time.Time{})

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, 0, health.Views)
	assert.Empty(t, health.Pages)
}
