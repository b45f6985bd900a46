package monitoring

import (
	"context"
	"net/http"
	"time"

	"github.com/akeren/betrayal-web/config/router"
	"github.com/akeren/betrayal-web/internal/log"
	"github.com/akeren/betrayal-web/pkg/ratelimit"
)

const healthCheckTimeout = 2 * time.Second

type Cache interface {
	Ping(ctx context.Context) error
}

// PageCatalog is the part of the view layer health cares about.
type PageCatalog interface {
	Pages() []string
}

type HealthStatus struct {
	Cache  int      `json:"cache"` // 1 = healthy, 0 = unhealthy/not configured
	Views  int      `json:"views"` // 1 = templates loaded
	Pages  []string `json:"pages"`
	Uptime int      `json:"uptime"` // uptime in seconds
}

type MonitoringController struct {
	logger    *log.Logger
	cache     Cache
	views     PageCatalog
	startTime time.Time
}

func NewMonitoringController(logger *log.Logger, cache Cache, views PageCatalog, startTime time.Time) *router.RESTController {
	if startTime.IsZero() {
		startTime = time.Now()
	}

	ctrl := &MonitoringController{
		logger:    logger,
		cache:     cache,
		views:     views,
		startTime: startTime,
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			monitoringRateLimiter := createMonitoringRateLimiter(routerService)

			routerService.AddGetHandler(controller, monitoringRateLimiter, "health", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.healthCheck(routerService, c)
			})
		},
	)
}

func createMonitoringRateLimiter(routerService *router.RouterService) ratelimit.RateLimiter {
	const monitoringRequestsPerMinute = 60

	return routerService.RateLimiters().CreateScopedRateLimiter("monitoring", monitoringRequestsPerMinute, time.Minute)
}

func (ctrl *MonitoringController) healthCheck(
	routerService *router.RouterService,
	c *router.RequestContext,
) *router.ServiceResult {
	logger := routerService.GetLogger(c)
	logger.Debug("Health check endpoint called")

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	healthStatus := ctrl.performHealthChecks(ctx, logger)

	// Views are required to serve anything; the cache is optional.
	statusCode := http.StatusOK
	if healthStatus.Views == 0 {
		statusCode = http.StatusServiceUnavailable
	}

	return &router.ServiceResult{
		StatusCode: statusCode,
		Data:       healthStatus,
		Message:    "betrayal-web health check completed",
	}
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Uptime: int(time.Since(ctrl.startTime).Seconds()),
		Pages:  []string{},
	}

	checkCacheConnectivity(ctx, ctrl, &status, logger)
	checkViews(ctrl, &status, logger)

	return status
}

func checkCacheConnectivity(ctx context.Context, ctrl *MonitoringController, status *HealthStatus, logger *log.Logger) {
	if ctrl.cache == nil {
		status.Cache = 0
		logger.Debug("Cache not configured, cache health check skipped")
		return
	}

	if ctrl.cache.Ping(ctx) == nil {
		status.Cache = 1
		return
	}

	status.Cache = 0
	logger.Error("Cache health check failed")
}

func checkViews(ctrl *MonitoringController, status *HealthStatus, logger *log.Logger) {
	if ctrl.views == nil {
		logger.Error("Views health check failed: no views loaded")
		return
	}

	pages := ctrl.views.Pages()
	if len(pages) == 0 {
		logger.Error("Views health check failed: no pages defined")
		return
	}

	status.Views = 1
	status.Pages = pages
}
