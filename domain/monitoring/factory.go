package monitoring

import (
	"time"

	"github.com/akeren/betrayal-web/config/router"
	"github.com/akeren/betrayal-web/internal/log"
)

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	logger    *log.Logger
	cache     Cache
	views     PageCatalog
	startTime time.Time
}

func NewMonitoringControllerFactory(logger *log.Logger, cache Cache, views PageCatalog, startTime time.Time) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{
		logger:    logger,
		cache:     cache,
		views:     views,
		startTime: startTime,
	}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	return NewMonitoringController(f.logger, f.cache, f.views, f.startTime)
}
