package domain

import (
	"fmt"

	"github.com/akeren/betrayal-web/config"
	"github.com/akeren/betrayal-web/domain/api"
	"github.com/akeren/betrayal-web/domain/landing"
	"github.com/akeren/betrayal-web/domain/monitoring"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) error {
	if appConfig.Views == nil {
		return fmt.Errorf("setup core domain: views are not loaded")
	}

	landingFactory, err := landing.NewLandingServiceFactory(
		appConfig.Logger,
		appConfig.Views.Assets(),
		landing.SignInLimits{
			Requests: appConfig.Config.SignInRateLimitRequests,
			Window:   appConfig.Config.RateLimitWindow,
		},
	)
	if err != nil {
		return fmt.Errorf("setup core domain: %w", err)
	}

	var cache monitoring.Cache
	if appConfig.Cache != nil {
		cache = appConfig.Cache
	}

	appConfig.RouterService.MountController(landingFactory.CreateController())
	appConfig.RouterService.MountController(api.NewAPIController())
	appConfig.RouterService.MountController(
		monitoring.NewMonitoringControllerFactory(appConfig.Logger, cache, appConfig.Views, appConfig.StartedAt).CreateController(),
	)

	return nil
}
