package config

import (
	"context"
	"fmt"
	"time"

	"github.com/akeren/betrayal-web/config/router"
	"github.com/akeren/betrayal-web/internal/log"
	"github.com/akeren/betrayal-web/internal/view"
	"github.com/akeren/betrayal-web/pkg/constants"
	"github.com/akeren/betrayal-web/pkg/utils"
)

type ApplicationConfig struct {
	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Views           *view.Views
	Config          *AppConfig
	TracingShutdown func(context.Context) error
	StartedAt       time.Time
}

type AppConfig struct {
	Environment             string
	RateLimitRequests       int
	RateLimitWindow         time.Duration
	SignInRateLimitRequests int
	RequestTimeout          time.Duration
	ShutdownTimeout         time.Duration
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		Environment:             GetAppEnv(),
		RateLimitRequests:       utils.GetEnvPositiveInt("RATE_LIMIT_REQUESTS", constants.DefaultRateLimitRequests),
		RateLimitWindow:         utils.GetEnvPositiveDuration("RATE_LIMIT_WINDOW", constants.DefaultRateLimitWindow()),
		SignInRateLimitRequests: utils.GetEnvPositiveInt("SIGNIN_RATE_LIMIT_REQUESTS", constants.DefaultSignInRateLimitRequests),
		RequestTimeout:          utils.GetEnvPositiveDuration("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		ShutdownTimeout:         utils.GetEnvPositiveDuration("SHUTDOWN_TIMEOUT", constants.DefaultShutdownTimeout),
	}
}

// Uptime reports how long the application has been serving.
func (ac *ApplicationConfig) Uptime() time.Duration {
	if ac.StartedAt.IsZero() {
		return 0
	}
	return time.Since(ac.StartedAt)
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.Cache != nil {
		_ = CloseCache(ac.Cache, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	tracingShutdown, err := SetupTracing(context.Background(), logger, NewTracingConfig())
	if err != nil {
		return nil, err
	}

	views, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("load views: %w", err)
	}
	logger.Info("Views loaded", "pages", views.Pages())

	appConfig := NewAppConfig()
	cache := NewCacheConfig().NewCacheOrNil(logger)

	var routerCache router.Cache
	if cache != nil {
		routerCache = cache
	} else if IsProductionEnv(appConfig.Environment) {
		logger.Warn("Running in production without Redis; rate limits are enforced per instance")
	}

	routerService := router.CreateRouterService(logger, routerCache, &router.RouterConfig{
		RateLimitRequests: appConfig.RateLimitRequests,
		RateLimitWindow:   appConfig.RateLimitWindow,
		RequestTimeout:    appConfig.RequestTimeout,
	})
	routerService.SetViews(views)

	logger.Info("Application configuration loaded successfully", "environment", appConfig.Environment)

	return &ApplicationConfig{
		RouterService:   routerService,
		Logger:          logger,
		Cache:           cache,
		Views:           views,
		Config:          appConfig,
		TracingShutdown: tracingShutdown,
		StartedAt:       time.Now(),
	}, nil
}
