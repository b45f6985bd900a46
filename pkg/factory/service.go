package factory

import (
	"context"
	"time"

	"github.com/akeren/betrayal-web/pkg/ratelimit"
	"github.com/go-redis/redis/v8"
)

type Cache interface {
	Ping(ctx context.Context) error
}

type RedisClientProvider interface {
	GetClient() *redis.Client
}

type RateLimiterFactory interface {
	// CreateRateLimiter builds a limiter with the factory's defaults.
	CreateRateLimiter() ratelimit.RateLimiter
	// CreateScopedRateLimiter builds a limiter for one route with its own
	// budget and key namespace.
	CreateScopedRateLimiter(scope string, requests int, window time.Duration) ratelimit.RateLimiter
}

type DefaultRateLimiterFactory struct {
	requests int
	window   time.Duration
	redis    *redis.Client
	logger   ratelimit.Logger
}

// NewDefaultRateLimiterFactory shares Redis between limiters when cache exposes a client.
func NewDefaultRateLimiterFactory(requests int, window time.Duration, cache Cache, logger ratelimit.Logger) *DefaultRateLimiterFactory {
	var redisClient *redis.Client
	if cache != nil {
		if provider, ok := cache.(RedisClientProvider); ok {
			redisClient = provider.GetClient()
		}
	}

	return &DefaultRateLimiterFactory{
		requests: requests,
		window:   window,
		redis:    redisClient,
		logger:   logger,
	}
}

func (f *DefaultRateLimiterFactory) CreateRateLimiter() ratelimit.RateLimiter {
	return f.CreateScopedRateLimiter("", f.requests, f.window)
}

func (f *DefaultRateLimiterFactory) CreateScopedRateLimiter(scope string, requests int, window time.Duration) ratelimit.RateLimiter {
	prefix := "ratelimit:"
	if scope != "" {
		prefix = "ratelimit:" + scope + ":"
	}

	return ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests:  requests,
		Window:    window,
		Redis:     f.redis,
		KeyPrefix: prefix,
		Logger:    f.logger,
	})
}
