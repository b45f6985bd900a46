package ratelimit

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/akeren/betrayal-web/pkg/circuitbreaker"
	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"
)

type Logger interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// RateLimiter is the strategy the router consults once per request.
type RateLimiter interface {
	GetLimitDetails() (int, time.Duration)
	IsLimited(ctx context.Context, key string) (bool, error)
	Close() error
}

// InMemoryRateLimiter keeps one token bucket per key. Suitable for a single instance.
type InMemoryRateLimiter struct {
	requests int
	window   time.Duration

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSwept time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewInMemoryRateLimiter(requests int, window time.Duration) *InMemoryRateLimiter {
	return &InMemoryRateLimiter{
		requests:  requests,
		window:    window,
		buckets:   make(map[string]*bucket),
		lastSwept: time.Now(),
	}
}

func (r *InMemoryRateLimiter) GetLimitDetails() (int, time.Duration) {
	return r.requests, r.window
}

func (r *InMemoryRateLimiter) IsLimited(_ context.Context, key string) (bool, error) {
	if key == "" {
		key = "__anonymous__"
	}

	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.buckets[key]
	if !ok {
		every := rate.Every(r.window / time.Duration(max(r.requests, 1)))
		b = &bucket{limiter: rate.NewLimiter(every, r.requests)}
		r.buckets[key] = b
	}
	b.lastSeen = now

	// Idle buckets are full again after one window, so dropping them is lossless.
	if now.Sub(r.lastSwept) > r.window {
		for k, v := range r.buckets {
			if now.Sub(v.lastSeen) > r.window {
				delete(r.buckets, k)
			}
		}
		r.lastSwept = now
	}

	return !b.limiter.AllowN(now, 1), nil
}

// Len reports how many keys are currently tracked.
func (r *InMemoryRateLimiter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buckets)
}

func (r *InMemoryRateLimiter) Close() error {
	return nil
}

// Sliding window over a sorted set, evaluated atomically.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
if redis.call('ZCARD', key) >= limit then
	return 1
end
redis.call('ZADD', key, now, member)
redis.call('PEXPIRE', key, window * 2)
return 0
`)

// RedisRateLimiter shares limits between instances through Redis.
type RedisRateLimiter struct {
	client    *redis.Client
	requests  int
	window    time.Duration
	keyPrefix string
}

func NewRedisRateLimiter(client *redis.Client, requests int, window time.Duration, keyPrefix string) *RedisRateLimiter {
	if keyPrefix == "" {
		keyPrefix = "ratelimit:"
	}
	return &RedisRateLimiter{
		client:    client,
		requests:  requests,
		window:    window,
		keyPrefix: keyPrefix,
	}
}

func (r *RedisRateLimiter) GetLimitDetails() (int, time.Duration) {
	return r.requests, r.window
}

func (r *RedisRateLimiter) IsLimited(ctx context.Context, key string) (bool, error) {
	fullKey := key
	if !strings.HasPrefix(key, r.keyPrefix) {
		fullKey = r.keyPrefix + key
	}

	member := make([]byte, 8)
	_, _ = rand.Read(member)

	result, err := slidingWindowScript.Run(ctx, r.client, []string{fullKey},
		time.Now().UnixMilli(),
		r.window.Milliseconds(),
		r.requests,
		hex.EncodeToString(member),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("rate limiter redis script: %w", err)
	}

	return result == 1, nil
}

// The client belongs to the application cache and is closed there.
func (r *RedisRateLimiter) Close() error {
	return nil
}

// FallbackRateLimiter sends traffic to primary while its circuit is closed
// and to fallback while Redis is failing.
type FallbackRateLimiter struct {
	primary  RateLimiter
	fallback RateLimiter
	breaker  circuitbreaker.CircuitBreaker
}

func NewFallbackRateLimiter(primary, fallback RateLimiter, breaker circuitbreaker.CircuitBreaker) *FallbackRateLimiter {
	return &FallbackRateLimiter{primary: primary, fallback: fallback, breaker: breaker}
}

func (r *FallbackRateLimiter) GetLimitDetails() (int, time.Duration) {
	return r.primary.GetLimitDetails()
}

func (r *FallbackRateLimiter) IsLimited(ctx context.Context, key string) (bool, error) {
	var limited bool
	err := r.breaker.Call(func() error {
		var callErr error
		limited, callErr = r.primary.IsLimited(ctx, key)
		return callErr
	})
	if err == nil {
		return limited, nil
	}

	return r.fallback.IsLimited(ctx, key)
}

func (r *FallbackRateLimiter) Close() error {
	return r.fallback.Close()
}

type RateLimitConfig struct {
	Requests  int
	Window    time.Duration
	Redis     *redis.Client // nil selects the in-memory limiter
	KeyPrefix string
	Logger    Logger
}

// NewRateLimiter picks a strategy from config. A Redis-backed limiter is
// always guarded by a circuit breaker with an in-memory fallback.
func NewRateLimiter(config *RateLimitConfig) RateLimiter {
	memory := NewInMemoryRateLimiter(config.Requests, config.Window)
	if config.Redis == nil {
		return memory
	}

	breakerConfig := circuitbreaker.DefaultConfig()
	breakerConfig.Name = "ratelimit-redis"
	if config.Logger != nil {
		logger := config.Logger
		breakerConfig.OnStateChange = func(name string, from, to circuitbreaker.CircuitState) {
			logger.Warn("Rate limiter circuit changed state", "breaker", name, "from", from.String(), "to", to.String())
		}
	}

	return NewFallbackRateLimiter(
		NewRedisRateLimiter(config.Redis, config.Requests, config.Window, config.KeyPrefix),
		memory,
		circuitbreaker.NewCircuitBreaker(breakerConfig),
	)
}
