package config

import (
	"context"
	"os"
	"time"

	"github.com/akeren/betrayal-web/internal/log"
	pkgredis "github.com/akeren/betrayal-web/pkg/redis"
	"github.com/akeren/betrayal-web/pkg/utils"
)

type Cache interface {
	// Get returns ("", nil) when a key is not found.
	Get(ctx context.Context, key string) (string, error)
	// Set uses ttl=0 for no expiry.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

type CacheConfig struct {
	Host           string
	Port           string
	Password       string
	ConnectTimeout time.Duration
}

func NewCacheConfig() *CacheConfig {
	return &CacheConfig{
		Host:           os.Getenv("REDIS_HOST"),
		Port:           utils.GetEnvOrDefault("REDIS_PORT", "6379"),
		Password:       os.Getenv("REDIS_PASSWORD"),
		ConnectTimeout: utils.GetEnvPositiveDuration("REDIS_CONNECT_TIMEOUT", 10*time.Second),
	}
}

func (cc *CacheConfig) redisConfig() *pkgredis.Config {
	return &pkgredis.Config{
		Host:     cc.Host,
		Port:     cc.Port,
		Password: cc.Password,
	}
}

// Addr is the dial address, bracketing IPv6 hosts.
func (cc *CacheConfig) Addr() string {
	return cc.redisConfig().Addr()
}

func (cc *CacheConfig) IsConfigured() bool {
	return cc.Host != ""
}

func (cc *CacheConfig) NewCache(logger *log.Logger) (Cache, error) {
	if !cc.IsConfigured() {
		logger.Error("Cache (Redis) configuration is missing")
		return nil, ErrCacheNotConfigured
	}

	ctx, cancel := context.WithTimeout(context.Background(), cc.ConnectTimeout)
	defer cancel()

	cache, err := pkgredis.NewRedisCache(ctx, cc.redisConfig())
	if err != nil {
		logger.Error("Failed to create Cache (Redis)", "error", err)
		return nil, err
	}

	logger.Info("Cache (Redis) connected successfully", "addr", cc.Addr())
	return cache, nil
}

// NewCacheOrNil degrades to no cache so rate limiting falls back to memory.
func (cc *CacheConfig) NewCacheOrNil(logger *log.Logger) Cache {
	if !cc.IsConfigured() {
		logger.Info("Cache (Redis) is not configured; proceeding without external cache")
		return nil
	}

	cache, err := cc.NewCache(logger)
	if err != nil {
		return nil
	}

	return cache
}

func CloseCache(cache Cache, logger *log.Logger) error {
	if cache == nil {
		logger.Info("No cache provided; skipping cache close")
		return nil
	}

	if err := cache.Close(); err != nil {
		logger.Error("Failed to close cache", "error", err)
		return err
	}

	logger.Info("Cache connection closed")
	return nil
}

var ErrCacheNotConfigured = &CacheError{Message: "cache host is not configured"}

type CacheError struct {
	Message string
}

func (e *CacheError) Error() string {
	return e.Message
}
