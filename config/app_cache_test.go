package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akeren/betrayal-web/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	closeErr error
	closed   bool
}

func (f *fakeCache) Get(context.Context, string) (string, error)              { return "", nil }
func (f *fakeCache) Set(context.Context, string, string, time.Duration) error { return nil }
func (f *fakeCache) Delete(context.Context, string) error                     { return nil }
func (f *fakeCache) Ping(context.Context) error                               { return nil }
func (f *fakeCache) Close() error                                             { f.closed = true; return f.closeErr }

func TestCacheConfig_NotConfigured(t *testing.T) {
	t.Setenv("REDIS_HOST", "")
	logger := log.NewDiscardLogger()

	cc := NewCacheConfig()
	assert.False(t, cc.IsConfigured())
	assert.Nil(t, cc.NewCacheOrNil(logger))

	_, err := cc.NewCache(logger)
	assert.ErrorIs(t, err, ErrCacheNotConfigured)
}

func TestCacheConfig_Defaults(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("REDIS_CONNECT_TIMEOUT", "")

	cc := NewCacheConfig()

	assert.True(t, cc.IsConfigured())
	assert.Equal(t, "6379", cc.Port)
	assert.Equal(t, 10*time.Second, cc.ConnectTimeout)
}

func TestCacheConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache.internal:6380", (&CacheConfig{Host: "cache.internal", Port: "6380"}).Addr())
	assert.Equal(t, "[::1]:6379", (&CacheConfig{Host: "::1", Port: "6379"}).Addr())
	assert.Equal(t, "[fd00::5]:6379", (&CacheConfig{Host: "fd00::5"}).Addr())
}

func TestCloseCache(t *testing.T) {
	logger := log.NewDiscardLogger()

	require.NoError(t, CloseCache(nil, logger))

	ok := &fakeCache{}
	require.NoError(t, CloseCache(ok, logger))
	assert.True(t, ok.closed)

	failing := &fakeCache{closeErr: errors.New("connection reset")}
	assert.Error(t, CloseCache(failing, logger))
}
