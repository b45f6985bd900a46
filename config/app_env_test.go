package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akeren/betrayal-web/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsProductionEnv(t *testing.T) {
	for _, env := range []string{"prod", "production", " Production "} {
		assert.True(t, IsProductionEnv(env), env)
	}
	for _, env := range []string{"", "dev", "local", "staging", "test"} {
		assert.False(t, IsProductionEnv(env), env)
	}
}

func TestGetAppEnv_Normalizes(t *testing.T) {
	t.Setenv(AppEnvKey, "  Staging ")

	assert.Equal(t, "staging", GetAppEnv())
}

func TestInitializeEnvFile_LoadsFile(t *testing.T) {
	t.Setenv("SKIP_DOTENV", "")
	t.Setenv("BETRAYAL_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("BETRAYAL_DOTENV_PROBE"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BETRAYAL_DOTENV_PROBE=loaded\n"), 0o600))

	InitializeEnvFile(log.NewDiscardLogger(), path)

	assert.Equal(t, "loaded", os.Getenv("BETRAYAL_DOTENV_PROBE"))
}

func TestInitializeEnvFile_Skipped(t *testing.T) {
	t.Setenv("SKIP_DOTENV", "true")
	t.Setenv("BETRAYAL_DOTENV_SKIPPED", "")
	require.NoError(t, os.Unsetenv("BETRAYAL_DOTENV_SKIPPED"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BETRAYAL_DOTENV_SKIPPED=loaded\n"), 0o600))

	InitializeEnvFile(log.NewDiscardLogger(), path)

	_, found := os.LookupEnv("BETRAYAL_DOTENV_SKIPPED")
	assert.False(t, found)
}

func TestNewAppConfig_Overrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "250")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("SIGNIN_RATE_LIMIT_REQUESTS", "3")
	t.Setenv("REQUEST_TIMEOUT", "bogus")
	t.Setenv(AppEnvKey, "Local")

	cfg := NewAppConfig()

	assert.Equal(t, 250, cfg.RateLimitRequests)
	assert.Equal(t, "30s", cfg.RateLimitWindow.String())
	assert.Equal(t, 3, cfg.SignInRateLimitRequests)
	assert.Equal(t, "30s", cfg.RequestTimeout.String())
	assert.Equal(t, "local", cfg.Environment)
}
