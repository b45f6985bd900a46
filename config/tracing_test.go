package config

import (
	"context"
	"testing"

	"github.com/akeren/betrayal-web/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOTLPEndpoint(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		appendPath   bool
		wantHost     string
		wantPath     string
		wantInsecure bool
		wantErr      bool
	}{
		{name: "http default path", raw: "http://collector:4318", appendPath: true, wantHost: "collector:4318", wantPath: "/v1/traces", wantInsecure: true},
		{name: "base path gets traces suffix", raw: "https://otel.example.com/ingest", appendPath: true, wantHost: "otel.example.com", wantPath: "/ingest/v1/traces"},
		{name: "base path already complete", raw: "https://otel.example.com/ingest/v1/traces", appendPath: true, wantHost: "otel.example.com", wantPath: "/ingest/v1/traces"},
		{name: "signal endpoint used verbatim", raw: "https://otel.example.com/custom/traces", wantHost: "otel.example.com", wantPath: "/custom/traces"},
		{name: "bare host port", raw: "localhost:4318", appendPath: true, wantHost: "localhost:4318", wantPath: "/v1/traces", wantInsecure: true},
		{name: "ipv6 host", raw: "http://[::1]:4318", appendPath: true, wantHost: "[::1]:4318", wantPath: "/v1/traces", wantInsecure: true},
		{name: "empty", raw: "  ", wantErr: true},
		{name: "grpc scheme", raw: "grpc://collector:4317", wantErr: true},
		{name: "path without scheme", raw: "collector:4318/v1/traces", wantErr: true},
		{name: "missing host", raw: "http:///v1/traces", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint, err := parseOTLPEndpoint(tt.raw, tt.appendPath)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, endpoint.hostport)
			assert.Equal(t, tt.wantPath, endpoint.path)
			assert.Equal(t, tt.wantInsecure, endpoint.insecure)
		})
	}
}

func TestNewTracingConfig(t *testing.T) {
	t.Setenv("OTEL_TRACES_ENABLED", "true")
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("APP_ENV", "staging")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "https://traces.example.com/v1/spans")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")

	cfg := NewTracingConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "betrayal-web", cfg.ServiceName)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "http://localhost:4318", cfg.Endpoint)
	assert.Equal(t, 0.25, cfg.SampleRatio)

	endpoint, err := cfg.endpoint()
	require.NoError(t, err)
	assert.Equal(t, "traces.example.com", endpoint.hostport)
	assert.Equal(t, "/v1/spans", endpoint.path)
	assert.False(t, endpoint.insecure)
}

func TestParseSampleRatio(t *testing.T) {
	assert.Equal(t, 1.0, parseSampleRatio(""))
	assert.Equal(t, 0.5, parseSampleRatio("0.5"))
	assert.Equal(t, 0.0, parseSampleRatio("0"))
	assert.Equal(t, 1.0, parseSampleRatio("1.5"))
	assert.Equal(t, 1.0, parseSampleRatio("-0.1"))
	assert.Equal(t, 1.0, parseSampleRatio("half"))
}

func TestTracingConfig_ResourceAttributes(t *testing.T) {
	cfg := &TracingConfig{ServiceName: "betrayal-web", Environment: "production"}

	values := map[string]string{}
	for _, kv := range cfg.resourceAttributes() {
		values[string(kv.Key)] = kv.Value.AsString()
	}

	assert.Equal(t, "betrayal-web", values["service.name"])
	assert.Equal(t, "production", values["deployment.environment.name"])
	assert.NotEmpty(t, values["service.instance.id"])

	cfg.Environment = ""
	for _, kv := range cfg.resourceAttributes() {
		assert.NotEqual(t, "deployment.environment.name", string(kv.Key))
	}
}

func TestTracingConfig_Sampler(t *testing.T) {
	assert.Contains(t, (&TracingConfig{SampleRatio: 1}).sampler().Description(), "AlwaysOnSampler")
	assert.Contains(t, (&TracingConfig{SampleRatio: 0.1}).sampler().Description(), "TraceIDRatioBased{0.1}")
}

func TestSetupTracing_Disabled(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), log.NewDiscardLogger(), &TracingConfig{})
	require.NoError(t, err)
	assert.Nil(t, shutdown)

	shutdown, err = SetupTracing(context.Background(), log.NewDiscardLogger(), nil)
	require.NoError(t, err)
	assert.Nil(t, shutdown)
}

func TestSetupTracing_InvalidEndpoint(t *testing.T) {
	_, err := SetupTracing(context.Background(), log.NewDiscardLogger(), &TracingConfig{
		Enabled:  true,
		Endpoint: "grpc://collector:4317",
	})
	assert.Error(t, err)
}
