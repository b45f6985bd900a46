package constants

import "time"

// Default rate limiting configuration
const (
	// DefaultRateLimitRequests is the number of requests a client may make per window
	DefaultRateLimitRequests      = 100
	DefaultRateLimitWindowMinutes = 1

	// DefaultSignInRateLimitRequests caps form submissions per client per window
	DefaultSignInRateLimitRequests = 10
)

// Default HTTP server timings
const (
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

const HTMLContentType = "text/html; charset=utf-8"

func DefaultRateLimitWindow() time.Duration {
	return time.Duration(DefaultRateLimitWindowMinutes) * time.Minute
}
