package ports

import "context"

// HealthChecker is a backing store reported by GET /health.
type HealthChecker interface {
	// Ping returns nil when the store answers before ctx expires.
	Ping(ctx context.Context) error
	// Name is the key used in the health report, e.g. "postgresql".
	Name() string
}
