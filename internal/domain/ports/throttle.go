package ports

import (
	"context"
	"time"
)

// Cooldown limits how often a keyed action may run
type Cooldown interface {
	Acquire(ctx context.Context, key string, window time.Duration) (bool, error)
}
