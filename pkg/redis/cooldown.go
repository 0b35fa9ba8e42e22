package redis

import (
	"context"
	"time"
)

// Cooldown grants at most one action per key per window.
type Cooldown struct {
	prefix string
}

// NewCooldown creates a cooldown whose keys live under prefix.
func NewCooldown(prefix string) *Cooldown {
	return &Cooldown{prefix: prefix}
}

// Acquire returns true when the caller may proceed. A missing or unreachable
// Redis never blocks the caller.
func (c *Cooldown) Acquire(ctx context.Context, key string, window time.Duration) (bool, error) {
	ok, err := SetNX(ctx, c.prefix+":"+key, time.Now().Unix(), window)
	if err != nil {
		return true, err
	}
	return ok, nil
}
