package otp

import (
	"context"
	"time"
)

// kvStore is the expiring key-value store backing all OTP state. A missing
// or expired key reads as absent.
type kvStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
