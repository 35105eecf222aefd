package otp

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
)

// Throttle enforces the per-email cooldown, failed-attempt lock and hourly
// request cap in front of code issuance.
type Throttle struct {
	store kvStore
}

func NewThrottle(store kvStore) *Throttle {
	return &Throttle{store: store}
}

// Check reports whether email may be issued a code. Cooldown is checked
// first, then the failed-attempt lock, then the spam lock.
func (t *Throttle) Check(ctx context.Context, email string) (Outcome, error) {
	checks := []struct {
		key     string
		outcome Outcome
	}{
		{cooldownKey(email), CooldownActive},
		{lockKey(email), LockedOut},
		{spamLockKey(email), SpamLocked},
	}
	for _, c := range checks {
		_, ok, err := t.store.Get(ctx, c.key)
		if err != nil {
			return Admitted, fmt.Errorf("otp throttle check: %w", err)
		}
		if ok {
			return c.outcome, nil
		}
	}
	return Admitted, nil
}

// Track counts one issuance request for email. Once maxRequests have been
// counted in the current window the request is refused and the spam lock set.
func (t *Throttle) Track(ctx context.Context, email string) (Outcome, error) {
	key := requestCountKey(email)
	raw, ok, err := t.store.Get(ctx, key)
	if err != nil {
		return Admitted, fmt.Errorf("otp throttle track: %w", err)
	}
	count := 0
	if ok {
		count = parseCount(raw, key)
	}
	if count >= maxRequests {
		if err := t.store.Set(ctx, spamLockKey(email), "locked", SpamLockTTL); err != nil {
			return Admitted, fmt.Errorf("otp throttle track: %w", err)
		}
		return SpamLocked, nil
	}
	if err := t.store.Set(ctx, key, strconv.Itoa(count+1), RequestWindow); err != nil {
		return Admitted, fmt.Errorf("otp throttle track: %w", err)
	}
	return Admitted, nil
}

// Admit runs Check then Track and returns a *RejectionError when either
// refuses the request.
func (t *Throttle) Admit(ctx context.Context, email string) error {
	outcome, err := t.Check(ctx, email)
	if err != nil {
		return err
	}
	if outcome != Admitted {
		return Reject(outcome, 0)
	}
	outcome, err = t.Track(ctx, email)
	if err != nil {
		return err
	}
	return Reject(outcome, 0)
}

func parseCount(raw, key string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		slog.Warn("otp: corrupt counter, treating as zero", "key", key, "value", raw)
		return 0
	}
	return n
}
