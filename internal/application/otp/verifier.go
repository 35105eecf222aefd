package otp

import (
	"context"
	"fmt"
	"strconv"
)

// Result is a verification outcome. AttemptsLeft is only meaningful for
// Incorrect.
type Result struct {
	Outcome      Outcome
	AttemptsLeft int
}

// Err returns the *RejectionError for a failed verification, or nil.
func (r Result) Err() error {
	return Reject(r.Outcome, r.AttemptsLeft)
}

// Verifier checks submitted codes against the pending one.
type Verifier struct {
	store kvStore
}

func NewVerifier(store kvStore) *Verifier {
	return &Verifier{store: store}
}

// Verify compares code with the pending code for email. A match consumes the
// code. The third consecutive mismatch locks the email for LockTTL and
// discards the pending code.
func (v *Verifier) Verify(ctx context.Context, email, code string) (Result, error) {
	stored, ok, err := v.store.Get(ctx, codeKey(email))
	if err != nil {
		return Result{}, fmt.Errorf("otp verify: %w", err)
	}
	if !ok {
		return Result{Outcome: InvalidOrExpired}, nil
	}

	if stored == code {
		if err := v.store.Delete(ctx, codeKey(email), attemptsKey(email)); err != nil {
			return Result{}, fmt.Errorf("otp verify: %w", err)
		}
		return Result{Outcome: Admitted}, nil
	}

	akey := attemptsKey(email)
	raw, ok, err := v.store.Get(ctx, akey)
	if err != nil {
		return Result{}, fmt.Errorf("otp verify: %w", err)
	}
	failed := 0
	if ok {
		failed = parseCount(raw, akey)
	}

	if failed >= maxFailedAttempts {
		if err := v.store.Set(ctx, lockKey(email), "locked", LockTTL); err != nil {
			return Result{}, fmt.Errorf("otp verify: %w", err)
		}
		if err := v.store.Delete(ctx, codeKey(email), akey); err != nil {
			return Result{}, fmt.Errorf("otp verify: %w", err)
		}
		return Result{Outcome: LockedOut}, nil
	}

	if err := v.store.Set(ctx, akey, strconv.Itoa(failed+1), AttemptsTTL); err != nil {
		return Result{}, fmt.Errorf("otp verify: %w", err)
	}
	return Result{Outcome: Incorrect, AttemptsLeft: maxFailedAttempts - failed}, nil
}
