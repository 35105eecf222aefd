package otp

import (
	"fmt"
	"time"

	"github.com/go-shop-auth/internal/domain"
)

// Outcome is the result of a throttle check or a code verification.
type Outcome int

const (
	Admitted Outcome = iota
	CooldownActive
	LockedOut
	SpamLocked
	InvalidOrExpired
	Incorrect
)

func (o Outcome) String() string {
	switch o {
	case Admitted:
		return "admitted"
	case CooldownActive:
		return "cooldown-active"
	case LockedOut:
		return "locked-out"
	case SpamLocked:
		return "spam-locked"
	case InvalidOrExpired:
		return "invalid-or-expired"
	case Incorrect:
		return "incorrect"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// RejectionError reports a refused OTP request or verification. It unwraps
// to domain.ErrBadRequest so handlers map it to 400.
type RejectionError struct {
	Outcome      Outcome
	RetryAfter   time.Duration
	AttemptsLeft int
}

func (e *RejectionError) Error() string {
	switch e.Outcome {
	case CooldownActive:
		return "please wait 1 minute before requesting a new OTP"
	case LockedOut:
		return "too many failed attempts, try again after 30 minutes"
	case SpamLocked:
		return "too many OTP requests, try again after 1 hour"
	case InvalidOrExpired:
		return "invalid or expired OTP"
	case Incorrect:
		return fmt.Sprintf("incorrect OTP, %d attempts left", e.AttemptsLeft)
	}
	return "otp rejected: " + e.Outcome.String()
}

func (e *RejectionError) Unwrap() error { return domain.ErrBadRequest }

// Reject builds the error for a non-admitted outcome. It returns nil for
// Admitted.
func Reject(o Outcome, attemptsLeft int) error {
	switch o {
	case Admitted:
		return nil
	case CooldownActive:
		return &RejectionError{Outcome: o, RetryAfter: CooldownTTL}
	case LockedOut:
		return &RejectionError{Outcome: o, RetryAfter: LockTTL}
	case SpamLocked:
		return &RejectionError{Outcome: o, RetryAfter: SpamLockTTL}
	case Incorrect:
		return &RejectionError{Outcome: o, AttemptsLeft: attemptsLeft}
	}
	return &RejectionError{Outcome: o}
}
