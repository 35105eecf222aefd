package otp

import "time"

const (
	CodeTTL       = 5 * time.Minute
	CooldownTTL   = time.Minute
	RequestWindow = time.Hour
	SpamLockTTL   = time.Hour
	AttemptsTTL   = 5 * time.Minute
	LockTTL       = 30 * time.Minute

	// maxRequests is how many issuances an email gets per window before
	// the next request trips the spam lock.
	maxRequests = 2
	// maxFailedAttempts is how many wrong codes are tolerated before the
	// third one locks the email.
	maxFailedAttempts = 2
)

func codeKey(email string) string         { return "otp:" + email }
func cooldownKey(email string) string     { return "otp_cooldown:" + email }
func requestCountKey(email string) string { return "otp_requests:" + email }
func spamLockKey(email string) string     { return "otp_spam_lock:" + email }
func attemptsKey(email string) string     { return "otp_attempts:" + email }
func lockKey(email string) string         { return "otp_lock:" + email }
