package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Tier is a token bucket sized as Requests per Window.
type Tier struct {
	Requests int
	Window   time.Duration
}

func (t Tier) limit() rate.Limit { return rate.Every(t.Window / time.Duration(t.Requests)) }

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-IP token-bucket rate limiter with automatic
// stale-entry cleanup. Requests carrying credentials draw from a separate,
// larger bucket.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	anon     Tier
	authed   Tier
	stop     chan struct{}
}

func NewRateLimiter(anon, authed Tier) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*ipLimiter),
		anon:     anon,
		authed:   authed,
		stop:     make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Close stops the cleanup goroutine.
func (rl *RateLimiter) Close() { close(rl.stop) }

func (rl *RateLimiter) get(key string, tier Tier) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if v, ok := rl.limiters[key]; ok {
		v.lastSeen = time.Now()
		return v.limiter
	}
	l := rate.NewLimiter(tier.limit(), tier.Requests)
	rl.limiters[key] = &ipLimiter{limiter: l, lastSeen: time.Now()}
	return l
}

// cleanup drops entries idle for longer than the larger window.
func (rl *RateLimiter) cleanup() {
	idle := rl.anon.Window
	if rl.authed.Window > idle {
		idle = rl.authed.Window
	}
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for key, v := range rl.limiters {
				if time.Since(v.lastSeen) > idle {
					delete(rl.limiters, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Limit is the middleware handler that enforces the rate limit per client IP.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tier, key := rl.anon, "anon|"+realIP(r)
		if hasCredentials(r) {
			tier, key = rl.authed, "authed|"+realIP(r)
		}
		lim := rl.get(key, tier)
		if !lim.Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(int(tier.Window.Seconds())))
			writeJSONError(w, http.StatusTooManyRequests, "too many requests, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func hasCredentials(r *http.Request) bool {
	for _, names := range cookieNames {
		if c, err := r.Cookie(names.Access); err == nil && c.Value != "" {
			return true
		}
	}
	return strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ")
}

// realIP returns the client address: first X-Forwarded-For entry, then
// X-Real-Ip, then the host part of RemoteAddr.
func realIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xr := r.Header.Get("X-Real-Ip"); xr != "" {
		return strings.TrimSpace(xr)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
