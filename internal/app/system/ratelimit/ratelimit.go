// internal/app/system/ratelimit/ratelimit.go

// Package ratelimit throttles login attempts. It tracks two sliding
// windows, one keyed by client IP and one by account email, so neither a
// single host hammering many accounts nor many hosts hammering one account
// slips through.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter counts events per key inside a fixed window. Safe for concurrent
// use.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
}

type bucket struct {
	count     int
	expiresAt time.Time
}

// NewLimiter allows at most limit events per key per window.
func NewLimiter(limit int, window time.Duration) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
	}
	go l.sweep()
	return l
}

// Allow records an event for key and reports whether it fit in the window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[key]
	if !ok || now.After(b.expiresAt) {
		l.buckets[key] = &bucket{count: 1, expiresAt: now.Add(l.window)}
		return true
	}
	if b.count >= l.limit {
		return false
	}
	b.count++
	return true
}

// Reset forgets a key. Called after a successful login so a legitimate user
// who fumbled their password is not locked out of their next session.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// sweep drops expired buckets so the map does not grow without bound.
func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.window * 2)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, b := range l.buckets {
			if now.After(b.expiresAt) {
				delete(l.buckets, key)
			}
		}
		l.mu.Unlock()
	}
}

// ClientIP extracts the client IP, preferring the proxy headers set by the
// load balancer over RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// LoginLimiter combines the IP and email windows for the login endpoint.
type LoginLimiter struct {
	ip    *Limiter
	email *Limiter
}

// NewLoginLimiter uses the production defaults: 10 attempts per IP per
// minute and 5 attempts per email per five minutes.
func NewLoginLimiter() *LoginLimiter {
	return NewLoginLimiterWithConfig(10, time.Minute, 5, 5*time.Minute)
}

// NewLoginLimiterWithConfig builds a limiter with explicit windows.
func NewLoginLimiterWithConfig(ipLimit int, ipWindow time.Duration, emailLimit int, emailWindow time.Duration) *LoginLimiter {
	return &LoginLimiter{
		ip:    NewLimiter(ipLimit, ipWindow),
		email: NewLimiter(emailLimit, emailWindow),
	}
}

// Check records a login attempt and reports whether it may proceed, with a
// caller-facing message when it may not.
func (ll *LoginLimiter) Check(r *http.Request, email string) (bool, string) {
	if !ll.ip.Allow(ClientIP(r)) {
		return false, "too many login attempts, try again in a minute"
	}
	if email != "" {
		if !ll.email.Allow(emailKey(email)) {
			return false, "too many login attempts for this account, try again in a few minutes"
		}
	}
	return true, ""
}

// ResetEmail clears the account window after a successful login.
func (ll *LoginLimiter) ResetEmail(email string) {
	if email != "" {
		ll.email.Reset(emailKey(email))
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
