package middleware

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig configures the rate limiter
type RateLimiterConfig struct {
	// RequestsPerSecond is the rate of token refill
	RequestsPerSecond float64

	// BurstSize is the maximum number of requests allowed in a burst
	BurstSize int

	// IdleTTL is how long an unused key is kept before cleanup removes it
	IdleTTL time.Duration

	// CleanupInterval is how often to clean up idle entries
	CleanupInterval time.Duration

	// KeyFunc extracts the rate limit key from the request
	// Default: client IP address
	KeyFunc func(r *http.Request) string
}

// DefaultRateLimiterConfig returns defaults for the HTML pages.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		IdleTTL:           5 * time.Minute,
		CleanupInterval:   time.Minute,
		KeyFunc:           GetClientIP,
	}
}

// LookupRateLimiterConfig returns stricter limits for endpoints that call the
// geocoder. The public Nominatim policy allows one request per second.
func LookupRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstSize:         3,
		IdleTTL:           5 * time.Minute,
		CleanupInterval:   time.Minute,
		KeyFunc:           GetClientIP,
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is an in-memory, per-key token bucket limiter.
type RateLimiter struct {
	config  RateLimiterConfig
	mu      sync.Mutex
	entries map[string]*limiterEntry
}

// NewRateLimiter creates a new rate limiter. Call Run to start cleanup.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = GetClientIP
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = 5 * time.Minute
	}

	return &RateLimiter{
		config:  config,
		entries: make(map[string]*limiterEntry),
	}
}

// Allow checks if a request for key should be allowed
func (rl *RateLimiter) Allow(key string) bool {
	return rl.limiter(key).Allow()
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if e, ok := rl.entries[key]; ok {
		e.lastSeen = now
		return e.limiter
	}

	lim := rate.NewLimiter(rate.Limit(rl.config.RequestsPerSecond), rl.config.BurstSize)
	rl.entries[key] = &limiterEntry{limiter: lim, lastSeen: now}
	return lim
}

// Cleanup removes keys not seen within IdleTTL.
func (rl *RateLimiter) Cleanup() {
	cutoff := time.Now().Add(-rl.config.IdleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, e := range rl.entries {
		if e.lastSeen.Before(cutoff) {
			delete(rl.entries, key)
		}
	}
}

// Len returns the number of tracked keys.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.entries)
}

// Run cleans up idle keys every CleanupInterval until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context) {
	if rl.config.CleanupInterval <= 0 {
		return
	}

	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.Cleanup()
		case <-ctx.Done():
			return
		}
	}
}

// Middleware returns an HTTP middleware that applies rate limiting
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(rl.config.KeyFunc(r)) {
			w.Header().Set("Retry-After", "1")
			respondTooManyRequests(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetClientIP returns the address of the connected peer. Proxy headers are
// ignored; use ClientIPFunc when the server sits behind a known proxy.
func GetClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// ClientIPFunc returns a key function that honours X-Forwarded-For and
// X-Real-IP only when the peer is inside one of the trusted prefixes.
// X-Forwarded-For is read right to left and the first hop that is not a
// trusted proxy wins, so a client cannot pick its own key by prepending
// entries. With no trusted prefixes it behaves like GetClientIP.
func ClientIPFunc(trusted []netip.Prefix) func(r *http.Request) string {
	isTrusted := func(ip string) bool {
		addr, err := netip.ParseAddr(ip)
		if err != nil {
			return false
		}
		addr = addr.Unmap()
		for _, p := range trusted {
			if p.Contains(addr) {
				return true
			}
		}
		return false
	}

	return func(r *http.Request) string {
		peer := GetClientIP(r)
		if len(trusted) == 0 || !isTrusted(peer) {
			return peer
		}

		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			hops := strings.Split(xff, ",")
			client := peer
			for i := len(hops) - 1; i >= 0; i-- {
				hop := strings.TrimSpace(hops[i])
				if _, err := netip.ParseAddr(hop); err != nil {
					break
				}
				client = hop
				if !isTrusted(hop) {
					break
				}
			}
			return client
		}

		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			if _, err := netip.ParseAddr(xri); err == nil {
				return xri
			}
		}

		return peer
	}
}

// ParseTrustedProxies parses a comma-separated list of CIDRs or bare IPs.
func ParseTrustedProxies(list string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		if strings.Contains(item, "/") {
			p, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", item, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}

		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", item, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}
