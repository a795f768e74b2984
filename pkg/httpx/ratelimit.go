package httpx

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters for a route.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// Rate limit profiles. Login gets the strict profile (brute-force
// prevention); decision endpoints the moderate one; read-only reports the
// lenient one.
var (
	StrictLimit = RateLimitConfig{
		RequestsPerWindow: 5,
		Window:            time.Minute,
		Burst:             5,
	}

	ModerateLimit = RateLimitConfig{
		RequestsPerWindow: 20,
		Window:            time.Minute,
		Burst:             20,
	}

	LenientLimit = RateLimitConfig{
		RequestsPerWindow: 100,
		Window:            time.Minute,
		Burst:             100,
	}
)

// RateLimitByIP limits requests per client IP using a token bucket. Idle
// buckets are evicted after a few windows so the registry cannot grow
// without bound.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	reg := &limiterRegistry{
		limit:   rate.Every(cfg.Window / time.Duration(cfg.RequestsPerWindow)),
		burst:   cfg.Burst,
		idleTTL: 3 * cfg.Window,
		entries: make(map[string]*limiterEntry),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !reg.allow(clientIP(r)) {
				w.Header().Set("Retry-After", cfg.Window.String())
				WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterRegistry struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	entries map[string]*limiterEntry
}

func (g *limiterRegistry) allow(key string) bool {
	now := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(g.limit, g.burst)}
		g.entries[key] = e
	}
	e.lastSeen = now

	// Opportunistic eviction; the map stays small for a single-team service.
	for k, other := range g.entries {
		if now.Sub(other.lastSeen) > g.idleTTL {
			delete(g.entries, k)
		}
	}

	return e.limiter.Allow()
}

// clientIP extracts the client IP, honouring X-Forwarded-For and X-Real-IP
// for proxied requests.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
