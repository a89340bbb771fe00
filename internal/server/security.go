package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/osse101/BrandishEvents_Go/internal/logger"
	"github.com/osse101/BrandishEvents_Go/internal/metrics"
)

// Guard authenticates game-host and admin callers by API key and throttles
// each client address over a fixed window.
type Guard struct {
	apiKey  []byte
	proxies map[string]struct{}
	limit   int
	window  time.Duration
	now     func() time.Time

	mu      sync.Mutex
	clients map[string]*clientWindow
	swept   time.Time
}

type clientWindow struct {
	start    time.Time
	requests int
	failures int
}

// NewGuard allows limit requests per client in each window. Forwarded
// addresses are only honoured from the listed proxies.
func NewGuard(apiKey string, trustedProxies []string, limit int, window time.Duration) *Guard {
	proxies := make(map[string]struct{}, len(trustedProxies))
	for _, p := range trustedProxies {
		proxies[strings.TrimSpace(p)] = struct{}{}
	}
	return &Guard{
		apiKey:  []byte(apiKey),
		proxies: proxies,
		limit:   limit,
		window:  window,
		now:     time.Now,
		clients: make(map[string]*clientWindow),
		swept:   time.Now(),
	}
}

func isPublic(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Authenticate rejects requests outside PublicPaths that lack the API key
func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		provided := r.Header.Get(HeaderAPIKey)
		if subtle.ConstantTimeCompare([]byte(provided), g.apiKey) != 1 {
			ip := g.clientIP(r)
			g.recordFailure(ip)
			metrics.RequestsRejected.WithLabelValues(metrics.ReasonAuth).Inc()
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"ip", ip,
				"path", r.URL.Path,
				"has_key", provided != "")
			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Throttle answers 429 once a client exceeds its request budget
func (g *Guard) Throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.allow(g.clientIP(r)) {
			metrics.RequestsRejected.WithLabelValues(metrics.ReasonRateLimit).Inc()
			http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// entry returns the live window for ip. Caller holds g.mu.
func (g *Guard) entry(ip string) *clientWindow {
	now := g.now()
	if now.Sub(g.swept) > g.window {
		for k, c := range g.clients {
			if now.Sub(c.start) > g.window {
				delete(g.clients, k)
			}
		}
		g.swept = now
	}

	c, ok := g.clients[ip]
	if !ok || now.Sub(c.start) > g.window {
		c = &clientWindow{start: now}
		g.clients[ip] = c
	}
	return c
}

func (g *Guard) allow(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := g.entry(ip)
	c.requests++
	if c.requests <= g.limit {
		return true
	}
	if (c.requests-g.limit)%RateAlertEvery == 1 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "requests", c.requests, "window", g.window)
	}
	return false
}

func (g *Guard) recordFailure(ip string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := g.entry(ip)
	c.failures++
	if c.failures == FailedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "failures", c.failures)
	}
}

// usage reports the current window counters for ip
func (g *Guard) usage(ip string) (requests, failures int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if c, ok := g.clients[ip]; ok {
		return c.requests, c.failures
	}
	return 0, 0
}

// clientIP is the peer address, or the last X-Forwarded-For hop when the
// peer is a trusted proxy.
func (g *Guard) clientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if _, ok := g.proxies[peer]; !ok {
		return peer
	}
	fwd := r.Header.Get(HeaderForwardedFor)
	if fwd == "" {
		return peer
	}
	hops := strings.Split(fwd, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// limitBody caps request bodies at maxBytes
func limitBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for name, value := range SecurityHeaderValues {
			h.Set(name, value)
		}
		next.ServeHTTP(w, r)
	})
}
