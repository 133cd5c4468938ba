// Package rate throttles per-peer query volume at the search endpoint.
// An untrusted server fielding a forged trapdoor cannot tell it apart
// from a legitimate one any earlier than the final "no results" outcome
// (spec §4.4, Adversarial input), so bounding the rate at which any one
// peer can submit trapdoors is the cheapest independent control against
// brute-force guessing.
package rate

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// PerPeerLimiter hands out one token-bucket limiter per remote address,
// created lazily on first use.
type PerPeerLimiter struct {
	r       rate.Limit
	burst   int
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewPerPeerLimiter returns a limiter allowing r requests/second with the
// given burst, tracked independently per remote IP.
func NewPerPeerLimiter(r float64, burst int) *PerPeerLimiter {
	return &PerPeerLimiter{
		r:       rate.Limit(r),
		burst:   burst,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether the peer identified by addr (typically
// http.Request.RemoteAddr) may proceed now.
func (p *PerPeerLimiter) Allow(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	p.mu.Lock()
	l, ok := p.buckets[host]
	if !ok {
		l = rate.NewLimiter(p.r, p.burst)
		p.buckets[host] = l
	}
	p.mu.Unlock()

	return l.Allow()
}

// Middleware wraps next, rejecting throttled peers with 429 before next
// ever sees the request.
func (p *PerPeerLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !p.Allow(r.RemoteAddr) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
