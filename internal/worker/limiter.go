package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/veridict/veridict/internal/model"
)

// Limiter paces outbound fetches per source domain, so a batch full of
// links to one site does not hammer it.
type Limiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter

	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a per-domain limiter with shared defaults
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the domain of rawURL has capacity. URLs without a
// parseable host share the "" bucket.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	return l.forDomain(model.DomainFromURL(rawURL)).Wait(ctx)
}

// Allow reports whether a request to the URL's domain may proceed now
func (l *Limiter) Allow(rawURL string) bool {
	return l.forDomain(model.DomainFromURL(rawURL)).Allow()
}

// SetDomainRate overrides the rate for one domain
func (l *Limiter) SetDomainRate(domain string, requestsPerSecond float64, burst int) {
	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters[domain] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

func (l *Limiter) forDomain(domain string) *rate.Limiter {
	l.mu.RLock()
	limiter, ok := l.limiters[domain]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, ok := l.limiters[domain]; ok {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[domain] = limiter
	return limiter
}
