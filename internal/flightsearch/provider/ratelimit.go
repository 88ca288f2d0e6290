package provider

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/goflightsearch/internal/flightsearch/entity"
)

// slotLimiter hands out call slots at least interval apart. Callers reserve
// a slot up front, so concurrent waiters are served in arrival order.
type slotLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
	now      func() time.Time
}

func newSlotLimiter(interval time.Duration) *slotLimiter {
	return &slotLimiter{interval: interval, now: time.Now}
}

func (l *slotLimiter) reserve() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	slot := l.next
	if slot.Before(now) {
		slot = now
	}
	l.next = slot.Add(l.interval)
	return slot.Sub(now)
}

func (l *slotLimiter) Wait(ctx context.Context) error {
	if l.interval <= 0 {
		return nil
	}
	delay := l.reserve()
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// rateLimitedProvider spaces upstream calls; the Amadeus test tier allows
// roughly ten requests per second.
type rateLimitedProvider struct {
	provider Provider
	limiter  *slotLimiter
}

func NewRateLimitedProvider(p Provider, interval time.Duration) Provider {
	return &rateLimitedProvider{
		provider: p,
		limiter:  newSlotLimiter(interval),
	}
}

func (r *rateLimitedProvider) Name() string {
	return r.provider.Name()
}

func (r *rateLimitedProvider) Search(ctx context.Context, req SearchRequest) ([]entity.Flight, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.provider.Search(ctx, req)
}

func (r *rateLimitedProvider) Airports(ctx context.Context, keyword string) ([]entity.Airport, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.provider.Airports(ctx, keyword)
}
