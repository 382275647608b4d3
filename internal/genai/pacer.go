package genai

import (
	"context"
	"sync"
	"time"
)

// DefaultMinInterval is the pacing floor between outbound API calls when the
// configuration does not supply one.
const DefaultMinInterval = 2 * time.Second

// Pacer enforces a minimum spacing between outbound calls to the generative
// API. There is one pacing clock per client, shared by every caller in the
// process; waiters are not served in strict FIFO order.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
}

func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = DefaultMinInterval
	}
	return &Pacer{interval: interval}
}

// Acquire blocks until at least the configured interval has elapsed since the
// start of the previous acquisition. The slot is reserved before sleeping so
// concurrent callers each get their own spacing window.
func (p *Pacer) Acquire(ctx context.Context) error {
	p.mu.Lock()
	now := time.Now()
	start := p.next
	if start.Before(now) {
		start = now
	}
	p.next = start.Add(p.interval)
	p.mu.Unlock()

	wait := time.Until(start)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
