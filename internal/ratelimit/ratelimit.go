package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter is a sliding-window counter keyed by client. Each Allow call
// prunes the accessed key, so a key only holds timestamps inside the
// current window; Sweep drops keys that went idle entirely.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	nowFn   func() time.Time
	clients map[string][]time.Time
}

func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		nowFn:   time.Now,
		clients: make(map[string][]time.Time),
	}
}

// Allow records an attempt for the key if it is under the limit. It
// returns whether the attempt may proceed and how many attempts remain
// in the current window.
func (l *Limiter) Allow(key string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()
	recent := l.prune(key, now)

	if len(recent) >= l.limit {
		l.clients[key] = recent
		return false, 0
	}

	l.clients[key] = append(recent, now)
	return true, l.limit - len(recent) - 1
}

// Window returns the configured sliding-window duration.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// Sweep removes keys with no attempts inside the current window.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()
	for key := range l.clients {
		if recent := l.prune(key, now); len(recent) == 0 {
			delete(l.clients, key)
		} else {
			l.clients[key] = recent
		}
	}
}

// SweepLoop sweeps on an interval until the context is cancelled.
func (l *Limiter) SweepLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}

// prune returns the key's attempts still inside the window ending at now.
// Caller holds the mutex.
func (l *Limiter) prune(key string, now time.Time) []time.Time {
	windowStart := now.Add(-l.window)
	recent := l.clients[key][:0]
	for _, t := range l.clients[key] {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}
	return recent
}
