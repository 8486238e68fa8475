package monomotapa

import (
	"sync"
	"time"
)

// RunLimiter rate-limits test runs per client IP address.
type RunLimiter struct {
	mu     sync.Mutex
	runs   map[string][]time.Time
	max    int
	window time.Duration
	stop   chan struct{}
	once   sync.Once
}

// NewRunLimiter creates a RunLimiter that allows max runs per window.
func NewRunLimiter(max int, window time.Duration) *RunLimiter {
	l := &RunLimiter{
		runs:   make(map[string][]time.Time),
		max:    max,
		window: window,
		stop:   make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *RunLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
		}
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for ip, hits := range l.runs {
			kept := prune(hits, cutoff)
			if len(kept) == 0 {
				delete(l.runs, ip)
			} else {
				l.runs[ip] = kept
			}
		}
		l.mu.Unlock()
	}
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// Allow reports whether ip may start another run and records it if so.
func (l *RunLimiter) Allow(ip string) bool {
	cutoff := time.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := prune(l.runs[ip], cutoff)
	if len(kept) >= l.max {
		l.runs[ip] = kept
		return false
	}
	l.runs[ip] = append(kept, time.Now())
	return true
}

// Stop ends the background cleanup.
func (l *RunLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
