package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryLimiter keeps one token bucket per key in process memory.
type MemoryLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	ttl      time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryLimiter allows rps requests per second per key with the given
// burst. Keys idle for longer than ttl are forgotten.
func NewMemoryLimiter(rps float64, burst int, ttl time.Duration) *MemoryLimiter {
	return newMemoryLimiter(rate.Limit(rps), burst, ttl)
}

// NewMemoryLimiterPerWindow allows n requests per window per key.
func NewMemoryLimiterPerWindow(n int, window time.Duration) *MemoryLimiter {
	if n < 1 {
		n = 1
	}
	return newMemoryLimiter(rate.Every(window/time.Duration(n)), n, 2*window)
}

func newMemoryLimiter(r rate.Limit, burst int, ttl time.Duration) *MemoryLimiter {
	ml := &MemoryLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    burst,
		ttl:      ttl,
		stop:     make(chan struct{}),
	}

	go ml.cleanup()

	return ml
}

func (ml *MemoryLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ml.evict(time.Now())
		case <-ml.stop:
			return
		}
	}
}

func (ml *MemoryLimiter) evict(now time.Time) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	for key, v := range ml.visitors {
		if now.Sub(v.lastSeen) > ml.ttl {
			delete(ml.visitors, key)
		}
	}
}

func (ml *MemoryLimiter) getVisitor(key string) *rate.Limiter {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	v, exists := ml.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(ml.rate, ml.burst)
		ml.visitors[key] = &visitor{
			limiter:  limiter,
			lastSeen: time.Now(),
		}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (ml *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	return ml.getVisitor(key).Allow(), nil
}

// Stop ends the cleanup goroutine.
func (ml *MemoryLimiter) Stop() {
	ml.stopOnce.Do(func() { close(ml.stop) })
}

var _ Limiter = (*MemoryLimiter)(nil)
