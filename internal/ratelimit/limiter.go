package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedLimiter hands out one token-bucket limiter per key (user id or client
// IP). Idle entries are evicted so the map does not grow with every client
// ever seen.
type KeyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	rate     rate.Limit
	burst    int
	ttl      time.Duration
	lastSeen func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

type entry struct {
	limiter  *rate.Limiter
	lastUsed time.Time
}

func NewKeyedLimiter(r rate.Limit, burst int, ttl time.Duration) *KeyedLimiter {
	kl := &KeyedLimiter{
		limiters: make(map[string]*entry),
		rate:     r,
		burst:    burst,
		ttl:      ttl,
		lastSeen: time.Now,
		done:     make(chan struct{}),
	}
	go kl.evictLoop()
	return kl
}

// Stop ends the eviction goroutine. The limiter itself keeps working; safe to
// call more than once.
func (kl *KeyedLimiter) Stop() {
	kl.stopOnce.Do(func() { close(kl.done) })
}

func (kl *KeyedLimiter) Allow(key string) bool {
	kl.mu.Lock()
	e, ok := kl.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(kl.rate, kl.burst)}
		kl.limiters[key] = e
	}
	e.lastUsed = kl.lastSeen()
	kl.mu.Unlock()
	return e.limiter.Allow()
}

func (kl *KeyedLimiter) evictLoop() {
	ticker := time.NewTicker(kl.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-kl.done:
			return
		case <-ticker.C:
			kl.evictIdle()
		}
	}
}

func (kl *KeyedLimiter) evictIdle() {
	cutoff := kl.lastSeen().Add(-kl.ttl)
	kl.mu.Lock()
	defer kl.mu.Unlock()
	for key, e := range kl.limiters {
		if e.lastUsed.Before(cutoff) {
			delete(kl.limiters, key)
		}
	}
}
