package ratelimit

import (
	"testing"
	"time"
)

func TestKeyedLimiter_BurstThenDeny(t *testing.T) {
	kl := NewKeyedLimiter(1, 2, time.Minute)
	defer kl.Stop()
	if !kl.Allow("a") || !kl.Allow("a") {
		t.Fatalf("burst of 2 should be allowed")
	}
	if kl.Allow("a") {
		t.Fatalf("third immediate request should be denied")
	}
}

func TestKeyedLimiter_KeysIndependent(t *testing.T) {
	kl := NewKeyedLimiter(1, 1, time.Minute)
	defer kl.Stop()
	if !kl.Allow("a") {
		t.Fatalf("first request for a should pass")
	}
	if !kl.Allow("b") {
		t.Fatalf("b must not share a's bucket")
	}
}

func TestKeyedLimiter_StopIsIdempotentAndKeepsLimiting(t *testing.T) {
	kl := NewKeyedLimiter(1, 1, time.Minute)
	kl.Stop()
	kl.Stop()
	if !kl.Allow("a") {
		t.Fatalf("limiter must still serve after Stop")
	}
	if kl.Allow("a") {
		t.Fatalf("bucket must still enforce its burst after Stop")
	}
}

func TestKeyedLimiter_EvictsIdleEntries(t *testing.T) {
	kl := NewKeyedLimiter(1, 1, time.Minute)
	defer kl.Stop()
	if !kl.Allow("a") {
		t.Fatalf("first request should pass")
	}
	// Age the entry past the ttl and force an eviction sweep.
	kl.lastSeen = func() time.Time { return time.Now().Add(2 * time.Minute) }
	kl.evictIdle()
	kl.mu.Lock()
	_, ok := kl.limiters["a"]
	kl.mu.Unlock()
	if ok {
		t.Fatalf("idle entry should have been evicted")
	}
}
