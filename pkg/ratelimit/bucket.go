// Package ratelimit implements a per-key token bucket. Tokens refill
// continuously in proportion to elapsed time, capped at the bucket capacity,
// so short bursts up to the capacity are allowed.
package ratelimit

import (
	"sync"
	"time"
)

// Bucket holds the consumable token balance for a single key.
type Bucket struct {
	mu           sync.Mutex
	tokens       float64
	lastRefill   time.Time
	capacity     float64
	refillPerSec float64
	now          func() time.Time
}

// NewBucket creates a bucket starting at full capacity. refillPerMinute
// tokens accrue per minute, spread continuously over time.
func NewBucket(capacity, refillPerMinute int, now func() time.Time) *Bucket {
	if now == nil {
		now = time.Now
	}
	return &Bucket{
		tokens:       float64(capacity),
		lastRefill:   now(),
		capacity:     float64(capacity),
		refillPerSec: float64(refillPerMinute) / 60.0,
		now:          now,
	}
}

// TryConsume atomically takes n tokens if available. It never blocks.
func (b *Bucket) TryConsume(n int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill()

	if b.tokens < float64(n) {
		return false
	}
	b.tokens -= float64(n)
	return true
}

// refill adds tokens for the time elapsed since the last refill. Callers
// must hold b.mu.
func (b *Bucket) refill() {
	now := b.now()
	elapsed := now.Sub(b.lastRefill)
	if elapsed <= 0 {
		return
	}

	b.tokens += elapsed.Seconds() * b.refillPerSec
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now
}

// Store maps rate-limit keys to lazily created buckets. It is owned by the
// caller and injected where limiting is applied; buckets are never evicted,
// so the map grows with the number of distinct keys.
type Store struct {
	mu              sync.Mutex
	buckets         map[string]*Bucket
	capacity        int
	refillPerMinute int
	now             func() time.Time
}

func NewStore(capacity, refillPerMinute int) *Store {
	return &Store{
		buckets:         make(map[string]*Bucket),
		capacity:        capacity,
		refillPerMinute: refillPerMinute,
		now:             time.Now,
	}
}

// WithClock replaces the time source for deterministic tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// TryConsume resolves the bucket for key, creating it at full capacity on
// first use, and attempts to take n tokens.
func (s *Store) TryConsume(key string, n int) bool {
	s.mu.Lock()
	bucket, ok := s.buckets[key]
	if !ok {
		bucket = NewBucket(s.capacity, s.refillPerMinute, s.now)
		s.buckets[key] = bucket
	}
	s.mu.Unlock()

	return bucket.TryConsume(n)
}

// Len reports the number of tracked keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}
