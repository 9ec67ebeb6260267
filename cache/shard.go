package cache

import (
	"sync"

	"github.com/kclaka/colander/policy"
)

// shard is one partition of a ShardedCache: a lock and a single policy
// engine. Never hold more than one shard's lock at a time, except in Clear,
// which acquires all of them in ascending index order.
type shard struct {
	mu     sync.RWMutex
	engine policy.CachePolicy
	hitter policy.SharedHitter // non-nil iff engine also implements SharedHitter
}

func newShard(engine policy.CachePolicy) *shard {
	s := &shard{engine: engine}
	if h, ok := engine.(policy.SharedHitter); ok {
		s.hitter = h
	}
	return s
}

// get implements the read-lock-first, escalate-on-expiry protocol from
// spec §4.6/§5: engines that can serve a hit without mutating state
// (SIEVE, FIFO) are tried under a read lock first; a lazily discovered
// expired entry re-checks under the write lock rather than trusting the
// read-locked observation, since another goroutine may have already
// removed it.
func (s *shard) get(key string) (policy.CachedResponse, bool) {
	if s.hitter == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.engine.Get(key)
	}

	s.mu.RLock()
	val, state := s.hitter.GetShared(key)
	s.mu.RUnlock()

	switch state {
	case policy.LookupHit:
		return val, true
	case policy.LookupMiss:
		return policy.CachedResponse{}, false
	default: // policy.LookupExpired
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.engine.Get(key)
	}
}

func (s *shard) put(key string, value policy.CachedResponse) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Put(key, value)
}

func (s *shard) remove(key string) (policy.CachedResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Remove(key)
}

func (s *shard) stats() policy.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Stats()
}

func (s *shard) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Clear()
}
