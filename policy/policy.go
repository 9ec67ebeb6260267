// Package policy defines the contract every cache eviction engine (SIEVE,
// LRU, FIFO) implements, plus the value model those engines store.
//
// This mirrors the teacher repo's policy package, but where the teacher's
// policy.Policy[K, V] is a factory that binds a generic Hooks[K, V] facade
// onto a shard's intrusive list, here the engine owns its arena directly:
// spec §4 describes three complete, self-contained engines sharing one
// arena design, not one shard driving three pluggable strategies through a
// common hook surface. The simpler direct-ownership shape is what
// policy/sieve, policy/lru, and policy/fifo implement.
package policy

import "time"

// CachedResponse is the value a cache entry carries: a cached HTTP
// response. It is immutable once inserted — Put replaces the record
// wholesale rather than mutating it in place (spec §3).
type CachedResponse struct {
	Status      int
	Headers     []Header
	Body        []byte
	ContentType string
	InsertedAt  time.Time
	TTL         time.Duration
}

// Header is one entry of an ordered, repeatable header multi-map (HTTP
// headers are not a map[string]string: the same name may repeat, and order
// is observable to clients).
type Header struct {
	Name  string
	Value string
}

// IsExpired reports whether the entry is stale at instant now. TTL is
// assumed to be strictly positive (spec §3 invariant: "TTL > 0"); a zero or
// negative TTL is a construction bug in the caller, not handled here.
func (r CachedResponse) IsExpired(now time.Time) bool {
	return now.Sub(r.InsertedAt) >= r.TTL
}

// Stats is a point-in-time snapshot of one engine's counters.
type Stats struct {
	Name      string
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
	Capacity  int
}

// HitRate returns Hits / (Hits + Misses), or 0 when the denominator is
// zero (spec §6).
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// CachePolicy is the operation set every eviction engine exposes (spec
// §4.2). Implementations are not safe for concurrent use on their own —
// cache.ShardedCache supplies the locking discipline described in spec §5;
// an engine assumes exclusive access for the duration of each call except
// where SharedHitter documents otherwise.
type CachePolicy interface {
	// Get looks up key. A present-but-expired entry is removed and counted
	// as a miss before returning (ok=false); a live entry updates the
	// policy's promotion metadata (visited bit / move-to-front, depending
	// on the engine) and is counted as a hit.
	Get(key string) (value CachedResponse, ok bool)

	// Put inserts or replaces key. If key is already present, the value is
	// replaced wholesale, no eviction occurs, and the policy treats the
	// call as a hit for promotion purposes. Otherwise, if the engine is at
	// capacity, exactly one victim is evicted first. Reports whether an
	// eviction occurred.
	Put(key string, value CachedResponse) (evicted bool)

	// Remove deletes key if present. Idempotent: removing an absent key is
	// a no-op that reports ok=false.
	Remove(key string) (value CachedResponse, ok bool)

	// Len reports the number of resident entries.
	Len() int

	// Capacity reports the fixed entry-count limit.
	Capacity() int

	// Stats returns a snapshot of the engine's counters.
	Stats() Stats

	// Clear resets the engine to a freshly constructed state: empty list,
	// empty arena, zeroed counters.
	Clear()

	// Name returns the engine's stable, uppercase identifier: "SIEVE",
	// "LRU", or "FIFO".
	Name() string
}

// LookupState distinguishes the three outcomes a shared-lock-safe lookup
// can have. It exists so cache.ShardedCache can tell "definite miss" (safe
// to report without escalating) apart from "looks expired" (must escalate
// to a write lock to actually remove the entry) without the SharedHitter
// implementation mutating anything itself.
type LookupState int

const (
	// LookupMiss means the key is absent. No escalation needed.
	LookupMiss LookupState = iota
	// LookupHit means a live value was found and returned; any promotion
	// metadata allowed under a shared lock (e.g. SIEVE's visited bit) has
	// already been applied.
	LookupHit
	// LookupExpired means the key maps to a node whose TTL has elapsed.
	// The shared-lock path does not mutate the list or key map to remove
	// it; the caller must re-run the lookup under a write lock.
	LookupExpired
)

// SharedHitter is implemented by engines whose cache hits require no
// structural mutation (SIEVE, FIFO), letting cache.ShardedCache serve them
// under a shard's read lock (spec §5: "SIEVE and FIFO hit paths take a
// read lock"). LRU does not implement this interface — its hit path
// always moves the node to the head of the list and therefore always
// needs the write lock.
type SharedHitter interface {
	// GetShared performs a lookup that is safe to run while holding only a
	// shard's read lock. On LookupHit it has already recorded the hit and
	// applied any shared-lock-safe promotion (SIEVE's visited-bit store).
	// On LookupMiss it has already recorded the miss. On LookupExpired it
	// has recorded nothing — the caller must call Get under a write lock,
	// which performs the actual removal and counts the miss exactly once.
	GetShared(key string) (value CachedResponse, state LookupState)
}
