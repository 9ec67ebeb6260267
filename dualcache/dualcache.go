// Package dualcache implements the online A/B comparison layer described
// in spec §4.7: a primary cache.ShardedCache serving traffic, and an
// optional comparison engine driven by identical traffic so its hit rate
// can be compared against the primary's without affecting what callers
// observe.
//
// Grounded on
// _examples/original_source/crates/proxy-server/src/cache_layer.rs's
// CacheLayer/CacheMode/CacheLookup, translated from Rust's type-erased
// CacheInner enum into a Go struct holding two *cache.ShardedCache values
// directly — Go interfaces already erase the concrete policy type, so no
// enum-of-variants indirection is needed.
package dualcache

import (
	"sync/atomic"

	"github.com/kclaka/colander/cache"
	"github.com/kclaka/colander/policy"
)

// Mode selects whether Put fans out to the comparison cache.
type Mode int

const (
	// ModeDemo queries and populates both the primary and comparison
	// caches, for an apples-to-apples hit-rate comparison.
	ModeDemo Mode = iota
	// ModeBench consults and populates only the primary cache, for
	// undiluted latency/throughput measurement.
	ModeBench
)

func (m Mode) String() string {
	if m == ModeDemo {
		return "demo"
	}
	return "bench"
}

// Lookup is the result of a DualCache.Get: the value returned to the
// caller (from the primary), plus whether the comparison engine — if any,
// and only when in demo mode — also held the key. Mirrors the Rust
// original's CacheLookup.
type Lookup struct {
	Value         policy.CachedResponse
	Hit           bool
	ComparisonHit bool
}

// DualCache wraps a primary cache and an optional shadow comparison cache,
// fanning traffic out to both while in ModeDemo.
type DualCache struct {
	primary    *cache.ShardedCache
	comparison *cache.ShardedCache // nil if no comparison policy configured

	mode atomic.Int32 // Mode, accessed via SetMode/CurrentMode
}

// New constructs a DualCache around an already-built primary cache and an
// optional comparison cache (nil disables comparison). Starts in ModeDemo,
// matching the Rust original's CacheLayer::new default.
func New(primary, comparison *cache.ShardedCache) *DualCache {
	d := &DualCache{primary: primary, comparison: comparison}
	d.mode.Store(int32(ModeDemo))
	return d
}

// Get looks up key in the primary cache and returns that result to the
// caller. In ModeDemo, if a comparison cache is configured, it is also
// queried (purely to advance its own hit/miss counters) and its hit status
// is reported in Lookup.ComparisonHit; bench mode skips it entirely.
func (d *DualCache) Get(key string) Lookup {
	value, hit := d.primary.Get(key)

	comparisonHit := false
	if d.CurrentMode() == ModeDemo && d.comparison != nil {
		_, comparisonHit = d.comparison.Get(key)
	}

	return Lookup{Value: value, Hit: hit, ComparisonHit: comparisonHit}
}

// Put inserts key/value into the primary cache and, in ModeDemo, also into
// the comparison cache with the same value and TTL.
func (d *DualCache) Put(key string, value policy.CachedResponse) {
	if d.CurrentMode() == ModeDemo && d.comparison != nil {
		d.comparison.Put(key, value)
	}
	d.primary.Put(key, value)
}

// PutRaw writes directly to the primary (and, in demo mode, comparison)
// cache exactly like Put. It exists as a distinct entry point for the RESP
// SET command (spec §4.7): "bypasses proxy-specific admission rules" —
// those rules (Cache-Control parsing, max_body_size enforcement) live
// entirely in the out-of-scope HTTP front end, so at this layer PutRaw has
// no admission logic to skip; it is named separately so that layer has an
// unambiguous call site that can never be accidentally routed through
// future HTTP-side admission checks added to Put's callers.
func (d *DualCache) PutRaw(key string, value policy.CachedResponse) {
	d.Put(key, value)
}

// Remove deletes key from the primary cache, and from the comparison cache
// if one is configured, regardless of mode — a removal (e.g. RESP DEL)
// should never leave the shadow cache holding a stale entry the primary no
// longer has.
func (d *DualCache) Remove(key string) (policy.CachedResponse, bool) {
	if d.comparison != nil {
		d.comparison.Remove(key)
	}
	return d.primary.Remove(key)
}

// SetMode atomically switches between demo and bench mode. No cache data
// is dropped; the comparison cache's counters simply stop advancing until
// demo mode is re-entered (spec §4.7).
func (d *DualCache) SetMode(m Mode) {
	d.mode.Store(int32(m))
}

// CurrentMode reports the active mode.
func (d *DualCache) CurrentMode() Mode {
	return Mode(d.mode.Load())
}

// PrimaryStats returns the primary engine's aggregated statistics.
func (d *DualCache) PrimaryStats() policy.Stats {
	return d.primary.Stats()
}

// ComparisonStats returns the comparison engine's aggregated statistics
// and true, or a zero value and false if no comparison cache is configured.
func (d *DualCache) ComparisonStats() (policy.Stats, bool) {
	if d.comparison == nil {
		return policy.Stats{}, false
	}
	return d.comparison.Stats(), true
}

// HasComparison reports whether a comparison cache is configured.
func (d *DualCache) HasComparison() bool {
	return d.comparison != nil
}
