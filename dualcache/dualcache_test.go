package dualcache

import (
	"testing"
	"time"

	"github.com/kclaka/colander/cache"
	"github.com/kclaka/colander/policy"
	"github.com/kclaka/colander/policy/lru"
	"github.com/kclaka/colander/policy/sieve"
)

func resp(body string) policy.CachedResponse {
	return policy.CachedResponse{Status: 200, Body: []byte(body), InsertedAt: time.Now(), TTL: time.Minute}
}

func newCache(engine func(int) policy.CachePolicy) *cache.ShardedCache {
	return cache.New(640, engine)
}

func TestDualCache_DemoModeFansOutPutAndGet(t *testing.T) {
	primary := newCache(func(c int) policy.CachePolicy { return sieve.New(c) })
	comparison := newCache(func(c int) policy.CachePolicy { return lru.New(c) })
	d := New(primary, comparison)

	if d.CurrentMode() != ModeDemo {
		t.Fatal("expected DualCache to start in demo mode")
	}

	d.Put("a", resp("1"))

	lookup := d.Get("a")
	if !lookup.Hit || string(lookup.Value.Body) != "1" {
		t.Fatalf("expected primary hit, got %+v", lookup)
	}
	if !lookup.ComparisonHit {
		t.Fatal("expected comparison cache to also have the key in demo mode")
	}
}

func TestDualCache_BenchModeSkipsComparison(t *testing.T) {
	primary := newCache(func(c int) policy.CachePolicy { return sieve.New(c) })
	comparison := newCache(func(c int) policy.CachePolicy { return lru.New(c) })
	d := New(primary, comparison)
	d.SetMode(ModeBench)

	d.Put("a", resp("1"))
	lookup := d.Get("a")

	if !lookup.Hit {
		t.Fatal("expected primary hit")
	}
	if lookup.ComparisonHit {
		t.Fatal("expected comparison lookup to be skipped entirely in bench mode")
	}

	compStats, _ := d.ComparisonStats()
	if compStats.Hits != 0 || compStats.Misses != 0 {
		t.Fatalf("expected comparison counters untouched in bench mode, got %+v", compStats)
	}
}

func TestDualCache_StatsParity(t *testing.T) {
	primary := newCache(func(c int) policy.CachePolicy { return sieve.New(c) })
	comparison := newCache(func(c int) policy.CachePolicy { return lru.New(c) })
	d := New(primary, comparison)

	keys := []string{"a", "b", "c", "a", "missing", "b"}
	for _, k := range keys {
		if k != "missing" {
			d.Put(k, resp(k))
		}
	}
	var totalGets int
	for _, k := range keys {
		d.Get(k)
		totalGets++
	}

	primaryStats := d.PrimaryStats()
	comparisonStats, ok := d.ComparisonStats()
	if !ok {
		t.Fatal("expected comparison stats to be available")
	}

	if int(primaryStats.Hits+primaryStats.Misses) != totalGets {
		t.Fatalf("primary hits+misses (%d) != total gets (%d)", primaryStats.Hits+primaryStats.Misses, totalGets)
	}
	if primaryStats.Hits+primaryStats.Misses != comparisonStats.Hits+comparisonStats.Misses {
		t.Fatalf("primary and comparison total lookups diverged: %d vs %d",
			primaryStats.Hits+primaryStats.Misses, comparisonStats.Hits+comparisonStats.Misses)
	}
}

func TestDualCache_NoComparisonConfigured(t *testing.T) {
	primary := newCache(func(c int) policy.CachePolicy { return sieve.New(c) })
	d := New(primary, nil)

	if d.HasComparison() {
		t.Fatal("expected no comparison cache")
	}
	d.Put("a", resp("1"))
	lookup := d.Get("a")
	if !lookup.Hit || lookup.ComparisonHit {
		t.Fatalf("expected primary-only hit, got %+v", lookup)
	}
	if _, ok := d.ComparisonStats(); ok {
		t.Fatal("expected ComparisonStats ok=false when unconfigured")
	}
}

func TestDualCache_RemoveClearsBothCaches(t *testing.T) {
	primary := newCache(func(c int) policy.CachePolicy { return sieve.New(c) })
	comparison := newCache(func(c int) policy.CachePolicy { return lru.New(c) })
	d := New(primary, comparison)
	d.SetMode(ModeBench) // even in bench mode, Remove must still clear comparison

	d.Put("a", resp("1")) // bench mode: only primary populated
	comparison.Put("a", resp("1"))

	d.Remove("a")

	if _, ok := primary.Get("a"); ok {
		t.Fatal("expected primary entry removed")
	}
	if _, ok := comparison.Get("a"); ok {
		t.Fatal("expected comparison entry removed")
	}
}
