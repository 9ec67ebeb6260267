package lru

import (
	"testing"
	"time"

	"github.com/kclaka/colander/policy"
)

func resp(body string) policy.CachedResponse {
	return policy.CachedResponse{
		Status:      200,
		Body:        []byte(body),
		ContentType: "text/plain",
		InsertedAt:  time.Now(),
		TTL:         time.Minute,
	}
}

func respTTL(body string, ttl time.Duration) policy.CachedResponse {
	r := resp(body)
	r.TTL = ttl
	return r
}

func TestLRU_BasicInsertAndGet(t *testing.T) {
	p := New(4)
	p.Put("a", resp("1"))
	v, ok := p.Get("a")
	if !ok || string(v.Body) != "1" {
		t.Fatalf("expected hit with body 1, got ok=%v v=%v", ok, v)
	}
}

func TestLRU_EvictsLRUOnOverflow(t *testing.T) {
	p := New(2)
	p.Put("a", resp("1"))
	p.Put("b", resp("2"))
	p.Put("c", resp("3")) // a is LRU, should be evicted

	if _, ok := p.Get("a"); ok {
		t.Fatal("expected a to be evicted")
	}
	if _, ok := p.Get("b"); !ok {
		t.Fatal("expected b to survive")
	}
	if _, ok := p.Get("c"); !ok {
		t.Fatal("expected c to survive")
	}
}

func TestLRU_PromotionOnHit(t *testing.T) {
	p := New(2)
	p.Put("a", resp("1"))
	p.Put("b", resp("2"))
	p.Get("a") // promotes a, leaving b as LRU
	p.Put("c", resp("3"))

	if _, ok := p.Get("b"); ok {
		t.Fatal("expected b to be evicted after losing recency")
	}
	if _, ok := p.Get("a"); !ok {
		t.Fatal("expected a to survive due to promotion")
	}
}

func TestLRU_ExplicitRemove(t *testing.T) {
	p := New(2)
	p.Put("a", resp("1"))
	v, ok := p.Remove("a")
	if !ok || string(v.Body) != "1" {
		t.Fatalf("expected removed value, got ok=%v v=%v", ok, v)
	}
	if p.Len() != 0 {
		t.Fatalf("expected Len()==0, got %d", p.Len())
	}
}

func TestLRU_TTLExpiration(t *testing.T) {
	p := New(4)
	p.Put("a", respTTL("1", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	if _, ok := p.Get("a"); ok {
		t.Fatal("expected expired entry to miss")
	}
	if p.Len() != 0 {
		t.Fatalf("expected expired entry removed, Len()=%d", p.Len())
	}
}

func TestLRU_StatsTracking(t *testing.T) {
	p := New(2)
	p.Put("a", resp("1"))
	p.Put("b", resp("2"))
	p.Get("a")
	p.Get("missing")
	p.Put("c", resp("3")) // evicts b

	stats := p.Stats()
	if stats.Hits != 1 {
		t.Fatalf("expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Fatalf("expected 1 miss, got %d", stats.Misses)
	}
	if stats.Evictions != 1 {
		t.Fatalf("expected 1 eviction, got %d", stats.Evictions)
	}
}

func TestLRU_ReinsertSameKey(t *testing.T) {
	p := New(2)
	p.Put("a", resp("1"))
	p.Put("b", resp("2"))

	evicted := p.Put("a", resp("1-updated"))
	if evicted {
		t.Fatal("reinsert of existing key must not evict")
	}

	v, ok := p.Get("a")
	if !ok || string(v.Body) != "1-updated" {
		t.Fatalf("expected updated value, got ok=%v v=%v", ok, v)
	}
	if p.Len() != 2 {
		t.Fatalf("expected Len()==2, got %d", p.Len())
	}
}

func TestLRU_ClearResetsState(t *testing.T) {
	p := New(2)
	p.Put("a", resp("1"))
	p.Get("a")
	p.Clear()

	if p.Len() != 0 {
		t.Fatalf("expected Len()==0 after Clear, got %d", p.Len())
	}
	stats := p.Stats()
	if stats.Hits != 0 || stats.Misses != 0 || stats.Evictions != 0 {
		t.Fatalf("expected zeroed stats after Clear, got %+v", stats)
	}
	if _, ok := p.Get("a"); ok {
		t.Fatal("expected a gone after Clear")
	}
}
