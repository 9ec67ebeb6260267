package promexport

import (
	"strings"
	"testing"
	"time"

	"github.com/kclaka/colander/cache"
	"github.com/kclaka/colander/policy"
	"github.com/kclaka/colander/policy/lru"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func newLRUCache(capacity int) *cache.ShardedCache {
	return cache.New(capacity, func(c int) policy.CachePolicy { return lru.New(c) })
}

func TestCollector_ExposesFixedMetricNames(t *testing.T) {
	c := newLRUCache(64)
	c.Put("a", policy.CachedResponse{Status: 200, Body: []byte("x"), InsertedAt: time.Now(), TTL: time.Minute})
	c.Get("a")
	c.Get("missing")

	reg := prometheus.NewRegistry()
	coll := New(c)
	if err := reg.Register(coll); err != nil {
		t.Fatalf("register: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	names := map[string]*dto.MetricFamily{}
	for _, f := range families {
		names[f.GetName()] = f
	}

	for _, want := range []string{
		"colander_cache_hits_total",
		"colander_cache_misses_total",
		"colander_cache_keys",
		"colander_cache_evictions_total",
	} {
		if _, ok := names[want]; !ok {
			t.Fatalf("expected metric %s to be exported, got families: %v", want, keysOf(names))
		}
	}

	evictions := names["colander_cache_evictions_total"]
	if evictions.GetType().String() != "GAUGE" {
		t.Fatalf("expected colander_cache_evictions_total to be a gauge per spec, got %s", evictions.GetType())
	}

	hits := names["colander_cache_hits_total"]
	m := hits.GetMetric()[0]
	if m.GetCounter().GetValue() != 1 {
		t.Fatalf("expected 1 hit, got %v", m.GetCounter().GetValue())
	}
	if label := m.GetLabel()[0]; label.GetName() != "policy" || !strings.EqualFold(label.GetValue(), "LRU") {
		t.Fatalf("expected policy=LRU label, got %s=%s", label.GetName(), label.GetValue())
	}
}

func keysOf(m map[string]*dto.MetricFamily) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
