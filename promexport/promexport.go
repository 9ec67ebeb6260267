// Package promexport exports cache statistics as Prometheus metrics.
//
// Grounded on the teacher's metrics/prom package, but deliberately inverted
// from push to pull: the teacher's prom.Adapter implements cache.Metrics and
// calls Inc()/Set() inline on every Hit/Miss/Evict, which is exactly the
// per-operation overhead spec §5's locking discipline tries to avoid on
// SIEVE's read-locked hit path (a relaxed atomic is cheap; an extra
// Prometheus counter increment on every hit is not, and would sit behind
// the same read lock). Collector instead implements prometheus.Collector
// directly and reads ShardedCache.Stats() fresh at scrape time, so the hot
// path never touches a Prometheus type at all.
//
// Metric names and the "policy" label are fixed by spec §6 so that
// downstream Prometheus/Grafana wiring built against the original
// implementation keeps working unchanged.
package promexport

import (
	"github.com/kclaka/colander/policy"
	"github.com/prometheus/client_golang/prometheus"
)

// Source is anything a Collector can scrape; cache.ShardedCache satisfies
// it directly via its Stats() method.
type Source interface {
	Stats() policy.Stats
}

// Collector adapts one or more Source values (typically a DualCache's
// primary and comparison ShardedCache) into the four metrics spec §6
// mandates. Each Source is scraped independently; its Stats().Name becomes
// the "policy" label value.
type Collector struct {
	sources []Source

	hits      *prometheus.Desc
	misses    *prometheus.Desc
	keys      *prometheus.Desc
	evictions *prometheus.Desc
}

// New constructs a Collector over the given sources. Register it with a
// prometheus.Registerer (promhttp.Handler or a custom registry) to expose
// /metrics.
func New(sources ...Source) *Collector {
	return &Collector{
		sources: sources,
		hits: prometheus.NewDesc(
			"colander_cache_hits_total", "Total cache hits.", []string{"policy"}, nil,
		),
		misses: prometheus.NewDesc(
			"colander_cache_misses_total", "Total cache misses.", []string{"policy"}, nil,
		),
		keys: prometheus.NewDesc(
			"colander_cache_keys", "Number of resident keys.", []string{"policy"}, nil,
		),
		evictions: prometheus.NewDesc(
			"colander_cache_evictions_total", "Total cache evictions.", []string{"policy"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.keys
	ch <- c.evictions
}

// Collect implements prometheus.Collector, reading each source's live
// Stats() at scrape time — no counters are mutated on the cache's hot path.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, s := range c.sources {
		st := s.Stats()
		ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(st.Hits), st.Name)
		ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(st.Misses), st.Name)
		ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(st.Size), st.Name)
		// Evictions is specified as a gauge (spec §6), not a counter,
		// despite being semantically monotonic — honored as specified.
		ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.GaugeValue, float64(st.Evictions), st.Name)
	}
}

var _ prometheus.Collector = (*Collector)(nil)
