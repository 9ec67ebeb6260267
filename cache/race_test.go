package cache

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"
)

// TestShardedCache_ConcurrentMixedWorkload exercises spec §8's concurrency
// property: N threads each performing a mix of get/put against a shared
// capacity-bounded SIEVE cache, checking that hits+misses from Get calls
// match the number of Get calls actually issued, and that Len never exceeds
// capacity.
func TestShardedCache_ConcurrentMixedWorkload(t *testing.T) {
	const (
		goroutines     = 16
		opsPerRoutine  = 5000
		cacheCapacity  = 1000
		keyspaceWindow = 2000
	)

	c := newSieveCache(cacheCapacity)

	var getCalls atomic.Uint64
	var g errgroup.Group
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(int64(i) + 1))
			for j := 0; j < opsPerRoutine; j++ {
				key := fmt.Sprintf("k%d", rng.Intn(keyspaceWindow))
				if rng.Intn(2) == 0 {
					c.Put(key, resp("v"))
				} else {
					c.Get(key)
					getCalls.Add(1)
				}
				if c.Len() > cacheCapacity {
					return fmt.Errorf("cache Len() %d exceeded capacity %d", c.Len(), cacheCapacity)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	stats := c.Stats()
	if stats.Hits+stats.Misses != getCalls.Load() {
		t.Fatalf("hits(%d)+misses(%d) != get calls(%d)", stats.Hits, stats.Misses, getCalls.Load())
	}
	if c.Len() > cacheCapacity {
		t.Fatalf("final Len() %d exceeds capacity %d", c.Len(), cacheCapacity)
	}
}
