// Package util contains internal helpers (hashing, sharding, padding)
// shared by the cache package and the policy engines.
//
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// processSeed is generated once per process so that key→shard hashing
// cannot be predicted by an adversary who knows the hash function but not
// this process's seed (spec §4.6: "DoS-resistant non-cryptographic hash
// seeded per-process"). The Rust original reaches for ahash's
// RandomState::with_seeds for the same reason; here the seed's eight bytes
// are hashed ahead of the key, so which keys share a shard depends on the
// seed and not only on the key.
var processSeed = randomSeed()

func randomSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing to supply 8 bytes indicates a broken host
		// entropy source; there is nothing sane to degrade to.
		panic("util: failed to read process seed: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// HashKey hashes a cache key for shard routing. Fast (xxhash64) and
// unpredictable (process seed), never cryptographically secure.
func HashKey(key string) uint64 {
	var seed [8]byte
	binary.LittleEndian.PutUint64(seed[:], processSeed)
	d := xxhash.New()
	d.Write(seed[:])
	d.WriteString(key)
	return d.Sum64()
}
