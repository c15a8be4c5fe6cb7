// Package oid generates fixed-width hexadecimal object ids for tagging
// loaded documents.
//
// An object id is difficult to collide but deliberately not idempotent: it
// embeds the current second-resolution timestamp and a random counter next
// to a truncated content hash of the seed, so the same seed legitimately
// produces different ids across calls. It is an id generator, not a
// fingerprint, and makes no cryptographic or global-uniqueness guarantees.
package oid

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math/rand"
	"sync"
	"time"
)

const (
	// seedCharset is the alphabet for synthesized seeds when the caller
	// provides none.
	seedCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// randomSeedLength is the length of a synthesized seed.
	randomSeedLength = 16
)

// Generator produces 32-character lower-case hex object ids.
// Safe for concurrent use by multiple goroutines.
//
// The random counter field intentionally uses math/rand: the goal is
// uniqueness, not unpredictability.
type Generator struct {
	mu  sync.Mutex
	now func() time.Time
	rnd *rand.Rand
}

// NewGenerator creates a Generator seeded from the wall clock.
func NewGenerator() *Generator {
	return &Generator{
		now: time.Now,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate maps seed (plus the current time and randomness) to a 32-hex-char
// identifier. An empty seed is replaced by a synthesized 16-character random
// alphanumeric seed. Generate always succeeds.
//
// Id layout (16 bytes, hex-encoded to 32 characters):
//
//	bytes  0..3   big-endian Unix time in seconds
//	bytes  4..11  first 8 bytes of SHA-256(seed)
//	bytes 12..15  random counter
func (g *Generator) Generate(seed string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if seed == "" {
		seed = g.randomSeed()
	}

	var id [16]byte
	binary.BigEndian.PutUint32(id[0:4], uint32(g.now().Unix()))

	sum := sha256.Sum256([]byte(seed))
	copy(id[4:12], sum[:8])

	binary.BigEndian.PutUint32(id[12:16], g.rnd.Uint32())

	return hex.EncodeToString(id[:])
}

func (g *Generator) randomSeed() string {
	buf := make([]byte, randomSeedLength)
	for i := range buf {
		buf[i] = seedCharset[g.rnd.Intn(len(seedCharset))]
	}
	return string(buf)
}
