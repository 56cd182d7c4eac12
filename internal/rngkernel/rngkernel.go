// Package rngkernel derives reproducible, per-value 256-bit seeds and the
// PRNGs built from them. A value's seed is a pure function of the run
// seed, the (table, file) the worker was built for, and the original
// value: the same inputs always yield the same seed, independent of
// iteration order within a frame.
package rngkernel

import (
	"encoding/binary"
	"io"
	"math/rand"

	"github.com/dchest/siphash"
	"lukechampine.com/frand"
)

// chachaSource adapts a frand ChaCha20-backed io.Reader into a math/rand.Source64
// so the rest of the kernel can hand out an ordinary *rand.Rand to callers
// (including gofakeit's injectable rand source) without leaking the
// underlying CSPRNG type.
type chachaSource struct {
	r io.Reader
}

func newChachaSource(seed []byte) *chachaSource {
	return &chachaSource{r: frand.NewCustom(seed, 1024, 20)}
}

func (s *chachaSource) readUint64() uint64 {
	var buf [8]byte
	_, _ = io.ReadFull(s.r, buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

func (s *chachaSource) Int63() int64 {
	return int64(s.readUint64() >> 1)
}

func (s *chachaSource) Uint64() uint64 {
	return s.readUint64()
}

func (s *chachaSource) Seed(int64) {
	// The source is seeded once at construction from K(S, v); reseeding
	// through the math/rand.Source interface is intentionally a no-op.
}

// WorkerRNG is the per-(table, file) random source that breaks patterns
// across files while staying reproducible for identical inputs: it is
// seeded once per file from the run seed combined with the table/file
// identity, then cloned and combined with each value's own seed below.
type WorkerRNG struct {
	seed [32]byte
}

// NewWorkerRNG derives a worker RNG seed from the run seed and a
// (table, file) discriminator, so repeated runs over the same file
// produce the same sequence while different files diverge.
func NewWorkerRNG(runSeed uint64, table, file string) *WorkerRNG {
	k0 := runSeed
	k1 := siphash.Hash(runSeed, 0, []byte(table+"/"+file))
	digest := siphash.Hash(k0, k1, []byte(table+"/"+file))

	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[0:8], digest)
	binary.LittleEndian.PutUint64(seed[8:16], siphash.Hash(k1, k0, seed[0:8]))
	binary.LittleEndian.PutUint64(seed[16:24], siphash.Hash(digest, k0, seed[8:16]))
	binary.LittleEndian.PutUint64(seed[24:32], siphash.Hash(digest, k1, seed[16:24]))

	return &WorkerRNG{seed: seed}
}

// Rand returns a fresh *rand.Rand seeded from the worker's own state, used
// directly for inputs that skip per-value seeding (null values). Its
// stream is reproducible for the same run seed, table and file, so such
// outputs depend on row position within the file rather than on the value.
func (w *WorkerRNG) Rand() *rand.Rand {
	return rand.New(newChachaSource(w.seed[:]))
}

// ValueSeed derives the reproducible 256-bit seed K(S, v) for one input
// value: a SipHash-keyed stream from v is expanded to 32 bytes, combined
// with 16 bytes drawn from the worker's own state, and the halves are
// concatenated into the final seed.
func (w *WorkerRNG) ValueSeed(v string) [32]byte {
	k0 := siphash.Hash(0x526e67, 0x4b65726e, []byte(v))
	k1 := siphash.Hash(k0, 0x76616c7565, []byte(v))

	var valueSeed [32]byte
	binary.LittleEndian.PutUint64(valueSeed[0:8], k0)
	binary.LittleEndian.PutUint64(valueSeed[8:16], k1)
	binary.LittleEndian.PutUint64(valueSeed[16:24], siphash.Hash(k1, k0, valueSeed[0:16]))
	binary.LittleEndian.PutUint64(valueSeed[24:32], siphash.Hash(k0, k1, valueSeed[8:24]))

	var combined [32]byte
	copy(combined[0:16], valueSeed[0:16])
	copy(combined[16:32], w.seed[0:16])
	return combined
}

// RandFor returns the *rand.Rand instantiated from K(S, v) for the given
// input value — the one-value-one-generator contract the Faker
// transformer relies on.
func (w *WorkerRNG) RandFor(v string) *rand.Rand {
	seed := w.ValueSeed(v)
	return rand.New(newChachaSource(seed[:]))
}
