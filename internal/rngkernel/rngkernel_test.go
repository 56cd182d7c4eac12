package rngkernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandForIsDeterministic(t *testing.T) {
	worker := NewWorkerRNG(42, "users", "LOAD00000001.parquet")

	a := worker.RandFor("a@x.com").Int63()
	b := worker.RandFor("a@x.com").Int63()

	assert.Equal(t, a, b, "same (seed, table, file, value) must yield the same stream")
}

func TestRandForDiffersAcrossValues(t *testing.T) {
	worker := NewWorkerRNG(42, "users", "LOAD00000001.parquet")

	a := worker.RandFor("a@x.com").Int63()
	b := worker.RandFor("b@x.com").Int63()

	assert.NotEqual(t, a, b)
}

func TestRandForDiffersAcrossFiles(t *testing.T) {
	w1 := NewWorkerRNG(42, "users", "LOAD00000001.parquet")
	w2 := NewWorkerRNG(42, "users", "LOAD00000002.parquet")

	a := w1.RandFor("a@x.com").Int63()
	b := w2.RandFor("a@x.com").Int63()

	assert.NotEqual(t, a, b)
}

func TestWorkerRNGSameInputsSameSeed(t *testing.T) {
	w1 := NewWorkerRNG(7, "orders", "cdc-1.parquet")
	w2 := NewWorkerRNG(7, "orders", "cdc-1.parquet")

	require.Equal(t, w1.seed, w2.seed)
}
