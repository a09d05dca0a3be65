package rng_test

import (
	"testing"

	"github.com/startrader/startrader/internal/game/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCryptoSource_IntnRange(t *testing.T) {
	src := rng.NewCryptoSource()
	for i := 0; i < 100; i++ {
		v := src.Intn(44)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 44)
	}
}

func TestCryptoSource_Float64Range(t *testing.T) {
	src := rng.NewCryptoSource()
	for i := 0; i < 100; i++ {
		v := src.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestCryptoSource_IntnPanicsOnNonPositive(t *testing.T) {
	src := rng.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
	assert.Panics(t, func() { src.Intn(-3) })
}

func TestSeededSource_Deterministic(t *testing.T) {
	a := rng.NewSeededSource(42)
	b := rng.NewSeededSource(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestSeededSource_DifferentSeedsDiverge(t *testing.T) {
	a := rng.NewSeededSource(1)
	b := rng.NewSeededSource(2)
	same := true
	for i := 0; i < 20; i++ {
		if a.Intn(1 << 30) != b.Intn(1<<30) {
			same = false
		}
	}
	assert.False(t, same)
}

func TestSeededSource_Property_IntnInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		n := rapid.IntRange(1, 10000).Draw(rt, "n")
		src := rng.NewSeededSource(seed)
		v := src.Intn(n)
		assert.GreaterOrEqual(rt, v, 0)
		assert.Less(rt, v, n)
	})
}

func TestChance(t *testing.T) {
	src := &rng.Fixed{Floats: []float64{0.4}}
	assert.True(t, rng.Chance(src, 0.5))
	src = &rng.Fixed{Floats: []float64{0.6}}
	assert.False(t, rng.Chance(src, 0.5))
}

func TestChance_Extremes(t *testing.T) {
	src := rng.NewSeededSource(7)
	assert.False(t, rng.Chance(src, 0))
	assert.False(t, rng.Chance(src, -1))
	assert.True(t, rng.Chance(src, 1))
	assert.True(t, rng.Chance(src, 2))
}

func TestFixed_ReplaysAndClamps(t *testing.T) {
	f := &rng.Fixed{Ints: []int{5, 99}, Floats: []float64{0.25, 1.5}}
	assert.Equal(t, 5, f.Intn(10))
	assert.Equal(t, 9, f.Intn(10)) // 99 clamps to n-1
	assert.Equal(t, 5, f.Intn(10)) // wraps

	require.Equal(t, 0.25, f.Float64())
	assert.Less(t, f.Float64(), 1.0) // 1.5 clamps below 1
}
