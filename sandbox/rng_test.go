package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulberry32Deterministic(t *testing.T) {
	a := newMulberry32(0xDEADBEEF)
	b := newMulberry32(0xDEADBEEF)

	for i := 0; i < 1000; i++ {
		av, bv := a.Next(), b.Next()
		require.Equal(t, av, bv, "sequence diverged at step %d", i)
		require.GreaterOrEqual(t, av, 0.0)
		require.Less(t, av, 1.0)
	}
}

func TestMulberry32SeedsDiffer(t *testing.T) {
	a := newMulberry32(1)
	b := newMulberry32(2)

	diverged := false
	for i := 0; i < 16; i++ {
		if a.Next() != b.Next() {
			diverged = true
			break
		}
	}
	assert.True(t, diverged, "distinct seeds must not share a sequence")
}

func TestMulberry32ZeroSeed(t *testing.T) {
	g := newMulberry32(0)
	for i := 0; i < 100; i++ {
		v := g.Next()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestNewSeed(t *testing.T) {
	seen := make(map[uint32]bool)
	for i := 0; i < 8; i++ {
		seed, err := NewSeed()
		require.NoError(t, err)
		seen[seed] = true
	}
	// Eight truly random draws colliding down to one value is not credible.
	assert.Greater(t, len(seen), 1)
}
