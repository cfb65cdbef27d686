package sandbox

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// mulberry32 is a 32-bit deterministic generator. Every value an instance
// observes through math_random is a pure function of the creation seed, so
// recorded sessions replay bit-identically from the seed alone.
type mulberry32 struct {
	state uint32
}

func newMulberry32(seed uint32) *mulberry32 {
	return &mulberry32{state: seed}
}

// Next advances the generator and returns a value in [0, 1).
func (m *mulberry32) Next() float64 {
	m.state += 0x6D2B79F5
	z := m.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return float64(z^(z>>14)) / 4294967296.0
}

// NewSeed draws a fresh 32-bit seed from the OS entropy source.
func NewSeed() (uint32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("read seed entropy: %w", err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}
