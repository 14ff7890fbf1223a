// Package prng provides deterministic random streams for the simulator.
// A Stream seeded with the same bytes always produces the same draw
// sequence; labeled child streams are independent of the parent and of
// each other, which is what keeps parallel trials reproducible.
package prng

import (
	"io"
	"math/bits"

	"github.com/tuneinsight/lattigo/v4/utils"
	"golang.org/x/crypto/sha3"
)

// Stream is a deterministic pseudorandom byte stream with uniform draw
// helpers. The zero value is not usable; construct with NewStream or
// NewRandomStream.
type Stream struct {
	seed []byte
	src  utils.PRNG
}

// NewStream returns a stream keyed by seed. Seeds of any length are
// accepted; they are absorbed into a 32-byte key via SHAKE-128.
func NewStream(seed []byte) *Stream {
	cp := append([]byte(nil), seed...)
	return &Stream{seed: cp, src: keyedPRNG(cp)}
}

// NewRandomStream returns a stream seeded from fresh entropy. The drawn
// seed is retained so child streams can still be derived.
func NewRandomStream() *Stream {
	entropy, err := utils.NewPRNG()
	if err != nil {
		panic("prng: system entropy unavailable")
	}
	seed := make([]byte, 32)
	if _, err := io.ReadFull(entropy, seed); err != nil {
		panic("prng: system entropy unavailable")
	}
	return NewStream(seed)
}

// Child derives an independent stream from this stream's seed and the
// given label. Equal (seed, label) pairs always give equal streams, and
// deriving a child does not advance the parent.
func (s *Stream) Child(label string) *Stream {
	h := sha3.NewShake128()
	h.Write(s.seed)
	h.Write([]byte{0})
	h.Write([]byte(label))
	seed := make([]byte, 32)
	if _, err := io.ReadFull(h, seed); err != nil {
		panic("prng: shake read failed")
	}
	return NewStream(seed)
}

// Uint64 returns the next 8 stream bytes as a little-endian uint64.
func (s *Stream) Uint64() uint64 {
	var buf [8]byte
	if _, err := io.ReadFull(s.src, buf[:]); err != nil {
		panic(err)
	}
	return uint64(buf[0]) | uint64(buf[1])<<8 | uint64(buf[2])<<16 | uint64(buf[3])<<24 |
		uint64(buf[4])<<32 | uint64(buf[5])<<40 | uint64(buf[6])<<48 | uint64(buf[7])<<56
}

// UintN returns a uniform value in [0, bound). It panics if bound is 0.
func (s *Stream) UintN(bound uint) uint {
	if bound == 0 {
		panic("prng: zero bound")
	}
	// rejection sampling against the smallest covering bit mask, so the
	// result is exactly uniform
	mask := uint64(1)<<uint(bits.Len(uint(bound-1))) - 1
	for {
		v := s.Uint64() & mask
		if uint(v) < bound {
			return uint(v)
		}
	}
}

// Bits returns a uniform n-bit value, i.e. uniform in [0, 2^n).
func (s *Stream) Bits(n int) uint {
	if n <= 0 || n >= 64 {
		panic("prng: bit width out of range")
	}
	return uint(s.Uint64() & (1<<uint(n) - 1))
}

// Shuffle performs a Fisher-Yates shuffle of n elements through swap.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := int(s.UintN(uint(i + 1)))
		swap(i, j)
	}
}

// keyedPRNG absorbs seed into a fixed-width key and opens the stream.
func keyedPRNG(seed []byte) utils.PRNG {
	h := sha3.NewShake128()
	h.Write(seed)
	key := make([]byte, 32)
	if _, err := io.ReadFull(h, key); err != nil {
		panic("prng: shake read failed")
	}
	// NewKeyedPRNG only fails for oversized keys; ours is fixed at 32 bytes.
	p, _ := utils.NewKeyedPRNG(key)
	return p
}
