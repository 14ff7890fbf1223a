// Package bitvec treats uint values in [0, 2^n) as length-n vectors over
// GF(2), bit i of the word being coordinate i of the vector.
package bitvec

import "math/bits"

// Dot returns the GF(2) inner product of a and b: the parity of their
// bitwise AND.
func Dot(a, b uint) uint {
	return uint(bits.OnesCount(a&b) & 1)
}

// Mask returns the n-bit mask 2^n - 1.
func Mask(n int) uint {
	return 1<<uint(n) - 1
}

// Bits expands the n low bits of x, index i holding bit i.
func Bits(x uint, n int) []uint8 {
	out := make([]uint8, n)
	for i := 0; i < n; i++ {
		out[i] = uint8(x >> uint(i) & 1)
	}
	return out
}

// FromBits packs a bit slice produced by Bits back into a uint. Any
// nonzero entry counts as a set bit.
func FromBits(b []uint8) uint {
	var x uint
	for i, v := range b {
		if v != 0 {
			x |= 1 << uint(i)
		}
	}
	return x
}
