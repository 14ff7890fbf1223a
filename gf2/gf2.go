// Package gf2 solves the linear systems the protocol produces. Vectors
// in GF(2)^n are packed into single uint words (bit i = coordinate i),
// so row operations are plain XOR and every computation is exact.
package gf2

import (
	"sort"

	"simon-sim/bitvec"
)

// Rank returns the rank over GF(2) of the given n-bit vectors, by
// Gaussian elimination on word-packed rows.
func Rank(vecs []uint, n int) int {
	rows := append([]uint(nil), vecs...)
	r := 0
	for col := n - 1; col >= 0 && r < len(rows); col-- {
		bit := uint(1) << uint(col)
		pivot := -1
		for i := r; i < len(rows); i++ {
			if rows[i]&bit != 0 {
				pivot = i
				break
			}
		}
		if pivot < 0 {
			continue
		}
		rows[r], rows[pivot] = rows[pivot], rows[r]
		for i := r + 1; i < len(rows); i++ {
			if rows[i]&bit != 0 {
				rows[i] ^= rows[r]
			}
		}
		r++
	}
	return r
}

// Independent reports whether the vectors are linearly independent over
// GF(2). It is a pure function of its input.
func Independent(vecs []uint, n int) bool {
	return Rank(vecs, n) == len(vecs)
}

// independentBrute is the subset-enumeration reference: vectors are
// dependent iff some XOR of a subset of the others reproduces one of
// them (the empty subset catching an explicit zero vector). Exponential
// in the batch size; kept for cross-checking Rank in tests.
func independentBrute(vecs []uint) bool {
	for i, v := range vecs {
		rest := make([]uint, 0, len(vecs)-1)
		rest = append(rest, vecs[:i]...)
		rest = append(rest, vecs[i+1:]...)
		for mask := 0; mask < 1<<uint(len(rest)); mask++ {
			var acc uint
			for j, w := range rest {
				if mask>>uint(j)&1 == 1 {
					acc ^= w
				}
			}
			if acc == v {
				return false
			}
		}
	}
	return true
}

// Solve returns every candidate c in [0, 2^n) with y·c == 0 for all y in
// vecs, in ascending order; 0 is always first. An empty batch yields the
// full space. Exhaustive scan over all 2^n candidates, which is the
// point of capping n at oracle.MaxN; SolveNullSpace is the algebraic
// alternative for anyone raising that cap.
func Solve(vecs []uint, n int) []uint {
	size := uint(1) << uint(n)
	out := make([]uint, 0, 2)
	for c := uint(0); c < size; c++ {
		ok := true
		for _, y := range vecs {
			if bitvec.Dot(y, c) != 0 {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	return out
}

// SolveNullSpace computes the same solution set as Solve by reducing the
// batch to reduced row-echelon form, reading off a null-space basis, and
// enumerating its span. Polynomial in n plus output size.
func SolveNullSpace(vecs []uint, n int) []uint {
	rows := append([]uint(nil), vecs...)
	var pivotCols []int
	r := 0
	for col := n - 1; col >= 0 && r < len(rows); col-- {
		bit := uint(1) << uint(col)
		pivot := -1
		for i := r; i < len(rows); i++ {
			if rows[i]&bit != 0 {
				pivot = i
				break
			}
		}
		if pivot < 0 {
			continue
		}
		rows[r], rows[pivot] = rows[pivot], rows[r]
		for i := 0; i < len(rows); i++ {
			if i != r && rows[i]&bit != 0 {
				rows[i] ^= rows[r]
			}
		}
		pivotCols = append(pivotCols, col)
		r++
	}

	isPivot := make([]bool, n)
	for _, c := range pivotCols {
		isPivot[c] = true
	}
	// one basis vector per free column: set that coordinate, then satisfy
	// each pivot row
	var basis []uint
	for col := 0; col < n; col++ {
		if isPivot[col] {
			continue
		}
		v := uint(1) << uint(col)
		for i, pc := range pivotCols {
			if rows[i]&(1<<uint(col)) != 0 {
				v |= 1 << uint(pc)
			}
		}
		basis = append(basis, v)
	}

	out := make([]uint, 0, 1<<uint(len(basis)))
	for mask := 0; mask < 1<<uint(len(basis)); mask++ {
		var c uint
		for j, b := range basis {
			if mask>>uint(j)&1 == 1 {
				c ^= b
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
