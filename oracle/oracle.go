// Package oracle builds the hidden black-box functions queried by the
// protocol: uniformly random bijections, and random functions that hide a
// nonzero XOR period s (f(x) = f(x^s), all other outputs distinct).
// Oracles are immutable after construction and safe for concurrent reads.
package oracle

import (
	"errors"
	"fmt"

	"simon-sim/bitvec"
	"simon-sim/internal/prng"
)

// ErrInvalidParameter is wrapped by every constructor rejection: n too
// small, m < n, an oracle table too large to allocate, a zero secret, or
// a secret outside the domain.
var ErrInvalidParameter = errors.New("invalid parameter")

// MaxN bounds the domain width; tables are O(2^m) and the solver is
// exhaustive, so widths beyond this are refused rather than allowed to
// degrade.
const MaxN = 20

// MaxM bounds the codomain width (the shuffled value pool is O(2^m)).
const MaxM = 24

// Oracle is a fixed function from n-bit inputs to m-bit outputs, backed
// by a table generated once at construction.
type Oracle struct {
	n        int
	m        int
	secret   uint
	periodic bool
	table    []uint
}

// NewInjective returns a uniformly random injection from [0, 2^n) into
// [0, 2^m); with m == n it is a full random permutation. Deterministic
// given the stream's seed.
func NewInjective(n, m int, src *prng.Stream) (*Oracle, error) {
	if err := checkWidths(n, m); err != nil {
		return nil, err
	}
	pool := valuePool(m, src)
	table := make([]uint, 1<<uint(n))
	copy(table, pool)
	return &Oracle{n: n, m: m, table: table}, nil
}

// NewPeriodic returns a random function hiding the nonzero period s:
// table[x] == table[x^s] for every x, and the induced map on orbit
// representatives {x, x^s} is injective.
func NewPeriodic(n, m int, s uint, src *prng.Stream) (*Oracle, error) {
	if err := checkWidths(n, m); err != nil {
		return nil, err
	}
	if s == 0 {
		return nil, fmt.Errorf("oracle: secret must be nonzero: %w", ErrInvalidParameter)
	}
	if s >= 1<<uint(n) {
		return nil, fmt.Errorf("oracle: secret %d outside n=%d domain: %w", s, n, ErrInvalidParameter)
	}
	pool := valuePool(m, src)
	size := 1 << uint(n)
	table := make([]uint, size)
	fixed := make([]bool, size)
	next := 0
	for x := 0; x < size; x++ {
		if fixed[x] {
			continue
		}
		// x is the smaller element of its orbit; both members share the
		// next pool value
		v := pool[next]
		next++
		table[x] = v
		fixed[x] = true
		table[x^int(s)] = v
		fixed[x^int(s)] = true
	}
	return &Oracle{n: n, m: m, secret: s, periodic: true, table: table}, nil
}

// Eval returns f(x). Inputs are masked to n bits.
func (o *Oracle) Eval(x uint) uint {
	return o.table[x&bitvec.Mask(o.n)]
}

// N returns the input width in bits.
func (o *Oracle) N() int { return o.n }

// M returns the output width in bits.
func (o *Oracle) M() int { return o.m }

// Periodic reports whether the oracle hides a period.
func (o *Oracle) Periodic() bool { return o.periodic }

// Secret returns the hidden period, or 0 for an injective oracle.
func (o *Oracle) Secret() uint { return o.secret }

func checkWidths(n, m int) error {
	if n <= 1 {
		return fmt.Errorf("oracle: n must be at least 2, got %d: %w", n, ErrInvalidParameter)
	}
	if n > MaxN {
		return fmt.Errorf("oracle: n=%d exceeds limit %d: %w", n, MaxN, ErrInvalidParameter)
	}
	if m < n {
		return fmt.Errorf("oracle: m=%d smaller than n=%d: %w", m, n, ErrInvalidParameter)
	}
	if m > MaxM {
		return fmt.Errorf("oracle: m=%d exceeds limit %d: %w", m, MaxM, ErrInvalidParameter)
	}
	return nil
}

// valuePool returns all 2^m codomain values in uniformly random order.
func valuePool(m int, src *prng.Stream) []uint {
	pool := make([]uint, 1<<uint(m))
	for i := range pool {
		pool[i] = uint(i)
	}
	src.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool
}
