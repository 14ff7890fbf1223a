// Package protocol simulates the measurement rounds of the query
// protocol. Each round yields a linear constraint y on candidate secrets
// together with the oracle output observed alongside it.
package protocol

import (
	"simon-sim/bitvec"
	"simon-sim/internal/prng"
	"simon-sim/oracle"
)

// Constraint is one measurement outcome: Y acts as the linear functional
// c -> Y·c over GF(2); Value is f(x) for the input drawn in the same
// round and is kept only for post-hoc verification.
type Constraint struct {
	Y     uint `json:"y"`
	Value uint `json:"value"`
}

// Batch is an ordered sequence of constraints from independent rounds.
// Order does not affect solving; it is preserved for reproducibility.
type Batch []Constraint

// Vectors returns the y-vectors of the batch, in round order.
func (b Batch) Vectors() []uint {
	out := make([]uint, len(b))
	for i, c := range b {
		out[i] = c.Y
	}
	return out
}

// Sampler draws measurement rounds from one oracle. For a periodic
// oracle the orthogonal complement of the secret is enumerated once here
// and reused for every draw.
type Sampler struct {
	o *oracle.Oracle
	// complement holds {y : y·s == 0}, exactly 2^(n-1) values; nil for
	// injective oracles
	complement []uint
}

// NewSampler prepares a sampler for o.
func NewSampler(o *oracle.Oracle) *Sampler {
	sp := &Sampler{o: o}
	if o.Periodic() {
		n := o.N()
		s := o.Secret()
		comp := make([]uint, 0, 1<<uint(n-1))
		for y := uint(0); y < 1<<uint(n); y++ {
			if bitvec.Dot(y, s) == 0 {
				comp = append(comp, y)
			}
		}
		sp.complement = comp
	}
	return sp
}

// Round simulates one query/measurement round. The input x is uniform
// over the domain. For an injective oracle y is uniform over the full
// space; for a periodic oracle y is uniform over {y : y·s == 0}, the
// result of the destructive interference of all terms with y·s == 1.
// The two branches are deliberately not unified.
func (sp *Sampler) Round(src *prng.Stream) Constraint {
	n := sp.o.N()
	x := src.Bits(n)
	var y uint
	if sp.complement == nil {
		y = src.Bits(n)
	} else {
		y = sp.complement[src.UintN(uint(len(sp.complement)))]
	}
	return Constraint{Y: y, Value: sp.o.Eval(x)}
}

// Sample draws k independent rounds in order. The standard protocol uses
// k = n-1.
func (sp *Sampler) Sample(k int, src *prng.Stream) Batch {
	b := make(Batch, k)
	for i := 0; i < k; i++ {
		b[i] = sp.Round(src)
	}
	return b
}
