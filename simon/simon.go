// Package simon runs the full protocol end to end: build an oracle,
// sample n-1 measurement rounds, solve the resulting GF(2) system, and
// verify the surviving candidates against the oracle itself.
package simon

import (
	"fmt"

	"simon-sim/gf2"
	"simon-sim/internal/prng"
	"simon-sim/oracle"
	"simon-sim/protocol"
)

// Config selects the oracle for one run. M defaults to N when zero. In
// periodic mode a zero Secret means one is drawn uniformly from the
// nonzero values.
type Config struct {
	N        int
	M        int
	Periodic bool
	Secret   uint
}

// Result is the complete outcome of one run. Rank deficiency and
// spurious candidates are reported here as data, never as errors.
type Result struct {
	N           int            `json:"n"`
	M           int            `json:"m"`
	Periodic    bool           `json:"periodic"`
	Secret      uint           `json:"secret,omitempty"`
	Batch       protocol.Batch `json:"batch"`
	Independent bool           `json:"independent"`
	// Solutions is every candidate consistent with the batch, ascending,
	// 0 first.
	Solutions []uint `json:"solutions"`
	// Verified holds the nonzero candidates that pass the oracle check
	// f(c) == f(0).
	Verified []uint `json:"verified"`
	// Recovered is the secret when verification singles out exactly one
	// candidate; 0 otherwise.
	Recovered uint `json:"recovered"`
}

// Run executes one full protocol run against a fresh oracle.
func Run(cfg Config, src *prng.Stream) (*Result, error) {
	m := cfg.M
	if m == 0 {
		m = cfg.N
	}
	var o *oracle.Oracle
	var err error
	if cfg.Periodic {
		s := cfg.Secret
		if s == 0 {
			if cfg.N <= 1 || cfg.N > oracle.MaxN {
				return nil, fmt.Errorf("simon: n=%d out of range: %w", cfg.N, oracle.ErrInvalidParameter)
			}
			s = 1 + src.UintN(1<<uint(cfg.N)-1)
		}
		o, err = oracle.NewPeriodic(cfg.N, m, s, src)
	} else {
		o, err = oracle.NewInjective(cfg.N, m, src)
	}
	if err != nil {
		return nil, err
	}

	sp := protocol.NewSampler(o)
	batch := sp.Sample(cfg.N-1, src)
	vecs := batch.Vectors()

	res := &Result{
		N:           cfg.N,
		M:           m,
		Periodic:    o.Periodic(),
		Secret:      o.Secret(),
		Batch:       batch,
		Independent: gf2.Independent(vecs, cfg.N),
		Solutions:   gf2.Solve(vecs, cfg.N),
	}

	f0 := o.Eval(0)
	for _, c := range res.Solutions {
		if c != 0 && o.Eval(c) == f0 {
			res.Verified = append(res.Verified, c)
		}
	}
	if len(res.Verified) == 1 {
		res.Recovered = res.Verified[0]
	}
	return res, nil
}
