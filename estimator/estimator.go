// Package estimator characterizes the protocol statistically: across
// many independent trials, how often are n-1 sampled constraints
// linearly independent, and what does that imply for the number of
// protocol repetitions needed.
package estimator

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"simon-sim/gf2"
	"simon-sim/internal/prng"
	"simon-sim/oracle"
	"simon-sim/protocol"
)

// Estimate reports the empirical success fraction of the independence
// event together with the derived geometric-model quantities.
type Estimate struct {
	N         int     `json:"n"`
	Trials    int     `json:"trials"`
	Successes int     `json:"successes"`
	P         float64 `json:"p"`
	// ExpectedTrials is 1/P, the mean number of protocol repetitions to
	// the first independent batch under the geometric model; +Inf when no
	// trial succeeded.
	ExpectedTrials float64 `json:"expected_trials"`
	// Variance is (1-P)/P^2 under the same model.
	Variance float64 `json:"variance"`
}

// Config tunes estimation. Workers <= 1 runs trials serially; larger
// values fan trials out over an errgroup. Either way each trial draws
// from its own labeled child stream, so the result depends only on the
// parent seed.
type Config struct {
	Workers int
}

// IndependenceProbability runs trials with the default serial Config.
func IndependenceProbability(n, trials int, src *prng.Stream) (Estimate, error) {
	return Config{}.IndependenceProbability(n, trials, src)
}

// IndependenceProbability repeats the full periodic-mode protocol:
// uniform nonzero secret, fresh oracle, n-1 rounds, exact independence
// check. Each trial is an independent Bernoulli event.
func (c Config) IndependenceProbability(n, trials int, src *prng.Stream) (Estimate, error) {
	if n <= 1 || n > oracle.MaxN {
		return Estimate{}, fmt.Errorf("estimator: n=%d out of range: %w", n, oracle.ErrInvalidParameter)
	}
	if trials <= 0 {
		return Estimate{}, fmt.Errorf("estimator: trials must be positive, got %d: %w", trials, oracle.ErrInvalidParameter)
	}

	results := make([]bool, trials)
	trial := func(i int) error {
		ts := src.Child(fmt.Sprintf("trial-%d", i))
		s := 1 + ts.UintN(1<<uint(n)-1)
		o, err := oracle.NewPeriodic(n, n, s, ts)
		if err != nil {
			return err
		}
		batch := protocol.NewSampler(o).Sample(n-1, ts)
		results[i] = gf2.Independent(batch.Vectors(), n)
		return nil
	}

	if c.Workers <= 1 {
		for i := 0; i < trials; i++ {
			if err := trial(i); err != nil {
				return Estimate{}, err
			}
		}
	} else {
		g := new(errgroup.Group)
		g.SetLimit(c.Workers)
		for i := 0; i < trials; i++ {
			i := i
			g.Go(func() error { return trial(i) })
		}
		if err := g.Wait(); err != nil {
			return Estimate{}, err
		}
	}

	succ := 0
	for _, ok := range results {
		if ok {
			succ++
		}
	}
	est := Estimate{N: n, Trials: trials, Successes: succ}
	est.P = float64(succ) / float64(trials)
	if est.P > 0 {
		est.ExpectedTrials = 1 / est.P
		est.Variance = (1 - est.P) / (est.P * est.P)
	} else {
		est.ExpectedTrials = math.Inf(1)
		est.Variance = math.Inf(1)
	}
	return est, nil
}

// TheoreticalP returns the exact probability that n-1 uniform vectors
// from the (n-1)-dimensional complement of the secret are independent:
// the product over k=1..n-1 of (1 - 2^(k-n)). Roughly 0.2888 at n=10,
// converging to about 0.2887880951 as n grows.
func TheoreticalP(n int) float64 {
	p := 1.0
	for k := 1; k < n; k++ {
		p *= 1 - math.Exp2(float64(k-n))
	}
	return p
}
