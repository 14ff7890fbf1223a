package estimator

import (
	"errors"
	"math"
	"testing"

	"simon-sim/internal/prng"
	"simon-sim/oracle"
)

func TestTheoreticalP(t *testing.T) {
	// n=2: single factor 1 - 2^-1
	if p := TheoreticalP(2); math.Abs(p-0.5) > 1e-12 {
		t.Fatalf("TheoreticalP(2) = %v want 0.5", p)
	}
	// n=3: (1 - 1/4)(1 - 1/2)
	if p := TheoreticalP(3); math.Abs(p-0.375) > 1e-12 {
		t.Fatalf("TheoreticalP(3) = %v want 0.375", p)
	}
	if p := TheoreticalP(10); math.Abs(p-0.2887) > 0.001 {
		t.Fatalf("TheoreticalP(10) = %v want about 0.2887", p)
	}
	// decreasing in n, bounded below by the infinite product
	for n := 3; n <= 16; n++ {
		if TheoreticalP(n) >= TheoreticalP(n-1) {
			t.Fatalf("TheoreticalP not decreasing at n=%d", n)
		}
		if TheoreticalP(n) < 0.288 {
			t.Fatalf("TheoreticalP(%d) = %v below the limit", n, TheoreticalP(n))
		}
	}
}

func TestEmpiricalMatchesTheory(t *testing.T) {
	const n, trials = 10, 1000
	est, err := IndependenceProbability(n, trials, prng.NewStream([]byte("empirical")))
	if err != nil {
		t.Fatal(err)
	}
	if est.Trials != trials || est.Successes < 0 || est.Successes > trials {
		t.Fatalf("malformed estimate: %+v", est)
	}
	want := TheoreticalP(n)
	// ~5.6 standard deviations at p=0.29, trials=1000; a statistical
	// band, not an equality
	if math.Abs(est.P-want) > 0.08 {
		t.Fatalf("empirical P = %v, outside band around %v", est.P, want)
	}
	if est.Successes > 0 {
		if math.Abs(est.ExpectedTrials-1/est.P) > 1e-9 {
			t.Fatalf("expected trials %v != 1/P", est.ExpectedTrials)
		}
		wantVar := (1 - est.P) / (est.P * est.P)
		if math.Abs(est.Variance-wantVar) > 1e-9 {
			t.Fatalf("variance %v != (1-P)/P^2", est.Variance)
		}
	}
}

func TestSmallNProbabilities(t *testing.T) {
	// n=2 draws a single constraint from {0, s-complement}; success means
	// it was nonzero, probability exactly 1/2
	est, err := IndependenceProbability(2, 2000, prng.NewStream([]byte("tiny")))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(est.P-0.5) > 0.05 {
		t.Fatalf("n=2 empirical P = %v want about 0.5", est.P)
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	const n, trials = 6, 200
	serial, err := Config{}.IndependenceProbability(n, trials, prng.NewStream([]byte("par")))
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := Config{Workers: 8}.IndependenceProbability(n, trials, prng.NewStream([]byte("par")))
	if err != nil {
		t.Fatal(err)
	}
	if serial != parallel {
		t.Fatalf("serial %+v != parallel %+v", serial, parallel)
	}
}

func TestEstimatorDeterministic(t *testing.T) {
	a, err := IndependenceProbability(8, 100, prng.NewStream([]byte("det")))
	if err != nil {
		t.Fatal(err)
	}
	b, err := IndependenceProbability(8, 100, prng.NewStream([]byte("det")))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("equal seeds gave %+v and %+v", a, b)
	}
}

func TestEstimatorInvalidInput(t *testing.T) {
	src := prng.NewStream([]byte("bad"))
	if _, err := IndependenceProbability(1, 10, src); !errors.Is(err, oracle.ErrInvalidParameter) {
		t.Fatalf("n=1: got %v", err)
	}
	if _, err := IndependenceProbability(4, 0, src); !errors.Is(err, oracle.ErrInvalidParameter) {
		t.Fatalf("trials=0: got %v", err)
	}
}
