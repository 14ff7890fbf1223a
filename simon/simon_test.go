package simon

import (
	"errors"
	"testing"

	"simon-sim/bitvec"
	"simon-sim/internal/prng"
	"simon-sim/oracle"
)

func TestPeriodicRunRecoversSecret(t *testing.T) {
	// the true secret satisfies every sampled constraint, so whenever the
	// batch has full rank the solution set is exactly {0, s} and s verifies
	for trial := 0; trial < 50; trial++ {
		src := prng.NewStream([]byte{byte(trial), 'r'})
		res, err := Run(Config{N: 8, Periodic: true}, src)
		if err != nil {
			t.Fatal(err)
		}
		if res.Secret == 0 {
			t.Fatal("no secret drawn in periodic mode")
		}
		for _, c := range res.Batch {
			if bitvec.Dot(c.Y, res.Secret) != 0 {
				t.Fatalf("trial %d: constraint %b violates the true secret", trial, c.Y)
			}
		}
		if res.Solutions[0] != 0 {
			t.Fatalf("trial %d: solution set does not start with 0", trial)
		}
		if res.Independent {
			if len(res.Solutions) != 2 {
				t.Fatalf("trial %d: full rank but %d solutions", trial, len(res.Solutions))
			}
			if res.Recovered != res.Secret {
				t.Fatalf("trial %d: recovered %d want %d", trial, res.Recovered, res.Secret)
			}
		}
	}
}

func TestVerificationRejectsSpuriousCandidates(t *testing.T) {
	// even when the batch is rank-deficient, only the true secret passes
	// the oracle check
	for trial := 0; trial < 100; trial++ {
		src := prng.NewStream([]byte{byte(trial), 'v'})
		res, err := Run(Config{N: 6, Periodic: true}, src)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Verified) != 1 || res.Verified[0] != res.Secret {
			t.Fatalf("trial %d: verified %v want exactly [%d]", trial, res.Verified, res.Secret)
		}
	}
}

func TestExplicitSecret(t *testing.T) {
	src := prng.NewStream([]byte("explicit"))
	res, err := Run(Config{N: 5, Periodic: true, Secret: 0b10011}, src)
	if err != nil {
		t.Fatal(err)
	}
	if res.Secret != 0b10011 {
		t.Fatalf("secret %d, want the explicit one", res.Secret)
	}
}

func TestInjectiveRun(t *testing.T) {
	src := prng.NewStream([]byte("inj-run"))
	res, err := Run(Config{N: 6, M: 8}, src)
	if err != nil {
		t.Fatal(err)
	}
	if res.Periodic || res.Secret != 0 {
		t.Fatal("injective run reports a secret")
	}
	if res.M != 8 {
		t.Fatalf("m = %d want 8", res.M)
	}
	if len(res.Batch) != 5 {
		t.Fatalf("batch length %d want n-1", len(res.Batch))
	}
	// an injective oracle has no collisions at all, so nothing verifies
	if len(res.Verified) != 0 {
		t.Fatalf("verified %v on an injective oracle", res.Verified)
	}
}

func TestRunDeterministic(t *testing.T) {
	a, err := Run(Config{N: 7, Periodic: true}, prng.NewStream([]byte("repeat")))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(Config{N: 7, Periodic: true}, prng.NewStream([]byte("repeat")))
	if err != nil {
		t.Fatal(err)
	}
	if a.Secret != b.Secret || a.Independent != b.Independent || len(a.Batch) != len(b.Batch) {
		t.Fatal("equal seeds produced different runs")
	}
	for i := range a.Batch {
		if a.Batch[i] != b.Batch[i] {
			t.Fatalf("equal seeds disagree at round %d", i)
		}
	}
}

func TestRunInvalidConfig(t *testing.T) {
	src := prng.NewStream([]byte("bad-run"))
	if _, err := Run(Config{N: 1, Periodic: true}, src); !errors.Is(err, oracle.ErrInvalidParameter) {
		t.Fatalf("n=1: got %v", err)
	}
	if _, err := Run(Config{N: 4, M: 2}, src); !errors.Is(err, oracle.ErrInvalidParameter) {
		t.Fatalf("m<n: got %v", err)
	}
	if _, err := Run(Config{N: 4, Periodic: true, Secret: 1 << 10}, src); !errors.Is(err, oracle.ErrInvalidParameter) {
		t.Fatalf("wide secret: got %v", err)
	}
}
