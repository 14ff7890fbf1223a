// simonsweep estimates the independence probability across a range of
// bit widths and appends the results as JSONL plus a CSV table, ready
// for simonplot.
package main

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"simon-sim/estimator"
	"simon-sim/internal/prng"
	"simon-sim/prof"
)

type report struct {
	estimator.Estimate
	TheoreticalP float64 `json:"theoretical_p"`
	ElapsedUS    int64   `json:"elapsed_us"`
}

type record struct {
	Stage  string `json:"stage"`
	Report report `json:"report"`
}

type runner struct {
	jsonFile  *os.File
	jsonBuf   *bufio.Writer
	jsonEnc   *json.Encoder
	csvFile   *os.File
	csvWriter *csv.Writer
}

func newRunner(jsonlPath, csvPath string) (*runner, error) {
	r := &runner{}
	jf, err := os.OpenFile(jsonlPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open jsonl: %w", err)
	}
	r.jsonFile = jf
	r.jsonBuf = bufio.NewWriter(jf)
	r.jsonEnc = json.NewEncoder(r.jsonBuf)

	cf, err := os.Create(csvPath)
	if err != nil {
		jf.Close()
		return nil, fmt.Errorf("create csv: %w", err)
	}
	r.csvFile = cf
	r.csvWriter = csv.NewWriter(cf)
	header := []string{"n", "trials", "successes", "p", "theoretical_p", "expected_trials", "variance", "elapsed_us"}
	if err := r.csvWriter.Write(header); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *runner) write(rep report) error {
	if err := r.jsonEnc.Encode(record{Stage: "estimate", Report: rep}); err != nil {
		return err
	}
	row := []string{
		strconv.Itoa(rep.N),
		strconv.Itoa(rep.Trials),
		strconv.Itoa(rep.Successes),
		strconv.FormatFloat(rep.P, 'g', -1, 64),
		strconv.FormatFloat(rep.TheoreticalP, 'g', -1, 64),
		strconv.FormatFloat(rep.ExpectedTrials, 'g', -1, 64),
		strconv.FormatFloat(rep.Variance, 'g', -1, 64),
		strconv.FormatInt(rep.ElapsedUS, 10),
	}
	return r.csvWriter.Write(row)
}

func (r *runner) close() {
	if r.jsonBuf != nil {
		_ = r.jsonBuf.Flush()
	}
	if r.jsonFile != nil {
		_ = r.jsonFile.Close()
	}
	if r.csvWriter != nil {
		r.csvWriter.Flush()
	}
	if r.csvFile != nil {
		_ = r.csvFile.Close()
	}
}

func main() {
	nMin := flag.Int("nmin", 2, "smallest bit width")
	nMax := flag.Int("nmax", 12, "largest bit width")
	trials := flag.Int("trials", 1000, "trials per bit width")
	workers := flag.Int("workers", 1, "parallel trial workers (1 = serial)")
	seed := flag.String("seed", "sweep", "seed for reproducible sweeps")
	jsonlPath := flag.String("jsonl", "simon_sweep.jsonl", "JSONL output path (appended)")
	csvPath := flag.String("csv", "simon_sweep.csv", "CSV output path (overwritten)")
	flag.Parse()

	if *nMin < 2 || *nMax < *nMin {
		log.Fatalf("invalid range [%d, %d]", *nMin, *nMax)
	}

	r, err := newRunner(*jsonlPath, *csvPath)
	if err != nil {
		log.Fatalf("output: %v", err)
	}
	defer r.close()

	src := prng.NewStream([]byte(*seed))
	cfg := estimator.Config{Workers: *workers}
	for n := *nMin; n <= *nMax; n++ {
		start := time.Now()
		est, err := cfg.IndependenceProbability(n, *trials, src.Child(fmt.Sprintf("n-%d", n)))
		if err != nil {
			log.Fatalf("n=%d: %v", n, err)
		}
		elapsed := time.Since(start)
		prof.Track(start, fmt.Sprintf("n=%d", n))
		rep := report{
			Estimate:     est,
			TheoreticalP: estimator.TheoreticalP(n),
			ElapsedUS:    elapsed.Microseconds(),
		}
		if err := r.write(rep); err != nil {
			log.Fatalf("write n=%d: %v", n, err)
		}
		fmt.Printf("n=%-3d p=%.4f theory=%.4f E[trials]=%.2f (%v)\n",
			n, est.P, rep.TheoreticalP, est.ExpectedTrials, elapsed.Round(time.Millisecond))
	}
	prof.Dump(os.Stderr)
}
