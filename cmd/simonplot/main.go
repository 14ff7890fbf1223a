// simonplot renders a sweep written by simonsweep as an interactive
// HTML page: empirical versus theoretical independence probability per
// bit width, and the implied expected trials to first success.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type report struct {
	N              int     `json:"n"`
	Trials         int     `json:"trials"`
	Successes      int     `json:"successes"`
	P              float64 `json:"p"`
	TheoreticalP   float64 `json:"theoretical_p"`
	ExpectedTrials float64 `json:"expected_trials"`
	Variance       float64 `json:"variance"`
	ElapsedUS      int64   `json:"elapsed_us"`
}

type record struct {
	Stage  string `json:"stage"`
	Report report `json:"report"`
}

func readReports(path string) ([]report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []report
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1<<20), 1<<20)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("bad jsonl line: %w", err)
		}
		if rec.Stage != "estimate" {
			continue
		}
		rows = append(rows, rec.Report)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	// later rows win when a sweep was re-run for the same n
	byN := make(map[int]report)
	for _, r := range rows {
		byN[r.N] = r
	}
	out := make([]report, 0, len(byN))
	for _, r := range byN {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].N < out[j].N })
	return out, nil
}

func probabilityChart(rows []report) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Independence probability of n-1 sampled constraints",
			Subtitle: "empirical estimate vs. exact product formula",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "n"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "P"}),
	)
	xs := make([]string, 0, len(rows))
	emp := make([]opts.LineData, 0, len(rows))
	theo := make([]opts.LineData, 0, len(rows))
	for _, r := range rows {
		xs = append(xs, fmt.Sprintf("%d", r.N))
		emp = append(emp, opts.LineData{Value: r.P})
		theo = append(theo, opts.LineData{Value: r.TheoreticalP})
	}
	line.SetXAxis(xs).
		AddSeries("Empirical", emp).
		AddSeries("Theoretical", theo)
	return line
}

func trialsChart(rows []report) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Expected protocol repetitions to first success",
			Subtitle: "geometric model, 1/P",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "n"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "E[trials]"}),
	)
	xs := make([]string, 0, len(rows))
	exp := make([]opts.LineData, 0, len(rows))
	for _, r := range rows {
		xs = append(xs, fmt.Sprintf("%d", r.N))
		exp = append(exp, opts.LineData{Value: r.ExpectedTrials})
	}
	line.SetXAxis(xs).AddSeries("Expected trials", exp)
	return line
}

func main() {
	inPath := flag.String("in", "simon_sweep.jsonl", "input JSONL file from simonsweep")
	outPath := flag.String("out", "simon_sweep.html", "output HTML file")
	flag.Parse()

	rows, err := readReports(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read error: %v\n", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "no estimate records in %s\n", *inPath)
		os.Exit(1)
	}

	page := components.NewPage().SetPageTitle("Simon protocol sweep")
	page.AddCharts(probabilityChart(rows), trialsChart(rows))

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		fmt.Fprintf(os.Stderr, "render error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s | %d bit widths\n", *outPath, len(rows))
}
