package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"strings"
	"time"

	"birl/internal/composer/service"
)

const defaultBenchIterations = 10

// benchResult summarizes one timed series of renders.
type benchResult struct {
	Name       string
	Iterations int
	Hits       int
	Total      time.Duration
	Avg        time.Duration
	Min        time.Duration
	Max        time.Duration
	// Fetch and Composite are per-render averages; zero for cached series.
	Fetch     time.Duration
	Composite time.Duration
}

type renderSample struct {
	total, fetch, composite time.Duration
	hit                     bool
}

func summarize(name string, samples []renderSample) benchResult {
	r := benchResult{Name: name, Iterations: len(samples)}
	if len(samples) == 0 {
		return r
	}
	totals := make([]time.Duration, len(samples))
	var fetch, composite time.Duration
	for i, s := range samples {
		totals[i] = s.total
		r.Total += s.total
		fetch += s.fetch
		composite += s.composite
		if s.hit {
			r.Hits++
		}
	}
	n := time.Duration(len(samples))
	r.Avg = r.Total / n
	r.Min = slices.Min(totals)
	r.Max = slices.Max(totals)
	r.Fetch = fetch / n
	r.Composite = composite / n
	return r
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.2f", float64(d)/float64(time.Millisecond))
}

func writeBenchTable(w io.Writer, results []benchResult) {
	fmt.Fprintln(w, "| Test | Iterations | Hits | Total (ms) | Avg (ms) | Min (ms) | Max (ms) | Fetch (ms) | Composite (ms) |")
	fmt.Fprintln(w, "|------|------------|------|------------|----------|----------|----------|------------|----------------|")
	for _, r := range results {
		fmt.Fprintf(w, "| %s | %d | %d | %s | %s | %s | %s | %s | %s |\n",
			r.Name, r.Iterations, r.Hits, ms(r.Total), ms(r.Avg), ms(r.Min), ms(r.Max), ms(r.Fetch), ms(r.Composite))
	}
}

// runBench renders each example N times bypassing the composite cache, then
// N times through it after one priming render, and reports the timings.
func runBench(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		pf         pipelineFlags
		iterations int
		example    string
		out        string
	)
	fs := newFlagSet("bench", stderr)
	pf.add(fs)
	fs.IntVarP(&iterations, "iterations", "n", defaultBenchIterations, "renders per series")
	fs.StringVar(&example, "example", "", "benchmark one named example instead of all")
	fs.StringVarP(&out, "out", "o", "", "also write the markdown report to this file")
	if err := parse(fs, args); err != nil {
		return err
	}
	if iterations <= 0 {
		return fmt.Errorf("%w: --iterations must be positive, got %d", errUsage, iterations)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: bench takes no arguments", errUsage)
	}

	cases := service.Examples()
	if example != "" {
		e, ok := service.ExampleByName(example)
		if !ok {
			return fmt.Errorf("%w: unknown example %q", errUsage, example)
		}
		cases = []service.Example{e}
	}

	pipeline, err := pf.build(ctx, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = pipeline.Close() }()

	render := func(e service.Example, bypass bool) (renderSample, error) {
		result, err := pipeline.Service.Render(ctx, e.Request(bypass, ""))
		if err != nil {
			return renderSample{}, fmt.Errorf("%s: %w", e.Name, err)
		}
		return renderSample{
			total:     result.Timing.Total,
			fetch:     result.Timing.Fetch,
			composite: result.Timing.Composite,
			hit:       result.CacheHit,
		}, nil
	}

	results := make([]benchResult, 0, 2*len(cases))
	for _, e := range cases {
		cold := make([]renderSample, 0, iterations)
		for range iterations {
			s, err := render(e, true)
			if err != nil {
				return err
			}
			cold = append(cold, s)
		}
		results = append(results, summarize(e.Name, cold))

		if _, err := render(e, false); err != nil {
			return err
		}
		warm := make([]renderSample, 0, iterations)
		for range iterations {
			s, err := render(e, false)
			if err != nil {
				return err
			}
			warm = append(warm, s)
		}
		results = append(results, summarize(e.Name+" (cached)", warm))
	}

	writeBenchTable(stdout, results)

	if out != "" {
		var report strings.Builder
		fmt.Fprintf(&report, "# birl render benchmarks\n\n**Date:** %s\n\n", time.Now().Format(time.DateTime))
		writeBenchTable(&report, results)
		fmt.Fprintf(&report, "\n- OS/arch: %s/%s\n- Go: %s\n- Iterations per series: %d\n",
			runtime.GOOS, runtime.GOARCH, runtime.Version(), iterations)
		if err := os.WriteFile(out, []byte(report.String()), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(stdout, "report written to %s\n", out)
	}
	return nil
}
