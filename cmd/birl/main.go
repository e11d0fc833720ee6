// birl renders outfit composites from the command line using the same
// pipeline as the server.
//
//	birl compose hoodies/baerskin4-black,pants/cargo-black --view front --out outfit.jpg
//	birl examples --render --out-dir ./renders
//	birl stats
//	birl bench --iterations 20 --out bench.md
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"birl/internal/composer/app"
	"birl/internal/composer/models"
	"birl/internal/composer/service"
	"birl/internal/platform/config"
	"birl/internal/platform/logger"
)

var (
	// errUsage marks invalid invocations; main exits 2 for them.
	errUsage = errors.New("usage error")
	errHelp  = errors.New("help requested")
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(stderr)
		return nil
	}

	var err error
	switch args[0] {
	case "compose":
		err = runCompose(ctx, args[1:], stdout, stderr)
	case "examples":
		err = runExamples(ctx, args[1:], stdout, stderr)
	case "stats":
		err = runStats(ctx, args[1:], stdout, stderr)
	case "bench":
		err = runBench(ctx, args[1:], stdout, stderr)
	default:
		printUsage(stderr)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	if errors.Is(err, errHelp) {
		return nil
	}
	return err
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `birl renders layered outfit composites.

Usage:
  birl compose [flags] <category/sku,...>
  birl examples [--render] [--out-dir DIR]
  birl stats [--clear]
  birl bench [--iterations N] [--example NAME] [--out FILE]

Configuration is read from BIRL_* environment variables; --storage,
--root and --namespace override them.
`)
}

// pipelineFlags are shared by every subcommand that builds the pipeline.
type pipelineFlags struct {
	storage   string
	root      string
	namespace string
	logLevel  string
}

func (p *pipelineFlags) add(fs *pflag.FlagSet) {
	fs.StringVar(&p.storage, "storage", "", "origin backend: local, minio or memory (default from BIRL_STORAGE)")
	fs.StringVar(&p.root, "root", "", "asset root for local storage (default from BIRL_LOCAL_ROOT)")
	fs.StringVar(&p.namespace, "namespace", "", "asset namespace (default from BIRL_NAMESPACE)")
	fs.StringVar(&p.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
}

func (p *pipelineFlags) build(ctx context.Context, stderr io.Writer) (*app.App, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if p.storage != "" {
		cfg.Storage = p.storage
	}
	if p.root != "" {
		cfg.LocalRoot = p.root
	}
	if p.namespace != "" {
		cfg.Namespace = p.namespace
	}
	log := logger.NewWithWriter(stderr, config.LogConfig{Level: p.logLevel, Format: "text"})
	return app.New(ctx, cfg, log, nil)
}

func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return errHelp
		}
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	return nil
}

func runCompose(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		pf      pipelineFlags
		view    string
		format  string
		out     string
		example string
		bypass  bool
	)
	fs := newFlagSet("compose", stderr)
	pf.add(fs)
	fs.StringVar(&view, "view", "front", "camera view: front, back, side, left or right")
	fs.StringVar(&format, "format", "", "output format: jpeg or png (default from BIRL_OUTPUT_FORMAT)")
	fs.StringVarP(&out, "out", "o", "", "output file (default composite-<key>.<ext>)")
	fs.StringVar(&example, "example", "", "render a named example instead of explicit params")
	fs.BoolVar(&bypass, "bypass-cache", false, "re-render even when a cached composite exists")
	if err := parse(fs, args); err != nil {
		return err
	}

	req := models.CompositionRequest{View: models.View(view), BypassCache: bypass, Format: models.Format(format)}
	switch {
	case example != "" && fs.NArg() > 0:
		return fmt.Errorf("%w: pass either --example or params, not both", errUsage)
	case example != "":
		e, ok := service.ExampleByName(example)
		if !ok {
			return fmt.Errorf("%w: unknown example %q", errUsage, example)
		}
		req.Params = e.Params
	case fs.NArg() == 1:
		req.Params = fs.Arg(0)
	default:
		return fmt.Errorf("%w: compose takes exactly one params argument", errUsage)
	}

	pipeline, err := pf.build(ctx, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = pipeline.Close() }()

	result, err := pipeline.Service.Render(ctx, req)
	if err != nil {
		return err
	}
	if out == "" {
		out = "composite-" + result.CacheKey + extFor(result.ContentType)
	}
	if err := os.WriteFile(out, result.Image, 0o644); err != nil {
		return fmt.Errorf("write composite: %w", err)
	}
	printResult(stdout, out, result)
	return nil
}

func runExamples(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		pf     pipelineFlags
		render bool
		outDir string
	)
	fs := newFlagSet("examples", stderr)
	pf.add(fs)
	fs.BoolVar(&render, "render", false, "render every example")
	fs.StringVar(&outDir, "out-dir", ".", "directory for rendered examples")
	if err := parse(fs, args); err != nil {
		return err
	}

	if !render {
		for _, e := range service.Examples() {
			fmt.Fprintf(stdout, "%-14s %s\n  %s\n", e.Name, e.Description, e.Params)
		}
		return nil
	}

	pipeline, err := pf.build(ctx, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = pipeline.Close() }()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	var failed []string
	for _, e := range service.Examples() {
		result, err := pipeline.Service.Render(ctx, e.Request(false, ""))
		if err != nil {
			fmt.Fprintf(stdout, "%s: %v\n", e.Name, err)
			failed = append(failed, e.Name)
			continue
		}
		path := filepath.Join(outDir, e.Name+extFor(result.ContentType))
		if err := os.WriteFile(path, result.Image, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", e.Name, err)
		}
		printResult(stdout, path, result)
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d examples failed: %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}

func runStats(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		pf         pipelineFlags
		clearTier1 bool
	)
	fs := newFlagSet("stats", stderr)
	pf.add(fs)
	fs.BoolVar(&clearTier1, "clear", false, "clear tier 1 before reporting")
	if err := parse(fs, args); err != nil {
		return err
	}

	pipeline, err := pf.build(ctx, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = pipeline.Close() }()

	if clearTier1 {
		pipeline.Service.ClearFastTier(ctx)
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(pipeline.Service.Stats())
}

func printResult(w io.Writer, path string, result *models.Result) {
	outcome := "MISS"
	if result.CacheHit {
		outcome = "HIT"
	}
	fmt.Fprintf(w, "%s %s key=%s duration=%s\n", path, outcome, result.CacheKey, result.Timing.Total)
	if result.Degraded() {
		fmt.Fprintf(w, "  omitted: %s\n", strings.Join(result.OmittedNames(), ", "))
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
}

func extFor(contentType string) string {
	if contentType == models.FormatPNG.ContentType() {
		return "." + models.FormatPNG.Ext()
	}
	return "." + models.FormatJPEG.Ext()
}
