package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"birl/internal/composer/models"
)

func TestSummarize(t *testing.T) {
	r := summarize("basic", []renderSample{
		{total: 4 * time.Millisecond, fetch: 2 * time.Millisecond, composite: time.Millisecond},
		{total: 2 * time.Millisecond, fetch: 1 * time.Millisecond, composite: time.Millisecond, hit: true},
		{total: 6 * time.Millisecond, fetch: 3 * time.Millisecond, composite: time.Millisecond},
	})

	assert.Equal(t, benchResult{
		Name:       "basic",
		Iterations: 3,
		Hits:       1,
		Total:      12 * time.Millisecond,
		Avg:        4 * time.Millisecond,
		Min:        2 * time.Millisecond,
		Max:        6 * time.Millisecond,
		Fetch:      2 * time.Millisecond,
		Composite:  time.Millisecond,
	}, r)
	assert.Equal(t, benchResult{Name: "empty"}, summarize("empty", nil))
}

func TestBench(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, models.OriginKey("birl", models.PlateEntry(models.ViewFront)))
	writeAsset(t, root, models.OriginKey("birl", models.LayerEntry(models.ViewFront,
		models.Layer{Kind: models.KindHoodies, Sku: "baerskin4-black"})))
	report := filepath.Join(t.TempDir(), "bench.md")

	var stdout bytes.Buffer
	err := run(context.Background(), []string{
		"bench", "--storage", "local", "--root", root, "--namespace", "birl",
		"--example", "basic", "-n", "3", "--out", report,
	}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)

	var cold, warm string
	for _, line := range strings.Split(stdout.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "| basic (cached) |"):
			warm = line
		case strings.HasPrefix(line, "| basic |"):
			cold = line
		}
	}
	assert.True(t, strings.HasPrefix(cold, "| basic | 3 | 0 |"), cold)
	assert.True(t, strings.HasPrefix(warm, "| basic (cached) | 3 | 3 |"), warm)

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# birl render benchmarks")
	assert.Contains(t, string(data), "| basic (cached) |")
}

func TestBenchUsageErrors(t *testing.T) {
	tests := map[string][]string{
		"zero iterations": {"bench", "-n", "0"},
		"unknown example": {"bench", "--example", "nope"},
		"stray argument":  {"bench", "hoodies/x"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			err := run(context.Background(), args, &bytes.Buffer{}, &bytes.Buffer{})
			assert.ErrorIs(t, err, errUsage)
		})
	}
}

func TestBenchFailsOnMissingPlate(t *testing.T) {
	err := run(context.Background(), []string{"bench", "--storage", "memory", "--example", "basic", "-n", "1"},
		&bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "basic")
	assert.ErrorIs(t, err, models.ErrPlateNotFound)
}
