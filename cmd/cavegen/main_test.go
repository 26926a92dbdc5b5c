package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"image/png"
	"strings"
	"testing"

	"cavegen/internal/core"
	"cavegen/internal/render"
	"cavegen/internal/sims/cave"
)

func testOptions() options {
	opts := defaultOptions()
	opts.cave.Width, opts.cave.Height = 12, 6
	opts.cave.Seed = 21
	opts.steps = 3
	return opts
}

func TestRunTextMatchesLibrary(t *testing.T) {
	opts := testOptions()
	var buf bytes.Buffer
	if err := run(context.Background(), opts, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}

	g, _ := cave.Generate(12, 6, 45, core.NewRNG(21))
	for i := 0; i < 3; i++ {
		g, _ = cave.Step(g)
	}
	want := strings.Join(render.Lines(g), "\n") + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestRunStableStopsEarly(t *testing.T) {
	opts := testOptions()
	opts.cave.WallPercent = 0
	opts.cave.Width, opts.cave.Height = 5, 5
	opts.steps = 50
	opts.stable = true
	var buf bytes.Buffer
	if err := run(context.Background(), opts, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "#...#\n.....\n.....\n.....\n#...#\n"
	if got := buf.String(); got != want {
		t.Fatalf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestRunPNG(t *testing.T) {
	opts := testOptions()
	opts.format = "png"
	opts.scale = 3
	var buf bytes.Buffer
	if err := run(context.Background(), opts, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 36 || b.Dy() != 18 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestRunVariants(t *testing.T) {
	opts := testOptions()
	opts.variants = 3
	var buf bytes.Buffer
	if err := run(context.Background(), opts, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	for _, header := range []string{"seed 21\n", "seed 22\n", "seed 23\n"} {
		if !strings.Contains(out, header) {
			t.Fatalf("missing %q in output:\n%s", header, out)
		}
	}
	if n := strings.Count(out, "\n"); n != 3*(1+6)+2 {
		t.Fatalf("expected 23 lines, got %d", n)
	}
}

func TestRunRejectsFormats(t *testing.T) {
	opts := testOptions()
	opts.format = "gif"
	if err := run(context.Background(), opts, &bytes.Buffer{}); !errors.Is(err, errFormat) {
		t.Fatalf("expected errFormat, got %v", err)
	}
	opts.format = "png"
	opts.variants = 2
	if err := run(context.Background(), opts, &bytes.Buffer{}); !errors.Is(err, errFormat) {
		t.Fatalf("expected errFormat for png variants, got %v", err)
	}
}

func TestRunInvalidDimensions(t *testing.T) {
	opts := testOptions()
	opts.cave.Width = 0
	if err := run(context.Background(), opts, &bytes.Buffer{}); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestApplyFileKeepsExplicitFlags(t *testing.T) {
	fs := flag.NewFlagSet("cavegen", flag.ContinueOnError)
	opts := defaultOptions()
	opts.bind(fs)
	if err := fs.Parse([]string{"-w", "30", "-steps", "2"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	file := cave.Config{Width: 80, Height: 40, WallPercent: 50, Seed: 3, Workers: 4}
	opts.applyFile(file, explicit)
	if opts.cave.Width != 30 || opts.cave.Height != 40 || opts.cave.WallPercent != 50 {
		t.Fatalf("unexpected cave config %+v", opts.cave)
	}
	if opts.cave.Seed != 3 || opts.cave.Workers != 4 || opts.steps != 2 {
		t.Fatalf("unexpected options %+v", opts)
	}
}
