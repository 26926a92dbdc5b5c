// Command cavegen seeds and smooths caves without a window and writes them to
// stdout as text rows or a PNG image.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"cavegen/internal/config"
	"cavegen/internal/core"
	"cavegen/internal/render"
	"cavegen/internal/sims/cave"
)

var errFormat = errors.New("unsupported output format")

type options struct {
	cave     cave.Config
	steps    int
	stable   bool
	variants int
	format   string
	scale    int
	path     string
}

func defaultOptions() options {
	return options{
		cave:     cave.DefaultConfig(),
		steps:    5,
		variants: 1,
		format:   "text",
		scale:    8,
	}
}

func (o *options) bind(fs *flag.FlagSet) {
	fs.IntVar(&o.cave.Width, "w", o.cave.Width, "grid width")
	fs.IntVar(&o.cave.Height, "h", o.cave.Height, "grid height")
	fs.IntVar(&o.cave.WallPercent, "wall", o.cave.WallPercent, "percent chance a cell starts as wall")
	fs.Int64Var(&o.cave.Seed, "seed", o.cave.Seed, "random seed")
	fs.IntVar(&o.cave.Workers, "workers", o.cave.Workers, "goroutines per step")
	fs.IntVar(&o.steps, "steps", o.steps, "smoothing steps to apply")
	fs.BoolVar(&o.stable, "stable", o.stable, "stop early once a step changes nothing")
	fs.IntVar(&o.variants, "variants", o.variants, "number of caves to generate from consecutive seeds (text only)")
	fs.StringVar(&o.format, "format", o.format, "output format: text or png")
	fs.IntVar(&o.scale, "scale", o.scale, "pixels per cell for png output")
	fs.StringVar(&o.path, "config", o.path, "optional YAML config file (cave section)")
}

// applyFile copies the cave section for every flag not set explicitly.
func (o *options) applyFile(file cave.Config, explicit map[string]bool) {
	if !explicit["w"] {
		o.cave.Width = file.Width
	}
	if !explicit["h"] {
		o.cave.Height = file.Height
	}
	if !explicit["wall"] {
		o.cave.WallPercent = file.WallPercent
	}
	if !explicit["seed"] {
		o.cave.Seed = file.Seed
	}
	if !explicit["workers"] {
		o.cave.Workers = file.Workers
	}
}

func main() {
	opts := defaultOptions()
	opts.bind(flag.CommandLine)
	flag.Parse()

	if opts.path != "" {
		file, err := config.Load(opts.path)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		explicit := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		opts.applyFile(file.Cave, explicit)
	}

	out := bufio.NewWriter(os.Stdout)
	if err := run(context.Background(), opts, out); err != nil {
		log.Fatal(err)
	}
	if err := out.Flush(); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, opts options, w io.Writer) error {
	if opts.format != "text" && opts.format != "png" {
		return fmt.Errorf("%w: %q", errFormat, opts.format)
	}
	if opts.variants > 1 {
		if opts.format != "text" {
			return fmt.Errorf("%w: png holds a single cave, drop -variants", errFormat)
		}
		return writeVariants(ctx, opts, w)
	}

	g, err := cave.Generate(opts.cave.Width, opts.cave.Height, opts.cave.WallPercent, core.NewRNG(opts.cave.Seed))
	if err != nil {
		return err
	}
	for i := 0; i < opts.steps; i++ {
		next, err := cave.StepParallel(g, opts.cave.Workers)
		if err != nil {
			return err
		}
		done := opts.stable && next.Equal(g)
		g = next
		if done {
			log.Printf("stable after %d steps", i+1)
			break
		}
	}

	if opts.format == "png" {
		return render.WritePNG(w, g, cave.DisplayPalette(), opts.scale)
	}
	return render.WriteText(w, g)
}

func writeVariants(ctx context.Context, opts options, w io.Writer) error {
	seeds := make([]int64, opts.variants)
	for i := range seeds {
		seeds[i] = opts.cave.Seed + int64(i)
	}
	grids, err := cave.GenerateVariants(ctx, opts.cave, seeds, opts.steps)
	if err != nil {
		return err
	}
	for i, g := range grids {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "seed %d\n", seeds[i]); err != nil {
			return err
		}
		if err := render.WriteText(w, g); err != nil {
			return err
		}
	}
	return nil
}
