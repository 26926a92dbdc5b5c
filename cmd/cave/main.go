//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"cavegen/internal/app"
	"cavegen/internal/config"
	"cavegen/internal/core"
	_ "cavegen/internal/sims/cave"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if cfg.Path != "" {
		file, err := config.Load(cfg.Path)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		explicit := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		cfg.ApplyFile(file.Cave, explicit)
	}

	if err := cfg.Cave.Validate(); err != nil {
		log.Fatalf("cave config: %v", err)
	}

	factory, ok := core.Lookup(cfg.Sim)
	if !ok {
		log.Fatalf("unknown sim %q (available: %v)", cfg.Sim, core.Names())
	}
	sim := factory(cfg.Cave.Map())
	if sim == nil {
		log.Fatalf("sim %q rejected its configuration (%dx%d)", cfg.Sim, cfg.Cave.Width, cfg.Cave.Height)
	}

	game := app.New(sim, cfg)
	game.Reset(cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("cavegen - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
