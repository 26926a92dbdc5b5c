package app

import (
	"flag"

	"cavegen/internal/sims/cave"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	StepRate int
	Seed     int64
	HUDWidth int
	Path     string

	Cave cave.Config
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:      "cave",
		Scale:    12,
		TPS:      60,
		StepRate: 4,
		Seed:     42,
		HUDWidth: 220,
		Cave:     cave.DefaultConfig(),
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.IntVar(&c.StepRate, "rate", c.StepRate, "generations per second while autoplaying")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the control panel in pixels (0 hides it)")
	fs.StringVar(&c.Path, "config", c.Path, "optional YAML config file (cave section)")
	fs.IntVar(&c.Cave.Width, "w", c.Cave.Width, "grid width")
	fs.IntVar(&c.Cave.Height, "h", c.Cave.Height, "grid height")
	fs.IntVar(&c.Cave.WallPercent, "wall", c.Cave.WallPercent, "percent chance a cell starts as wall")
	fs.IntVar(&c.Cave.Workers, "workers", c.Cave.Workers, "goroutines per step")
}

// ApplyFile copies values from a config file for every cave flag that was not
// set explicitly on the command line. explicit holds the names of set flags.
func (c *Config) ApplyFile(file cave.Config, explicit map[string]bool) {
	if !explicit["w"] {
		c.Cave.Width = file.Width
	}
	if !explicit["h"] {
		c.Cave.Height = file.Height
	}
	if !explicit["wall"] {
		c.Cave.WallPercent = file.WallPercent
	}
	if !explicit["workers"] {
		c.Cave.Workers = file.Workers
	}
	if !explicit["seed"] && file.Seed != 0 {
		c.Seed = file.Seed
	}
}
