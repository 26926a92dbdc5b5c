package cave

import (
	"fmt"
	"strconv"

	"cavegen/internal/core"
)

// Config controls the cave generator.
type Config struct {
	Width       int   `yaml:"width"`
	Height      int   `yaml:"height"`
	WallPercent int   `yaml:"wall_percent"`
	Seed        int64 `yaml:"seed"`

	// Workers > 1 evaluates each step in parallel row bands.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:       50,
		Height:      50,
		WallPercent: 45,
		Seed:        42,
		Workers:     1,
	}
}

// Validate reports grid dimensions that cannot produce a cave. FromMap
// silently keeps defaults for such values, so callers taking sizes from users
// check here first.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", core.ErrInvalidDimensions, c.Width, c.Height)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["wall_pct"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.WallPercent = ClampPercent(parsed)
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	return c
}

// Map is the inverse of FromMap.
func (c Config) Map() map[string]string {
	return map[string]string{
		"w":        strconv.Itoa(c.Width),
		"h":        strconv.Itoa(c.Height),
		"wall_pct": strconv.Itoa(c.WallPercent),
		"seed":     strconv.FormatInt(c.Seed, 10),
		"workers":  strconv.Itoa(c.Workers),
	}
}
