package config

import (
	"fmt"
	"os"

	"cavegen/internal/core"
	"cavegen/internal/sims/cave"

	"gopkg.in/yaml.v3"
)

// Config holds all service and generator configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Cave   cave.Config  `yaml:"cave"`
	Limits LimitsConfig `yaml:"limits"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LimitsConfig bounds what clients of the service may request
type LimitsConfig struct {
	MaxWidth           int `yaml:"max_width"`
	MaxHeight          int `yaml:"max_height"`
	MaxSessions        int `yaml:"max_sessions"`
	MaxStepsPerRequest int `yaml:"max_steps_per_request"`
	// MaxImagePixels caps width*height of a rendered PNG after scaling.
	MaxImagePixels int `yaml:"max_image_pixels"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Cave:   cave.DefaultConfig(),
		Limits: LimitsConfig{
			MaxWidth:           512,
			MaxHeight:          512,
			MaxSessions:        64,
			MaxStepsPerRequest: 100,
			MaxImagePixels:     4 << 20,
		},
	}
}

// Load reads configuration from a YAML file. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be repaired by clamping.
func (c *Config) Validate() error {
	if c.Cave.Width <= 0 || c.Cave.Height <= 0 {
		return fmt.Errorf("cave: %w: %dx%d", core.ErrInvalidDimensions, c.Cave.Width, c.Cave.Height)
	}
	if c.Limits.MaxWidth > 0 && c.Cave.Width > c.Limits.MaxWidth {
		return fmt.Errorf("cave width %d exceeds limits.max_width %d", c.Cave.Width, c.Limits.MaxWidth)
	}
	if c.Limits.MaxHeight > 0 && c.Cave.Height > c.Limits.MaxHeight {
		return fmt.Errorf("cave height %d exceeds limits.max_height %d", c.Cave.Height, c.Limits.MaxHeight)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	c.Cave.WallPercent = cave.ClampPercent(c.Cave.WallPercent)
	return nil
}
