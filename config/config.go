// Package config loads editor options from a YAML file. Missing fields
// fall back to defaults, so an empty or absent file is always usable.
//
// Config file locations (priority order):
//  1. $VELLUM_CONFIG
//  2. ./vellum.yaml
//  3. ~/.config/vellum/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"vellum/editor"
	"vellum/geometry"
)

// Config holds the tunable editor options.
type Config struct {
	MinNodeWidth   float32 `yaml:"min_node_width"`
	MinNodeHeight  float32 `yaml:"min_node_height"`
	GridStep       float32 `yaml:"grid_step"`
	ZoomStep       float32 `yaml:"zoom_step"`
	HistoryLimit   int     `yaml:"history_limit"`
	PortHitRadius  float32 `yaml:"port_hit_radius"`
	EdgeHitRadius  float32 `yaml:"edge_hit_radius"`
	CurveFactor    float32 `yaml:"curve_factor"`
	ViewportWidth  float32 `yaml:"viewport_width"`
	ViewportHeight float32 `yaml:"viewport_height"`
}

// Default returns the defaults used when no config file exists.
func Default() *Config {
	return &Config{
		MinNodeWidth:   20,
		MinNodeHeight:  20,
		GridStep:       0,
		ZoomStep:       0.1,
		HistoryLimit:   100,
		PortHitRadius:  12,
		EdgeHitRadius:  6,
		CurveFactor:    0.25,
		ViewportWidth:  800,
		ViewportHeight: 600,
	}
}

// Load finds and loads the config file, or returns defaults if none is
// found. The second result is the path actually used, empty for defaults.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes the config to the given path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// FindConfigPath returns the first config path that exists, or "".
func FindConfigPath() string {
	if env := os.Getenv("VELLUM_CONFIG"); env != "" {
		return env
	}
	candidates := []string{"./vellum.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "vellum", "config.yaml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// EditorOptions converts the config to editor options.
func (c *Config) EditorOptions() editor.Options {
	return editor.Options{
		MinNodeWidth:  c.MinNodeWidth,
		MinNodeHeight: c.MinNodeHeight,
		GridStep:      c.GridStep,
		ZoomStep:      c.ZoomStep,
		HistoryLimit:  c.HistoryLimit,
		PortHitRadius: c.PortHitRadius,
		EdgeHitRadius: c.EdgeHitRadius,
		CurveFactor:   c.CurveFactor,
		Viewport:      geometry.Viewport{W: c.ViewportWidth, H: c.ViewportHeight},
	}
}

// applyDefaults fills zero fields from Default.
func (c *Config) applyDefaults() {
	d := Default()
	if c.MinNodeWidth <= 0 {
		c.MinNodeWidth = d.MinNodeWidth
	}
	if c.MinNodeHeight <= 0 {
		c.MinNodeHeight = d.MinNodeHeight
	}
	if c.ZoomStep <= 0 {
		c.ZoomStep = d.ZoomStep
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = d.HistoryLimit
	}
	if c.PortHitRadius <= 0 {
		c.PortHitRadius = d.PortHitRadius
	}
	if c.EdgeHitRadius <= 0 {
		c.EdgeHitRadius = d.EdgeHitRadius
	}
	if c.CurveFactor <= 0 {
		c.CurveFactor = d.CurveFactor
	}
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = d.ViewportWidth
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = d.ViewportHeight
	}
}
