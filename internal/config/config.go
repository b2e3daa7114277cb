package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"cdrlink/internal/application"
	"cdrlink/internal/filter"
	"cdrlink/internal/layout"
	"cdrlink/internal/validation"
)

const (
	DefaultDatabasePath = "~/.local/share/cdrlink/workspace.db"
	DefaultConfigPath   = "~/.config/cdrlink/config.yaml"
)

// Config is the on-disk configuration. Every section has working defaults.
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Layout      LayoutConfig      `yaml:"layout"`
	Zoom        ZoomConfig        `yaml:"zoom"`
	Edges       EdgeConfig        `yaml:"edges"`
	Filter      FilterConfig      `yaml:"filter"`
	Aggregation AggregationConfig `yaml:"aggregation"`
	Log         LogConfig         `yaml:"log"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" validate:"required"`
}

type LayoutConfig struct {
	Iterations int     `yaml:"iterations" validate:"min=1,max=10000"`
	K          float64 `yaml:"k" validate:"gt=0"`
	Scale      float64 `yaml:"scale" validate:"gt=0"`
	Seed       uint64  `yaml:"seed"`
}

type ZoomConfig struct {
	Min       float64 `yaml:"min" validate:"gt=0"`
	Max       float64 `yaml:"max" validate:"gtfield=Min"`
	WheelMin  float64 `yaml:"wheel_min" validate:"gt=0"`
	WheelMax  float64 `yaml:"wheel_max" validate:"gtfield=WheelMin"`
	WheelStep float64 `yaml:"wheel_step" validate:"gt=0"`
}

// EdgeConfig bounds the line-weight hint given to renderers
type EdgeConfig struct {
	MinWeight float64 `yaml:"min_weight" validate:"gt=0"`
	MaxWeight float64 `yaml:"max_weight" validate:"gtefield=MinWeight"`
}

type FilterConfig struct {
	MinCalls int `yaml:"min_calls" validate:"min=1"`
	MaxNodes int `yaml:"max_nodes" validate:"min=1"`
}

type AggregationConfig struct {
	Workers int `yaml:"workers" validate:"min=1,max=256"`
}

type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
}

// Default returns the built-in configuration
func Default() *Config {
	lc := layout.DefaultConfig()
	zl := layout.DefaultZoomLimits()
	return &Config{
		Database: DatabaseConfig{Path: DatabasePath()},
		Layout:   LayoutConfig{Iterations: lc.Iterations, K: lc.K, Scale: lc.Scale, Seed: lc.Seed},
		Zoom: ZoomConfig{
			Min: zl.Min, Max: zl.Max, WheelMin: zl.WheelMin, WheelMax: zl.WheelMax, WheelStep: zl.WheelStep,
		},
		Edges:       EdgeConfig{MinWeight: 1, MaxWeight: 5},
		Filter:      FilterConfig{MinCalls: 1, MaxNodes: 500},
		Aggregation: AggregationConfig{Workers: 4},
		Log:         LogConfig{Level: "info"},
	}
}

// DatabasePath returns the snapshot database path from CDRLINK_DB,
// falling back to DefaultDatabasePath.
func DatabasePath() string {
	if env := os.Getenv("CDRLINK_DB"); env != "" {
		return env
	}
	return DefaultDatabasePath
}

// Path returns the config file path from CDRLINK_CONFIG, falling back to
// DefaultConfigPath.
func Path() string {
	if env := os.Getenv("CDRLINK_CONFIG"); env != "" {
		return env
	}
	return DefaultConfigPath
}

// Load layers defaults, the YAML file at path (if it exists) and environment
// overrides, then validates the result. An empty path uses Path().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}
	path = ExpandHome(path)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CDRLINK_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("CDRLINK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("CDRLINK_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Aggregation.Workers = n
		}
	}
}

// Validate checks every section's constraints
func (c *Config) Validate() error {
	return validation.Struct(c)
}

// LayoutEngineConfig converts the layout section
func (c *Config) LayoutEngineConfig() layout.Config {
	lc := layout.DefaultConfig()
	lc.Iterations = c.Layout.Iterations
	lc.K = c.Layout.K
	lc.Scale = c.Layout.Scale
	lc.Seed = c.Layout.Seed
	return lc
}

// ZoomLimits converts the zoom section
func (c *Config) ZoomLimits() layout.ZoomLimits {
	return layout.ZoomLimits{
		Min: c.Zoom.Min, Max: c.Zoom.Max,
		WheelMin: c.Zoom.WheelMin, WheelMax: c.Zoom.WheelMax, WheelStep: c.Zoom.WheelStep,
	}
}

// DefaultFilter is the filter applied when nothing else was requested
func (c *Config) DefaultFilter() filter.Spec {
	spec := filter.DefaultSpec()
	spec.MinCalls = c.Filter.MinCalls
	spec.MaxNodes = c.Filter.MaxNodes
	return spec
}

// WorkspaceOptions assembles the workspace settings from every section
func (c *Config) WorkspaceOptions() application.Options {
	opts := application.DefaultOptions()
	opts.Layout = c.LayoutEngineConfig()
	opts.Zoom = c.ZoomLimits()
	opts.Filter = c.DefaultFilter()
	opts.MinWeight = c.Edges.MinWeight
	opts.MaxWeight = c.Edges.MaxWeight
	opts.Workers = c.Aggregation.Workers
	return opts
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
