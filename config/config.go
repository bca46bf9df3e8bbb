// Package config provides configuration loading and access for the fog volume.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all fog volume configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Animation AnimationConfig `yaml:"animation"`
	Cell      CellConfig      `yaml:"cell"`
	Noise     NoiseConfig     `yaml:"noise"`
	Camera    CameraConfig    `yaml:"camera"`
	Renderer  RendererConfig  `yaml:"renderer"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the initial grid topology.
type GridConfig struct {
	Length       int     `yaml:"length"`
	Width        int     `yaml:"width"`
	Depth        int     `yaml:"depth"`
	CellScale    float64 `yaml:"cell_scale"`
	Gap          float64 `yaml:"gap"`
	BaseCellSize float64 `yaml:"base_cell_size"` // Unscaled edge length of the cell asset
}

// AnimationConfig holds the per-frame noise animation parameters.
type AnimationConfig struct {
	Frequency            float64    `yaml:"frequency"`             // Spatial/temporal noise frequency
	DisplacementFraction float64    `yaml:"displacement_fraction"` // Max jitter as a fraction of spacing
	AlphaMin             float64    `yaml:"alpha_min"`
	AlphaMax             float64    `yaml:"alpha_max"`
	TimeStep             float64    `yaml:"time_step"`         // Time accumulator increment per update call
	DepthCueFalloff      float64    `yaml:"depth_cue_falloff"` // k in 1/(1+k*distance)
	FogTint              [3]float64 `yaml:"fog_tint"`          // RGB held constant, alpha animated
}

// CellConfig holds the per-cell visual finish applied once at load completion.
type CellConfig struct {
	Asset      string     `yaml:"asset"` // "cube" or a model path
	TexRepeats float64    `yaml:"tex_repeats"`
	Specular   [4]float64 `yaml:"specular"`
	Shininess  float64    `yaml:"shininess"`
}

// NoiseConfig selects the 1-D noise source.
type NoiseConfig struct {
	Kind         string  `yaml:"kind"` // value, simplex, perlin
	Seed         int64   `yaml:"seed"`
	PerlinAlpha  float64 `yaml:"perlin_alpha"`
	PerlinBeta   float64 `yaml:"perlin_beta"`
	PerlinOctave int32   `yaml:"perlin_octaves"`
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	Home       [3]float64 `yaml:"home"`
	Target     [3]float64 `yaml:"target"`
	Fovy       float64    `yaml:"fovy"`
	OrbitSpeed float64    `yaml:"orbit_speed"` // Radians per pixel of mouse drag
	ZoomSpeed  float64    `yaml:"zoom_speed"`  // Zoom factor per wheel notch
	MinDist    float64    `yaml:"min_distance"`
	MaxDist    float64    `yaml:"max_distance"`
}

// RendererConfig holds rendering collaborator settings.
type RendererConfig struct {
	LoadsPerFrame int `yaml:"loads_per_frame"` // Async creations resolved per frame (0 = all)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Frames per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Spacing   float64 // Grid.Gap + Grid.BaseCellSize*Grid.CellScale
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Spacing = c.Grid.Gap + c.Grid.BaseCellSize*c.Grid.CellScale
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Noise.Kind == "" {
		c.Noise.Kind = "value"
	}
	if c.Renderer.LoadsPerFrame < 0 {
		c.Renderer.LoadsPerFrame = 0
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
