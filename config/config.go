// Package config provides configuration loading and access for the renderer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all renderer configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Sampling   SamplingConfig   `yaml:"sampling"`
	Iterations IterationsConfig `yaml:"iterations"`
	View       ViewConfig       `yaml:"view"`
	Rotation   RotationConfig   `yaml:"rotation"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Tone       ToneConfig       `yaml:"tone"`
	Trace      TraceConfig      `yaml:"trace"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The accumulation buffer has the
// same resolution as the window, so the window is not resizable.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SamplingConfig holds stochastic sampling parameters.
type SamplingConfig struct {
	LanesPerDispatch int     `yaml:"lanes_per_dispatch"` // Paths simulated per dispatch
	QuickRejectIters int     `yaml:"quick_reject_iters"` // Iterations before the quick-reject test gives up
	BiasCap          float64 `yaml:"bias_cap"`           // Max fraction of viewport-biased samples (keeps a global floor)
	RegionExpand     float64 `yaml:"region_expand"`      // Viewport box expansion factor for importance sampling
}

// IterationsConfig holds per-channel iteration thresholds.
// Values above the kernel's iteration ceiling are silently capped.
type IterationsConfig struct {
	Red     int `yaml:"red"`     // Short-orbit channel
	Green   int `yaml:"green"`   // Mid-orbit channel
	Blue    int `yaml:"blue"`    // Long-orbit channel
	Classic int `yaml:"classic"` // Single threshold used by classic mode
}

// ViewConfig holds viewport and zoom animation parameters.
type ViewConfig struct {
	MinZoom  float64 `yaml:"min_zoom"`
	MaxZoom  float64 `yaml:"max_zoom"`
	Damping  float64 `yaml:"damping"`   // Fraction of remaining distance covered per frame
	BaseHalf float64 `yaml:"base_half"` // Vertical half-extent of the view at zoom 1
}

// RotationConfig holds the initial 4D rotation angles in radians.
type RotationConfig struct {
	AngleXZ float64 `yaml:"angle_xz"`
	AngleYW float64 `yaml:"angle_yw"`
}

// SchedulerConfig holds the per-frame dispatch budget.
type SchedulerConfig struct {
	BudgetMS      float64 `yaml:"budget_ms"`       // Wall-clock budget for simulate dispatches per frame
	InitialPassMS float64 `yaml:"initial_pass_ms"` // Seed value for the smoothed per-dispatch estimate
}

// ToneConfig selects the startup display mode.
type ToneConfig struct {
	Mode string `yaml:"mode"` // "classic", "nebula" or "nebula_aesthetic"
}

// TraceConfig holds orbit tracer settings.
type TraceConfig struct {
	Enabled  bool `yaml:"enabled"`
	MaxIters int  `yaml:"max_iters"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds between stats log lines / CSV rows
	PerfWindow  int     `yaml:"perf_window"`  // Frames averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	PixelCount int     // Screen.Width * Screen.Height
	Aspect     float64 // Screen.Width / Screen.Height
	Width32    int32
	Height32   int32
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
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the pipeline cannot run with.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("config: screen dimensions must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Sampling.LanesPerDispatch <= 0 {
		return fmt.Errorf("config: lanes_per_dispatch must be positive, got %d", c.Sampling.LanesPerDispatch)
	}
	if c.View.MinZoom <= 0 || c.View.MaxZoom < c.View.MinZoom {
		return fmt.Errorf("config: invalid zoom range [%g, %g]", c.View.MinZoom, c.View.MaxZoom)
	}
	if c.Scheduler.BudgetMS <= 0 {
		return fmt.Errorf("config: scheduler budget_ms must be positive, got %g", c.Scheduler.BudgetMS)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.PixelCount = c.Screen.Width * c.Screen.Height
	c.Derived.Aspect = float64(c.Screen.Width) / float64(c.Screen.Height)
	c.Derived.Width32 = int32(c.Screen.Width)
	c.Derived.Height32 = int32(c.Screen.Height)
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
