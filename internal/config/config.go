package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so configuration files can use strings such
// as "50ms". It round-trips through both YAML and TOML as text.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText decodes a duration string. Empty values decode to zero.
func (d *Duration) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration: parse %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config captures everything the simulator needs to build a world and grow it.
type Config struct {
	World   WorldConfig   `yaml:"world" toml:"world"`
	Growth  GrowthConfig  `yaml:"growth" toml:"growth"`
	Preview PreviewConfig `yaml:"preview" toml:"preview"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`
	Log     LogConfig     `yaml:"log" toml:"log"`
}

type WorldConfig struct {
	Width  int `yaml:"width" toml:"width"`
	Depth  int `yaml:"depth" toml:"depth"`
	Height int `yaml:"height" toml:"height"`
	// GroundLevel is the first cell above the soil floor.
	GroundLevel int `yaml:"ground_level" toml:"ground_level"`
	// WaterLevel is the first dry cell; water fills from the ground up to it.
	WaterLevel     int     `yaml:"water_level" toml:"water_level"`
	SkyLight       int     `yaml:"sky_light" toml:"sky_light"`
	ObstacleChance float64 `yaml:"obstacle_chance" toml:"obstacle_chance"`
	// SoilDepth is how many soil layers sit under the ground level.
	SoilDepth int `yaml:"soil_depth" toml:"soil_depth"`
	// DayLengthTicks enables a day/night sky light cycle. Zero keeps a
	// constant sky.
	DayLengthTicks int     `yaml:"day_length_ticks" toml:"day_length_ticks"`
	InitialHour    float64 `yaml:"initial_hour" toml:"initial_hour"`
}

type GrowthConfig struct {
	Seed               int64           `yaml:"seed" toml:"seed"`
	Ticks              int             `yaml:"ticks" toml:"ticks"`
	RandomTicksPerTick int             `yaml:"random_ticks_per_tick" toml:"random_ticks_per_tick"`
	TickInterval       Duration        `yaml:"tick_interval" toml:"tick_interval"`
	BoneMeal           int             `yaml:"bone_meal" toml:"bone_meal"`
	Propagules         []PropaguleSpot `yaml:"propagules" toml:"propagules"`
}

// PropaguleSpot is a column where the simulator plants a seed on the ground.
type PropaguleSpot struct {
	X int `yaml:"x" toml:"x"`
	Y int `yaml:"y" toml:"y"`
}

type PreviewConfig struct {
	Enabled   bool          `yaml:"enabled" toml:"enabled"`
	OutputDir string        `yaml:"output_dir" toml:"output_dir"`
	Palette   []BlockColour `yaml:"palette" toml:"palette"`
}

// BlockColour overrides the preview appearance of one block type.
type BlockColour struct {
	ID       string  `yaml:"id" toml:"id"`
	Color    string  `yaml:"color" toml:"color"`
	Emission float64 `yaml:"emission,omitempty" toml:"emission,omitempty"`
}

type MetricsConfig struct {
	// Textfile receives a Prometheus text dump after the run. Empty disables it.
	Textfile string `yaml:"textfile" toml:"textfile"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads path on top of Default and validates the result. Files ending
// in .toml are decoded as TOML, anything else as YAML.
func Load(path string) (*Config, error) {
	cfg := Default()
	if isTOML(path) {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	w := c.World
	if w.Width <= 0 || w.Depth <= 0 || w.Height <= 0 {
		return errors.New("world dimensions must be positive")
	}
	if w.GroundLevel < 1 || w.GroundLevel >= w.Height {
		return fmt.Errorf("world.ground_level must be within 1..%d", w.Height-1)
	}
	if w.WaterLevel < w.GroundLevel || w.WaterLevel >= w.Height {
		return fmt.Errorf("world.water_level must be within %d..%d", w.GroundLevel, w.Height-1)
	}
	if w.SkyLight < 0 || w.SkyLight > 15 {
		return errors.New("world.sky_light must be within 0..15")
	}
	if w.ObstacleChance < 0 || w.ObstacleChance > 1 {
		return errors.New("world.obstacle_chance must be within 0..1")
	}
	if c.World.SoilDepth <= 0 || c.World.SoilDepth > w.GroundLevel {
		c.World.SoilDepth = w.GroundLevel
	}
	if w.DayLengthTicks < 0 {
		return errors.New("world.day_length_ticks cannot be negative")
	}
	if w.InitialHour < 0 || w.InitialHour >= 24 {
		c.World.InitialHour = 12.0
	}

	g := c.Growth
	if g.Ticks < 0 {
		return errors.New("growth.ticks cannot be negative")
	}
	if g.RandomTicksPerTick < 0 {
		return errors.New("growth.random_ticks_per_tick cannot be negative")
	}
	if g.TickInterval < 0 {
		return errors.New("growth.tick_interval cannot be negative")
	}
	if g.BoneMeal < 0 {
		return errors.New("growth.bone_meal cannot be negative")
	}
	for i, spot := range g.Propagules {
		if spot.X < 0 || spot.X >= w.Width || spot.Y < 0 || spot.Y >= w.Depth {
			return fmt.Errorf("growth.propagules[%d] (%d,%d) lies outside the world", i, spot.X, spot.Y)
		}
	}

	if c.Preview.Enabled && c.Preview.OutputDir == "" {
		c.Preview.OutputDir = "previews"
	}
	for i, entry := range c.Preview.Palette {
		if entry.ID == "" {
			return fmt.Errorf("preview.palette[%d].id must be set", i)
		}
		if !isValidHexColor(entry.Color) {
			return fmt.Errorf("preview.palette[%d].color must be a hex RGB value", i)
		}
		if entry.Emission < 0 || entry.Emission > 1 {
			return fmt.Errorf("preview.palette[%d].emission must be within 0..1", i)
		}
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level invalid: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "":
		c.Log.Format = "console"
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be either 'console' or 'json'")
	}
	return nil
}

func isValidHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, ch := range s[1:] {
		switch {
		case ch >= '0' && ch <= '9':
		case ch >= 'a' && ch <= 'f':
		case ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}
