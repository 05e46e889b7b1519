package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestValidateDefaultConfig(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration should be valid: %v", err)
	}
}

func TestValidateAppliesDefaults(t *testing.T) {
	cfg := Default()
	cfg.World.SoilDepth = 0
	cfg.Preview.OutputDir = ""
	cfg.Log = LogConfig{}
	cfg.World.InitialHour = 30

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	if cfg.World.SoilDepth != cfg.World.GroundLevel {
		t.Fatalf("SoilDepth = %d, want ground level %d", cfg.World.SoilDepth, cfg.World.GroundLevel)
	}
	if cfg.World.InitialHour != 12 {
		t.Fatalf("InitialHour = %v, want 12", cfg.World.InitialHour)
	}
	if cfg.Preview.OutputDir != "previews" {
		t.Fatalf("OutputDir = %q, want previews", cfg.Preview.OutputDir)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Fatalf("Log = %+v, want info/console", cfg.Log)
	}
}

func TestValidateDetectsInvalidConfigurations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "non positive dimensions",
			mutate:  func(cfg *Config) { cfg.World.Depth = 0 },
			wantErr: "world dimensions must be positive",
		},
		{
			name:    "ground at bottom",
			mutate:  func(cfg *Config) { cfg.World.GroundLevel = 0 },
			wantErr: "world.ground_level",
		},
		{
			name:    "ground above world",
			mutate:  func(cfg *Config) { cfg.World.GroundLevel = cfg.World.Height },
			wantErr: "world.ground_level",
		},
		{
			name:    "water below ground",
			mutate:  func(cfg *Config) { cfg.World.WaterLevel = cfg.World.GroundLevel - 1 },
			wantErr: "world.water_level",
		},
		{
			name:    "sky light too bright",
			mutate:  func(cfg *Config) { cfg.World.SkyLight = 16 },
			wantErr: "world.sky_light",
		},
		{
			name:    "obstacle chance above one",
			mutate:  func(cfg *Config) { cfg.World.ObstacleChance = 1.5 },
			wantErr: "world.obstacle_chance",
		},
		{
			name:    "negative day length",
			mutate:  func(cfg *Config) { cfg.World.DayLengthTicks = -1 },
			wantErr: "world.day_length_ticks",
		},
		{
			name:    "negative ticks",
			mutate:  func(cfg *Config) { cfg.Growth.Ticks = -1 },
			wantErr: "growth.ticks",
		},
		{
			name:    "negative random ticks",
			mutate:  func(cfg *Config) { cfg.Growth.RandomTicksPerTick = -1 },
			wantErr: "growth.random_ticks_per_tick",
		},
		{
			name:    "negative interval",
			mutate:  func(cfg *Config) { cfg.Growth.TickInterval = Duration(-time.Second) },
			wantErr: "growth.tick_interval",
		},
		{
			name:    "negative bone meal",
			mutate:  func(cfg *Config) { cfg.Growth.BoneMeal = -2 },
			wantErr: "growth.bone_meal",
		},
		{
			name: "propagule outside world",
			mutate: func(cfg *Config) {
				cfg.Growth.Propagules = append(cfg.Growth.Propagules, PropaguleSpot{X: cfg.World.Width, Y: 0})
			},
			wantErr: "growth.propagules[3]",
		},
		{
			name: "palette missing id",
			mutate: func(cfg *Config) {
				cfg.Preview.Palette = []BlockColour{{Color: "#ffffff"}}
			},
			wantErr: "preview.palette[0].id",
		},
		{
			name: "palette bad colour",
			mutate: func(cfg *Config) {
				cfg.Preview.Palette = []BlockColour{{ID: "mud", Color: "brown"}}
			},
			wantErr: "preview.palette[0].color",
		},
		{
			name:    "unknown log level",
			mutate:  func(cfg *Config) { cfg.Log.Level = "chatty" },
			wantErr: "log.level invalid",
		},
		{
			name:    "unknown log format",
			mutate:  func(cfg *Config) { cfg.Log.Format = "xml" },
			wantErr: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadReadsYAMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.yaml")
	if err := os.WriteFile(path, []byte(`
world:
  width: 16
  depth: 12
growth:
  seed: 42
  tick_interval: 5ms
  propagules:
    - x: 3
      y: 4
log:
  format: json
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.World.Width != 16 || cfg.World.Depth != 12 {
		t.Errorf("World = %+v, want 16x12", cfg.World)
	}
	if cfg.World.Height != Default().World.Height {
		t.Errorf("Height = %d, want default %d", cfg.World.Height, Default().World.Height)
	}
	if cfg.Growth.Seed != 42 || cfg.Growth.TickInterval.Duration() != 5*time.Millisecond {
		t.Errorf("Growth = %+v, want seed 42 and 5ms interval", cfg.Growth)
	}
	if len(cfg.Growth.Propagules) != 1 || cfg.Growth.Propagules[0] != (PropaguleSpot{X: 3, Y: 4}) {
		t.Errorf("Propagules = %+v, want single (3,4)", cfg.Growth.Propagules)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "info" {
		t.Errorf("Log = %+v, want json/info", cfg.Log)
	}
}

func TestLoadReadsTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.toml")
	if err := os.WriteFile(path, []byte(`
[world]
water_level = 12
obstacle_chance = 0.0

[growth]
ticks = 10
bone_meal = 2

[[growth.propagules]]
x = 1
y = 2

[[preview.palette]]
id = "mud"
color = "#302010"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.World.WaterLevel != 12 || cfg.World.ObstacleChance != 0 {
		t.Errorf("World = %+v, want water 12 and no obstacles", cfg.World)
	}
	if cfg.Growth.Ticks != 10 || cfg.Growth.BoneMeal != 2 {
		t.Errorf("Growth = %+v", cfg.Growth)
	}
	if len(cfg.Growth.Propagules) != 1 || cfg.Growth.Propagules[0] != (PropaguleSpot{X: 1, Y: 2}) {
		t.Errorf("Propagules = %+v, want single (1,2)", cfg.Growth.Propagules)
	}
	if len(cfg.Preview.Palette) != 1 || cfg.Preview.Palette[0].Color != "#302010" {
		t.Errorf("Palette = %+v", cfg.Preview.Palette)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("world:\n  sky_light: 99\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load() = nil, want validation error")
	}

	garbled := filepath.Join(dir, "garbled.toml")
	if err := os.WriteFile(garbled, []byte("[world\nwidth = "), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(garbled); err == nil {
		t.Fatalf("Load() = nil, want parse error")
	}
}

func TestLoadPropagatesReadErrors(t *testing.T) {
	if _, err := Load("/nonexistent/path.yaml"); err == nil {
		t.Fatalf("Load() = nil, want error")
	}
	if _, err := Load("/nonexistent/path.toml"); err == nil {
		t.Fatalf("Load() = nil, want error")
	}
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	for _, name := range []string{"nested/sim.yaml", "nested/sim.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := WriteDefault(path); err != nil {
				t.Fatalf("WriteDefault() error = %v", err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			want := Default()
			if cfg.World != want.World {
				t.Fatalf("World = %+v, want %+v", cfg.World, want.World)
			}
			if cfg.Growth.Seed != want.Growth.Seed || cfg.Growth.Ticks != want.Growth.Ticks ||
				cfg.Growth.RandomTicksPerTick != want.Growth.RandomTicksPerTick {
				t.Fatalf("Growth = %+v, want %+v", cfg.Growth, want.Growth)
			}
			if len(cfg.Growth.Propagules) != len(want.Growth.Propagules) {
				t.Fatalf("Propagules = %+v, want %+v", cfg.Growth.Propagules, want.Growth.Propagules)
			}
			if cfg.Preview.Enabled != want.Preview.Enabled || cfg.Log != want.Log {
				t.Fatalf("Preview/Log = %+v/%+v", cfg.Preview, cfg.Log)
			}
		})
	}
}
