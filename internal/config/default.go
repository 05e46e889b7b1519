package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Default returns a configuration that grows a small mangrove swamp without
// any prior configuration.
func Default() Config {
	return Config{
		World: WorldConfig{
			Width:          32,
			Depth:          32,
			Height:         24,
			GroundLevel:    8,
			WaterLevel:     9,
			SkyLight:       15,
			ObstacleChance: 0.01,
			SoilDepth:      4,
			DayLengthTicks: 1200,
			InitialHour:    8,
		},
		Growth: GrowthConfig{
			Seed:               1,
			Ticks:              2000,
			RandomTicksPerTick: 512,
			BoneMeal:           0,
			Propagules: []PropaguleSpot{
				{X: 8, Y: 8},
				{X: 23, Y: 10},
				{X: 15, Y: 22},
			},
		},
		Preview: PreviewConfig{
			Enabled:   true,
			OutputDir: "previews",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// WriteDefault writes the default configuration to path, as TOML when the
// extension asks for it and YAML otherwise.
func WriteDefault(path string) error {
	cfg := Default()

	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("marshal default config: %w", err)
		}
		data = buf.Bytes()
	} else {
		out, err := yaml.Marshal(&cfg)
		if err != nil {
			return fmt.Errorf("marshal default config: %w", err)
		}
		data = out
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	return nil
}
