package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"

	"mangrovesim/internal/config"
	"mangrovesim/internal/mangrove"
	"mangrovesim/internal/observability"
	"mangrovesim/internal/sim"
	"mangrovesim/internal/terrain"
	"mangrovesim/internal/world"
)

func main() {
	var (
		configPath   string
		writeDefault bool
		seed         int64
		ticks        int
	)
	flag.StringVar(&configPath, "config", "mangrovesim.yml", "simulation configuration (.yml/.yaml or .toml)")
	flag.BoolVar(&writeDefault, "write-default", false, "write the default configuration to --config and exit")
	flag.Int64Var(&seed, "seed", 0, "override growth.seed")
	flag.IntVar(&ticks, "ticks", 0, "override growth.ticks")
	flag.Parse()

	if writeDefault {
		if err := config.WriteDefault(configPath); err != nil {
			log.Fatal().Err(err).Msg("write default config")
		}
		log.Info().Str("path", configPath).Msg("default configuration written")
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := config.WriteDefault(configPath); err != nil {
				log.Fatal().Err(err).Msg("write default config")
			}
			log.Info().Str("path", configPath).Msg("no configuration found, default configuration written")
			cfg, err = config.Load(configPath)
		}
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Growth.Seed = seed
		case "ticks":
			cfg.Growth.Ticks = ticks
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid overrides")
	}

	logger, err := observability.InitLogger("mangrovesim", cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("initialise logger")
	}
	observability.RegisterMetrics()

	ctx, cancel := signalContext(context.Background())
	defer cancel()

	chunk, err := terrain.NewSwamp(cfg.World, cfg.Growth.Seed, terrain.WithLogger(logger)).Generate(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("generate terrain")
	}

	cycle := sim.NewDayNightCycle(cfg.World.DayLengthTicks, cfg.World.InitialHour, cfg.World.SkyLight)
	simulator := sim.New(cfg.Growth, chunk,
		sim.WithLogger(logger),
		sim.WithMetrics(),
		sim.WithDayNight(cycle),
	)
	stats, err := simulator.Run(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Fatal().Err(err).Msg("simulation failed")
		}
		logger.Warn().Int("ticks", stats.Ticks).Msg("simulation interrupted")
	}
	fmt.Println(stats)

	if cfg.Preview.Enabled {
		if err := writePreviews(cfg.Preview, chunk, stats.Trees); err != nil {
			logger.Error().Err(err).Msg("write previews")
		}
	}

	if path := cfg.Metrics.Textfile; path != "" {
		if err := observability.WriteMetricsTextfile(path); err != nil {
			logger.Error().Err(err).Msg("write metrics")
		}
	}
}

// writePreviews renders the whole swamp and the region of each grown tree.
func writePreviews(cfg config.PreviewConfig, chunk *world.Chunk, trees []world.BlockCoord) error {
	for _, entry := range cfg.Palette {
		world.SetAppearance(world.BlockType(entry.ID), world.BlockAppearance{Color: entry.Color, Emission: entry.Emission})
	}

	path := filepath.Join(cfg.OutputDir, "swamp.png")
	if err := world.SaveRegionPreview(chunk, chunk.Bounds, path); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("preview written")

	for i, pos := range trees {
		path := filepath.Join(cfg.OutputDir, fmt.Sprintf("tree-%02d_%d_%d_%d.png", i, pos.X, pos.Y, pos.Z))
		if err := world.SaveRegionPreview(chunk, mangrove.Region(pos), path); err != nil {
			return err
		}
	}
	return nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
