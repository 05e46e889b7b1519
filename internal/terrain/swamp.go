package terrain

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"mangrovesim/internal/config"
	"mangrovesim/internal/world"
)

// grassChance is how often a dry surface cell grows tall grass.
const grassChance = 0.125

// Swamp lays out a low, partly flooded landscape: stone, a soil band whose
// surface wobbles by one cell around the ground level, standing water up to
// the water level, and the odd boulder.
type Swamp struct {
	cfg     config.WorldConfig
	seed    int64
	workers int
	logger  zerolog.Logger
}

type Option func(*Swamp)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Swamp) {
		s.logger = logger
	}
}

// WithWorkers caps the column workers. Zero uses twice GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Swamp) {
		s.workers = n
	}
}

func NewSwamp(cfg config.WorldConfig, seed int64, opts ...Option) *Swamp {
	s := &Swamp{cfg: cfg, seed: seed, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bounds is the box the swamp occupies, anchored at the origin.
func (s *Swamp) Bounds() world.Bounds {
	return world.Bounds{
		Max: world.BlockCoord{X: s.cfg.Width - 1, Y: s.cfg.Depth - 1, Z: s.cfg.Height - 1},
	}
}

// SurfaceZ is the first non-soil cell of column (x, y).
func (s *Swamp) SurfaceZ(x, y int) int {
	noise := fractalNoise(float64(x), float64(y), s.seed)
	surface := s.cfg.GroundLevel + int(math.Round(noise))
	return clampInt(surface, 1, s.cfg.Height-1)
}

// Generate builds the chunk. Columns are filled concurrently and written
// from the collecting goroutine.
func (s *Swamp) Generate(ctx context.Context) (*world.Chunk, error) {
	bounds := s.Bounds()
	chunk := world.NewChunk(bounds)
	chunk.SetSkyLight(s.cfg.SkyLight)

	dim := chunk.Dimensions()
	totalColumns := dim.Width * dim.Depth
	if totalColumns <= 0 {
		return chunk, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type columnTask struct {
		localX int
		localY int
	}

	type columnResult struct {
		localX int
		localY int
		column []world.Block
		err    error
	}

	workers := s.workerCount(totalColumns)
	tasks := make(chan columnTask, workers)
	results := make(chan columnResult, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range tasks {
				if err := ctx.Err(); err != nil {
					select {
					case results <- columnResult{err: err}:
					default:
					}
					return
				}
				column := s.populateColumn(task.localX, task.localY)
				select {
				case results <- columnResult{localX: task.localX, localY: task.localY, column: column}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(tasks)
		for x := 0; x < dim.Width; x++ {
			for y := 0; y < dim.Depth; y++ {
				select {
				case <-ctx.Done():
					return
				case tasks <- columnTask{localX: x, localY: y}:
				}
			}
		}
	}()

	generated := 0
	for result := range results {
		if result.err != nil {
			cancel()
			return nil, result.err
		}
		chunk.SetColumnBlocks(result.localX, result.localY, result.column)
		generated++
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("columns", generated).
		Int("ground_level", s.cfg.GroundLevel).
		Int("water_level", s.cfg.WaterLevel).
		Msg("swamp generated")
	return chunk, nil
}

func (s *Swamp) populateColumn(x, y int) []world.Block {
	surface := s.SurfaceZ(x, y)
	column := make([]world.Block, s.cfg.Height)

	soilDepth := s.cfg.SoilDepth
	if soilDepth <= 0 {
		soilDepth = surface
	}
	soilStart := surface - soilDepth
	if soilStart < 0 {
		soilStart = 0
	}
	fillBlockRange(column, 0, soilStart-1, world.Block{Type: world.BlockStone})
	fillBlockRange(column, soilStart, surface-2, world.Block{Type: world.BlockDirt})

	flooded := surface < s.cfg.WaterLevel
	if flooded {
		column[surface-1] = world.Block{Type: world.BlockMud}
		fillBlockRange(column, surface, s.cfg.WaterLevel-1, world.Block{Type: world.BlockWater})
	} else {
		column[surface-1] = world.Block{Type: world.BlockGrass}
	}

	rng := newColumnRNG(x, y, s.seed)
	switch {
	case rng.chance(s.cfg.ObstacleChance):
		column[surface] = world.Block{Type: world.BlockStone}
	case !flooded && rng.chance(grassChance):
		column[surface] = world.Block{Type: world.BlockTallGrass}
	}
	return column
}

func fillBlockRange(column []world.Block, start, end int, value world.Block) {
	if start < 0 {
		start = 0
	}
	if end >= len(column) {
		end = len(column) - 1
	}
	for i := start; i <= end; i++ {
		column[i] = value
	}
}

func (s *Swamp) workerCount(totalColumns int) int {
	workers := s.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0) * 2
	}
	if workers > totalColumns {
		workers = totalColumns
	}
	if workers <= 0 {
		workers = 1
	}
	return workers
}
