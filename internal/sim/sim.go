package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/zyedidia/generic/mapset"

	"mangrovesim/internal/config"
	"mangrovesim/internal/mangrove"
	"mangrovesim/internal/observability"
	"mangrovesim/internal/world"
)

// Stats summarises a run.
type Stats struct {
	Ticks       int
	RandomTicks int
	Planted     int
	Fertilized  int
	Grown       int
	Matured     int
	Destroyed   int
	FluidTicks  int
	Propagules  int
	// Trees lists the cells grown trees started from, in growth order.
	Trees   []world.BlockCoord
	Changes *world.ChangeSet
}

// Simulator drives propagules in a chunk with random ticks, the way a
// host world would.
type Simulator struct {
	cfg       config.GrowthConfig
	chunk     *world.Chunk
	propagule *mangrove.Propagule
	rng       *rand.Rand
	logger    zerolog.Logger
	metrics   bool
	dayNight  *DayNightCycle
	phase     string

	seeds   mapset.Set[world.BlockCoord]
	changes *world.ChangeSet
	stats   Stats
}

type Option func(*Simulator)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// WithMetrics records tick and growth counters in the process registry.
func WithMetrics() Option {
	return func(s *Simulator) {
		s.metrics = true
	}
}

// WithDayNight drives the chunk's sky light from cycle on every tick.
func WithDayNight(cycle *DayNightCycle) Option {
	return func(s *Simulator) {
		s.dayNight = cycle
	}
}

func New(cfg config.GrowthConfig, chunk *world.Chunk, opts ...Option) *Simulator {
	s := &Simulator{
		cfg:     cfg,
		chunk:   chunk,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		logger:  zerolog.Nop(),
		seeds:   mapset.New[world.BlockCoord](),
		changes: world.NewChangeSet(),
	}
	for _, opt := range opts {
		opt(s)
	}
	gen := mangrove.NewGenerator(mangrove.WithLogger(s.logger))
	s.propagule = mangrove.NewPropagule(gen, s.logger)
	return s
}

// Run plants the configured propagules, applies bone meal, then runs the
// configured number of ticks. It stops early when ctx is done.
func (s *Simulator) Run(ctx context.Context) (Stats, error) {
	for _, spot := range s.cfg.Propagules {
		s.Plant(spot.X, spot.Y)
	}

	for round := 0; round < s.cfg.BoneMeal; round++ {
		for _, pos := range s.sortedSeeds() {
			s.Fertilize(pos)
		}
	}

	var ticker *time.Ticker
	if interval := s.cfg.TickInterval.Duration(); interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}

	for tick := 0; tick < s.cfg.Ticks; tick++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return s.Stats(), ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return s.Stats(), err
		}
		s.Tick()
	}

	stats := s.Stats()
	s.logger.Info().
		Int("ticks", stats.Ticks).
		Int("planted", stats.Planted).
		Int("grown", stats.Grown).
		Int("matured", stats.Matured).
		Int("destroyed", stats.Destroyed).
		Int("propagules", stats.Propagules).
		Int("writes", stats.Changes.Writes()).
		Msg("simulation finished")
	if s.metrics {
		for typ, n := range stats.Changes.CountByType() {
			observability.RecordBlockWrites(string(typ), n)
		}
	}
	return stats, nil
}

// Stats returns a snapshot of the counters so far.
func (s *Simulator) Stats() Stats {
	stats := s.stats
	stats.Propagules = s.seeds.Size()
	stats.Trees = append([]world.BlockCoord(nil), s.stats.Trees...)
	stats.Changes = s.changes
	return stats
}

// Plant drops a grounded propagule onto the surface of column (x, y). It
// returns false when the column has no soil to root in or the surface cell
// is taken.
func (s *Simulator) Plant(x, y int) bool {
	pos, ok := s.surface(x, y)
	if !ok {
		s.logger.Debug().Int("x", x).Int("y", y).Msg("no soil to plant in")
		return false
	}
	state, ok := s.propagule.Place(s.chunk, pos, []world.Direction{world.Down})
	if !ok {
		return false
	}
	rec := world.NewRecordingGrid(s.chunk, world.ReasonPlace)
	rec.SetBlock(pos, state)
	s.apply(rec.Changes())
	s.stats.Planted++
	s.logger.Debug().Stringer("pos", pos).Bool("waterlogged", state.Waterlogged).Msg("propagule planted")
	return true
}

// Edit writes block at pos as a host edit would and lets adjacent
// propagules react to it.
func (s *Simulator) Edit(pos world.BlockCoord, block world.Block) {
	reason := world.ReasonPlace
	if block.IsAir() {
		reason = world.ReasonDestroy
	}
	rec := world.NewRecordingGrid(s.chunk, reason)
	rec.SetBlock(pos, block)
	s.apply(rec.Changes())
}

// Push shoves the block at pos one cell towards dir the way a piston
// would. Blocks only move into air. Propagules follow their movement
// behaviour and break instead, leaving their water behind. It reports
// whether the block moved.
func (s *Simulator) Push(pos world.BlockCoord, dir world.Direction) bool {
	block := s.chunk.Block(pos)
	if block.IsAir() || block.Type == world.BlockVoid {
		return false
	}
	behavior := mangrove.MovementNormal
	if block.Type == world.BlockMangrovePropagule {
		behavior = s.propagule.MovementBehavior()
	}

	switch behavior {
	case mangrove.MovementBlock:
		return false
	case mangrove.MovementDestroy:
		rest := world.Air
		if block.Fluid() == world.BlockWater {
			rest = world.Block{Type: world.BlockWater}
		}
		rec := world.NewRecordingGrid(s.chunk, world.ReasonDestroy)
		rec.SetBlock(pos, rest)
		s.stats.Destroyed++
		if s.metrics {
			observability.RecordDestroyed()
		}
		s.logger.Debug().Stringer("pos", pos).Stringer("dir", dir).Msg("pushed block broke")
		s.apply(rec.Changes())
		return false
	}

	target := pos.Neighbor(dir)
	if !s.chunk.Block(target).IsAir() {
		return false
	}
	rec := world.NewRecordingGrid(s.chunk, world.ReasonPlace)
	rec.SetBlock(target, block)
	rec.SetBlock(pos, world.Air)
	s.apply(rec.Changes())
	return true
}

// surface finds the lowest open cell above the top soil of a column.
func (s *Simulator) surface(x, y int) (world.BlockCoord, bool) {
	b := s.chunk.Bounds
	for z := b.Max.Z; z > b.Min.Z; z-- {
		pos := world.BlockCoord{X: x, Y: y, Z: z}
		below := s.chunk.Block(pos.Neighbor(world.Down))
		if !below.IsSoil() {
			continue
		}
		switch s.chunk.Block(pos).Type {
		case world.BlockAir, world.BlockWater, world.BlockTallGrass:
			return pos, true
		}
		return world.BlockCoord{}, false
	}
	return world.BlockCoord{}, false
}

// Fertilize applies bone meal to the propagule at pos.
func (s *Simulator) Fertilize(pos world.BlockCoord) mangrove.Outcome {
	state := s.chunk.Block(pos)
	if state.Type != world.BlockMangrovePropagule || !s.propagule.Fertilizable() {
		return mangrove.OutcomeNone
	}
	s.stats.Fertilized++
	return s.grow(pos, func(grid world.Grid) mangrove.Outcome {
		return s.propagule.Fertilize(grid, pos, state, s.rng)
	})
}

// Tick picks random cells across the chunk and nudges every propagule hit.
func (s *Simulator) Tick() {
	if s.dayNight != nil {
		state := s.dayNight.State(s.stats.Ticks)
		s.chunk.SetSkyLight(state.SkyLight)
		if state.Phase != s.phase {
			s.phase = state.Phase
			s.logger.Debug().Int("tick", s.stats.Ticks).Str("phase", state.Phase).Int("sky_light", state.SkyLight).Msg("phase changed")
		}
	}
	dim := s.chunk.Dimensions()
	base := s.chunk.Bounds.Min
	for i := 0; i < s.cfg.RandomTicksPerTick; i++ {
		pos := base.Add(s.rng.Intn(dim.Width), s.rng.Intn(dim.Depth), s.rng.Intn(dim.Height))
		state := s.chunk.Block(pos)
		if state.Type != world.BlockMangrovePropagule {
			continue
		}
		s.stats.RandomTicks++
		s.grow(pos, func(grid world.Grid) mangrove.Outcome {
			return s.propagule.RandomTick(grid, pos, state, s.rng)
		})
	}
	s.stats.Ticks++
	if s.metrics {
		observability.RecordTick(s.seeds.Size())
	}
}

func (s *Simulator) grow(pos world.BlockCoord, step func(world.Grid) mangrove.Outcome) mangrove.Outcome {
	rec := world.NewRecordingGrid(s.chunk, world.ReasonGrowth)
	outcome := step(rec)
	switch outcome {
	case mangrove.OutcomeGrown:
		s.stats.Grown++
		s.stats.Trees = append(s.stats.Trees, pos)
		s.logger.Info().Stringer("pos", pos).Int("writes", rec.Changes().Writes()).Msg("mangrove grown")
	case mangrove.OutcomeMatured:
		s.stats.Matured++
	}
	if s.metrics && outcome != mangrove.OutcomeNone {
		observability.RecordGrowth(outcome.String())
	}
	s.apply(rec.Changes())
	return outcome
}

// apply folds a batch of writes into the run, keeps the live propagule set
// current and notifies the neighbours of every written cell.
func (s *Simulator) apply(batch *world.ChangeSet) {
	if batch.Len() == 0 {
		return
	}
	s.changes.Merge(batch)

	type notice struct {
		pos  world.BlockCoord
		from world.Direction
	}
	var queue []notice
	enqueue := func(changes []world.BlockChange) {
		for _, change := range changes {
			if change.After.Type == world.BlockMangrovePropagule {
				s.seeds.Put(change.Coord)
			} else {
				s.seeds.Remove(change.Coord)
			}
			for _, dir := range world.AllDirections {
				queue = append(queue, notice{pos: change.Coord.Neighbor(dir), from: dir.Opposite()})
			}
		}
	}
	enqueue(batch.Changes())

	visited := mapset.New[world.BlockCoord]()
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited.Has(current.pos) || !s.seeds.Has(current.pos) {
			continue
		}
		visited.Put(current.pos)

		rec := world.NewRecordingGrid(s.chunk, world.ReasonDestroy)
		state := s.chunk.Block(current.pos)
		result := s.propagule.NeighborChanged(rec, current.pos, state, current.from)
		if !result.Destroy {
			continue
		}
		s.stats.Destroyed++
		if s.metrics {
			observability.RecordDestroyed()
		}
		if result.ScheduleFluidTick {
			// The fluid the propagule held flows back into the cell.
			rec.SetBlock(current.pos, world.Block{Type: world.BlockWater})
			s.stats.FluidTicks++
		}
		s.logger.Debug().Stringer("pos", current.pos).Stringer("from", current.from).Msg("propagule destroyed")
		s.changes.Merge(rec.Changes())
		enqueue(rec.Changes().Changes())
	}
}

func (s *Simulator) sortedSeeds() []world.BlockCoord {
	out := make([]world.BlockCoord, 0, s.seeds.Size())
	s.seeds.Each(func(pos world.BlockCoord) {
		out = append(out, pos)
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return out
}

// String renders the headline numbers for the CLI.
func (st Stats) String() string {
	writes := 0
	if st.Changes != nil {
		writes = st.Changes.Writes()
	}
	return fmt.Sprintf("ticks=%d planted=%d grown=%d matured=%d destroyed=%d propagules=%d writes=%d",
		st.Ticks, st.Planted, st.Grown, st.Matured, st.Destroyed, st.Propagules, writes)
}
