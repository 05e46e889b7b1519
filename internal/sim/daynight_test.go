package sim

import (
	"math"
	"testing"

	"mangrovesim/internal/config"
)

func TestDayNightCycleProgress(t *testing.T) {
	cycle := NewDayNightCycle(240, 6, 15)
	if cycle == nil {
		t.Fatalf("expected cycle to be created")
	}

	start := cycle.State(0)
	if math.Abs(start.TimeOfDay-6) > 1e-9 {
		t.Fatalf("expected initial time of day 6, got %.4f", start.TimeOfDay)
	}
	if start.Phase != "dawn" {
		t.Fatalf("expected dawn at 06:00, got %s", start.Phase)
	}

	noon := cycle.State(60)
	if math.Abs(noon.TimeOfDay-12) > 1e-9 {
		t.Fatalf("expected noon after a quarter day, got %.4f", noon.TimeOfDay)
	}
	if noon.Phase != "day" || noon.SkyLight != 15 {
		t.Fatalf("noon state = %+v, want full daylight", noon)
	}

	midnight := cycle.State(180)
	if midnight.Phase != "night" {
		t.Fatalf("expected night at 00:00, got %s", midnight.Phase)
	}
	if midnight.SkyLight >= 9 {
		t.Fatalf("midnight sky light %d should be too dark to grow", midnight.SkyLight)
	}

	wrapped := cycle.State(240)
	if math.Abs(wrapped.TimeOfDay-start.TimeOfDay) > 1e-9 {
		t.Fatalf("expected the cycle to wrap after a full day, got %.4f", wrapped.TimeOfDay)
	}
}

func TestDayNightCycleDisabled(t *testing.T) {
	if cycle := NewDayNightCycle(0, 12, 15); cycle != nil {
		t.Fatalf("expected nil cycle for zero day length")
	}
	var cycle *DayNightCycle
	if state := cycle.State(10); state != (DayNightState{}) {
		t.Fatalf("nil cycle state = %+v, want zero", state)
	}
}

func TestNightStopsGrowth(t *testing.T) {
	wc := testWorld()
	gc := config.GrowthConfig{
		Seed:               3,
		Ticks:              40,
		RandomTicksPerTick: 4096,
		Propagules:         []config.PropaguleSpot{{X: 8, Y: 8}, {X: 4, Y: 11}},
	}
	s, _ := newTestSimulator(t, wc, gc)
	s.dayNight = NewDayNightCycle(10000, 0, wc.SkyLight)

	for _, spot := range gc.Propagules {
		if !s.Plant(spot.X, spot.Y) {
			t.Fatalf("Plant(%d, %d) = false", spot.X, spot.Y)
		}
	}
	for i := 0; i < gc.Ticks; i++ {
		s.Tick()
	}

	stats := s.Stats()
	if stats.RandomTicks == 0 {
		t.Fatalf("expected random ticks to reach the propagules")
	}
	if stats.Grown != 0 {
		t.Fatalf("grew %d trees in the dark", stats.Grown)
	}
	if sky := s.chunk.SkyLight(); sky >= 9 {
		t.Fatalf("sky light %d at midnight, want dark", sky)
	}
}
