package sim

import (
	"math"

	"mangrovesim/internal/world"
)

// DayNightCycle maps simulation ticks onto a time of day and the sky light
// that reaches the world at that time.
type DayNightCycle struct {
	dayTicks        int
	initialFraction float64
	maxSkyLight     int
}

type DayNightState struct {
	TimeOfDay float64
	Phase     string
	SkyLight  int
}

// NewDayNightCycle returns nil when dayTicks is not positive, which keeps
// the sky at maxSkyLight for the whole run.
func NewDayNightCycle(dayTicks int, initialHour float64, maxSkyLight int) *DayNightCycle {
	if dayTicks <= 0 {
		return nil
	}
	initialFraction := initialHour / 24
	if initialFraction < 0 {
		initialFraction = 0
	}
	if initialFraction >= 1 {
		initialFraction = math.Mod(initialFraction, 1)
	}
	return &DayNightCycle{
		dayTicks:        dayTicks,
		initialFraction: initialFraction,
		maxSkyLight:     maxSkyLight,
	}
}

func (c *DayNightCycle) State(tick int) DayNightState {
	if c == nil {
		return DayNightState{}
	}
	progress := math.Mod(c.initialFraction+float64(tick)/float64(c.dayTicks), 1)
	timeOfDay := progress * 24
	orbital := math.Mod(progress+0.75, 1) * 2 * math.Pi
	elevation := math.Max(0, math.Sin(orbital))
	sunlight := 0.15 + 0.85*elevation
	light := int(math.Round(float64(c.maxSkyLight) * sunlight))
	if light > world.MaxLightLevel {
		light = world.MaxLightLevel
	}
	return DayNightState{
		TimeOfDay: timeOfDay,
		Phase:     phaseForHour(timeOfDay),
		SkyLight:  light,
	}
}

func phaseForHour(hour float64) string {
	switch {
	case hour >= 5 && hour < 7:
		return "dawn"
	case hour >= 7 && hour < 18:
		return "day"
	case hour >= 18 && hour < 21:
		return "dusk"
	default:
		return "night"
	}
}
