package observability

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	ticksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mangrovesim",
			Subsystem: "sim",
			Name:      "ticks_total",
			Help:      "Simulation ticks run.",
		},
	)
	growthOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mangrovesim",
			Subsystem: "growth",
			Name:      "outcomes_total",
			Help:      "Propagule random ticks by outcome.",
		},
		[]string{"outcome"},
	)
	propagulesDestroyed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mangrovesim",
			Subsystem: "growth",
			Name:      "propagules_destroyed_total",
			Help:      "Propagules cleared after losing support.",
		},
	)
	blockWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mangrovesim",
			Subsystem: "world",
			Name:      "block_writes_total",
			Help:      "Grid writes by block type written.",
		},
		[]string{"type"},
	)
	propagulesLive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mangrovesim",
			Subsystem: "growth",
			Name:      "propagules",
			Help:      "Propagules present in the world after the last tick.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ticksTotal, growthOutcomes, propagulesDestroyed, blockWrites, propagulesLive)
	})
}

func RecordTick(propagules int) {
	ticksTotal.Inc()
	propagulesLive.Set(float64(propagules))
}

func RecordGrowth(outcome string) {
	growthOutcomes.WithLabelValues(outcome).Inc()
}

func RecordDestroyed() {
	propagulesDestroyed.Inc()
}

func RecordBlockWrites(blockType string, n int) {
	if n <= 0 {
		return
	}
	blockWrites.WithLabelValues(blockType).Add(float64(n))
}

// WriteMetricsTextfile dumps the default registry in the text exposition
// format, for collection by a node exporter textfile collector.
func WriteMetricsTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
