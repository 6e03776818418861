// Package reporting provides ga.Reporter implementations for structured logs
// and Prometheus metrics.
package reporting

import (
	"log/slog"

	"github.com/baldhumanity/ga-go/ga"
)

// LogReporter writes training progress to a slog.Logger. Generation records
// are emitted every Every generations and always for generations that were
// scored on the test set.
type LogReporter struct {
	Logger *slog.Logger
	Every  int
}

// NewLogReporter creates a LogReporter; a nil logger uses slog.Default.
func NewLogReporter(logger *slog.Logger, every int) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	if every <= 0 {
		every = 1
	}
	return &LogReporter{Logger: logger, Every: every}
}

func (r *LogReporter) GenerationEvaluated(stats ga.GenerationStats) {
	if stats.Generation%r.Every != 0 && !stats.Tested {
		return
	}
	attrs := []any{
		slog.Int("run", stats.Run),
		slog.Int("generation", stats.Generation),
		slog.Float64("max_fitness", stats.MaxFitness),
		slog.Float64("mean_fitness", stats.MeanFitness),
	}
	if stats.Tested {
		attrs = append(attrs, slog.Float64("test_fitness", stats.TestFitness))
	}
	r.Logger.Info("generation evaluated", attrs...)
}

func (r *LogReporter) RunCompleted(result ga.RunResult) {
	r.Logger.Info("run completed",
		slog.Int("run", result.Run),
		slog.Int64("seed", result.Seed),
		slog.Float64("best_fitness", result.BestFitness),
		slog.Float64("test_fitness", result.TestFitness),
	)
}
