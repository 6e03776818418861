package ga

import (
	"context"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
)

// RunResult is the outcome of one independent train-then-select run.
type RunResult struct {
	Run  int
	Seed int64
	// Best is the final population member with the highest training fitness.
	Best        *Model
	BestFitness float64
	TestFitness float64 // Best's accuracy on the test set, if one was given
	Curves      *TrainResult
	FinishedAt  time.Time
}

// MultiRunResult collects every run and the globally best model.
type MultiRunResult struct {
	Best    *Model
	BestRun int
	Runs    []RunResult
}

// Runner executes several independent training runs and keeps the best.
type Runner struct {
	Config    *Config
	Reporters *ReporterSet
	// Parallel is the number of runs executed concurrently. Values below 2
	// run sequentially.
	Parallel int
}

// NewRunner creates a Runner for config.
func NewRunner(config *Config, reporters *ReporterSet) *Runner {
	return &Runner{Config: config, Reporters: reporters, Parallel: 1}
}

// RunSeed returns the seed used for run index run. Runs never share a
// generator, so results are reproducible for a fixed base seed.
func RunSeed(base int64, run int) int64 {
	return base + int64(run)*7919
}

// RunAll trains Config.Training.NumRuns populations from scratch and returns
// all of them with the model that reached the highest training fitness. Ties
// go to the earliest run. The first failing run aborts the rest.
func (r *Runner) RunAll(ctx context.Context, train, test *Dataset) (*MultiRunResult, error) {
	if err := r.Config.Validate(); err != nil {
		return nil, err
	}
	base := r.Config.Training.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	n := r.Config.Training.NumRuns
	runs := make([]RunResult, n)

	if r.Parallel < 2 {
		for i := 0; i < n; i++ {
			res, err := r.runOnce(ctx, i, RunSeed(base, i), train, test)
			if err != nil {
				return nil, err
			}
			runs[i] = res
		}
	} else {
		p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError().WithMaxGoroutines(r.Parallel)
		for i := 0; i < n; i++ {
			p.Go(func(ctx context.Context) error {
				res, err := r.runOnce(ctx, i, RunSeed(base, i), train, test)
				if err != nil {
					return err
				}
				runs[i] = res
				return nil
			})
		}
		if err := p.Wait(); err != nil {
			return nil, err
		}
	}

	out := &MultiRunResult{Runs: runs, BestRun: 0, Best: runs[0].Best}
	for i := 1; i < n; i++ {
		if runs[i].BestFitness > runs[out.BestRun].BestFitness {
			out.BestRun = i
			out.Best = runs[i].Best
		}
	}
	return out, nil
}

func (r *Runner) runOnce(ctx context.Context, run int, seed int64, train, test *Dataset) (RunResult, error) {
	pop, err := NewPopulation(r.Config, rand.New(rand.NewSource(seed)))
	if err != nil {
		return RunResult{}, errors.Wrapf(err, "run %d", run)
	}
	pop.Run = run
	pop.Reporters = r.Reporters

	curves, err := pop.Train(ctx, train, test)
	if err != nil {
		return RunResult{}, errors.Wrapf(err, "run %d", run)
	}
	best, fitness, err := pop.Best(ctx, train)
	if err != nil {
		return RunResult{}, errors.Wrapf(err, "run %d: select best", run)
	}

	res := RunResult{
		Run:         run,
		Seed:        seed,
		Best:        best,
		BestFitness: fitness,
		Curves:      curves,
		FinishedAt:  time.Now(),
	}
	if test.Len() > 0 {
		if res.TestFitness, err = Accuracy(test, best); err != nil {
			return RunResult{}, errors.Wrapf(err, "run %d: test best", run)
		}
	}
	r.Reporters.RunCompleted(res)
	return res, nil
}
