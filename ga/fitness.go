package ga

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
)

// Accuracy returns the fraction of samples in ds that m labels correctly.
// It never reads or writes the model's cached fitness.
func Accuracy(ds *Dataset, m *Model) (float64, error) {
	if ds.Len() == 0 {
		return 0, ErrEmptyDataset
	}
	correct := 0
	for i, s := range ds.Samples {
		pred, err := m.Forward(s.Features)
		if err != nil {
			return 0, errors.Wrapf(err, "sample %d", i)
		}
		if pred == s.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(ds.Samples)), nil
}

// Fitness scores m on ds and caches the result on the model.
//
// Elites skip recomputation when their cached score was computed on the same
// dataset; any other model, or an elite scored on a different dataset, is
// evaluated again.
func Fitness(ds *Dataset, m *Model) (float64, error) {
	if ds.Len() == 0 {
		return 0, ErrEmptyDataset
	}
	if m.IsElite && m.Cached != nil && m.Cached.DatasetID == ds.ID {
		m.Fitness = m.Cached.Score
		return m.Fitness, nil
	}
	score, err := Accuracy(ds, m)
	if err != nil {
		return 0, err
	}
	m.Fitness = score
	m.Cached = &CachedFitness{DatasetID: ds.ID, Score: score}
	return score, nil
}

// EvaluatePopulation computes the fitness of every model against ds and
// returns the scores in population order. With workers > 1 models are scored
// concurrently; each task writes only to its own model.
func EvaluatePopulation(ctx context.Context, ds *Dataset, population []*Model, workers int) ([]float64, error) {
	if ds.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	scores := make([]float64, len(population))
	if workers <= 1 {
		for i, m := range population {
			f, err := Fitness(ds, m)
			if err != nil {
				return nil, errors.Wrapf(err, "evaluate model %d", i)
			}
			scores[i] = f
		}
		return scores, nil
	}

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError().WithMaxGoroutines(workers)
	for i, m := range population {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := Fitness(ds, m)
			if err != nil {
				return errors.Wrapf(err, "evaluate model %d", i)
			}
			scores[i] = f
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// BestOnDataset scores every model on ds without touching cached fitness and
// returns the best one with its score. Ties go to the earliest model.
func BestOnDataset(ds *Dataset, population []*Model) (*Model, float64, error) {
	if len(population) == 0 {
		return nil, 0, errors.New("empty population")
	}
	scores := make([]float64, len(population))
	for i, m := range population {
		f, err := Accuracy(ds, m)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "score model %d", i)
		}
		scores[i] = f
	}
	best := argMax(scores)
	return population[best], scores[best], nil
}
