package ga

import (
	"context"
	"math/rand"

	"github.com/pkg/errors"
)

// Population holds the state of one evolutionary run.
type Population struct {
	Config     *Config
	Models     []*Model
	Generation int
	Run        int
	Reporters  *ReporterSet

	rng *rand.Rand
}

// TrainResult is what Train returns: the final population and the curves
// recorded along the way.
type TrainResult struct {
	Population []*Model
	// MaxFitness and MeanFitness hold one training-set value per generation.
	MaxFitness  []float64
	MeanFitness []float64
	// TestFitness holds the held-out accuracy of the generation's best model,
	// sampled every TestInterval generations; TestGenerations lists which.
	TestFitness     []float64
	TestGenerations []int
}

// NewPopulation creates a population of freshly initialized models. All
// randomness of the run is drawn from rng.
func NewPopulation(config *Config, rng *rand.Rand) (*Population, error) {
	if rng == nil {
		return nil, errors.New("random source is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	activation, err := config.ActivationFunc()
	if err != nil {
		return nil, err
	}
	models, err := CreateNewPopulation(rng, config.Training.PopulationSize, config.Model.LayerSizes, activation, config.Initializer())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create initial population")
	}
	return &Population{
		Config: config,
		Models: models,
		rng:    rng,
	}, nil
}

// Train runs NumGenerations+1 generations. Each generation evaluates the whole
// population on train, records max and mean fitness, scores the current best
// model on test every TestInterval generations (a nil or empty test set skips
// this), and then advances to the next generation.
//
// Any error aborts the run. Cancelling ctx stops training between generations.
func (p *Population) Train(ctx context.Context, train, test *Dataset) (*TrainResult, error) {
	t := p.Config.Training
	result := &TrainResult{
		MaxFitness:  make([]float64, 0, t.NumGenerations+1),
		MeanFitness: make([]float64, 0, t.NumGenerations+1),
	}

	for i := 0; i <= t.NumGenerations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "run %d stopped at generation %d", p.Run, p.Generation)
		}

		scores, err := EvaluatePopulation(ctx, train, p.Models, t.Workers)
		if err != nil {
			return nil, errors.Wrapf(err, "fitness evaluation failed in generation %d", p.Generation)
		}
		stats := GenerationStats{
			Run:         p.Run,
			Generation:  p.Generation,
			MaxFitness:  MaxFloat(scores),
			MeanFitness: Mean(scores),
		}
		result.MaxFitness = append(result.MaxFitness, stats.MaxFitness)
		result.MeanFitness = append(result.MeanFitness, stats.MeanFitness)

		if p.Generation%t.TestInterval == 0 && test.Len() > 0 {
			best := p.Models[argMax(scores)]
			score, err := Accuracy(test, best)
			if err != nil {
				return nil, errors.Wrapf(err, "test evaluation failed in generation %d", p.Generation)
			}
			stats.TestFitness, stats.Tested = score, true
			result.TestFitness = append(result.TestFitness, score)
			result.TestGenerations = append(result.TestGenerations, p.Generation)
		}
		p.Reporters.GenerationEvaluated(stats)

		next, err := NextGeneration(p.rng, p.Models, t.EliteSize, t.PopulationSize, t.MutationRate, t.MutationFactor)
		if err != nil {
			return nil, errors.Wrapf(err, "reproduction failed in generation %d", p.Generation)
		}
		p.Models = next
		p.Generation++
	}

	result.Population = p.Models
	return result, nil
}

// Best evaluates the population on ds and returns the fittest model and its
// fitness. Ties go to the earliest model.
func (p *Population) Best(ctx context.Context, ds *Dataset) (*Model, float64, error) {
	scores, err := EvaluatePopulation(ctx, ds, p.Models, p.Config.Training.Workers)
	if err != nil {
		return nil, 0, err
	}
	best := argMax(scores)
	return p.Models[best], scores[best], nil
}
