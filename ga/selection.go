package ga

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// ComputeProbabilities returns fitness-proportionate selection probabilities,
// one per model, in population order.
func ComputeProbabilities(population []*Model) ([]float64, error) {
	if len(population) == 0 {
		return nil, errors.New("empty population")
	}
	fitnesses := make([]float64, len(population))
	for i, m := range population {
		if !isFiniteFitness(m.Fitness) || m.Fitness < 0 {
			return nil, errors.Errorf("model %d has invalid fitness %v", i, m.Fitness)
		}
		fitnesses[i] = m.Fitness
	}
	total := floats.Sum(fitnesses)
	if total <= 0 {
		return nil, errors.Wrapf(ErrDegenerateFitness, "population of %d", len(population))
	}
	floats.Scale(1/total, fitnesses)
	return fitnesses, nil
}

// Sampler draws population indices from a fixed probability distribution,
// with replacement.
type Sampler struct {
	cumulative []float64
}

// NewSampler builds a sampler over probs, which should sum to 1.
func NewSampler(probs []float64) (*Sampler, error) {
	if len(probs) == 0 {
		return nil, errors.New("empty distribution")
	}
	cumulative := make([]float64, len(probs))
	floats.CumSum(cumulative, probs)
	return &Sampler{cumulative: cumulative}, nil
}

// Sample returns one index drawn according to the distribution.
func (s *Sampler) Sample(rng *rand.Rand) int {
	total := s.cumulative[len(s.cumulative)-1]
	r := rng.Float64() * total
	i := sort.Search(len(s.cumulative), func(i int) bool { return s.cumulative[i] > r })
	if i == len(s.cumulative) {
		// Rounding can leave r at the very top of the range.
		i = len(s.cumulative) - 1
	}
	return i
}

// SelectParents draws two parents independently from population.
func (s *Sampler) SelectParents(rng *rand.Rand, population []*Model) (*Model, *Model) {
	return population[s.Sample(rng)], population[s.Sample(rng)]
}
