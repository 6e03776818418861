package ga

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"
)

// CreateNewPopulation creates size models with freshly initialized parameters.
func CreateNewPopulation(rng *rand.Rand, size int, layerSizes []int, activation ActivationFunc, init Initializer) ([]*Model, error) {
	models := make([]*Model, 0, size)
	for i := 0; i < size; i++ {
		m, err := NewModel(layerSizes, activation, init, rng)
		if err != nil {
			return nil, errors.Wrapf(err, "create model %d", i)
		}
		models = append(models, m)
	}
	return models, nil
}

// EliteIndexes returns the indexes of the eliteSize fittest models, fittest
// first. Equal fitness keeps population order.
func EliteIndexes(population []*Model, eliteSize int) []int {
	order := make([]int, len(population))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return population[order[a]].Fitness > population[order[b]].Fitness
	})
	if eliteSize > len(order) {
		eliteSize = len(order)
	}
	if eliteSize < 0 {
		eliteSize = 0
	}
	return order[:eliteSize]
}

// NextGeneration builds the population that follows population. Fitness must
// already be evaluated. Elites keep their slot and are carried over unchanged
// with IsElite set; every other slot is filled by crossing two parents drawn
// by fitness-proportionate selection and mutating the child.
func NextGeneration(rng *rand.Rand, population []*Model, eliteSize, populationSize int, mutationRate, mutationFactor float64) ([]*Model, error) {
	if len(population) != populationSize {
		return nil, errors.Errorf("population has %d models, expected %d", len(population), populationSize)
	}
	if eliteSize < 0 || eliteSize > populationSize {
		return nil, errors.Errorf("invalid elite size %d for population of %d", eliteSize, populationSize)
	}

	probs, err := ComputeProbabilities(population)
	if err != nil {
		return nil, err
	}
	sampler, err := NewSampler(probs)
	if err != nil {
		return nil, err
	}

	elite := make(map[int]bool, eliteSize)
	for _, idx := range EliteIndexes(population, eliteSize) {
		elite[idx] = true
	}

	next := make([]*Model, populationSize)
	for i := 0; i < populationSize; i++ {
		if elite[i] {
			carried := population[i].Clone()
			carried.IsElite = true
			next[i] = carried
			continue
		}
		parent1, parent2 := sampler.SelectParents(rng, population)
		child := Crossover(rng, parent1, parent2)
		Mutate(rng, child, mutationRate, mutationFactor)
		next[i] = child
	}
	return next, nil
}
