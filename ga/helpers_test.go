package ga

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func newRandomModel(t *testing.T, rng *rand.Rand, sizes ...int) *Model {
	t.Helper()
	m, err := NewModel(sizes, Sigmoid, Initializer{Kind: InitGaussian, Stdev: 1}, rng)
	require.NoError(t, err)
	return m
}

// newFixedModel builds a model with weights[i] given row-major.
func newFixedModel(sizes []int, weights [][]float64, biases [][]float64) *Model {
	m := newEmptyModel(sizes, Sigmoid)
	for i := 0; i < len(sizes)-1; i++ {
		m.Weights = append(m.Weights, mat.NewDense(sizes[i], sizes[i+1], weights[i]))
		m.Biases = append(m.Biases, mat.NewVecDense(sizes[i+1], biases[i]))
	}
	return m
}

// noisyOR is the OR truth table plus a contradictory pair, so every model
// classifies at least one sample correctly.
func noisyOR() *Dataset {
	return NewDataset([]Sample{
		{Features: []float64{0, 0}, Label: 0},
		{Features: []float64{0, 1}, Label: 1},
		{Features: []float64{1, 0}, Label: 1},
		{Features: []float64{1, 1}, Label: 1},
		{Features: []float64{0.5, 0.5}, Label: 0},
		{Features: []float64{0.5, 0.5}, Label: 1},
	})
}

func testConfig() *Config {
	c := DefaultConfig()
	c.Model.LayerSizes = []int{2, 3, 1}
	c.Training.NumGenerations = 10
	c.Training.PopulationSize = 10
	c.Training.EliteSize = 2
	c.Training.MutationRate = 0.3
	c.Training.MutationFactor = 0.5
	c.Training.Seed = 7
	return c
}
