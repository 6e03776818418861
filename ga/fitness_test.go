package ga

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitnessIsAccuracy(t *testing.T) {
	// Predicts 1 iff x0 + x1 >= 1.
	m := newFixedModel([]int{2, 1}, [][]float64{{1, 1}}, [][]float64{{-1}})
	ds := NewDataset([]Sample{
		{Features: []float64{0, 0}, Label: 0},
		{Features: []float64{0, 1}, Label: 1},
		{Features: []float64{1, 1}, Label: 0},
		{Features: []float64{1, 1}, Label: 1},
	})
	f, err := Fitness(ds, m)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, f, 1e-12)
	assert.InDelta(t, 0.75, m.Fitness, 1e-12)
	require.NotNil(t, m.Cached)
	assert.Equal(t, ds.ID, m.Cached.DatasetID)
}

func TestFitnessInUnitInterval(t *testing.T) {
	rng := newTestRand(11)
	ds := noisyOR()
	for i := 0; i < 50; i++ {
		m := newRandomModel(t, rng, 2, 4, 1)
		f, err := Fitness(ds, m)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, f, 0.0)
		assert.LessOrEqual(t, f, 1.0)
	}
}

func TestFitnessEmptyDataset(t *testing.T) {
	m := newRandomModel(t, newTestRand(1), 2, 1)
	_, err := Fitness(NewDataset(nil), m)
	require.ErrorIs(t, err, ErrEmptyDataset)
	_, err = Accuracy(nil, m)
	require.ErrorIs(t, err, ErrEmptyDataset)
}

func TestFitnessEliteShortcutRequiresSameDataset(t *testing.T) {
	m := newFixedModel([]int{2, 1}, [][]float64{{1, 1}}, [][]float64{{-1}})
	train := noisyOR()
	m.IsElite = true
	m.Cached = &CachedFitness{DatasetID: train.ID, Score: 0.123}

	f, err := Fitness(train, m)
	require.NoError(t, err)
	assert.Equal(t, 0.123, f, "elite scored on the same dataset must not be recomputed")

	other := NewDataset(train.Samples)
	f, err = Fitness(other, m)
	require.NoError(t, err)
	assert.NotEqual(t, 0.123, f, "a different dataset must trigger recomputation")
	assert.Equal(t, other.ID, m.Cached.DatasetID)
}

func TestFitnessNonEliteAlwaysRecomputes(t *testing.T) {
	m := newFixedModel([]int{2, 1}, [][]float64{{1, 1}}, [][]float64{{-1}})
	ds := noisyOR()
	m.Cached = &CachedFitness{DatasetID: ds.ID, Score: 0.123}
	f, err := Fitness(ds, m)
	require.NoError(t, err)
	assert.NotEqual(t, 0.123, f)
}

func TestFitnessPropagatesDimensionMismatch(t *testing.T) {
	m := newRandomModel(t, newTestRand(1), 3, 1)
	_, err := Fitness(noisyOR(), m)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestAccuracyLeavesCacheAlone(t *testing.T) {
	m := newRandomModel(t, newTestRand(9), 2, 2, 1)
	m.Fitness = 0.42
	_, err := Accuracy(noisyOR(), m)
	require.NoError(t, err)
	assert.Equal(t, 0.42, m.Fitness)
	assert.Nil(t, m.Cached)
}

func TestEvaluatePopulationParallelMatchesSequential(t *testing.T) {
	ds := noisyOR()
	seq := make([]*Model, 20)
	par := make([]*Model, 20)
	rng := newTestRand(21)
	for i := range seq {
		seq[i] = newRandomModel(t, rng, 2, 3, 1)
		par[i] = seq[i].Clone()
	}

	want, err := EvaluatePopulation(context.Background(), ds, seq, 1)
	require.NoError(t, err)
	got, err := EvaluatePopulation(context.Background(), ds, par, 4)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	for i := range par {
		assert.Equal(t, want[i], par[i].Fitness)
	}
}

func TestEvaluatePopulationParallelError(t *testing.T) {
	pop := []*Model{
		newRandomModel(t, newTestRand(1), 2, 1),
		newRandomModel(t, newTestRand(2), 5, 1),
	}
	_, err := EvaluatePopulation(context.Background(), noisyOR(), pop, 2)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestBestOnDataset(t *testing.T) {
	good := newFixedModel([]int{2, 1}, [][]float64{{10, 10}}, [][]float64{{-5}})
	bad := newFixedModel([]int{2, 1}, [][]float64{{-10, -10}}, [][]float64{{5}})
	ds := noisyOR()

	best, score, err := BestOnDataset(ds, []*Model{bad, good})
	require.NoError(t, err)
	assert.Same(t, good, best)
	assert.InDelta(t, 5.0/6.0, score, 1e-12)
	assert.Nil(t, good.Cached)
}
