package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMutateZeroRateIsNoOp(t *testing.T) {
	rng := newTestRand(12)
	m := newRandomModel(t, rng, 3, 4, 1)
	before := m.Clone()
	for i := 0; i < 10; i++ {
		Mutate(rng, m, 0, 5)
	}
	assert.True(t, m.EqualParams(before, 0))
}

func TestMutateFullRateShiftsWholeColumns(t *testing.T) {
	const factor = 0.3
	rng := newTestRand(13)
	m := newRandomModel(t, rng, 3, 4, 2, 1)
	before := m.Clone()

	Mutate(rng, m, 1, factor)

	for i := range m.Weights {
		rows, cols := m.Weights[i].Dims()
		for c := 0; c < cols; c++ {
			delta := m.Weights[i].At(0, c) - before.Weights[i].At(0, c)
			assert.NotZero(t, delta)
			assert.LessOrEqual(t, delta, factor)
			assert.GreaterOrEqual(t, delta, -factor)
			for r := 1; r < rows; r++ {
				assert.InDelta(t, delta, m.Weights[i].At(r, c)-before.Weights[i].At(r, c), 1e-12,
					"layer %d column %d row %d", i, c, r)
			}
		}
		assert.True(t, mat.Equal(m.Biases[i], before.Biases[i]), "biases are never mutated")
	}
}

func TestMutateIsSeedDeterministic(t *testing.T) {
	base := newRandomModel(t, newTestRand(14), 3, 3, 1)
	a, b := base.Clone(), base.Clone()
	Mutate(newTestRand(99), a, 0.5, 1)
	Mutate(newTestRand(99), b, 0.5, 1)
	require.True(t, a.EqualParams(b, 0))
}
