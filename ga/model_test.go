package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelShapes(t *testing.T) {
	rng := newTestRand(1)
	for _, sizes := range [][]int{{2, 1}, {16, 8, 1}, {4, 5, 3, 1}} {
		m := newRandomModel(t, rng, sizes...)
		require.NoError(t, m.CheckShape())
		require.Len(t, m.Weights, len(sizes)-1)
		for i := range m.Weights {
			r, c := m.Weights[i].Dims()
			assert.Equal(t, sizes[i], r)
			assert.Equal(t, sizes[i+1], c)
			assert.Equal(t, sizes[i+1], m.Biases[i].Len())
		}
	}
}

func TestValidateArchitecture(t *testing.T) {
	for _, sizes := range [][]int{nil, {3}, {2, 0, 1}, {2, -1}, {2, 2}} {
		require.ErrorIs(t, ValidateArchitecture(sizes), ErrInvalidArchitecture, "sizes %v", sizes)
	}
	require.NoError(t, ValidateArchitecture([]int{3, 1}))
}

func TestNewModelXavierStartsWithZeroBias(t *testing.T) {
	m, err := NewModel([]int{4, 3, 1}, Sigmoid, Initializer{Kind: InitXavier}, newTestRand(3))
	require.NoError(t, err)
	for _, b := range m.Biases {
		for i := 0; i < b.Len(); i++ {
			assert.Zero(t, b.AtVec(i))
		}
	}
}

func TestForwardSigmoidSingleLayer(t *testing.T) {
	m := newFixedModel([]int{2, 1}, [][]float64{{1, 1}}, [][]float64{{-1}})

	out, err := m.Output([]float64{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.7310585786, out, 1e-9)

	label, err := m.Forward([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	// 0 + 0 - 1 = -1, sigmoid(-1) < 0.5
	label, err = m.Forward([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0, label)
}

func TestForwardAppliesActivationAtEveryLayer(t *testing.T) {
	// With identity activation the hidden value 2 passes through unchanged
	// and the output is 2*0.5 - 0.75 = 0.25 -> label 0. With sigmoid the
	// hidden value becomes ~0.88 and the output sigmoid(-0.31) ~0.42 -> 0.
	m := newFixedModel([]int{1, 1, 1}, [][]float64{{2}, {0.5}}, [][]float64{{0}, {-0.75}})
	m.Activation = Identity
	out, err := m.Output([]float64{1})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, out, 1e-12)

	m.Activation = Sigmoid
	out, err = m.Output([]float64{1})
	require.NoError(t, err)
	assert.InDelta(t, Sigmoid(0.5*Sigmoid(2)-0.75), out, 1e-12)
}

func TestForwardThresholdIsInclusive(t *testing.T) {
	m := newFixedModel([]int{1, 1}, [][]float64{{0}}, [][]float64{{0}})
	label, err := m.Forward([]float64{3})
	require.NoError(t, err)
	assert.Equal(t, 1, label, "sigmoid(0) = 0.5 must map to label 1")
}

func TestForwardDimensionMismatch(t *testing.T) {
	m := newRandomModel(t, newTestRand(2), 3, 2, 1)
	_, err := m.Forward([]float64{1, 2})
	require.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "expects 3")
}

func TestForwardDoesNotModifySample(t *testing.T) {
	m := newRandomModel(t, newTestRand(4), 3, 4, 1)
	sample := []float64{0.1, -0.2, 0.3}
	_, err := m.Forward(sample)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, -0.2, 0.3}, sample)
}

func TestCloneIsDeep(t *testing.T) {
	m := newRandomModel(t, newTestRand(5), 2, 2, 1)
	m.Fitness = 0.75
	m.Cached = &CachedFitness{DatasetID: "d", Score: 0.75}

	c := m.Clone()
	require.True(t, c.EqualParams(m, 0))
	assert.Equal(t, 0.75, c.Fitness)

	c.Weights[0].Set(0, 0, 99)
	c.Biases[1].SetVec(0, 99)
	c.Cached.Score = 0
	assert.False(t, c.EqualParams(m, 0))
	assert.Equal(t, 0.75, m.Cached.Score)
}

func TestCheckShapeDetectsMismatch(t *testing.T) {
	m := newFixedModel([]int{2, 1}, [][]float64{{1, 1}}, [][]float64{{0}})
	m.LayerSizes = []int{3, 1}
	require.ErrorIs(t, m.CheckShape(), ErrInvalidArchitecture)
}
