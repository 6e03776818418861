package ga

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// OutputThreshold separates the two classes on the final network output.
const OutputThreshold = 0.5

// CachedFitness records the dataset a fitness score was computed on.
type CachedFitness struct {
	DatasetID string
	Score     float64
}

// Model is one candidate network: a fixed feed-forward architecture plus its
// parameters and the most recent fitness score.
//
// Weights[i] has shape (LayerSizes[i], LayerSizes[i+1]) and Biases[i] has
// length LayerSizes[i+1].
type Model struct {
	LayerSizes []int
	Weights    []*mat.Dense
	Biases     []*mat.VecDense
	Activation ActivationFunc // not serialized; re-linked on load
	Fitness    float64
	IsElite    bool
	Cached     *CachedFitness
}

// ValidateArchitecture checks that layerSizes describes a binary classifier:
// at least two layers, all positive, output width 1.
func ValidateArchitecture(layerSizes []int) error {
	if len(layerSizes) < 2 {
		return errors.Wrapf(ErrInvalidArchitecture, "need at least 2 layers, got %d", len(layerSizes))
	}
	for i, n := range layerSizes {
		if n <= 0 {
			return errors.Wrapf(ErrInvalidArchitecture, "layer %d has non-positive size %d", i, n)
		}
	}
	if out := layerSizes[len(layerSizes)-1]; out != 1 {
		return errors.Wrapf(ErrInvalidArchitecture, "output width must be 1, got %d", out)
	}
	return nil
}

// newEmptyModel creates a model with the given architecture and no parameters.
func newEmptyModel(layerSizes []int, activation ActivationFunc) *Model {
	sizes := make([]int, len(layerSizes))
	copy(sizes, layerSizes)
	return &Model{
		LayerSizes: sizes,
		Weights:    make([]*mat.Dense, 0, len(sizes)-1),
		Biases:     make([]*mat.VecDense, 0, len(sizes)-1),
		Activation: activation,
	}
}

// NewModel creates a model with freshly initialized parameters.
func NewModel(layerSizes []int, activation ActivationFunc, init Initializer, rng *rand.Rand) (*Model, error) {
	if err := ValidateArchitecture(layerSizes); err != nil {
		return nil, err
	}
	if activation == nil {
		return nil, errors.New("activation function is required")
	}
	if rng == nil {
		return nil, errors.New("random source is required")
	}
	m := newEmptyModel(layerSizes, activation)
	for i := 0; i < len(layerSizes)-1; i++ {
		m.Weights = append(m.Weights, init.Weights(rng, layerSizes[i], layerSizes[i+1]))
		m.Biases = append(m.Biases, init.Biases(rng, layerSizes[i+1], layerSizes[i]))
	}
	return m, nil
}

// NumLayers returns the number of layers including input and output.
func (m *Model) NumLayers() int {
	return len(m.LayerSizes)
}

// InputWidth returns the number of features the model expects.
func (m *Model) InputWidth() int {
	return m.LayerSizes[0]
}

// CheckShape verifies that parameter storage matches LayerSizes.
func (m *Model) CheckShape() error {
	if err := ValidateArchitecture(m.LayerSizes); err != nil {
		return err
	}
	stages := m.NumLayers() - 1
	if len(m.Weights) != stages || len(m.Biases) != stages {
		return errors.Wrapf(ErrInvalidArchitecture, "expected %d weight matrices and bias vectors, got %d and %d",
			stages, len(m.Weights), len(m.Biases))
	}
	for i := 0; i < stages; i++ {
		r, c := m.Weights[i].Dims()
		if r != m.LayerSizes[i] || c != m.LayerSizes[i+1] {
			return errors.Wrapf(ErrInvalidArchitecture, "weights[%d] is %dx%d, want %dx%d",
				i, r, c, m.LayerSizes[i], m.LayerSizes[i+1])
		}
		if n := m.Biases[i].Len(); n != m.LayerSizes[i+1] {
			return errors.Wrapf(ErrInvalidArchitecture, "biases[%d] has length %d, want %d", i, n, m.LayerSizes[i+1])
		}
	}
	return nil
}

// Output propagates sample through every affine+activation stage and returns
// the raw final output. The sample is not modified.
func (m *Model) Output(sample []float64) (float64, error) {
	if len(sample) != m.InputWidth() {
		return 0, errors.Wrapf(ErrDimensionMismatch, "sample has %d features, model expects %d",
			len(sample), m.InputWidth())
	}
	if m.Activation == nil {
		return 0, errors.New("model has no activation function")
	}

	in := make([]float64, len(sample))
	copy(in, sample)
	x := mat.NewVecDense(len(in), in)

	for i := 0; i < m.NumLayers()-1; i++ {
		z := mat.NewVecDense(m.LayerSizes[i+1], nil)
		// x·W, written as Wᵀx for column vectors.
		z.MulVec(m.Weights[i].T(), x)
		z.AddVec(z, m.Biases[i])
		raw := z.RawVector()
		for j := 0; j < raw.N; j++ {
			raw.Data[j*raw.Inc] = m.Activation(raw.Data[j*raw.Inc])
		}
		x = z
	}
	return x.AtVec(0), nil
}

// Forward returns the predicted label for sample: 1 if the final output is at
// least OutputThreshold, else 0.
func (m *Model) Forward(sample []float64) (int, error) {
	out, err := m.Output(sample)
	if err != nil {
		return 0, err
	}
	if out >= OutputThreshold {
		return 1, nil
	}
	return 0, nil
}

// Clone returns a deep copy of the model, including fitness state.
func (m *Model) Clone() *Model {
	c := newEmptyModel(m.LayerSizes, m.Activation)
	for i := range m.Weights {
		c.Weights = append(c.Weights, mat.DenseCopyOf(m.Weights[i]))
		c.Biases = append(c.Biases, mat.VecDenseCopyOf(m.Biases[i]))
	}
	c.Fitness = m.Fitness
	c.IsElite = m.IsElite
	if m.Cached != nil {
		cached := *m.Cached
		c.Cached = &cached
	}
	return c
}

// EqualParams reports whether two models share an architecture and their
// parameters agree within tol.
func (m *Model) EqualParams(other *Model, tol float64) bool {
	if other == nil || len(m.LayerSizes) != len(other.LayerSizes) {
		return false
	}
	for i := range m.LayerSizes {
		if m.LayerSizes[i] != other.LayerSizes[i] {
			return false
		}
	}
	if len(m.Weights) != len(other.Weights) || len(m.Biases) != len(other.Biases) {
		return false
	}
	for i := range m.Weights {
		if !mat.EqualApprox(m.Weights[i], other.Weights[i], tol) {
			return false
		}
		if !mat.EqualApprox(m.Biases[i], other.Biases[i], tol) {
			return false
		}
	}
	return true
}

// isFiniteFitness guards against NaN scores leaking into selection.
func isFiniteFitness(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
