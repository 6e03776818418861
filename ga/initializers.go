package ga

import (
	"math"
	"math/rand"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// WeightInit names the distribution fresh model parameters are drawn from.
type WeightInit string

const (
	// InitXavier draws weights from N(0, 1/fanIn) and starts biases at zero.
	InitXavier WeightInit = "xavier"
	// InitGaussian draws weights and biases from N(mean, stdev).
	InitGaussian WeightInit = "gaussian"
	// InitUniform draws weights and biases from U(mean-2*stdev, mean+2*stdev).
	InitUniform WeightInit = "uniform"
)

// ParseWeightInit converts a config string to a WeightInit.
func ParseWeightInit(s string) (WeightInit, error) {
	switch w := WeightInit(strings.ToLower(strings.TrimSpace(s))); w {
	case InitXavier, InitGaussian, InitUniform:
		return w, nil
	case "":
		return InitXavier, nil
	default:
		return "", errors.Errorf("unknown weight_init %q", s)
	}
}

// Initializer fills fresh parameter storage.
type Initializer struct {
	Kind  WeightInit
	Mean  float64
	Stdev float64
}

func (in Initializer) draw(rng *rand.Rand, fanIn int) float64 {
	switch in.Kind {
	case InitUniform:
		lo, hi := in.Mean-2*in.Stdev, in.Mean+2*in.Stdev
		return rng.Float64()*(hi-lo) + lo
	case InitGaussian:
		return rng.NormFloat64()*in.Stdev + in.Mean
	default:
		return rng.NormFloat64() * math.Sqrt(1.0/float64(fanIn))
	}
}

// Weights returns a rows x cols matrix of initial weights.
func (in Initializer) Weights(rng *rand.Rand, rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = in.draw(rng, rows)
	}
	return mat.NewDense(rows, cols, data)
}

// Biases returns an initial bias vector of length n.
func (in Initializer) Biases(rng *rand.Rand, n, fanIn int) *mat.VecDense {
	v := mat.NewVecDense(n, nil)
	if in.Kind == InitXavier || in.Kind == "" {
		return v
	}
	for i := 0; i < n; i++ {
		v.SetVec(i, in.draw(rng, fanIn))
	}
	return v
}
