package ga

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Crossover produces a child with parent1's architecture by single-point
// crossover over the (layer, output neuron) coordinates: everything before the
// randomly chosen cut comes from parent1, everything from the cut on comes from
// parent2. Parents are only read.
func Crossover(rng *rand.Rand, parent1, parent2 *Model) *Model {
	layer := rng.Intn(parent1.NumLayers() - 1)
	neuron := rng.Intn(parent1.LayerSizes[layer+1])
	return crossoverAt(parent1, parent2, layer, neuron)
}

// crossoverAt performs the crossover with an explicit cut point. Layers before
// layer come from parent1, layers from layer on come from parent2, and within
// weights[layer] the columns before neuron are taken from parent1.
func crossoverAt(parent1, parent2 *Model, layer, neuron int) *Model {
	child := newEmptyModel(parent1.LayerSizes, parent1.Activation)
	for i := 0; i < layer; i++ {
		child.Weights = append(child.Weights, mat.DenseCopyOf(parent1.Weights[i]))
		child.Biases = append(child.Biases, mat.VecDenseCopyOf(parent1.Biases[i]))
	}
	for i := layer; i < parent1.NumLayers()-1; i++ {
		child.Weights = append(child.Weights, mat.DenseCopyOf(parent2.Weights[i]))
		child.Biases = append(child.Biases, mat.VecDenseCopyOf(parent2.Biases[i]))
	}

	cut := child.Weights[layer]
	rows, _ := cut.Dims()
	for j := 0; j < neuron; j++ {
		for r := 0; r < rows; r++ {
			cut.Set(r, j, parent1.Weights[layer].At(r, j))
		}
	}
	return child
}
