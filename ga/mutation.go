package ga

import "math/rand"

// Mutate perturbs m's weights in place. Each output-neuron column of every
// weight matrix is selected with probability rate; a selected column has one
// shared value drawn from U(-factor, factor) added to all of its weights.
// Biases are left unchanged.
func Mutate(rng *rand.Rand, m *Model, rate, factor float64) {
	for _, w := range m.Weights {
		rows, cols := w.Dims()
		for j := 0; j < cols; j++ {
			if rng.Float64() >= rate {
				continue
			}
			delta := (rng.Float64()*2 - 1) * factor
			for r := 0; r < rows; r++ {
				w.Set(r, j, w.At(r, j)+delta)
			}
		}
	}
}
