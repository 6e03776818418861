// Package ga trains small feed-forward binary classifiers with a genetic
// algorithm instead of backpropagation.
//
// A population of fixed-architecture networks is scored by classification
// accuracy, and each generation keeps the fittest models unchanged (elitism)
// and fills the remaining slots with children produced by fitness-proportionate
// selection, single-point crossover over (layer, neuron) coordinates, and
// column-wise weight mutation. A Runner repeats the whole search several times
// from fresh populations and keeps the best model found.
//
// Basic usage:
//
//	config, err := ga.LoadConfig("path/to/config.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	runner := ga.NewRunner(config, nil)
//	result, err := runner.RunAll(ctx, train, test)
//	if err != nil {
//		log.Fatalf("Training failed: %v", err)
//	}
//
//	if err := ga.SaveFile("wnet.txt", result.Best); err != nil {
//		log.Fatalf("Error saving model: %v", err)
//	}
//
// All randomness is drawn from an explicitly passed *rand.Rand, so a fixed
// seed reproduces a run exactly.
package ga
