package ga

import "github.com/pkg/errors"

// Error kinds returned by the training engine. Call sites wrap these with
// context, so use errors.Is to test for a kind.
var (
	// ErrDegenerateFitness is returned when every model in a population has
	// zero fitness and selection probabilities cannot be normalized.
	ErrDegenerateFitness = errors.New("degenerate fitness: all models have zero fitness")

	// ErrDimensionMismatch is returned when a sample's feature count differs
	// from a model's input width.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrSerializationFormat is returned when a persisted model does not
	// follow the text grammar.
	ErrSerializationFormat = errors.New("malformed model file")

	// ErrEmptyDataset is returned when fitness is requested on a dataset with
	// no samples.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrInvalidArchitecture is returned for layer sizes that cannot describe
	// a binary classifier.
	ErrInvalidArchitecture = errors.New("invalid architecture")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid config")
)
