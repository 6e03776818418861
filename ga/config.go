package ga

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// Config stores the parameters of a training job.
type Config struct {
	Training TrainingConfig
	Model    ModelConfig
	Output   OutputConfig
}

// TrainingConfig holds the evolutionary search parameters.
type TrainingConfig struct {
	NumGenerations int     `ini:"num_generations"`
	PopulationSize int     `ini:"population_size"`
	EliteSize      int     `ini:"elite_size"`
	MutationRate   float64 `ini:"mutation_rate"`   // per-column trigger probability
	MutationFactor float64 `ini:"mutation_factor"` // perturbation scale
	TrainTestRatio float64 `ini:"train_test_ratio"`
	NumRuns        int     `ini:"num_runs"`
	TestInterval   int     `ini:"test_interval"` // generations between held-out evaluations
	Seed           int64   `ini:"seed"`          // 0 means seed from the clock
	Workers        int     `ini:"workers"`       // parallel fitness tasks, 1 = sequential
}

// ModelConfig describes the architecture and initial parameters of every
// model in a population.
type ModelConfig struct {
	LayerSizes      []int   `ini:"layer_sizes" delim:" "`
	Activation      string  `ini:"activation"`
	WeightInit      string  `ini:"weight_init"`
	WeightInitMean  float64 `ini:"weight_init_mean"`
	WeightInitStdev float64 `ini:"weight_init_stdev"`
}

// OutputConfig controls where results go. Empty paths disable the output.
type OutputConfig struct {
	ModelPath string `ini:"model_path"`
	PlotPath  string `ini:"plot_path"`
	Store     string `ini:"store"` // "memory" or "sqlite"
	StorePath string `ini:"store_path"`
}

// DefaultConfig returns a Config with every optional field set. LayerSizes is
// left empty and must be supplied.
func DefaultConfig() *Config {
	return &Config{
		Training: TrainingConfig{
			NumGenerations: 200,
			PopulationSize: 100,
			EliteSize:      10,
			MutationRate:   0.1,
			MutationFactor: 0.5,
			TrainTestRatio: 0.8,
			NumRuns:        5,
			TestInterval:   50,
			Workers:        1,
		},
		Model: ModelConfig{
			Activation:      "sigmoid",
			WeightInit:      string(InitXavier),
			WeightInitStdev: 0.5,
		},
		Output: OutputConfig{
			Store: "memory",
		},
	}
}

// LoadConfig loads configuration parameters from an INI file and validates
// them. Keys missing from the file keep their DefaultConfig values.
func LoadConfig(filePath string) (*Config, error) {
	config, err := ReadConfig(filePath)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ReadConfig is LoadConfig without validation, for callers that fill in
// remaining fields (such as LayerSizes inferred from data) before validating.
func ReadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config file '%s'", filePath)
	}

	config := DefaultConfig()
	if err := cfg.Section("Training").MapTo(&config.Training); err != nil {
		return nil, errors.Wrap(err, "failed to map [Training] section")
	}
	if err := cfg.Section("Model").MapTo(&config.Model); err != nil {
		return nil, errors.Wrap(err, "failed to map [Model] section")
	}
	if err := cfg.Section("Output").MapTo(&config.Output); err != nil {
		return nil, errors.Wrap(err, "failed to map [Output] section")
	}

	config.Model.Activation = cleanIniString(config.Model.Activation)
	config.Model.WeightInit = cleanIniString(config.Model.WeightInit)
	config.Output.ModelPath = cleanIniString(config.Output.ModelPath)
	config.Output.PlotPath = cleanIniString(config.Output.PlotPath)
	config.Output.Store = cleanIniString(config.Output.Store)
	config.Output.StorePath = cleanIniString(config.Output.StorePath)
	return config, nil
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	t := c.Training
	switch {
	case t.NumGenerations < 0:
		return errors.Wrap(ErrInvalidConfig, "num_generations cannot be negative")
	case t.PopulationSize <= 0:
		return errors.Wrap(ErrInvalidConfig, "population_size must be positive")
	case t.EliteSize < 0 || t.EliteSize > t.PopulationSize:
		return errors.Wrapf(ErrInvalidConfig, "elite_size must be between 0 and population_size (%d)", t.PopulationSize)
	case t.MutationRate < 0 || t.MutationRate > 1:
		return errors.Wrap(ErrInvalidConfig, "mutation_rate must be between 0 and 1")
	case t.MutationFactor < 0:
		return errors.Wrap(ErrInvalidConfig, "mutation_factor cannot be negative")
	case t.TrainTestRatio <= 0 || t.TrainTestRatio >= 1:
		return errors.Wrap(ErrInvalidConfig, "train_test_ratio must be strictly between 0 and 1")
	case t.NumRuns <= 0:
		return errors.Wrap(ErrInvalidConfig, "num_runs must be positive")
	case t.TestInterval <= 0:
		return errors.Wrap(ErrInvalidConfig, "test_interval must be positive")
	}

	if len(c.Model.LayerSizes) == 0 {
		return errors.Wrap(ErrInvalidConfig, "layer_sizes must be specified")
	}
	if err := ValidateArchitecture(c.Model.LayerSizes); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if _, err := GetActivation(c.Model.Activation); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if _, err := ParseWeightInit(c.Model.WeightInit); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if c.Model.WeightInitStdev < 0 {
		return errors.Wrap(ErrInvalidConfig, "weight_init_stdev cannot be negative")
	}

	switch strings.ToLower(c.Output.Store) {
	case "", "memory", "sqlite":
	default:
		return errors.Wrapf(ErrInvalidConfig, "unsupported store %q", c.Output.Store)
	}
	return nil
}

// ActivationFunc resolves the configured activation by name.
func (c *Config) ActivationFunc() (ActivationFunc, error) {
	return GetActivation(c.Model.Activation)
}

// Initializer returns the configured weight initializer.
func (c *Config) Initializer() Initializer {
	kind, err := ParseWeightInit(c.Model.WeightInit)
	if err != nil {
		kind = InitXavier
	}
	return Initializer{Kind: kind, Mean: c.Model.WeightInitMean, Stdev: c.Model.WeightInitStdev}
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
