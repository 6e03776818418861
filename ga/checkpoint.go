package ga

import (
	"compress/gzip"
	"encoding/gob"
	"math/rand"
	"os"

	"github.com/pkg/errors"
)

// populationSaveData holds the parts of a Population needed to resume it.
// The Config is not saved; it is supplied again on load. Weight matrices and
// bias vectors encode through their binary marshalers.
type populationSaveData struct {
	Models     []*Model
	Generation int
	Run        int
}

// SaveCheckpoint writes the population to filePath as gzip-compressed gob.
// The random generator's state is not saved.
func (p *Population) SaveCheckpoint(filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to create checkpoint file '%s'", filePath)
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)
	saveData := populationSaveData{
		Models:     p.Models,
		Generation: p.Generation,
		Run:        p.Run,
	}
	if err := gob.NewEncoder(gzWriter).Encode(saveData); err != nil {
		gzWriter.Close()
		return errors.Wrap(err, "failed to encode population data")
	}
	if err := gzWriter.Close(); err != nil {
		return errors.Wrap(err, "failed to flush checkpoint")
	}
	return errors.Wrap(file.Sync(), "failed to sync checkpoint")
}

// LoadCheckpoint restores a population saved by SaveCheckpoint. The
// activation function is re-linked from config, and rng drives all further
// evolution.
func LoadCheckpoint(checkpointPath string, config *Config, rng *rand.Rand) (*Population, error) {
	if rng == nil {
		return nil, errors.New("random source is required")
	}
	activation, err := config.ActivationFunc()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(checkpointPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open checkpoint file '%s'", checkpointPath)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gzip reader for checkpoint")
	}
	defer gzReader.Close()

	var saveData populationSaveData
	if err := gob.NewDecoder(gzReader).Decode(&saveData); err != nil {
		return nil, errors.Wrap(err, "failed to decode population data from checkpoint")
	}

	if len(saveData.Models) != config.Training.PopulationSize {
		return nil, errors.Errorf("checkpoint holds %d models, config expects %d",
			len(saveData.Models), config.Training.PopulationSize)
	}
	for i, m := range saveData.Models {
		m.Activation = activation
		if err := m.CheckShape(); err != nil {
			return nil, errors.Wrapf(err, "checkpoint model %d", i)
		}
	}

	return &Population{
		Config:     config,
		Models:     saveData.Models,
		Generation: saveData.Generation,
		Run:        saveData.Run,
		rng:        rng,
	}, nil
}
