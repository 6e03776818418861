// Package store persists trained models and run curves.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/baldhumanity/ga-go/ga"
)

// Store defines the persistence operations for training results.
type Store interface {
	Init(ctx context.Context) error
	SaveModel(ctx context.Context, id string, m *ga.Model) error
	GetModel(ctx context.Context, id string, activation ga.ActivationFunc) (*ga.Model, bool, error)
	SaveRun(ctx context.Context, record RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, bool, error)
	ListRuns(ctx context.Context, jobID string) ([]RunRecord, error)
}

// RunRecord is the stored form of one run's outcome.
type RunRecord struct {
	ID              string    `json:"id"`
	JobID           string    `json:"job_id"`
	Run             int       `json:"run"`
	Seed            int64     `json:"seed"`
	ModelID         string    `json:"model_id"`
	BestFitness     float64   `json:"best_fitness"`
	TestFitness     float64   `json:"test_fitness"`
	MaxFitness      []float64 `json:"max_fitness"`
	MeanFitness     []float64 `json:"mean_fitness"`
	TestCurve       []float64 `json:"test_curve"`
	TestGenerations []int     `json:"test_generations"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewStore creates a store backend by name.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, errors.Errorf("unsupported store backend: %s", kind)
	}
}

// CloseIfSupported closes store if it holds resources.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}

// SaveResults stores every run of result under a new job ID, along with each
// run's best model, and returns the job ID. The globally best model is also
// stored under the job ID itself.
func SaveResults(ctx context.Context, s Store, result *ga.MultiRunResult) (string, error) {
	jobID := uuid.NewString()
	for _, run := range result.Runs {
		modelID := fmt.Sprintf("%s/run-%d", jobID, run.Run)
		if err := s.SaveModel(ctx, modelID, run.Best); err != nil {
			return "", errors.Wrapf(err, "save model of run %d", run.Run)
		}
		if err := s.SaveRun(ctx, NewRunRecord(jobID, modelID, run)); err != nil {
			return "", errors.Wrapf(err, "save run %d", run.Run)
		}
	}
	if err := s.SaveModel(ctx, jobID, result.Best); err != nil {
		return "", errors.Wrap(err, "save best model")
	}
	return jobID, nil
}

// NewRunRecord converts a run result to its stored form.
func NewRunRecord(jobID, modelID string, r ga.RunResult) RunRecord {
	rec := RunRecord{
		ID:          uuid.NewString(),
		JobID:       jobID,
		Run:         r.Run,
		Seed:        r.Seed,
		ModelID:     modelID,
		BestFitness: r.BestFitness,
		TestFitness: r.TestFitness,
		CreatedAt:   r.FinishedAt.UTC(),
	}
	if r.Curves != nil {
		rec.MaxFitness = r.Curves.MaxFitness
		rec.MeanFitness = r.Curves.MeanFitness
		rec.TestCurve = r.Curves.TestFitness
		rec.TestGenerations = r.Curves.TestGenerations
	}
	return rec
}

func encodeModel(m *ga.Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := ga.Save(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeModel(data []byte, activation ga.ActivationFunc) (*ga.Model, error) {
	return ga.Load(bytes.NewReader(data), activation)
}

func encodeRun(r RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func decodeRun(data []byte) (RunRecord, error) {
	var r RunRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return RunRecord{}, errors.Wrap(err, "decode run record")
	}
	return r, nil
}
