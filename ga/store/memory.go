package store

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/baldhumanity/ga-go/ga"
)

// MemoryStore keeps encoded records in maps. Records are stored encoded so
// callers never share mutable state with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	models map[string][]byte
	runs   map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		models: make(map[string][]byte),
		runs:   make(map[string][]byte),
	}
}

// Init is a no-op.
func (s *MemoryStore) Init(_ context.Context) error {
	return nil
}

// SaveModel stores m under id, replacing any previous model.
func (s *MemoryStore) SaveModel(_ context.Context, id string, m *ga.Model) error {
	payload, err := encodeModel(m)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[id] = payload
	return nil
}

// GetModel decodes the model stored under id; ok is false if there is none.
func (s *MemoryStore) GetModel(_ context.Context, id string, activation ga.ActivationFunc) (*ga.Model, bool, error) {
	s.mu.RLock()
	payload, ok := s.models[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	m, err := decodeModel(payload, activation)
	if err != nil {
		return nil, false, errors.Wrapf(err, "decode model %s", id)
	}
	return m, true, nil
}

// SaveRun stores record under its ID.
func (s *MemoryStore) SaveRun(_ context.Context, record RunRecord) error {
	payload, err := encodeRun(record)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[record.ID] = payload
	return nil
}

// GetRun returns the run record with the given ID.
func (s *MemoryStore) GetRun(_ context.Context, id string) (RunRecord, bool, error) {
	s.mu.RLock()
	payload, ok := s.runs[id]
	s.mu.RUnlock()
	if !ok {
		return RunRecord{}, false, nil
	}
	r, err := decodeRun(payload)
	if err != nil {
		return RunRecord{}, false, errors.Wrapf(err, "decode run %s", id)
	}
	return r, true, nil
}

// ListRuns returns the runs of jobID ordered by run index.
func (s *MemoryStore) ListRuns(_ context.Context, jobID string) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []RunRecord
	for _, payload := range s.runs {
		r, err := decodeRun(payload)
		if err != nil {
			return nil, err
		}
		if r.JobID == jobID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Run < out[j].Run })
	return out, nil
}
