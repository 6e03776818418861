package ga

import "github.com/google/uuid"

// Sample is one labeled feature vector. Label is 0 or 1.
type Sample struct {
	Features []float64
	Label    int
}

// Dataset is an ordered, read-only collection of samples. ID identifies the
// dataset for fitness caching: two datasets with the same ID must hold the
// same samples.
type Dataset struct {
	ID      string
	Samples []Sample
}

// NewDataset wraps samples in a Dataset with a fresh ID.
func NewDataset(samples []Sample) *Dataset {
	return &Dataset{
		ID:      uuid.NewString(),
		Samples: samples,
	}
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Samples)
}
