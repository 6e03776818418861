package plot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/ga-go/ga"
)

func sampleRun(run int) ga.RunResult {
	return ga.RunResult{
		Run: run,
		Curves: &ga.TrainResult{
			MaxFitness:      []float64{0.5, 0.7, 0.8, 0.9},
			MeanFitness:     []float64{0.3, 0.4, 0.6, 0.7},
			TestFitness:     []float64{0.45, 0.85},
			TestGenerations: []int{0, 2},
		},
	}
}

func TestSaveRun(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"run.png", "run.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, SaveRun(sampleRun(0), path))
		assert.FileExists(t, path)
	}
}

func TestRunPlotWithoutCurves(t *testing.T) {
	_, err := RunPlot(ga.RunResult{Run: 3})
	require.Error(t, err)
}

func TestSaveBestCurves(t *testing.T) {
	result := &ga.MultiRunResult{Runs: []ga.RunResult{sampleRun(0), sampleRun(1)}, BestRun: 1}
	path := filepath.Join(t.TempDir(), "curves.png")
	require.NoError(t, SaveBestCurves(result, path))
	assert.FileExists(t, path)
}

func TestGenerationXYs(t *testing.T) {
	pts := generationXYs([]float64{0.1, 0.2})
	require.Len(t, pts, 2)
	assert.Equal(t, 1.0, pts[1].X)
	assert.Equal(t, 0.2, pts[1].Y)
}
