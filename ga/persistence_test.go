package ga

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFormat(t *testing.T) {
	m := newFixedModel([]int{2, 1}, [][]float64{{1, 1}}, [][]float64{{-1}})
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, m))
	assert.Equal(t, "2\n2 1\n1\n1\n*\n-1\n", buf.String())
}

func TestSaveWritesOneLinePerBiasVector(t *testing.T) {
	m := newFixedModel([]int{2, 3, 1},
		[][]float64{{1, 2, 3, 4, 5, 6}, {0.5, -0.5, 0.25}},
		[][]float64{{0.1, 0.2, 0.3}, {-2}})
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, m))

	want := strings.Join([]string{
		"3",
		"2 3 1",
		"1 2 3",
		"4 5 6",
		"0.5",
		"-0.5",
		"0.25",
		"*",
		"0.1 0.2 0.3",
		"-2",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	rng := newTestRand(1)
	for _, sizes := range [][]int{{2, 1}, {4, 3, 1}, {8, 5, 3, 1}} {
		m := newRandomModel(t, rng, sizes...)
		var buf bytes.Buffer
		require.NoError(t, Save(&buf, m))

		got, err := Load(&buf, Sigmoid)
		require.NoError(t, err)
		assert.Equal(t, sizes, got.LayerSizes)
		assert.True(t, m.EqualParams(got, 0), "shortest round-trip formatting is exact")

		sample := make([]float64, sizes[0])
		for i := range sample {
			sample[i] = rng.Float64()
		}
		want, err := m.Output(sample)
		require.NoError(t, err)
		have, err := got.Output(sample)
		require.NoError(t, err)
		assert.Equal(t, want, have)
	}
}

func TestSaveFileLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.txt")
	m := newRandomModel(t, newTestRand(2), 3, 2, 1)
	require.NoError(t, SaveFile(path, m))
	got, err := LoadFile(path, Tanh)
	require.NoError(t, err)
	assert.True(t, m.EqualParams(got, 0))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"), Sigmoid)
	require.Error(t, err)
}

func TestLoadTolerantOfTrailingBlankLines(t *testing.T) {
	got, err := Load(strings.NewReader("2\n2 1\n1\n1\n*\n-1\n\n  \n"), Sigmoid)
	require.NoError(t, err)
	assert.Equal(t, -1.0, got.Biases[0].AtVec(0))
}

func TestLoadRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"empty":              "",
		"bad layer count":    "two\n2 1\n1\n1\n*\n-1\n",
		"too few layers":     "1\n2\n*\n",
		"sizes vs count":     "3\n2 1\n1\n1\n*\n-1\n",
		"output not one":     "2\n2 2\n1 1\n1 1\n*\n0 0\n",
		"short weight row":   "2\n2 1\n1\n\n*\n-1\n",
		"wide weight row":    "2\n2 1\n1 2\n1\n*\n-1\n",
		"non numeric weight": "2\n2 1\nx\n1\n*\n-1\n",
		"missing separator":  "2\n2 1\n1\n1\n-1\n",
		"missing biases":     "2\n2 1\n1\n1\n*\n",
		"bias width":         "2\n2 1\n1\n1\n*\n-1 3\n",
		"bracketed biases":   "2\n2 1\n1\n1\n*\n[-1]\n",
		"trailing content":   "2\n2 1\n1\n1\n*\n-1\n5\n",
		"huge layer size":    "2\n100000000000000 1\n1\n*\n0\n",
		"huge size product":  "3\n4611686018427387904 4 1\n1 2 3 4\n*\n0 0 0 0\n0\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(input), Sigmoid)
			require.ErrorIs(t, err, ErrSerializationFormat)
		})
	}
}
