// Package dataset loads labeled samples for binary classification and splits
// them into training and test sets.
package dataset

import (
	"bufio"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/baldhumanity/ga-go/ga"
)

// DefaultTrainRatio is the fraction of samples used for training.
const DefaultTrainRatio = 0.8

// Load parses one sample per line. Two file shapes are accepted:
//
//	0110100110010110   1
//	0.25 1.5 -3 0
//
// In the first, every character of the bit string becomes a 0/1 feature. In
// the second, all fields but the last are features and the last is the label.
// The first sample fixes the shape for the whole file: it is a bit-string file
// when that line has two fields and the first is two or more 0s and 1s, so
// "10 1" opens a bit-string file with features [1 0]. A numeric file reads
// "10 1" as the single feature 10. Blank lines are skipped. Every sample must
// have the same feature count.
func Load(r io.Reader) (*ga.Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var samples []ga.Sample
	width := -1
	shape := shapeUnknown
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if shape == shapeUnknown {
			shape = detectShape(fields)
		}
		s, err := parseLine(fields, shape)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if width == -1 {
			width = len(s.Features)
		} else if len(s.Features) != width {
			return nil, errors.Wrapf(ga.ErrDimensionMismatch, "line %d: %d features, earlier samples have %d",
				line, len(s.Features), width)
		}
		samples = append(samples, s)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read samples")
	}
	return ga.NewDataset(samples), nil
}

// LoadFile loads samples from path.
func LoadFile(path string) (*ga.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open dataset %s", path)
	}
	defer f.Close()
	ds, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load dataset %s", path)
	}
	return ds, nil
}

type lineShape int

const (
	shapeUnknown lineShape = iota
	shapeBits
	shapeNumeric
)

func detectShape(fields []string) lineShape {
	if len(fields) == 2 && isBitString(fields[0]) {
		return shapeBits
	}
	return shapeNumeric
}

func parseLine(fields []string, shape lineShape) (ga.Sample, error) {
	if len(fields) < 2 {
		return ga.Sample{}, errors.Errorf("need features and a label, got %d field(s)", len(fields))
	}
	label, err := parseLabel(fields[len(fields)-1])
	if err != nil {
		return ga.Sample{}, err
	}
	if shape == shapeBits {
		if len(fields) != 2 || !isBitString(fields[0]) {
			return ga.Sample{}, errors.New("expected a bit string and a label like the first sample")
		}
		features := make([]float64, len(fields[0]))
		for i, c := range fields[0] {
			if c == '1' {
				features[i] = 1
			}
		}
		return ga.Sample{Features: features, Label: label}, nil
	}

	features := make([]float64, len(fields)-1)
	for i, f := range fields[:len(fields)-1] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ga.Sample{}, errors.Errorf("feature %d: %q is not a number", i, f)
		}
		features[i] = v
	}
	return ga.Sample{Features: features, Label: label}, nil
}

func parseLabel(s string) (int, error) {
	switch s {
	case "0", "0.0":
		return 0, nil
	case "1", "1.0":
		return 1, nil
	default:
		return 0, errors.Errorf("label %q is not 0 or 1", s)
	}
}

// isBitString reports whether s is two or more characters of 0 and 1. A
// single character is read as a numeric feature instead.
func isBitString(s string) bool {
	if len(s) < 2 {
		return false
	}
	for _, c := range s {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}

// Split shuffles a copy of ds with rng and cuts it at int(len*ratio). Each
// half gets a fresh dataset ID; ds is not modified.
func Split(ds *ga.Dataset, ratio float64, rng *rand.Rand) (train, test *ga.Dataset, err error) {
	if ratio <= 0 || ratio >= 1 {
		return nil, nil, errors.Errorf("train ratio %v must be strictly between 0 and 1", ratio)
	}
	if rng == nil {
		return nil, nil, errors.New("random source is required")
	}
	samples := make([]ga.Sample, ds.Len())
	copy(samples, ds.Samples)
	rng.Shuffle(len(samples), func(i, j int) { samples[i], samples[j] = samples[j], samples[i] })

	cut := int(float64(len(samples)) * ratio)
	return ga.NewDataset(samples[:cut:cut]), ga.NewDataset(samples[cut:]), nil
}
