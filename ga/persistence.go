package ga

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// BiasSeparator is the line that divides the weight section from the bias
// section of a saved model.
const BiasSeparator = "*"

// Save writes m in the text model format:
//
//	<numLayers>
//	<layerSizes separated by spaces>
//	<one line per weight-matrix row, every matrix in order>
//	*
//	<one line per bias vector>
func Save(w io.Writer, m *Model) error {
	if err := m.CheckShape(); err != nil {
		return errors.Wrap(err, "can't save model")
	}
	bw := bufio.NewWriter(w)

	bw.WriteString(strconv.Itoa(m.NumLayers()))
	bw.WriteByte('\n')
	sizes := make([]string, len(m.LayerSizes))
	for i, n := range m.LayerSizes {
		sizes[i] = strconv.Itoa(n)
	}
	bw.WriteString(strings.Join(sizes, " "))
	bw.WriteByte('\n')

	for _, weights := range m.Weights {
		rows, _ := weights.Dims()
		for r := 0; r < rows; r++ {
			writeFloats(bw, weights.RawRowView(r))
		}
	}
	bw.WriteString(BiasSeparator)
	bw.WriteByte('\n')
	for _, b := range m.Biases {
		writeFloats(bw, mat.Col(nil, 0, b))
	}

	return errors.Wrap(bw.Flush(), "can't save model")
}

func writeFloats(bw *bufio.Writer, values []float64) {
	for i, v := range values {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	bw.WriteByte('\n')
}

// SaveFile writes m to path, replacing any existing file.
func SaveFile(path string, m *Model) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "can't save model, couldn't create file %s", path)
	}
	if err := Save(f, m); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "can't save model to %s", path)
}

// lineReader yields lines with their 1-based numbers for error messages.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func (lr *lineReader) next(what string) (string, error) {
	if !lr.sc.Scan() {
		if err := lr.sc.Err(); err != nil {
			return "", errors.Wrap(err, "can't load model")
		}
		return "", errors.Wrapf(ErrSerializationFormat, "unexpected end of file, expected %s", what)
	}
	lr.line++
	return strings.TrimSpace(lr.sc.Text()), nil
}

func (lr *lineReader) floats(what string, want int) ([]float64, error) {
	text, err := lr.next(what)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(text)
	if len(fields) != want {
		return nil, errors.Wrapf(ErrSerializationFormat, "line %d: %s has %d values, want %d", lr.line, what, len(fields), want)
	}
	values := make([]float64, want)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrSerializationFormat, "line %d: %s value %q is not a number", lr.line, what, f)
		}
		values[i] = v
	}
	return values, nil
}

// Load reads a model written by Save. The activation is not part of the file
// and must be supplied.
func Load(r io.Reader, activation ActivationFunc) (*Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	lr := &lineReader{sc: sc}

	text, err := lr.next("layer count")
	if err != nil {
		return nil, err
	}
	numLayers, err := strconv.Atoi(text)
	if err != nil {
		return nil, errors.Wrapf(ErrSerializationFormat, "line 1: layer count %q is not an integer", text)
	}
	if numLayers < 2 {
		return nil, errors.Wrapf(ErrSerializationFormat, "line 1: layer count %d, need at least 2", numLayers)
	}

	text, err = lr.next("layer sizes")
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(text)
	if len(fields) != numLayers {
		return nil, errors.Wrapf(ErrSerializationFormat, "line 2: %d layer sizes for %d layers", len(fields), numLayers)
	}
	sizes := make([]int, numLayers)
	for i, f := range fields {
		if sizes[i], err = strconv.Atoi(f); err != nil || sizes[i] <= 0 {
			return nil, errors.Wrapf(ErrSerializationFormat, "line 2: invalid layer size %q", f)
		}
	}
	if err := ValidateArchitecture(sizes); err != nil {
		return nil, errors.Wrap(ErrSerializationFormat, err.Error())
	}

	m := newEmptyModel(sizes, activation)
	for i := 0; i < numLayers-1; i++ {
		rows, cols := sizes[i], sizes[i+1]
		// Not pre-sized; header sizes are unchecked until the rows are read.
		var data []float64
		for r := 0; r < rows; r++ {
			row, err := lr.floats("weights["+strconv.Itoa(i)+"] row", cols)
			if err != nil {
				return nil, err
			}
			data = append(data, row...)
		}
		m.Weights = append(m.Weights, mat.NewDense(rows, cols, data))
	}

	text, err = lr.next("separator")
	if err != nil {
		return nil, err
	}
	if text != BiasSeparator {
		return nil, errors.Wrapf(ErrSerializationFormat, "line %d: expected separator %q, got %q", lr.line, BiasSeparator, text)
	}

	for i := 0; i < numLayers-1; i++ {
		b, err := lr.floats("biases["+strconv.Itoa(i)+"]", sizes[i+1])
		if err != nil {
			return nil, err
		}
		m.Biases = append(m.Biases, mat.NewVecDense(len(b), b))
	}

	for sc.Scan() {
		lr.line++
		if strings.TrimSpace(sc.Text()) != "" {
			return nil, errors.Wrapf(ErrSerializationFormat, "line %d: unexpected content after bias section", lr.line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "can't load model")
	}
	return m, nil
}

// LoadFile reads a model from path.
func LoadFile(path string, activation ActivationFunc) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can't load model, couldn't open %s", path)
	}
	defer f.Close()
	return Load(f, activation)
}
