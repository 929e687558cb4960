package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/symnmf/matrix"
)

// Read parses comma-separated points, one per line. The first record fixes
// the dimension; empty lines are skipped. Any malformed record yields
// ErrMalformedInput wrapped with its line number.
func Read(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0 // first record sets the count; csv.ErrFieldCount afterwards
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var points []Point
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrMalformedInput)
		}
		line, _ := cr.FieldPos(0)
		p := make(Point, len(rec))
		for j, tok := range rec {
			v, perr := strconv.ParseFloat(strings.TrimSpace(tok), 64)
			if perr != nil {
				return nil, fmt.Errorf("line %d field %d: %v: %w", line, j+1, perr, ErrMalformedInput)
			}
			p[j] = v
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrEmptyDataset, ErrMalformedInput)
	}

	return New(points)
}

// Load opens path and parses it with Read.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", path, err, ErrMalformedInput)
	}
	defer f.Close()

	ds, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ds, nil
}

// WriteMatrix prints m with 4 decimals per entry, comma-separated, one row per line.
func WriteMatrix(w io.Writer, m matrix.Matrix) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	var buf []byte
	for i := 0; i < m.Rows(); i++ {
		buf = buf[:0]
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return err
			}
			if j > 0 {
				buf = append(buf, ',')
			}
			buf = strconv.AppendFloat(buf, v, 'f', 4, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteLabels prints labels comma-separated on a single line.
func WriteLabels(w io.Writer, labels []int) error {
	var b strings.Builder
	for i, l := range labels {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(l))
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())

	return err
}
