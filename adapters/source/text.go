package source

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"numcmp/domain/core"
	"numcmp/domain/sample"
	"numcmp/ports"
)

// TextReader loads line-oriented numeric text files: one real number per
// line, blank lines skipped. Anything unparsable or non-finite is a fatal
// input error; the statistical core never sees NaN or infinities.
type TextReader struct{}

// NewTextReader creates a text sample source.
func NewTextReader() *TextReader {
	return &TextReader{}
}

// Load reads, validates, and sorts the numbers in the file at path.
func (r *TextReader) Load(ctx context.Context, path string) (sample.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sample file: %w", err)
	}
	defer f.Close()

	var values []float64
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, lineNo, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, core.NewNonFiniteError(path, lineNo, v)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return sample.New(values)
}

var _ ports.SampleSourcePort = (*TextReader)(nil)
