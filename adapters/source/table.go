package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"numcmp/domain/core"
	"numcmp/domain/sample"
	"numcmp/ports"
)

// TableReader extracts one numeric column from an xlsx or csv file. The
// column is selected by header name; an empty column name takes the first
// column. The first row is always treated as a header row.
type TableReader struct {
	column string
}

// NewTableReader creates a table sample source for the given column.
func NewTableReader(column string) *TableReader {
	return &TableReader{column: column}
}

// Load reads the configured column, validates finiteness, and sorts.
func (r *TableReader) Load(ctx context.Context, path string) (sample.Sample, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = r.readCSVRows(path)
	case ".xlsx":
		rows, err = r.readExcelRows(path)
	default:
		return nil, fmt.Errorf("unsupported table file type: %s", path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: no data rows below header", path)
	}

	col, err := r.columnIndex(rows[0], path)
	if err != nil {
		return nil, err
	}

	values := make([]float64, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if col >= len(row) || strings.TrimSpace(row[col]) == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, core.NewNonFiniteError(path, i+2, v)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%s: column %q holds no numeric values", path, r.column)
	}

	return sample.New(values)
}

func (r *TableReader) columnIndex(header []string, path string) (int, error) {
	if r.column == "" {
		if len(header) == 0 {
			return 0, fmt.Errorf("%s: empty header row", path)
		}
		return 0, nil
	}
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), r.column) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%s: column %q not found in header", path, r.column)
}

func (r *TableReader) readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv %s: %w", path, err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func (r *TableReader) readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx %s: %w", path, err)
	}
	return rows, nil
}

var _ ports.SampleSourcePort = (*TableReader)(nil)

// Resolve picks a sample source for the given reference by extension:
// xlsx/csv go through the table reader, everything else is treated as
// line-oriented numeric text.
func Resolve(ref, column string) ports.SampleSourcePort {
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".xlsx", ".csv":
		return NewTableReader(column)
	default:
		return NewTextReader()
	}
}
