package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numcmp/domain/core"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTextReader_LoadsAndSorts(t *testing.T) {
	path := writeFile(t, "numbers.txt", "3.5\n1\n\n2.25\n-7\n")

	s, err := NewTextReader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 4, s.Count())
	assert.True(t, s.IsSorted())
	assert.Equal(t, -7.0, s[0])
	assert.Equal(t, 3.5, s[3])
}

func TestTextReader_RejectsGarbage(t *testing.T) {
	path := writeFile(t, "bad.txt", "1\ntwo\n3\n")

	_, err := NewTextReader().Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestTextReader_RejectsNonFinite(t *testing.T) {
	// strconv parses "NaN" and "Inf" successfully; the reader must still
	// refuse them so the core never sees non-finite values.
	for _, content := range []string{"1\nNaN\n", "1\n+Inf\n", "-Inf\n"} {
		path := writeFile(t, "nonfinite.txt", content)

		_, err := NewTextReader().Load(context.Background(), path)
		assert.True(t, errors.Is(err, core.ErrNonFinite), "content %q: got %v", content, err)
	}
}

func TestTextReader_MissingFile(t *testing.T) {
	_, err := NewTextReader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
}

func TestTableReader_CSVByColumn(t *testing.T) {
	path := writeFile(t, "latency.csv", "run,latency_ms\n1,30.5\n2,12\n3,99\n")

	s, err := NewTableReader("latency_ms").Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Count())
	assert.Equal(t, 12.0, s[0])
	assert.Equal(t, 99.0, s[2])
}

func TestTableReader_DefaultsToFirstColumn(t *testing.T) {
	path := writeFile(t, "vals.csv", "value\n5\n1\n3\n")

	s, err := NewTableReader("").Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 5}, []float64(s))
}

func TestTableReader_UnknownColumn(t *testing.T) {
	path := writeFile(t, "vals.csv", "value\n5\n")

	_, err := NewTableReader("missing").Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "missing"`)
}

func TestResolve_PicksReaderByExtension(t *testing.T) {
	assert.IsType(t, &TableReader{}, Resolve("data.csv", ""))
	assert.IsType(t, &TableReader{}, Resolve("data.XLSX", ""))
	assert.IsType(t, &TextReader{}, Resolve("data.txt", ""))
	assert.IsType(t, &TextReader{}, Resolve("data", ""))
}
