package ports

import (
	"context"

	"numcmp/domain/sample"
)

// SampleSourcePort loads a numeric sample from an external reference
// (a text file path, a spreadsheet column, ...). Implementations must
// deliver only finite values and return the sample already sorted; the
// statistical core is entitled to assume both.
type SampleSourcePort interface {
	Load(ctx context.Context, ref string) (sample.Sample, error)
}
