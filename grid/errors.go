package grid

import "fmt"

// InvalidGridError reports structurally unusable raster input: mismatched
// extents between collaborating grids, bad construction parameters, or
// non-finite values outside the nodata convention.
type InvalidGridError struct {
	Op  string
	Msg string
}

func (e *InvalidGridError) Error() string {
	return fmt.Sprintf("%s: invalid grid: %s", e.Op, e.Msg)
}

// Mismatch builds the common extent-mismatch case.
func Mismatch(op string, want, got *Definition) *InvalidGridError {
	return &InvalidGridError{
		Op:  op,
		Msg: fmt.Sprintf("extent mismatch: %d x %d vs %d x %d", want.Nrow, want.Ncol, got.Nrow, got.Ncol),
	}
}
