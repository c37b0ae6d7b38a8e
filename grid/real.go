package grid

import "fmt"

// Real is a dense row-major raster of float64 samples with a nodata
// sentinel. Once loaded it is treated as read-only by every consumer.
type Real struct {
	GD     *Definition
	A      []float64
	Nodata float64
}

// NewReal allocates a nodata-filled raster over gd.
func NewReal(gd *Definition, nodata float64) *Real {
	a := make([]float64, gd.Ncells())
	for i := range a {
		a[i] = nodata
	}
	return &Real{GD: gd, A: a, Nodata: nodata}
}

// LoadReal wraps a row-major sample array.
func LoadReal(gd *Definition, a []float64, nodata float64) (*Real, error) {
	if len(a) != gd.Ncells() {
		return nil, &InvalidGridError{Op: "grid.LoadReal", Msg: fmt.Sprintf("have %d samples, need %d", len(a), gd.Ncells())}
	}
	return &Real{GD: gd, A: a, Nodata: nodata}, nil
}

// Value bounds-checked access by (row,col); ok is false out of bounds or on
// a nodata cell.
func (r *Real) Value(row, col int) (v float64, ok bool) {
	if !r.GD.InBounds(row, col) {
		return r.Nodata, false
	}
	v = r.A[r.GD.CellID(row, col)]
	return v, v != r.Nodata
}

// IsNodata reports the nodata status of a cell by ID.
func (r *Real) IsNodata(cid int) bool { return r.A[cid] == r.Nodata }

// Copy deep-copies the raster (shared Definition).
func (r *Real) Copy() *Real {
	a := make([]float64, len(r.A))
	copy(a, r.A)
	return &Real{GD: r.GD, A: a, Nodata: r.Nodata}
}
