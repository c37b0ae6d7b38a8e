package grid

import "fmt"

// Indx is a dense row-major raster of integer classes (stream flags,
// zone IDs) with a nodata sentinel.
type Indx struct {
	GD     *Definition
	A      []int
	Nodata int
}

// NewIndx allocates a nodata-filled class raster over gd.
func NewIndx(gd *Definition, nodata int) *Indx {
	a := make([]int, gd.Ncells())
	for i := range a {
		a[i] = nodata
	}
	return &Indx{GD: gd, A: a, Nodata: nodata}
}

// LoadIndx wraps a row-major class array.
func LoadIndx(gd *Definition, a []int, nodata int) (*Indx, error) {
	if len(a) != gd.Ncells() {
		return nil, &InvalidGridError{Op: "grid.LoadIndx", Msg: fmt.Sprintf("have %d samples, need %d", len(a), gd.Ncells())}
	}
	return &Indx{GD: gd, A: a, Nodata: nodata}, nil
}

// IsNodata reports the nodata status of a cell by ID.
func (x *Indx) IsNodata(cid int) bool { return x.A[cid] == x.Nodata }

// UniqueValues returns the distinct non-nodata classes present.
func (x *Indx) UniqueValues() []int {
	m := make(map[int]bool)
	for _, v := range x.A {
		if v != x.Nodata {
			m[v] = true
		}
	}
	u := make([]int, 0, len(m))
	for v := range m {
		u = append(u, v)
	}
	return u
}
