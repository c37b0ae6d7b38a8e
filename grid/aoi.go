package grid

import (
	"fmt"

	"github.com/ctessum/geom"
)

// Mask restricts computation to an area of interest. A nil *Mask means no
// restriction.
type Mask struct {
	GD *Definition
	In []bool
}

// MaskFromBools wraps a caller-supplied row-major inclusion array.
func MaskFromBools(gd *Definition, in []bool) (*Mask, error) {
	if len(in) != gd.Ncells() {
		return nil, &InvalidGridError{Op: "grid.MaskFromBools", Msg: fmt.Sprintf("have %d samples, need %d", len(in), gd.Ncells())}
	}
	return &Mask{GD: gd, In: in}, nil
}

// MaskFromPolygon builds the mask by testing every cell centroid against the
// polygon; centroids on the boundary are included. The polygon is assumed to
// share the grid's projected coordinate system.
func MaskFromPolygon(gd *Definition, p geom.Polygonal) *Mask {
	in := make([]bool, gd.Ncells())
	for cid := range in {
		e, n := gd.CellCentroid(cid)
		if (geom.Point{X: e, Y: n}).Within(p) != geom.Outside {
			in[cid] = true
		}
	}
	return &Mask{GD: gd, In: in}
}

// Contains reports AOI membership by cell ID.
func (m *Mask) Contains(cid int) bool { return m.In[cid] }

// Ncontained counts included cells.
func (m *Mask) Ncontained() (n int) {
	for _, b := range m.In {
		if b {
			n++
		}
	}
	return
}
