package grid

import (
	"fmt"
	"math"

	"github.com/im7mortal/UTM"
)

// Definition describes a uniform, row-major raster grid: the coordinate of
// its upper-left corner, an (optional) rotation, a square cell width and its
// row/column extents. Cell IDs run 0..Ncells()-1 in row-major order.
type Definition struct {
	Eorig, Norig float64 // upper-left corner
	Rotation     float64 // radians, informational
	Cwidth       float64
	Nrow, Ncol   int
}

// NewDefinition builds and checks a grid definition.
func NewDefinition(eorig, norig, cwidth float64, nrow, ncol int) (*Definition, error) {
	if nrow <= 0 || ncol <= 0 {
		return nil, &InvalidGridError{Op: "grid.NewDefinition", Msg: fmt.Sprintf("non-positive extents %d x %d", nrow, ncol)}
	}
	if cwidth <= 0. || math.IsNaN(cwidth) || math.IsInf(cwidth, 0) {
		return nil, &InvalidGridError{Op: "grid.NewDefinition", Msg: fmt.Sprintf("invalid cell width %v", cwidth)}
	}
	return &Definition{Eorig: eorig, Norig: norig, Cwidth: cwidth, Nrow: nrow, Ncol: ncol}, nil
}

// Ncells total cell count
func (gd *Definition) Ncells() int { return gd.Nrow * gd.Ncol }

// CellID row-major cell ID from (row,col)
func (gd *Definition) CellID(row, col int) int { return row*gd.Ncol + col }

// RowCol inverts CellID
func (gd *Definition) RowCol(cid int) (row, col int) { return cid / gd.Ncol, cid % gd.Ncol }

// InBounds reports whether (row,col) lies on the grid
func (gd *Definition) InBounds(row, col int) bool {
	return row >= 0 && row < gd.Nrow && col >= 0 && col < gd.Ncol
}

// Compatible reports whether two definitions have identical extents.
func (gd *Definition) Compatible(gd2 *Definition) bool {
	return gd.Nrow == gd2.Nrow && gd.Ncol == gd2.Ncol
}

// CellCentroid returns the (easting, northing) of a cell centre.
func (gd *Definition) CellCentroid(cid int) (e, n float64) {
	row, col := gd.RowCol(cid)
	e = gd.Eorig + (float64(col)+.5)*gd.Cwidth
	n = gd.Norig - (float64(row)+.5)*gd.Cwidth
	return
}

// LatLong converts a cell centroid to geographic coordinates, interpreting
// the grid origin as UTM eastings/northings in the given zone.
func (gd *Definition) LatLong(cid, utmZone int, northern bool) (lat, long float64, err error) {
	e, n := gd.CellCentroid(cid)
	lat, long, err = UTM.ToLatLon(e, n, utmZone, "", northern)
	if err != nil {
		return 0., 0., fmt.Errorf(" Definition.LatLong error: %v -- (x,y)=(%f, %f); cid: %d", err, e, n, cid)
	}
	return
}
