package d8route

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

// Direction is a D8 flow direction code. The eight compass codes double as
// the deterministic tie-break order: among neighbours of equal maximum
// descent slope the first in N, NE, E, SE, S, SW, W, NW wins.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	Sink   // local minimum, a valid drainage terminal
	NoData // nodata or out-of-AOI cell
)

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case NorthEast:
		return "NE"
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case South:
		return "S"
	case SouthWest:
		return "SW"
	case West:
		return "W"
	case NorthWest:
		return "NW"
	case Sink:
		return "SINK"
	case NoData:
		return "NODATA"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Diagonal reports whether the code is one of the four diagonal directions.
func (d Direction) Diagonal() bool {
	switch d {
	case NorthEast, SouthEast, SouthWest, NorthWest:
		return true
	}
	return false
}

// row/col offsets and unit travel distances, indexed by Direction.
var (
	drow  = [8]int{-1, -1, 0, 1, 1, 1, 0, -1}
	dcol  = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	ddist = [8]float64{1, math.Sqrt2, 1, math.Sqrt2, 1, math.Sqrt2, 1, math.Sqrt2}
)

// BuildDirections assigns every valid cell its steepest positive-descent
// neighbour or marks it a sink, then builds the inverse adjacency. Slope to a
// neighbour is (z-zn)/dist with dist the cell width for cardinal neighbours
// and width*sqrt(2) for diagonals; out-of-bounds, nodata and out-of-AOI
// neighbours are never descent targets.
func (r *Router) BuildDirections() error {
	if r.Stage != Loaded {
		return fmt.Errorf("d8route.BuildDirections: called in state %s, need %s", r.Stage, Loaded)
	}
	tt := time.Now()

	gd, cw := r.DEM.GD, r.DEM.GD.Cwidth
	n := gd.Ncells()
	r.Dir = make([]Direction, n)
	r.Ds = make([]int, n)
	nsink := 0
	for cid := 0; cid < n; cid++ {
		r.Ds[cid] = -1
		if !r.valid(cid) {
			r.Dir[cid] = NoData
			continue
		}
		row, col := gd.RowCol(cid)
		z := r.DEM.A[cid]
		best, bestslope := -1, 0.
		for k := 0; k < 8; k++ {
			nr, nc := row+drow[k], col+dcol[k]
			if !gd.InBounds(nr, nc) {
				continue
			}
			ncid := gd.CellID(nr, nc)
			if !r.valid(ncid) {
				continue
			}
			if s := (z - r.DEM.A[ncid]) / (cw * ddist[k]); s > bestslope {
				bestslope, best = s, k
			}
		}
		if best < 0 {
			r.Dir[cid] = Sink
			nsink++
		} else {
			r.Dir[cid] = Direction(best)
			r.Ds[cid] = gd.CellID(row+drow[best], col+dcol[best])
		}
	}

	r.buildUpslopes()
	r.Stage = DirectionsComputed
	slog.Info("d8route: directions computed", "valid", r.Nvalid, "sinks", nsink, "dur", time.Since(tt))
	return nil
}

func (r *Router) buildUpslopes() {
	r.Us = make([][]int, len(r.Ds))
	for cid, ds := range r.Ds {
		if ds >= 0 {
			r.Us[ds] = append(r.Us[ds], cid)
		}
	}
}

// FindSinks collects the IDs of all sink cells.
func (r *Router) FindSinks() []int {
	var sinks []int
	for cid, d := range r.Dir {
		if d == Sink {
			sinks = append(sinks, cid)
		}
	}
	return sinks
}
