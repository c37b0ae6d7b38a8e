package d8route

import (
	"fmt"

	"github.com/hydromod/d8route/grid"
	"github.com/maseology/mmaths"
)

// StreamThreshold classifies cells as stream (1) where accumulated flow
// meets the threshold, 0 elsewhere and nodata outside the valid domain.
func (r *Router) StreamThreshold(acc *grid.Real, threshold float64) (*grid.Indx, error) {
	if !r.DEM.GD.Compatible(acc.GD) {
		return nil, grid.Mismatch("d8route.StreamThreshold", r.DEM.GD, acc.GD)
	}
	strm := grid.NewIndx(r.DEM.GD, -9999)
	for _, cid := range r.Ord {
		if v := acc.A[cid]; v != acc.Nodata && v >= threshold {
			strm.A[cid] = 1
		} else {
			strm.A[cid] = 0
		}
	}
	return strm, nil
}

// FlowLength returns the downslope travel length leaving each cell: the cell
// width on cardinal directions, width*sqrt(2) on diagonals, 0 at sinks.
func (r *Router) FlowLength() (*grid.Real, error) {
	if r.Stage < DirectionsComputed {
		return nil, fmt.Errorf("d8route.FlowLength: called in state %s, need %s", r.Stage, DirectionsComputed)
	}
	cw := r.DEM.GD.Cwidth
	out := grid.NewReal(r.DEM.GD, r.OutNodata)
	for cid, d := range r.Dir {
		switch d {
		case NoData:
		case Sink:
			out.A[cid] = 0.
		default:
			out.A[cid] = cw * ddist[d]
		}
	}
	return out, nil
}

// DistanceToStream returns the along-flowpath distance from each cell to the
// first stream cell it drains through. Cells whose flowpath terminates at a
// sink without touching a stream carry nodata.
func (r *Router) DistanceToStream(streams *grid.Indx) (*grid.Real, error) {
	if r.Stage != Ordered && r.Stage != Accumulated {
		return nil, fmt.Errorf("d8route.DistanceToStream: called in state %s, need %s", r.Stage, Ordered)
	}
	if streams == nil {
		return nil, &grid.InvalidGridError{Op: "d8route.DistanceToStream", Msg: "nil stream grid"}
	}
	if !r.DEM.GD.Compatible(streams.GD) {
		return nil, grid.Mismatch("d8route.DistanceToStream", r.DEM.GD, streams.GD)
	}

	cw := r.DEM.GD.Cwidth
	out := grid.NewReal(r.DEM.GD, r.OutNodata)
	reached := make([]bool, r.DEM.GD.Ncells())
	for i := len(r.Ord) - 1; i >= 0; i-- { // downslope cells first
		cid := r.Ord[i]
		if streams.A[cid] == 1 {
			out.A[cid] = 0.
			reached[cid] = true
			continue
		}
		ds := r.Ds[cid]
		if ds < 0 || !reached[ds] {
			continue
		}
		out.A[cid] = cw*ddist[r.Dir[cid]] + out.A[ds]
		reached[cid] = true
	}
	return out, nil
}

// UpslopeCount returns the size of the upstream subtree draining through cid,
// the cell itself included.
func (r *Router) UpslopeCount(cid int) int {
	if r.Stage < DirectionsComputed || r.Dir[cid] == NoData {
		return 0
	}
	c := 0
	var climb func(int)
	climb = func(cid int) {
		c++
		for _, u := range r.Us[cid] {
			climb(u)
		}
	}
	climb(cid)
	return c
}

// ContributingArea returns the per-cell unit contributing area, i.e. the
// upslope count of every cell in one pass over the sink-rooted drainage
// forest.
func (r *Router) ContributingArea() (*grid.Real, error) {
	if r.Stage < DirectionsComputed {
		return nil, fmt.Errorf("d8route.ContributingArea: called in state %s, need %s", r.Stage, DirectionsComputed)
	}

	dsm := make(map[int]int, r.Nvalid)
	for cid, d := range r.Dir {
		if d == NoData {
			continue
		}
		dsm[cid] = r.Ds[cid]
	}

	out := grid.NewReal(r.DEM.GD, r.OutNodata)
	for cid := range dsm {
		out.A[cid] = 1.
	}
	for _, cid := range mmaths.OrderFromToTree(dsm, -1) {
		if ds := dsm[cid]; ds >= 0 {
			out.A[ds] += out.A[cid]
		}
	}
	return out, nil
}
