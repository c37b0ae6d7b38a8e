package d8route

import (
	"fmt"
	"sync"

	"github.com/hydromod/d8route/grid"
)

// AccumulateConcurrent is the wavefront form of Accumulate: levels run in
// sequence, cells within a level in parallel. Each cell is written by its own
// task only and reads only prior-level cells, so results are identical to the
// serial sweep.
func (r *Router) AccumulateConcurrent(src *grid.Real, wf WeightFunc) (*grid.Real, error) {
	if r.Stage != Ordered && r.Stage != Accumulated {
		return nil, fmt.Errorf("d8route.AccumulateConcurrent: called in state %s, need %s", r.Stage, Ordered)
	}
	if src != nil && !r.DEM.GD.Compatible(src.GD) {
		return nil, grid.Mismatch("d8route.AccumulateConcurrent", r.DEM.GD, src.GD)
	}
	if wf == nil {
		wf = UnitWeight
	}

	out := grid.NewReal(r.DEM.GD, r.OutNodata)
	var wg sync.WaitGroup
	for _, inner := range r.Lvl {
		wg.Add(len(inner))
		for _, cid := range inner {
			go func(cid int) {
				defer wg.Done()
				raw := 1.
				if src != nil {
					if v := src.A[cid]; v != src.Nodata {
						raw = v
					} else {
						raw = 0.
					}
				}
				a := wf(raw)
				for _, u := range r.Us[cid] {
					a += out.A[u]
				}
				out.A[cid] = a
			}(cid)
		}
		wg.Wait()
	}

	r.Stage = Accumulated
	return out, nil
}
