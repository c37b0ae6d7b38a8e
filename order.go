package d8route

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/maseology/mmaths/slice"
	"gonum.org/v1/gonum/floats"
)

// BuildOrder linearizes the drainage forest. Every flow edge strictly
// decreases elevation, so sorting the valid cells by descending elevation
// places each cell before its downslope target; the order is then verified
// defensively and regrouped into wavefront levels for concurrent sweeps.
func (r *Router) BuildOrder() error {
	if r.Stage != DirectionsComputed {
		return fmt.Errorf("d8route.BuildOrder: called in state %s, need %s", r.Stage, DirectionsComputed)
	}
	tt := time.Now()

	cids := make([]int, 0, r.Nvalid)
	zs := make([]float64, 0, r.Nvalid)
	for cid, d := range r.Dir {
		if d == NoData {
			continue
		}
		cids = append(cids, cid)
		zs = append(zs, r.DEM.A[cid])
	}

	inds := make([]int, len(zs))
	floats.Argsort(zs, inds) // ascending; walked back-to-front below

	n := r.DEM.GD.Ncells()
	pos := make([]int, n)
	for i := range pos {
		pos[i] = -1
	}
	r.Ord = make([]int, 0, len(cids))
	for i := len(inds) - 1; i >= 0; i-- {
		cid := cids[inds[i]]
		pos[cid] = len(r.Ord)
		r.Ord = append(r.Ord, cid)
	}

	// a cell sorted at or before its target means a non-descending edge
	// slipped through direction computation
	for _, cid := range r.Ord {
		if ds := r.Ds[cid]; ds >= 0 && pos[ds] <= pos[cid] {
			return &RoutingCycleError{Cid: cid}
		}
	}

	r.buildLevels()
	r.Stage = Ordered
	slog.Info("d8route: order built", "cells", len(r.Ord), "levels", len(r.Lvl), "dur", time.Since(tt))
	return nil
}

// buildLevels groups cells by graph depth: a cell's level is one more than
// the deepest of its upslope contributors, so every level depends only on
// earlier levels and may be processed concurrently within itself.
func (r *Router) buildLevels() {
	lvl := make(map[int]int, len(r.Ord))
	for _, cid := range r.Ord {
		l := 0
		for _, u := range r.Us[cid] {
			if lvl[u] >= l {
				l = lvl[u] + 1
			}
		}
		lvl[cid] = l
	}

	mord, lord := slice.InvertMap(lvl)
	r.Lvl = make([][]int, len(lord))
	for i, k := range lord {
		cpy := make([]int, len(mord[k]))
		copy(cpy, mord[k])
		r.Lvl[i] = cpy
	}
}
