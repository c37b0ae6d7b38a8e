package d8route

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/hydromod/d8route/grid"
)

// WeightFunc maps a cell's raw value to the quantity routed downslope. It
// must be stateless; it is applied exactly once per valid cell.
type WeightFunc func(float64) float64

// UnitWeight routes a count of drained cells.
func UnitWeight(float64) float64 { return 1. }

// IdentityWeight routes the raw value unchanged.
func IdentityWeight(v float64) float64 { return v }

// Accumulate runs the single forward sweep over the processing order with a
// raw cell value of 1, i.e. wf(1) per cell:
//
//	acc[c] = wf(1) + sum acc[upslope contributors of c]
//
// Sinks are included in the output; nodata and out-of-AOI cells carry
// OutNodata and contribute nothing.
func (r *Router) Accumulate(wf WeightFunc) (*grid.Real, error) {
	return r.AccumulateSource(nil, wf)
}

// AccumulateSource is Accumulate with a per-cell raw-value raster; nodata
// source cells contribute a raw value of 0. A nil source means constant 1.
func (r *Router) AccumulateSource(src *grid.Real, wf WeightFunc) (*grid.Real, error) {
	if r.Stage != Ordered && r.Stage != Accumulated {
		return nil, fmt.Errorf("d8route.Accumulate: called in state %s, need %s", r.Stage, Ordered)
	}
	if src != nil && !r.DEM.GD.Compatible(src.GD) {
		return nil, grid.Mismatch("d8route.Accumulate", r.DEM.GD, src.GD)
	}
	if wf == nil {
		wf = UnitWeight
	}
	tt := time.Now()

	var bar *uiprogress.Bar
	if r.Progress {
		uiprogress.Start()
		bar = uiprogress.AddBar(len(r.Ord)).AppendCompleted().PrependElapsed()
	}

	out := grid.NewReal(r.DEM.GD, r.OutNodata)
	for _, cid := range r.Ord {
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
		if bar != nil {
			bar.Incr()
		}
	}

	if r.Progress {
		uiprogress.Stop()
	}
	r.Stage = Accumulated
	slog.Info("d8route: accumulation complete", "cells", len(r.Ord), "dur", time.Since(tt))
	return out, nil
}
