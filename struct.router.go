package d8route

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/hydromod/d8route/grid"
)

// State tracks the staged, all-or-nothing build of a Router. A failed stage
// leaves the Router unusable for the remainder of the run.
type State int

const (
	Loaded State = iota
	DirectionsComputed
	Ordered
	Accumulated
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "LOADED"
	case DirectionsComputed:
		return "DIRECTIONS_COMPUTED"
	case Ordered:
		return "ORDERED"
	case Accumulated:
		return "ACCUMULATED"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Router holds the drainage structure of one elevation raster, built in
// stages: LOADED -> DIRECTIONS_COMPUTED -> ORDERED -> ACCUMULATED.
type Router struct {
	DEM  *grid.Real
	Mask *grid.Mask // nil: no AOI restriction

	Dir []Direction // per cell
	Ds  []int       // downslope cell ID; -1 at sinks and invalid cells
	Us  [][]int     // upslope contributors per cell (inverse adjacency)
	Ord []int       // valid cells, every cell before its downslope target
	Lvl [][]int     // Ord regrouped into dependency-free wavefront levels

	Nvalid    int
	OutNodata float64 // nodata written to output rasters
	Progress  bool    // show a progress bar on serial sweeps

	Stage State
}

// NewRouter validates the domain and returns a Router in state LOADED.
// Elevations equal to the DEM nodata sentinel and cells outside the mask are
// excluded; any remaining non-finite elevation is rejected.
func NewRouter(dem *grid.Real, mask *grid.Mask) (*Router, error) {
	if dem == nil {
		return nil, &grid.InvalidGridError{Op: "d8route.NewRouter", Msg: "nil elevation grid"}
	}
	if mask != nil && !dem.GD.Compatible(mask.GD) {
		return nil, grid.Mismatch("d8route.NewRouter", dem.GD, mask.GD)
	}

	r := &Router{DEM: dem, Mask: mask, OutNodata: -9999., Stage: Loaded}
	for cid, z := range dem.A {
		if !r.valid(cid) {
			continue
		}
		if math.IsNaN(z) || math.IsInf(z, 0) {
			return nil, &grid.InvalidGridError{Op: "d8route.NewRouter", Msg: fmt.Sprintf("non-finite elevation %v at cell %d", z, cid)}
		}
		r.Nvalid++
	}
	if r.Nvalid == 0 {
		return nil, &EmptyDomainError{}
	}
	slog.Debug("d8route: domain loaded", "cells", dem.GD.Ncells(), "valid", r.Nvalid)
	return r, nil
}

// valid is the predicate every downstream stage shares: in-bounds (implied by
// cell ID), not nodata, and inside the AOI when one is given.
func (r *Router) valid(cid int) bool {
	if r.DEM.IsNodata(cid) {
		return false
	}
	if r.Mask != nil && !r.Mask.Contains(cid) {
		return false
	}
	return true
}

// SaveGob snapshots the built drainage structure.
func (r *Router) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" Router.SaveGob %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(r); err != nil {
		return fmt.Errorf(" Router.SaveGob %v", err)
	}
	return nil
}

// LoadGobRouter restores a snapshot written by SaveGob.
func LoadGobRouter(fp string) (*Router, error) {
	var r Router
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}
