package d8route

import (
	"testing"

	"github.com/hydromod/d8route/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// a 1x4 strip draining east: 4 -> 3 -> 2 -> 1(sink)
func stripRouter(t *testing.T) *Router {
	return buildRouter(t, mkdem(t, 1, 4, []float64{4., 3., 2., 1.}), nil)
}

func constReal(t *testing.T, gd *grid.Definition, v float64) *grid.Real {
	t.Helper()
	a := make([]float64, gd.Ncells())
	for i := range a {
		a[i] = v
	}
	r, err := grid.LoadReal(gd, a, -9999.)
	require.NoError(t, err)
	return r
}

func TestRouteFluxFluxOnly(t *testing.T) {
	r := stripRouter(t)
	src := constReal(t, r.DEM.GD, 1.)
	ab := constReal(t, r.DEM.GD, .5)

	flux, loss, err := r.RouteFlux(src, ab, nil, FluxOnly)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1., 1.5, 1.75, 1.875}, flux.A, 1e-12)
	assert.InDeltaSlice(t, []float64{0., .5, .75, .875}, loss.A, 1e-12)
}

func TestRouteFluxSourceAndFlux(t *testing.T) {
	r := stripRouter(t)
	src := constReal(t, r.DEM.GD, 1.)
	ab := constReal(t, r.DEM.GD, .5)

	flux, loss, err := r.RouteFlux(src, ab, nil, SourceAndFlux)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{.5, .75, .875, .9375}, flux.A, 1e-12)

	// absorbed plus delivered-at-outlet accounts for the whole source
	assert.InDelta(t, 4., floats.Sum(loss.A)+flux.A[3], 1e-12)
}

func TestRouteFluxStreamShortCircuit(t *testing.T) {
	r := stripRouter(t)
	src := constReal(t, r.DEM.GD, 1.)
	ab := constReal(t, r.DEM.GD, .5)

	strm := grid.NewIndx(r.DEM.GD, -9999)
	strm.A[0], strm.A[1], strm.A[2], strm.A[3] = 0, 0, 1, 0

	flux, loss, err := r.RouteFlux(src, ab, strm, FluxOnly)
	require.NoError(t, err)
	// the stream cell retains nothing and passes everything through
	assert.InDeltaSlice(t, []float64{1., 1.5, 2.5, 2.25}, flux.A, 1e-12)
	assert.InDeltaSlice(t, []float64{0., .5, 0., 1.25}, loss.A, 1e-12)
}

func TestRouteFluxValidation(t *testing.T) {
	r := stripRouter(t)
	src := constReal(t, r.DEM.GD, 1.)

	var ige *grid.InvalidGridError
	_, _, err := r.RouteFlux(src, nil, nil, FluxOnly)
	require.ErrorAs(t, err, &ige)

	gd2, _ := grid.NewDefinition(0., 10., 10., 1, 3)
	_, _, err = r.RouteFlux(src, constReal(t, gd2, .5), nil, FluxOnly)
	require.ErrorAs(t, err, &ige)
}

func TestRouteFluxNodataOutsideDomain(t *testing.T) {
	dem := mkdem(t, 1, 4, []float64{4., nd, 2., 1.})
	r, err := NewRouter(dem, nil)
	require.NoError(t, err)
	require.NoError(t, r.BuildDirections())
	require.NoError(t, r.BuildOrder())

	src := constReal(t, dem.GD, 1.)
	ab := constReal(t, dem.GD, 0.)
	flux, loss, err := r.RouteFlux(src, ab, nil, FluxOnly)
	require.NoError(t, err)
	assert.Equal(t, r.OutNodata, flux.A[1])
	assert.Equal(t, r.OutNodata, loss.A[1])
}
