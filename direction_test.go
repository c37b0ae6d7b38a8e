package d8route

import (
	"math/rand"
	"testing"

	"github.com/hydromod/d8route/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionsBowl(t *testing.T) {
	r := buildRouter(t, bowl3x3(t), nil)

	want := []Direction{
		SouthEast, South, SouthWest,
		East, Sink, West,
		NorthEast, North, NorthWest,
	}
	assert.Equal(t, want, r.Dir)

	ctr := r.DEM.GD.CellID(1, 1)
	for cid, d := range r.Dir {
		if d == Sink {
			assert.Equal(t, -1, r.Ds[cid])
		} else {
			assert.Equal(t, ctr, r.Ds[cid])
		}
	}
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 5, 6, 7, 8}, r.Us[ctr])
}

// a flat 2x2 plateau surrounded by lower terrain resolves by the fixed
// compass tie-break, never a cycle
func TestDirectionsFlatPlateau(t *testing.T) {
	dem := mkdem(t, 4, 4, []float64{
		1., 1., 1., 1.,
		1., 5., 5., 1.,
		1., 5., 5., 1.,
		1., 1., 1., 1.,
	})
	r, err := NewRouter(dem, nil)
	require.NoError(t, err)
	require.NoError(t, r.BuildDirections())
	require.NoError(t, r.BuildOrder())

	gd := dem.GD
	assert.Equal(t, North, r.Dir[gd.CellID(1, 1)]) // N ties W, N first
	assert.Equal(t, North, r.Dir[gd.CellID(1, 2)]) // N ties E, N first
	assert.Equal(t, South, r.Dir[gd.CellID(2, 1)]) // S ties W, S first
	assert.Equal(t, East, r.Dir[gd.CellID(2, 2)])  // E ties S, E first

	// the surrounding flat ring has no descent at all
	for _, cid := range []int{0, 1, 2, 3, 4, 7, 8, 11, 12, 13, 14, 15} {
		assert.Equal(t, Sink, r.Dir[cid], "cell %d", cid)
	}
}

func TestDirectionsNeverSelectInvalid(t *testing.T) {
	// the lowest neighbour is nodata; descent must go around it
	dem := mkdem(t, 2, 2, []float64{
		5., nd,
		4., 3.,
	})
	r, err := NewRouter(dem, nil)
	require.NoError(t, err)
	require.NoError(t, r.BuildDirections())

	gd := dem.GD
	assert.Equal(t, NoData, r.Dir[gd.CellID(0, 1)])
	assert.Equal(t, SouthEast, r.Dir[gd.CellID(0, 0)])
	assert.Equal(t, gd.CellID(1, 1), r.Ds[gd.CellID(0, 0)])

	// same terrain, but the low corner is masked out instead
	dem2 := mkdem(t, 2, 2, []float64{
		5., 2.,
		4., 3.,
	})
	mask, err := grid.MaskFromBools(dem2.GD, []bool{true, false, true, true})
	require.NoError(t, err)
	r2, err := NewRouter(dem2, mask)
	require.NoError(t, err)
	require.NoError(t, r2.BuildDirections())
	assert.Equal(t, NoData, r2.Dir[1])
	assert.Equal(t, SouthEast, r2.Dir[0]) // to (1,1), not the excluded (0,1)
}

func TestDirectionsMonotone(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	nrow, ncol := 20, 20
	z := make([]float64, nrow*ncol)
	for i, p := range rng.Perm(len(z)) {
		z[i] = float64(p) // all elevations distinct
	}
	r := buildRouter(t, mkdem(t, nrow, ncol, z), nil)

	for cid, ds := range r.Ds {
		if ds < 0 {
			continue
		}
		assert.Less(t, r.DEM.A[ds], r.DEM.A[cid], "cell %d -> %d", cid, ds)
	}
}

func TestFindSinks(t *testing.T) {
	r := buildRouter(t, bowl3x3(t), nil)
	assert.Equal(t, []int{r.DEM.GD.CellID(1, 1)}, r.FindSinks())
}
