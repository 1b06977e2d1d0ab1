package tags

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/cutcell/levelset"
	"github.com/notargets/cutcell/mesh"
	"github.com/notargets/cutcell/utils"
)

// buildUnitSquareMesh builds a structured triangle mesh over [0,1]^2 with
// n subdivisions per side, two triangles per quad
func buildUnitSquareMesh(t *testing.T, n int) *mesh.Mesh {
	t.Helper()
	nv := (n + 1) * (n + 1)
	VX := make([]float64, nv)
	VY := make([]float64, nv)
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			VX[j*(n+1)+i] = float64(i) / float64(n)
			VY[j*(n+1)+i] = float64(j) / float64(n)
		}
	}
	EToV := make([][]int, 0, 2*n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			v00 := j*(n+1) + i
			v10 := v00 + 1
			v01 := v00 + n + 1
			v11 := v01 + 1
			EToV = append(EToV, []int{v00, v10, v11})
			EToV = append(EToV, []int{v00, v11, v01})
		}
	}
	m, err := mesh.NewMesh(utils.Tri, VX, VY, nil, EToV)
	require.NoError(t, err)
	return m
}

// buildTwoTriangleMesh builds the unit square split along its diagonal
// into cells 0 = {(0,0),(1,0),(1,1)} and 1 = {(0,0),(1,1),(0,1)}
func buildTwoTriangleMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	m, err := mesh.NewMesh(utils.Tri,
		[]float64{0, 1, 1, 0},
		[]float64{0, 0, 1, 1},
		nil,
		[][]int{{0, 1, 2}, {0, 2, 3}})
	require.NoError(t, err)
	return m
}

// circleLevelset is f = (x-cx)^2 + (y-cy)^2 - r^2, negative inside the
// circle
func circleLevelset(cx, cy, r float64) *levelset.Levelset {
	return levelset.NewLevelset(func(x, y, z []float64) []float64 {
		vals := make([]float64, len(x))
		for i := range x {
			dx := x[i] - cx
			dy := y[i] - cy
			vals[i] = dx*dx + dy*dy - r*r
		}
		return vals
	})
}

// assertPartition checks that the tag collection covers [0, n) with no
// duplicates
func assertPartition(t *testing.T, et *EntityTags, n int) {
	t.Helper()
	require.Equal(t, n, et.Len(), "tagged entity count")
	for i, idx := range et.Indices {
		assert.Equal(t, int32(i), idx, "index %d", i)
	}
}

func TestSelectEntitiesCells(t *testing.T) {
	m := buildUnitSquareMesh(t, 8)
	ls := circleLevelset(0.5, 0.5, 0.3)

	interior, cut, exterior, pad, err := SelectEntities(m, ls, 2, false)
	require.NoError(t, err)

	assert.NotEmpty(t, interior)
	assert.NotEmpty(t, cut)
	assert.NotEmpty(t, exterior)
	assert.Empty(t, pad)

	// Disjoint and covering
	assert.Empty(t, utils.Intersect1D(interior, cut))
	assert.Empty(t, utils.Intersect1D(interior, exterior))
	assert.Empty(t, utils.Intersect1D(cut, exterior))
	all := utils.Union1D(utils.Union1D(interior, cut), exterior)
	assert.Equal(t, utils.ARange(m.NumCells), all)
}

func TestTagCellsPointLocation(t *testing.T) {
	m := buildUnitSquareMesh(t, 8)
	ls := circleLevelset(0.5, 0.5, 0.3)

	cellTags, err := TagEntities(m, ls, 2, nil, false, nil)
	require.NoError(t, err)
	assertPartition(t, cellTags, m.NumCells)

	assert.NotEmpty(t, cellTags.Find(Interior))
	assert.NotEmpty(t, cellTags.Find(Cut))
	assert.NotEmpty(t, cellTags.Find(Exterior))
	assert.Empty(t, cellTags.Find(Boundary))
}

func TestTagCellsPadding(t *testing.T) {
	m := buildUnitSquareMesh(t, 8)
	ls := circleLevelset(0.5, 0.5, 0.3)

	plain, err := TagEntities(m, ls, 2, nil, false, nil)
	require.NoError(t, err)
	padded, err := TagEntities(m, ls, 2, nil, true, nil)
	require.NoError(t, err)
	assertPartition(t, padded, m.NumCells)

	pad := padded.Find(Boundary)
	require.NotEmpty(t, pad)

	// The padding band is carved out of the strict exterior: padded
	// exterior plus band reassembles the unpadded exterior, and the
	// interior and cut sets are untouched
	assert.Equal(t, plain.Find(Exterior),
		utils.Union1D(padded.Find(Exterior), pad))
	assert.Equal(t, plain.Find(Interior), padded.Find(Interior))
	assert.Equal(t, plain.Find(Cut), padded.Find(Cut))
}

func TestTagFacetsPointLocation(t *testing.T) {
	m := buildUnitSquareMesh(t, 8)
	ls := circleLevelset(0.5, 0.5, 0.3)
	m.BuildConnectivity()

	cellTags, err := TagEntities(m, ls, 2, nil, false, nil)
	require.NoError(t, err)
	facetTags, err := TagEntities(m, ls, 1, cellTags, false, nil)
	require.NoError(t, err)
	assertPartition(t, facetTags, m.NumFacets)

	assert.NotEmpty(t, facetTags.Find(Interior))
	assert.NotEmpty(t, facetTags.Find(Cut))
	assert.NotEmpty(t, facetTags.Find(Boundary))
}

func TestTagFacetsWithoutCellTags(t *testing.T) {
	m := buildUnitSquareMesh(t, 8)
	ls := circleLevelset(0.5, 0.5, 0.3)
	m.BuildConnectivity()

	// Facet tagging goes through cell selection internally when no cell
	// tags are supplied; both routes agree
	direct, err := TagEntities(m, ls, 1, nil, false, nil)
	require.NoError(t, err)

	cellTags, err := TagEntities(m, ls, 2, nil, false, nil)
	require.NoError(t, err)
	viaCells, err := TagEntities(m, ls, 1, cellTags, false, nil)
	require.NoError(t, err)

	assert.Equal(t, viaCells.Indices, direct.Indices)
	assert.Equal(t, viaCells.Markers, direct.Markers)
}

func TestTagEntitiesNoCut(t *testing.T) {
	m := buildUnitSquareMesh(t, 4)
	// Levelset strictly negative everywhere: nothing is cut
	ls := levelset.NewLevelset(func(x, y, z []float64) []float64 {
		vals := make([]float64, len(x))
		for i := range vals {
			vals[i] = -1
		}
		return vals
	})
	_, err := TagEntities(m, ls, 2, nil, false, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyPartition))
}

func TestTagEntitiesBadDimension(t *testing.T) {
	m := buildUnitSquareMesh(t, 2)
	ls := circleLevelset(0.5, 0.5, 0.3)
	_, err := TagEntities(m, ls, 0, nil, false, nil)
	require.Error(t, err)
}

// recordingSink counts render calls
type recordingSink struct {
	calls int
	dim   int
}

func (r *recordingSink) RenderTags(msh *mesh.Mesh, et *EntityTags, ls *levelset.Levelset) error {
	r.calls++
	r.dim = et.Dim
	return nil
}

func TestTagEntitiesRenderSink(t *testing.T) {
	m := buildUnitSquareMesh(t, 8)
	ls := circleLevelset(0.5, 0.5, 0.3)

	sink := &recordingSink{}
	_, err := TagEntities(m, ls, 2, nil, false, sink)
	require.NoError(t, err)
	assert.Equal(t, 1, sink.calls)
	assert.Equal(t, 2, sink.dim)
}
