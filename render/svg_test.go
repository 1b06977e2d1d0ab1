package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/cutcell/levelset"
	"github.com/notargets/cutcell/mesh"
	"github.com/notargets/cutcell/tags"
	"github.com/notargets/cutcell/utils"
)

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

func TestRenderTags(t *testing.T) {
	m := buildTwoTriangleMesh(t)
	ls := levelset.NewLevelset(func(x, y, z []float64) []float64 {
		return make([]float64, len(x))
	})
	cellTags, err := tags.NewEntityTags(2, [][]int32{{0}, {1}}, []int32{tags.Interior, tags.Exterior})
	require.NoError(t, err)

	var buf bytes.Buffer
	sink := &SVG{W: &buf}
	require.NoError(t, sink.RenderTags(m, cellTags, ls))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Equal(t, 2, strings.Count(out, "<polygon"))
	assert.Contains(t, out, "</svg>")
}

func TestRenderRejectsFacetTags(t *testing.T) {
	m := buildTwoTriangleMesh(t)
	ls := levelset.NewLevelset(func(x, y, z []float64) []float64 {
		return make([]float64, len(x))
	})
	facetTags, err := tags.NewEntityTags(1, [][]int32{{0}}, []int32{tags.Boundary})
	require.NoError(t, err)

	var buf bytes.Buffer
	sink := &SVG{W: &buf}
	require.Error(t, sink.RenderTags(m, facetTags, ls))
}

func TestRenderRejectsTetMesh(t *testing.T) {
	m, err := mesh.NewMesh(utils.Tet,
		[]float64{0, 1, 0, 0},
		[]float64{0, 0, 1, 0},
		[]float64{0, 0, 0, 1},
		[][]int{{0, 1, 2, 3}})
	require.NoError(t, err)

	ls := levelset.NewLevelset(func(x, y, z []float64) []float64 {
		return make([]float64, len(x))
	})
	cellTags, err := tags.NewEntityTags(3, [][]int32{{0}}, []int32{tags.Cut})
	require.NoError(t, err)

	var buf bytes.Buffer
	sink := &SVG{W: &buf}
	require.Error(t, sink.RenderTags(m, cellTags, ls))
}
