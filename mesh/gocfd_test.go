package mesh

import (
	"testing"

	gcmesh "github.com/notargets/gocfd/DG3D/mesh"

	"github.com/notargets/cutcell/utils"
)

func TestFromGocfd(t *testing.T) {
	gm := &gcmesh.Mesh{
		NumElements: 2,
		Vertices:    [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1}},
		EtoV:        [][]int{{0, 1, 2, 3}, {1, 2, 3, 4}},
	}

	m, err := FromGocfd(gm)
	if err != nil {
		t.Fatalf("FromGocfd failed: %v", err)
	}
	if m.Geometry != utils.Tet {
		t.Errorf("geometry = %v, want Tet", m.Geometry)
	}
	if m.NumCells != 2 {
		t.Errorf("NumCells = %d, want 2", m.NumCells)
	}
	if m.NumVertices != 5 {
		t.Errorf("NumVertices = %d, want 5", m.NumVertices)
	}

	// Coordinates recase column-wise into VX, VY, VZ
	for i, v := range gm.Vertices {
		if m.VX[i] != v[0] || m.VY[i] != v[1] || m.VZ[i] != v[2] {
			t.Errorf("vertex %d = (%v,%v,%v), want (%v,%v,%v)",
				i, m.VX[i], m.VY[i], m.VZ[i], v[0], v[1], v[2])
		}
	}
	for k, cell := range gm.EtoV {
		for j, v := range cell {
			if m.EToV[k][j] != v {
				t.Errorf("EToV[%d][%d] = %d, want %d", k, j, m.EToV[k][j], v)
			}
		}
	}

	// The recased mesh is a working background mesh: two tets sharing one
	// facet have 7 facets
	m.BuildConnectivity()
	if m.NumFacets != 7 {
		t.Errorf("NumFacets = %d, want 7", m.NumFacets)
	}
}

func TestFromGocfdRejectsNonTet(t *testing.T) {
	gm := &gcmesh.Mesh{
		NumElements: 1,
		Vertices:    [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		EtoV:        [][]int{{0, 1, 2}},
	}
	if _, err := FromGocfd(gm); err == nil {
		t.Errorf("expected non-tetrahedral element error")
	}
}

func TestFromGocfdEmpty(t *testing.T) {
	if _, err := FromGocfd(&gcmesh.Mesh{}); err == nil {
		t.Errorf("expected empty mesh error")
	}
}
