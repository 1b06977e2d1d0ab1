package mesh

import (
	"fmt"
	"math"

	"github.com/notargets/cutcell/utils"
)

// PointPredicate evaluates a boolean per point over batched coordinates.
// The z slice is nil for 2D meshes.
type PointPredicate func(x, y, z []float64) []bool

// Mesh is a simplex background mesh over a bounding box. Geometry and
// topology are immutable after construction; BuildConnectivity adds the
// derived facet tables. Entity indices are local to a single logical
// partition, [0, N) per dimension; distributed index translation is the
// caller's concern.
type Mesh struct {
	Geometry utils.GeometryType

	// Vertex coordinates, one slice per axis. VZ is nil for 2D meshes.
	VX, VY, VZ []float64

	// Cell to vertex connectivity, width 3 (Tri) or 4 (Tet)
	EToV [][]int

	NumCells    int
	NumVertices int

	// Facet tables, built by BuildConnectivity
	FToV      [][]int // facet -> defining vertices, sorted ascending
	CToF      [][]int // cell -> facets, fixed width Geometry.NumFacets()
	FToC      [][]int // facet -> adjacent cells, length 1 or 2
	NumFacets int
}

// Local facet layouts on the reference simplex vertex numbering
var triFacetVertices = [][]int{{0, 1}, {1, 2}, {0, 2}}

var tetFacetVertices = [][]int{{0, 1, 2}, {0, 1, 3}, {1, 2, 3}, {0, 2, 3}}

// NewMesh creates a background mesh from vertex coordinates and a cell
// table. VZ must be nil for triangle meshes and non-nil for tetrahedra.
func NewMesh(geom utils.GeometryType, VX, VY, VZ []float64, EToV [][]int) (*Mesh, error) {
	nvp := geom.NumVertices()
	if nvp == 0 {
		return nil, fmt.Errorf("geometry %v has no simplex vertex layout", geom)
	}
	nv := len(VX)
	if len(VY) != nv {
		return nil, fmt.Errorf("coordinate length mismatch: VX=%d, VY=%d", nv, len(VY))
	}
	switch geom {
	case utils.Tri:
		if VZ != nil {
			return nil, fmt.Errorf("triangle mesh must not carry VZ coordinates")
		}
	case utils.Tet:
		if len(VZ) != nv {
			return nil, fmt.Errorf("coordinate length mismatch: VX=%d, VZ=%d", nv, len(VZ))
		}
	}
	for k, cell := range EToV {
		if len(cell) != nvp {
			return nil, fmt.Errorf("cell %d has %d vertices, want %d", k, len(cell), nvp)
		}
		for _, v := range cell {
			if v < 0 || v >= nv {
				return nil, fmt.Errorf("cell %d references vertex %d out of range [0,%d)", k, v, nv)
			}
		}
	}
	return &Mesh{
		Geometry:    geom,
		VX:          VX,
		VY:          VY,
		VZ:          VZ,
		EToV:        EToV,
		NumCells:    len(EToV),
		NumVertices: nv,
	}, nil
}

// TopologyDim returns the topological dimension of the mesh cells
func (m *Mesh) TopologyDim() int {
	return m.Geometry.Dim()
}

// facetVertexLayout returns the local facet layout for the cell geometry
func (m *Mesh) facetVertexLayout() [][]int {
	if m.Geometry == utils.Tet {
		return tetFacetVertices
	}
	return triFacetVertices
}

// BuildConnectivity constructs the facet tables (FToV, CToF, FToC) via
// canonical sorted-vertex facet signatures. Facets are numbered in order
// of first appearance walking cells then local facets, which makes the
// numbering deterministic. Idempotent.
func (m *Mesh) BuildConnectivity() {
	if m.CToF != nil {
		return
	}
	layout := m.facetVertexLayout()
	nfp := len(layout)

	m.CToF = make([][]int, m.NumCells)
	m.FToV = make([][]int, 0, m.NumCells*nfp/2)
	m.FToC = make([][]int, 0, m.NumCells*nfp/2)

	facetIDs := make(map[string]int)
	for k := 0; k < m.NumCells; k++ {
		m.CToF[k] = make([]int, nfp)
		for f := 0; f < nfp; f++ {
			// Canonical signature: sorted global vertex ids of the facet
			verts := make([]int, len(layout[f]))
			for i, lv := range layout[f] {
				verts[i] = m.EToV[k][lv]
			}
			sortInts(verts)
			key := facetKey(verts)

			id, seen := facetIDs[key]
			if !seen {
				id = len(m.FToV)
				facetIDs[key] = id
				m.FToV = append(m.FToV, verts)
				m.FToC = append(m.FToC, []int{k})
			} else {
				m.FToC[id] = append(m.FToC[id], k)
			}
			m.CToF[k][f] = id
		}
	}
	m.NumFacets = len(m.FToV)
}

// NumEntities returns the entity count at the given topological dimension
func (m *Mesh) NumEntities(dim int) (int, error) {
	cdim := m.TopologyDim()
	switch dim {
	case cdim:
		return m.NumCells, nil
	case cdim - 1:
		if m.CToF == nil {
			return 0, fmt.Errorf("facet count requires BuildConnectivity")
		}
		return m.NumFacets, nil
	}
	return 0, fmt.Errorf("no entities at dimension %d for %v mesh", dim, m.Geometry)
}

// EntityVertices returns the defining vertex ids of one entity
func (m *Mesh) EntityVertices(dim int, index int32) ([]int, error) {
	cdim := m.TopologyDim()
	switch dim {
	case cdim:
		if index < 0 || int(index) >= m.NumCells {
			return nil, fmt.Errorf("cell index %d out of range [0,%d)", index, m.NumCells)
		}
		return m.EToV[index], nil
	case cdim - 1:
		if m.CToF == nil {
			return nil, fmt.Errorf("facet query requires BuildConnectivity")
		}
		if index < 0 || int(index) >= m.NumFacets {
			return nil, fmt.Errorf("facet index %d out of range [0,%d)", index, m.NumFacets)
		}
		return m.FToV[index], nil
	}
	return nil, fmt.Errorf("no entities at dimension %d for %v mesh", dim, m.Geometry)
}

// LocateEntities returns the entities at dimension dim ALL of whose
// vertices satisfy the predicate. The predicate is evaluated once over
// the full vertex batch; mixed-sign entities are located by neither an
// interior nor an exterior predicate, which is what produces the cut
// classification by exclusion.
func (m *Mesh) LocateEntities(dim int, pred PointPredicate) ([]int32, error) {
	n, err := m.NumEntities(dim)
	if err != nil {
		return nil, err
	}
	ok := pred(m.VX, m.VY, m.VZ)
	if len(ok) != m.NumVertices {
		return nil, fmt.Errorf("predicate returned %d values for %d vertices", len(ok), m.NumVertices)
	}
	located := make([]int32, 0)
	for e := 0; e < n; e++ {
		verts, err := m.EntityVertices(dim, int32(e))
		if err != nil {
			return nil, err
		}
		all := true
		for _, v := range verts {
			if !ok[v] {
				all = false
				break
			}
		}
		if all {
			located = append(located, int32(e))
		}
	}
	return located, nil
}

// BoundaryFacets returns the facets on the outer hull of the mesh (exactly
// one adjacent cell) whose vertices all satisfy the predicate. Pass
// EverywhereTrue to select the whole outer boundary.
func (m *Mesh) BoundaryFacets(pred PointPredicate) ([]int32, error) {
	if m.CToF == nil {
		return nil, fmt.Errorf("boundary facet query requires BuildConnectivity")
	}
	ok := pred(m.VX, m.VY, m.VZ)
	if len(ok) != m.NumVertices {
		return nil, fmt.Errorf("predicate returned %d values for %d vertices", len(ok), m.NumVertices)
	}
	located := make([]int32, 0)
	for f := 0; f < m.NumFacets; f++ {
		if len(m.FToC[f]) != 1 {
			continue
		}
		all := true
		for _, v := range m.FToV[f] {
			if !ok[v] {
				all = false
				break
			}
		}
		if all {
			located = append(located, int32(f))
		}
	}
	return located, nil
}

// EverywhereTrue is the always-true boundary locator predicate
func EverywhereTrue(x, y, z []float64) []bool {
	ok := make([]bool, len(x))
	for i := range ok {
		ok[i] = true
	}
	return ok
}

// EntitySizes returns the characteristic size (maximum vertex pair
// distance) of each listed entity
func (m *Mesh) EntitySizes(dim int, indices []int32) ([]float64, error) {
	sizes := make([]float64, len(indices))
	for i, e := range indices {
		verts, err := m.EntityVertices(dim, e)
		if err != nil {
			return nil, err
		}
		var h float64
		for a := 0; a < len(verts); a++ {
			for b := a + 1; b < len(verts); b++ {
				d := m.vertexDistance(verts[a], verts[b])
				if d > h {
					h = d
				}
			}
		}
		sizes[i] = h
	}
	return sizes, nil
}

// CellVertexCoords returns the vertex coordinates of one cell as per-axis
// slices. The z slice is nil for 2D meshes.
func (m *Mesh) CellVertexCoords(cell int32) (x, y, z []float64) {
	verts := m.EToV[cell]
	x = make([]float64, len(verts))
	y = make([]float64, len(verts))
	if m.VZ != nil {
		z = make([]float64, len(verts))
	}
	for i, v := range verts {
		x[i] = m.VX[v]
		y[i] = m.VY[v]
		if z != nil {
			z[i] = m.VZ[v]
		}
	}
	return x, y, z
}

func (m *Mesh) vertexDistance(a, b int) float64 {
	dx := m.VX[a] - m.VX[b]
	dy := m.VY[a] - m.VY[b]
	sum := dx*dx + dy*dy
	if m.VZ != nil {
		dz := m.VZ[a] - m.VZ[b]
		sum += dz * dz
	}
	return math.Sqrt(sum)
}

func sortInts(s []int) {
	// Facets have at most 3 vertices, insertion sort is enough
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

func facetKey(verts []int) string {
	if len(verts) == 2 {
		return fmt.Sprintf("%d-%d", verts[0], verts[1])
	}
	return fmt.Sprintf("%d-%d-%d", verts[0], verts[1], verts[2])
}
