package mesh

import (
	"fmt"

	gcmesh "github.com/notargets/gocfd/DG3D/mesh"
	"github.com/notargets/gocfd/DG3D/mesh/readers"

	"github.com/notargets/cutcell/utils"
)

// ReadBackgroundMesh reads a tetrahedral mesh file through the gocfd
// readers and recases it into a background Mesh.
func ReadBackgroundMesh(meshfile string) (*Mesh, error) {
	msh, err := readers.ReadMeshFile(meshfile)
	if err != nil {
		return nil, fmt.Errorf("failed to read mesh file %s: %v", meshfile, err)
	}
	return FromGocfd(msh)
}

// FromGocfd recases a gocfd 3D mesh into a background Mesh. Only pure
// tetrahedral meshes are supported.
func FromGocfd(m *gcmesh.Mesh) (*Mesh, error) {
	if m.NumElements == 0 {
		return nil, fmt.Errorf("gocfd mesh has no elements")
	}
	for k, cell := range m.EtoV {
		if len(cell) != 4 {
			return nil, fmt.Errorf("element %d has %d vertices, only tetrahedra are supported", k, len(cell))
		}
	}

	// Recase verts into separate X, Y, Z
	VX := make([]float64, len(m.Vertices))
	VY := make([]float64, len(m.Vertices))
	VZ := make([]float64, len(m.Vertices))
	for i, v := range m.Vertices {
		VX[i] = v[0]
		VY[i] = v[1]
		VZ[i] = v[2]
	}
	return NewMesh(utils.Tet, VX, VY, VZ, m.EtoV)
}
