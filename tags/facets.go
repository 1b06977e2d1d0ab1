package tags

import (
	"fmt"

	"github.com/notargets/cutcell/mesh"
	"github.com/notargets/cutcell/utils"
)

// TagFacets derives facet tags from already-computed cell tags purely
// through cell-facet adjacency:
//
//   - a facet shared by an interior cell and a cut cell stays in the cut
//     set (it lies inside the domain but borders the cut region)
//   - a facet shared by an exterior cell and a cut cell, or a facet of a
//     cut cell on the outer hull of the background mesh, is a boundary
//     facet (the discrete embedded boundary Gamma_h)
//   - a facet shared by an interior cell and an exterior cell, which only
//     occurs when no cell is cut between them, is also a boundary facet
//   - remaining facets of interior/cut/exterior cells keep their cell's
//     category
func TagFacets(msh *mesh.Mesh, cellsTags *EntityTags) (*EntityTags, error) {
	cdim := msh.TopologyDim()
	fdim := cdim - 1
	msh.BuildConnectivity()

	interiorCells := cellsTags.Find(Interior)
	cutCells := cellsTags.Find(Cut)
	exteriorCells := cellsTags.Find(Exterior)

	// Facets shared by an interior cell and a cut cell
	interiorBoundaryFacets := utils.Intersect1D(facetsOf(msh, interiorCells), facetsOf(msh, cutCells))
	// Facets shared by an exterior cell and a cut cell
	exteriorBoundaryFacets := utils.Intersect1D(facetsOf(msh, exteriorCells), facetsOf(msh, cutCells))
	// Facets of cut cells on the outer hull of the background mesh
	outerFacets, err := msh.BoundaryFacets(mesh.EverywhereTrue)
	if err != nil {
		return nil, err
	}
	realBoundaryFacets := utils.Intersect1D(facetsOf(msh, cutCells), outerFacets)
	boundaryFacets := utils.Union1D(exteriorBoundaryFacets, realBoundaryFacets)

	// Facets shared by an interior cell and an exterior cell directly.
	// Empty whenever a cut band separates the two regions; when the
	// levelset changes sign exactly on a facet, that facet is the whole
	// discrete boundary.
	interfaceFacets := utils.Intersect1D(facetsOf(msh, interiorCells), facetsOf(msh, exteriorCells))
	boundaryFacets = utils.Union1D(boundaryFacets, interfaceFacets)

	// Cut facets: facets of cut cells minus the boundary sets; the
	// interior-boundary facets remain here by construction
	cutFacets := utils.SetDiff1D(facetsOf(msh, cutCells),
		utils.Union1D(exteriorBoundaryFacets, boundaryFacets))

	interiorFacets := utils.SetDiff1D(facetsOf(msh, interiorCells),
		utils.Union1D(interiorBoundaryFacets, interfaceFacets))
	exteriorFacets := utils.SetDiff1D(facetsOf(msh, exteriorCells),
		utils.Union1D(exteriorBoundaryFacets, interfaceFacets))

	if len(interiorFacets) == 0 {
		return nil, fmt.Errorf("%w: no interior facets (1) tagged", ErrEmptyPartition)
	}
	if len(cutCells) > 0 && len(cutFacets) == 0 {
		return nil, fmt.Errorf("%w: no cut facets (2) tagged", ErrEmptyPartition)
	}
	if len(boundaryFacets) == 0 {
		return nil, fmt.Errorf("%w: no boundary facets (4) tagged", ErrEmptyPartition)
	}

	return NewEntityTags(fdim,
		[][]int32{interiorFacets, cutFacets, exteriorFacets, boundaryFacets},
		[]int32{Interior, Cut, Exterior, Boundary})
}
