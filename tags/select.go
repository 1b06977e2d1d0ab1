package tags

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/cutcell/levelset"
	"github.com/notargets/cutcell/mesh"
	"github.com/notargets/cutcell/utils"
)

// SelectEntities computes the disjoint index sets at dimension edim:
// entities strictly inside the embedded domain, entities cut by its
// boundary, entities strictly outside, and (when padding is requested)
// the padding band reclassified out of the exterior.
//
// An entity is located by a predicate only if ALL its vertices satisfy
// it, so any entity with mixed-sign vertices falls through to the cut set
// by construction.
func SelectEntities(msh *mesh.Mesh, ls *levelset.Levelset, edim int, padding bool) (interior, cut, exterior, pad []int32, err error) {
	n, err := msh.NumEntities(edim)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	entities := utils.ARange(n)

	// Entities strictly included in the embedded domain
	interior, err = msh.LocateEntities(edim, ls.Interior(0, 0))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	// Entities strictly excluded from it
	exterior, err = msh.LocateEntities(edim, ls.Exterior(0, 0))
	if err != nil {
		return nil, nil, nil, nil, err
	}

	// Entities with a non-empty intersection with the embedded domain,
	// then those straddling its boundary
	notExterior := utils.SetDiff1D(entities, exterior)
	cut = utils.SetDiff1D(notExterior, interior)

	pad = []int32{}
	if padding {
		sizes, err := msh.EntitySizes(edim, cut)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if len(sizes) == 0 {
			return nil, nil, nil, nil, fmt.Errorf("%w: no cut entities to size the padding band", ErrEmptyPartition)
		}
		hmax := floats.Max(sizes)

		paddedExterior, err := msh.LocateEntities(edim, ls.Exterior(0, hmax))
		if err != nil {
			return nil, nil, nil, nil, err
		}
		paddedNotExterior := utils.SetDiff1D(entities, paddedExterior)
		pad = utils.SetDiff1D(paddedNotExterior, utils.Union1D(notExterior, cut))
		exterior = utils.SetDiff1D(exterior, pad)
	}

	return interior, cut, exterior, pad, nil
}

// TagEntities classifies the entities of dimension edim into interior(1),
// cut(2), exterior(3) and boundary/padding(4) sets and returns the merged
// tag collection. When edim is the facet dimension and cellsTags is
// non-nil the cell sets are reused instead of recomputed. A non-nil sink
// receives the finished tags for diagnostic rendering.
func TagEntities(msh *mesh.Mesh, ls *levelset.Levelset, edim int, cellsTags *EntityTags, padding bool, sink RenderSink) (*EntityTags, error) {
	cdim := msh.TopologyDim()

	var interior, cut, exterior, pad []int32
	if cellsTags == nil {
		var err error
		interior, cut, exterior, pad, err = SelectEntities(msh, ls, cdim, padding)
		if err != nil {
			return nil, err
		}
	} else {
		interior = cellsTags.Find(Interior)
		cut = cellsTags.Find(Cut)
		exterior = cellsTags.Find(Exterior)
		pad = cellsTags.Find(Boundary)
	}

	var lists [][]int32
	switch edim {
	case cdim - 1:
		msh.BuildConnectivity()

		// Facets shared by an interior cell and a cut cell
		interiorBoundaryFacets := utils.Intersect1D(facetsOf(msh, interior), facetsOf(msh, cut))
		// Facets shared by a cut cell and an exterior or padding cell
		boundaryFacets := utils.Intersect1D(facetsOf(msh, cut),
			utils.Union1D(facetsOf(msh, exterior), facetsOf(msh, pad)))

		interiorFronteerFacets, cutFacets, exteriorFacets, _, err := SelectEntities(msh, ls, edim, false)
		if err != nil {
			return nil, err
		}
		interiorFacets := utils.SetDiff1D(interiorFronteerFacets, interiorBoundaryFacets)
		// Interior-boundary facets are reclassified into the cut set,
		// not kept as a category of their own
		cutFacets = utils.Union1D(cutFacets, interiorBoundaryFacets)
		exteriorFacets = utils.SetDiff1D(exteriorFacets, boundaryFacets)

		// Facets of cut cells on the outer hull of the background mesh
		// belong to the boundary set (the intersection of Gamma_h with
		// the box boundary should be empty, but tag them properly)
		backgroundBoundaryFacets, err := msh.BoundaryFacets(mesh.EverywhereTrue)
		if err != nil {
			return nil, err
		}
		outerCutFacets := utils.Intersect1D(facetsOf(msh, cut), backgroundBoundaryFacets)
		exteriorFacets = utils.SetDiff1D(exteriorFacets, outerCutFacets)
		boundaryFacets = utils.Union1D(boundaryFacets, outerCutFacets)

		if len(interiorFacets) == 0 {
			return nil, fmt.Errorf("%w: no interior facets (1) tagged", ErrEmptyPartition)
		}
		if len(cutFacets) == 0 {
			return nil, fmt.Errorf("%w: no cut facets (2) tagged", ErrEmptyPartition)
		}
		if len(boundaryFacets) == 0 {
			return nil, fmt.Errorf("%w: no boundary facets (4) tagged", ErrEmptyPartition)
		}
		lists = [][]int32{interiorFacets, cutFacets, exteriorFacets, boundaryFacets}

	case cdim:
		if len(interior) == 0 {
			return nil, fmt.Errorf("%w: no interior cells (1) tagged", ErrEmptyPartition)
		}
		if len(cut) == 0 {
			return nil, fmt.Errorf("%w: no cut cells (2) tagged", ErrEmptyPartition)
		}
		if padding && len(pad) == 0 {
			return nil, fmt.Errorf("%w: no padding cells (4) tagged", ErrEmptyPartition)
		}
		lists = [][]int32{interior, cut, exterior, pad}

	default:
		return nil, fmt.Errorf("cannot tag entities of dimension %d on a %dD mesh", edim, cdim)
	}

	et, err := NewEntityTags(edim, lists, []int32{Interior, Cut, Exterior, Boundary})
	if err != nil {
		return nil, err
	}
	if sink != nil {
		if err := sink.RenderTags(msh, et, ls); err != nil {
			return nil, fmt.Errorf("render sink failed: %v", err)
		}
	}
	return et, nil
}

// facetsOf gathers the facet indices of all listed cells
func facetsOf(msh *mesh.Mesh, cells []int32) []int32 {
	out := make([]int32, 0, len(cells)*msh.Geometry.NumFacets())
	for _, c := range cells {
		for _, f := range msh.CToF[c] {
			out = append(out, int32(f))
		}
	}
	return out
}
