package tags

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/cutcell/element"
	"github.com/notargets/cutcell/levelset"
	"github.com/notargets/cutcell/mesh"
	"github.com/notargets/cutcell/utils"
)

// degenerateDenominator is the threshold under which the detection
// denominator is treated as zero. Very small cut cells can sample the
// levelset at the order of machine precision everywhere; such cells get
// statistic 0.5, deliberately biasing them toward the cut classification
// rather than misclassifying them as interior or exterior.
const degenerateDenominator = 1e-16

// DetectionStatistic computes the per-cell ratio sum(f)/sum(|f|) over
// the sampled levelset values, a scalar in [-1, 1]. A degenerate
// denominator yields 0.5.
func DetectionStatistic(vals []float64) float64 {
	num := floats.Sum(vals)
	var denom float64
	for _, v := range vals {
		if v < 0 {
			denom -= v
		} else {
			denom += v
		}
	}
	if denom > degenerateDenominator {
		return num / denom
	}
	return 0.5
}

// TagCellsByDetection classifies cells by the per-cell detection
// statistic sum(f(node))/sum(|f(node)|) over the degree-elevated sample
// nodes:
//
//	statistic == +1 => strictly outside the embedded domain, tagged 3
//	statistic == -1 => strictly inside,                      tagged 1
//	otherwise       => cut by the embedded boundary,         tagged 2
//
// When detectionDegree > 1 two passes run: degree 1 over the whole mesh,
// then detectionDegree restricted to the facet-neighbors of the cut cells
// found so far. Cells outside the restricted subdomain keep their
// previous statistic.
func TagCellsByDetection(msh *mesh.Mesh, ls *levelset.Levelset, detectionDegree int) (*EntityTags, error) {
	cdim := msh.TopologyDim()
	ncells := msh.NumCells

	subdomain := utils.ARange(ncells)
	degrees := []int{detectionDegree}
	if detectionDegree > 1 {
		msh.BuildConnectivity()
		degrees = []int{1, detectionDegree}
	}

	detect := make([]float64, ncells)
	var cutCells []int32
	for pass, degree := range degrees {
		layout, err := element.NewDetectionLayout(msh.Geometry, degree)
		if err != nil {
			return nil, err
		}

		key := levelset.SpaceKey{Cell: layout.SpaceName(), Degree: degree}
		field := ls.Interpolate(key, subdomain, func(cell int32) (x, y, z []float64) {
			vx, vy, vz := msh.CellVertexCoords(cell)
			return layout.MapToCell(vx, vy, vz)
		})

		for _, c := range subdomain {
			detect[c] = DetectionStatistic(field.CellValues(c))
		}

		cutCells = cutCells[:0]
		for c := 0; c < ncells; c++ {
			if detect[c] > -1 && detect[c] < 1 {
				cutCells = append(cutCells, int32(c))
			}
		}

		// Restrict the next pass to the cells adjacent (through shared
		// facets) to the current cut set
		if pass < len(degrees)-1 {
			subdomain = facetNeighbors(msh, cutCells)
		}
	}

	interiorCells := make([]int32, 0)
	exteriorCells := make([]int32, 0)
	for c := 0; c < ncells; c++ {
		switch {
		case detect[c] == 1:
			exteriorCells = append(exteriorCells, int32(c))
		case detect[c] == -1:
			interiorCells = append(interiorCells, int32(c))
		}
	}

	if len(interiorCells) == 0 {
		return nil, fmt.Errorf("%w: no interior cells (1) tagged", ErrEmptyPartition)
	}
	if len(cutCells) == 0 {
		return nil, fmt.Errorf("%w: no cut cells (2) tagged", ErrEmptyPartition)
	}

	return NewEntityTags(cdim,
		[][]int32{interiorCells, cutCells, exteriorCells},
		[]int32{Interior, Cut, Exterior})
}

// facetNeighbors returns the cells sharing a facet with any of the listed
// cells, the listed cells included
func facetNeighbors(msh *mesh.Mesh, cells []int32) []int32 {
	out := make([]int32, 0, len(cells)*(msh.Geometry.NumFacets()+1))
	for _, c := range cells {
		for _, f := range msh.CToF[c] {
			for _, nb := range msh.FToC[f] {
				out = append(out, int32(nb))
			}
		}
	}
	return utils.Unique(out)
}
