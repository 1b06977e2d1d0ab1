package element

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/cutcell/utils"
)

// ErrUnsupportedTopology reports a cell shape without a detection node
// layout. Only triangle and tetrahedron reference cells are defined.
var ErrUnsupportedTopology = errors.New("unsupported cell topology")

// diagTol keeps nodes that land on the simplex diagonal but fall below it
// by floating point rounding of the grid coordinates
const diagTol = 1e-12

// DetectionLayout holds the sample nodes of the degree-d detection scheme
// on the reference simplex: the regular barycentric grid with d+1 points
// per edge, restricted to the simplex. Node weights are uniformly 1; this
// is a node-evaluation scheme, not a true quadrature.
type DetectionLayout struct {
	Geometry utils.GeometryType
	Degree   int

	// Node coordinates on the unit reference simplex. T is nil for 2D.
	R, S, T []float64

	Weights []float64 // uniformly 1
}

// NewDetectionLayout builds the degree-d node layout for the given
// reference cell
func NewDetectionLayout(geom utils.GeometryType, degree int) (*DetectionLayout, error) {
	if degree < 1 {
		return nil, fmt.Errorf("detection degree must be >= 1, got %d", degree)
	}
	xs := make([]float64, degree+1)
	floats.Span(xs, 0, 1)

	dl := &DetectionLayout{Geometry: geom, Degree: degree}
	switch geom {
	case utils.Tri:
		for _, s := range xs {
			for _, r := range xs {
				if s <= 1-r+diagTol {
					dl.R = append(dl.R, r)
					dl.S = append(dl.S, s)
				}
			}
		}
	case utils.Tet:
		dl.T = []float64{}
		for _, t := range xs {
			for _, s := range xs {
				for _, r := range xs {
					if t <= 1-r-s+diagTol {
						dl.R = append(dl.R, r)
						dl.S = append(dl.S, s)
						dl.T = append(dl.T, t)
					}
				}
			}
		}
	default:
		return nil, fmt.Errorf("%w: %v (only triangle and tetrahedron reference cells are defined)",
			ErrUnsupportedTopology, geom)
	}

	dl.Weights = make([]float64, len(dl.R))
	for i := range dl.Weights {
		dl.Weights[i] = 1
	}
	return dl, nil
}

// NumNodes returns the node count of the layout: (d+1)(d+2)/2 for the
// triangle, (d+1)(d+2)(d+3)/6 for the tetrahedron
func (dl *DetectionLayout) NumNodes() int {
	return len(dl.R)
}

// MapToCell maps the reference nodes into a physical cell given its
// vertex coordinates, via the affine vertex map
// x = v0 + (v1-v0) r + (v2-v0) s [+ (v3-v0) t].
// The returned z slice is nil for triangles.
func (dl *DetectionLayout) MapToCell(vx, vy, vz []float64) (x, y, z []float64) {
	n := dl.NumNodes()
	x = make([]float64, n)
	y = make([]float64, n)
	if dl.Geometry == utils.Tet {
		z = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		r, s := dl.R[i], dl.S[i]
		x[i] = vx[0] + (vx[1]-vx[0])*r + (vx[2]-vx[0])*s
		y[i] = vy[0] + (vy[1]-vy[0])*r + (vy[2]-vy[0])*s
		if z != nil {
			t := dl.T[i]
			x[i] += (vx[3] - vx[0]) * t
			y[i] += (vy[3] - vy[0]) * t
			z[i] = vz[0] + (vz[1]-vz[0])*r + (vz[2]-vz[0])*s + (vz[3]-vz[0])*t
		}
	}
	return x, y, z
}

// SpaceName returns the reference cell name used to key interpolation
// spaces
func (dl *DetectionLayout) SpaceName() string {
	return dl.Geometry.String()
}
