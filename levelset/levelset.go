// Package levelset represents continuous scalar fields over mesh-embedding
// coordinates, in particular the implicit function whose zero isoline
// defines an embedded domain boundary.
package levelset

// Expression is a batched scalar field: one value per point. The z slice
// is nil for 2D coordinates.
type Expression func(x, y, z []float64) []float64

// SpaceKey identifies a nodal interpolation space on a background mesh:
// the reference cell name and the polynomial degree of the node layout.
type SpaceKey struct {
	Cell   string
	Degree int
}

// NodalField holds levelset values sampled at the detection nodes of
// mesh cells, filled lazily per cell. One field is cached per SpaceKey;
// the cache is only meaningful against a single background mesh, so a
// function instance must not be shared across meshes without calling
// ClearInterpolations.
type NodalField struct {
	Key    SpaceKey
	values map[int32][]float64
}

// CellValues returns the sampled values for one cell, or nil if the cell
// has not been interpolated
func (f *NodalField) CellValues(cell int32) []float64 {
	return f.values[cell]
}

// NumCells returns the number of cells carrying sampled values
func (f *NodalField) NumCells() int {
	return len(f.values)
}

// ContinuousFunction is a continuous (in the sense of non-discrete)
// scalar field with a per-space interpolation cache.
type ContinuousFunction struct {
	expr    Expression
	interps map[SpaceKey]*NodalField
}

// NewContinuousFunction wraps a batched expression
func NewContinuousFunction(expr Expression) *ContinuousFunction {
	return &ContinuousFunction{
		expr:    expr,
		interps: make(map[SpaceKey]*NodalField),
	}
}

// Eval computes the field at a batch of points
func (f *ContinuousFunction) Eval(x, y, z []float64) []float64 {
	return f.expr(x, y, z)
}

// Interpolate samples the field at the detection nodes of the listed
// cells, reusing previously computed values for the same space. The
// coords callback maps a cell to the physical coordinates of its nodes;
// it is only invoked for cells missing from the cache.
func (f *ContinuousFunction) Interpolate(key SpaceKey, cells []int32, coords func(cell int32) (x, y, z []float64)) *NodalField {
	field, ok := f.interps[key]
	if !ok {
		field = &NodalField{Key: key, values: make(map[int32][]float64)}
		f.interps[key] = field
	}
	for _, c := range cells {
		if _, done := field.values[c]; done {
			continue
		}
		x, y, z := coords(c)
		field.values[c] = f.expr(x, y, z)
	}
	return field
}

// ClearInterpolations drops all cached interpolated fields. Call when the
// function is reused against a different mesh or node layout.
func (f *ContinuousFunction) ClearInterpolations() {
	f.interps = make(map[SpaceKey]*NodalField)
}

// Levelset is a continuous scalar field whose zero isoline defines an
// embedded domain boundary.
type Levelset struct {
	ContinuousFunction
}

// NewLevelset wraps a batched expression as a levelset
func NewLevelset(expr Expression) *Levelset {
	return &Levelset{ContinuousFunction{
		expr:    expr,
		interps: make(map[SpaceKey]*NodalField),
	}}
}

// Exterior returns a batched point predicate selecting points strictly
// outside the domain bounded by the isoline of level t:
// value > t + padding. Points with value in [t-padding, t+padding]
// satisfy neither Exterior nor Interior; that open band is what produces
// the cut classification by exclusion.
func (l *Levelset) Exterior(t, padding float64) func(x, y, z []float64) []bool {
	return func(x, y, z []float64) []bool {
		vals := l.Eval(x, y, z)
		out := make([]bool, len(vals))
		for i, v := range vals {
			out[i] = v > t+padding
		}
		return out
	}
}

// Interior returns a batched point predicate selecting points strictly
// inside the domain bounded by the isoline of level t:
// value < t - padding.
func (l *Levelset) Interior(t, padding float64) func(x, y, z []float64) []bool {
	return func(x, y, z []float64) []bool {
		vals := l.Eval(x, y, z)
		out := make([]bool, len(vals))
		for i, v := range vals {
			out[i] = v < t-padding
		}
		return out
	}
}
