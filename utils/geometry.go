package utils

// GeometryType identifies the shape of a mesh entity
type GeometryType uint8

const (
	// 3D element types
	Tet     GeometryType = iota // Tetrahedron
	Hex                         // Hexahedron
	Prism                       // Triangular prism
	Pyramid                     // Square-based pyramid

	// 2D element types
	Tri       // Triangle
	Rectangle // Rectangle/Quadrilateral

	// 1D element type
	Line // Line segment
)

func (g GeometryType) String() string {
	switch g {
	case Tet:
		return "tetrahedron"
	case Hex:
		return "hexahedron"
	case Prism:
		return "prism"
	case Pyramid:
		return "pyramid"
	case Tri:
		return "triangle"
	case Rectangle:
		return "rectangle"
	case Line:
		return "line"
	}
	return "unknown"
}

// NumVertices returns the number of defining vertices for simplex types,
// 0 for types without a defined layout
func (g GeometryType) NumVertices() int {
	switch g {
	case Tri:
		return 3
	case Tet:
		return 4
	}
	return 0
}

// NumFacets returns the facets per cell for simplex types
func (g GeometryType) NumFacets() int {
	switch g {
	case Tri:
		return 3
	case Tet:
		return 4
	}
	return 0
}

// Dim returns the topological dimension of the geometry
func (g GeometryType) Dim() int {
	switch g {
	case Line:
		return 1
	case Tri, Rectangle:
		return 2
	}
	return 3
}
