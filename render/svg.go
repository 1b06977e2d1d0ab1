// Package render provides an optional diagnostics sink that draws tagged
// 2D meshes as SVG. It is a debug aid external to the classification
// contract; classifiers receive it explicitly, never through ambient
// state.
package render

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/cutcell/levelset"
	"github.com/notargets/cutcell/mesh"
	"github.com/notargets/cutcell/tags"
	"github.com/notargets/cutcell/utils"
)

// Marker fill colors: interior, cut, exterior, boundary/padding
var markerFill = map[int32]string{
	tags.Interior: "#4878cf",
	tags.Cut:      "#d65f5f",
	tags.Exterior: "#c4c4c4",
	tags.Boundary: "#6acc65",
}

// SVG renders cell tag collections of triangle meshes to a writer
type SVG struct {
	W io.Writer

	// Canvas width in pixels; height follows the mesh aspect ratio.
	// Zero means 640.
	Width float64
}

// RenderTags draws the mesh cells filled by marker color. Facet tag
// collections and 3D meshes are not drawable here and return an error.
func (s *SVG) RenderTags(msh *mesh.Mesh, et *tags.EntityTags, ls *levelset.Levelset) error {
	if msh.Geometry != utils.Tri {
		return fmt.Errorf("SVG rendering supports triangle meshes only, got %v", msh.Geometry)
	}
	if et.Dim != msh.TopologyDim() {
		return fmt.Errorf("SVG rendering supports cell tags only, got dimension %d", et.Dim)
	}

	width := s.Width
	if width == 0 {
		width = 640
	}
	xmin, xmax := floats.Min(msh.VX), floats.Max(msh.VX)
	ymin, ymax := floats.Min(msh.VY), floats.Max(msh.VY)
	scale := width / (xmax - xmin)
	height := (ymax - ymin) * scale

	// SVG y axis points down; flip so the mesh is drawn upright
	px := func(x float64) float64 { return (x - xmin) * scale }
	py := func(y float64) float64 { return height - (y-ymin)*scale }

	if _, err := fmt.Fprintf(s.W,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%.0f\" height=\"%.0f\" viewBox=\"0 0 %.0f %.0f\">\n",
		width, height, width, height); err != nil {
		return err
	}
	for i, cell := range et.Indices {
		fill, ok := markerFill[et.Markers[i]]
		if !ok {
			fill = "#000000"
		}
		verts := msh.EToV[cell]
		if _, err := fmt.Fprintf(s.W,
			"  <polygon points=\"%.3f,%.3f %.3f,%.3f %.3f,%.3f\" fill=\"%s\" stroke=\"#333333\" stroke-width=\"0.5\"/>\n",
			px(msh.VX[verts[0]]), py(msh.VY[verts[0]]),
			px(msh.VX[verts[1]]), py(msh.VY[verts[1]]),
			px(msh.VX[verts[2]]), py(msh.VY[verts[2]]),
			fill); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(s.W, "</svg>")
	return err
}
