// Package tags classifies background mesh cells and facets against an
// embedded levelset boundary into tagged entity collections consumable by
// downstream assembly routines.
package tags

import (
	"fmt"
	"sort"

	"github.com/notargets/cutcell/levelset"
	"github.com/notargets/cutcell/mesh"
)

// Entity category markers. For facets, Boundary tags the discrete
// embedded boundary Gamma_h; for cells it tags the padding layer.
const (
	Interior int32 = 1 // strictly inside the embedded domain
	Cut      int32 = 2 // crosses the embedded boundary
	Exterior int32 = 3 // strictly outside the embedded domain
	Boundary int32 = 4 // facets: Gamma_h; cells: padding layer
)

// EntityTags maps entity indices at one topological dimension to
// category markers. Indices are sorted ascending with Markers parallel.
// Built once by a classifier, read-only thereafter.
type EntityTags struct {
	Dim     int
	Indices []int32
	Markers []int32
}

// NewEntityTags merges disjoint index lists with their markers into one
// sorted tagged collection. Pairwise disjointness of the lists is a
// caller precondition; violated disjointness silently produces duplicate
// index entries.
func NewEntityTags(dim int, lists [][]int32, markers []int32) (*EntityTags, error) {
	if len(lists) != len(markers) {
		return nil, fmt.Errorf("got %d index lists for %d markers", len(lists), len(markers))
	}
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	et := &EntityTags{
		Dim:     dim,
		Indices: make([]int32, 0, total),
		Markers: make([]int32, 0, total),
	}
	for i, l := range lists {
		et.Indices = append(et.Indices, l...)
		for range l {
			et.Markers = append(et.Markers, markers[i])
		}
	}
	sort.Sort(byIndex{et})
	return et, nil
}

// Find returns the sorted entity indices carrying the given marker
func (et *EntityTags) Find(marker int32) []int32 {
	out := make([]int32, 0)
	for i, idx := range et.Indices {
		if et.Markers[i] == marker {
			out = append(out, idx)
		}
	}
	return out
}

// Len returns the number of tagged entities
func (et *EntityTags) Len() int {
	return len(et.Indices)
}

// byIndex sorts the paired index/marker arrays by entity index ascending
type byIndex struct{ et *EntityTags }

func (b byIndex) Len() int           { return len(b.et.Indices) }
func (b byIndex) Less(i, j int) bool { return b.et.Indices[i] < b.et.Indices[j] }
func (b byIndex) Swap(i, j int) {
	b.et.Indices[i], b.et.Indices[j] = b.et.Indices[j], b.et.Indices[i]
	b.et.Markers[i], b.et.Markers[j] = b.et.Markers[j], b.et.Markers[i]
}

// RenderSink receives tag collections for diagnostic rendering. Supplied
// explicitly by the caller when diagnostics are requested; classifiers
// hold no ambient rendering state.
type RenderSink interface {
	RenderTags(msh *mesh.Mesh, et *EntityTags, ls *levelset.Levelset) error
}
