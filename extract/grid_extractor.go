package extract

import (
	"fmt"

	"github.com/notargets/gridmend/mesh"
)

var (
	regionShapes   = []mesh.ElementType{mesh.Tet, mesh.Hex, mesh.Prism, mesh.Pyramid}
	boundaryShapes = []mesh.ElementType{mesh.Triangle, mesh.Quad}
	wellShapes     = []mesh.ElementType{mesh.Line}
)

// Extract builds a self-contained 3-D mesh from the selected regions,
// boundaries and wells of source. The output is numbered from zero: cells
// of the selected regions in selection order, then facets, then lines, and
// only referenced vertices are kept, in ascending source order.
//
// The selected boundaries are claimed: on success their facets and entries
// are removed from source. Names are all resolved first, so a failed lookup
// leaves source untouched.
func Extract(source *mesh.Mesh, sel Selection) (out *mesh.Mesh, err error) {
	if source.Dimension != 3 {
		return nil, fmt.Errorf("extracting from a %d-D mesh: %w", source.Dimension, mesh.ErrDimensionMismatch)
	}
	var (
		regions    []mesh.Region
		boundaries []mesh.Boundary
		wells      []mesh.Well
	)
	for _, name := range unique(sel.Regions) {
		i := source.FindRegion(name)
		if i < 0 {
			return nil, mesh.NewNotFoundError("region", name, source.RegionNames())
		}
		regions = append(regions, source.Regions[i])
	}
	for _, name := range unique(sel.Boundaries) {
		i := source.FindBoundary(name)
		if i < 0 {
			return nil, mesh.NewNotFoundError("boundary", name, source.BoundaryNames())
		}
		boundaries = append(boundaries, source.Boundaries[i])
	}
	for _, name := range unique(sel.Wells) {
		i := source.FindWell(name)
		if i < 0 {
			return nil, mesh.NewNotFoundError("well", name, source.WellNames())
		}
		wells = append(wells, source.Wells[i])
	}

	var (
		gc   = source.GlobalConnectivity()
		kept = make([]bool, len(source.Coordinates))
		tag  int
	)
	out = mesh.NewMesh(3)
	mark := func(verts []int) error {
		for _, v := range verts {
			if v < 0 || v >= len(kept) {
				return fmt.Errorf("vertex %d outside of %d coordinates: %w", v, len(kept), mesh.ErrInvalidMesh)
			}
			kept[v] = true
		}
		return nil
	}
	// copyRange appends the rows of [begin, end) to their output buckets and
	// returns the output range they occupy
	copyRange := func(kind, name string, begin, end int, shapes []mesh.ElementType) (b, e int, err error) {
		var rows []mesh.Element
		if rows, err = gc.Slice(begin, end); err != nil {
			return 0, 0, fmt.Errorf("%s %q: %w", kind, name, err)
		}
		b = tag
		for _, row := range rows {
			et, ok := mesh.ShapeOf(len(row.Vertices), shapes)
			if !ok {
				return 0, 0, fmt.Errorf("%s %q: row with %d vertices: %w",
					kind, name, len(row.Vertices), mesh.ErrUnsupportedCardinality)
			}
			if err = mark(row.Vertices); err != nil {
				return 0, 0, fmt.Errorf("%s %q: %w", kind, name, err)
			}
			out.AddElement(et, row.Vertices, tag)
			tag++
		}
		return b, tag, nil
	}

	for _, r := range regions {
		var b, e int
		if b, e, err = copyRange("region", r.Name, r.Begin, r.End, regionShapes); err != nil {
			return nil, err
		}
		out.Regions = append(out.Regions, mesh.Region{Name: r.Name, Begin: b, End: e})
	}
	for _, bd := range boundaries {
		var b, e int
		if b, e, err = copyRange("boundary", bd.Name, bd.Begin, bd.End, boundaryShapes); err != nil {
			return nil, err
		}
		if err = mark(bd.Vertices); err != nil {
			return nil, fmt.Errorf("boundary %q: %w", bd.Name, err)
		}
		out.Boundaries = append(out.Boundaries, mesh.Boundary{
			Name: bd.Name, Begin: b, End: e, Vertices: append([]int(nil), bd.Vertices...),
		})
	}
	for _, w := range wells {
		var b, e int
		if b, e, err = copyRange("well", w.Name, w.Begin, w.End, wellShapes); err != nil {
			return nil, err
		}
		if err = mark(w.Vertices); err != nil {
			return nil, fmt.Errorf("well %q: %w", w.Name, err)
		}
		out.Wells = append(out.Wells, mesh.Well{
			Name: w.Name, Begin: b, End: e, Vertices: append([]int(nil), w.Vertices...),
		})
	}

	newID := renumberVertices(source, out, kept)
	for et := range out.Connectivity {
		for _, el := range out.Connectivity[et] {
			remapInPlace(el.Vertices, newID)
		}
	}
	for _, b := range out.Boundaries {
		remapInPlace(b.Vertices, newID)
	}
	for _, w := range out.Wells {
		remapInPlace(w.Vertices, newID)
	}

	claimBoundaries(source, boundaries)
	return out, nil
}

// renumberVertices copies the kept coordinates to out in ascending source
// order and returns the source to output vertex id map, -1 for dropped ids
func renumberVertices(source, out *mesh.Mesh, kept []bool) (newID []int) {
	newID = make([]int, len(kept))
	for v, k := range kept {
		if !k {
			newID[v] = -1
			continue
		}
		newID[v] = len(out.Coordinates)
		out.Coordinates = append(out.Coordinates, source.Coordinates[v])
	}
	return
}

func remapInPlace(verts, newID []int) {
	for i, v := range verts {
		verts[i] = newID[v]
	}
}

// claimBoundaries removes the claimed boundaries and their facets from
// source, building the surviving lists before replacing the old ones
func claimBoundaries(source *mesh.Mesh, claimed []mesh.Boundary) {
	if len(claimed) == 0 {
		return
	}
	isClaimed := func(tag int) bool {
		for _, b := range claimed {
			if tag >= b.Begin && tag < b.End {
				return true
			}
		}
		return false
	}
	for _, et := range source.FacetTypes() {
		var remaining []mesh.Element
		for _, el := range source.Connectivity[et] {
			if !isClaimed(el.Tag) {
				remaining = append(remaining, el)
			}
		}
		source.Connectivity[et] = remaining
	}

	var remaining []mesh.Boundary
	for _, b := range source.Boundaries {
		keep := true
		for _, c := range claimed {
			if b.Name == c.Name {
				keep = false
				break
			}
		}
		if keep {
			remaining = append(remaining, b)
		}
	}
	source.Boundaries = remaining
}

func unique(names []string) (out []string) {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return
}
