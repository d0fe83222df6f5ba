package extract

import (
	"fmt"
	"sort"

	"github.com/notargets/gridmend/mesh"
)

// segmentLayout holds the counts derived from a segmented source mesh
type segmentLayout struct {
	numSegments       int // S, one per axis line
	prismsPerSegment  int
	hexesPerSegment   int
	vertsPerCrossSect int
}

// checkSegmentLayout verifies that source is an extrusion the segment
// extractor can cut, and derives its per segment counts
func checkSegmentLayout(source *mesh.Mesh) (sl segmentLayout, err error) {
	if source.Dimension != 3 {
		err = fmt.Errorf("segment extraction from a %d-D mesh: %w", source.Dimension, mesh.ErrDimensionMismatch)
		return
	}
	var (
		nTet   = len(source.Connectivity[mesh.Tet])
		nPyr   = len(source.Connectivity[mesh.Pyramid])
		nPrism = len(source.Connectivity[mesh.Prism])
		nHex   = len(source.Connectivity[mesh.Hex])
		nTri   = len(source.Connectivity[mesh.Triangle])
		nQuad  = len(source.Connectivity[mesh.Quad])
		nLine  = len(source.Connectivity[mesh.Line])
		nVerts = len(source.Coordinates)
		fail   = func(format string, args ...interface{}) error {
			return fmt.Errorf("segment extraction: "+format+": %w", append(args, mesh.ErrInvalidTopology)...)
		}
	)
	switch {
	case nTet != 0 || nPyr != 0:
		err = fail("%d tetrahedra and %d pyramids, want none", nTet, nPyr)
	case nPrism == 0 || nHex == 0 || nTri == 0 || nQuad == 0 || nLine == 0:
		err = fail("prisms, hexahedra, triangles, quads and lines are all required, have %d, %d, %d, %d, %d",
			nPrism, nHex, nTri, nQuad, nLine)
	case len(source.Regions) != 1 || len(source.Boundaries) != 3 || len(source.Wells) != 1:
		err = fail("have %d regions, %d boundaries and %d wells, want 1, 3 and 1",
			len(source.Regions), len(source.Boundaries), len(source.Wells))
	case nPrism%nLine != 0 || nHex%nLine != 0:
		err = fail("%d prisms and %d hexahedra do not divide into %d segments", nPrism, nHex, nLine)
	case nVerts%(nLine+1) != 0:
		err = fail("%d vertices do not divide into %d cross-sections", nVerts, nLine+1)
	}
	if err != nil {
		return
	}
	sl = segmentLayout{
		numSegments:       nLine,
		prismsPerSegment:  nPrism / nLine,
		hexesPerSegment:   nHex / nLine,
		vertsPerCrossSect: nVerts / (nLine + 1),
	}
	switch {
	case nTri != 2*sl.prismsPerSegment:
		err = fail("%d triangles, want %d on the two lids", nTri, 2*sl.prismsPerSegment)
	case nQuad != sl.prismsPerSegment*sl.numSegments+2*sl.hexesPerSegment:
		err = fail("%d quads, want %d", nQuad, sl.prismsPerSegment*sl.numSegments+2*sl.hexesPerSegment)
	case len(source.Boundaries[2].Vertices) > sl.vertsPerCrossSect:
		err = fail("last lid has %d vertices, a cross-section has %d",
			len(source.Boundaries[2].Vertices), sl.vertsPerCrossSect)
	}
	return
}

// ExtractSegment cuts the first unit segment out of a mesh extruded along
// its single well. Source must carry one region, then the skin, first lid
// and last lid boundaries in that order, and the axis well. Its facet
// buckets are read by position: quads [0, pps*S) are the skin segment by
// segment, followed by the hexahedral faces of the first and last lid, and
// triangles [0, pps) and [pps, 2*pps) the prismatic faces of the two lids.
//
// The result has two cross-sections of vertices. The last lid is moved onto
// the second one so the segment is closed; source is not modified.
func ExtractSegment(source *mesh.Mesh) (out *mesh.Mesh, err error) {
	var sl segmentLayout
	if sl, err = checkSegmentLayout(source); err != nil {
		return
	}
	var (
		pps, hps = sl.prismsPerSegment, sl.hexesPerSegment
		vpcs     = sl.vertsPerCrossSect
		tris     = source.Connectivity[mesh.Triangle]
		quads    = source.Connectivity[mesh.Quad]
		tag      int
	)
	out = mesh.NewMesh(3)
	out.Coordinates = append([]mesh.Coordinate(nil), source.Coordinates[:2*vpcs]...)
	add := func(et mesh.ElementType, rows []mesh.Element) (begin int) {
		begin = tag
		for _, row := range rows {
			out.AddElement(et, append([]int(nil), row.Vertices...), tag)
			tag++
		}
		return
	}

	add(mesh.Prism, source.Connectivity[mesh.Prism][:pps])
	add(mesh.Hex, source.Connectivity[mesh.Hex][:hps])
	out.Regions = []mesh.Region{{Name: source.Regions[0].Name, Begin: 0, End: tag}}

	skin, first, last := source.Boundaries[0], source.Boundaries[1], source.Boundaries[2]

	begin := add(mesh.Quad, quads[:pps])
	var skinVerts []int
	for _, v := range skin.Vertices {
		if v < 2*vpcs {
			skinVerts = append(skinVerts, v)
		}
	}
	out.Boundaries = append(out.Boundaries, mesh.Boundary{
		Name: skin.Name, Begin: begin, End: tag, Vertices: skinVerts,
	})

	// The first lid already lies on the first cross-section
	begin = add(mesh.Triangle, tris[:pps])
	add(mesh.Quad, quads[pps*sl.numSegments:pps*sl.numSegments+hps])
	out.Boundaries = append(out.Boundaries, mesh.Boundary{
		Name: first.Name, Begin: begin, End: tag, Vertices: append([]int(nil), first.Vertices...),
	})

	// The last lid is pulled back onto the second cross-section
	lastVerts := append([]int(nil), last.Vertices...)
	sort.Ints(lastVerts)
	moved := make(map[int]int, len(lastVerts))
	for i, v := range lastVerts {
		moved[v] = vpcs + i
		lastVerts[i] = vpcs + i
	}
	begin = add(mesh.Triangle, tris[pps:2*pps])
	add(mesh.Quad, quads[pps*sl.numSegments+hps:])
	for et, rows := range map[mesh.ElementType][]mesh.Element{
		mesh.Triangle: out.Connectivity[mesh.Triangle][pps:],
		mesh.Quad:     out.Connectivity[mesh.Quad][pps+hps:],
	} {
		for _, row := range rows {
			for i, v := range row.Vertices {
				nv, ok := moved[v]
				if !ok {
					return nil, fmt.Errorf("segment extraction: last lid %s %d references vertex %d outside of the lid: %w",
						et, row.Tag, v, mesh.ErrInvalidTopology)
				}
				row.Vertices[i] = nv
			}
		}
	}
	out.Boundaries = append(out.Boundaries, mesh.Boundary{
		Name: last.Name, Begin: begin, End: tag, Vertices: lastVerts,
	})

	axis := source.Connectivity[mesh.Line][0]
	begin = add(mesh.Line, source.Connectivity[mesh.Line][:1])
	out.Wells = []mesh.Well{{
		Name: source.Wells[0].Name, Begin: begin, End: tag, Vertices: append([]int(nil), axis.Vertices...),
	}}

	if err = out.Validate(); err != nil {
		return nil, fmt.Errorf("segment extraction: %w: %w", mesh.ErrInvalidTopology, err)
	}
	return
}
