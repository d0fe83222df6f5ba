package mesh

// TestMeshes provides a collection of small meshes shared by the tests of
// the mesh, extract, readers, writers and cgnsdoc packages. Every call
// builds fresh copies, so tests may mutate them.
type TestMeshes struct {
	// TwoRegion is a 3-D mesh with region "A" (4 tets, tags 0-3), region
	// "B" (2 hexes, tags 4-5), boundaries "Bottom" (quads 6-7), "Top"
	// (triangles 8-9), "West" (triangles 10-12) and well "W1" (line 13),
	// all on 10 vertices
	TwoRegion *Mesh

	// Square2D is a 2-D mesh with a mixed triangle/quad region, two line
	// boundaries and a node-only well
	Square2D *Mesh

	// Segmented is a 3-D two segment extrusion of a 6 point cross-section
	// made of two triangles and one quad, with a skin, two lids and an
	// axis well
	Segmented *Mesh
}

// GetStandardTestMeshes returns a set of standard test meshes
func GetStandardTestMeshes() *TestMeshes {
	return &TestMeshes{
		TwoRegion: createTwoRegionMesh(),
		Square2D:  createSquare2DMesh(),
		Segmented: createSegmentedMesh(2),
	}
}

func createTwoRegionMesh() *Mesh {
	m := NewMesh(3)
	m.Coordinates = []Coordinate{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 0},
		{1, 0, 1}, {2, 0, 0}, {2, 1, 0}, {2, 0, 1}, {2, 1, 1},
	}
	// Region A
	m.AddElement(Tet, []int{0, 1, 2, 3}, 0)
	m.AddElement(Tet, []int{1, 2, 3, 4}, 1)
	m.AddElement(Tet, []int{2, 3, 4, 5}, 2)
	m.AddElement(Tet, []int{0, 2, 3, 5}, 3)
	// Region B
	m.AddElement(Hex, []int{2, 3, 4, 5, 6, 7, 8, 9}, 4)
	m.AddElement(Hex, []int{0, 1, 2, 3, 6, 7, 8, 9}, 5)

	// West is stored ahead of Top in the triangle bucket
	m.AddElement(Triangle, []int{0, 1, 3}, 10)
	m.AddElement(Triangle, []int{1, 3, 4}, 11)
	m.AddElement(Triangle, []int{3, 4, 5}, 12)
	m.AddElement(Triangle, []int{0, 1, 2}, 8)
	m.AddElement(Triangle, []int{1, 2, 4}, 9)
	m.AddElement(Quad, []int{6, 7, 8, 9}, 6)
	m.AddElement(Quad, []int{2, 3, 7, 6}, 7)

	m.AddElement(Line, []int{0, 5}, 13)

	m.Regions = []Region{
		{Name: "A", Begin: 0, End: 4},
		{Name: "B", Begin: 4, End: 6},
	}
	m.Boundaries = []Boundary{
		{Name: "Bottom", Begin: 6, End: 8},
		{Name: "Top", Begin: 8, End: 10},
		{Name: "West", Begin: 10, End: 13},
	}
	m.Wells = []Well{
		{Name: "W1", Begin: 13, End: 14},
	}
	m.DeriveVertexLists()
	return m
}

func createSquare2DMesh() *Mesh {
	m := NewMesh(2)
	m.Coordinates = []Coordinate{
		{0, 0, 0}, {1, 0, 0}, {2, 0, 0},
		{0, 1, 0}, {1, 1, 0}, {2, 1, 0},
	}
	m.AddElement(Triangle, []int{0, 1, 4}, 0)
	m.AddElement(Triangle, []int{0, 4, 3}, 1)
	m.AddElement(Quad, []int{1, 2, 5, 4}, 2)

	m.AddElement(Line, []int{0, 1}, 3)
	m.AddElement(Line, []int{1, 2}, 4)
	m.AddElement(Line, []int{2, 5}, 5)
	m.AddElement(Line, []int{3, 0}, 6)

	m.Regions = []Region{
		{Name: "Fluid", Begin: 0, End: 3},
	}
	m.Boundaries = []Boundary{
		{Name: "Wall", Begin: 3, End: 5},
		{Name: "Outlet", Begin: 5, End: 6},
		{Name: "Inlet", Begin: 6, End: 7},
	}
	m.Wells = []Well{
		{Name: "Probe", Begin: 7, End: 7, Vertices: []int{4}},
	}
	m.DeriveVertexLists()
	return m
}

// createSegmentedMesh extrudes the cross-section
//
//	3---2---5
//	|  /|   |
//	| / |   |
//	0---1---4
//
// through nSeg unit segments along z. Vertex i of cross-section k is 6k+i.
func createSegmentedMesh(nSeg int) *Mesh {
	const vpcs = 6
	var (
		xy   = [vpcs][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {2, 0}, {2, 1}}
		tris = [2][3]int{{0, 1, 2}, {0, 2, 3}}
		quad = [4]int{1, 4, 5, 2}
		skin = [2][2]int{{0, 1}, {2, 3}}
		m    = NewMesh(3)
		tag  int
	)
	nextTag := func() int { tag++; return tag - 1 }
	shift := func(off int, verts ...int) []int {
		out := make([]int, len(verts))
		for i, v := range verts {
			out[i] = v + off
		}
		return out
	}
	lastLid := vpcs * nSeg
	for k := 0; k <= nSeg; k++ {
		for _, p := range xy {
			m.Coordinates = append(m.Coordinates, Coordinate{p[0], p[1], float64(k)})
		}
	}

	for s := 0; s < nSeg; s++ {
		lo, hi := vpcs*s, vpcs*(s+1)
		for _, t := range tris {
			m.AddElement(Prism, append(shift(lo, t[:]...), shift(hi, t[:]...)...), nextTag())
		}
	}
	for s := 0; s < nSeg; s++ {
		lo, hi := vpcs*s, vpcs*(s+1)
		m.AddElement(Hex, append(shift(lo, quad[:]...), shift(hi, quad[:]...)...), nextTag())
	}
	m.Regions = []Region{{Name: "Body", Begin: 0, End: tag}}

	skinBegin := tag
	for s := 0; s < nSeg; s++ {
		lo, hi := vpcs*s, vpcs*(s+1)
		for _, e := range skin {
			m.AddElement(Quad, []int{e[0] + lo, e[1] + lo, e[1] + hi, e[0] + hi}, nextTag())
		}
	}
	firstBegin := tag
	for _, t := range tris {
		m.AddElement(Triangle, shift(0, t[:]...), nextTag())
	}
	m.AddElement(Quad, shift(0, quad[:]...), nextTag())
	lastBegin := tag
	for _, t := range tris {
		m.AddElement(Triangle, shift(lastLid, t[:]...), nextTag())
	}
	m.AddElement(Quad, shift(lastLid, quad[:]...), nextTag())
	m.Boundaries = []Boundary{
		{Name: "Skin", Begin: skinBegin, End: firstBegin},
		{Name: "FirstLid", Begin: firstBegin, End: lastBegin},
		{Name: "LastLid", Begin: lastBegin, End: tag},
	}

	axisBegin := tag
	for s := 0; s < nSeg; s++ {
		m.AddElement(Line, []int{vpcs * s, vpcs * (s + 1)}, nextTag())
	}
	m.Wells = []Well{{Name: "Axis", Begin: axisBegin, End: tag}}
	m.DeriveVertexLists()
	return m
}
