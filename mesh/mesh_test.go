package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElementType(t *testing.T) {
	testCases := []struct {
		et       ElementType
		name     string
		numNodes int
		dim      int
	}{
		{Line, "Line", 2, 1},
		{Triangle, "Triangle", 3, 2},
		{Quad, "Quad", 4, 2},
		{Tet, "Tet", 4, 3},
		{Hex, "Hex", 8, 3},
		{Prism, "Prism", 6, 3},
		{Pyramid, "Pyramid", 5, 3},
		{NumElementTypes, "Invalid", 0, -1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.et.String())
			assert.Equal(t, tc.numNodes, tc.et.GetNumNodes())
			assert.Equal(t, tc.dim, tc.et.GetDimension())
		})
	}
}

func TestMeshCounts(t *testing.T) {
	tm := GetStandardTestMeshes()
	m := tm.TwoRegion
	assert.Equal(t, 6, m.NumCells())
	assert.Equal(t, 7, m.NumFacets())
	assert.Equal(t, 1, m.NumLines())
	assert.Equal(t, 14, m.NumTags())

	m = tm.Square2D
	assert.Equal(t, 3, m.NumCells())
	assert.Equal(t, 4, m.NumFacets())
	assert.Equal(t, 0, m.NumLines())
}

func TestFindNamed(t *testing.T) {
	m := GetStandardTestMeshes().TwoRegion
	assert.Equal(t, 1, m.FindRegion("B"))
	assert.Equal(t, -1, m.FindRegion("C"))
	assert.Equal(t, 2, m.FindBoundary("West"))
	assert.Equal(t, -1, m.FindBoundary("west"))
	assert.Equal(t, 0, m.FindWell("W1"))
	assert.Equal(t, []string{"A", "B"}, m.RegionNames())
	assert.Equal(t, []string{"Bottom", "Top", "West"}, m.BoundaryNames())
	assert.Equal(t, []string{"W1"}, m.WellNames())
}

func TestDeriveVertexLists(t *testing.T) {
	tm := GetStandardTestMeshes()
	m := tm.TwoRegion
	assert.Equal(t, []int{0, 1, 3, 4, 5}, m.Boundaries[2].Vertices)
	assert.Equal(t, []int{0, 1, 2, 4}, m.Boundaries[1].Vertices)
	assert.Equal(t, []int{0, 5}, m.Wells[0].Vertices)

	// Node-only wells keep their references
	assert.Equal(t, []int{4}, tm.Square2D.Wells[0].Vertices)
	assert.Equal(t, []int{0, 3}, tm.Square2D.Boundaries[2].Vertices)
}

func TestClone(t *testing.T) {
	m := GetStandardTestMeshes().TwoRegion
	c := m.Clone()
	assert.Equal(t, m, c)

	c.Coordinates[0][0] = 7
	c.Connectivity[Tet][0].Vertices[0] = 9
	c.Boundaries[0].Vertices[0] = 9
	c.Regions[0].Name = "Z"
	assert.Equal(t, 0.0, m.Coordinates[0][0])
	assert.Equal(t, 0, m.Connectivity[Tet][0].Vertices[0])
	assert.Equal(t, 2, m.Boundaries[0].Vertices[0])
	assert.Equal(t, "A", m.Regions[0].Name)
}
