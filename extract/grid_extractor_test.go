package extract

import (
	"errors"
	"testing"

	"github.com/notargets/gridmend/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRegion(t *testing.T) {
	src := mesh.GetStandardTestMeshes().TwoRegion
	out, err := Extract(src, Selection{Regions: []string{"A"}})
	require.NoError(t, err)
	require.NoError(t, out.Validate())

	assert.Equal(t, 3, out.Dimension)
	assert.Equal(t, []mesh.Region{{Name: "A", Begin: 0, End: 4}}, out.Regions)
	assert.Len(t, out.Connectivity[mesh.Tet], 4)
	assert.Empty(t, out.Connectivity[mesh.Hex])
	assert.Empty(t, out.Boundaries)

	// Tets reference vertices 0 to 5 only
	require.Len(t, out.Coordinates, 6)
	assert.Equal(t, src.Coordinates[:6], out.Coordinates)
	assert.Equal(t, []int{2, 3, 4, 5}, out.Connectivity[mesh.Tet][2].Vertices)

	// Nothing was claimed
	assert.Len(t, src.Boundaries, 3)
}

func TestExtractRenumbers(t *testing.T) {
	src := mesh.GetStandardTestMeshes().TwoRegion
	out, err := Extract(src, Selection{
		Regions:    []string{"B"},
		Boundaries: []string{"Bottom"},
		Wells:      []string{"W1"},
	})
	require.NoError(t, err)
	require.NoError(t, out.Validate())

	// Hexes reference every vertex, so ids are unchanged
	require.Len(t, out.Coordinates, 10)
	assert.Equal(t, []mesh.Region{{Name: "B", Begin: 0, End: 2}}, out.Regions)
	assert.Equal(t, mesh.Boundary{Name: "Bottom", Begin: 2, End: 4, Vertices: []int{2, 3, 6, 7, 8, 9}},
		out.Boundaries[0])
	assert.Equal(t, mesh.Well{Name: "W1", Begin: 4, End: 5, Vertices: []int{0, 5}}, out.Wells[0])
	assert.Equal(t, mesh.Element{Vertices: []int{0, 5}, Tag: 4}, out.Connectivity[mesh.Line][0])
	assert.Equal(t, 2, out.Connectivity[mesh.Hex][0].Vertices[0])
}

func TestExtractCompactsVertices(t *testing.T) {
	src := mesh.GetStandardTestMeshes().TwoRegion
	out, err := Extract(src, Selection{Boundaries: []string{"Top"}})
	require.NoError(t, err)
	require.NoError(t, out.Validate())

	// Top is {0,1,2} and {1,2,4}: vertex 4 becomes 3
	assert.Equal(t, []mesh.Coordinate{src.Coordinates[0], src.Coordinates[1], src.Coordinates[2],
		src.Coordinates[4]}, out.Coordinates)
	assert.Equal(t, []int{1, 2, 3}, out.Connectivity[mesh.Triangle][1].Vertices)
	assert.Equal(t, []int{0, 1, 2, 3}, out.Boundaries[0].Vertices)
	assert.Empty(t, out.Regions)
}

func TestExtractInSuccession(t *testing.T) {
	// Claiming Bottom leaves a hole in the source's facet tags; Top must
	// still be found by tag
	src := mesh.GetStandardTestMeshes().TwoRegion
	_, err := Extract(src, Selection{Boundaries: []string{"Bottom"}})
	require.NoError(t, err)

	out, err := Extract(src, Selection{Boundaries: []string{"Top"}})
	require.NoError(t, err)
	require.NoError(t, out.Validate())
	assert.Equal(t, []mesh.Element{
		{Vertices: []int{0, 1, 2}, Tag: 0},
		{Vertices: []int{1, 2, 3}, Tag: 1},
	}, out.Connectivity[mesh.Triangle])
	assert.Equal(t, []mesh.Boundary{{Name: "Top", Begin: 0, End: 2, Vertices: []int{0, 1, 2, 3}}},
		out.Boundaries)

	out, err = Extract(src, Selection{Regions: []string{"A"}, Boundaries: []string{"West"}, Wells: []string{"W1"}})
	require.NoError(t, err)
	require.NoError(t, out.Validate())
	assert.Equal(t, mesh.Boundary{Name: "West", Begin: 4, End: 7, Vertices: []int{0, 1, 3, 4, 5}},
		out.Boundaries[0])
	assert.Equal(t, []mesh.Element{{Vertices: []int{0, 5}, Tag: 7}}, out.Connectivity[mesh.Line])
	assert.Empty(t, src.Boundaries)
}

func TestExtractMissingTags(t *testing.T) {
	// A range whose rows are gone is rejected, not filled from its neighbours
	src := mesh.GetStandardTestMeshes().TwoRegion
	src.Connectivity[mesh.Quad] = src.Connectivity[mesh.Quad][1:]
	_, err := Extract(src, Selection{Boundaries: []string{"Bottom"}})
	assert.ErrorIs(t, err, mesh.ErrInvalidMesh)
	assert.Len(t, src.Boundaries, 3)
}

func TestExtractClaimsBoundary(t *testing.T) {
	src := mesh.GetStandardTestMeshes().TwoRegion
	nTri := len(src.Connectivity[mesh.Triangle])

	out, err := Extract(src, Selection{Regions: []string{"A"}, Boundaries: []string{"West"}})
	require.NoError(t, err)
	require.NoError(t, out.Validate())

	assert.Equal(t, mesh.Boundary{Name: "West", Begin: 4, End: 7, Vertices: []int{0, 1, 3, 4, 5}},
		out.Boundaries[0])
	assert.Equal(t, []string{"Bottom", "Top"}, src.BoundaryNames())
	assert.Len(t, src.Connectivity[mesh.Triangle], nTri-3)
	for _, el := range src.Connectivity[mesh.Triangle] {
		assert.NotContains(t, []int{10, 11, 12}, el.Tag)
	}
	// Quads and the other triangles survive
	assert.Len(t, src.Connectivity[mesh.Quad], 2)

	src.Compact()
	assert.NoError(t, src.Validate())
	assert.Equal(t, [2]int{10, 11}, [2]int{src.Wells[0].Begin, src.Wells[0].End})
}

func TestExtractNotFound(t *testing.T) {
	testCases := []struct {
		name    string
		sel     Selection
		kind    string
		closest string
	}{
		{"region", Selection{Regions: []string{"A", "Core"}}, "region", ""},
		{"boundary", Selection{Regions: []string{"A"}, Boundaries: []string{"Wset"}}, "boundary", "West"},
		{"well", Selection{Boundaries: []string{"West"}, Wells: []string{"W2"}}, "well", "W1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := mesh.GetStandardTestMeshes().TwoRegion
			before := src.Clone()

			out, err := Extract(src, tc.sel)
			assert.Nil(t, out)
			require.ErrorIs(t, err, mesh.ErrNotFound)
			var nf *mesh.NotFoundError
			require.True(t, errors.As(err, &nf))
			assert.Equal(t, tc.kind, nf.Kind)
			assert.Equal(t, tc.closest, nf.Closest)

			assert.Equal(t, before, src)
		})
	}
}

func TestExtractDimensionMismatch(t *testing.T) {
	src := mesh.GetStandardTestMeshes().Square2D
	_, err := Extract(src, Selection{Regions: []string{"Fluid"}})
	assert.ErrorIs(t, err, mesh.ErrDimensionMismatch)
}

func TestExtractUnsupportedCardinality(t *testing.T) {
	// West stretched over the W1 line
	src := mesh.GetStandardTestMeshes().TwoRegion
	src.Boundaries[2].End = 14
	before := src.Clone()
	_, err := Extract(src, Selection{Boundaries: []string{"West"}})
	assert.ErrorIs(t, err, mesh.ErrUnsupportedCardinality)
	assert.Equal(t, before, src)
}

func TestExtractDuplicateNames(t *testing.T) {
	src := mesh.GetStandardTestMeshes().TwoRegion
	out, err := Extract(src, Selection{Regions: []string{"A", "A"}})
	require.NoError(t, err)
	assert.Len(t, out.Regions, 1)
	assert.Len(t, out.Connectivity[mesh.Tet], 4)
}
