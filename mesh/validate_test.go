package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tm := GetStandardTestMeshes()
	for name, m := range map[string]*Mesh{
		"TwoRegion": tm.TwoRegion,
		"Square2D":  tm.Square2D,
		"Segmented": tm.Segmented,
	} {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, m.Validate())
		})
	}
	assert.NoError(t, NewMesh(3).Validate())
}

func TestValidateRejects(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(m *Mesh)
		errMsg string
	}{
		{
			name:   "dimension",
			mutate: func(m *Mesh) { m.Dimension = 1 },
			errMsg: "dimension 1",
		},
		{
			name:   "vertex out of range",
			mutate: func(m *Mesh) { m.Connectivity[Tet][1].Vertices[2] = 10 },
			errMsg: "references vertex 10",
		},
		{
			name:   "short row",
			mutate: func(m *Mesh) { m.Connectivity[Hex][0].Vertices = []int{0, 1, 2, 3} },
			errMsg: "has 4 vertices, want 8",
		},
		{
			name:   "duplicate tag",
			mutate: func(m *Mesh) { m.Connectivity[Tet][1].Tag = 0 },
			errMsg: "tag 0 is used twice",
		},
		{
			name: "facet tag in the element space",
			mutate: func(m *Mesh) {
				m.Connectivity[Tet][0].Tag = 6
				m.Connectivity[Quad][0].Tag = 0
			},
			errMsg: "outside the facet space",
		},
		{
			name:   "region overlap",
			mutate: func(m *Mesh) { m.Regions[1].Begin = 3 },
			errMsg: "overlaps",
		},
		{
			name:   "region gap",
			mutate: func(m *Mesh) { m.Regions[0].End = 3 },
			errMsg: "uncovered",
		},
		{
			name:   "region spans into the facet space",
			mutate: func(m *Mesh) { m.Regions[1].End = 7 },
			errMsg: "leaves the element space",
		},
		{
			name:   "inverted boundary",
			mutate: func(m *Mesh) { m.Boundaries[1].Begin, m.Boundaries[1].End = 10, 8 },
			errMsg: "invalid range",
		},
		{
			name:   "boundary overlap",
			mutate: func(m *Mesh) { m.Boundaries[2].Begin = 9 },
			errMsg: "overlaps",
		},
		{
			name:   "well in the facet space",
			mutate: func(m *Mesh) { m.Wells[0].Begin = 12 },
			errMsg: "leaves the line space",
		},
		{
			name:   "well vertex",
			mutate: func(m *Mesh) { m.Wells[0].Vertices = []int{0, 42} },
			errMsg: "references vertex 42",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := GetStandardTestMeshes().TwoRegion
			tc.mutate(m)
			err := m.Validate()
			assert.ErrorIs(t, err, ErrInvalidMesh)
			assert.ErrorContains(t, err, tc.errMsg)
		})
	}
}

func TestValidate2DShapes(t *testing.T) {
	m := GetStandardTestMeshes().Square2D
	m.AddElement(Tet, []int{0, 1, 2, 3}, 7)
	assert.ErrorContains(t, m.Validate(), "Tet elements in a 2-D mesh")
}
