package mesh

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics(t *testing.T) {
	m := GetStandardTestMeshes().TwoRegion
	st := m.Statistics()

	assert.Equal(t, 3, st.Dimension)
	assert.Equal(t, 10, st.NumVertices)
	assert.Equal(t, [3]int{6, 7, 1}, [3]int{st.NumCells, st.NumFacets, st.NumLines})
	assert.Equal(t, 4, st.ShapeCounts[Tet])
	assert.Equal(t, 2, st.ShapeCounts[Hex])
	assert.Equal(t, 5, st.ShapeCounts[Triangle])
	assert.Equal(t, 0, st.ShapeCounts[Prism])
	assert.Equal(t, Coordinate{0, 0, 0}, st.Min)
	assert.Equal(t, Coordinate{2, 1, 1}, st.Max)
	assert.Equal(t, 3, st.MinValence)
	assert.Equal(t, 10, st.MaxValence)
	assert.Equal(t, 0, st.OrphanVertices)

	m.Coordinates = append(m.Coordinates, Coordinate{-1, 5, 0})
	st = m.Statistics()
	assert.Equal(t, 1, st.OrphanVertices)
	assert.Equal(t, 0, st.MinValence)
	assert.Equal(t, Coordinate{-1, 0, 0}, st.Min)
	assert.Equal(t, Coordinate{2, 5, 1}, st.Max)
}

func TestVertexIncidence(t *testing.T) {
	m := GetStandardTestMeshes().Square2D
	inc := m.VertexIncidence()
	require.NotNil(t, inc)
	r, c := inc.Dims()
	assert.Equal(t, [2]int{7, 6}, [2]int{r, c})
	assert.Equal(t, 1.0, inc.At(2, 5))
	assert.Equal(t, 0.0, inc.At(2, 0))

	assert.Nil(t, NewMesh(3).VertexIncidence())
}

func TestVertexIncidenceWithHoles(t *testing.T) {
	m := GetStandardTestMeshes().TwoRegion
	dropWest(m)
	inc := m.VertexIncidence()
	require.NotNil(t, inc)
	r, c := inc.Dims()
	assert.Equal(t, [2]int{14, 10}, [2]int{r, c})
	assert.Equal(t, 0.0, inc.At(11, 3))
	assert.Equal(t, 1.0, inc.At(13, 5))

	var st Statistics
	require.NotPanics(t, func() { st = m.Statistics() })
	assert.Equal(t, 1, st.NumLines)
	assert.Equal(t, 4, st.NumFacets)
}

func TestPrintStatistics(t *testing.T) {
	var buf bytes.Buffer
	GetStandardTestMeshes().Square2D.PrintStatistics(&buf)
	out := buf.String()
	assert.Contains(t, out, "Dimension: 2")
	assert.Contains(t, out, "Triangle: 2")
	assert.Contains(t, out, "Quad: 1")
	assert.Contains(t, out, "Wall")
	assert.Contains(t, out, "Probe")
	assert.Contains(t, out, "Orphan vertices: 0")
}
