package writers

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notargets/gridmend/mesh"
	"github.com/notargets/gridmend/readers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteGmsh22(t *testing.T) {
	m := mesh.GetStandardTestMeshes().Square2D
	var buf bytes.Buffer
	require.NoError(t, WriteGmsh22(&buf, m))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n"))
	assert.Contains(t, out, "$PhysicalNames\n5\n2 1 \"Fluid\"\n1 2 \"Wall\"\n")
	assert.Contains(t, out, "0 5 \"Probe\"\n")
	assert.Contains(t, out, "$Nodes\n6\n1 0 0 0\n2 1 0 0\n")
	assert.Contains(t, out, "$Elements\n8\n1 2 2 1 1 1 2 5\n")
	assert.Contains(t, out, "3 3 2 1 1 2 3 6 5\n")
	assert.Contains(t, out, "8 15 2 5 5 5\n$EndElements\n")
}

func TestRoundTrip(t *testing.T) {
	tm := mesh.GetStandardTestMeshes()
	testCases := []struct {
		name string
		m    *mesh.Mesh
		ext  string
	}{
		{"TwoRegion", tm.TwoRegion, ".msh"},
		{"Square2D", tm.Square2D, ".msh"},
		{"Segmented", tm.Segmented, ".msh"},
		{"TwoRegion", tm.TwoRegion, ".yaml"},
		{"Square2D", tm.Square2D, ".yml"},
		{"Segmented", tm.Segmented, ".json"},
	}
	for _, tc := range testCases {
		t.Run(tc.name+tc.ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.name+tc.ext)
			require.NoError(t, WriteMeshFile(path, tc.m))
			got, err := readers.ReadMeshFile(path)
			require.NoError(t, err)

			assert.Equal(t, tc.m.Coordinates, got.Coordinates)
			assert.Equal(t, tc.m.GlobalConnectivity(), got.GlobalConnectivity())
			assert.Equal(t, tc.m.Regions, got.Regions)
			assert.Equal(t, tc.m.Boundaries, got.Boundaries)
			assert.Equal(t, tc.m.Wells, got.Wells)
		})
	}
}

func TestRoundTripSU2(t *testing.T) {
	// SU2 keeps a single region and no wells
	m := mesh.GetStandardTestMeshes().Square2D
	path := filepath.Join(t.TempDir(), "square.su2")
	require.NoError(t, WriteMeshFile(path, m))
	got, err := readers.ReadMeshFile(path)
	require.NoError(t, err)

	assert.Equal(t, m.Coordinates, got.Coordinates)
	assert.Equal(t, m.GlobalConnectivity(), got.GlobalConnectivity())
	assert.Equal(t, []mesh.Region{{Name: readers.SU2Region, Begin: 0, End: 3}}, got.Regions)
	assert.Equal(t, m.Boundaries, got.Boundaries)
	assert.Empty(t, got.Wells)
}

func TestWriteMeshFileAs(t *testing.T) {
	m := mesh.GetStandardTestMeshes().TwoRegion
	path := filepath.Join(t.TempDir(), "mesh.out")
	require.NoError(t, WriteMeshFileAs(path, m, FormatGmsh))
	got, err := readers.ReadGmsh22(path)
	require.NoError(t, err)
	assert.Equal(t, m.RegionNames(), got.RegionNames())

	assert.EqualError(t, WriteMeshFile(filepath.Join(t.TempDir(), "mesh.vtk"), m),
		"unsupported mesh format: vtk")
	assert.Equal(t, FormatCGNS, FormatOf("a/b.YML"))
}
