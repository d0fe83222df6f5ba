package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/notargets/gridmend/mesh"
	"github.com/notargets/gridmend/readers"
	"github.com/notargets/gridmend/writers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes a subcommand with the persistent flags reset, returning what
// it printed
func run(t *testing.T, sub string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	full := append([]string{sub, "--format=", "--outputDir=", "--profile=", "--validate=true", "--verbose=false"}, args...)
	if sub == "extract" {
		full = append([]string{sub, "--remainder="}, full[1:]...)
	}
	rootCmd.SetArgs(full)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFixture(t *testing.T, name string, m *mesh.Mesh) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, writers.WriteMeshFile(path, m))
	return path
}

func TestConvert(t *testing.T) {
	m := mesh.GetStandardTestMeshes().Square2D
	in := writeFixture(t, "square.msh", m)
	dir := t.TempDir()

	out := filepath.Join(dir, "square.yaml")
	_, err := run(t, "convert", in, out)
	require.NoError(t, err)
	got, err := readers.ReadMeshFile(out)
	require.NoError(t, err)
	assert.Equal(t, m.Regions, got.Regions)
	assert.Equal(t, m.Wells, got.Wells)

	_, err = run(t, "convert", in, "square.dat", "--format", writers.FormatSU2, "--outputDir", dir)
	require.NoError(t, err)
	got, err = readers.ReadSU2(filepath.Join(dir, "square.dat"))
	require.NoError(t, err)
	assert.Equal(t, m.Boundaries, got.Boundaries)

	_, err = run(t, "convert", in, filepath.Join(dir, "square.vtk"))
	assert.EqualError(t, err, "unsupported mesh format: vtk")
}

func TestExtract(t *testing.T) {
	in := writeFixture(t, "two.msh", mesh.GetStandardTestMeshes().TwoRegion)
	dir := t.TempDir()
	script := filepath.Join(dir, "selection.yaml")
	require.NoError(t, os.WriteFile(script, []byte("regions: [A]\nboundaries: [West]\n"), 0644))

	out := filepath.Join(dir, "block.yaml")
	rest := filepath.Join(dir, "rest.msh")
	_, err := run(t, "extract", in, script, out, "--remainder", rest)
	require.NoError(t, err)

	sub, err := readers.ReadMeshFile(out)
	require.NoError(t, err)
	assert.Equal(t, []mesh.Region{{Name: "A", Begin: 0, End: 4}}, sub.Regions)
	assert.Equal(t, []string{"West"}, sub.BoundaryNames())
	assert.Len(t, sub.Coordinates, 6)

	remainder, err := readers.ReadMeshFile(rest)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bottom", "Top"}, remainder.BoundaryNames())
	assert.Equal(t, 4, remainder.NumFacets())
	assert.Equal(t, []string{"A", "B"}, remainder.RegionNames())
}

func TestExtractErrors(t *testing.T) {
	dir := t.TempDir()
	in3D := writeFixture(t, "two.msh", mesh.GetStandardTestMeshes().TwoRegion)
	in2D := writeFixture(t, "square.msh", mesh.GetStandardTestMeshes().Square2D)
	script := filepath.Join(dir, "selection.toml")
	require.NoError(t, os.WriteFile(script, []byte("regions = [\"Fluid\"]\n"), 0644))
	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("{}"), 0644))

	_, err := run(t, "extract", in2D, script, filepath.Join(dir, "out.msh"))
	assert.ErrorIs(t, err, mesh.ErrDimensionMismatch)

	_, err = run(t, "extract", in3D, script, filepath.Join(dir, "out.msh"))
	assert.ErrorIs(t, err, mesh.ErrNotFound)

	_, err = run(t, "extract", in3D, empty, filepath.Join(dir, "out.msh"))
	assert.ErrorContains(t, err, "names nothing")
	assert.NoFileExists(t, filepath.Join(dir, "out.msh"))
}

func TestSegment(t *testing.T) {
	in := writeFixture(t, "pipe.msh", mesh.GetStandardTestMeshes().Segmented)
	out := filepath.Join(t.TempDir(), "template.msh")
	_, err := run(t, "segment", in, out)
	require.NoError(t, err)

	seg, err := readers.ReadMeshFile(out)
	require.NoError(t, err)
	assert.Equal(t, 3, seg.NumCells())
	assert.Len(t, seg.Coordinates, 12)
	assert.Len(t, seg.Wells, 1)

	_, err = run(t, "segment", writeFixture(t, "two.msh", mesh.GetStandardTestMeshes().TwoRegion), out)
	assert.ErrorIs(t, err, mesh.ErrInvalidTopology)
}

func TestInfo(t *testing.T) {
	in := writeFixture(t, "square.yaml", mesh.GetStandardTestMeshes().Square2D)
	out, err := run(t, "info", in)
	require.NoError(t, err)
	assert.Contains(t, out, "Mesh Statistics:\n  Dimension: 2\n  Vertices: 6\n")
	assert.Contains(t, out, "Fluid")
	assert.Contains(t, out, "Probe")

	_, err = run(t, "info", in, "--profile", "disk")
	assert.EqualError(t, err, `unknown profile "disk", want cpu or mem`)
}
