package writers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/notargets/gridmend/cgnsdoc"
	"github.com/notargets/gridmend/mesh"
)

// Formats accepted by WriteMeshFileAs
const (
	FormatGmsh = "msh"
	FormatSU2  = "su2"
	FormatCGNS = "yaml"
	FormatJSON = "json"
)

// FormatOf returns the output format implied by a file extension
func FormatOf(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "yml" {
		return FormatCGNS
	}
	return ext
}

// WriteMeshFile writes a mesh file based on extension
func WriteMeshFile(filename string, m *mesh.Mesh) error {
	return WriteMeshFileAs(filename, m, FormatOf(filename))
}

// WriteMeshFileAs writes a mesh file in the given format, whatever the
// extension
func WriteMeshFileAs(filename string, m *mesh.Mesh, format string) (err error) {
	switch format {
	case FormatCGNS, FormatJSON:
		return cgnsdoc.WriteFile(filename, m)
	case FormatGmsh, FormatSU2:
	default:
		return fmt.Errorf("unsupported mesh format: %s", format)
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	if format == FormatGmsh {
		return WriteGmsh22(file, m)
	}
	return WriteSU2(file, m)
}
