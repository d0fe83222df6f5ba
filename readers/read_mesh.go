package readers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/notargets/gridmend/cgnsdoc"
	"github.com/notargets/gridmend/mesh"
)

// ReadMeshFile reads a mesh file based on extension
func ReadMeshFile(filename string) (*mesh.Mesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".msh":
		return ReadGmsh22(filename)
	case ".su2":
		return ReadSU2(filename)
	case ".neu":
		return ReadGambitNeutral(filename)
	case ".yaml", ".yml", ".json":
		return cgnsdoc.ReadFile(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}
