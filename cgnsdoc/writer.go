package cgnsdoc

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/notargets/gridmend/mesh"
)

// NewDocument lays out m as a CGNS zone. Element sections follow the
// section plan: regions, boundaries and wells in mesh order, each one a
// homogeneous or MIXED section.
func NewDocument(m *mesh.Mesh, name string) (doc *Document, err error) {
	var lay layout
	if lay, err = layoutFor(m.Dimension); err != nil {
		return
	}
	doc = &Document{Base: Base{
		Name:              name,
		CellDimension:     m.Dimension,
		PhysicalDimension: m.Dimension,
		Zone: Zone{
			Name:       "Zone",
			ZoneType:   ZoneTypeUnstructured,
			VertexSize: len(m.Coordinates),
			CellSize:   m.NumCells(),
		},
	}}
	z := &doc.Base.Zone
	lay.writeCoordinates(z, m.Coordinates)
	if err = lay.writeSections(z, m); err != nil {
		return nil, err
	}
	writeZoneBC(z, m)
	return
}

func writePlannedSections(z *Zone, m *mesh.Mesh) error {
	sections, err := m.PlanSections(m.GlobalConnectivity())
	if err != nil {
		return err
	}
	for _, s := range sections {
		typeName := TypeName(MIXED)
		if s.Mode == mesh.Homogeneous {
			typeName = TypeName(TypeCode(s.Shape))
		}
		z.Elements = append(z.Elements, ElementsSection{
			Name:                s.Name,
			ElementType:         typeName,
			ElementRange:        [2]int{s.Begin + 1, s.End},
			ElementConnectivity: s.Flatten(TypeCode, 1),
		})
	}
	return nil
}

func writeZoneBC(z *Zone, m *mesh.Mesh) {
	for _, b := range m.Boundaries {
		verts := b.Vertices
		if verts == nil {
			verts = m.BoundaryVertices(b)
		}
		points := make([]int, len(verts))
		for i, v := range verts {
			points[i] = v + 1
		}
		z.ZoneBC = append(z.ZoneBC, BC{
			Name:         b.Name,
			BCType:       BCWall,
			GridLocation: GridLocationVertex,
			FamilyName:   b.Name,
			PointList:    points,
		})
	}
}

// Write encodes m as a YAML document
func Write(w io.Writer, m *mesh.Mesh, name string) error {
	doc, err := NewDocument(m, name)
	if err != nil {
		return err
	}
	b, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// WriteFile writes m to path, as JSON for a ".json" extension and YAML
// otherwise. The base is named after the file.
func WriteFile(path string, m *mesh.Mesh) (err error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc, err := NewDocument(m, name)
	if err != nil {
		return err
	}
	var b []byte
	if strings.EqualFold(filepath.Ext(path), ".json") {
		b, err = json.MarshalIndent(doc, "", "  ")
	} else {
		b, err = yaml.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return os.WriteFile(path, b, 0644)
}
