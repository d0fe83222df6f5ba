package cgnsdoc

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ghodss/yaml"
	"github.com/notargets/gridmend/mesh"
)

// Read decodes a YAML or JSON document into a validated mesh
func Read(r io.Reader) (*mesh.Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Mesh()
}

// ReadFile reads a document from disk
func ReadFile(path string) (*mesh.Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Mesh rebuilds the mesh held by the document. Sections are classified by
// shape dimension and numbered regions first, then boundaries, then wells,
// each group in document order.
func (doc *Document) Mesh() (m *mesh.Mesh, err error) {
	var lay layout
	if lay, err = layoutFor(doc.Base.CellDimension); err != nil {
		return
	}
	z := &doc.Base.Zone
	m = mesh.NewMesh(doc.Base.CellDimension)
	if m.Coordinates, err = lay.readCoordinates(z); err != nil {
		return nil, err
	}
	if err = lay.readSections(z, m); err != nil {
		return nil, err
	}
	m.DeriveVertexLists()
	if err = readZoneBC(z, m); err != nil {
		return nil, err
	}
	if err = m.Validate(); err != nil {
		return nil, err
	}
	if z.CellSize != m.NumCells() {
		return nil, fmt.Errorf("zone CellSize %d, sections hold %d cells: %w", z.CellSize, m.NumCells(), mesh.ErrInvalidMesh)
	}
	return m, nil
}

type parsedSection struct {
	name   string
	shapes []mesh.ElementType
	rows   [][]int
}

// readSections rebuilds the element buckets. classify maps a shape
// dimension to the kind of entity its sections form.
func readSections(z *Zone, m *mesh.Mesh, classify func(dim int) (mesh.SectionKind, bool)) error {
	var (
		byKind    [3][]parsedSection
		nodeWells []mesh.Well
		cursor    int
	)
	for _, es := range z.Elements {
		code, ok := typeCodeOf(es.ElementType)
		if !ok {
			return fmt.Errorf("section %q: unknown element type %s: %w",
				es.Name, es.ElementType, mesh.ErrUnsupportedCardinality)
		}
		first, last := es.ElementRange[0], es.ElementRange[1]
		if first != cursor+1 || last < first {
			return fmt.Errorf("section %q: element range [%d, %d] does not continue from %d: %w",
				es.Name, first, last, cursor, mesh.ErrInvalidMesh)
		}
		cursor = last
		count := last - first + 1

		if code == NODE {
			if m.Dimension != 2 {
				return fmt.Errorf("section %q: NODE section in a %d-D zone: %w",
					es.Name, m.Dimension, mesh.ErrDimensionMismatch)
			}
			if len(es.ElementConnectivity) != count {
				return fmt.Errorf("section %q: %d nodes for a range of %d: %w",
					es.Name, len(es.ElementConnectivity), count, mesh.ErrInvalidMesh)
			}
			verts := make([]int, count)
			for i, v := range es.ElementConnectivity {
				verts[i] = v - 1
			}
			nodeWells = append(nodeWells, mesh.Well{Name: es.Name, Vertices: verts})
			continue
		}

		ps, err := splitConnectivity(es, code, count)
		if err != nil {
			return err
		}
		dim := ps.shapes[0].GetDimension()
		for _, et := range ps.shapes {
			if et.GetDimension() != dim {
				return fmt.Errorf("section %q mixes %s and %s: %w",
					es.Name, ps.shapes[0], et, mesh.ErrUnsupportedCardinality)
			}
		}
		kind, ok := classify(dim)
		if !ok {
			return fmt.Errorf("section %q: %s elements in a %d-D zone: %w",
				es.Name, ps.shapes[0], m.Dimension, mesh.ErrDimensionMismatch)
		}
		byKind[kind] = append(byKind[kind], ps)
	}

	tag := 0
	for kind, sections := range byKind {
		for _, ps := range sections {
			begin := tag
			for i, row := range ps.rows {
				m.AddElement(ps.shapes[i], row, tag)
				tag++
			}
			switch mesh.SectionKind(kind) {
			case mesh.RegionSection:
				m.Regions = append(m.Regions, mesh.Region{Name: ps.name, Begin: begin, End: tag})
			case mesh.BoundarySection:
				m.Boundaries = append(m.Boundaries, mesh.Boundary{Name: ps.name, Begin: begin, End: tag})
			case mesh.WellSection:
				m.Wells = append(m.Wells, mesh.Well{Name: ps.name, Begin: begin, End: tag})
			}
		}
	}
	for _, w := range nodeWells {
		w.Begin, w.End = tag, tag
		m.Wells = append(m.Wells, w)
	}
	return nil
}

// splitConnectivity cuts a flat 1-based connectivity into 0-based rows
func splitConnectivity(es ElementsSection, code, count int) (ps parsedSection, err error) {
	ps.name = es.Name
	conn := es.ElementConnectivity
	row := func(pos, n int) []int {
		r := make([]int, n)
		for i := range r {
			r[i] = conn[pos+i] - 1
		}
		return r
	}
	if code != MIXED {
		et, ok := shapeOf(code)
		if !ok {
			return ps, fmt.Errorf("section %q: element type %s: %w", es.Name, TypeName(code), mesh.ErrUnsupportedCardinality)
		}
		n := et.GetNumNodes()
		if len(conn) != count*n {
			return ps, fmt.Errorf("section %q: %d connectivity values for %d %s elements: %w",
				es.Name, len(conn), count, TypeName(code), mesh.ErrInvalidMesh)
		}
		for i := 0; i < count; i++ {
			ps.shapes = append(ps.shapes, et)
			ps.rows = append(ps.rows, row(i*n, n))
		}
		return
	}
	for pos := 0; pos < len(conn); {
		et, ok := shapeOf(conn[pos])
		if !ok {
			return ps, fmt.Errorf("section %q: MIXED entry type %d: %w", es.Name, conn[pos], mesh.ErrUnsupportedCardinality)
		}
		n := et.GetNumNodes()
		if pos+1+n > len(conn) {
			return ps, fmt.Errorf("section %q: truncated MIXED connectivity: %w", es.Name, mesh.ErrInvalidMesh)
		}
		ps.shapes = append(ps.shapes, et)
		ps.rows = append(ps.rows, row(pos+1, n))
		pos += 1 + n
	}
	if len(ps.rows) != count {
		return ps, fmt.Errorf("section %q: %d MIXED elements for a range of %d: %w",
			es.Name, len(ps.rows), count, mesh.ErrInvalidMesh)
	}
	return
}

// readZoneBC replaces derived boundary vertex lists with stored point lists
func readZoneBC(z *Zone, m *mesh.Mesh) error {
	for _, bc := range z.ZoneBC {
		name := bc.FamilyName
		if name == "" {
			name = bc.Name
		}
		i := m.FindBoundary(name)
		if i < 0 {
			return mesh.NewNotFoundError("boundary", name, m.BoundaryNames())
		}
		verts := make([]int, len(bc.PointList))
		for j, p := range bc.PointList {
			verts[j] = p - 1
		}
		sort.Ints(verts)
		m.Boundaries[i].Vertices = verts
	}
	return nil
}
