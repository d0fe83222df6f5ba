package mesh

import (
	"fmt"
)

// SectionKind tells which kind of named entity a section was planned from
type SectionKind int

const (
	RegionSection SectionKind = iota
	BoundarySection
	WellSection
)

func (k SectionKind) String() string {
	return [...]string{"region", "boundary", "well"}[k]
}

// SectionMode is the encoding chosen for one section
type SectionMode int

const (
	// Homogeneous sections hold one shape and a flat vertex list
	Homogeneous SectionMode = iota
	// Mixed sections carry a shape discriminator per row
	Mixed
)

func (m SectionMode) String() string {
	return [...]string{"Homogeneous", "Mixed"}[m]
}

// Section is the planner's decision for one contiguous range of rows.
// [Begin, End) is the section's position in the output element numbering.
type Section struct {
	Name       string
	Kind       SectionKind
	Mode       SectionMode
	Shape      ElementType   // Valid when Mode == Homogeneous
	Shapes     []ElementType // One per row when Mode == Mixed
	Begin, End int
	Rows       [][]int
}

// Len returns the number of rows in the section
func (s Section) Len() int { return s.End - s.Begin }

// Flatten returns the section connectivity as one array. Each vertex id is
// shifted by offset; Mixed sections prefix every row with code(shape).
func (s Section) Flatten(code func(ElementType) int, offset int) []int {
	var flat []int
	for i, row := range s.Rows {
		if s.Mode == Mixed {
			flat = append(flat, code(s.Shapes[i]))
		}
		for _, v := range row {
			flat = append(flat, v+offset)
		}
	}
	return flat
}

// CandidateShapes returns the shapes valid in a section context
func CandidateShapes(dimension int, kind SectionKind) []ElementType {
	switch {
	case kind == WellSection:
		return []ElementType{Line}
	case dimension == 2 && kind == RegionSection:
		return []ElementType{Triangle, Quad}
	case dimension == 2:
		return []ElementType{Line}
	case kind == RegionSection:
		return []ElementType{Tet, Hex, Prism, Pyramid}
	default:
		return []ElementType{Triangle, Quad}
	}
}

// ShapeOf infers a row's shape from its vertex count among the candidates
func ShapeOf(numVertices int, candidates []ElementType) (ElementType, bool) {
	for _, et := range candidates {
		if et.GetNumNodes() == numVertices {
			return et, true
		}
	}
	return 0, false
}

// PlanSection decides how one range of rows is encoded. The section starts
// at cursor and the returned cursor is the start of the next section; it
// always advances by len(rows), whatever the mode.
func PlanSection(name string, kind SectionKind, rows []Element, candidates []ElementType,
	cursor int) (s Section, next int, err error) {
	s = Section{
		Name:  name,
		Kind:  kind,
		Begin: cursor,
		End:   cursor + len(rows),
		Rows:  make([][]int, len(rows)),
	}
	for i, el := range rows {
		s.Rows[i] = el.Vertices
	}
	next = s.End

	if len(rows) == 0 {
		err = fmt.Errorf("%s %q has no rows to plan", kind, name)
		return
	}

	homogeneous := true
	for _, el := range rows[1:] {
		if len(el.Vertices) != len(rows[0].Vertices) {
			homogeneous = false
			break
		}
	}
	if homogeneous {
		shape, ok := ShapeOf(len(rows[0].Vertices), candidates)
		if !ok {
			err = fmt.Errorf("%s %q: %d vertices per row match none of %v: %w",
				kind, name, len(rows[0].Vertices), candidates, ErrUnsupportedCardinality)
			return
		}
		s.Mode, s.Shape = Homogeneous, shape
		return
	}

	s.Mode = Mixed
	s.Shapes = make([]ElementType, len(rows))
	for i, el := range rows {
		shape, ok := ShapeOf(len(el.Vertices), candidates)
		if !ok {
			err = fmt.Errorf("%s %q row %d: %d vertices match none of %v: %w",
				kind, name, i, len(el.Vertices), candidates, ErrUnsupportedCardinality)
			return
		}
		s.Shapes[i] = shape
	}
	return
}

// PlanSections plans every region, then every boundary, then every well, in
// list order, threading the output cursor from one section to the next.
// Empty ranges, such as node-only wells, produce no section.
func (m *Mesh) PlanSections(gc GlobalConnectivity) (sections []Section, err error) {
	type entry struct {
		name       string
		kind       SectionKind
		begin, end int
	}
	var entries []entry
	for _, r := range m.Regions {
		entries = append(entries, entry{r.Name, RegionSection, r.Begin, r.End})
	}
	for _, b := range m.Boundaries {
		entries = append(entries, entry{b.Name, BoundarySection, b.Begin, b.End})
	}
	for _, w := range m.Wells {
		entries = append(entries, entry{w.Name, WellSection, w.Begin, w.End})
	}

	cursor := 0
	for _, e := range entries {
		if e.end == e.begin {
			continue
		}
		var (
			rows []Element
			s    Section
		)
		if rows, err = gc.Slice(e.begin, e.end); err != nil {
			return nil, fmt.Errorf("%s %q: %w", e.kind, e.name, err)
		}
		if s, cursor, err = PlanSection(e.name, e.kind, rows, CandidateShapes(m.Dimension, e.kind), cursor); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return
}
