package mesh

import (
	"fmt"
	"sort"
)

// Validate checks the structural invariants of the mesh: row cardinality,
// vertex references, a dense tag space ordered cells, facets, lines, and
// named ranges that stay inside their own index space.
func (m *Mesh) Validate() (err error) {
	if m.Dimension != 2 && m.Dimension != 3 {
		return fmt.Errorf("dimension %d is not 2 or 3: %w", m.Dimension, ErrInvalidMesh)
	}
	nVerts := len(m.Coordinates)

	spaceOf := make(map[ElementType]SpaceKind)
	for _, et := range m.CellTypes() {
		spaceOf[et] = ElementSpace
	}
	for _, et := range m.FacetTypes() {
		spaceOf[et] = FacetSpace
	}
	for _, et := range m.LineTypes() {
		spaceOf[et] = LineSpace
	}

	total := m.NumTags()
	seen := make([]bool, total)
	for et, bucket := range m.Connectivity {
		if len(bucket) == 0 {
			continue
		}
		eType := ElementType(et)
		kind, ok := spaceOf[eType]
		if !ok {
			return fmt.Errorf("%s elements in a %d-D mesh: %w", eType, m.Dimension, ErrInvalidMesh)
		}
		sBegin, sEnd := m.IndexSpace(kind)
		for i, el := range bucket {
			if len(el.Vertices) != eType.GetNumNodes() {
				return fmt.Errorf("%s %d has %d vertices, want %d: %w",
					eType, i, len(el.Vertices), eType.GetNumNodes(), ErrInvalidMesh)
			}
			for _, v := range el.Vertices {
				if v < 0 || v >= nVerts {
					return fmt.Errorf("%s %d references vertex %d, mesh has %d: %w",
						eType, i, v, nVerts, ErrInvalidMesh)
				}
			}
			if el.Tag < 0 || el.Tag >= total {
				return fmt.Errorf("%s %d has tag %d outside [0, %d): %w",
					eType, i, el.Tag, total, ErrInvalidMesh)
			}
			if seen[el.Tag] {
				return fmt.Errorf("tag %d is used twice: %w", el.Tag, ErrInvalidMesh)
			}
			seen[el.Tag] = true
			if el.Tag < sBegin || el.Tag >= sEnd {
				return fmt.Errorf("%s %d has tag %d outside the %s space [%d, %d): %w",
					eType, i, el.Tag, kind, sBegin, sEnd, ErrInvalidMesh)
			}
		}
	}
	// total tags over total rows, all unique, so the space is dense

	type span struct {
		name       string
		begin, end int
	}
	checkSpans := func(what string, kind SpaceKind, spans []span, disjoint, cover bool) error {
		sBegin, sEnd := m.IndexSpace(kind)
		for _, s := range spans {
			if s.begin < 0 || s.end < s.begin {
				return fmt.Errorf("%s %q has invalid range [%d, %d): %w",
					what, s.name, s.begin, s.end, ErrInvalidMesh)
			}
			if s.begin == s.end {
				continue
			}
			if s.begin < sBegin || s.end > sEnd {
				return fmt.Errorf("%s %q range [%d, %d) leaves the %s space [%d, %d): %w",
					what, s.name, s.begin, s.end, kind, sBegin, sEnd, ErrInvalidMesh)
			}
		}
		if !disjoint {
			return nil
		}
		sorted := append([]span(nil), spans...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].begin < sorted[j].begin })
		covered := sBegin
		for i, s := range sorted {
			if s.begin == s.end {
				continue
			}
			if i > 0 && s.begin < covered {
				return fmt.Errorf("%s %q range [%d, %d) overlaps another %s: %w",
					what, s.name, s.begin, s.end, what, ErrInvalidMesh)
			}
			if cover && s.begin != covered {
				return fmt.Errorf("%s ranges leave [%d, %d) uncovered: %w",
					what, covered, s.begin, ErrInvalidMesh)
			}
			covered = s.end
		}
		if cover && covered != sEnd {
			return fmt.Errorf("%s ranges leave [%d, %d) uncovered: %w",
				what, covered, sEnd, ErrInvalidMesh)
		}
		return nil
	}
	checkRefs := func(what, name string, verts []int) error {
		for _, v := range verts {
			if v < 0 || v >= nVerts {
				return fmt.Errorf("%s %q references vertex %d, mesh has %d: %w",
					what, name, v, nVerts, ErrInvalidMesh)
			}
		}
		return nil
	}

	var spans []span
	for _, r := range m.Regions {
		spans = append(spans, span{r.Name, r.Begin, r.End})
	}
	if err = checkSpans("region", ElementSpace, spans, true, true); err != nil {
		return
	}
	spans = spans[:0]
	for _, b := range m.Boundaries {
		if err = checkRefs("boundary", b.Name, b.Vertices); err != nil {
			return
		}
		spans = append(spans, span{b.Name, b.Begin, b.End})
	}
	if err = checkSpans("boundary", FacetSpace, spans, true, false); err != nil {
		return
	}
	spans = spans[:0]
	for _, w := range m.Wells {
		if err = checkRefs("well", w.Name, w.Vertices); err != nil {
			return
		}
		spans = append(spans, span{w.Name, w.Begin, w.End})
	}
	return checkSpans("well", LineSpace, spans, false, false)
}
