package mesh

import (
	"fmt"
	"sort"
)

// GlobalConnectivity is the union of all buckets ordered by global tag, so
// that gc[i] is the row tagged i on a valid mesh
type GlobalConnectivity []Element

// GlobalConnectivity merges every bucket in BucketOrder and stable sorts the
// result by tag. Rows are deep copied; the mesh is not modified.
func (m *Mesh) GlobalConnectivity() GlobalConnectivity {
	gc := make(GlobalConnectivity, 0, m.NumTags())
	for _, et := range BucketOrder {
		for _, el := range m.Connectivity[et] {
			gc = append(gc, el.Clone())
		}
	}
	sort.SliceStable(gc, func(i, j int) bool { return gc[i].Tag < gc[j].Tag })
	return gc
}

// Slice returns the rows tagged [begin, end). Rows are located by tag, so a
// mesh left with holes by claimed boundaries still slices correctly, but
// every tag of the range must be present.
func (gc GlobalConnectivity) Slice(begin, end int) ([]Element, error) {
	if begin < 0 || end < begin {
		return nil, fmt.Errorf("invalid range [%d, %d): %w", begin, end, ErrInvalidMesh)
	}
	i := sort.Search(len(gc), func(k int) bool { return gc[k].Tag >= begin })
	j := i + end - begin
	if j > len(gc) || (end > begin && (gc[i].Tag != begin || gc[j-1].Tag != end-1)) {
		return nil, fmt.Errorf("tags [%d, %d) are not all present in the global connectivity: %w",
			begin, end, ErrInvalidMesh)
	}
	return gc[i:j], nil
}

// Space returns the rows of one index space of m
func (gc GlobalConnectivity) Space(m *Mesh, kind SpaceKind) ([]Element, error) {
	begin, end := m.IndexSpace(kind)
	return gc.Slice(begin, end)
}

// Compact renumbers the tags of the remaining rows densely, preserving their
// order, and shifts every region, boundary and well range to match. It is
// used after boundaries have been claimed out of a mesh, which leaves holes
// in the facet space.
func (m *Mesh) Compact() {
	var tags []int
	for _, bucket := range m.Connectivity {
		for _, el := range bucket {
			tags = append(tags, el.Tag)
		}
	}
	sort.Ints(tags)

	// rank is the number of surviving tags below t, i.e. t's new number
	rank := func(t int) int { return sort.SearchInts(tags, t) }

	for et := range m.Connectivity {
		for i := range m.Connectivity[et] {
			m.Connectivity[et][i].Tag = rank(m.Connectivity[et][i].Tag)
		}
	}
	for i, r := range m.Regions {
		m.Regions[i].Begin = rank(r.Begin)
		m.Regions[i].End = m.Regions[i].Begin + r.Len()
	}
	for i, b := range m.Boundaries {
		m.Boundaries[i].Begin = rank(b.Begin)
		m.Boundaries[i].End = m.Boundaries[i].Begin + b.Len()
	}
	for i, w := range m.Wells {
		m.Wells[i].Begin = rank(w.Begin)
		m.Wells[i].End = m.Wells[i].Begin + w.Len()
	}
}
