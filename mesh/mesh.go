package mesh

import (
	"sort"
)

// ElementType represents the supported linear element shapes
type ElementType int

const (
	Line ElementType = iota
	Triangle
	Quad
	Tet
	Hex
	Prism
	Pyramid
	NumElementTypes
)

func (e ElementType) String() string {
	if e < 0 || e >= NumElementTypes {
		return "Invalid"
	}
	return [...]string{"Line", "Triangle", "Quad", "Tet", "Hex", "Prism", "Pyramid"}[e]
}

// GetNumNodes returns the number of vertices of each element type
func (e ElementType) GetNumNodes() int {
	switch e {
	case Line:
		return 2
	case Triangle:
		return 3
	case Quad:
		return 4
	case Tet:
		return 4
	case Hex:
		return 8
	case Prism:
		return 6
	case Pyramid:
		return 5
	default:
		return 0
	}
}

// GetDimension returns the topological dimension of the element
func (e ElementType) GetDimension() int {
	switch e {
	case Line:
		return 1
	case Triangle, Quad:
		return 2
	case Tet, Hex, Prism, Pyramid:
		return 3
	default:
		return -1
	}
}

// BucketOrder is the fixed order in which buckets are concatenated when
// global tags are assigned: volumes, then facets, then lines.
var BucketOrder = [NumElementTypes]ElementType{Tet, Hex, Prism, Pyramid, Triangle, Quad, Line}

// Coordinate is a vertex position, always stored with three components
type Coordinate [3]float64

// Element is one connectivity row together with its global tag. The tag is
// a correlation key only and never a vertex reference.
type Element struct {
	Vertices []int
	Tag      int
}

// Clone returns a deep copy of the element
func (el Element) Clone() Element {
	verts := make([]int, len(el.Vertices))
	copy(verts, el.Vertices)
	return Element{Vertices: verts, Tag: el.Tag}
}

// Region is a named, half-open range [Begin, End) of the element space
type Region struct {
	Name       string
	Begin, End int
}

// Boundary is a named, half-open range [Begin, End) of the facet space.
// Vertices holds the distinct vertex ids referenced by its facets.
type Boundary struct {
	Name       string
	Begin, End int
	Vertices   []int
}

// Well is a named, half-open range [Begin, End) of the line space. Vertices
// holds optional node references; a node-only well has Begin == End.
type Well struct {
	Name       string
	Begin, End int
	Vertices   []int
}

// Len returns the number of rows covered by the range
func (r Region) Len() int   { return r.End - r.Begin }
func (b Boundary) Len() int { return b.End - b.Begin }
func (w Well) Len() int     { return w.End - w.Begin }

// Mesh is the in-memory grid: coordinates, shape bucketed connectivity and
// the named regions, boundaries and wells indexing into the global tag space
type Mesh struct {
	Dimension   int
	Coordinates []Coordinate

	// Connectivity holds one bucket of rows per element type, indexed by ElementType
	Connectivity [NumElementTypes][]Element

	Regions    []Region
	Boundaries []Boundary
	Wells      []Well
}

// NewMesh creates an empty mesh of the given dimension
func NewMesh(dimension int) *Mesh {
	return &Mesh{Dimension: dimension}
}

// Bucket returns the rows stored for one element type
func (m *Mesh) Bucket(et ElementType) []Element {
	return m.Connectivity[et]
}

// AddElement appends a row to the bucket of its element type
func (m *Mesh) AddElement(et ElementType, vertices []int, tag int) {
	m.Connectivity[et] = append(m.Connectivity[et], Element{Vertices: vertices, Tag: tag})
}

// CellTypes returns the element types forming regions for the mesh dimension
func (m *Mesh) CellTypes() []ElementType {
	if m.Dimension == 2 {
		return []ElementType{Triangle, Quad}
	}
	return []ElementType{Tet, Hex, Prism, Pyramid}
}

// FacetTypes returns the element types forming boundaries for the mesh dimension
func (m *Mesh) FacetTypes() []ElementType {
	if m.Dimension == 2 {
		return []ElementType{Line}
	}
	return []ElementType{Triangle, Quad}
}

// LineTypes returns the element types forming wells for the mesh dimension
func (m *Mesh) LineTypes() []ElementType {
	if m.Dimension == 2 {
		return nil
	}
	return []ElementType{Line}
}

func (m *Mesh) countOf(types []ElementType) (n int) {
	for _, et := range types {
		n += len(m.Connectivity[et])
	}
	return
}

// NumCells, NumFacets and NumLines return the size of each index space
func (m *Mesh) NumCells() int  { return m.countOf(m.CellTypes()) }
func (m *Mesh) NumFacets() int { return m.countOf(m.FacetTypes()) }
func (m *Mesh) NumLines() int  { return m.countOf(m.LineTypes()) }

// NumTags returns the extent of the global tag space
func (m *Mesh) NumTags() (n int) {
	for _, bucket := range m.Connectivity {
		n += len(bucket)
	}
	return
}

// SpaceKind identifies one of the three index spaces
type SpaceKind int

const (
	ElementSpace SpaceKind = iota
	FacetSpace
	LineSpace
)

func (s SpaceKind) String() string {
	return [...]string{"element", "facet", "line"}[s]
}

// IndexSpace returns the half-open global tag range occupied by an index space
func (m *Mesh) IndexSpace(kind SpaceKind) (begin, end int) {
	nCells, nFacets, nLines := m.NumCells(), m.NumFacets(), m.NumLines()
	switch kind {
	case ElementSpace:
		return 0, nCells
	case FacetSpace:
		return nCells, nCells + nFacets
	default:
		return nCells + nFacets, nCells + nFacets + nLines
	}
}

// FindRegion returns the index of the named region, or -1
func (m *Mesh) FindRegion(name string) int {
	for i, r := range m.Regions {
		if r.Name == name {
			return i
		}
	}
	return -1
}

// FindBoundary returns the index of the named boundary, or -1
func (m *Mesh) FindBoundary(name string) int {
	for i, b := range m.Boundaries {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// FindWell returns the index of the named well, or -1
func (m *Mesh) FindWell(name string) int {
	for i, w := range m.Wells {
		if w.Name == name {
			return i
		}
	}
	return -1
}

// RegionNames, BoundaryNames and WellNames list entity names in mesh order
func (m *Mesh) RegionNames() (names []string) {
	for _, r := range m.Regions {
		names = append(names, r.Name)
	}
	return
}

func (m *Mesh) BoundaryNames() (names []string) {
	for _, b := range m.Boundaries {
		names = append(names, b.Name)
	}
	return
}

func (m *Mesh) WellNames() (names []string) {
	for _, w := range m.Wells {
		names = append(names, w.Name)
	}
	return
}

// BoundaryVertices derives the sorted distinct vertex set of the facets whose
// tags fall in the boundary range
func (m *Mesh) BoundaryVertices(b Boundary) []int {
	return m.rangeVertices(m.FacetTypes(), b.Begin, b.End)
}

// WellVertices derives the sorted distinct vertex set of a well's lines
func (m *Mesh) WellVertices(w Well) []int {
	return m.rangeVertices(m.LineTypes(), w.Begin, w.End)
}

func (m *Mesh) rangeVertices(types []ElementType, begin, end int) []int {
	seen := make(map[int]struct{})
	for _, et := range types {
		for _, el := range m.Connectivity[et] {
			if el.Tag < begin || el.Tag >= end {
				continue
			}
			for _, v := range el.Vertices {
				seen[v] = struct{}{}
			}
		}
	}
	verts := make([]int, 0, len(seen))
	for v := range seen {
		verts = append(verts, v)
	}
	sort.Ints(verts)
	return verts
}

// Clone returns a deep copy of the mesh
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{Dimension: m.Dimension}
	c.Coordinates = make([]Coordinate, len(m.Coordinates))
	copy(c.Coordinates, m.Coordinates)
	for et, bucket := range m.Connectivity {
		if bucket == nil {
			continue
		}
		c.Connectivity[et] = make([]Element, len(bucket))
		for i, el := range bucket {
			c.Connectivity[et][i] = el.Clone()
		}
	}
	c.Regions = append([]Region(nil), m.Regions...)
	for _, b := range m.Boundaries {
		b.Vertices = append([]int(nil), b.Vertices...)
		c.Boundaries = append(c.Boundaries, b)
	}
	for _, w := range m.Wells {
		w.Vertices = append([]int(nil), w.Vertices...)
		c.Wells = append(c.Wells, w)
	}
	return c
}

// DeriveVertexLists sets the Vertices of every boundary, and of every well
// that covers lines, from the rows in their ranges. Node-only wells keep
// their explicit references.
func (m *Mesh) DeriveVertexLists() {
	for i, b := range m.Boundaries {
		m.Boundaries[i].Vertices = m.BoundaryVertices(b)
	}
	for i, w := range m.Wells {
		if w.Len() > 0 {
			m.Wells[i].Vertices = m.WellVertices(w)
		}
	}
}
