package readers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/notargets/gridmend/mesh"
)

// Gambit element type numbers (NTYPE)
const (
	GambitEdge    = 1
	GambitQuad    = 2
	GambitTri     = 3
	GambitBrick   = 4
	GambitWedge   = 5
	GambitTet     = 6
	GambitPyramid = 7
)

// GambitElementType maps a Gambit NTYPE to its mesh element type
var GambitElementType = map[int]mesh.ElementType{
	GambitEdge:    mesh.Line,
	GambitQuad:    mesh.Quad,
	GambitTri:     mesh.Triangle,
	GambitBrick:   mesh.Hex,
	GambitWedge:   mesh.Prism,
	GambitTet:     mesh.Tet,
	GambitPyramid: mesh.Pyramid,
}

// gambitFaces lists the faces of each shape as 0-based positions in the
// Gambit node order. Face i of the file is gambitFaces[et][i-1].
var gambitFaces = [mesh.NumElementTypes][][]int{
	mesh.Triangle: {{0, 1}, {1, 2}, {2, 0}},
	mesh.Quad:     {{0, 1}, {1, 2}, {2, 3}, {3, 0}},
	mesh.Tet:      {{1, 0, 2}, {0, 1, 3}, {1, 2, 3}, {2, 0, 3}},
	mesh.Hex:      {{0, 1, 5, 4}, {1, 3, 7, 5}, {3, 2, 6, 7}, {2, 0, 4, 6}, {0, 2, 3, 1}, {4, 5, 7, 6}},
	mesh.Prism:    {{0, 1, 4, 3}, {1, 2, 5, 4}, {2, 0, 3, 5}, {0, 2, 1}, {3, 4, 5}},
	mesh.Pyramid:  {{0, 2, 3, 1}, {0, 1, 4}, {1, 3, 4}, {3, 2, 4}, {2, 0, 4}},
}

// gambitToMesh reorders Gambit nodes into mesh order. Bricks and pyramid
// bases are numbered lexicographically in Gambit, around the face here.
var gambitToMesh = [mesh.NumElementTypes][]int{
	mesh.Hex:     {0, 1, 3, 2, 4, 5, 7, 6},
	mesh.Pyramid: {0, 1, 3, 2, 4},
}

type gambitElement struct {
	etype mesh.ElementType
	nodes []int // Dense vertex ids, Gambit order
}

type gambitGroup struct {
	name     string
	elements []int // Indices into gambitFile.elements
}

type gambitBC struct {
	name  string
	faces []mesh.Element // Tags unset
	nodes []int
}

type gambitFile struct {
	numNodes, numElements, dim int
	nodeIndex                  map[int]int
	elementIndex               map[int]int
	coords                     []mesh.Coordinate
	elements                   []gambitElement
	groups                     []gambitGroup
	bcs                        []gambitBC
}

// ReadGambitNeutral reads a Gambit neutral file (.neu)
func ReadGambitNeutral(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseGambitNeutral(file, filename)
}

// ParseGambitNeutral reads Gambit neutral content. Element groups become
// regions and face boundary condition sets become boundaries. Node sets
// become node wells of a 2-D mesh and are ignored in 3-D.
func ParseGambitNeutral(r io.Reader, filename string) (*mesh.Mesh, error) {
	sc := &lineScanner{Scanner: bufio.NewScanner(r), filename: filename}
	gf := &gambitFile{
		nodeIndex:    make(map[int]int),
		elementIndex: make(map[int]int),
	}
	var err error
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.Contains(line, "CONTROL INFO"):
			err = gf.readControlInfo(sc)
		case strings.Contains(line, "NODAL COORDINATES"):
			err = gf.readNodes(sc)
		case strings.Contains(line, "ELEMENTS/CELLS"):
			err = gf.readElements(sc)
		case strings.Contains(line, "ELEMENT GROUP"):
			err = gf.readGroups(sc)
		case strings.Contains(line, "BOUNDARY CONDITIONS"):
			err = gf.readBCs(sc)
		case line == "" || line == "ENDOFSECTION":
		default:
			// Skip sections we do not use
			err = sc.skipTo("ENDOFSECTION")
		}
		if err != nil {
			return nil, err
		}
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: scanner error: %v", filename, err)
	}

	msh, err := gf.assemble()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if err = msh.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return msh, nil
}

// ints reads n integers, which may run over several lines
func (sc *lineScanner) ints(section string, n int) (vals []int, err error) {
	vals = make([]int, 0, n)
	for len(vals) < n {
		var line string
		if line, err = sc.next(section); err != nil {
			return nil, err
		}
		for _, f := range strings.Fields(line) {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, sc.errorf("invalid integer %q in %s", f, section)
			}
			vals = append(vals, v)
		}
	}
	if len(vals) != n {
		return nil, sc.errorf("expected %d values in %s, got %d", n, section, len(vals))
	}
	return vals, nil
}

// entry reads one line and returns its first n fields as integers. Any
// trailing fields are values we do not use.
func (sc *lineScanner) entry(section string, n int) ([]int, error) {
	line, err := sc.next(section)
	if err != nil {
		return nil, err
	}
	parts := strings.Fields(line)
	if len(parts) < n {
		return nil, sc.errorf("expected %d fields in %s, got: %s", n, section, line)
	}
	vals := make([]int, n)
	for i := range vals {
		if vals[i], err = strconv.Atoi(parts[i]); err != nil {
			return nil, sc.errorf("invalid integer %q in %s", parts[i], section)
		}
	}
	return vals, nil
}

func (gf *gambitFile) readControlInfo(sc *lineScanner) error {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "NUMNP") {
			continue
		}
		vals, err := sc.ints("CONTROL INFO", 6)
		if err != nil {
			return err
		}
		// NGRPS and NBSETS are implied by the sections that follow
		gf.numNodes, gf.numElements, gf.dim = vals[0], vals[1], vals[4]
		if gf.dim != 2 && gf.dim != 3 {
			return sc.errorf("unsupported dimension NDFCD=%d", gf.dim)
		}
		return sc.skipTo("ENDOFSECTION")
	}
	return fmt.Errorf("%s: missing NUMNP in CONTROL INFO", sc.filename)
}

func (gf *gambitFile) readNodes(sc *lineScanner) error {
	if gf.dim == 0 {
		return sc.errorf("NODAL COORDINATES before CONTROL INFO")
	}
	gf.coords = make([]mesh.Coordinate, 0, gf.numNodes)
	for i := 0; i < gf.numNodes; i++ {
		line, err := sc.next("NODAL COORDINATES")
		if err != nil {
			return err
		}
		parts := strings.Fields(line)
		if len(parts) != 1+gf.dim {
			return sc.errorf("invalid node line: %s", line)
		}
		nodeID, err := strconv.Atoi(parts[0])
		if err != nil {
			return sc.errorf("invalid node id: %s", parts[0])
		}
		var c mesh.Coordinate
		for d := 0; d < gf.dim; d++ {
			if c[d], err = strconv.ParseFloat(parts[1+d], 64); err != nil {
				return sc.errorf("invalid coordinate: %s", parts[1+d])
			}
		}
		if _, dup := gf.nodeIndex[nodeID]; dup {
			return sc.errorf("duplicate node id %d", nodeID)
		}
		gf.nodeIndex[nodeID] = len(gf.coords)
		gf.coords = append(gf.coords, c)
	}
	return sc.skipTo("ENDOFSECTION")
}

func (gf *gambitFile) readElements(sc *lineScanner) error {
	for i := 0; i < gf.numElements; i++ {
		// The first line carries the header and up to seven nodes
		line, err := sc.next("ELEMENTS/CELLS")
		if err != nil {
			return err
		}
		var fields []int
		for _, f := range strings.Fields(line) {
			v, err := strconv.Atoi(f)
			if err != nil {
				return sc.errorf("invalid element field %q", f)
			}
			fields = append(fields, v)
		}
		if len(fields) < 3 {
			return sc.errorf("invalid element line: %s", line)
		}
		elemID, ntype, ndp := fields[0], fields[1], fields[2]
		et, ok := GambitElementType[ntype]
		if !ok {
			return sc.errorf("element %d: unknown Gambit element type %d", elemID, ntype)
		}
		if et.GetDimension() != gf.dim {
			return sc.errorf("element %d: %s cell in a %d-D mesh", elemID, et, gf.dim)
		}
		if ndp != et.GetNumNodes() {
			return sc.errorf("element %d: %s with %d nodes, want %d", elemID, et, ndp, et.GetNumNodes())
		}
		ids := fields[3:]
		if len(ids) < ndp {
			more, err := sc.ints("ELEMENTS/CELLS", ndp-len(ids))
			if err != nil {
				return err
			}
			ids = append(ids, more...)
		}
		if len(ids) != ndp {
			return sc.errorf("element %d: expected %d nodes, got %d", elemID, ndp, len(ids))
		}
		el := gambitElement{etype: et, nodes: make([]int, ndp)}
		for j, id := range ids {
			v, ok := gf.nodeIndex[id]
			if !ok {
				return sc.errorf("element %d references unknown node %d", elemID, id)
			}
			el.nodes[j] = v
		}
		if _, dup := gf.elementIndex[elemID]; dup {
			return sc.errorf("duplicate element id %d", elemID)
		}
		gf.elementIndex[elemID] = len(gf.elements)
		gf.elements = append(gf.elements, el)
	}
	return sc.skipTo("ENDOFSECTION")
}

// groupField returns the integer following label on a GROUP: line
func groupField(parts []string, label string) (int, bool) {
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == label {
			v, err := strconv.Atoi(parts[i+1])
			return v, err == nil
		}
	}
	return 0, false
}

func (gf *gambitFile) readGroups(sc *lineScanner) error {
	for {
		line, err := sc.next("ELEMENT GROUP")
		if err != nil {
			return err
		}
		if line == "ENDOFSECTION" {
			return nil
		}
		parts := strings.Fields(line)
		numElems, ok1 := groupField(parts, "ELEMENTS:")
		nflags, ok2 := groupField(parts, "NFLAGS:")
		if len(parts) == 0 || parts[0] != "GROUP:" || !ok1 || !ok2 {
			return sc.errorf("invalid group line: %s", line)
		}
		g := gambitGroup{}
		if g.name, err = sc.next("ELEMENT GROUP"); err != nil {
			return err
		}
		if _, err = sc.ints("ELEMENT GROUP", nflags); err != nil {
			return err
		}
		ids, err := sc.ints("ELEMENT GROUP", numElems)
		if err != nil {
			return err
		}
		for _, id := range ids {
			idx, ok := gf.elementIndex[id]
			if !ok {
				return sc.errorf("group %s references unknown element %d", g.name, id)
			}
			g.elements = append(g.elements, idx)
		}
		gf.groups = append(gf.groups, g)
	}
}

func (gf *gambitFile) readBCs(sc *lineScanner) error {
	for {
		line, err := sc.next("BOUNDARY CONDITIONS")
		if err != nil {
			return err
		}
		if line == "ENDOFSECTION" {
			return nil
		}
		// NAME ITYPE NENTRY NVALUES IBCODE...
		parts := strings.Fields(line)
		if len(parts) < 4 {
			return sc.errorf("invalid boundary condition line: %s", line)
		}
		itype, err1 := strconv.Atoi(parts[1])
		nentry, err2 := strconv.Atoi(parts[2])
		_, err3 := strconv.Atoi(parts[3])
		if err1 != nil || err2 != nil || err3 != nil || itype < 0 || itype > 1 {
			return sc.errorf("invalid boundary condition line: %s", line)
		}
		bc := gambitBC{name: parts[0]}
		for i := 0; i < nentry; i++ {
			if itype == 0 {
				// node, values
				vals, err := sc.entry("BOUNDARY CONDITIONS", 1)
				if err != nil {
					return err
				}
				v, ok := gf.nodeIndex[vals[0]]
				if !ok {
					return sc.errorf("boundary %s references unknown node %d", bc.name, vals[0])
				}
				bc.nodes = append(bc.nodes, v)
				continue
			}
			// element, element type, face, values
			vals, err := sc.entry("BOUNDARY CONDITIONS", 3)
			if err != nil {
				return err
			}
			idx, ok := gf.elementIndex[vals[0]]
			if !ok {
				return sc.errorf("boundary %s references unknown element %d", bc.name, vals[0])
			}
			el := gf.elements[idx]
			faces := gambitFaces[el.etype]
			face := vals[2]
			if face < 1 || face > len(faces) {
				return sc.errorf("boundary %s: %s has no face %d", bc.name, el.etype, face)
			}
			verts := make([]int, len(faces[face-1]))
			for j, k := range faces[face-1] {
				verts[j] = el.nodes[k]
			}
			bc.faces = append(bc.faces, mesh.Element{Vertices: verts})
		}
		gf.bcs = append(gf.bcs, bc)
	}
}

// assemble numbers cells group by group, then the faces of each boundary
// condition set
func (gf *gambitFile) assemble() (msh *mesh.Mesh, err error) {
	if gf.dim == 0 {
		return nil, fmt.Errorf("missing CONTROL INFO: %w", mesh.ErrInvalidMesh)
	}
	msh = mesh.NewMesh(gf.dim)
	msh.Coordinates = gf.coords

	var (
		tag     int
		grouped = make([]bool, len(gf.elements))
	)
	for _, g := range gf.groups {
		if len(g.elements) == 0 {
			continue
		}
		begin := tag
		for _, idx := range g.elements {
			if grouped[idx] {
				return nil, fmt.Errorf("element %d is in two groups: %w", idx+1, mesh.ErrInvalidMesh)
			}
			grouped[idx] = true
			el := gf.elements[idx]
			msh.AddElement(el.etype, toMeshOrder(el), tag)
			tag++
		}
		msh.Regions = append(msh.Regions, mesh.Region{Name: g.name, Begin: begin, End: tag})
	}
	for idx, ok := range grouped {
		if !ok {
			return nil, fmt.Errorf("element %d belongs to no group: %w", idx+1, mesh.ErrInvalidMesh)
		}
	}
	for _, bc := range gf.bcs {
		if len(bc.faces) == 0 {
			continue
		}
		begin := tag
		for _, f := range bc.faces {
			et, ok := mesh.ShapeOf(len(f.Vertices), mesh.CandidateShapes(gf.dim, mesh.BoundarySection))
			if !ok {
				return nil, fmt.Errorf("boundary %s: no facet shape with %d vertices: %w",
					bc.name, len(f.Vertices), mesh.ErrInvalidMesh)
			}
			msh.AddElement(et, f.Vertices, tag)
			tag++
		}
		msh.Boundaries = append(msh.Boundaries, mesh.Boundary{Name: bc.name, Begin: begin, End: tag})
	}
	if gf.dim == 2 {
		for _, bc := range gf.bcs {
			if len(bc.nodes) == 0 {
				continue
			}
			verts := append([]int(nil), bc.nodes...)
			sort.Ints(verts)
			msh.Wells = append(msh.Wells, mesh.Well{
				Name: bc.name, Begin: tag, End: tag, Vertices: uniqueSorted(verts),
			})
		}
	}
	msh.DeriveVertexLists()
	return msh, nil
}

func toMeshOrder(el gambitElement) []int {
	perm := gambitToMesh[el.etype]
	if perm == nil {
		return el.nodes
	}
	out := make([]int, len(perm))
	for i, k := range perm {
		out[i] = el.nodes[k]
	}
	return out
}
