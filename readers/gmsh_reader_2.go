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

// physicalKey identifies a Gmsh physical group, whose tags are only unique
// within one dimension
type physicalKey struct {
	dim, tag int
}

type gmshElement22 struct {
	etype    mesh.ElementType
	point    bool
	physical physicalKey
	nodes    []int // Dense vertex ids
}

type gmshFile22 struct {
	names     map[physicalKey]string
	nameOrder []physicalKey
	nodeIndex map[int]int // Gmsh node id -> dense vertex id
	coords    []mesh.Coordinate
	elements  []gmshElement22
}

// ReadGmsh22 reads a Gmsh MSH file format version 2.2 (ASCII)
func ReadGmsh22(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseGmsh22(file, filename)
}

// ParseGmsh22 reads Gmsh 2.2 ASCII content. Physical groups of the mesh
// dimension become regions, groups one dimension lower boundaries, line
// groups of a 3-D mesh wells, and point groups of a 2-D mesh node wells.
func ParseGmsh22(r io.Reader, filename string) (*mesh.Mesh, error) {
	sc := &lineScanner{Scanner: bufio.NewScanner(r), filename: filename}
	gf := &gmshFile22{
		names:     make(map[physicalKey]string),
		nodeIndex: make(map[int]int),
	}
	var err error
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		switch line {
		case "$MeshFormat":
			err = readMeshFormat22(sc)
		case "$PhysicalNames":
			err = gf.readPhysicalNames(sc)
		case "$Nodes":
			err = gf.readNodes22(sc)
		case "$Elements":
			err = gf.readElements22(sc)
		default:
			if strings.HasPrefix(line, "$") {
				// Skip sections we do not use
				err = sc.skipTo("$End" + line[1:])
			}
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

// readMeshFormat22 checks the version and ASCII file type
func readMeshFormat22(sc *lineScanner) error {
	line, err := sc.next("MeshFormat")
	if err != nil {
		return err
	}
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return sc.errorf("invalid MeshFormat line: %s", line)
	}
	if !strings.HasPrefix(parts[0], "2.") {
		return sc.errorf("unsupported Gmsh version %s, want 2.2", parts[0])
	}
	if parts[1] != "0" {
		return sc.errorf("binary Gmsh files are not supported")
	}
	return sc.skipTo("$EndMeshFormat")
}

func (gf *gmshFile22) readPhysicalNames(sc *lineScanner) error {
	line, err := sc.next("PhysicalNames")
	if err != nil {
		return err
	}
	numNames, err := strconv.Atoi(line)
	if err != nil {
		return sc.errorf("invalid physical name count: %s", line)
	}
	for i := 0; i < numNames; i++ {
		if line, err = sc.next("PhysicalNames"); err != nil {
			return err
		}
		parts := strings.Fields(line)
		if len(parts) < 3 {
			return sc.errorf("invalid physical name line: %s", line)
		}
		dim, err1 := strconv.Atoi(parts[0])
		tag, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return sc.errorf("invalid physical name line: %s", line)
		}
		// Names may contain spaces
		name := strings.Trim(strings.Join(parts[2:], " "), "\"")
		key := physicalKey{dim, tag}
		if _, dup := gf.names[key]; !dup {
			gf.nameOrder = append(gf.nameOrder, key)
		}
		gf.names[key] = name
	}
	return sc.skipTo("$EndPhysicalNames")
}

func (gf *gmshFile22) readNodes22(sc *lineScanner) error {
	line, err := sc.next("Nodes")
	if err != nil {
		return err
	}
	numNodes, err := strconv.Atoi(line)
	if err != nil {
		return sc.errorf("invalid node count: %s", line)
	}
	gf.coords = make([]mesh.Coordinate, 0, numNodes)
	for i := 0; i < numNodes; i++ {
		if line, err = sc.next("Nodes"); err != nil {
			return err
		}
		parts := strings.Fields(line)
		if len(parts) < 4 {
			return sc.errorf("invalid node line: %s", line)
		}
		nodeID, err := strconv.Atoi(parts[0])
		if err != nil {
			return sc.errorf("invalid node id: %s", parts[0])
		}
		var c mesh.Coordinate
		for d := 0; d < 3; d++ {
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
	return sc.skipTo("$EndNodes")
}

func (gf *gmshFile22) readElements22(sc *lineScanner) error {
	line, err := sc.next("Elements")
	if err != nil {
		return err
	}
	numElements, err := strconv.Atoi(line)
	if err != nil {
		return sc.errorf("invalid element count: %s", line)
	}
	for i := 0; i < numElements; i++ {
		if line, err = sc.next("Elements"); err != nil {
			return err
		}
		parts := strings.Fields(line)
		if len(parts) < 3 {
			return sc.errorf("invalid element line: %s", line)
		}
		ints := make([]int, len(parts))
		for j, p := range parts {
			if ints[j], err = strconv.Atoi(p); err != nil {
				return sc.errorf("invalid element field %q", p)
			}
		}
		elemID, gmshType, numTags := ints[0], ints[1], ints[2]

		el := gmshElement22{point: gmshType == GmshPoint}
		numNodes := 1
		if !el.point {
			var ok bool
			if el.etype, ok = GmshElementType[gmshType]; !ok {
				return sc.errorf("element %d: unsupported Gmsh element type %d", elemID, gmshType)
			}
			numNodes = el.etype.GetNumNodes()
		}
		if len(ints) != 3+numTags+numNodes {
			return sc.errorf("element %d: expected %d tags and %d nodes, got %d fields",
				elemID, numTags, numNodes, len(ints)-3)
		}
		el.physical = physicalKey{dim: el.dimension()}
		if numTags > 0 {
			el.physical.tag = ints[3]
		}
		for _, id := range ints[3+numTags:] {
			v, ok := gf.nodeIndex[id]
			if !ok {
				return sc.errorf("element %d references unknown node %d", elemID, id)
			}
			el.nodes = append(el.nodes, v)
		}
		gf.elements = append(gf.elements, el)
	}
	return sc.skipTo("$EndElements")
}

func (el gmshElement22) dimension() int {
	if el.point {
		return 0
	}
	return el.etype.GetDimension()
}

type gmshGroup struct {
	key      physicalKey
	name     string
	elements []gmshElement22
}

// groups collects the elements of one dimension by physical group, named
// groups in $PhysicalNames order first, then the unnamed ones in order of
// appearance
func (gf *gmshFile22) groups(dim int, prefix string) (groups []*gmshGroup) {
	byKey := make(map[physicalKey]*gmshGroup)
	for _, key := range gf.nameOrder {
		if key.dim == dim {
			g := &gmshGroup{key: key, name: gf.names[key]}
			byKey[key] = g
			groups = append(groups, g)
		}
	}
	for _, el := range gf.elements {
		if el.dimension() != dim {
			continue
		}
		g, ok := byKey[el.physical]
		if !ok {
			g = &gmshGroup{key: el.physical, name: fmt.Sprintf("%s_%d", prefix, el.physical.tag)}
			byKey[el.physical] = g
			groups = append(groups, g)
		}
		g.elements = append(g.elements, el)
	}
	return
}

// assemble numbers the elements group by group, cells then facets then
// lines, so every physical group is one contiguous tag range
func (gf *gmshFile22) assemble() (msh *mesh.Mesh, err error) {
	dim := 0
	for _, el := range gf.elements {
		dim = max(dim, el.dimension())
	}
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("mesh dimension %d, want 2 or 3: %w", dim, mesh.ErrInvalidMesh)
	}
	msh = mesh.NewMesh(dim)
	msh.Coordinates = gf.coords

	tag := 0
	addGroup := func(g *gmshGroup) (begin, end int) {
		begin = tag
		for _, el := range g.elements {
			msh.AddElement(el.etype, el.nodes, tag)
			tag++
		}
		return begin, tag
	}
	for _, g := range gf.groups(dim, "region") {
		if len(g.elements) == 0 {
			continue
		}
		b, e := addGroup(g)
		msh.Regions = append(msh.Regions, mesh.Region{Name: g.name, Begin: b, End: e})
	}
	for _, g := range gf.groups(dim-1, "boundary") {
		if len(g.elements) == 0 {
			continue
		}
		b, e := addGroup(g)
		msh.Boundaries = append(msh.Boundaries, mesh.Boundary{Name: g.name, Begin: b, End: e})
	}
	if dim == 3 {
		for _, g := range gf.groups(1, "well") {
			if len(g.elements) == 0 {
				continue
			}
			b, e := addGroup(g)
			msh.Wells = append(msh.Wells, mesh.Well{Name: g.name, Begin: b, End: e})
		}
	} else {
		for _, g := range gf.groups(0, "well") {
			if len(g.elements) == 0 {
				continue
			}
			var verts []int
			for _, el := range g.elements {
				verts = append(verts, el.nodes...)
			}
			sort.Ints(verts)
			msh.Wells = append(msh.Wells, mesh.Well{
				Name: g.name, Begin: tag, End: tag, Vertices: uniqueSorted(verts),
			})
		}
	}
	msh.DeriveVertexLists()
	return msh, nil
}

func uniqueSorted(sorted []int) []int {
	out := sorted[:0]
	for _, v := range sorted {
		if len(out) == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
