package readers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/gridmend/mesh"
)

// su2ElementType maps SU2 (VTK) element type numbers to mesh element types
var su2ElementType = map[int]mesh.ElementType{
	3:  mesh.Line,
	5:  mesh.Triangle,
	9:  mesh.Quad,
	10: mesh.Tet,
	12: mesh.Hex,
	13: mesh.Prism,
	14: mesh.Pyramid,
}

// SU2TypeNumber is the inverse of the SU2 element type table
var SU2TypeNumber = [mesh.NumElementTypes]int{
	mesh.Line:     3,
	mesh.Triangle: 5,
	mesh.Quad:     9,
	mesh.Tet:      10,
	mesh.Hex:      12,
	mesh.Prism:    13,
	mesh.Pyramid:  14,
}

// SU2Region is the name of the single region holding every SU2 cell
const SU2Region = "Geometry"

// ReadSU2 reads an SU2 native format file
func ReadSU2(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseSU2(file, filename)
}

// ParseSU2 reads SU2 native content. All cells form one region and every
// marker becomes a boundary, in marker order.
func ParseSU2(r io.Reader, filename string) (msh *mesh.Mesh, err error) {
	sc := &lineScanner{Scanner: bufio.NewScanner(r), filename: filename}
	var (
		ndime    int
		coords   []mesh.Coordinate
		cells    []su2Row
		markers  []su2Marker
		hasNDIME bool
		hasNPOIN bool
	)
	for sc.Scan() {
		line := stripSU2Comment(sc.Text())
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, sc.errorf("unexpected line: %s", line)
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "NDIME":
			hasNDIME = true
			if ndime, err = strconv.Atoi(value); err != nil || (ndime != 2 && ndime != 3) {
				return nil, sc.errorf("unsupported dimension: NDIME=%s", value)
			}
		case "NPOIN":
			if !hasNDIME {
				return nil, sc.errorf("NPOIN before NDIME")
			}
			hasNPOIN = true
			if coords, err = readSU2Points(sc, value, ndime); err != nil {
				return nil, err
			}
		case "NELEM":
			if !hasNDIME {
				return nil, sc.errorf("NELEM before NDIME")
			}
			if cells, err = readSU2Rows(sc, value, "NELEM"); err != nil {
				return nil, err
			}
		case "NMARK":
			if markers, err = readSU2Markers(sc, value); err != nil {
				return nil, err
			}
		default:
			// Other keywords, such as NZONE, are ignored
		}
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: scanner error: %v", filename, err)
	}
	if !hasNDIME {
		return nil, fmt.Errorf("%s: missing NDIME", filename)
	}
	if !hasNPOIN {
		return nil, fmt.Errorf("%s: missing NPOIN", filename)
	}

	msh = mesh.NewMesh(ndime)
	msh.Coordinates = coords
	tag := 0
	for _, row := range cells {
		if row.etype.GetDimension() != ndime {
			return nil, fmt.Errorf("%s: %s cell in a %d-D mesh: %w", filename, row.etype, ndime, mesh.ErrInvalidMesh)
		}
		msh.AddElement(row.etype, row.nodes, tag)
		tag++
	}
	msh.Regions = []mesh.Region{{Name: SU2Region, Begin: 0, End: tag}}
	for _, mk := range markers {
		begin := tag
		for _, row := range mk.rows {
			if row.etype.GetDimension() != ndime-1 {
				return nil, fmt.Errorf("%s: marker %s holds a %s in a %d-D mesh: %w",
					filename, mk.name, row.etype, ndime, mesh.ErrInvalidMesh)
			}
			msh.AddElement(row.etype, row.nodes, tag)
			tag++
		}
		msh.Boundaries = append(msh.Boundaries, mesh.Boundary{Name: mk.name, Begin: begin, End: tag})
	}
	msh.DeriveVertexLists()
	if err = msh.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return
}

type su2Row struct {
	etype mesh.ElementType
	nodes []int
}

type su2Marker struct {
	name string
	rows []su2Row
}

// stripSU2Comment removes text after % and surrounding space
func stripSU2Comment(line string) string {
	if idx := strings.Index(line, "%"); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}

func readSU2Points(sc *lineScanner, count string, ndime int) (coords []mesh.Coordinate, err error) {
	// NPOIN may carry a second count of domain points
	fields := strings.Fields(count)
	if len(fields) == 0 {
		return nil, sc.errorf("missing NPOIN value")
	}
	var npoin int
	if npoin, err = strconv.Atoi(fields[0]); err != nil || npoin < 0 {
		return nil, sc.errorf("invalid NPOIN=%s", count)
	}
	coords = make([]mesh.Coordinate, npoin)
	for i := 0; i < npoin; i++ {
		var line string
		if line, err = sc.next("NPOIN"); err != nil {
			return nil, err
		}
		parts := strings.Fields(stripSU2Comment(line))
		if len(parts) < ndime {
			return nil, sc.errorf("invalid point line: expected at least %d coordinates", ndime)
		}
		// Point ids are implicit; a trailing index is ignored
		for d := 0; d < ndime; d++ {
			if coords[i][d], err = strconv.ParseFloat(parts[d], 64); err != nil {
				return nil, sc.errorf("invalid coordinate: %s", parts[d])
			}
		}
	}
	return
}

func readSU2Rows(sc *lineScanner, count, section string) (rows []su2Row, err error) {
	var n int
	if n, err = strconv.Atoi(count); err != nil || n < 0 {
		return nil, sc.errorf("invalid %s=%s", section, count)
	}
	rows = make([]su2Row, 0, n)
	for i := 0; i < n; i++ {
		var line string
		if line, err = sc.next(section); err != nil {
			return nil, err
		}
		parts := strings.Fields(stripSU2Comment(line))
		if len(parts) < 2 {
			return nil, sc.errorf("invalid element line: %s", line)
		}
		code, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, sc.errorf("invalid element type: %s", parts[0])
		}
		etype, ok := su2ElementType[code]
		if !ok {
			return nil, sc.errorf("unknown element type: %d", code)
		}
		numNodes := etype.GetNumNodes()
		if len(parts) < 1+numNodes {
			return nil, sc.errorf("element type %s expects %d nodes, got %d fields",
				etype, numNodes, len(parts)-1)
		}
		// An element id may follow the nodes and is ignored
		nodes := make([]int, numNodes)
		for j := range nodes {
			if nodes[j], err = strconv.Atoi(parts[1+j]); err != nil {
				return nil, sc.errorf("invalid node index: %s", parts[1+j])
			}
		}
		rows = append(rows, su2Row{etype: etype, nodes: nodes})
	}
	return
}

func readSU2Markers(sc *lineScanner, count string) (markers []su2Marker, err error) {
	var nmark int
	if nmark, err = strconv.Atoi(count); err != nil || nmark < 0 {
		return nil, sc.errorf("invalid NMARK=%s", count)
	}
	readKey := func(key string) (string, error) {
		line, err := sc.next("NMARK")
		if err != nil {
			return "", err
		}
		k, v, found := strings.Cut(stripSU2Comment(line), "=")
		if !found || strings.TrimSpace(k) != key {
			return "", sc.errorf("expected %s=, got: %s", key, line)
		}
		return strings.TrimSpace(v), nil
	}
	for i := 0; i < nmark; i++ {
		var mk su2Marker
		if mk.name, err = readKey("MARKER_TAG"); err != nil {
			return nil, err
		}
		var nElems string
		if nElems, err = readKey("MARKER_ELEMS"); err != nil {
			return nil, err
		}
		if mk.rows, err = readSU2Rows(sc, nElems, "MARKER_ELEMS"); err != nil {
			return nil, err
		}
		markers = append(markers, mk)
	}
	return
}
