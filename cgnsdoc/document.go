package cgnsdoc

import (
	"fmt"

	"github.com/notargets/gridmend/mesh"
)

// Document is a CGNS unstructured tree with one base and one zone, kept as
// plain data so it serializes to YAML or JSON
type Document struct {
	Base Base `json:"Base"`
}

type Base struct {
	Name              string `json:"Name"`
	CellDimension     int    `json:"CellDimension"`
	PhysicalDimension int    `json:"PhysicalDimension"`
	Zone              Zone   `json:"Zone"`
}

type Zone struct {
	Name            string            `json:"Name"`
	ZoneType        string            `json:"ZoneType"`
	VertexSize      int               `json:"VertexSize"`
	CellSize        int               `json:"CellSize"`
	GridCoordinates GridCoordinates   `json:"GridCoordinates"`
	Elements        []ElementsSection `json:"Elements"`
	ZoneBC          []BC              `json:"ZoneBC,omitempty"`
}

type GridCoordinates struct {
	CoordinateX []float64 `json:"CoordinateX"`
	CoordinateY []float64 `json:"CoordinateY"`
	CoordinateZ []float64 `json:"CoordinateZ,omitempty"`
}

// ElementsSection is one Elements_t node. ElementRange is 1-based and
// inclusive, connectivity is 1-based, and MIXED sections prefix every row
// with its numeric element type.
type ElementsSection struct {
	Name                string `json:"Name"`
	ElementType         string `json:"ElementType"`
	ElementRange        [2]int `json:"ElementRange"`
	ElementConnectivity []int  `json:"ElementConnectivity"`
}

// BC is a boundary condition given as a 1-based vertex point list
type BC struct {
	Name         string `json:"Name"`
	BCType       string `json:"BCType"`
	GridLocation string `json:"GridLocation"`
	FamilyName   string `json:"FamilyName"`
	PointList    []int  `json:"PointList"`
}

const (
	ZoneTypeUnstructured = "Unstructured"
	BCWall               = "BCWall"
	GridLocationVertex   = "Vertex"
)

// CGNS ElementType_t values
const (
	NODE    = 2
	BAR_2   = 3
	TRI_3   = 5
	QUAD_4  = 7
	TETRA_4 = 10
	PYRA_5  = 12
	PENTA_6 = 14
	HEXA_8  = 17
	MIXED   = 20
)

var typeNames = map[int]string{
	NODE: "NODE", BAR_2: "BAR_2", TRI_3: "TRI_3", QUAD_4: "QUAD_4",
	TETRA_4: "TETRA_4", PYRA_5: "PYRA_5", PENTA_6: "PENTA_6", HEXA_8: "HEXA_8",
	MIXED: "MIXED",
}

var shapeCodes = [mesh.NumElementTypes]int{
	mesh.Line:     BAR_2,
	mesh.Triangle: TRI_3,
	mesh.Quad:     QUAD_4,
	mesh.Tet:      TETRA_4,
	mesh.Hex:      HEXA_8,
	mesh.Prism:    PENTA_6,
	mesh.Pyramid:  PYRA_5,
}

// TypeCode returns the CGNS element type value of a shape
func TypeCode(et mesh.ElementType) int { return shapeCodes[et] }

// TypeName returns the CGNS name of an element type value
func TypeName(code int) string {
	if name, ok := typeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("ElementType%d", code)
}

// shapeOf maps a CGNS element type value back to a shape
func shapeOf(code int) (mesh.ElementType, bool) {
	for et, c := range shapeCodes {
		if c == code {
			return mesh.ElementType(et), true
		}
	}
	return 0, false
}

func typeCodeOf(name string) (int, bool) {
	for code, n := range typeNames {
		if n == name {
			return code, true
		}
	}
	return 0, false
}
