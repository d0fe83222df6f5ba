package readers

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/notargets/gridmend/mesh"
)

// Gmsh element type numbers of the linear shapes
const (
	GmshLine    = 1
	GmshTri     = 2
	GmshQuad    = 3
	GmshTet     = 4
	GmshHex     = 5
	GmshPrism   = 6
	GmshPyramid = 7
	GmshPoint   = 15
)

// GmshElementType maps a Gmsh element type number to its mesh element type
var GmshElementType = map[int]mesh.ElementType{
	GmshLine:    mesh.Line,
	GmshTri:     mesh.Triangle,
	GmshQuad:    mesh.Quad,
	GmshTet:     mesh.Tet,
	GmshHex:     mesh.Hex,
	GmshPrism:   mesh.Prism,
	GmshPyramid: mesh.Pyramid,
}

// GmshTypeNumber is the inverse of GmshElementType
var GmshTypeNumber = [mesh.NumElementTypes]int{
	mesh.Line:     GmshLine,
	mesh.Triangle: GmshTri,
	mesh.Quad:     GmshQuad,
	mesh.Tet:      GmshTet,
	mesh.Hex:      GmshHex,
	mesh.Prism:    GmshPrism,
	mesh.Pyramid:  GmshPyramid,
}

// lineScanner counts lines so parse errors can point into the file
type lineScanner struct {
	*bufio.Scanner
	filename string
	line     int
}

func (s *lineScanner) Scan() bool {
	if s.Scanner.Scan() {
		s.line++
		return true
	}
	return false
}

// next scans the next non blank line
func (s *lineScanner) next(section string) (string, error) {
	for s.Scan() {
		if txt := strings.TrimSpace(s.Text()); txt != "" {
			return txt, nil
		}
	}
	if err := s.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%s: unexpected EOF in %s", s.filename, section)
}

// errorf prefixes an error with the current file position
func (s *lineScanner) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%s:%d: %s", s.filename, s.line, fmt.Sprintf(format, args...))
}

// skipTo advances past the end marker of a section
func (s *lineScanner) skipTo(endMarker string) error {
	for s.Scan() {
		if strings.TrimSpace(s.Text()) == endMarker {
			return nil
		}
	}
	return fmt.Errorf("%s: missing %s", s.filename, endMarker)
}
