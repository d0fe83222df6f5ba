package cgnsdoc

import (
	"fmt"

	"github.com/notargets/gridmend/mesh"
)

// layout is the dimension specific part of reading and writing a zone
type layout interface {
	writeCoordinates(z *Zone, coords []mesh.Coordinate)
	writeSections(z *Zone, m *mesh.Mesh) error
	readCoordinates(z *Zone) ([]mesh.Coordinate, error)
	readSections(z *Zone, m *mesh.Mesh) error
}

func layoutFor(dimension int) (layout, error) {
	switch dimension {
	case 2:
		return layout2D{}, nil
	case 3:
		return layout3D{}, nil
	default:
		return nil, fmt.Errorf("cell dimension %d: %w", dimension, mesh.ErrDimensionMismatch)
	}
}

// layout3D stores x, y and z and writes wells as BAR_2 sections
type layout3D struct{}

func (layout3D) writeCoordinates(z *Zone, coords []mesh.Coordinate) {
	writeCoordinates(z, coords, 3)
}

func (layout3D) readCoordinates(z *Zone) ([]mesh.Coordinate, error) {
	return readCoordinates(z, 3)
}

func (layout3D) writeSections(z *Zone, m *mesh.Mesh) error {
	return writePlannedSections(z, m)
}

func (layout3D) readSections(z *Zone, m *mesh.Mesh) error {
	return readSections(z, m, func(dim int) (mesh.SectionKind, bool) {
		switch dim {
		case 3:
			return mesh.RegionSection, true
		case 2:
			return mesh.BoundarySection, true
		case 1:
			return mesh.WellSection, true
		}
		return 0, false
	})
}

// layout2D stores x and y; wells only reference nodes and are written as
// NODE sections after the planned ones
type layout2D struct{}

func (layout2D) writeCoordinates(z *Zone, coords []mesh.Coordinate) {
	writeCoordinates(z, coords, 2)
}

func (layout2D) readCoordinates(z *Zone) ([]mesh.Coordinate, error) {
	return readCoordinates(z, 2)
}

func (layout2D) writeSections(z *Zone, m *mesh.Mesh) error {
	if err := writePlannedSections(z, m); err != nil {
		return err
	}
	cursor := 0
	if n := len(z.Elements); n > 0 {
		cursor = z.Elements[n-1].ElementRange[1]
	}
	for _, w := range m.Wells {
		if len(w.Vertices) == 0 {
			continue
		}
		conn := make([]int, len(w.Vertices))
		for i, v := range w.Vertices {
			conn[i] = v + 1
		}
		z.Elements = append(z.Elements, ElementsSection{
			Name:                w.Name,
			ElementType:         TypeName(NODE),
			ElementRange:        [2]int{cursor + 1, cursor + len(conn)},
			ElementConnectivity: conn,
		})
		cursor += len(conn)
	}
	return nil
}

func (layout2D) readSections(z *Zone, m *mesh.Mesh) error {
	return readSections(z, m, func(dim int) (mesh.SectionKind, bool) {
		switch dim {
		case 2:
			return mesh.RegionSection, true
		case 1:
			return mesh.BoundarySection, true
		}
		return 0, false
	})
}

func writeCoordinates(z *Zone, coords []mesh.Coordinate, dim int) {
	gc := &z.GridCoordinates
	gc.CoordinateX = make([]float64, len(coords))
	gc.CoordinateY = make([]float64, len(coords))
	if dim == 3 {
		gc.CoordinateZ = make([]float64, len(coords))
	}
	for i, c := range coords {
		gc.CoordinateX[i], gc.CoordinateY[i] = c[0], c[1]
		if dim == 3 {
			gc.CoordinateZ[i] = c[2]
		}
	}
}

func readCoordinates(z *Zone, dim int) (coords []mesh.Coordinate, err error) {
	gc := z.GridCoordinates
	n := len(gc.CoordinateX)
	switch {
	case len(gc.CoordinateY) != n:
		err = fmt.Errorf("CoordinateY has %d values, CoordinateX %d", len(gc.CoordinateY), n)
	case dim == 3 && len(gc.CoordinateZ) != n:
		err = fmt.Errorf("CoordinateZ has %d values, CoordinateX %d", len(gc.CoordinateZ), n)
	case z.VertexSize != n:
		err = fmt.Errorf("zone VertexSize %d, have %d coordinates", z.VertexSize, n)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", mesh.ErrInvalidMesh, err)
	}
	coords = make([]mesh.Coordinate, n)
	for i := range coords {
		coords[i][0], coords[i][1] = gc.CoordinateX[i], gc.CoordinateY[i]
		if dim == 3 {
			coords[i][2] = gc.CoordinateZ[i]
		}
	}
	return
}
