package writers

import (
	"bufio"
	"fmt"
	"io"

	"github.com/notargets/gridmend/mesh"
	"github.com/notargets/gridmend/readers"
)

// WriteSU2 writes m in SU2 native format. SU2 has a single cell zone, so
// region names are not kept; each boundary becomes a marker. Wells have no
// SU2 equivalent and are left out.
func WriteSU2(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	gc := m.GlobalConnectivity()

	writeRow := func(el mesh.Element) error {
		et, ok := shapeOfRow(m, el)
		if !ok {
			return fmt.Errorf("element %d: %d vertices: %w", el.Tag, len(el.Vertices), mesh.ErrUnsupportedCardinality)
		}
		fmt.Fprintf(bw, "%d", readers.SU2TypeNumber[et])
		for _, v := range el.Vertices {
			fmt.Fprintf(bw, " %d", v)
		}
		fmt.Fprintln(bw)
		return nil
	}

	fmt.Fprintf(bw, "NDIME= %d\n", m.Dimension)
	cells, err := gc.Space(m, mesh.ElementSpace)
	if err != nil {
		return err
	}
	fmt.Fprintf(bw, "NELEM= %d\n", len(cells))
	for _, el := range cells {
		if err = writeRow(el); err != nil {
			return err
		}
	}

	fmt.Fprintf(bw, "NPOIN= %d\n", len(m.Coordinates))
	for _, c := range m.Coordinates {
		for d := 0; d < m.Dimension; d++ {
			if d > 0 {
				fmt.Fprint(bw, " ")
			}
			fmt.Fprint(bw, formatFloat(c[d]))
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintf(bw, "NMARK= %d\n", len(m.Boundaries))
	for _, b := range m.Boundaries {
		rows, err := gc.Slice(b.Begin, b.End)
		if err != nil {
			return fmt.Errorf("boundary %q: %w", b.Name, err)
		}
		fmt.Fprintf(bw, "MARKER_TAG= %s\nMARKER_ELEMS= %d\n", b.Name, len(rows))
		for _, el := range rows {
			if err = writeRow(el); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
