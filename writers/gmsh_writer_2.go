package writers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/notargets/gridmend/mesh"
	"github.com/notargets/gridmend/readers"
)

type physicalGroup struct {
	dim, tag   int
	name       string
	begin, end int
}

// physicalGroups numbers regions, boundaries and wells as Gmsh physical
// groups, starting from 1
func physicalGroups(m *mesh.Mesh) (groups []physicalGroup) {
	tag := 0
	add := func(dim int, name string, begin, end int) {
		tag++
		groups = append(groups, physicalGroup{dim: dim, tag: tag, name: name, begin: begin, end: end})
	}
	for _, r := range m.Regions {
		add(m.Dimension, r.Name, r.Begin, r.End)
	}
	for _, b := range m.Boundaries {
		add(m.Dimension-1, b.Name, b.Begin, b.End)
	}
	for _, w := range m.Wells {
		if m.Dimension == 2 {
			add(0, w.Name, w.Begin, w.End)
		} else {
			add(1, w.Name, w.Begin, w.End)
		}
	}
	return
}

// WriteGmsh22 writes m as a Gmsh 2.2 ASCII file. Elements are written in tag
// order with the physical group of their range as both tags; node-only
// wells become point elements.
func WriteGmsh22(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	groups := physicalGroups(m)

	fmt.Fprintf(bw, "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n")

	fmt.Fprintf(bw, "$PhysicalNames\n%d\n", len(groups))
	for _, g := range groups {
		fmt.Fprintf(bw, "%d %d %q\n", g.dim, g.tag, g.name)
	}
	fmt.Fprintf(bw, "$EndPhysicalNames\n")

	fmt.Fprintf(bw, "$Nodes\n%d\n", len(m.Coordinates))
	for i, c := range m.Coordinates {
		fmt.Fprintf(bw, "%d %s %s %s\n", i+1, formatFloat(c[0]), formatFloat(c[1]), formatFloat(c[2]))
	}
	fmt.Fprintf(bw, "$EndNodes\n")

	physical := make([]int, m.NumTags())
	for _, g := range groups {
		for t := g.begin; t < g.end; t++ {
			physical[t] = g.tag
		}
	}
	var points [][2]int // (physical, vertex)
	for _, g := range groups {
		if g.dim != 0 {
			continue
		}
		for _, v := range m.Wells[m.FindWell(g.name)].Vertices {
			points = append(points, [2]int{g.tag, v})
		}
	}

	gc := m.GlobalConnectivity()
	fmt.Fprintf(bw, "$Elements\n%d\n", len(gc)+len(points))
	id := 0
	for _, el := range gc {
		et, ok := shapeOfRow(m, el)
		if !ok {
			return fmt.Errorf("element %d: %d vertices: %w", el.Tag, len(el.Vertices), mesh.ErrUnsupportedCardinality)
		}
		id++
		fmt.Fprintf(bw, "%d %d 2 %d %d", id, readers.GmshTypeNumber[et], physical[el.Tag], physical[el.Tag])
		for _, v := range el.Vertices {
			fmt.Fprintf(bw, " %d", v+1)
		}
		fmt.Fprintln(bw)
	}
	for _, p := range points {
		id++
		fmt.Fprintf(bw, "%d %d 2 %d %d %d\n", id, readers.GmshPoint, p[0], p[0], p[1]+1)
	}
	fmt.Fprintf(bw, "$EndElements\n")
	return bw.Flush()
}

// shapeOfRow resolves the shape of a row from the index space it lies in
func shapeOfRow(m *mesh.Mesh, el mesh.Element) (mesh.ElementType, bool) {
	var candidates []mesh.ElementType
	switch {
	case el.Tag < m.NumCells():
		candidates = m.CellTypes()
	case el.Tag < m.NumCells()+m.NumFacets():
		candidates = m.FacetTypes()
	default:
		candidates = m.LineTypes()
	}
	return mesh.ShapeOf(len(el.Vertices), candidates)
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
