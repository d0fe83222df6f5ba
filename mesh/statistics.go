package mesh

import (
	"fmt"
	"io"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
)

// Statistics summarizes a mesh for reporting
type Statistics struct {
	Dimension                     int
	NumVertices                   int
	NumCells, NumFacets, NumLines int
	ShapeCounts                   [NumElementTypes]int
	Min, Max                      Coordinate
	MinValence, MaxValence        int
	OrphanVertices                int
}

// VertexIncidence builds the sparse (tag x vertex) incidence matrix of all
// connectivity rows, row i being the row tagged i. Tags left unused by
// claimed boundaries give empty rows. Nil when the mesh has no rows or no
// vertices.
func (m *Mesh) VertexIncidence() *sparse.CSR {
	nRows, nVerts := 0, len(m.Coordinates)
	for _, bucket := range m.Connectivity {
		for _, el := range bucket {
			nRows = max(nRows, el.Tag+1)
		}
	}
	if nRows == 0 || nVerts == 0 {
		return nil
	}
	dok := sparse.NewDOK(nRows, nVerts)
	for _, bucket := range m.Connectivity {
		for _, el := range bucket {
			for _, v := range el.Vertices {
				dok.Set(el.Tag, v, 1)
			}
		}
	}
	return dok.ToCSR()
}

// Statistics computes counts, the bounding box and vertex valence. Valence
// is the number of rows referencing a vertex; an orphan has valence zero.
func (m *Mesh) Statistics() (st Statistics) {
	st.Dimension = m.Dimension
	st.NumVertices = len(m.Coordinates)
	st.NumCells, st.NumFacets, st.NumLines = m.NumCells(), m.NumFacets(), m.NumLines()
	for et, bucket := range m.Connectivity {
		st.ShapeCounts[et] = len(bucket)
	}
	if st.NumVertices == 0 {
		return
	}

	comp := make([]float64, st.NumVertices)
	for d := 0; d < 3; d++ {
		for i, c := range m.Coordinates {
			comp[i] = c[d]
		}
		st.Min[d], st.Max[d] = floats.Min(comp), floats.Max(comp)
	}

	valence := make([]int, st.NumVertices)
	if inc := m.VertexIncidence(); inc != nil {
		inc.DoNonZero(func(i, j int, v float64) {
			valence[j]++
		})
	}
	st.MinValence, st.MaxValence = valence[0], valence[0]
	for _, n := range valence {
		if n == 0 {
			st.OrphanVertices++
		}
		st.MinValence = min(st.MinValence, n)
		st.MaxValence = max(st.MaxValence, n)
	}
	return
}

// PrintStatistics writes a human readable report of the mesh
func (m *Mesh) PrintStatistics(w io.Writer) {
	st := m.Statistics()
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Dimension: %d\n", st.Dimension)
	fmt.Fprintf(w, "  Vertices: %d\n", st.NumVertices)
	fmt.Fprintf(w, "  Cells: %d\n", st.NumCells)
	fmt.Fprintf(w, "  Facets: %d\n", st.NumFacets)
	fmt.Fprintf(w, "  Lines: %d\n", st.NumLines)

	fmt.Fprintf(w, "  Element types:\n")
	for _, et := range BucketOrder {
		if st.ShapeCounts[et] == 0 {
			continue
		}
		fmt.Fprintf(w, "    %s: %d\n", et, st.ShapeCounts[et])
	}

	fmt.Fprintf(w, "  Regions:\n")
	for _, r := range m.Regions {
		fmt.Fprintf(w, "    %-20s [%d, %d) %d cells\n", r.Name, r.Begin, r.End, r.Len())
	}
	fmt.Fprintf(w, "  Boundaries:\n")
	for _, b := range m.Boundaries {
		fmt.Fprintf(w, "    %-20s [%d, %d) %d facets, %d vertices\n",
			b.Name, b.Begin, b.End, b.Len(), len(b.Vertices))
	}
	if len(m.Wells) != 0 {
		fmt.Fprintf(w, "  Wells:\n")
		for _, wl := range m.Wells {
			fmt.Fprintf(w, "    %-20s [%d, %d) %d lines, %d vertices\n",
				wl.Name, wl.Begin, wl.End, wl.Len(), len(wl.Vertices))
		}
	}

	if st.NumVertices == 0 {
		return
	}
	fmt.Fprintf(w, "  Bounding box: (%g, %g, %g) - (%g, %g, %g)\n",
		st.Min[0], st.Min[1], st.Min[2], st.Max[0], st.Max[1], st.Max[2])
	fmt.Fprintf(w, "  Vertex valence: min %d, max %d\n", st.MinValence, st.MaxValence)
	fmt.Fprintf(w, "  Orphan vertices: %d\n", st.OrphanVertices)
}
