package curl

// Mesh is the static page tessellation used by the cylindrical backend:
// a regular grid over [0,1]x[0,1] with interleaved x,y,u,v vertices and
// two triangles per cell. Topology is built once per surface lifetime and
// never mutated; all deformation happens at draw time.
type Mesh struct {
	Cols, Rows int
	Vertices   []float32 // x, y, u, v per vertex
	Indices    []uint16
}

// VertexStride is the number of floats per mesh vertex.
const VertexStride = 4

// maxMeshDim caps each grid axis so every vertex id fits the uint16 index
// buffer: (255+1)*(255+1) = 65536 vertices, ids 0..65535.
const maxMeshDim = 255

// BuildMesh tessellates the unit square into cols x rows cells. Column
// count buys horizontal smoothness of the cylinder silhouette; row count
// buys fidelity of a diagonal fold line. Resolution is a configuration
// trade-off (64x32 full tier, 64x2 low tier), not a constant; each axis is
// clamped to [1, 255] to keep the index space intact.
func BuildMesh(cols, rows int) *Mesh {
	cols = clampDim(cols)
	rows = clampDim(rows)

	m := &Mesh{
		Cols:     cols,
		Rows:     rows,
		Vertices: make([]float32, 0, (cols+1)*(rows+1)*VertexStride),
		Indices:  make([]uint16, 0, cols*rows*6),
	}

	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			u := float32(c) / float32(cols)
			v := float32(r) / float32(rows)
			m.Vertices = append(m.Vertices, u, v, u, v)
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			tl := uint16(r*(cols+1) + c)
			tr := tl + 1
			bl := uint16((r+1)*(cols+1) + c)
			br := bl + 1
			m.Indices = append(m.Indices, tl, bl, tr, tr, bl, br)
		}
	}

	return m
}

func clampDim(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxMeshDim {
		return maxMeshDim
	}
	return n
}

// VertexCount returns the number of vertices in the grid.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / VertexStride
}
