package curl

import "testing"

func TestBuildMeshTopology(t *testing.T) {
	m := BuildMesh(64, 32)

	wantVerts := 65 * 33
	if got := m.VertexCount(); got != wantVerts {
		t.Errorf("vertex count = %d, want %d", got, wantVerts)
	}
	wantIdx := 64 * 32 * 6
	if got := len(m.Indices); got != wantIdx {
		t.Errorf("index count = %d, want %d", got, wantIdx)
	}

	for i, idx := range m.Indices {
		if int(idx) >= wantVerts {
			t.Fatalf("index %d out of range at %d", idx, i)
		}
	}
}

func TestBuildMeshCorners(t *testing.T) {
	m := BuildMesh(4, 2)

	// First vertex is (0,0) with matching UV, last is (1,1).
	if m.Vertices[0] != 0 || m.Vertices[1] != 0 || m.Vertices[2] != 0 || m.Vertices[3] != 0 {
		t.Errorf("first vertex = %v, want zeros", m.Vertices[:4])
	}
	n := len(m.Vertices)
	last := m.Vertices[n-VertexStride:]
	if last[0] != 1 || last[1] != 1 || last[2] != 1 || last[3] != 1 {
		t.Errorf("last vertex = %v, want ones", last)
	}
}

func TestBuildMeshLowTier(t *testing.T) {
	// The low-resolution tier still forms a complete grid.
	m := BuildMesh(64, 2)
	if got := m.VertexCount(); got != 65*3 {
		t.Errorf("vertex count = %d, want %d", got, 65*3)
	}
	if got := len(m.Indices); got != 64*2*6 {
		t.Errorf("index count = %d, want %d", got, 64*2*6)
	}
}

func TestBuildMeshClampsDegenerate(t *testing.T) {
	m := BuildMesh(0, -1)
	if m.Cols != 1 || m.Rows != 1 {
		t.Errorf("got %dx%d, want clamped 1x1", m.Cols, m.Rows)
	}
	if got := len(m.Indices); got != 6 {
		t.Errorf("index count = %d, want 6", got)
	}
}

func TestBuildMeshIndexSpace(t *testing.T) {
	// Oversized grids clamp instead of wrapping vertex ids past uint16.
	m := BuildMesh(300, 300)
	if m.Cols != 255 || m.Rows != 255 {
		t.Fatalf("got %dx%d, want clamped 255x255", m.Cols, m.Rows)
	}
	if got := m.VertexCount(); got != 65536 {
		t.Fatalf("vertex count = %d, want 65536", got)
	}

	var max uint16
	for _, idx := range m.Indices {
		if idx > max {
			max = idx
		}
	}
	if int(max) != m.VertexCount()-1 {
		t.Errorf("max index = %d, want %d", max, m.VertexCount()-1)
	}
}
