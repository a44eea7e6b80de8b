package collada

import (
	"slices"
	"testing"
)

func TestReproject_Identity(t *testing.T) {
	vertex := ArrayData{Stride: 3, Values: make([]float32, 9), Indices: []uint32{0, 1, 2}}
	normal := ArrayData{Stride: 3, Values: []float32{1, 0, 0, 0, 1, 0, 0, 0, 1}, Indices: []uint32{0, 1, 2}}

	got := Reproject(normal, &vertex)
	if &got.Values[0] != &normal.Values[0] {
		t.Error("equal index streams should leave the channel untouched")
	}
}

func TestReproject(t *testing.T) {
	// Two triangles share vertices 0 and 2 but use different normals there.
	vertex := ArrayData{
		Stride:  3,
		Values:  make([]float32, 4*3),
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	normal := ArrayData{
		Stride:  1,
		Values:  []float32{10, 20, 30, 40},
		Indices: []uint32{0, 0, 0, 1, 2, 3},
	}

	got := Reproject(normal, &vertex)

	if !slices.Equal(got.Indices, vertex.Indices) {
		t.Errorf("indices: got %v, want %v", got.Indices, vertex.Indices)
	}
	if len(got.Values) != vertex.Count()*int(normal.Stride) {
		t.Fatalf("values: got %d, want %d", len(got.Values), vertex.Count())
	}
	// Vertex 0 and 2 take the value of the last face-vertex that names them.
	want := []float32{20, 10, 30, 40}
	if !slices.Equal(got.Values, want) {
		t.Errorf("values: got %v, want %v", got.Values, want)
	}
	for i, vi := range vertex.Indices {
		if got.Indices[i] != vi {
			t.Errorf("face-vertex %d: index %d, want %d", i, got.Indices[i], vi)
		}
	}
}

func TestReproject_UnaddressedStaysZero(t *testing.T) {
	vertex := ArrayData{Stride: 3, Values: make([]float32, 5*3), Indices: []uint32{4, 1, 2}}
	uv := ArrayData{Stride: 2, Values: []float32{1, 1, 2, 2, 3, 3}, Indices: []uint32{0, 1, 2}}

	got := Reproject(uv, &vertex)
	want := []float32{0, 0, 2, 2, 3, 3, 0, 0, 1, 1}
	if !slices.Equal(got.Values, want) {
		t.Errorf("got %v, want %v", got.Values, want)
	}
}

func TestAssemble_Triangles(t *testing.T) {
	m := parseMesh(t, positionSource+`
<vertices id="v"><input semantic="POSITION" source="#pos"/></vertices>
<triangles count="2"><input semantic="VERTEX" source="#v" offset="0"/><p>0 1 2 0 2 3</p></triangles>`)

	if m.PrimitiveType != PrimitiveTriangles {
		t.Errorf("primitive type: got %v", m.PrimitiveType)
	}
	if m.Vertex.Stride != 3 || m.Vertex.Count() != 4 {
		t.Errorf("vertex: stride %d count %d", m.Vertex.Stride, m.Vertex.Count())
	}
	if !slices.Equal(m.Vertex.Indices, []uint32{0, 1, 2, 0, 2, 3}) {
		t.Errorf("indices: got %v", m.Vertex.Indices)
	}
	if m.TriangleCount() != 2 {
		t.Errorf("triangles: got %d", m.TriangleCount())
	}
	if m.HasNormal() || m.HasTexCoord() {
		t.Error("absent channels should carry the invalid stride")
	}
	if m.ID != "g" || m.Name != "G" {
		t.Errorf("id/name: got %q/%q", m.ID, m.Name)
	}

	lo, hi, ok := m.Bounds()
	if !ok || lo != [3]float32{0, 0, 0} || hi != [3]float32{1, 1, 0} {
		t.Errorf("bounds: got %v %v %v", lo, hi, ok)
	}
}

func TestAssemble_DirectPositionInput(t *testing.T) {
	// No <vertices>; the primitive names the position source itself.
	m := parseMesh(t, positionSource+`
<triangles><input semantic="POSITION" source="#pos" offset="0"/><p>3 2 1</p></triangles>`)
	if !m.HasVertex() || !slices.Equal(m.Vertex.Indices, []uint32{3, 2, 1}) {
		t.Errorf("vertex: %+v", m.Vertex)
	}
}

func TestAssemble_InterleavedNormals(t *testing.T) {
	m := parseMesh(t, positionSource+`
<source id="n">
  <float_array count="6">0 0 1 0 0 -1</float_array>
  <technique_common><accessor stride="3"/></technique_common>
</source>
<vertices id="v"><input semantic="POSITION" source="#pos"/></vertices>
<triangles count="1">
  <input semantic="VERTEX" source="#v" offset="0"/>
  <input semantic="NORMAL" source="#n" offset="1"/>
  <p>0 1 1 1 2 0</p>
</triangles>`)

	if !slices.Equal(m.Vertex.Indices, []uint32{0, 1, 2}) {
		t.Fatalf("vertex indices: got %v", m.Vertex.Indices)
	}
	if !slices.Equal(m.Normal.Indices, m.Vertex.Indices) {
		t.Errorf("normal indices should follow the vertex indices, got %v", m.Normal.Indices)
	}
	if len(m.Normal.Values) != m.Vertex.Count()*3 {
		t.Fatalf("normal values: got %d", len(m.Normal.Values))
	}
	for vi, want := range map[int][]float32{0: {0, 0, -1}, 1: {0, 0, -1}, 2: {0, 0, 1}} {
		if got := m.Normal.Vec(vi); !slices.Equal(got, want) {
			t.Errorf("normal of vertex %d: got %v, want %v", vi, got, want)
		}
	}
}

func TestAssemble_NothingDrawable(t *testing.T) {
	tests := []struct {
		name string
		mesh string
		want PrimitiveType
	}{
		{"no primitive", positionSource, PrimitiveUnknown},
		{"lines only", positionSource + `<lines><input semantic="POSITION" source="#pos"/><p>0 1</p></lines>`, PrimitiveUnknown},
		{"no position input", positionSource + `<triangles><input semantic="NORMAL" source="#pos"/><p>0 1 2</p></triangles>`, PrimitiveTriangles},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := parseMesh(t, tt.mesh)
			if m.PrimitiveType != tt.want {
				t.Errorf("primitive type: got %v, want %v", m.PrimitiveType, tt.want)
			}
			if m.HasVertex() || m.TriangleCount() != 0 {
				t.Error("mesh should have no vertex channel")
			}
			if _, _, ok := m.Bounds(); ok {
				t.Error("bounds of an empty mesh should not be ok")
			}
		})
	}
}

func TestAssemble_IndexOutOfRange(t *testing.T) {
	doc := geometryDoc(positionSource + `
<triangles><input semantic="POSITION" source="#pos"/><p>0 1 4</p></triangles>`)
	err := NewParser().ParseBytes(doc)
	wantKind(t, err, MalformedInput)
}
