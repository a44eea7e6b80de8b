package collada

// InvalidStride marks an ArrayData channel that is absent from the mesh.
const InvalidStride int8 = -1

// ArrayData is one attribute channel of an assembled mesh.
type ArrayData struct {
	Stride  int8
	Values  []float32
	Indices []uint32
}

func invalidArray() ArrayData {
	return ArrayData{Stride: InvalidStride}
}

// Valid reports whether the channel is present.
func (a *ArrayData) Valid() bool {
	return a.Stride != InvalidStride
}

// Count returns the number of stride-sized elements in Values.
func (a *ArrayData) Count() int {
	if a.Stride <= 0 {
		return 0
	}
	return len(a.Values) / int(a.Stride)
}

// Vec returns element i of Values as a stride-sized slice.
func (a *ArrayData) Vec(i int) []float32 {
	s := int(a.Stride)
	return a.Values[i*s : i*s+s]
}

// Mesh is the flattened geometry of one <geometry><mesh>.
type Mesh struct {
	ID            string // geometry id
	Name          string // geometry name
	PrimitiveType PrimitiveType
	Vertex        ArrayData
	Normal        ArrayData
	UV            ArrayData
	Material      *Material

	materialSymbol string
}

func emptyMesh(id, name string) *Mesh {
	return &Mesh{
		ID:     id,
		Name:   name,
		Vertex: invalidArray(),
		Normal: invalidArray(),
		UV:     invalidArray(),
	}
}

// HasVertex reports whether the mesh has a position channel.
func (m *Mesh) HasVertex() bool { return m.Vertex.Valid() }

// HasNormal reports whether the mesh has a normal channel.
func (m *Mesh) HasNormal() bool { return m.Normal.Valid() }

// HasTexCoord reports whether the mesh has a texture coordinate channel.
func (m *Mesh) HasTexCoord() bool { return m.UV.Valid() }

// MaterialSymbol returns the material symbol the primitive declared.
func (m *Mesh) MaterialSymbol() string { return m.materialSymbol }

// TriangleCount returns the number of triangles the vertex indices describe.
func (m *Mesh) TriangleCount() int {
	if !m.HasVertex() {
		return 0
	}
	return len(m.Vertex.Indices) / 3
}

// Bounds returns the axis-aligned bounding box of the first three position
// components. ok is false when the mesh has no vertices.
func (m *Mesh) Bounds() (lo, hi [3]float32, ok bool) {
	if !m.HasVertex() || m.Vertex.Count() == 0 {
		return lo, hi, false
	}
	dims := int(m.Vertex.Stride)
	if dims > 3 {
		dims = 3
	}
	for i := 0; i < m.Vertex.Count(); i++ {
		v := m.Vertex.Vec(i)
		for d := 0; d < dims; d++ {
			if i == 0 || v[d] < lo[d] {
				lo[d] = v[d]
			}
			if i == 0 || v[d] > hi[d] {
				hi[d] = v[d]
			}
		}
	}
	return lo, hi, true
}
