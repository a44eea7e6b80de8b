// Package model turns resolved COLLADA meshes into vertex and index data
// ready for GPU upload.
package model

// Vertex represents a model mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh holds the complete model mesh data ready for GPU upload.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds

	// Color is the RGBA diffuse color the mesh is shaded with.
	Color [4]float32
	// Ambient is the RGB ambient term.
	Ambient [3]float32
	// Texture is the diffuse image reference of the material, as written in
	// the document. Empty when the mesh has no texture coordinates.
	Texture string
}

// Bounds holds an axis-aligned bounding box. The zero value is empty.
type Bounds struct {
	Min   [3]float32
	Max   [3]float32
	valid bool
}

// Valid reports whether at least one point has been added.
func (b Bounds) Valid() bool {
	return b.valid
}

// Add grows the box to contain p.
func (b *Bounds) Add(p [3]float32) {
	if !b.valid {
		b.Min, b.Max, b.valid = p, p, true
		return
	}
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

// Union grows the box to contain other.
func (b *Bounds) Union(other Bounds) {
	if !other.valid {
		return
	}
	b.Add(other.Min)
	b.Add(other.Max)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}
