package model

import (
	"github.com/Faultbox/tinycollada/pkg/collada"
)

// Shading used when a mesh has no material or no colors.
var (
	DefaultColor   = [4]float32{0.7, 0.7, 0.7, 1}
	DefaultAmbient = [3]float32{0.2, 0.2, 0.2}
)

// BuildMesh creates a model mesh from a resolved COLLADA mesh. material
// overrides the mesh's own material when the mesh has none. It returns nil
// for a mesh without drawable geometry.
//
// Normals and texture coordinates are already aligned with the position
// channel, so each position becomes exactly one vertex and the vertex index
// stream is used as is. A mesh without normals gets smooth normals.
func BuildMesh(m *collada.Mesh, material *collada.Material) *Mesh {
	if m == nil || !m.HasVertex() || m.TriangleCount() == 0 {
		return nil
	}

	out := &Mesh{
		Name:     m.Name,
		Vertices: make([]Vertex, m.Vertex.Count()),
		Indices:  m.Vertex.Indices[:m.TriangleCount()*3],
		Color:    DefaultColor,
		Ambient:  DefaultAmbient,
	}
	if out.Name == "" {
		out.Name = m.ID
	}

	for i := range out.Vertices {
		v := &out.Vertices[i]
		copy(v.Position[:], m.Vertex.Vec(i))
		out.Bounds.Add(v.Position)

		if m.HasNormal() && i < m.Normal.Count() {
			copy(v.Normal[:], m.Normal.Vec(i))
		}
		if m.HasTexCoord() && i < m.UV.Count() {
			copy(v.TexCoord[:], m.UV.Vec(i))
		}
	}

	if !m.HasNormal() {
		SmoothNormals(out.Vertices, out.Indices)
	}

	if m.Material != nil {
		material = m.Material
	}
	applyMaterial(out, material)
	if material != nil && m.HasTexCoord() {
		out.Texture = material.DiffuseTexture
	}
	return out
}

// applyMaterial copies the diffuse and ambient colors of mat onto mesh.
func applyMaterial(mesh *Mesh, mat *collada.Material) {
	if mat == nil {
		return
	}
	if len(mat.Diffuse) >= 3 {
		copy(mesh.Color[:], mat.Diffuse)
		if len(mat.Diffuse) < 4 {
			mesh.Color[3] = 1
		}
	}
	if len(mat.Ambient) >= 3 {
		copy(mesh.Ambient[:], mat.Ambient[:3])
	}
}

// SmoothNormals sets each vertex normal to the area-weighted average of the
// faces that use it. Vertices no face uses point up.
func SmoothNormals(vertices []Vertex, indices []uint32) {
	sums := make([][3]float32, len(vertices))
	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		if int(a) >= len(vertices) || int(b) >= len(vertices) || int(c) >= len(vertices) {
			continue
		}
		p0, p1, p2 := vertices[a].Position, vertices[b].Position, vertices[c].Position
		e1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		e2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		// Unnormalized, so larger faces weigh more.
		n := Cross(e1, e2)
		for _, idx := range [3]uint32{a, b, c} {
			sums[idx][0] += n[0]
			sums[idx][1] += n[1]
			sums[idx][2] += n[2]
		}
	}
	for i := range vertices {
		vertices[i].Normal = Normalize(sums[i])
	}
}
