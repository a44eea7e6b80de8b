// Package report summarizes resolved COLLADA scenes for the daeinfo tool.
package report

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tinycollada/pkg/collada"
)

// Document is the summary of one parsed file.
type Document struct {
	Path      string     `yaml:"path"`
	Totals    Totals     `yaml:"totals"`
	Scenes    []Scene    `yaml:"scenes"`
	Materials []Material `yaml:"materials,omitempty"`
}

// Totals counts what the document resolved to.
type Totals struct {
	Scenes    int `yaml:"scenes"`
	Meshes    int `yaml:"meshes"` // distinct meshes
	Triangles int `yaml:"triangles"`
	Materials int `yaml:"materials"`
}

// Scene summarizes one node that instances geometry.
type Scene struct {
	Name        string     `yaml:"name"`
	Translation [3]float32 `yaml:"translation,flow"`
	Material    string     `yaml:"material,omitempty"`
	Meshes      []Mesh     `yaml:"meshes"`
}

// Mesh summarizes one assembled mesh.
type Mesh struct {
	ID        string      `yaml:"id"`
	Name      string      `yaml:"name,omitempty"`
	Primitive string      `yaml:"primitive"`
	Vertices  int         `yaml:"vertices"`
	Triangles int         `yaml:"triangles"`
	Normals   bool        `yaml:"normals"`
	TexCoords bool        `yaml:"texcoords"`
	Material  string      `yaml:"material,omitempty"`
	Min       *[3]float32 `yaml:"min,omitempty,flow"`
	Max       *[3]float32 `yaml:"max,omitempty,flow"`
}

// Material summarizes one resolved material.
type Material struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name,omitempty"`
	Shading   string    `yaml:"shading,omitempty"`
	Diffuse   []float32 `yaml:"diffuse,omitempty,flow"`
	Shininess float32   `yaml:"shininess,omitempty"`
	Texture   string    `yaml:"texture,omitempty"`
}

// Build summarizes scenes. Meshes and materials shared between scenes are
// counted once; materials are listed in first-use order.
func Build(path string, scenes []*collada.Scene) *Document {
	doc := &Document{Path: path, Scenes: make([]Scene, 0, len(scenes))}
	seenMesh := make(map[*collada.Mesh]bool)
	seenMat := make(map[*collada.Material]bool)

	addMaterial := func(m *collada.Material) string {
		if m == nil {
			return ""
		}
		if !seenMat[m] {
			seenMat[m] = true
			doc.Materials = append(doc.Materials, material(m))
		}
		return m.ID
	}

	for _, s := range scenes {
		t := s.Transform.Translation()
		out := Scene{
			Name:        s.Name,
			Translation: [3]float32{t.X, t.Y, t.Z},
			Material:    addMaterial(s.Material),
			Meshes:      make([]Mesh, 0, len(s.Meshes)),
		}
		for _, m := range s.Meshes {
			sm := mesh(m)
			sm.Material = addMaterial(m.Material)
			out.Meshes = append(out.Meshes, sm)

			doc.Totals.Triangles += sm.Triangles
			if !seenMesh[m] {
				seenMesh[m] = true
				doc.Totals.Meshes++
			}
		}
		doc.Scenes = append(doc.Scenes, out)
	}

	doc.Totals.Scenes = len(doc.Scenes)
	doc.Totals.Materials = len(doc.Materials)
	return doc
}

func mesh(m *collada.Mesh) Mesh {
	out := Mesh{
		ID:        m.ID,
		Name:      m.Name,
		Primitive: m.PrimitiveType.String(),
		Triangles: m.TriangleCount(),
		Normals:   m.HasNormal(),
		TexCoords: m.HasTexCoord(),
	}
	if m.HasVertex() {
		out.Vertices = m.Vertex.Count()
	}
	if lo, hi, ok := m.Bounds(); ok {
		out.Min, out.Max = &lo, &hi
	}
	return out
}

func material(m *collada.Material) Material {
	return Material{
		ID:        m.ID,
		Name:      m.Name,
		Shading:   m.ShadingModel,
		Diffuse:   m.Diffuse,
		Shininess: m.Shininess,
		Texture:   m.DiffuseTexture,
	}
}

// WriteYAML encodes doc as YAML.
func WriteYAML(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
