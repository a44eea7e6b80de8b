package scene

import (
	"github.com/Faultbox/tinycollada/internal/engine/model"
	"github.com/Faultbox/tinycollada/internal/engine/picking"
	"github.com/Faultbox/tinycollada/pkg/collada"
	"github.com/Faultbox/tinycollada/pkg/math"
)

// Instance is one mesh placed in the world by a scene node.
type Instance struct {
	Node      string
	Mesh      int // index into Batch.Meshes
	Transform math.Mat4
	Bounds    model.Bounds // world-space
}

// Batch is the CPU-side content of a viewer scene: every distinct mesh once,
// and one instance per node that places it.
type Batch struct {
	Meshes    []*model.Mesh
	Instances []Instance
	Bounds    model.Bounds // world-space
}

// Prepare builds a batch from resolved scenes. A mesh instanced by several
// nodes is built once. Meshes without drawable geometry are skipped.
//
// The material a node binds is used for meshes that have none of their own,
// so a mesh shared between nodes is keyed by the material it ends up with.
func Prepare(scenes []*collada.Scene) *Batch {
	type key struct {
		mesh     *collada.Mesh
		material *collada.Material
	}
	built := make(map[key]int)
	b := &Batch{}

	for _, s := range scenes {
		for _, m := range s.Meshes {
			k := key{mesh: m, material: m.Material}
			if k.material == nil {
				k.material = s.Material
			}

			idx, ok := built[k]
			if !ok {
				mesh := model.BuildMesh(m, s.Material)
				if mesh == nil {
					continue
				}
				idx = len(b.Meshes)
				b.Meshes = append(b.Meshes, mesh)
				built[k] = idx
			}

			world := model.TransformBounds(s.Transform, b.Meshes[idx].Bounds)
			b.Instances = append(b.Instances, Instance{Node: s.Name, Mesh: idx, Transform: s.Transform, Bounds: world})
			b.Bounds.Union(world)
		}
	}
	return b
}

// TriangleCount returns the number of triangles drawn per frame.
func (b *Batch) TriangleCount() int {
	n := 0
	for _, inst := range b.Instances {
		n += len(b.Meshes[inst.Mesh].Indices) / 3
	}
	return n
}

// Pick returns the index of the instance whose world bounds r enters first,
// or -1 when it misses them all.
func (b *Batch) Pick(r picking.Ray) int {
	best, bestT := -1, float32(0)
	for i, inst := range b.Instances {
		if !inst.Bounds.Valid() {
			continue
		}
		t, hit := r.IntersectBox(inst.Bounds.Min, inst.Bounds.Max)
		if hit && (best < 0 || t < bestT) {
			best, bestT = i, t
		}
	}
	return best
}
