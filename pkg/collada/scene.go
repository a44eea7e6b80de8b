package collada

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/Faultbox/tinycollada/pkg/math"
)

// Scene is one visual-scene node that instances geometry.
type Scene struct {
	Name      string // node name, or id when unnamed
	Transform math.Mat4
	Meshes    []*Mesh
	Material  *Material
}

// sceneBuilder walks library_visual_scenes.
type sceneBuilder struct {
	geometries map[string][]*Mesh
	materials  *materialLibrary
	log        *zap.Logger
	scenes     []*Scene
}

// build visits every node of every visual scene in document order.
func (b *sceneBuilder) build(root *etree.Element) error {
	for _, vs := range children(firstChild(root, "library_visual_scenes"), "visual_scene") {
		for _, node := range children(vs, "node") {
			if err := b.visit(node, math.Identity()); err != nil {
				return err
			}
		}
	}
	return nil
}

// visit emits a Scene for node when it instances geometry, then descends
// into its child nodes with the composed transform.
func (b *sceneBuilder) visit(node *etree.Element, parent math.Mat4) error {
	local, err := nodeTransform(node)
	if err != nil {
		return err
	}
	world := parent.Mul(local)

	if instances := children(node, "instance_geometry"); len(instances) > 0 {
		scene, err := b.scene(node, instances, world)
		if err != nil {
			return err
		}
		b.scenes = append(b.scenes, scene)
	}

	for _, child := range children(node, "node") {
		if err := b.visit(child, world); err != nil {
			return err
		}
	}
	return nil
}

func (b *sceneBuilder) scene(node *etree.Element, instances []*etree.Element, world math.Mat4) (*Scene, error) {
	s := &Scene{Transform: world}
	if name, ok := attribute(node, "name"); ok {
		s.Name = name
	} else {
		s.Name, _ = attribute(node, "id")
	}

	for _, inst := range instances {
		url, _ := attribute(inst, "url")
		meshes, ok := b.geometries[stripFragment(url)]
		if !ok {
			b.log.Warn("instance_geometry references unknown geometry",
				zap.String("node", s.Name), zap.String("url", url))
			continue
		}

		bound, err := b.bindMaterials(inst, meshes)
		if err != nil {
			return nil, err
		}
		s.Meshes = append(s.Meshes, meshes...)
		if s.Material == nil {
			s.Material = bound
		}
	}
	return s, nil
}

// bindMaterials resolves the instance_material bindings of one
// instance_geometry. It returns the first material that resolves and gives
// each mesh still without a material the one bound to its symbol.
func (b *sceneBuilder) bindMaterials(inst *etree.Element, meshes []*Mesh) (*Material, error) {
	var first *Material
	bindings := children(childPath(inst, "bind_material", "technique_common"), "instance_material")
	for _, im := range bindings {
		target, ok := attribute(im, "target")
		if !ok {
			continue
		}
		mat, err := b.materials.lookup(stripFragment(target))
		if err != nil {
			return nil, err
		}
		if mat == nil {
			b.log.Debug("material binding not resolved", zap.String("target", target))
			continue
		}
		if first == nil {
			first = mat
		}

		symbol, _ := attribute(im, "symbol")
		for _, m := range meshes {
			if m.Material == nil && m.materialSymbol == symbol {
				m.Material = mat
			}
		}
	}
	return first, nil
}
