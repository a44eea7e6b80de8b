package collada

import (
	"github.com/beevik/etree"
)

// Material is the shading block of an <effect>, reached through a <material>.
type Material struct {
	ID           string // material id
	Name         string
	ShadingModel string // blinn, phong, lambert or constant

	Diffuse    []float32
	Ambient    []float32
	Emission   []float32
	Specular   []float32
	Reflective []float32

	Shininess    float32
	Transparency float32
	Reflectivity float32

	// DiffuseTexture is the image file a <texture> diffuse refers to, as
	// written in library_images. The image itself is not loaded.
	DiffuseTexture string
}

// shadingModels are the profile_COMMON techniques we read, in priority order.
var shadingModels = []string{"blinn", "phong", "lambert", "constant"}

// materialLibrary resolves material ids to shared Material values.
type materialLibrary struct {
	materials map[string]*etree.Element
	effects   map[string]*etree.Element
	images    map[string]string // image id -> file reference
	resolved  map[string]*Material
}

// newMaterialLibrary indexes library_materials, library_effects and
// library_images. Any of them may be absent.
func newMaterialLibrary(root *etree.Element) *materialLibrary {
	lib := &materialLibrary{
		materials: indexByID(children(firstChild(root, "library_materials"), "material")),
		effects:   indexByID(children(firstChild(root, "library_effects"), "effect")),
		images:    make(map[string]string),
		resolved:  make(map[string]*Material),
	}
	for _, img := range children(firstChild(root, "library_images"), "image") {
		id, ok := attribute(img, "id")
		if !ok {
			continue
		}
		if _, dup := lib.images[id]; dup {
			continue
		}
		lib.images[id] = imageRef(img)
	}
	return lib
}

// imageRef returns the file reference of an <image>, in either the
// 1.4 (init_from text) or 1.5 (init_from/ref) form.
func imageRef(img *etree.Element) string {
	init := firstChild(img, "init_from")
	if ref := firstChild(init, "ref"); ref != nil {
		return text(ref)
	}
	return text(init)
}

// indexByID maps id attributes to elements. The first element wins.
func indexByID(elems []*etree.Element) map[string]*etree.Element {
	m := make(map[string]*etree.Element, len(elems))
	for _, el := range elems {
		id, ok := attribute(el, "id")
		if !ok {
			continue
		}
		if _, dup := m[id]; !dup {
			m[id] = el
		}
	}
	return m
}

// lookup returns the material with the given id, building it on first use.
// It returns nil, nil when the material or its effect does not exist.
func (lib *materialLibrary) lookup(id string) (*Material, error) {
	if m, ok := lib.resolved[id]; ok {
		return m, nil
	}
	m, err := lib.build(id)
	if err != nil {
		return nil, err
	}
	lib.resolved[id] = m
	return m, nil
}

func (lib *materialLibrary) build(id string) (*Material, error) {
	matEl, ok := lib.materials[id]
	if !ok {
		return nil, nil
	}
	url, ok := attribute(firstChild(matEl, "instance_effect"), "url")
	if !ok {
		return nil, nil
	}
	effect, ok := lib.effects[stripFragment(url)]
	if !ok {
		return nil, nil
	}

	m := &Material{ID: id}
	m.Name, _ = attribute(matEl, "name")

	technique := childPath(effect, "profile_COMMON", "technique")
	var shading *etree.Element
	for _, model := range shadingModels {
		if shading = firstChild(technique, model); shading != nil {
			m.ShadingModel = model
			break
		}
	}
	if shading == nil {
		return m, nil
	}

	colors := []struct {
		tag string
		dst *[]float32
	}{
		{"diffuse", &m.Diffuse},
		{"ambient", &m.Ambient},
		{"emission", &m.Emission},
		{"specular", &m.Specular},
		{"reflective", &m.Reflective},
	}
	for _, c := range colors {
		v, err := readColor(firstChild(shading, c.tag))
		if err != nil {
			return nil, err
		}
		*c.dst = v
	}

	floats := []struct {
		tag string
		dst *float32
	}{
		{"shininess", &m.Shininess},
		{"transparency", &m.Transparency},
		{"reflectivity", &m.Reflectivity},
	}
	for _, f := range floats {
		if err := readFloatParam(firstChild(shading, f.tag), f.dst); err != nil {
			return nil, err
		}
	}

	if tex := childPath(shading, "diffuse", "texture"); tex != nil {
		sampler, _ := attribute(tex, "texture")
		m.DiffuseTexture = lib.textureFile(effect, sampler)
	}
	return m, nil
}

// readColor reads the <color> child of a color-or-texture parameter.
func readColor(param *etree.Element) ([]float32, error) {
	c := firstChild(param, "color")
	if c == nil {
		return nil, nil
	}
	v, err := ReadFloats(text(c), 4)
	if err != nil {
		return nil, retag(err, param.Tag)
	}
	return v, nil
}

// readFloatParam reads the <float> child of a float-or-param parameter.
func readFloatParam(param *etree.Element, dst *float32) error {
	f := firstChild(param, "float")
	if f == nil {
		return nil
	}
	v, err := ReadFloats(text(f), 1)
	if err != nil {
		return retag(err, param.Tag)
	}
	if len(v) != 1 {
		return newParseError(MalformedInput, param.Tag, "expected one float, got %d", len(v))
	}
	*dst = v[0]
	return nil
}

// textureFile follows a <texture texture="..."> reference to an image file.
// The reference is either an image id or a sampler2D newparam whose source
// names a surface newparam initialised from an image.
func (lib *materialLibrary) textureFile(effect *etree.Element, ref string) string {
	if path, ok := lib.images[ref]; ok {
		return path
	}
	params := make(map[string]*etree.Element)
	for _, scope := range []*etree.Element{effect, firstChild(effect, "profile_COMMON")} {
		for _, np := range children(scope, "newparam") {
			if sid, ok := attribute(np, "sid"); ok {
				params[sid] = np
			}
		}
	}

	np, ok := params[ref]
	if !ok {
		return ""
	}
	if sampler := firstChild(np, "sampler2D"); sampler != nil {
		if inst := firstChild(sampler, "instance_image"); inst != nil {
			url, _ := attribute(inst, "url")
			return lib.images[stripFragment(url)]
		}
		np, ok = params[text(firstChild(sampler, "source"))]
		if !ok {
			return ""
		}
	}
	image := text(childPath(np, "surface", "init_from"))
	return lib.images[image]
}
