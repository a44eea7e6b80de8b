package collada

import (
	"strconv"

	"github.com/beevik/etree"
)

// Semantics the assembler consumes.
const (
	SemanticVertex   = "VERTEX"
	SemanticPosition = "POSITION"
	SemanticNormal   = "NORMAL"
	SemanticTexCoord = "TEXCOORD"
)

// Input binds one column of the shared index stream to a source.
type Input struct {
	Semantic string
	SourceID string // '#' stripped
	Offset   int
	Set      int // TEXCOORD set, 0 when absent
}

// verticesNode is the <vertices> indirection layer of a mesh.
type verticesNode struct {
	id     string
	inputs []Input
}

// readVertices reads the <vertices> element of a mesh, if any.
// Its inner inputs carry no offset.
func readVertices(mesh *etree.Element) (*verticesNode, error) {
	el := firstChild(mesh, "vertices")
	if el == nil {
		return nil, nil
	}
	id, ok := attribute(el, "id")
	if !ok {
		return nil, newParseError(MissingAttribute, "vertices", "id attribute is required")
	}
	v := &verticesNode{id: id}
	for _, in := range children(el, "input") {
		input, err := readInput(in, "vertices")
		if err != nil {
			return nil, err
		}
		v.inputs = append(v.inputs, input)
	}
	return v, nil
}

// readInput reads one <input> declaration as written, without resolving
// vertices indirection.
func readInput(el *etree.Element, parent string) (Input, error) {
	var in Input

	source, ok := attribute(el, "source")
	if !ok {
		return in, newParseError(MalformedInput, parent, "input without source attribute")
	}
	in.SourceID = stripFragment(source)

	semantic, ok := attribute(el, "semantic")
	if !ok {
		return in, newParseError(MissingAttribute, parent, "input %q has no semantic", source)
	}
	in.Semantic = semantic

	if raw, ok := attribute(el, "offset"); ok {
		v, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return in, newParseError(InvalidNumber, parent, "input offset %q is not a valid number", raw)
		}
		in.Offset = int(v)
	}
	if raw, ok := attribute(el, "set"); ok {
		v, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return in, newParseError(InvalidNumber, parent, "input set %q is not a valid number", raw)
		}
		in.Set = int(v)
	}
	return in, nil
}

// resolvedInputs is the outcome of input resolution for one primitive.
type resolvedInputs struct {
	inputs   []Input
	rowWidth int // max declared offset + 1
}

// resolveInputs reads the inputs declared on a primitive element and
// rewrites any that point at the <vertices> node through to the sources the
// vertices node names. The rewritten input takes the inner semantic and keeps
// the outer offset.
func resolveInputs(prim *etree.Element, verts *verticesNode) (*resolvedInputs, error) {
	r := &resolvedInputs{}
	for _, el := range children(prim, "input") {
		in, err := readInput(el, prim.Tag)
		if err != nil {
			return nil, err
		}
		if in.Offset+1 > r.rowWidth {
			r.rowWidth = in.Offset + 1
		}

		if verts == nil || in.SourceID != verts.id {
			r.inputs = append(r.inputs, in)
			continue
		}
		if len(verts.inputs) == 0 {
			return nil, newParseError(MalformedInput, "vertices", "%q has no input to resolve through", verts.id)
		}
		for _, inner := range verts.inputs {
			r.inputs = append(r.inputs, Input{
				Semantic: inner.Semantic,
				SourceID: inner.SourceID,
				Offset:   in.Offset,
				Set:      in.Set,
			})
		}
	}
	return r, nil
}

// binding ties a source to the input that addresses it.
type binding struct {
	source *Source
	input  Input
}

// bindSources associates every source with the first input whose resolved
// source id equals the source id. Sources no input names are left out.
// The result keeps source document order.
func bindSources(table *sourceTable, inputs []Input) []binding {
	var out []binding
	for _, src := range table.list {
		for _, in := range inputs {
			if in.SourceID == src.ID {
				out = append(out, binding{source: src, input: in})
				break
			}
		}
	}
	return out
}

// bySemantic returns the first binding whose input carries semantic.
func bySemantic(bindings []binding, semantic string) (binding, bool) {
	for _, b := range bindings {
		if b.input.Semantic == semantic {
			return b, true
		}
	}
	return binding{}, false
}
