package collada

import (
	"slices"

	"github.com/beevik/etree"
)

// assembleMesh resolves one <mesh> element into flat attribute arrays that
// share the vertex channel's index buffer.
func assembleMesh(id, name string, meshEl *etree.Element) (*Mesh, error) {
	mesh := emptyMesh(id, name)

	table, err := readSources(meshEl)
	if err != nil {
		return nil, err
	}

	encoding, primEl := DetectPrimitive(meshEl)
	if encoding == EncodingNone {
		return mesh, nil
	}

	verts, err := readVertices(meshEl)
	if err != nil {
		return nil, err
	}
	resolved, err := resolveInputs(primEl, verts)
	if err != nil {
		return nil, err
	}
	prim, err := decodePrimitive(primEl, encoding, resolved.rowWidth)
	if err != nil {
		return nil, err
	}
	mesh.PrimitiveType = PrimitiveTriangles
	mesh.materialSymbol = prim.material

	bindings := bindSources(table, resolved.inputs)
	view := prim.view()

	pos, ok := bySemantic(bindings, SemanticPosition)
	if !ok {
		// Nothing drawable; the caller decides whether to skip the mesh.
		return mesh, nil
	}
	mesh.Vertex, err = channel(pos, view)
	if err != nil {
		return nil, err
	}

	if b, ok := bySemantic(bindings, SemanticNormal); ok {
		if mesh.Normal, err = alignedChannel(b, view, &mesh.Vertex); err != nil {
			return nil, err
		}
	}
	if b, ok := bySemantic(bindings, SemanticTexCoord); ok {
		if mesh.UV, err = alignedChannel(b, view, &mesh.Vertex); err != nil {
			return nil, err
		}
	}
	return mesh, nil
}

// channel copies a bound source and extracts its index column.
func channel(b binding, view indexView) (ArrayData, error) {
	a := ArrayData{
		Stride:  int8(b.source.Stride),
		Values:  slices.Clone(b.source.Values),
		Indices: view.column(b.input.Offset),
	}
	count := uint32(b.source.Count())
	for i, idx := range a.Indices {
		if idx >= count {
			return ArrayData{}, newParseError(MalformedInput, "p",
				"%s index %d at position %d exceeds source %q of %d elements",
				b.input.Semantic, idx, i, b.source.ID, count)
		}
	}
	return a, nil
}

// alignedChannel extracts a channel and re-projects it onto the vertex
// channel's index domain.
func alignedChannel(b binding, view indexView, vertex *ArrayData) (ArrayData, error) {
	a, err := channel(b, view)
	if err != nil {
		return ArrayData{}, err
	}
	return Reproject(a, vertex), nil
}

// Reproject rewrites ch so that vertex.Indices addresses it. When the two
// index streams are already identical ch is returned unchanged. Otherwise the
// values are rebuilt with one stride-sized block per vertex; each block is
// taken from the last face-vertex that addresses it. Blocks no face-vertex
// addresses stay zero.
//
// ch.Indices and vertex.Indices must have equal length and every index must
// lie inside its channel.
func Reproject(ch ArrayData, vertex *ArrayData) ArrayData {
	if slices.Equal(ch.Indices, vertex.Indices) {
		return ch
	}

	stride := int(ch.Stride)
	out := ArrayData{
		Stride:  ch.Stride,
		Values:  make([]float32, vertex.Count()*stride),
		Indices: slices.Clone(vertex.Indices),
	}
	for i, vi := range vertex.Indices {
		src := int(ch.Indices[i]) * stride
		dst := int(vi) * stride
		copy(out.Values[dst:dst+stride], ch.Values[src:src+stride])
	}
	return out
}
