package collada

import (
	"testing"
)

func TestResolveInputs_VerticesIndirection(t *testing.T) {
	mesh := element(t, `<mesh>
  <vertices id="verts1"><input semantic="POSITION" source="#pos-array"/></vertices>
  <triangles count="1">
    <input semantic="VERTEX" source="#verts1" offset="0"/>
    <input semantic="NORMAL" source="#norm" offset="1"/>
  </triangles>
</mesh>`)

	verts, err := readVertices(mesh)
	if err != nil {
		t.Fatalf("readVertices: %v", err)
	}
	r, err := resolveInputs(firstChild(mesh, "triangles"), verts)
	if err != nil {
		t.Fatalf("resolveInputs: %v", err)
	}

	want := []Input{
		{Semantic: "POSITION", SourceID: "pos-array", Offset: 0},
		{Semantic: "NORMAL", SourceID: "norm", Offset: 1},
	}
	if len(r.inputs) != len(want) {
		t.Fatalf("expected %d inputs, got %d", len(want), len(r.inputs))
	}
	for i := range want {
		if r.inputs[i] != want[i] {
			t.Errorf("input %d: got %+v, want %+v", i, r.inputs[i], want[i])
		}
	}
	if r.rowWidth != 2 {
		t.Errorf("row width: got %d, want 2", r.rowWidth)
	}
}

func TestResolveInputs_MultipleVerticesInputs(t *testing.T) {
	mesh := element(t, `<mesh>
  <vertices id="v">
    <input semantic="POSITION" source="#p"/>
    <input semantic="NORMAL" source="#n"/>
  </vertices>
  <triangles>
    <input semantic="VERTEX" source="#v" offset="0"/>
    <input semantic="TEXCOORD" source="#uv" offset="1" set="1"/>
  </triangles>
</mesh>`)

	verts, err := readVertices(mesh)
	if err != nil {
		t.Fatalf("readVertices: %v", err)
	}
	r, err := resolveInputs(firstChild(mesh, "triangles"), verts)
	if err != nil {
		t.Fatalf("resolveInputs: %v", err)
	}

	want := []Input{
		{Semantic: "POSITION", SourceID: "p", Offset: 0},
		{Semantic: "NORMAL", SourceID: "n", Offset: 0},
		{Semantic: "TEXCOORD", SourceID: "uv", Offset: 1, Set: 1},
	}
	if len(r.inputs) != len(want) {
		t.Fatalf("expected %d inputs, got %d: %+v", len(want), len(r.inputs), r.inputs)
	}
	for i := range want {
		if r.inputs[i] != want[i] {
			t.Errorf("input %d: got %+v, want %+v", i, r.inputs[i], want[i])
		}
	}
	// Shared offsets do not widen the row.
	if r.rowWidth != 2 {
		t.Errorf("row width: got %d, want 2", r.rowWidth)
	}
}

func TestResolveInputs_DefaultsAndDirectInputs(t *testing.T) {
	prim := element(t, `<triangles><input semantic="POSITION" source="pos"/></triangles>`)
	r, err := resolveInputs(prim, nil)
	if err != nil {
		t.Fatalf("resolveInputs: %v", err)
	}
	if len(r.inputs) != 1 {
		t.Fatalf("expected 1 input, got %d", len(r.inputs))
	}
	in := r.inputs[0]
	if in.Offset != 0 || in.SourceID != "pos" || in.Semantic != "POSITION" {
		t.Errorf("unexpected input %+v", in)
	}
	if r.rowWidth != 1 {
		t.Errorf("row width: got %d, want 1", r.rowWidth)
	}
}

func TestResolveInputs_Errors(t *testing.T) {
	tests := []struct {
		name string
		prim string
		kind ErrorKind
	}{
		{"missing source", `<triangles><input semantic="VERTEX" offset="0"/></triangles>`, MalformedInput},
		{"missing semantic", `<triangles><input source="#v" offset="0"/></triangles>`, MissingAttribute},
		{"bad offset", `<triangles><input semantic="VERTEX" source="#v" offset="x"/></triangles>`, InvalidNumber},
		{"negative offset", `<triangles><input semantic="VERTEX" source="#v" offset="-1"/></triangles>`, InvalidNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveInputs(element(t, tt.prim), nil)
			wantKind(t, err, tt.kind)
		})
	}
}

func TestReadVertices_Errors(t *testing.T) {
	_, err := readVertices(element(t, `<mesh><vertices><input semantic="POSITION" source="#p"/></vertices></mesh>`))
	wantKind(t, err, MissingAttribute)

	_, err = readVertices(element(t, `<mesh><vertices id="v"><input semantic="POSITION"/></vertices></mesh>`))
	wantKind(t, err, MalformedInput)

	mesh := element(t, `<mesh><vertices id="v"/><triangles><input semantic="VERTEX" source="#v"/></triangles></mesh>`)
	verts, err := readVertices(mesh)
	if err != nil {
		t.Fatalf("readVertices: %v", err)
	}
	_, err = resolveInputs(firstChild(mesh, "triangles"), verts)
	wantKind(t, err, MalformedInput)
}

func TestBindSources(t *testing.T) {
	table := &sourceTable{
		list: []*Source{
			{ID: "pos", Stride: 3},
			{ID: "unused", Stride: 3},
			{ID: "norm", Stride: 3},
		},
	}
	inputs := []Input{
		{Semantic: "POSITION", SourceID: "pos"},
		{Semantic: "NORMAL", SourceID: "norm", Offset: 1},
		{Semantic: "TEXCOORD", SourceID: "missing", Offset: 2},
	}

	bindings := bindSources(table, inputs)
	if len(bindings) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(bindings))
	}

	b, ok := bySemantic(bindings, "NORMAL")
	if !ok || b.source.ID != "norm" || b.input.Offset != 1 {
		t.Errorf("NORMAL binding: got %+v, %v", b, ok)
	}
	if _, ok := bySemantic(bindings, "TEXCOORD"); ok {
		t.Error("input naming an absent source should not bind")
	}
}
