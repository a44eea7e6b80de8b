package collada

import (
	"slices"
	"testing"
)

func TestReadSources(t *testing.T) {
	mesh := element(t, `<mesh>
  <source id="pos">
    <float_array id="pos-array" count="6">0 1 2 3 4 5</float_array>
    <technique_common><accessor source="#pos-array" count="2" stride="3"/></technique_common>
  </source>
  <source id="ids">
    <int_array id="ids-array" count="3">-1 0 7</int_array>
  </source>
  <source id="names">
    <Name_array id="names-array" count="1">bone</Name_array>
  </source>
  <source id="pos">
    <float_array id="dup-array">9 9 9</float_array>
  </source>
</mesh>`)

	table, err := readSources(mesh)
	if err != nil {
		t.Fatalf("readSources: %v", err)
	}

	// The Name_array source is skipped, the duplicate kept in the list only.
	if len(table.list) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(table.list))
	}

	pos := table.lookup("pos")
	if pos == nil {
		t.Fatal("pos source not found")
	}
	if pos.Stride != 3 || pos.Count() != 2 {
		t.Errorf("pos: stride %d count %d, want 3 and 2", pos.Stride, pos.Count())
	}
	if !slices.Equal(pos.Values, []float32{0, 1, 2, 3, 4, 5}) {
		t.Errorf("pos values: got %v", pos.Values)
	}

	ids := table.lookup("ids")
	if ids == nil {
		t.Fatal("int_array source not found")
	}
	if ids.Stride != 1 {
		t.Errorf("ids: default stride should be 1, got %d", ids.Stride)
	}
	if !slices.Equal(ids.Values, []float32{-1, 0, 7}) {
		t.Errorf("ids values: got %v", ids.Values)
	}

	if table.lookup("names") != nil {
		t.Error("source without a numeric array should not be in the table")
	}
}

func TestReadSources_FloatArrayWins(t *testing.T) {
	mesh := element(t, `<mesh><source id="s">
  <int_array>1 2</int_array>
  <float_array>0.5</float_array>
</source></mesh>`)
	table, err := readSources(mesh)
	if err != nil {
		t.Fatalf("readSources: %v", err)
	}
	if got := table.lookup("s").Values; !slices.Equal(got, []float32{0.5}) {
		t.Errorf("expected float_array payload, got %v", got)
	}
}

func TestReadSources_Errors(t *testing.T) {
	tests := []struct {
		name string
		mesh string
		kind ErrorKind
	}{
		{
			name: "missing id",
			mesh: `<mesh><source><float_array>1</float_array></source></mesh>`,
			kind: MissingAttribute,
		},
		{
			name: "bad float",
			mesh: `<mesh><source id="s"><float_array>1 nope</float_array></source></mesh>`,
			kind: InvalidNumber,
		},
		{
			name: "bad stride",
			mesh: `<mesh><source id="s"><float_array>1</float_array>
<technique_common><accessor stride="three"/></technique_common></source></mesh>`,
			kind: InvalidNumber,
		},
		{
			name: "zero stride",
			mesh: `<mesh><source id="s"><float_array>1</float_array>
<technique_common><accessor stride="0"/></technique_common></source></mesh>`,
			kind: MalformedInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readSources(element(t, tt.mesh))
			wantKind(t, err, tt.kind)
		})
	}
}

func TestReadSources_CountIsOnlyAHint(t *testing.T) {
	mesh := element(t, `<mesh><source id="s"><float_array count="bogus">1 2 3</float_array></source></mesh>`)
	table, err := readSources(mesh)
	if err != nil {
		t.Fatalf("readSources: %v", err)
	}
	if got := len(table.lookup("s").Values); got != 3 {
		t.Errorf("expected 3 values, got %d", got)
	}
}
