package collada

import (
	"errors"
	"testing"

	"github.com/beevik/etree"
)

// element parses an XML fragment and returns its root element.
func element(t *testing.T, src string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(src); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	if doc.Root() == nil {
		t.Fatal("fixture has no root element")
	}
	return doc.Root()
}

// geometryDoc wraps a <mesh> body into a document with one geometry "g"
// instanced by one node.
func geometryDoc(mesh string) []byte {
	return []byte(`<?xml version="1.0"?>
<COLLADA xmlns="http://www.collada.org/2005/11/COLLADASchema" version="1.4.1">
  <library_geometries>
    <geometry id="g" name="G"><mesh>` + mesh + `</mesh></geometry>
  </library_geometries>
  <library_visual_scenes>
    <visual_scene id="s">
      <node id="n" name="N"><instance_geometry url="#g"/></node>
    </visual_scene>
  </library_visual_scenes>
</COLLADA>`)
}

// parseMesh parses a geometryDoc and returns its only mesh.
func parseMesh(t *testing.T, mesh string) *Mesh {
	t.Helper()
	p := NewParser()
	if err := p.ParseBytes(geometryDoc(mesh)); err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	scenes := p.Scenes()
	if len(scenes) != 1 || len(scenes[0].Meshes) != 1 {
		t.Fatalf("expected 1 scene with 1 mesh, got %d scenes", len(scenes))
	}
	return scenes[0].Meshes[0]
}

// wantKind fails unless err is a ParseError of the given kind.
func wantKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if pe.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%v)", kind, pe.Kind, err)
	}
	if !errors.Is(err, kind.sentinel()) {
		t.Errorf("errors.Is(err, %v) = false", kind.sentinel())
	}
}

const positionSource = `
<source id="pos">
  <float_array id="pos-array" count="12">0 0 0 1 0 0 1 1 0 0 1 0</float_array>
  <technique_common><accessor source="#pos-array" count="4" stride="3"/></technique_common>
</source>`
