package collada

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// PrimitiveType is the decoded primitive encoding of a mesh.
type PrimitiveType int

const (
	PrimitiveUnknown PrimitiveType = iota
	PrimitiveTriangles
)

// String returns a human-readable primitive type name.
func (p PrimitiveType) String() string {
	switch p {
	case PrimitiveTriangles:
		return "Triangles"
	case PrimitiveUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// Encoding is the element a primitive was declared with.
type Encoding int

const (
	EncodingNone Encoding = iota
	EncodingTriangles
	EncodingPolylist
)

// primitiveProbe lists the encodings we decode, in priority order.
var primitiveProbe = []struct {
	tag      string
	encoding Encoding
}{
	{"triangles", EncodingTriangles},
	{"polylist", EncodingPolylist},
}

// DetectPrimitive returns the first supported primitive element of a
// <mesh>. Legacy encodings (lines, polygons, tristrips, ...) and meshes
// without a primitive report EncodingNone and a nil element.
func DetectPrimitive(mesh *etree.Element) (Encoding, *etree.Element) {
	for _, p := range primitiveProbe {
		if el := firstChild(mesh, p.tag); el != nil {
			return p.encoding, el
		}
	}
	return EncodingNone, nil
}

// primitive is the decoded index data of one primitive element.
type primitive struct {
	encoding Encoding
	material string // material symbol
	count    int    // declared face count
	raw      []uint32
	counts   []uint32 // face vertex counts; nil when pre-triangulated
	rowWidth int
	rows     []uint32 // triangulated row order; nil means rows in stream order
}

// rowCount returns the number of whole rows in the raw stream.
func (p *primitive) rowCount() int {
	if p.rowWidth == 0 {
		return 0
	}
	return len(p.raw) / p.rowWidth
}

// decodePrimitive reads the index stream of a triangles or polylist element
// and, when a face-count stream is present, triangulates it.
func decodePrimitive(el *etree.Element, encoding Encoding, rowWidth int) (*primitive, error) {
	p := &primitive{encoding: encoding, rowWidth: rowWidth}
	p.material, _ = attribute(el, "material")
	if raw, ok := attribute(el, "count"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, newParseError(InvalidNumber, el.Tag, "count %q is not a valid number", raw)
		}
		p.count = n
	}

	raw, err := ReadUints(text(firstChild(el, "p")), scaledHint(p.count, rowWidth*3))
	if err != nil {
		return nil, retag(err, "p")
	}
	p.raw = raw

	if len(raw) > 0 && rowWidth == 0 {
		return nil, newParseError(MalformedInput, el.Tag, "index stream without inputs")
	}
	if rowWidth > 0 && len(raw)%rowWidth != 0 {
		return nil, newParseError(MalformedInput, "p", "%d indices is not a whole number of %d-wide rows", len(raw), rowWidth)
	}

	if encoding == EncodingPolylist {
		if vc := firstChild(el, "vcount"); vc != nil {
			counts, err := ReadUints(text(vc), scaledHint(p.count, 1))
			if err != nil {
				return nil, retag(err, "vcount")
			}
			p.counts = counts
		}
	}

	if p.counts == nil {
		if p.rowCount()%3 != 0 {
			return nil, newParseError(MalformedInput, "p", "%d rows is not a whole number of triangles", p.rowCount())
		}
		return p, nil
	}

	p.rows, err = Triangulate(p.counts, p.rowCount())
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Triangulate expands per-face vertex counts into the row order of the
// triangles they form. Triangles are emitted verbatim and quads as the fan
// (0,1,2)(0,2,3); any other count is rejected. rows is the number of rows
// in the index stream, and the faces must cover all of them.
func Triangulate(counts []uint32, rows int) ([]uint32, error) {
	out := make([]uint32, 0, len(counts)*6)
	base := 0
	for face, n := range counts {
		if n != 3 && n != 4 {
			return nil, newParseError(UnsupportedPolygon, "vcount", "face %d has %d vertices", face, n)
		}
		if base+int(n) > rows {
			return nil, newParseError(MalformedInput, "vcount",
				"face %d needs rows %d..%d but the index stream has %d rows", face, base, base+int(n)-1, rows)
		}
		b := uint32(base)
		if n == 3 {
			out = append(out, b, b+1, b+2)
		} else {
			out = append(out, b, b+1, b+2, b, b+2, b+3)
		}
		base += int(n)
	}
	if base != rows {
		return nil, newParseError(MalformedInput, "vcount",
			"faces cover %d rows but the index stream has %d", base, rows)
	}
	return out, nil
}

// indexView is a strided view over a shared index stream.
type indexView struct {
	raw   []uint32
	width int
	order []uint32 // row order; nil walks rows in stream order
}

func (p *primitive) view() indexView {
	return indexView{raw: p.raw, width: p.rowWidth, order: p.rows}
}

// column returns the index at offset of every row in the view's order.
func (v indexView) column(offset int) []uint32 {
	if v.width == 0 || offset >= v.width {
		return nil
	}
	if v.order == nil {
		rows := len(v.raw) / v.width
		out := make([]uint32, rows)
		for r := 0; r < rows; r++ {
			out[r] = v.raw[r*v.width+offset]
		}
		return out
	}
	out := make([]uint32, len(v.order))
	for i, r := range v.order {
		out[i] = v.raw[int(r)*v.width+offset]
	}
	return out
}
