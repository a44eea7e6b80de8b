package collada

import (
	"github.com/beevik/etree"

	"github.com/Faultbox/tinycollada/pkg/math"
)

// nodeTransform returns the local transform of a <node>.
//
// A <matrix> is read in text order and transposed, so the result is column
// major like every math.Mat4. Without a matrix, <translate>, <rotate> and
// <scale> elements compose in document order. A node with neither has the
// identity transform.
func nodeTransform(node *etree.Element) (math.Mat4, error) {
	if el := firstChild(node, "matrix"); el != nil {
		values, err := ReadFloats(text(el), 16)
		if err != nil {
			return math.Identity(), retag(err, "matrix")
		}
		if len(values) != 16 {
			return math.Identity(), newParseError(MalformedInput, "matrix", "expected 16 values, got %d", len(values))
		}
		m, _ := math.FromSlice(values)
		return m.Transpose(), nil
	}

	local := math.Identity()
	for _, child := range node.ChildElements() {
		var step math.Mat4
		switch child.Tag {
		case "translate":
			v, err := readVector(child, 3)
			if err != nil {
				return math.Identity(), err
			}
			step = math.Translate(v[0], v[1], v[2])
		case "rotate":
			v, err := readVector(child, 4)
			if err != nil {
				return math.Identity(), err
			}
			step = math.RotateAxis([3]float32{v[0], v[1], v[2]}, math.Radians(v[3]))
		case "scale":
			v, err := readVector(child, 3)
			if err != nil {
				return math.Identity(), err
			}
			step = math.Scale(v[0], v[1], v[2])
		default:
			continue
		}
		local = local.Mul(step)
	}
	return local, nil
}

// readVector reads exactly n floats from an element's text.
func readVector(el *etree.Element, n int) ([]float32, error) {
	v, err := ReadFloats(text(el), n)
	if err != nil {
		return nil, retag(err, el.Tag)
	}
	if len(v) != n {
		return nil, newParseError(MalformedInput, el.Tag, "expected %d values, got %d", n, len(v))
	}
	return v, nil
}
