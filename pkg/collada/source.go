package collada

import (
	"strconv"

	"github.com/beevik/etree"
)

// maxStride is the largest stride an ArrayData can carry.
const maxStride = 127

// Source is a named numeric array with the stride its accessor declares.
type Source struct {
	ID     string
	Stride int
	Values []float32
}

// Count returns the number of stride-sized elements in the source.
func (s *Source) Count() int {
	if s.Stride <= 0 {
		return 0
	}
	return len(s.Values) / s.Stride
}

// sourceTable holds the sources of one <mesh> in document order.
type sourceTable struct {
	list []*Source
	byID map[string]*Source
}

// lookup returns the first source with the given id.
func (t *sourceTable) lookup(id string) *Source {
	return t.byID[id]
}

// readSources builds the source table for a <mesh> element.
func readSources(mesh *etree.Element) (*sourceTable, error) {
	elems := children(mesh, "source")
	t := &sourceTable{
		list: make([]*Source, 0, len(elems)),
		byID: make(map[string]*Source, len(elems)),
	}
	for _, el := range elems {
		src, err := readSource(el)
		if err != nil {
			return nil, err
		}
		if src == nil {
			continue
		}
		t.list = append(t.list, src)
		if _, dup := t.byID[src.ID]; !dup {
			t.byID[src.ID] = src
		}
	}
	return t, nil
}

// readSource reads one <source>. It returns nil, nil for a source without
// a float_array or int_array payload.
func readSource(el *etree.Element) (*Source, error) {
	id, ok := attribute(el, "id")
	if !ok {
		return nil, newParseError(MissingAttribute, "source", "id attribute is required")
	}

	read := ReadFloats
	array := firstChild(el, "float_array")
	if array == nil {
		array = firstChild(el, "int_array")
		read = ReadInts
	}
	if array == nil {
		return nil, nil
	}

	stride, err := readStride(el)
	if err != nil {
		return nil, err
	}

	values, err := read(text(array), countHint(array))
	if err != nil {
		return nil, retag(err, array.Tag)
	}

	return &Source{ID: id, Stride: stride, Values: values}, nil
}

// readStride returns technique_common/accessor/@stride, defaulting to 1.
func readStride(source *etree.Element) (int, error) {
	accessor := childPath(source, "technique_common", "accessor")
	raw, ok := attribute(accessor, "stride")
	if !ok {
		return 1, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, newParseError(InvalidNumber, "accessor", "stride %q is not a valid number", raw)
	}
	if v == 0 || v > maxStride {
		return 0, newParseError(MalformedInput, "accessor", "stride %d out of range 1..%d", v, maxStride)
	}
	return int(v), nil
}

// countHint returns the count attribute as a capacity hint.
func countHint(e *etree.Element) int {
	raw, ok := attribute(e, "count")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return clampHint(n)
}
