package collada

import (
	"strings"

	"github.com/beevik/etree"
)

// The resolver only needs a read-only walk over named elements.
// These helpers keep every etree call in one place.

// firstChild returns the first direct child named name, or nil.
func firstChild(e *etree.Element, name string) *etree.Element {
	if e == nil {
		return nil
	}
	return e.SelectElement(name)
}

// childPath follows a chain of first-child lookups.
func childPath(e *etree.Element, names ...string) *etree.Element {
	for _, name := range names {
		e = firstChild(e, name)
		if e == nil {
			return nil
		}
	}
	return e
}

// children returns all direct children named name in document order.
func children(e *etree.Element, name string) []*etree.Element {
	if e == nil {
		return nil
	}
	return e.SelectElements(name)
}

// attribute returns the attribute value and whether it was present.
func attribute(e *etree.Element, name string) (string, bool) {
	if e == nil {
		return "", false
	}
	a := e.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// text returns the character data of e, or "" for a nil element.
func text(e *etree.Element) string {
	if e == nil {
		return ""
	}
	return e.Text()
}

// stripFragment removes one leading '#' from a URI fragment reference.
func stripFragment(ref string) string {
	return strings.TrimPrefix(ref, "#")
}
