package collada

import (
	"strconv"
)

// isSpace reports ASCII whitespace. Unicode spaces are not separators in
// COLLADA list types.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// eachToken calls fn for every whitespace-separated token of s, with the
// token's zero-based ordinal. It stops at the first error fn returns.
func eachToken(s string, fn func(i int, tok string) error) error {
	n := 0
	for i := 0; i < len(s); {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		start := i
		for i < len(s) && !isSpace(s[i]) {
			i++
		}
		if start == i {
			break
		}
		if err := fn(n, s[start:i]); err != nil {
			return err
		}
		n++
	}
	return nil
}

// maxHint bounds every capacity hint taken from a count attribute.
const maxHint = 1 << 24

// scaledHint returns n*per as a capacity hint, or zero when the product is
// negative or exceeds maxHint.
func scaledHint(n, per int) int {
	if n <= 0 || per <= 0 || n > maxHint/per {
		return 0
	}
	return n * per
}

// clampHint keeps a caller's capacity hint within 0..maxHint.
func clampHint(capacity int) int {
	if capacity < 0 || capacity > maxHint {
		return 0
	}
	return capacity
}

func invalidNumber(element string, i int, tok string) error {
	return newParseError(InvalidNumber, element, "token %d %q is not a valid number", i, tok)
}

// ReadFloats parses whitespace-separated floating point values.
// capacity is an allocation hint and may be zero.
func ReadFloats(s string, capacity int) ([]float32, error) {
	out := make([]float32, 0, clampHint(capacity))
	err := eachToken(s, func(i int, tok string) error {
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return invalidNumber("float_array", i, tok)
		}
		out = append(out, float32(v))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadInts parses whitespace-separated signed integers and returns them
// as float values, which is how int_array sources are consumed.
func ReadInts(s string, capacity int) ([]float32, error) {
	out := make([]float32, 0, clampHint(capacity))
	err := eachToken(s, func(i int, tok string) error {
		v, err := strconv.ParseInt(tok, 10, 32)
		if err != nil {
			return invalidNumber("int_array", i, tok)
		}
		out = append(out, float32(v))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadUints parses whitespace-separated unsigned integers, as found in
// <p> index streams and <vcount> face-count streams.
func ReadUints(s string, capacity int) ([]uint32, error) {
	out := make([]uint32, 0, clampHint(capacity))
	err := eachToken(s, func(i int, tok string) error {
		v, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return invalidNumber("p", i, tok)
		}
		out = append(out, uint32(v))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
