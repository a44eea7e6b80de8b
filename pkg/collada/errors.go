package collada

import (
	"errors"
	"fmt"
)

// Sentinel errors. ParseError values unwrap to the sentinel of their kind,
// so callers can test with errors.Is.
var (
	ErrRead               = errors.New("collada: read error")
	ErrMissingAttribute   = errors.New("collada: missing attribute")
	ErrInvalidNumber      = errors.New("collada: invalid number")
	ErrMalformedInput     = errors.New("collada: malformed input")
	ErrUnsupportedPolygon = errors.New("collada: unsupported polygon")
)

// ErrorKind classifies a malformed-document condition.
type ErrorKind int

const (
	MissingAttribute ErrorKind = iota + 1
	InvalidNumber
	MalformedInput
	UnsupportedPolygon
)

// String returns a human-readable kind name.
func (k ErrorKind) String() string {
	switch k {
	case MissingAttribute:
		return "MissingAttribute"
	case InvalidNumber:
		return "InvalidNumber"
	case MalformedInput:
		return "MalformedInput"
	case UnsupportedPolygon:
		return "UnsupportedPolygon"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MissingAttribute:
		return ErrMissingAttribute
	case InvalidNumber:
		return ErrInvalidNumber
	case MalformedInput:
		return ErrMalformedInput
	case UnsupportedPolygon:
		return ErrUnsupportedPolygon
	default:
		return nil
	}
}

// ParseError reports a malformed COLLADA construct.
type ParseError struct {
	Kind    ErrorKind
	Element string // element the problem was found on, e.g. "source"
	Detail  string
}

func (e *ParseError) Error() string {
	if e.Element == "" {
		return fmt.Sprintf("collada: %s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("collada: %s: <%s>: %s", e.Kind, e.Element, e.Detail)
}

// Unwrap returns the sentinel error for the kind.
func (e *ParseError) Unwrap() error {
	return e.Kind.sentinel()
}

func newParseError(kind ErrorKind, element, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Element: element, Detail: fmt.Sprintf(format, args...)}
}

// Status is the tagged outcome of a parse.
type Status int

const (
	StatusSuccess Status = iota
	StatusReadError
	StatusParseError
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusReadError:
		return "ReadError"
	case StatusParseError:
		return "ParseError"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// StatusOf maps an error returned by the parser onto its Status.
// Errors the parser never produces are reported as read errors.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return StatusParseError
	}
	return StatusReadError
}

// KindOf returns the ParseError kind carried by err, or 0 if there is none.
func KindOf(err error) ErrorKind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

// retag rewrites the element a ParseError is reported on.
func retag(err error, element string) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Element = element
	}
	return err
}
