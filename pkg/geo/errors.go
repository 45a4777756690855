package geo

import "fmt"

// Kind classifies a validation or lookup failure.
type Kind int

const (
	// KindType is a wrong argument shape or Go type.
	KindType Kind = iota + 1
	// KindRange is a value outside geographic bounds or an unsupported unit.
	KindRange
	// KindFormat is coordinate text that matches no known grammar.
	KindFormat
	// KindLookup is a place name that could not be geocoded.
	KindLookup
	// KindSchema is a city table missing required columns.
	KindSchema
)

// String returns the machine-readable code for the kind.
func (k Kind) String() string {
	switch k {
	case KindType:
		return "INVALID_TYPE"
	case KindRange:
		return "OUT_OF_RANGE"
	case KindFormat:
		return "INVALID_FORMAT"
	case KindLookup:
		return "NOT_FOUND"
	case KindSchema:
		return "INVALID_SCHEMA"
	default:
		return "UNKNOWN"
	}
}

// Sentinel errors for errors.Is. Any *Error matches the sentinel of its kind.
var (
	ErrType   = &Error{Kind: KindType, Msg: "invalid type"}
	ErrRange  = &Error{Kind: KindRange, Msg: "value out of range"}
	ErrFormat = &Error{Kind: KindFormat, Msg: "unrecognized format"}
	ErrLookup = &Error{Kind: KindLookup, Msg: "lookup failed"}
	ErrSchema = &Error{Kind: KindSchema, Msg: "invalid schema"}
)

// Error is the error type returned by every validating function in geokit.
type Error struct {
	Kind Kind   // Failure class
	Op   string // Operation that failed, e.g. "standardize"
	Msg  string // Human-readable message naming the offending value
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
	return e.Msg
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Errorf builds an *Error of the given kind.
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		Op:   op,
		Msg:  fmt.Sprintf(format, args...),
	}
}
