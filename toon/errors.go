package toon

import "fmt"

// ErrorKind enumerates the error taxonomy of §7.
type ErrorKind uint8

const (
	ErrEmptyInput ErrorKind = iota
	ErrUnexpectedEnd
	ErrExpectedCharacter
	ErrUnterminatedString
	ErrInvalidArrayLength
	ErrUnexpectedTrailing
	ErrLengthMismatch
	ErrRowArityMismatch
	ErrUnsupportedValue
)

func (k ErrorKind) String() string {
	switch k {
	case ErrEmptyInput:
		return "empty input"
	case ErrUnexpectedEnd:
		return "unexpected end of input"
	case ErrExpectedCharacter:
		return "expected character"
	case ErrUnterminatedString:
		return "unterminated string"
	case ErrInvalidArrayLength:
		return "invalid array length"
	case ErrUnexpectedTrailing:
		return "unexpected trailing content"
	case ErrLengthMismatch:
		return "array length mismatch"
	case ErrRowArityMismatch:
		return "row arity mismatch"
	case ErrUnsupportedValue:
		return "unsupported value"
	default:
		return "unknown error"
	}
}

// DecodeError is returned by the strict decoder on the first grammar
// violation. It carries enough position information to point a caller
// at the offending byte.
type DecodeError struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("toon: %s at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
}

func newDecodeError(kind ErrorKind, pos position, format string, args ...any) *DecodeError {
	return &DecodeError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    pos.line,
		Column:  pos.column,
	}
}

// Diagnostic is a single non-fatal grammar violation recorded by the
// lenient decoder. Unlike DecodeError it never aborts parsing.
type Diagnostic struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at %d:%d: %s", d.Kind, d.Line, d.Column, d.Message)
}

func newDiagnostic(kind ErrorKind, pos position, format string, args ...any) Diagnostic {
	return Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    pos.line,
		Column:  pos.column,
	}
}

// UnsupportedValueError is returned by FromGo when a host-provided Go
// value has no mapping onto the Value model. Encode itself never fails.
type UnsupportedValueError struct {
	GoType string
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("toon: unsupported value of type %s", e.GoType)
}

// position tracks a byte offset plus its derived line/column, the way
// the lexer advances through input.
type position struct {
	offset int
	line   int
	column int
}
