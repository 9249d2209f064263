package diag

import "fmt"

// Kind classifies an error by the pipeline phase that produced it.
type Kind int

const (
	Syntax Kind = iota
	Type
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "Syntax"
	case Type:
		return "Type"
	default:
		return "Runtime"
	}
}

// Error is the single diagnostic type shared by every phase. It carries a
// message only; there is no source position.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %s", e.Kind, e.Msg)
}

func Syntaxf(format string, args ...any) *Error {
	return &Error{Kind: Syntax, Msg: fmt.Sprintf(format, args...)}
}

func Typef(format string, args ...any) *Error {
	return &Error{Kind: Type, Msg: fmt.Sprintf(format, args...)}
}

func Runtimef(format string, args ...any) *Error {
	return &Error{Kind: Runtime, Msg: fmt.Sprintf(format, args...)}
}
