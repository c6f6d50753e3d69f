package interpreter

import (
	"errors"
	"strings"
)

var (
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrUndefinedFunction = errors.New("undefined function")
	ErrUndefinedObject   = errors.New("undefined object")
	ErrRedeclared        = errors.New("redeclared")
	ErrArity             = errors.New("wrong number of arguments")
	ErrNotCallable       = errors.New("value is not callable")
	ErrType              = errors.New("type error")
	ErrIndex             = errors.New("index error")
	ErrUnhandledInfix    = errors.New("unhandled infix operation")
	ErrUnhandledPrefix   = errors.New("unhandled prefix operation")
	ErrUnhandledPostfix  = errors.New("unhandled postfix operation")
	ErrUnhandledGet      = errors.New("unhandled member access")
	ErrInvalidAssignment = errors.New("invalid assignment")
	ErrCallDepth         = errors.New("maximum call depth exceeded")
)

// RuntimeError is a fatal error raised while executing a program. Trace
// lists the active calls at the point of failure, innermost first.
type RuntimeError struct {
	Err   error
	Trace []string
}

func (e *RuntimeError) Error() string {
	return e.Err.Error()
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// FormatTrace renders the call trace one frame per line.
func (e *RuntimeError) FormatTrace() string {
	var b strings.Builder
	for _, frame := range e.Trace {
		b.WriteString("\tat ")
		b.WriteString(frame)
		b.WriteString("\n")
	}

	return b.String()
}
