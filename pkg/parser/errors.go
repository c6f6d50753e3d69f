package parser

import (
	"errors"
	"fmt"

	"github.com/rhino1998/rhexia/pkg/lexer"
)

var ErrSyntax = errors.New("syntax error")

// SyntaxError reports the token the parser stopped at. Either Expected or
// Msg describes what it wanted instead.
type SyntaxError struct {
	Pos      lexer.Position
	Expected string
	Found    lexer.Token
	Msg      string
}

func (e *SyntaxError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %v: %s", e.Pos, ErrSyntax, e.Msg)
	}

	return fmt.Sprintf("%s: %v: expected %s, found %s", e.Pos, ErrSyntax, e.Expected, e.Found)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
