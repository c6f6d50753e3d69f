package lexer

import (
	"errors"
	"fmt"
)

var (
	ErrUnrecognizedCharacter = errors.New("unrecognized character")
	ErrInvalidNumber         = errors.New("invalid numeric literal")
	ErrUnterminatedString    = errors.New("unterminated string literal")
)

// PositionError attaches a source position to an error.
type PositionError struct {
	Pos Position
	Err error
}

func (e PositionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Pos, e.Err)
}

func (e PositionError) Unwrap() error {
	return e.Err
}

func asPositionError(err error, target *PositionError) bool {
	return errors.As(err, target)
}
