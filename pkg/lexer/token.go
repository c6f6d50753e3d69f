package lexer

import (
	"fmt"
	"strings"
)

type Kind int

const (
	EOF Kind = iota

	Identifier
	Number
	String
	True
	False
	Null

	Var
	Function
	If
	Else
	While
	For
	Return
	Object
	In

	Semicolon
	Colon
	Comma
	Dot
	LeftParen
	RightParen
	LeftBracket
	RightBracket
	LeftBrace
	RightBrace

	Plus
	Minus
	Star
	Slash
	Percent
	Increment
	Decrement

	Assign
	Equal
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual

	Not
	And
	Or
	Ampersand
	Pipe
)

var kindNames = map[Kind]string{
	EOF:                "EOF",
	Identifier:         "identifier",
	Number:             "number",
	String:             "string",
	True:               "true",
	False:              "false",
	Null:               "null",
	Var:                "var",
	Function:           "function",
	If:                 "if",
	Else:               "else",
	While:              "while",
	For:                "for",
	Return:             "return",
	Object:             "object",
	In:                 "in",
	Semicolon:          "';'",
	Colon:              "':'",
	Comma:              "','",
	Dot:                "'.'",
	LeftParen:          "'('",
	RightParen:         "')'",
	LeftBracket:        "'['",
	RightBracket:       "']'",
	LeftBrace:          "'{'",
	RightBrace:         "'}'",
	Plus:               "'+'",
	Minus:              "'-'",
	Star:               "'*'",
	Slash:              "'/'",
	Percent:            "'%'",
	Increment:          "'++'",
	Decrement:          "'--'",
	Assign:             "'='",
	Equal:              "'=='",
	NotEqual:           "'!='",
	LessThan:           "'<'",
	LessThanOrEqual:    "'<='",
	GreaterThan:        "'>'",
	GreaterThanOrEqual: "'>='",
	Not:                "'!'",
	And:                "'&&'",
	Or:                 "'||'",
	Ampersand:          "'&'",
	Pipe:               "'|'",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("<kind %d>", int(k))
	}

	return name
}

// IsKeyword reports whether k is produced from the reserved word table.
func (k Kind) IsKeyword() bool {
	return k >= True && k <= In
}

var keywords = map[string]Kind{
	"var":      Var,
	"function": Function,
	"if":       If,
	"else":     Else,
	"while":    While,
	"for":      For,
	"return":   Return,
	"object":   Object,
	"in":       In,
	"true":     True,
	"false":    False,
	"null":     Null,
}

// LookupIdentifier maps a scanned word to its keyword kind. Keywords are
// matched case-insensitively; anything else is an Identifier.
func LookupIdentifier(word string) Kind {
	if kind, ok := keywords[strings.ToLower(word)]; ok {
		return kind
	}

	return Identifier
}

// Token is a single lexeme. It carries no position; the Lexer reports the
// position of the last token it produced separately.
type Token struct {
	Kind    Kind
	Literal string
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case Identifier, Number:
		return fmt.Sprintf("%s %q", t.Kind, t.Literal)
	case String:
		return fmt.Sprintf("string %q", t.Literal)
	default:
		return t.Kind.String()
	}
}

type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}

	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// WrapError prefixes err with the position unless it already carries one.
func (p Position) WrapError(err error) error {
	if err == nil {
		return nil
	}

	var posErr PositionError
	if asPositionError(err, &posErr) {
		return err
	}

	return PositionError{Pos: p, Err: err}
}
