package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

const eof rune = 0

// Lexer produces tokens on demand from a source text. Once the end of the
// input is reached every further call to Next yields the EOF token.
type Lexer struct {
	file string
	src  []rune

	offset int
	line   int
	column int

	tokenPos Position
}

func New(file string, r io.Reader) (*Lexer, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %q: %w", file, err)
	}

	return NewString(file, string(src)), nil
}

func NewString(file, src string) *Lexer {
	return &Lexer{
		file:   file,
		src:    []rune(src),
		line:   1,
		column: 1,
	}
}

// Pos returns the position at which the most recently returned token starts.
func (l *Lexer) Pos() Position {
	return l.tokenPos
}

func (l *Lexer) current() rune {
	if l.offset >= len(l.src) {
		return eof
	}

	return l.src[l.offset]
}

func (l *Lexer) peek() rune {
	if l.offset+1 >= len(l.src) {
		return eof
	}

	return l.src[l.offset+1]
}

func (l *Lexer) atEnd() bool {
	return l.offset >= len(l.src)
}

func (l *Lexer) advance() {
	if l.atEnd() {
		return
	}

	if l.src[l.offset] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	l.offset++
}

func (l *Lexer) position() Position {
	return Position{
		File:   l.file,
		Line:   l.line,
		Column: l.column,
		Offset: l.offset,
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && unicode.IsSpace(l.current()) {
		l.advance()
	}
}

var singleCharKinds = map[rune]Kind{
	';': Semicolon,
	'(': LeftParen,
	')': RightParen,
	'[': LeftBracket,
	']': RightBracket,
	'{': LeftBrace,
	'}': RightBrace,
	',': Comma,
	'.': Dot,
	':': Colon,
	'*': Star,
	'/': Slash,
	'%': Percent,
}

type twoCharKind struct {
	second rune
	long   Kind
	short  Kind
}

var twoCharKinds = map[rune]twoCharKind{
	'=': {'=', Equal, Assign},
	'>': {'=', GreaterThanOrEqual, GreaterThan},
	'<': {'=', LessThanOrEqual, LessThan},
	'!': {'=', NotEqual, Not},
	'&': {'&', And, Ampersand},
	'|': {'|', Or, Pipe},
	'+': {'+', Increment, Plus},
	'-': {'-', Decrement, Minus},
}

func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()
	l.tokenPos = l.position()

	if l.atEnd() {
		return Token{Kind: EOF}, nil
	}

	ch := l.current()

	if kind, ok := singleCharKinds[ch]; ok {
		l.advance()
		return Token{Kind: kind, Literal: string(ch)}, nil
	}

	if op, ok := twoCharKinds[ch]; ok {
		if l.peek() == op.second {
			l.advance()
			l.advance()
			return Token{Kind: op.long, Literal: string([]rune{ch, op.second})}, nil
		}

		l.advance()
		return Token{Kind: op.short, Literal: string(ch)}, nil
	}

	switch {
	case isIdentifierStart(ch):
		return l.identifier(), nil
	case isDigit(ch):
		return l.numberLiteral()
	case ch == '"':
		return l.stringLiteral()
	}

	return Token{}, l.tokenPos.WrapError(fmt.Errorf("%w %q", ErrUnrecognizedCharacter, ch))
}

func (l *Lexer) identifier() Token {
	start := l.offset
	for !l.atEnd() && isIdentifierPart(l.current()) {
		l.advance()
	}

	word := string(l.src[start:l.offset])

	return Token{Kind: LookupIdentifier(word), Literal: word}
}

func (l *Lexer) numberLiteral() (Token, error) {
	start := l.offset
	dots := 0
	for !l.atEnd() && isNumberPart(l.current()) {
		if l.current() == '.' {
			dots++
		}
		l.advance()
	}

	raw := string(l.src[start:l.offset])
	if dots > 1 {
		return Token{}, l.tokenPos.WrapError(fmt.Errorf("%w %q: more than one decimal point", ErrInvalidNumber, raw))
	}

	return Token{Kind: Number, Literal: strings.ReplaceAll(raw, "_", "")}, nil
}

func (l *Lexer) stringLiteral() (Token, error) {
	// opening quote
	l.advance()

	start := l.offset
	for !l.atEnd() && l.current() != '"' {
		l.advance()
	}

	if l.atEnd() {
		return Token{}, l.tokenPos.WrapError(ErrUnterminatedString)
	}

	literal := string(l.src[start:l.offset])

	// closing quote
	l.advance()

	return Token{Kind: String, Literal: literal}, nil
}

// Tokenize drains a lexer over src, returning every token up to and
// including EOF.
func Tokenize(file, src string) ([]Token, error) {
	l := NewString(file, src)

	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isNumberPart(ch rune) bool {
	return isDigit(ch) || ch == '.' || ch == '_'
}

func isIdentifierStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentifierPart(ch rune) bool {
	return isIdentifierStart(ch) || isDigit(ch)
}
