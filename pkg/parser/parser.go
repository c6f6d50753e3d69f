// Package parser builds an ast.Program from a token stream. Statements are
// parsed by recursive descent, expressions by precedence climbing. The first
// unexpected token aborts the parse; there is no recovery.
package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/rhino1998/rhexia/pkg/ast"
	"github.com/rhino1998/rhexia/pkg/lexer"
)

type Parser struct {
	lexer *lexer.Lexer
	file  string

	current    lexer.Token
	currentPos lexer.Position
	next       lexer.Token
	nextPos    lexer.Position
}

func New(file string, l *lexer.Lexer) (*Parser, error) {
	p := &Parser{
		lexer: l,
		file:  file,
	}

	// fill current and next
	for n := 0; n < 2; n++ {
		err := p.advance()
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

func ParseString(file, src string) (*ast.Program, error) {
	p, err := New(file, lexer.NewString(file, src))
	if err != nil {
		return nil, err
	}

	return p.Parse()
}

func ParseReader(file string, r io.Reader) (*ast.Program, error) {
	l, err := lexer.New(file, r)
	if err != nil {
		return nil, err
	}

	p, err := New(file, l)
	if err != nil {
		return nil, err
	}

	return p.Parse()
}

func (p *Parser) advance() error {
	p.current, p.currentPos = p.next, p.nextPos

	tok, err := p.lexer.Next()
	if err != nil {
		return err
	}

	p.next, p.nextPos = tok, p.lexer.Pos()

	return nil
}

func (p *Parser) at(kind lexer.Kind) bool {
	return p.current.Kind == kind
}

// eat consumes the current token, which must be of the given kind.
func (p *Parser) eat(kind lexer.Kind) (lexer.Token, error) {
	if !p.at(kind) {
		return lexer.Token{}, p.unexpected(kind.String())
	}

	tok := p.current

	return tok, p.advance()
}

// skip consumes the current token if it is of the given kind.
func (p *Parser) skip(kind lexer.Kind) (bool, error) {
	if !p.at(kind) {
		return false, nil
	}

	return true, p.advance()
}

func (p *Parser) unexpected(expected string) error {
	return &SyntaxError{
		Pos:      p.currentPos,
		Expected: expected,
		Found:    p.current,
	}
}

func (p *Parser) invalid(pos lexer.Position, format string, args ...any) error {
	return &SyntaxError{
		Pos:   pos,
		Found: p.current,
		Msg:   fmt.Sprintf(format, args...),
	}
}

func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{File: p.file}

	for !p.at(lexer.EOF) {
		ok, err := p.skip(lexer.Semicolon)
		if err != nil {
			return nil, err
		}
		if ok {
			continue
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		prog.Statements = append(prog.Statements, stmt)
	}

	return prog, nil
}

func (p *Parser) parseIdentifierList(closing lexer.Kind) ([]string, error) {
	var names []string
	for !p.at(closing) {
		tok, err := p.eat(lexer.Identifier)
		if err != nil {
			return nil, err
		}

		names = append(names, tok.Literal)

		ok, err := p.skip(lexer.Comma)
		if err != nil {
			return nil, err
		}
		if !ok && !p.at(closing) {
			return nil, p.unexpected(joinKinds(lexer.Comma, closing))
		}
	}

	_, err := p.eat(closing)

	return names, err
}

func (p *Parser) parseExpressionList(closing lexer.Kind) ([]ast.Expression, error) {
	var exprs []ast.Expression
	for !p.at(closing) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		exprs = append(exprs, expr)

		ok, err := p.skip(lexer.Comma)
		if err != nil {
			return nil, err
		}
		if !ok && !p.at(closing) {
			return nil, p.unexpected(joinKinds(lexer.Comma, closing))
		}
	}

	_, err := p.eat(closing)

	return exprs, err
}

func joinKinds(kinds ...lexer.Kind) string {
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, kind.String())
	}

	return strings.Join(names, " or ")
}
