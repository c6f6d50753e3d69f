package lexer_test

import (
	"errors"
	"testing"

	"github.com/rhino1998/rhexia/pkg/lexer"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []lexer.Token) []lexer.Kind {
	out := make([]lexer.Kind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func TestLexer_NumericSeparator(t *testing.T) {
	r := require.New(t)

	tokens, err := lexer.Tokenize("", "12_345.5")
	r.NoError(err)
	r.Equal([]lexer.Token{
		{Kind: lexer.Number, Literal: "12345.5"},
		{Kind: lexer.EOF},
	}, tokens)
}

func TestLexer_MultipleDecimalPoints(t *testing.T) {
	r := require.New(t)

	_, err := lexer.Tokenize("", "var x = 1.2.3;")
	r.Error(err)
	r.True(errors.Is(err, lexer.ErrInvalidNumber))
}

func TestLexer_MaximalMunch(t *testing.T) {
	r := require.New(t)

	tokens, err := lexer.Tokenize("", "= == > >= < <= ! != & && | || + ++ - --")
	r.NoError(err)
	r.Equal([]lexer.Kind{
		lexer.Assign, lexer.Equal,
		lexer.GreaterThan, lexer.GreaterThanOrEqual,
		lexer.LessThan, lexer.LessThanOrEqual,
		lexer.Not, lexer.NotEqual,
		lexer.Ampersand, lexer.And,
		lexer.Pipe, lexer.Or,
		lexer.Plus, lexer.Increment,
		lexer.Minus, lexer.Decrement,
		lexer.EOF,
	}, kinds(tokens))
}

func TestLexer_Punctuation(t *testing.T) {
	r := require.New(t)

	tokens, err := lexer.Tokenize("", ";()[]{},.:*/%")
	r.NoError(err)
	r.Equal([]lexer.Kind{
		lexer.Semicolon, lexer.LeftParen, lexer.RightParen,
		lexer.LeftBracket, lexer.RightBracket, lexer.LeftBrace, lexer.RightBrace,
		lexer.Comma, lexer.Dot, lexer.Colon, lexer.Star, lexer.Slash, lexer.Percent,
		lexer.EOF,
	}, kinds(tokens))
}

func TestLexer_Keywords(t *testing.T) {
	r := require.New(t)

	tokens, err := lexer.Tokenize("", "var function if else while for return object in true false null VAR While counter my_name")
	r.NoError(err)
	r.Equal([]lexer.Kind{
		lexer.Var, lexer.Function, lexer.If, lexer.Else, lexer.While, lexer.For,
		lexer.Return, lexer.Object, lexer.In, lexer.True, lexer.False, lexer.Null,
		lexer.Var, lexer.While, lexer.Identifier, lexer.Identifier,
		lexer.EOF,
	}, kinds(tokens))
	r.Equal("VAR", tokens[12].Literal)
	r.Equal("my_name", tokens[15].Literal)
}

func TestLexer_IdentifierDigits(t *testing.T) {
	r := require.New(t)

	tokens, err := lexer.Tokenize("", "x1 _a2 v2x 3y")
	r.NoError(err)
	r.Equal([]lexer.Kind{
		lexer.Identifier, lexer.Identifier, lexer.Identifier,
		lexer.Number, lexer.Identifier,
		lexer.EOF,
	}, kinds(tokens))
	r.Equal("x1", tokens[0].Literal)
	r.Equal("_a2", tokens[1].Literal)
	r.Equal("v2x", tokens[2].Literal)
	r.Equal("3", tokens[3].Literal)
	r.Equal("y", tokens[4].Literal)
}

func TestLexer_StringLiteral(t *testing.T) {
	r := require.New(t)

	tokens, err := lexer.Tokenize("", `print("Age: " + age);`)
	r.NoError(err)
	r.Equal([]lexer.Token{
		{Kind: lexer.Identifier, Literal: "print"},
		{Kind: lexer.LeftParen, Literal: "("},
		{Kind: lexer.String, Literal: "Age: "},
		{Kind: lexer.Plus, Literal: "+"},
		{Kind: lexer.Identifier, Literal: "age"},
		{Kind: lexer.RightParen, Literal: ")"},
		{Kind: lexer.Semicolon, Literal: ";"},
		{Kind: lexer.EOF},
	}, tokens)
}

func TestLexer_NoEscapeProcessing(t *testing.T) {
	r := require.New(t)

	tokens, err := lexer.Tokenize("", `"a\nb"`)
	r.NoError(err)
	r.Equal(`a\nb`, tokens[0].Literal)
}

func TestLexer_UnterminatedString(t *testing.T) {
	r := require.New(t)

	_, err := lexer.Tokenize("", `"never closed`)
	r.Error(err)
	r.True(errors.Is(err, lexer.ErrUnterminatedString))
}

func TestLexer_UnrecognizedCharacter(t *testing.T) {
	r := require.New(t)

	_, err := lexer.Tokenize("main.rx", "var a = 1;\nvar b = #;")
	r.Error(err)
	r.True(errors.Is(err, lexer.ErrUnrecognizedCharacter))

	var posErr lexer.PositionError
	r.True(errors.As(err, &posErr))
	r.Equal(2, posErr.Pos.Line)
	r.Equal(9, posErr.Pos.Column)
	r.Contains(err.Error(), "main.rx:2:9")
}

func TestLexer_EOFIsPermanent(t *testing.T) {
	r := require.New(t)

	l := lexer.NewString("", "x")

	tok, err := l.Next()
	r.NoError(err)
	r.Equal(lexer.Identifier, tok.Kind)

	for n := 0; n < 3; n++ {
		tok, err = l.Next()
		r.NoError(err)
		r.Equal(lexer.EOF, tok.Kind)
	}
}

func TestLexer_Positions(t *testing.T) {
	r := require.New(t)

	l := lexer.NewString("", "a\n  bb")

	_, err := l.Next()
	r.NoError(err)
	r.Equal(lexer.Position{Line: 1, Column: 1, Offset: 0}, l.Pos())

	_, err = l.Next()
	r.NoError(err)
	r.Equal(lexer.Position{Line: 2, Column: 3, Offset: 4}, l.Pos())
}
