package ast_test

import (
	"bytes"
	"testing"

	"github.com/rhino1998/rhexia/pkg/ast"
	"github.com/rhino1998/rhexia/pkg/parser"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDump(t *testing.T) {
	r := require.New(t)

	prog, err := parser.ParseString("main.rx", `var greeting = "hi " + 2; if (ok) { print(greeting) }`)
	r.NoError(err)

	var buf bytes.Buffer
	r.NoError(ast.Dump(&buf, prog))

	var doc struct {
		File       string           `yaml:"file"`
		Statements []map[string]any `yaml:"statements"`
	}
	r.NoError(yaml.Unmarshal(buf.Bytes(), &doc))

	r.Equal("main.rx", doc.File)
	r.Len(doc.Statements, 2)

	decl := doc.Statements[0]
	r.Equal("Var", decl["node"])
	r.Equal("greeting", decl["name"])

	value, ok := decl["init"].(map[string]any)
	r.True(ok)
	r.Equal("Infix", value["node"])
	r.Equal("+", value["op"])

	r.Equal("IfElse", doc.Statements[1]["node"])
}

func TestString(t *testing.T) {
	r := require.New(t)

	expr := &ast.InfixExpression{
		Left:     &ast.NumericExpression{Value: 1.5},
		Operator: ast.Multiplication,
		Right: &ast.PrefixExpression{
			Operator: ast.Negate,
			Operand:  &ast.IdentifierExpression{Name: "x"},
		},
	}
	r.Equal("(1.5 * (-x))", expr.String())

	list := &ast.ListExpression{Items: []ast.Expression{
		&ast.StringExpression{Value: "a"},
		&ast.BoolExpression{Value: true},
		&ast.NullExpression{},
	}}
	r.Equal(`["a", true, null]`, list.String())
}
