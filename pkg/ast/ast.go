// Package ast defines the syntax tree produced by the parser. Nodes are
// plain data: the parser builds them once and nothing mutates them after.
package ast

import (
	"github.com/rhino1998/rhexia/pkg/lexer"
)

type Position = lexer.Position

type Node interface {
	String() string
	WrapError(error) error
}

type Statement interface {
	Node
	statement()
}

type Expression interface {
	Node
	expression()
}

type Program struct {
	File       string
	Statements []Statement
}

type VarStatement struct {
	Name string
	// Init is never nil; a declaration without initializer holds a NullExpression.
	Init Expression

	Position
}

func (*VarStatement) statement() {}

type FunctionStatement struct {
	Name       string
	Parameters []string
	Body       []Statement

	Position
}

func (*FunctionStatement) statement() {}

type ForStatement struct {
	Init      *VarStatement
	Condition Expression
	Increment Expression
	Body      []Statement

	Position
}

func (*ForStatement) statement() {}

type WhileStatement struct {
	Condition Expression
	Body      []Statement

	Position
}

func (*WhileStatement) statement() {}

type IfElseStatement struct {
	Condition Expression
	Then      []Statement
	Else      []Statement

	Position
}

func (*IfElseStatement) statement() {}

type ReturnStatement struct {
	// Expression is nil for a bare return.
	Expression Expression

	Position
}

func (*ReturnStatement) statement() {}

type ExpressionStatement struct {
	Expression Expression

	Position
}

func (*ExpressionStatement) statement() {}

// ObjectStatement declares a named object. The name slices record source
// order so field initializers run deterministically.
type ObjectStatement struct {
	Name string

	Fields     map[string]*VarStatement
	FieldNames []string

	Functions     map[string]*FunctionStatement
	FunctionNames []string

	Position
}

func (*ObjectStatement) statement() {}

type NumericExpression struct {
	Value float64

	Position
}

func (*NumericExpression) expression() {}

type StringExpression struct {
	Value string

	Position
}

func (*StringExpression) expression() {}

type BoolExpression struct {
	Value bool

	Position
}

func (*BoolExpression) expression() {}

type NullExpression struct {
	Position
}

func (*NullExpression) expression() {}

type IdentifierExpression struct {
	Name string

	Position
}

func (*IdentifierExpression) expression() {}

type PrefixExpression struct {
	Operator Operator
	Operand  Expression

	Position
}

func (*PrefixExpression) expression() {}

type PostfixExpression struct {
	Operand  Expression
	Operator Operator

	Position
}

func (*PostfixExpression) expression() {}

type InfixExpression struct {
	Left     Expression
	Operator Operator
	Right    Expression

	Position
}

func (*InfixExpression) expression() {}

type AssignmentExpression struct {
	Target Expression
	Value  Expression

	Position
}

func (*AssignmentExpression) expression() {}

type CallExpression struct {
	Callee    Expression
	Arguments []Expression

	Position
}

func (*CallExpression) expression() {}

type GetExpression struct {
	Receiver Expression
	Field    string

	Position
}

func (*GetExpression) expression() {}

type ListExpression struct {
	Items []Expression

	Position
}

func (*ListExpression) expression() {}

type IndexExpression struct {
	Target Expression
	// Index is nil for an empty subscript such as a[].
	Index Expression

	Position
}

func (*IndexExpression) expression() {}

type ClosureExpression struct {
	Parameters []string
	Body       []Statement

	Position
}

func (*ClosureExpression) expression() {}

type StructExpression struct {
	Name string

	Fields     map[string]Expression
	FieldNames []string

	Position
}

func (*StructExpression) expression() {}
