package ast

import (
	"fmt"

	"github.com/rhino1998/rhexia/pkg/lexer"
)

type Operator string

const (
	Addition       Operator = "+"
	Subtraction    Operator = "-"
	Multiplication Operator = "*"
	Division       Operator = "/"
	Modulo         Operator = "%"

	Equal              Operator = "=="
	NotEqual           Operator = "!="
	LessThan           Operator = "<"
	GreaterThan        Operator = ">"
	LessThanOrEqual    Operator = "<="
	GreaterThanOrEqual Operator = ">="
	In                 Operator = "in"

	LogicalAnd Operator = "&&"
	LogicalOr  Operator = "||"

	Increment Operator = "++"
	Decrement Operator = "--"

	Negate Operator = "-"
	Not    Operator = "!"
)

func (o Operator) IsArithmetic() bool {
	switch o {
	case Addition, Subtraction, Multiplication, Division, Modulo:
		return true
	default:
		return false
	}
}

func (o Operator) IsComparison() bool {
	switch o {
	case Equal,
		NotEqual,
		LessThan,
		GreaterThan,
		LessThanOrEqual,
		GreaterThanOrEqual:
		return true
	default:
		return false
	}
}

func (o Operator) IsLogical() bool {
	return o == LogicalAnd || o == LogicalOr
}

// PostfixDelta is the amount a postfix operator adds to its operand.
func (o Operator) PostfixDelta() (float64, error) {
	switch o {
	case Increment:
		return 1, nil
	case Decrement:
		return -1, nil
	default:
		return 0, fmt.Errorf("operator %q is not a postfix operator", o)
	}
}

var infixOperators = map[lexer.Kind]Operator{
	lexer.Plus:               Addition,
	lexer.Minus:              Subtraction,
	lexer.Star:               Multiplication,
	lexer.Slash:              Division,
	lexer.Percent:            Modulo,
	lexer.Equal:              Equal,
	lexer.NotEqual:           NotEqual,
	lexer.LessThan:           LessThan,
	lexer.GreaterThan:        GreaterThan,
	lexer.LessThanOrEqual:    LessThanOrEqual,
	lexer.GreaterThanOrEqual: GreaterThanOrEqual,
	lexer.In:                 In,
	lexer.And:                LogicalAnd,
	lexer.Or:                 LogicalOr,
}

// InfixOperator maps a token kind to the binary operator it spells.
func InfixOperator(kind lexer.Kind) (Operator, bool) {
	op, ok := infixOperators[kind]
	return op, ok
}
