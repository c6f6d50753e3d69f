package interpreter

import (
	"fmt"
	"math"
	"strings"

	"github.com/rhino1998/rhexia/pkg/ast"
)

const epsilon = 1e-7

type infixKey struct {
	left  Kind
	op    ast.Operator
	right Kind
}

type infixFunc func(left, right Value) Value

// infixTable holds every supported (left kind, operator, right kind) triple.
// A missing triple is an unhandled infix operation.
var infixTable = buildInfixTable()

func buildInfixTable() map[infixKey]infixFunc {
	table := make(map[infixKey]infixFunc)
	add := func(left Kind, op ast.Operator, right Kind, fn infixFunc) {
		table[infixKey{left, op, right}] = fn
	}

	numeric := func(op ast.Operator, fn func(l, r float64) Value) {
		add(KindNumeric, op, KindNumeric, func(l, r Value) Value {
			return fn(float64(l.(Numeric)), float64(r.(Numeric)))
		})
	}

	numeric(ast.Addition, func(l, r float64) Value { return Numeric(l + r) })
	numeric(ast.Subtraction, func(l, r float64) Value { return Numeric(l - r) })
	numeric(ast.Multiplication, func(l, r float64) Value { return Numeric(l * r) })
	numeric(ast.Division, func(l, r float64) Value { return Numeric(l / r) })
	numeric(ast.Modulo, func(l, r float64) Value { return Numeric(math.Mod(l, r)) })
	numeric(ast.Equal, func(l, r float64) Value { return Bool(numericEqual(l, r)) })
	numeric(ast.NotEqual, func(l, r float64) Value { return Bool(!numericEqual(l, r)) })
	numeric(ast.LessThan, func(l, r float64) Value { return Bool(l < r) })
	numeric(ast.GreaterThan, func(l, r float64) Value { return Bool(l > r) })
	numeric(ast.LessThanOrEqual, func(l, r float64) Value { return Bool(l <= r) })
	numeric(ast.GreaterThanOrEqual, func(l, r float64) Value { return Bool(l >= r) })

	concat := func(l, r Value) Value { return String(l.String() + r.String()) }
	add(KindString, ast.Addition, KindString, concat)
	for _, kind := range []Kind{KindNumeric, KindBool} {
		add(KindString, ast.Addition, kind, concat)
		add(kind, ast.Addition, KindString, concat)
	}

	add(KindString, ast.Equal, KindString, func(l, r Value) Value { return Bool(l.(String) == r.(String)) })
	add(KindString, ast.NotEqual, KindString, func(l, r Value) Value { return Bool(l.(String) != r.(String)) })
	add(KindString, ast.In, KindString, func(l, r Value) Value {
		return Bool(strings.Contains(string(r.(String)), string(l.(String))))
	})

	add(KindBool, ast.Equal, KindBool, func(l, r Value) Value { return Bool(l.(Bool) == r.(Bool)) })
	add(KindBool, ast.NotEqual, KindBool, func(l, r Value) Value { return Bool(l.(Bool) != r.(Bool)) })
	add(KindBool, ast.LogicalAnd, KindBool, func(l, r Value) Value { return Bool(l.(Bool) && r.(Bool)) })
	add(KindBool, ast.LogicalOr, KindBool, func(l, r Value) Value { return Bool(l.(Bool) || r.(Bool)) })

	for _, kind := range []Kind{KindNumeric, KindString, KindBool, KindNull} {
		add(kind, ast.In, KindList, func(l, r Value) Value {
			for _, elem := range r.(*List).Elements {
				if valuesEqual(l, elem) {
					return Bool(true)
				}
			}

			return Bool(false)
		})
	}

	return table
}

func infixOperate(left Value, op ast.Operator, right Value) (Value, error) {
	fn, ok := infixTable[infixKey{left.Kind(), op, right.Kind()}]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s %s", ErrUnhandledInfix, left.Kind(), op, right.Kind())
	}

	return fn(left, right), nil
}

func prefixOperate(op ast.Operator, operand Value) (Value, error) {
	switch op {
	case ast.Negate:
		if n, ok := operand.(Numeric); ok {
			return -n, nil
		}
	case ast.Not:
		if b, ok := operand.(Bool); ok {
			return !b, nil
		}
	}

	return nil, fmt.Errorf("%w: %s%s", ErrUnhandledPrefix, op, operand.Kind())
}

func numericEqual(l, r float64) bool {
	return math.Abs(l-r) < epsilon
}

// valuesEqual is the equality used by list membership. Scalars compare by
// value, lists and other reference values by identity.
func valuesEqual(a, b Value) bool {
	switch a := a.(type) {
	case Numeric:
		b, ok := b.(Numeric)
		return ok && numericEqual(float64(a), float64(b))
	default:
		return a == b
	}
}

func boolOrFail(val Value) (bool, error) {
	b, ok := val.(Bool)
	if !ok {
		return false, fmt.Errorf("%w: expected bool value, got %s", ErrType, val.Kind())
	}

	return bool(b), nil
}
