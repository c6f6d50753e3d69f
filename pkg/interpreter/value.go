package interpreter

import (
	"strconv"
	"strings"

	"github.com/rhino1998/rhexia/pkg/ast"
)

type Kind int

const (
	KindNumeric Kind = iota
	KindString
	KindBool
	KindNull
	KindList
	KindFunction
	KindObject
	KindNative
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindList:
		return "list"
	case KindFunction:
		return "function"
	case KindObject:
		return "object"
	case KindNative:
		return "native"
	default:
		return "<unknown>"
	}
}

// Value is a runtime value. String returns the text that print and string
// concatenation use.
type Value interface {
	Kind() Kind
	String() string
}

type Numeric float64

func (Numeric) Kind() Kind { return KindNumeric }

func (n Numeric) String() string {
	return ast.FormatNumber(float64(n))
}

type String string

func (String) Kind() Kind { return KindString }

func (s String) String() string {
	return string(s)
}

type Bool bool

func (Bool) Kind() Kind { return KindBool }

func (b Bool) String() string {
	if b {
		return "True"
	}

	return "False"
}

type Null struct{}

func (Null) Kind() Kind { return KindNull }

func (Null) String() string {
	return ""
}

// List is the only mutable value; index assignment updates Elements in place
// and is visible through every reference to the list.
type List struct {
	Elements []Value
}

func NewList(elems ...Value) *List {
	return &List{Elements: elems}
}

func (*List) Kind() Kind { return KindList }

func (l *List) String() string {
	parts := make([]string, 0, len(l.Elements))
	for _, elem := range l.Elements {
		parts = append(parts, debugString(elem))
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

type Function struct {
	Name       string
	Parameters []string
	Body       []ast.Statement

	// Env is the defining scope, or NoEnv for a function that runs in a
	// fresh root scope.
	Env EnvID
}

func (*Function) Kind() Kind { return KindFunction }

func (f *Function) String() string {
	return "<function " + f.Name + "(" + strings.Join(f.Parameters, ", ") + ")>"
}

type Object struct {
	Name      string
	Fields    []string
	Functions []string
	Env       EnvID
}

func (*Object) Kind() Kind { return KindObject }

func (o *Object) String() string {
	return "<object " + o.Name + ">"
}

type NativeFunc func(args []Value) (Value, error)

type Native struct {
	Name string
	Call NativeFunc
}

func (*Native) Kind() Kind { return KindNative }

func (n *Native) String() string {
	return "<native " + n.Name + ">"
}

func debugString(v Value) string {
	if s, ok := v.(String); ok {
		return strconv.Quote(string(s))
	}

	if _, ok := v.(Null); ok {
		return "null"
	}

	return v.String()
}
