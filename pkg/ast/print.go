package ast

import (
	"strconv"
	"strings"
)

// FormatNumber renders a numeric literal so that lexing it back yields the
// same value.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, stmt := range p.Statements {
		sb.WriteString(stmt.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func block(stmts []Statement) string {
	if len(stmts) == 0 {
		return "{ }"
	}

	parts := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		parts = append(parts, stmt.String())
	}

	return "{ " + strings.Join(parts, "; ") + "; }"
}

func expressions(exprs []Expression) string {
	parts := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		parts = append(parts, expr.String())
	}

	return strings.Join(parts, ", ")
}

func (s *VarStatement) String() string {
	if _, ok := s.Init.(*NullExpression); ok || s.Init == nil {
		return "var " + s.Name
	}

	return "var " + s.Name + " = " + s.Init.String()
}

func (s *FunctionStatement) String() string {
	return "function " + s.Name + "(" + strings.Join(s.Parameters, ", ") + ") " + block(s.Body)
}

func (s *ForStatement) String() string {
	return "for (" + s.Init.String() + "; " + s.Condition.String() + "; " + s.Increment.String() + ") " + block(s.Body)
}

func (s *WhileStatement) String() string {
	return "while (" + s.Condition.String() + ") " + block(s.Body)
}

func (s *IfElseStatement) String() string {
	out := "if (" + s.Condition.String() + ") " + block(s.Then)
	if len(s.Else) > 0 {
		out += " else " + block(s.Else)
	}

	return out
}

func (s *ReturnStatement) String() string {
	if s.Expression == nil {
		return "return"
	}

	return "return " + s.Expression.String()
}

func (s *ExpressionStatement) String() string {
	return s.Expression.String()
}

func (s *ObjectStatement) String() string {
	var body []Statement
	for _, name := range s.FieldNames {
		body = append(body, s.Fields[name])
	}
	for _, name := range s.FunctionNames {
		body = append(body, s.Functions[name])
	}

	return "object " + s.Name + " " + block(body)
}

func (e *NumericExpression) String() string {
	return FormatNumber(e.Value)
}

func (e *StringExpression) String() string {
	return `"` + e.Value + `"`
}

func (e *BoolExpression) String() string {
	return strconv.FormatBool(e.Value)
}

func (e *NullExpression) String() string {
	return "null"
}

func (e *IdentifierExpression) String() string {
	return e.Name
}

func (e *PrefixExpression) String() string {
	return "(" + string(e.Operator) + e.Operand.String() + ")"
}

func (e *PostfixExpression) String() string {
	return "(" + e.Operand.String() + string(e.Operator) + ")"
}

func (e *InfixExpression) String() string {
	return "(" + e.Left.String() + " " + string(e.Operator) + " " + e.Right.String() + ")"
}

func (e *AssignmentExpression) String() string {
	return e.Target.String() + " = " + e.Value.String()
}

func (e *CallExpression) String() string {
	return e.Callee.String() + "(" + expressions(e.Arguments) + ")"
}

func (e *GetExpression) String() string {
	return e.Receiver.String() + "." + e.Field
}

func (e *ListExpression) String() string {
	return "[" + expressions(e.Items) + "]"
}

func (e *IndexExpression) String() string {
	if e.Index == nil {
		return e.Target.String() + "[]"
	}

	return e.Target.String() + "[" + e.Index.String() + "]"
}

func (e *ClosureExpression) String() string {
	return "function(" + strings.Join(e.Parameters, ", ") + ") " + block(e.Body)
}

func (e *StructExpression) String() string {
	parts := make([]string, 0, len(e.FieldNames))
	for _, name := range e.FieldNames {
		parts = append(parts, name+": "+e.Fields[name].String())
	}

	return e.Name + " { " + strings.Join(parts, ", ") + " }"
}
