package parser_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rhino1998/rhexia/pkg/ast"
	"github.com/rhino1998/rhexia/pkg/lexer"
	"github.com/rhino1998/rhexia/pkg/parser"
	"github.com/stretchr/testify/require"
)

var astOpts = cmp.Options{
	cmpopts.IgnoreTypes(ast.Position{}),
	cmpopts.EquateEmpty(),
}

func requireAST(t *testing.T, want, got any) {
	t.Helper()
	if diff := cmp.Diff(want, got, astOpts); diff != "" {
		t.Fatalf("syntax tree mismatch (-want +got):\n%s", diff)
	}
}

func parseExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	r := require.New(t)

	prog, err := parser.ParseString("", src)
	r.NoError(err)
	r.Len(prog.Statements, 1)

	stmt, ok := prog.Statements[0].(*ast.ExpressionStatement)
	r.True(ok, "expected expression statement, got %T", prog.Statements[0])

	return stmt.Expression
}

func num(v float64) *ast.NumericExpression { return &ast.NumericExpression{Value: v} }
func id(name string) *ast.IdentifierExpression {
	return &ast.IdentifierExpression{Name: name}
}
func infix(l ast.Expression, op ast.Operator, r ast.Expression) *ast.InfixExpression {
	return &ast.InfixExpression{Left: l, Operator: op, Right: r}
}

func TestParser_Precedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"2 + 3 * 4", "(2 + (3 * 4))"},
		{"(2 + 3) * 4", "((2 + 3) * 4)"},
		{"10 - 3 - 2", "((10 - 3) - 2)"},
		{"8 / 4 % 3", "((8 / 4) % 3)"},
		{"a == b && c < d", "((a == b) && (c < d))"},
		{"a || b && c", "((a || b) && c)"},
		{"1 + 2 < 3 * 4", "((1 + 2) < (3 * 4))"},
		{"-a * b", "((-a) * b)"},
		{"!done == false", "((!done) == false)"},
		{"-a.Length", "(-a.Length)"},
		{"x in [1, 2] && y", "((x in [1, 2]) && y)"},
		{"a = b = 1 + 2", "a = b = (1 + 2)"},
		{"xs[i + 1] = f(x)(y)", "xs[(i + 1)] = f(x)(y)"},
		{"i++ + 1", "((i++) + 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			require.Equal(t, tt.want, parseExpr(t, tt.src).String())
		})
	}
}

func TestParser_ArithmeticTree(t *testing.T) {
	requireAST(t,
		infix(num(2), ast.Addition, infix(num(3), ast.Multiplication, num(4))),
		parseExpr(t, "2 + 3 * 4"),
	)

	requireAST(t,
		infix(infix(num(10), ast.Subtraction, num(3)), ast.Subtraction, num(2)),
		parseExpr(t, "10 - 3 - 2"),
	)
}

func TestParser_PostfixChain(t *testing.T) {
	requireAST(t,
		&ast.CallExpression{
			Callee: &ast.GetExpression{
				Receiver: &ast.IndexExpression{Target: id("objs"), Index: num(0)},
				Field:    "run",
			},
			Arguments: []ast.Expression{num(1), &ast.StringExpression{Value: "x"}},
		},
		parseExpr(t, `objs[0].run(1, "x",)`),
	)
}

func TestParser_EmptyIndex(t *testing.T) {
	requireAST(t,
		&ast.IndexExpression{Target: id("a")},
		parseExpr(t, "a[]"),
	)
}

func TestParser_Closure(t *testing.T) {
	requireAST(t,
		&ast.VarStatement{
			Name: "add",
			Init: &ast.ClosureExpression{
				Parameters: []string{"a", "b"},
				Body: []ast.Statement{
					&ast.ReturnStatement{Expression: infix(id("a"), ast.Addition, id("b"))},
				},
			},
		},
		mustParse(t, "var add = function(a, b,) { return a + b; };").Statements[0],
	)
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseString("", src)
	require.NoError(t, err)
	return prog
}

func TestParser_Statements(t *testing.T) {
	src := `
var i = 0
var empty;
function greet(name) { print("hi " + name); }
for (var j = 0; j < 3; j++) { i = i + j }
while (i > 0) { i--; }
if (i == 0) { print("zero") } else if (i < 0) { print("neg") } else { return }
`
	requireAST(t, []ast.Statement{
		&ast.VarStatement{Name: "i", Init: num(0)},
		&ast.VarStatement{Name: "empty", Init: &ast.NullExpression{}},
		&ast.FunctionStatement{
			Name:       "greet",
			Parameters: []string{"name"},
			Body: []ast.Statement{
				&ast.ExpressionStatement{Expression: &ast.CallExpression{
					Callee:    id("print"),
					Arguments: []ast.Expression{infix(&ast.StringExpression{Value: "hi "}, ast.Addition, id("name"))},
				}},
			},
		},
		&ast.ForStatement{
			Init:      &ast.VarStatement{Name: "j", Init: num(0)},
			Condition: infix(id("j"), ast.LessThan, num(3)),
			Increment: &ast.PostfixExpression{Operand: id("j"), Operator: ast.Increment},
			Body: []ast.Statement{
				&ast.ExpressionStatement{Expression: &ast.AssignmentExpression{
					Target: id("i"),
					Value:  infix(id("i"), ast.Addition, id("j")),
				}},
			},
		},
		&ast.WhileStatement{
			Condition: infix(id("i"), ast.GreaterThan, num(0)),
			Body: []ast.Statement{
				&ast.ExpressionStatement{Expression: &ast.PostfixExpression{Operand: id("i"), Operator: ast.Decrement}},
			},
		},
		&ast.IfElseStatement{
			Condition: infix(id("i"), ast.Equal, num(0)),
			Then: []ast.Statement{
				&ast.ExpressionStatement{Expression: &ast.CallExpression{Callee: id("print"), Arguments: []ast.Expression{&ast.StringExpression{Value: "zero"}}}},
			},
			Else: []ast.Statement{
				&ast.IfElseStatement{
					Condition: infix(id("i"), ast.LessThan, num(0)),
					Then: []ast.Statement{
						&ast.ExpressionStatement{Expression: &ast.CallExpression{Callee: id("print"), Arguments: []ast.Expression{&ast.StringExpression{Value: "neg"}}}},
					},
					Else: []ast.Statement{&ast.ReturnStatement{}},
				},
			},
		},
	}, mustParse(t, src).Statements)
}

func TestParser_Object(t *testing.T) {
	r := require.New(t)

	prog := mustParse(t, `
object Counter {
	var count = 0;
	var step = 2;
	function increment() { count = count + step; }
}`)
	r.Len(prog.Statements, 1)

	obj, ok := prog.Statements[0].(*ast.ObjectStatement)
	r.True(ok)
	r.Equal("Counter", obj.Name)
	r.Equal([]string{"count", "step"}, obj.FieldNames)
	r.Equal([]string{"increment"}, obj.FunctionNames)
	requireAST(t, num(2), obj.Fields["step"].Init)
	r.Equal("increment", obj.Functions["increment"].Name)
}

func TestParser_ObjectRejectsOtherStatements(t *testing.T) {
	r := require.New(t)

	_, err := parser.ParseString("", `object Bad { var a = 1; print(a); }`)
	r.Error(err)
	r.True(errors.Is(err, parser.ErrSyntax))
	r.Contains(err.Error(), "can only contain variables and functions")
}

func TestParser_StructLiteral(t *testing.T) {
	requireAST(t,
		&ast.StructExpression{
			Name: "Point",
			Fields: map[string]ast.Expression{
				"x": num(1),
				"y": infix(num(2), ast.Multiplication, num(3)),
			},
			FieldNames: []string{"x", "y"},
		},
		parseExpr(t, "Point { x: 1, y: 2 * 3 }"),
	)
}

func TestParser_UnexpectedToken(t *testing.T) {
	r := require.New(t)

	_, err := parser.ParseString("main.rx", "var = 3;")
	r.Error(err)

	var syntaxErr *parser.SyntaxError
	r.True(errors.As(err, &syntaxErr))
	r.Equal(lexer.Identifier.String(), syntaxErr.Expected)
	r.Equal(lexer.Assign, syntaxErr.Found.Kind)
	r.Equal("main.rx:1:5: syntax error: expected identifier, found '='", err.Error())
}

func TestParser_UnclosedBlock(t *testing.T) {
	r := require.New(t)

	_, err := parser.ParseString("", "while (true) { x++;")
	r.Error(err)
	r.True(errors.Is(err, parser.ErrSyntax))
	r.Contains(err.Error(), "expected '}', found EOF")
}

func TestParser_InvalidAssignmentTarget(t *testing.T) {
	r := require.New(t)

	_, err := parser.ParseString("", "1 + 2 = 3;")
	r.Error(err)
	r.True(errors.Is(err, parser.ErrSyntax))
}

func TestParser_LexicalErrorsPropagate(t *testing.T) {
	r := require.New(t)

	_, err := parser.ParseString("", "var a = 1 @ 2;")
	r.Error(err)
	r.True(errors.Is(err, lexer.ErrUnrecognizedCharacter))
}

func TestParser_RenderingReparses(t *testing.T) {
	r := require.New(t)

	src := `
object Point { var x = 0; var y = 0; function norm() { return x * x + y * y; } }
var p = Point { x: 3, y: 4 };
for (var i = 0; i < 3; i++) { if (!(i == 1)) { write(i) } else { print("one") } }
var f = function(a) { return -a; };
`
	first := mustParse(t, src)
	second, err := parser.ParseString("", first.String())
	r.NoError(err)

	requireAST(t, first.Statements, second.Statements)
}
