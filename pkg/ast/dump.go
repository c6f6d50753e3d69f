package ast

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Dump writes the program as a YAML document, one mapping per node with the
// node kind under "node" followed by its children in declaration order.
func Dump(w io.Writer, prog *Program) error {
	doc := &yaml.Node{Kind: yaml.DocumentNode}

	stmts := sequence()
	for _, stmt := range prog.Statements {
		stmts.Content = append(stmts.Content, dumpNode(stmt))
	}

	root := mapping()
	if prog.File != "" {
		addScalar(root, "file", prog.File)
	}
	addNode(root, "statements", stmts)
	doc.Content = append(doc.Content, root)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err := enc.Encode(doc)
	if err != nil {
		return fmt.Errorf("failed to encode syntax tree: %w", err)
	}

	return enc.Close()
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func sequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode}
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

func addNode(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, scalar(key), value)
}

func addScalar(m *yaml.Node, key, value string) {
	addNode(m, key, scalar(value))
}

func stringList(values []string) *yaml.Node {
	seq := sequence()
	seq.Style = yaml.FlowStyle
	for _, v := range values {
		seq.Content = append(seq.Content, scalar(v))
	}
	return seq
}

func statementList(stmts []Statement) *yaml.Node {
	seq := sequence()
	for _, stmt := range stmts {
		seq.Content = append(seq.Content, dumpNode(stmt))
	}
	return seq
}

func expressionList(exprs []Expression) *yaml.Node {
	seq := sequence()
	for _, expr := range exprs {
		seq.Content = append(seq.Content, dumpNode(expr))
	}
	return seq
}

func dumpNode(node Node) *yaml.Node {
	m := mapping()

	switch node := node.(type) {
	case *VarStatement:
		addScalar(m, "node", "Var")
		addScalar(m, "name", node.Name)
		addNode(m, "init", dumpNode(node.Init))
	case *FunctionStatement:
		addScalar(m, "node", "Function")
		addScalar(m, "name", node.Name)
		addNode(m, "params", stringList(node.Parameters))
		addNode(m, "body", statementList(node.Body))
	case *ForStatement:
		addScalar(m, "node", "For")
		addNode(m, "init", dumpNode(node.Init))
		addNode(m, "condition", dumpNode(node.Condition))
		addNode(m, "increment", dumpNode(node.Increment))
		addNode(m, "body", statementList(node.Body))
	case *WhileStatement:
		addScalar(m, "node", "While")
		addNode(m, "condition", dumpNode(node.Condition))
		addNode(m, "body", statementList(node.Body))
	case *IfElseStatement:
		addScalar(m, "node", "IfElse")
		addNode(m, "condition", dumpNode(node.Condition))
		addNode(m, "then", statementList(node.Then))
		addNode(m, "else", statementList(node.Else))
	case *ReturnStatement:
		addScalar(m, "node", "Return")
		if node.Expression != nil {
			addNode(m, "value", dumpNode(node.Expression))
		}
	case *ExpressionStatement:
		addScalar(m, "node", "Expr")
		addNode(m, "expr", dumpNode(node.Expression))
	case *ObjectStatement:
		addScalar(m, "node", "Object")
		addScalar(m, "name", node.Name)
		fields := mapping()
		for _, name := range node.FieldNames {
			addNode(fields, name, dumpNode(node.Fields[name]))
		}
		addNode(m, "fields", fields)
		funcs := mapping()
		for _, name := range node.FunctionNames {
			addNode(funcs, name, dumpNode(node.Functions[name]))
		}
		addNode(m, "functions", funcs)
	case *NumericExpression:
		addScalar(m, "node", "Numeric")
		addScalar(m, "value", FormatNumber(node.Value))
	case *StringExpression:
		addScalar(m, "node", "String")
		addNode(m, "value", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: node.Value})
	case *BoolExpression:
		addScalar(m, "node", "Bool")
		addScalar(m, "value", strconv.FormatBool(node.Value))
	case *NullExpression:
		addScalar(m, "node", "Null")
	case *IdentifierExpression:
		addScalar(m, "node", "Identifier")
		addScalar(m, "name", node.Name)
	case *PrefixExpression:
		addScalar(m, "node", "Prefix")
		addScalar(m, "op", string(node.Operator))
		addNode(m, "operand", dumpNode(node.Operand))
	case *PostfixExpression:
		addScalar(m, "node", "Postfix")
		addNode(m, "operand", dumpNode(node.Operand))
		addScalar(m, "op", string(node.Operator))
	case *InfixExpression:
		addScalar(m, "node", "Infix")
		addNode(m, "left", dumpNode(node.Left))
		addScalar(m, "op", string(node.Operator))
		addNode(m, "right", dumpNode(node.Right))
	case *AssignmentExpression:
		addScalar(m, "node", "Assignment")
		addNode(m, "target", dumpNode(node.Target))
		addNode(m, "value", dumpNode(node.Value))
	case *CallExpression:
		addScalar(m, "node", "Call")
		addNode(m, "callee", dumpNode(node.Callee))
		addNode(m, "args", expressionList(node.Arguments))
	case *GetExpression:
		addScalar(m, "node", "Get")
		addNode(m, "object", dumpNode(node.Receiver))
		addScalar(m, "field", node.Field)
	case *ListExpression:
		addScalar(m, "node", "ListLiteral")
		addNode(m, "items", expressionList(node.Items))
	case *IndexExpression:
		addScalar(m, "node", "ListIndex")
		addNode(m, "target", dumpNode(node.Target))
		if node.Index != nil {
			addNode(m, "index", dumpNode(node.Index))
		}
	case *ClosureExpression:
		addScalar(m, "node", "Closure")
		addNode(m, "params", stringList(node.Parameters))
		addNode(m, "body", statementList(node.Body))
	case *StructExpression:
		addScalar(m, "node", "Struct")
		addScalar(m, "name", node.Name)
		fields := mapping()
		for _, name := range node.FieldNames {
			addNode(fields, name, dumpNode(node.Fields[name]))
		}
		addNode(m, "fields", fields)
	default:
		addScalar(m, "node", fmt.Sprintf("%T", node))
	}

	return m
}
