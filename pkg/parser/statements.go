package parser

import (
	"github.com/rhino1998/rhexia/pkg/ast"
	"github.com/rhino1998/rhexia/pkg/lexer"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current.Kind {
	case lexer.For:
		return p.parseFor()
	case lexer.Function:
		// function followed by '(' is an anonymous closure used as an expression
		if p.next.Kind == lexer.Identifier {
			return p.parseFunction()
		}
	case lexer.If:
		return p.parseIfElse()
	case lexer.Return:
		return p.parseReturn()
	case lexer.Var:
		return p.parseVar()
	case lexer.While:
		return p.parseWhile()
	case lexer.Object:
		return p.parseObject()
	}

	pos := p.currentPos
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.ExpressionStatement{Expression: expr, Position: pos}, nil
}

// parseBlockBody parses statements up to, but not including, the closing
// brace of the enclosing block.
func (p *Parser) parseBlockBody() ([]ast.Statement, error) {
	var body []ast.Statement
	for !p.at(lexer.RightBrace) {
		if p.at(lexer.EOF) {
			return nil, p.unexpected(lexer.RightBrace.String())
		}

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

		body = append(body, stmt)
	}

	return body, nil
}

func (p *Parser) parseBlock() ([]ast.Statement, error) {
	_, err := p.eat(lexer.LeftBrace)
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}

	_, err = p.eat(lexer.RightBrace)
	if err != nil {
		return nil, err
	}

	return body, nil
}

func (p *Parser) parseVar() (*ast.VarStatement, error) {
	pos := p.currentPos
	_, err := p.eat(lexer.Var)
	if err != nil {
		return nil, err
	}

	name, err := p.eat(lexer.Identifier)
	if err != nil {
		return nil, err
	}

	stmt := &ast.VarStatement{Name: name.Literal, Position: pos}

	ok, err := p.skip(lexer.Assign)
	if err != nil {
		return nil, err
	}

	if !ok {
		stmt.Init = &ast.NullExpression{Position: pos}
		return stmt, nil
	}

	stmt.Init, err = p.parseExpression()
	if err != nil {
		return nil, err
	}

	return stmt, nil
}

func (p *Parser) parseFor() (*ast.ForStatement, error) {
	pos := p.currentPos
	_, err := p.eat(lexer.For)
	if err != nil {
		return nil, err
	}

	_, err = p.eat(lexer.LeftParen)
	if err != nil {
		return nil, err
	}

	init, err := p.parseVar()
	if err != nil {
		return nil, err
	}

	_, err = p.eat(lexer.Semicolon)
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	_, err = p.eat(lexer.Semicolon)
	if err != nil {
		return nil, err
	}

	incr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	_, err = p.eat(lexer.RightParen)
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.ForStatement{
		Init:      init,
		Condition: cond,
		Increment: incr,
		Body:      body,
		Position:  pos,
	}, nil
}

func (p *Parser) parseCondition() (ast.Expression, error) {
	_, err := p.eat(lexer.LeftParen)
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	_, err = p.eat(lexer.RightParen)
	if err != nil {
		return nil, err
	}

	return cond, nil
}

func (p *Parser) parseWhile() (*ast.WhileStatement, error) {
	pos := p.currentPos
	_, err := p.eat(lexer.While)
	if err != nil {
		return nil, err
	}

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStatement{Condition: cond, Body: body, Position: pos}, nil
}

func (p *Parser) parseIfElse() (*ast.IfElseStatement, error) {
	pos := p.currentPos
	_, err := p.eat(lexer.If)
	if err != nil {
		return nil, err
	}

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfElseStatement{Condition: cond, Then: then, Position: pos}

	ok, err := p.skip(lexer.Else)
	if err != nil {
		return nil, err
	}
	if !ok {
		return stmt, nil
	}

	if p.at(lexer.If) {
		elseIf, err := p.parseIfElse()
		if err != nil {
			return nil, err
		}

		stmt.Else = []ast.Statement{elseIf}
		return stmt, nil
	}

	stmt.Else, err = p.parseBlock()
	if err != nil {
		return nil, err
	}

	return stmt, nil
}

func (p *Parser) parseReturn() (*ast.ReturnStatement, error) {
	pos := p.currentPos
	_, err := p.eat(lexer.Return)
	if err != nil {
		return nil, err
	}

	switch p.current.Kind {
	case lexer.Semicolon, lexer.RightBrace, lexer.EOF:
		return &ast.ReturnStatement{Position: pos}, nil
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.ReturnStatement{Expression: expr, Position: pos}, nil
}

// parseSignature parses the parameter list and body shared by function
// statements and closures.
func (p *Parser) parseSignature() ([]string, []ast.Statement, error) {
	_, err := p.eat(lexer.LeftParen)
	if err != nil {
		return nil, nil, err
	}

	params, err := p.parseIdentifierList(lexer.RightParen)
	if err != nil {
		return nil, nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, nil, err
	}

	return params, body, nil
}

func (p *Parser) parseFunction() (*ast.FunctionStatement, error) {
	pos := p.currentPos
	_, err := p.eat(lexer.Function)
	if err != nil {
		return nil, err
	}

	name, err := p.eat(lexer.Identifier)
	if err != nil {
		return nil, err
	}

	params, body, err := p.parseSignature()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionStatement{
		Name:       name.Literal,
		Parameters: params,
		Body:       body,
		Position:   pos,
	}, nil
}

func (p *Parser) parseObject() (*ast.ObjectStatement, error) {
	pos := p.currentPos
	_, err := p.eat(lexer.Object)
	if err != nil {
		return nil, err
	}

	name, err := p.eat(lexer.Identifier)
	if err != nil {
		return nil, err
	}

	bodyPos := p.currentPos
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	obj := &ast.ObjectStatement{
		Name:      name.Literal,
		Fields:    make(map[string]*ast.VarStatement),
		Functions: make(map[string]*ast.FunctionStatement),
		Position:  pos,
	}

	for _, stmt := range body {
		switch stmt := stmt.(type) {
		case *ast.VarStatement:
			if _, ok := obj.Fields[stmt.Name]; ok {
				return nil, p.invalid(stmt.Position, "object %s declares field %s more than once", obj.Name, stmt.Name)
			}

			obj.Fields[stmt.Name] = stmt
			obj.FieldNames = append(obj.FieldNames, stmt.Name)
		case *ast.FunctionStatement:
			if _, ok := obj.Functions[stmt.Name]; ok {
				return nil, p.invalid(stmt.Position, "object %s declares function %s more than once", obj.Name, stmt.Name)
			}

			obj.Functions[stmt.Name] = stmt
			obj.FunctionNames = append(obj.FunctionNames, stmt.Name)
		default:
			return nil, p.invalid(bodyPos, "object %s can only contain variables and functions, found %q", obj.Name, stmt.String())
		}
	}

	return obj, nil
}
