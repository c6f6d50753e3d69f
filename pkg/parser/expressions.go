package parser

import (
	"strconv"

	"github.com/rhino1998/rhexia/pkg/ast"
	"github.com/rhino1998/rhexia/pkg/lexer"
)

// Precedence levels, lowest binding first. Logical and relational operators
// are handled by dedicated stages above the arithmetic climber.
type precedence int

const (
	precLowest precedence = iota
	precAssign
	precLogical
	precRelational
	precSum
	precProduct
	precPrefix
	precPostfix
)

func arithmeticPrecedence(kind lexer.Kind) (precedence, bool) {
	switch kind {
	case lexer.Plus, lexer.Minus:
		return precSum, true
	case lexer.Star, lexer.Slash, lexer.Percent:
		return precProduct, true
	default:
		return precLowest, false
	}
}

func isRelational(kind lexer.Kind) bool {
	switch kind {
	case lexer.Equal,
		lexer.NotEqual,
		lexer.LessThan,
		lexer.LessThanOrEqual,
		lexer.GreaterThan,
		lexer.GreaterThanOrEqual,
		lexer.In:
		return true
	default:
		return false
	}
}

func isLogical(kind lexer.Kind) bool {
	return kind == lexer.And || kind == lexer.Or
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

// parseAssignment is right associative: a = b = c assigns c to b, then to a.
func (p *Parser) parseAssignment() (ast.Expression, error) {
	target, err := p.parseLogical()
	if err != nil {
		return nil, err
	}

	if !p.at(lexer.Assign) {
		return target, nil
	}

	pos := p.currentPos
	switch target.(type) {
	case *ast.IdentifierExpression, *ast.IndexExpression, *ast.GetExpression:
	default:
		return nil, p.invalid(pos, "invalid assignment target %s", target)
	}

	err = p.advance()
	if err != nil {
		return nil, err
	}

	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}

	return &ast.AssignmentExpression{Target: target, Value: value, Position: pos}, nil
}

func (p *Parser) infix(left ast.Expression, parseRight func() (ast.Expression, error)) (ast.Expression, error) {
	pos := p.currentPos
	op, ok := ast.InfixOperator(p.current.Kind)
	if !ok {
		return nil, p.unexpected("operator")
	}

	err := p.advance()
	if err != nil {
		return nil, err
	}

	right, err := parseRight()
	if err != nil {
		return nil, err
	}

	return &ast.InfixExpression{Left: left, Operator: op, Right: right, Position: pos}, nil
}

func (p *Parser) parseLogical() (ast.Expression, error) {
	expr, err := p.parseRelational()
	if err != nil {
		return nil, err
	}

	for isLogical(p.current.Kind) {
		expr, err = p.infix(expr, p.parseRelational)
		if err != nil {
			return nil, err
		}
	}

	return expr, nil
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	parseSum := func() (ast.Expression, error) {
		return p.parseArithmetic(precSum)
	}

	expr, err := parseSum()
	if err != nil {
		return nil, err
	}

	for isRelational(p.current.Kind) {
		expr, err = p.infix(expr, parseSum)
		if err != nil {
			return nil, err
		}
	}

	return expr, nil
}

// parseArithmetic climbs over the arithmetic operators whose precedence is
// at least minPrec. Operators of equal precedence associate to the left.
func (p *Parser) parseArithmetic(minPrec precedence) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		prec, ok := arithmeticPrecedence(p.current.Kind)
		if !ok || prec < minPrec {
			return left, nil
		}

		left, err = p.infix(left, func() (ast.Expression, error) {
			return p.parseArithmetic(prec + 1)
		})
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	var op ast.Operator
	switch p.current.Kind {
	case lexer.Minus:
		op = ast.Negate
	case lexer.Not:
		op = ast.Not
	default:
		primary, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		return p.parsePostfix(primary)
	}

	pos := p.currentPos
	err := p.advance()
	if err != nil {
		return nil, err
	}

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &ast.PrefixExpression{Operator: op, Operand: operand, Position: pos}, nil
}

func (p *Parser) parsePostfix(left ast.Expression) (ast.Expression, error) {
	for {
		pos := p.currentPos

		switch p.current.Kind {
		case lexer.Increment, lexer.Decrement:
			op := ast.Increment
			if p.at(lexer.Decrement) {
				op = ast.Decrement
			}

			err := p.advance()
			if err != nil {
				return nil, err
			}

			left = &ast.PostfixExpression{Operand: left, Operator: op, Position: pos}
		case lexer.Dot:
			err := p.advance()
			if err != nil {
				return nil, err
			}

			field, err := p.eat(lexer.Identifier)
			if err != nil {
				return nil, err
			}

			left = &ast.GetExpression{Receiver: left, Field: field.Literal, Position: pos}
		case lexer.LeftBracket:
			err := p.advance()
			if err != nil {
				return nil, err
			}

			index := &ast.IndexExpression{Target: left, Position: pos}
			if !p.at(lexer.RightBracket) {
				index.Index, err = p.parseExpression()
				if err != nil {
					return nil, err
				}
			}

			_, err = p.eat(lexer.RightBracket)
			if err != nil {
				return nil, err
			}

			left = index
		case lexer.LeftParen:
			err := p.advance()
			if err != nil {
				return nil, err
			}

			args, err := p.parseExpressionList(lexer.RightParen)
			if err != nil {
				return nil, err
			}

			left = &ast.CallExpression{Callee: left, Arguments: args, Position: pos}
		default:
			return left, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	pos := p.currentPos
	tok := p.current

	switch tok.Kind {
	case lexer.Number:
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.invalid(pos, "invalid numeric literal %q", tok.Literal)
		}

		return &ast.NumericExpression{Value: value, Position: pos}, p.advance()
	case lexer.String:
		return &ast.StringExpression{Value: tok.Literal, Position: pos}, p.advance()
	case lexer.True, lexer.False:
		return &ast.BoolExpression{Value: tok.Kind == lexer.True, Position: pos}, p.advance()
	case lexer.Null:
		return &ast.NullExpression{Position: pos}, p.advance()
	case lexer.Identifier:
		if p.next.Kind == lexer.LeftBrace {
			return p.parseStruct()
		}

		return &ast.IdentifierExpression{Name: tok.Literal, Position: pos}, p.advance()
	case lexer.Function:
		err := p.advance()
		if err != nil {
			return nil, err
		}

		params, body, err := p.parseSignature()
		if err != nil {
			return nil, err
		}

		return &ast.ClosureExpression{Parameters: params, Body: body, Position: pos}, nil
	case lexer.LeftParen:
		err := p.advance()
		if err != nil {
			return nil, err
		}

		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		_, err = p.eat(lexer.RightParen)
		if err != nil {
			return nil, err
		}

		return expr, nil
	case lexer.LeftBracket:
		err := p.advance()
		if err != nil {
			return nil, err
		}

		items, err := p.parseExpressionList(lexer.RightBracket)
		if err != nil {
			return nil, err
		}

		return &ast.ListExpression{Items: items, Position: pos}, nil
	default:
		return nil, p.unexpected("expression")
	}
}

// parseStruct parses Name { field: expr, ... }.
func (p *Parser) parseStruct() (*ast.StructExpression, error) {
	pos := p.currentPos
	name, err := p.eat(lexer.Identifier)
	if err != nil {
		return nil, err
	}

	_, err = p.eat(lexer.LeftBrace)
	if err != nil {
		return nil, err
	}

	expr := &ast.StructExpression{
		Name:     name.Literal,
		Fields:   make(map[string]ast.Expression),
		Position: pos,
	}

	for !p.at(lexer.RightBrace) {
		fieldPos := p.currentPos
		field, err := p.eat(lexer.Identifier)
		if err != nil {
			return nil, err
		}

		if _, ok := expr.Fields[field.Literal]; ok {
			return nil, p.invalid(fieldPos, "field %s given more than once", field.Literal)
		}

		_, err = p.eat(lexer.Colon)
		if err != nil {
			return nil, err
		}

		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		expr.Fields[field.Literal] = value
		expr.FieldNames = append(expr.FieldNames, field.Literal)

		ok, err := p.skip(lexer.Comma)
		if err != nil {
			return nil, err
		}
		if !ok && !p.at(lexer.RightBrace) {
			return nil, p.unexpected(joinKinds(lexer.Comma, lexer.RightBrace))
		}
	}

	_, err = p.eat(lexer.RightBrace)
	if err != nil {
		return nil, err
	}

	return expr, nil
}
