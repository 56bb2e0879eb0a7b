package parser

import (
	"github.com/vyPal/ifjc/lib/diag"
	ifjlex "github.com/vyPal/ifjc/lib/lexer"
)

func (p *Parser) parseStatement(tok ifjlex.Token) (Statement, error) {
	switch tok.Type {
	case ifjlex.KeywordVar:
		return p.parseVariableDefinition(false)
	case ifjlex.KeywordLet:
		return p.parseVariableDefinition(true)
	case ifjlex.KeywordIf:
		return p.parseConditional()
	case ifjlex.KeywordWhile:
		return p.parseIteration()
	case ifjlex.KeywordReturn:
		return p.parseReturn(tok)
	case ifjlex.Identifier:
		return p.parseIdentifierStatement(tok)
	}
	return nil, unexpected(tok, "statement")
}

// parseBlock parses `{ statement* }`.
func (p *Parser) parseBlock() (Block, error) {
	if _, err := p.expect(ifjlex.LBrace, "\"{\""); err != nil {
		return nil, err
	}
	return p.parseBlockBody()
}

func (p *Parser) parseBlockBody() (Block, error) {
	block := Block{}
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case ifjlex.RBrace:
			return block, nil
		case ifjlex.EOF:
			return nil, unexpected(tok, "\"}\"")
		}
		stmt, err := p.parseStatement(tok)
		if err != nil {
			return nil, err
		}
		block = append(block, stmt)
	}
}

func (p *Parser) parseVariableDefinition(immutable bool) (*VariableDefinition, error) {
	name, err := p.expect(ifjlex.Identifier, "variable name")
	if err != nil {
		return nil, err
	}
	def := &VariableDefinition{Name: name.Text, Immutable: immutable}

	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.Type == ifjlex.Colon {
		dt, err := p.parseType()
		if err != nil {
			return nil, err
		}
		def.Type = &dt
		if tok, err = p.next(); err != nil {
			return nil, err
		}
	}
	if tok.Type != ifjlex.Assign {
		p.unget(tok)
		return def, nil
	}

	def.Value, def.Call, err = p.parseInitializer()
	if err != nil {
		return nil, err
	}
	return def, nil
}

// parseInitializer parses the right-hand side of `=`, which is either a
// function call or an expression.
func (p *Parser) parseInitializer() (Expression, *Call, error) {
	tok, err := p.next()
	if err != nil {
		return nil, nil, err
	}
	if tok.Type == ifjlex.Identifier {
		after, err := p.next()
		if err != nil {
			return nil, nil, err
		}
		if after.Type == ifjlex.LParen {
			call, err := p.parseCall(tok.Text)
			return nil, call, err
		}
		p.unget(after)
	}
	expr, err := p.parseExpressionFrom(tok)
	return expr, nil, err
}

// parseIdentifierStatement handles statements starting with a name: an
// assignment, a call whose result is assigned, or a bare procedure call.
func (p *Parser) parseIdentifierStatement(name ifjlex.Token) (Statement, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case ifjlex.Assign:
		value, call, err := p.parseInitializer()
		if err != nil {
			return nil, err
		}
		if call != nil {
			return &FunctionCall{Dest: name.Text, Call: call}, nil
		}
		return &Assignment{Name: name.Text, Value: value}, nil
	case ifjlex.LParen:
		call, err := p.parseCall(name.Text)
		if err != nil {
			return nil, err
		}
		return &ProcedureCall{Call: call}, nil
	}
	return nil, unexpected(tok, "\"=\" or \"(\"")
}

// parseCall parses a comma separated argument list after the opening
// parenthesis. Each argument is a term, optionally prefixed with `label:`.
func (p *Parser) parseCall(name string) (*Call, error) {
	call := &Call{Name: name}
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.Type == ifjlex.RParen {
		return call, nil
	}

	for {
		var arg Argument
		if tok.Type == ifjlex.Identifier {
			after, err := p.next()
			if err != nil {
				return nil, err
			}
			if after.Type == ifjlex.Colon {
				arg.Label = tok.Text
				if tok, err = p.next(); err != nil {
					return nil, err
				}
			} else {
				p.unget(after)
			}
		}
		if arg.Value, err = termFrom(tok); err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		sep, err := p.next()
		if err != nil {
			return nil, err
		}
		switch sep.Type {
		case ifjlex.RParen:
			return call, nil
		case ifjlex.Comma:
		default:
			return nil, unexpected(sep, "\",\" or \")\"")
		}
		if tok, err = p.next(); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseConditional() (*Conditional, error) {
	cond := &Conditional{}
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.Type == ifjlex.KeywordLet {
		name, err := p.expect(ifjlex.Identifier, "variable name")
		if err != nil {
			return nil, err
		}
		cond.Condition.Binding = &OptionalBinding{Name: name.Text}
	} else {
		if cond.Condition.Expr, err = p.parseExpressionFrom(tok); err != nil {
			return nil, err
		}
	}

	if cond.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}

	tok, err = p.next()
	if err != nil {
		return nil, err
	}
	if tok.Type != ifjlex.KeywordElse {
		p.unget(tok)
		return cond, nil
	}

	tok, err = p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case ifjlex.KeywordIf:
		nested, err := p.parseConditional()
		if err != nil {
			return nil, err
		}
		cond.Else = Block{nested}
	case ifjlex.LBrace:
		if cond.Else, err = p.parseBlockBody(); err != nil {
			return nil, err
		}
	default:
		return nil, unexpected(tok, "\"{\" or \"if\"")
	}
	return cond, nil
}

func (p *Parser) parseIteration() (*Iteration, error) {
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &Iteration{Condition: cond, Body: body}, nil
}

// parseReturn parses a return statement. A value is read when the function
// declares a return type, or when the next token is on the same line, so
// that a missing or surplus value is left for the analyzer to report.
func (p *Parser) parseReturn(tok ifjlex.Token) (*Return, error) {
	if !p.inFunction {
		return nil, diag.PosErrorf(diag.KindSyntax, tok.Pos, "return outside of a function")
	}
	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	if next.Type == ifjlex.RBrace || next.Type == ifjlex.EOF {
		return &Return{}, nil
	}
	if p.returnType == nil && next.Pos.Line != tok.Pos.Line {
		return &Return{}, nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &Return{Value: value}, nil
}
