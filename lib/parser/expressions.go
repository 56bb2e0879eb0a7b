package parser

import (
	"strconv"

	"github.com/vyPal/ifjc/lib/diag"
	ifjlex "github.com/vyPal/ifjc/lib/lexer"
)

var binaryOperators = map[ifjlex.TokenType]Operator{
	ifjlex.Star:      OpMul,
	ifjlex.Slash:     OpDiv,
	ifjlex.Plus:      OpAdd,
	ifjlex.Minus:     OpSub,
	ifjlex.Eq:        OpEq,
	ifjlex.NotEq:     OpNotEq,
	ifjlex.Less:      OpLess,
	ifjlex.Greater:   OpGreater,
	ifjlex.LessEq:    OpLessEq,
	ifjlex.GreaterEq: OpGreaterEq,
	ifjlex.Coalesce:  OpCoalesce,
}

func (p *Parser) parseExpression() (Expression, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	return p.parseExpressionFrom(tok)
}

// parseExpressionFrom parses an expression whose first token has already
// been consumed. Operands and the operators between them are collected into
// flat lists and then folded by precedence.
func (p *Parser) parseExpressionFrom(first ifjlex.Token) (Expression, error) {
	var operands []Expression
	var ops []Operator

	tok := first
	for {
		operand, err := p.parsePrimary(tok)
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
		if len(operands) > maxOperands {
			return nil, diag.PosErrorf(diag.KindSyntax, first.Pos, "expression has too many operands")
		}

		tok, err = p.next()
		if err != nil {
			return nil, err
		}
		op, ok := binaryOperators[tok.Type]
		if !ok {
			p.unget(tok)
			break
		}
		ops = append(ops, op)

		if tok, err = p.next(); err != nil {
			return nil, err
		}
	}
	return fold(operands, ops), nil
}

// fold repeatedly combines the operands around the highest-precedence
// operator left, taking the leftmost one on ties, which makes every operator
// left associative.
func fold(operands []Expression, ops []Operator) Expression {
	for len(ops) > 0 {
		best := 0
		for i := 1; i < len(ops); i++ {
			if ops[i].Precedence() > ops[best].Precedence() {
				best = i
			}
		}
		operands[best] = &BinaryExpression{Op: ops[best], Lhs: operands[best], Rhs: operands[best+1]}
		operands = append(operands[:best+1], operands[best+2:]...)
		ops = append(ops[:best], ops[best+1:]...)
	}
	return operands[0]
}

// parsePrimary parses a parenthesized expression or a term, optionally
// followed by unwrap markers.
func (p *Parser) parsePrimary(tok ifjlex.Token) (Expression, error) {
	var expr Expression
	if tok.Type == ifjlex.LParen {
		p.nesting++
		if p.nesting > maxNesting {
			return nil, diag.PosErrorf(diag.KindSyntax, tok.Pos, "expression nested too deeply")
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ifjlex.RParen, "\")\""); err != nil {
			return nil, err
		}
		p.nesting--
		expr = inner
	} else {
		term, err := termFrom(tok)
		if err != nil {
			return nil, err
		}
		expr = term
	}

	for {
		next, err := p.next()
		if err != nil {
			return nil, err
		}
		if next.Type != ifjlex.Bang {
			p.unget(next)
			return expr, nil
		}
		expr = &UnwrapExpression{Inner: expr}
	}
}

func termFrom(tok ifjlex.Token) (*Term, error) {
	switch tok.Type {
	case ifjlex.Identifier:
		return &Term{Kind: TermIdentifier, Name: tok.Text}, nil
	case ifjlex.IntLiteral:
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, diag.PosErrorf(diag.KindLexical, tok.Pos, "integer literal %s out of range", tok.Text)
		}
		return &Term{Kind: TermInt, Int: v}, nil
	case ifjlex.DecimalLiteral:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, diag.PosErrorf(diag.KindLexical, tok.Pos, "decimal literal %s out of range", tok.Text)
		}
		return &Term{Kind: TermDecimal, Decimal: v}, nil
	case ifjlex.StringLiteral:
		return &Term{Kind: TermString, Str: tok.Text}, nil
	case ifjlex.KeywordNil:
		return &Term{Kind: TermNil}, nil
	}
	return nil, unexpected(tok, "expression")
}
