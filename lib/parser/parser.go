// Package parser builds the IFJ23 abstract syntax tree from a token stream.
package parser

import (
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/vyPal/ifjc/lib/diag"
	ifjlex "github.com/vyPal/ifjc/lib/lexer"
)

// Limits on expression size; exceeding them is a syntax error.
const (
	maxOperands = 4096
	maxNesting  = 256
)

// TokenSource supplies tokens with one token of pushback.
type TokenSource interface {
	Next() (ifjlex.Token, error)
	Unget(ifjlex.Token)
}

type Parser struct {
	src TokenSource

	inFunction bool
	returnType *DataType
	nesting    int
}

func New(src TokenSource) *Parser {
	return &Parser{src: src}
}

func ParseFile(filename string) (*Program, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening source")
	}
	defer file.Close()

	stream, err := ifjlex.NewStream(filename, file)
	if err != nil {
		return nil, err
	}
	return New(stream).ParseProgram()
}

func ParseString(filename, code string) (*Program, error) {
	stream, err := ifjlex.NewStringStream(filename, code)
	if err != nil {
		return nil, err
	}
	return New(stream).ParseProgram()
}

// ParseExpression parses code as a single expression followed by end of
// input.
func ParseExpression(code string) (Expression, error) {
	stream, err := ifjlex.NewStringStream("", code)
	if err != nil {
		return nil, err
	}
	p := New(stream)
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ifjlex.EOF, "end of input"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) ParseProgram() (*Program, error) {
	prog := &Program{}
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case ifjlex.EOF:
			return prog, nil
		case ifjlex.KeywordFunc:
			fn, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			prog.Items = append(prog.Items, fn)
		default:
			stmt, err := p.parseStatement(tok)
			if err != nil {
				return nil, err
			}
			prog.Items = append(prog.Items, stmt)
		}
	}
}

func (p *Parser) next() (ifjlex.Token, error) {
	return p.src.Next()
}

func (p *Parser) unget(tok ifjlex.Token) {
	p.src.Unget(tok)
}

// peek returns the next token without consuming it.
func (p *Parser) peek() (ifjlex.Token, error) {
	tok, err := p.src.Next()
	if err != nil {
		return tok, err
	}
	p.src.Unget(tok)
	return tok, nil
}

func (p *Parser) expect(tt ifjlex.TokenType, what string) (ifjlex.Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if tok.Type != tt {
		return tok, unexpected(tok, what)
	}
	return tok, nil
}

func unexpected(tok ifjlex.Token, what string) error {
	found := tok.Type.String()
	if tok.Type == ifjlex.Identifier {
		found = strconv.Quote(tok.Text)
	}
	return diag.PosErrorf(diag.KindSyntax, tok.Pos, "expected %s, found %s", what, found)
}

// parseType parses Int, Double or String with an optional `?` suffix.
func (p *Parser) parseType() (DataType, error) {
	tok, err := p.next()
	if err != nil {
		return DataType{}, err
	}
	var dt DataType
	switch tok.Type {
	case ifjlex.KeywordInt:
		dt.Kind = Int
	case ifjlex.KeywordDouble:
		dt.Kind = Double
	case ifjlex.KeywordString:
		dt.Kind = String
	default:
		return dt, unexpected(tok, "type")
	}

	tok, err = p.next()
	if err != nil {
		return dt, err
	}
	if tok.Type == ifjlex.Question {
		dt.Nullable = true
	} else {
		p.unget(tok)
	}
	return dt, nil
}
