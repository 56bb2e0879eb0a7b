package parser

import (
	ifjlex "github.com/vyPal/ifjc/lib/lexer"
)

// parseFunction parses a function definition after the `func` keyword.
func (p *Parser) parseFunction() (*FunctionDefinition, error) {
	name, err := p.expect(ifjlex.Identifier, "function name")
	if err != nil {
		return nil, err
	}
	fn := &FunctionDefinition{Name: name.Text}

	if _, err := p.expect(ifjlex.LParen, "\"(\""); err != nil {
		return nil, err
	}
	if fn.Params, err = p.parseParameters(); err != nil {
		return nil, err
	}

	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.Type == ifjlex.Arrow {
		rt, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fn.ReturnType = &rt
	} else {
		p.unget(tok)
	}

	p.inFunction, p.returnType = true, fn.ReturnType
	defer func() { p.inFunction, p.returnType = false, nil }()

	if fn.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return fn, nil
}

func (p *Parser) parseParameters() ([]Parameter, error) {
	var params []Parameter
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.Type == ifjlex.RParen {
		return params, nil
	}

	for {
		var param Parameter
		switch tok.Type {
		case ifjlex.Identifier:
			param.Outside = tok.Text
		case ifjlex.Underscore:
		default:
			return nil, unexpected(tok, "parameter name")
		}

		inside, err := p.next()
		if err != nil {
			return nil, err
		}
		switch inside.Type {
		case ifjlex.Identifier:
			param.Inside = inside.Text
		case ifjlex.Underscore:
			param.Inside = "_"
		default:
			return nil, unexpected(inside, "parameter name")
		}

		if _, err := p.expect(ifjlex.Colon, "\":\""); err != nil {
			return nil, err
		}
		if param.Type, err = p.parseType(); err != nil {
			return nil, err
		}
		params = append(params, param)

		sep, err := p.next()
		if err != nil {
			return nil, err
		}
		switch sep.Type {
		case ifjlex.RParen:
			return params, nil
		case ifjlex.Comma:
		default:
			return nil, unexpected(sep, "\",\" or \")\"")
		}
		if tok, err = p.next(); err != nil {
			return nil, err
		}
	}
}
