package parser

import (
	"github.com/veil-lang/veilc/internal/ast"
	"github.com/veil-lang/veilc/internal/token"
)

// parseFuncDecl parses "fn NAME ( PARAMS ) [TYPE] BLOCK" (spec §4.2).
func (p *Parser) parseFuncDecl() (ast.Decl, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // past 'fn'
		return nil, err
	}
	name := p.cur.Text
	if err := p.expect(token.Identifier); err != nil {
		return nil, err
	}

	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	var ret *ast.Type
	if p.cur.Kind != token.OpenBrace {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		ret = t
	}

	body, err := p.parseBlockStmt()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDecl{Name: name, Params: params, ReturnType: ret, Body: body, Pos: pos}, nil
}

// parseParams parses "( [IDENT : TYPE (, IDENT : TYPE)* [,]] )".
func (p *Parser) parseParams() ([]ast.Param, error) {
	if err := p.expect(token.OpenParen); err != nil {
		return nil, err
	}
	var params []ast.Param
	for p.cur.Kind != token.ClosedParen {
		name := p.cur.Text
		if err := p.expect(token.Identifier); err != nil {
			return nil, err
		}
		if err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: name, Type: typ})

		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expect(token.ClosedParen); err != nil {
		return nil, err
	}
	return params, nil
}
