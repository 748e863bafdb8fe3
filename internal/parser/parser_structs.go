package parser

import (
	"github.com/veil-lang/veilc/internal/ast"
	"github.com/veil-lang/veilc/internal/token"
)

// parseStructDecl parses "struct TYPE { [MEMBER (, MEMBER)* [,]] }"
// (spec §4.2). The core never lowers it (§4.3), but the parser still
// produces a node for it so callers like the -ast dump can inspect it.
func (p *Parser) parseStructDecl() (ast.Decl, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // past 'struct'
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.OpenBrace); err != nil {
		return nil, err
	}
	var members []ast.Member
	for p.cur.Kind != token.ClosedBrace {
		name := p.cur.Text
		if err := p.expect(token.Identifier); err != nil {
			return nil, err
		}
		if err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		mtyp, err := p.parseType()
		if err != nil {
			return nil, err
		}
		members = append(members, ast.Member{Name: name, Type: mtyp})

		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expect(token.ClosedBrace); err != nil {
		return nil, err
	}
	return &ast.StructDecl{Type: typ, Members: members, Pos: pos}, nil
}

// parseType parses "IDENT [< TYPE (, TYPE)* [,] >]" (spec §4.2).
func (p *Parser) parseType() (*ast.Type, error) {
	pos := p.cur.Pos
	name := p.cur.Text
	if err := p.expect(token.Identifier); err != nil {
		return nil, err
	}
	t := &ast.Type{Name: name, Pos: pos}
	if p.cur.Kind != token.LessThan {
		return t, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.GreaterThan {
		g, err := p.parseType()
		if err != nil {
			return nil, err
		}
		t.Generics = append(t.Generics, g)
		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expect(token.GreaterThan); err != nil {
		return nil, err
	}
	return t, nil
}
