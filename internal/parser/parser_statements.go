package parser

import (
	"github.com/veil-lang/veilc/internal/ast"
	"github.com/veil-lang/veilc/internal/diagnostic"
	"github.com/veil-lang/veilc/internal/token"
)

// parseStatement dispatches on the lookahead token per the table in
// spec §4.2.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur.Kind {
	case token.Let:
		return p.parseLetStmt()
	case token.Return:
		return p.parseReturnStmt()
	case token.If:
		return p.parseIfStmt()
	case token.OpenBrace:
		return p.parseBlockStmt()
	case token.Identifier:
		return p.parseIdentStatement()
	default:
		return p.parseExprStmt()
	}
}

// parseLetStmt parses "let IDENT [: TYPE] = EXPR ;". The annotation is
// optional here (spec §4.2); codegen treats its absence as fatal
// (spec §9 item 1).
func (p *Parser) parseLetStmt() (ast.Stmt, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // past 'let'
		return nil, err
	}
	if p.cur.Kind != token.Identifier {
		return nil, diagnostic.Errorf(p.cur.Pos, "expected identifier after let, got %s %q", p.cur.Kind, p.cur.Text)
	}
	name := p.cur.Text
	if err := p.advance(); err != nil {
		return nil, err
	}

	var typ *ast.Type
	if p.cur.Kind == token.Colon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		typ = t
	}

	if err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	value, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.SemiColon); err != nil {
		return nil, err
	}
	return &ast.LetStmt{Name: name, Type: typ, Value: value, Pos: pos}, nil
}

// parseIdentStatement disambiguates "IDENT = EXPR ;" from a bare call
// or other expression statement starting with an identifier (spec
// §4.2: "assignment ... or call statement").
func (p *Parser) parseIdentStatement() (ast.Stmt, error) {
	if p.next.Kind == token.Assign {
		pos := p.cur.Pos
		name := p.cur.Text
		if err := p.advance(); err != nil { // past IDENT
			return nil, err
		}
		if err := p.advance(); err != nil { // past '='
			return nil, err
		}
		value, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.SemiColon); err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Name: name, Value: value, Pos: pos}, nil
	}
	return p.parseExprStmt()
}

func (p *Parser) parseReturnStmt() (ast.Stmt, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // past 'return'
		return nil, err
	}
	if p.cur.Kind == token.SemiColon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Pos: pos}, nil
	}
	value, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.SemiColon); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Value: value, Pos: pos}, nil
}

// parseIfStmt parses "if EXPR STMT [else (IF-STMT|BLOCK)]". The
// consequent and alternative are statements, not necessarily blocks,
// matching the grammar note in spec §4.2.
func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	pos := p.cur.Pos
	if err := p.advance(); err != nil { // past 'if'
		return nil, err
	}
	cond, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt
	if p.cur.Kind == token.Else {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseStmt, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: elseStmt, Pos: pos}, nil
}

func (p *Parser) parseBlockStmt() (ast.Stmt, error) {
	pos := p.cur.Pos
	if err := p.expect(token.OpenBrace); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for p.cur.Kind != token.ClosedBrace {
		if p.cur.Kind == token.Eof {
			return nil, diagnostic.Errorf(p.cur.Pos, "unexpected end of input, expected %s", token.ClosedBrace)
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if err := p.expect(token.ClosedBrace); err != nil {
		return nil, err
	}
	return &ast.BlockStmt{Stmts: stmts, Pos: pos}, nil
}

func (p *Parser) parseExprStmt() (ast.Stmt, error) {
	pos := p.cur.Pos
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.SemiColon); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: e, Pos: pos}, nil
}
