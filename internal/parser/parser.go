// Package parser implements a Pratt parser for the language described in
// internal/ast: recursive descent for declarations and statements,
// precedence climbing for expressions. Any syntax error is fatal — the
// parser returns a *diagnostic.Error and stops, it never collects a
// list of errors to report together (spec §4.2 contract).
package parser

import (
	"github.com/veil-lang/veilc/internal/ast"
	"github.com/veil-lang/veilc/internal/diagnostic"
	"github.com/veil-lang/veilc/internal/lexer"
	"github.com/veil-lang/veilc/internal/token"
)

// Parser holds a two-token lookahead window over a Lexer. Cur is the
// token under consideration; Next is consulted to decide which
// production to take without consuming it.
type Parser struct {
	lex  *lexer.Lexer
	cur  token.Token
	next token.Token
}

// New creates a Parser positioned at the first token of src.
func New(file, src string) (*Parser, error) {
	p := &Parser{lex: lexer.New(file, src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// advance shifts the lookahead window forward by one token.
func (p *Parser) advance() error {
	p.cur = p.next
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.next = tok
	return nil
}

// expect fails unless cur has the given kind, and otherwise advances
// past it.
func (p *Parser) expect(kind token.Kind) error {
	if p.cur.Kind != kind {
		return diagnostic.Errorf(p.cur.Pos, "expected %s, got %s %q", kind, p.cur.Kind, p.cur.Text)
	}
	return p.advance()
}

// Parse consumes the whole token stream and returns the ordered list of
// top-level declarations (spec §4.2: "exposes one operation, parse").
func Parse(file, src string) ([]ast.Decl, error) {
	p, err := New(file, src)
	if err != nil {
		return nil, err
	}
	return p.parseProgram()
}

func (p *Parser) parseProgram() ([]ast.Decl, error) {
	var decls []ast.Decl
	for p.cur.Kind != token.Eof {
		d, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func (p *Parser) parseDecl() (ast.Decl, error) {
	switch p.cur.Kind {
	case token.Function:
		return p.parseFuncDecl()
	case token.Struct:
		return p.parseStructDecl()
	default:
		return nil, diagnostic.Errorf(p.cur.Pos, "expected a declaration (fn or struct), got %s %q", p.cur.Kind, p.cur.Text)
	}
}
