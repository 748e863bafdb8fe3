package parser

import (
	"strconv"
	"strings"

	"github.com/veil-lang/veilc/internal/ast"
	"github.com/veil-lang/veilc/internal/diagnostic"
	"github.com/veil-lang/veilc/internal/token"
)

// stopTokens halt the infix/postfix loop without being an error — they
// close an enclosing construct (spec §4.2 step 3).
var stopTokens = map[token.Kind]bool{
	token.Eof:         true,
	token.ClosedParen: true,
	token.ClosedBrace: true,
	token.OpenBrace:   true,
	token.Comma:       true,
	token.SemiColon:   true,
}

// parseExpr is the single Pratt routine of spec §4.2: parse a nud, then
// repeatedly fold in postfix/infix operators whose left binding power
// clears minBP.
func (p *Parser) parseExpr(minBP int) (ast.Expr, error) {
	left, err := p.parseNud()
	if err != nil {
		return nil, err
	}

	for {
		k := p.cur.Kind
		if stopTokens[k] {
			return left, nil
		}
		if postfixOps[k] {
			if postfixLBP < minBP {
				return left, nil
			}
			pos := p.cur.Pos
			if err := p.advance(); err != nil {
				return nil, err
			}
			left = &ast.Postfix{Op: k, X: left, Pos: pos}
			continue
		}
		b, ok := infixBP[k]
		if !ok {
			return nil, diagnostic.Errorf(p.cur.Pos, "unknown operator %s %q at expression position", k, p.cur.Text)
		}
		if b.left < minBP {
			return left, nil
		}
		pos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseExpr(b.right)
		if err != nil {
			return nil, err
		}
		left = &ast.Infix{Op: k, Left: left, Right: right, Pos: pos}
	}
}

// parseNud parses the null-denotation: a literal, identifier/call,
// parenthesised sub-expression, or a prefix operator.
func (p *Parser) parseNud() (ast.Expr, error) {
	switch p.cur.Kind {
	case token.Integer:
		return p.parseIntegerLit()
	case token.String:
		return p.parseStringLit()
	case token.Boolean:
		return p.parseBoolLit()
	case token.Identifier:
		return p.parseIdentOrCall()
	case token.OpenParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.ClosedParen); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		if prefixOps[p.cur.Kind] {
			op := p.cur.Kind
			pos := p.cur.Pos
			if err := p.advance(); err != nil {
				return nil, err
			}
			x, err := p.parseExpr(prefixRBP)
			if err != nil {
				return nil, err
			}
			return &ast.Prefix{Op: op, X: x, Pos: pos}, nil
		}
		return nil, diagnostic.Errorf(p.cur.Pos, "unexpected token %s %q at start of expression", p.cur.Kind, p.cur.Text)
	}
}

func (p *Parser) parseIntegerLit() (ast.Expr, error) {
	pos := p.cur.Pos
	text := p.cur.Text
	base := 10
	digits := text
	switch {
	case strings.HasPrefix(text, "0o"):
		base, digits = 8, text[2:]
	case strings.HasPrefix(text, "0b"):
		base, digits = 2, text[2:]
	case strings.HasPrefix(text, "0x"):
		base, digits = 16, text[2:]
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return nil, diagnostic.Errorf(pos, "invalid integer literal %q: %s", text, err)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.IntegerLit{Value: v, Pos: pos}, nil
}

func (p *Parser) parseStringLit() (ast.Expr, error) {
	pos := p.cur.Pos
	text := p.cur.Text
	// Strip the surrounding quotes, then resolve \" and \\ — the only
	// two escapes the lexer's string rule admits (spec §4.1).
	raw := text[1 : len(text)-1]
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) && (raw[i+1] == '"' || raw[i+1] == '\\') {
			sb.WriteByte(raw[i+1])
			i++
			continue
		}
		sb.WriteByte(raw[i])
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.StringLit{Value: sb.String(), Pos: pos}, nil
}

func (p *Parser) parseBoolLit() (ast.Expr, error) {
	pos := p.cur.Pos
	v := p.cur.Text == "true"
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.BoolLit{Value: v, Pos: pos}, nil
}

func (p *Parser) parseIdentOrCall() (ast.Expr, error) {
	pos := p.cur.Pos
	name := p.cur.Text
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.Kind != token.OpenParen {
		return &ast.Ident{Name: name, Pos: pos}, nil
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	return &ast.Call{Name: name, Args: args, Pos: pos}, nil
}

// parseArgs parses "( [EXPR (, EXPR)*] )", cur positioned on the "(".
func (p *Parser) parseArgs() ([]ast.Expr, error) {
	if err := p.expect(token.OpenParen); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for p.cur.Kind != token.ClosedParen {
		arg, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
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
	return args, nil
}
