package codegen

import (
	"github.com/veil-lang/veilc/internal/ast"
	"github.com/veil-lang/veilc/internal/diagnostic"
	"github.com/veil-lang/veilc/internal/ir"
	"github.com/veil-lang/veilc/internal/token"
)

// lowerExpr lowers one expression to the IR value it evaluates to
// (spec §4.3 "Expression lowering").
func (g *Generator) lowerExpr(e ast.Expr) (ir.Value, error) {
	switch n := e.(type) {
	case *ast.IntegerLit:
		return &ir.ConstInt{Val: n.Value, Typ: ir.I64}, nil

	case *ast.BoolLit:
		v := uint64(0)
		if n.Value {
			v = 1
		}
		return &ir.ConstInt{Val: v, Typ: ir.Bool}, nil

	case *ast.StringLit:
		return nil, diagnostic.Errorf(n.Pos, "string literals are not supported by code generation")

	case *ast.Ident:
		slot, ok := g.sym.lookup(n.Name)
		if !ok {
			return nil, diagnostic.Errorf(n.Pos, "unbound identifier %q", n.Name)
		}
		return g.b.CreateLoad(slot), nil

	case *ast.Call:
		callee := g.mod.Lookup(n.Name)
		if callee == nil {
			return nil, diagnostic.Errorf(n.Pos, "call to undeclared function %q", n.Name)
		}
		args := make([]ir.Value, len(n.Args))
		for i, a := range n.Args {
			v, err := g.lowerExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return g.b.CreateCall(callee, args), nil

	case *ast.Prefix:
		x, err := g.lowerExpr(n.X)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case token.Minus:
			return g.b.CreateNeg(x, x.Type()), nil
		case token.Bang:
			return g.b.CreateNot(x, x.Type()), nil
		default:
			return nil, diagnostic.Errorf(n.Pos, "invalid prefix operator %s", n.Op)
		}

	case *ast.Infix:
		return g.lowerInfix(n)

	case *ast.Postfix:
		return nil, diagnostic.Errorf(n.Pos, "postfix operators are not supported by code generation")

	default:
		return nil, diagnostic.Errorf(e.Position(), "unsupported expression kind %T", n)
	}
}

func (g *Generator) lowerInfix(n *ast.Infix) (ir.Value, error) {
	left, err := g.lowerExpr(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := g.lowerExpr(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case token.Plus:
		return g.b.CreateBinOp(ir.Add, left, right, left.Type()), nil
	case token.Minus:
		return g.b.CreateBinOp(ir.Sub, left, right, left.Type()), nil
	case token.Asterisk:
		return g.b.CreateBinOp(ir.Mul, left, right, left.Type()), nil
	case token.Slash:
		return g.b.CreateBinOp(ir.SDiv, left, right, left.Type()), nil
	case token.Percent:
		return g.b.CreateBinOp(ir.SRem, left, right, left.Type()), nil
	case token.And:
		return g.b.CreateBinOp(ir.And, left, right, left.Type()), nil
	case token.Pipe:
		return g.b.CreateBinOp(ir.Or, left, right, left.Type()), nil
	case token.Caret:
		return g.b.CreateBinOp(ir.Xor, left, right, left.Type()), nil
	case token.Equal:
		return g.b.CreateICmp(ir.ICmpEQ, left, right), nil
	case token.UnEqual:
		return g.b.CreateICmp(ir.ICmpNE, left, right), nil
	case token.LessThan:
		return g.b.CreateICmp(ir.ICmpSLT, left, right), nil
	case token.LessEqual:
		return g.b.CreateICmp(ir.ICmpSLE, left, right), nil
	case token.GreaterThan:
		return g.b.CreateICmp(ir.ICmpSGT, left, right), nil
	case token.GreaterEqual:
		return g.b.CreateICmp(ir.ICmpSGE, left, right), nil
	default:
		return nil, diagnostic.Errorf(n.Pos, "invalid infix operator %s", n.Op)
	}
}
