package codegen

import (
	"github.com/veil-lang/veilc/internal/ast"
	"github.com/veil-lang/veilc/internal/diagnostic"
)

// lowerStmt lowers one statement into the current insertion block,
// possibly repositioning the builder (If moves it to a fresh merge
// block; Block leaves it wherever the last child left it).
func (g *Generator) lowerStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.BlockStmt:
		for _, child := range n.Stmts {
			if err := g.lowerStmt(child); err != nil {
				return err
			}
		}
		return nil

	case *ast.LetStmt:
		if n.Type == nil {
			return diagnostic.Errorf(n.Pos, "let %q has no type annotation", n.Name)
		}
		typ, err := resolveType(n.Type)
		if err != nil {
			return err
		}
		slot := g.b.CreateAlloca(typ)
		// Inserted before lowering the initialiser (spec §4.3 "Let"),
		// so a self-referential name resolves to the fresh slot rather
		// than an outer one — there are no outer ones in this flat
		// table, but this keeps the lowering order spec-faithful.
		g.sym.define(n.Name, slot)
		val, err := g.lowerExpr(n.Value)
		if err != nil {
			return err
		}
		g.b.CreateStore(val, slot)
		return nil

	case *ast.AssignStmt:
		slot, ok := g.sym.lookup(n.Name)
		if !ok {
			return diagnostic.Errorf(n.Pos, "unbound identifier %q", n.Name)
		}
		val, err := g.lowerExpr(n.Value)
		if err != nil {
			return err
		}
		g.b.CreateStore(val, slot)
		return nil

	case *ast.IfStmt:
		return g.lowerIf(n)

	case *ast.ExprStmt:
		_, err := g.lowerExpr(n.Expr)
		return err

	case *ast.ReturnStmt:
		if n.Value == nil {
			g.b.CreateRet(nil)
			return nil
		}
		val, err := g.lowerExpr(n.Value)
		if err != nil {
			return err
		}
		g.b.CreateRet(val)
		return nil

	default:
		return diagnostic.Errorf(s.Position(), "unsupported statement kind %T", n)
	}
}

// lowerIf lowers an If statement into three fresh blocks — cons, alter,
// merge — branching on the condition and rejoining at merge. It checks
// whether each arm's exit block is already terminated (by a Return)
// before adding the branch to merge, fixing the teacher-shaped
// terminator-after-terminator bug spec §9 item 2 calls out.
func (g *Generator) lowerIf(n *ast.IfStmt) error {
	cond, err := g.lowerExpr(n.Cond)
	if err != nil {
		return err
	}

	cons := g.fn.NewBlock("if.then")
	alt := g.fn.NewBlock("if.else")
	merge := g.fn.NewBlock("if.merge")
	g.b.CreateCondBr(cond, cons, alt)

	g.b.SetInsertPoint(cons)
	if err := g.lowerStmt(n.Then); err != nil {
		return err
	}
	if !g.b.Block().Terminated() {
		g.b.CreateBr(merge)
	}

	g.b.SetInsertPoint(alt)
	if n.Else != nil {
		if err := g.lowerStmt(n.Else); err != nil {
			return err
		}
		if !g.b.Block().Terminated() {
			g.b.CreateBr(merge)
		}
	} else {
		g.b.CreateBr(merge)
	}

	g.b.SetInsertPoint(merge)
	return nil
}
