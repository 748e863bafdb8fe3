// Package codegen walks the AST the parser produces and builds it into
// the SSA IR of package ir, ready for a target backend to emit as an
// object file (spec §4.3). Generator holds exactly the ambient state
// spec §4.3 names: a module, a builder with a moveable insertion
// point, the function currently being lowered, and a flat symbol
// table — mirroring the teacher's Evaluator-struct-holding-state idiom
// (eval/evaluator.go) rather than a free-function walker.
package codegen

import (
	"github.com/veil-lang/veilc/internal/ast"
	"github.com/veil-lang/veilc/internal/diagnostic"
	"github.com/veil-lang/veilc/internal/ir"
)

// Generator lowers a whole program's declarations into one ir.Module.
type Generator struct {
	mod *ir.Module
	b   *ir.Builder
	fn  *ir.Function
	sym *symtab

	retType ir.Type
}

// NewGenerator creates a Generator that will build into a module named
// moduleName.
func NewGenerator(moduleName string) *Generator {
	return &Generator{mod: ir.NewModule(moduleName)}
}

// Generate lowers every declaration and returns the completed module.
// Functions are declared in a first pass before any body is lowered,
// so a call to a function declared later in the source resolves just
// as readily as one declared earlier (spec §9 item 4, generalised
// beyond the original's single-pass, mutual-recursion-only guarantee).
func (g *Generator) Generate(decls []ast.Decl) (*ir.Module, error) {
	funcDecls := make([]*ast.FuncDecl, 0, len(decls))
	for _, d := range decls {
		switch n := d.(type) {
		case *ast.FuncDecl:
			params, ret, err := g.signature(n)
			if err != nil {
				return nil, err
			}
			g.mod.DeclareFunction(n.Name, params, ret)
			funcDecls = append(funcDecls, n)
		case *ast.StructDecl:
			return nil, diagnostic.Errorf(n.Pos, "unsupported declaration kind: struct")
		default:
			return nil, diagnostic.Errorf(d.Position(), "unsupported declaration kind")
		}
	}

	for _, n := range funcDecls {
		if err := g.lowerFunction(n); err != nil {
			return nil, err
		}
	}
	return g.mod, nil
}

func (g *Generator) signature(n *ast.FuncDecl) ([]ir.Param, ir.Type, error) {
	params := make([]ir.Param, len(n.Params))
	for i, p := range n.Params {
		typ, err := resolveType(p.Type)
		if err != nil {
			return nil, 0, err
		}
		params[i] = ir.Param{Name: p.Name, Typ: typ}
	}
	ret := ir.Void
	if n.ReturnType != nil {
		t, err := resolveType(n.ReturnType)
		if err != nil {
			return nil, 0, err
		}
		ret = t
	}
	return params, ret, nil
}

func (g *Generator) lowerFunction(n *ast.FuncDecl) error {
	fn := g.mod.Lookup(n.Name)
	g.fn = fn
	g.retType = fn.ReturnType
	g.sym = newSymtab()
	g.b = ir.NewBuilder(fn)

	entry := fn.NewBlock("entry")
	g.b.SetInsertPoint(entry)

	for _, p := range fn.Params {
		slot := g.b.CreateAlloca(p.Typ)
		g.b.CreateStore(&ir.Param{Name: p.Name, Typ: p.Typ}, slot)
		g.sym.define(p.Name, slot)
	}

	if err := g.lowerStmt(n.Body); err != nil {
		return err
	}

	g.fn, g.b, g.sym = nil, nil, nil
	return nil
}
