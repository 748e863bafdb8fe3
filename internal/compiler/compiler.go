// Package compiler wires the lexer-backed parser, the code generator,
// and a target backend into the single driver cmd/veilc calls: parse a
// source file, lower it to IR, and emit a relocatable object. There is
// no recovery — the first *diagnostic.Error from any stage stops the
// pipeline (spec §7).
package compiler

import (
	"os"

	"github.com/veil-lang/veilc/internal/ast"
	"github.com/veil-lang/veilc/internal/backend"
	"github.com/veil-lang/veilc/internal/backend/amd64"
	"github.com/veil-lang/veilc/internal/codegen"
	"github.com/veil-lang/veilc/internal/ir"
	"github.com/veil-lang/veilc/internal/parser"
)

// Result is everything a successful compilation produced, so a caller
// like cmd/veilc's -tokens/-ast dump switches can inspect an
// intermediate stage without re-running it.
type Result struct {
	Decls []ast.Decl
	Mod   *ir.Module
}

// Compiler drives one compilation. Target is overridable so tests (and
// eventually other backends) don't have to go through amd64.NewTarget.
type Compiler struct {
	Target backend.Target
}

// New returns a Compiler wired to the module's only backend.
func New() *Compiler {
	return &Compiler{Target: amd64.NewTarget()}
}

// ParseAndLower runs the lexer/parser and code generator stages only,
// stopping short of object emission — used by cmd/veilc's inspection
// flags and by CompileFile.
func (c *Compiler) ParseAndLower(file, src string) (*Result, error) {
	decls, err := parser.Parse(file, src)
	if err != nil {
		return nil, err
	}
	mod, err := codegen.NewGenerator(moduleName(file)).Generate(decls)
	if err != nil {
		return &Result{Decls: decls}, err
	}
	return &Result{Decls: decls, Mod: mod}, nil
}

// CompileFile reads path, runs the full pipeline, and writes a
// relocatable object to outPath.
func (c *Compiler) CompileFile(path, outPath string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := c.ParseAndLower(path, string(src))
	if err != nil {
		return res, err
	}
	machine, err := c.Target.NewTargetMachine(amd64.DefaultTargetTriple, "", "", backend.OptAggressive, backend.RelocDefault, backend.CodeModelDefault)
	if err != nil {
		return res, err
	}
	if err := machine.EmitObject(res.Mod, outPath); err != nil {
		return res, err
	}
	return res, nil
}

func moduleName(file string) string {
	return file
}
