package codegen

import "github.com/veil-lang/veilc/internal/ir"

// symtab is the flat, per-function symbol table spec §9 calls for: a
// single-level mapping from local name to the IR stack slot backing
// it. The language has no nested scopes that shadow, so unlike the
// teacher's parent-chained scope.Scope this never needs a parent link;
// it is simply reset at each function boundary (spec §4.3 driver: "For
// Function: reset the symbol table").
type symtab struct {
	vars map[string]*ir.Alloca
}

func newSymtab() *symtab {
	return &symtab{vars: make(map[string]*ir.Alloca)}
}

func (s *symtab) define(name string, slot *ir.Alloca) {
	s.vars[name] = slot
}

func (s *symtab) lookup(name string) (*ir.Alloca, bool) {
	slot, ok := s.vars[name]
	return slot, ok
}
