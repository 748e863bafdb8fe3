// Package backend describes the interface the code generator consumes
// from a target machine (spec §1: "an opaque component providing ...
// target-triple lookup, and object-file emission. This spec describes
// only the interface the code generator consumes from it."). The only
// implementation in this module is internal/backend/amd64.
package backend

import "github.com/veil-lang/veilc/internal/ir"

// OptLevel mirrors the code-generation optimisation levels an
// LLVM-style target machine exposes. The driver always requests
// OptAggressive (spec §4.3 driver: "code-gen optimisation level
// Aggressive"); the other levels exist so the interface is not
// hard-coded to one caller.
type OptLevel int

const (
	OptNone OptLevel = iota
	OptLess
	OptDefault
	OptAggressive
)

// RelocModel mirrors a target machine's relocation model choice.
type RelocModel int

const (
	RelocDefault RelocModel = iota
	RelocStatic
	RelocPIC
)

// CodeModel mirrors a target machine's code model choice.
type CodeModel int

const (
	CodeModelDefault CodeModel = iota
	CodeModelSmall
	CodeModelLarge
)

// TargetMachine emits one ir.Module as a relocatable object file.
type TargetMachine interface {
	EmitObject(mod *ir.Module, path string) error
}

// Target constructs a TargetMachine for a given triple/cpu/feature
// string, the same three-argument shape an LLVM target lookup takes.
type Target interface {
	NewTargetMachine(triple, cpu, features string, opt OptLevel, reloc RelocModel, code CodeModel) (TargetMachine, error)
}
