package amd64

import (
	"fmt"

	"github.com/veil-lang/veilc/internal/backend"
	"github.com/veil-lang/veilc/internal/ir"
)

// TargetMachine assembles one ir.Module into an ELF64 relocatable
// object for SysV x86-64. It is the sole implementation of
// backend.TargetMachine this module ships (spec §1: the rest of the
// compiler treats it as opaque).
type TargetMachine struct {
	Triple, CPU, Features string
	Opt                   backend.OptLevel
	Reloc                 backend.RelocModel
	Code                  backend.CodeModel
}

// funcSpan is a compiled function's position within the combined .text
// buffer, needed both to patch call sites and to size symtab entries.
type funcSpan struct {
	name        string
	start, size int
}

// EmitObject lowers every function in mod into one .text section,
// patches intra-module calls now that every function's offset is
// known, and writes the result as an ELF64 relocatable object at path.
func (m *TargetMachine) EmitObject(mod *ir.Module, path string) error {
	var text asmBuf
	spans := make([]funcSpan, 0, len(mod.Functions))
	var pendingCalls []struct {
		funcStart int
		callPatch
	}

	for _, fn := range mod.Functions {
		code, calls := encodeFunction(fn)
		start := text.pos()
		text.emit(code...)
		spans = append(spans, funcSpan{name: fn.Name, start: start, size: len(code)})
		for _, c := range calls {
			pendingCalls = append(pendingCalls, struct {
				funcStart int
				callPatch
			}{funcStart: start, callPatch: c})
		}
	}

	funcStart := make(map[string]int, len(spans))
	for _, s := range spans {
		funcStart[s.name] = s.start
	}
	for _, pc := range pendingCalls {
		target, ok := funcStart[pc.callee]
		if !ok {
			return fmt.Errorf("amd64: call to undefined function %q", pc.callee)
		}
		text.patchRel32(pc.funcStart+pc.fieldPos, target)
	}

	return writeELFObject(path, text.buf, spans)
}
