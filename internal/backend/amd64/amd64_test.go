package amd64

import (
	"bytes"
	"debug/elf"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veil-lang/veilc/internal/codegen"
	"github.com/veil-lang/veilc/internal/ir"
	"github.com/veil-lang/veilc/internal/parser"
)

func TestAsmBuf_MovRegImm64(t *testing.T) {
	var a asmBuf
	a.movRegImm64(rax, 42)
	// REX.W (0x48) + 0xB8 (mov rax, imm64) + 8 little-endian bytes.
	assert.Equal(t, []byte{0x48, 0xB8, 42, 0, 0, 0, 0, 0, 0, 0}, a.buf)
}

func TestAsmBuf_PushPopExtendedRegisterNeedsREX(t *testing.T) {
	var a asmBuf
	a.pushReg(r8)
	a.popReg(r8)
	assert.Equal(t, []byte{0x41, 0x50, 0x41, 0x58}, a.buf)
}

func TestAsmBuf_AddRegReg(t *testing.T) {
	var a asmBuf
	a.addRegReg(rax, rcx)
	// REX.W + 0x01 + ModRM(mod=3, reg=rcx, rm=rax)
	assert.Equal(t, []byte{0x48, 0x01, 0xC8}, a.buf)
}

func TestAsmBuf_PatchRel32(t *testing.T) {
	var a asmBuf
	a.emit(0x90) // one byte of padding before the call
	field := a.callRel32Placeholder()
	a.patchRel32(field, 100)
	// target(100) - (field+4) encoded little-endian.
	want := int32(100 - (field + 4))
	got := int32(a.buf[field]) | int32(a.buf[field+1])<<8 | int32(a.buf[field+2])<<16 | int32(a.buf[field+3])<<24
	assert.Equal(t, want, got)
}

func compileModule(t *testing.T, src string) *ir.Module {
	t.Helper()
	decls, err := parser.Parse("test.vl", src)
	require.NoError(t, err)
	mod, err := codegen.NewGenerator("test").Generate(decls)
	require.NoError(t, err)
	return mod
}

func TestEncodeFunction_StraightLineReturnsBalancedFrame(t *testing.T) {
	mod := compileModule(t, `fn main() i64 { let a: i64 = 1; let b: i64 = 2; return a + b; }`)
	code, calls := encodeFunction(mod.Functions[0])
	assert.NotEmpty(t, code)
	assert.Empty(t, calls)
	// every function body ends in leave (0xC9) + ret (0xC3)
	assert.Equal(t, []byte{0xC9, 0xC3}, code[len(code)-2:])
}

func TestEncodeFunction_CallRecordsPatchForCallee(t *testing.T) {
	mod := compileModule(t, `fn main() i64 { return helper(); } fn helper() i64 { return 1; }`)
	_, calls := encodeFunction(mod.Functions[0])
	require.Len(t, calls, 1)
	assert.Equal(t, "helper", calls[0].callee)
}

func TestTargetMachine_EmitObjectWritesValidELF(t *testing.T) {
	mod := compileModule(t, `fn add(a: i64, b: i64) i64 { return a + b; } fn main() i64 { return add(1, 2); }`)

	machine, err := NewTarget().NewTargetMachine(DefaultTargetTriple, "", "", 0, 0, 0)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.o")
	require.NoError(t, machine.EmitObject(mod, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 64)
	assert.Equal(t, elf.ELFMAG, string(data[:4]))

	f, err := elf.NewFile(bytes.NewReader(data))
	require.NoError(t, err)
	syms, err := f.Symbols()
	require.NoError(t, err)
	var names []string
	for _, s := range syms {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "add")
	assert.Contains(t, names, "main")
}
