package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veil-lang/veilc/internal/ir"
	"github.com/veil-lang/veilc/internal/parser"
)

func generate(t *testing.T, src string) *ir.Module {
	t.Helper()
	decls, err := parser.Parse("test.vl", src)
	require.NoError(t, err)
	mod, err := NewGenerator("test").Generate(decls)
	require.NoError(t, err)
	return mod
}

func generateErr(t *testing.T, src string) error {
	t.Helper()
	decls, err := parser.Parse("test.vl", src)
	if err != nil {
		return err
	}
	_, err = NewGenerator("test").Generate(decls)
	return err
}

func TestGenerate_SimpleReturn(t *testing.T) {
	mod := generate(t, `fn main() i64 { return 42; }`)
	require.Len(t, mod.Functions, 1)
	fn := mod.Functions[0]
	assert.Equal(t, "main", fn.Name)
	assert.Equal(t, ir.I64, fn.ReturnType)
	entry := fn.Blocks[0]
	require.Len(t, entry.Instrs, 1)
	ret, ok := entry.Instrs[0].(*ir.Ret)
	require.True(t, ok)
	ci, ok := ret.Val.(*ir.ConstInt)
	require.True(t, ok)
	assert.Equal(t, uint64(42), ci.Val)
}

func TestGenerate_LetAndArithmeticPrecedence(t *testing.T) {
	mod := generate(t, `fn main() i64 { let a: i64 = 1; let b: i64 = 2; return a + b * 3; }`)
	fn := mod.Functions[0]
	entry := fn.Blocks[0]

	var sawMul, sawAdd bool
	for _, instr := range entry.Instrs {
		if b, ok := instr.(*ir.BinOp); ok {
			switch b.Op {
			case ir.Mul:
				sawMul = true
			case ir.Add:
				sawAdd = true
				assert.True(t, sawMul, "mul must be lowered before the add that consumes it")
			}
		}
	}
	assert.True(t, sawMul)
	assert.True(t, sawAdd)
}

func TestGenerate_IfElseWithTerminatedArms(t *testing.T) {
	mod := generate(t, `fn abs(x: i64) i64 { if x < 0 { return -x; } return x; }`)
	fn := mod.Functions[0]
	require.Len(t, fn.Params, 1)

	var mergeBlocks int
	for _, b := range fn.Blocks {
		switch {
		case strings.HasPrefix(b.Name, "if.then"):
			// the then-arm already returns, so no branch to merge follows
			require.NotEmpty(t, b.Instrs)
			_, isRet := b.Instrs[len(b.Instrs)-1].(*ir.Ret)
			assert.True(t, isRet)
		case strings.HasPrefix(b.Name, "if.merge"):
			mergeBlocks++
			// the else-less if branches here, and the trailing
			// `return x` (a load and a ret) is lowered into this block
			assert.Len(t, b.Instrs, 2)
		}
	}
	assert.Equal(t, 1, mergeBlocks)
}

func TestGenerate_CallToFunctionDeclaredLater(t *testing.T) {
	src := `fn main() i64 { return helper(); } fn helper() i64 { return 9; }`
	mod := generate(t, src)
	require.Len(t, mod.Functions, 2)
	main := mod.Functions[0]
	call, ok := main.Blocks[0].Instrs[0].(*ir.Call)
	require.True(t, ok)
	assert.Equal(t, "helper", call.Callee.Name)
}

func TestGenerate_BooleanBitwiseAsLogical(t *testing.T) {
	mod := generate(t, `fn main() bool { let t: bool = true; let f: bool = false; return t & !f; }`)
	fn := mod.Functions[0]
	var sawNot, sawAnd bool
	for _, instr := range fn.Blocks[0].Instrs {
		switch v := instr.(type) {
		case *ir.Not:
			sawNot = true
			assert.Equal(t, ir.Bool, v.Typ)
		case *ir.BinOp:
			if v.Op == ir.And {
				sawAnd = true
			}
		}
	}
	assert.True(t, sawNot)
	assert.True(t, sawAnd)
}

func TestGenerate_UnboundIdentifierIsFatal(t *testing.T) {
	err := generateErr(t, `fn main() i64 { return a; }`)
	require.Error(t, err)
}

func TestGenerate_LetWithoutTypeIsFatal(t *testing.T) {
	err := generateErr(t, `fn main() i64 { let a = 1; return a; }`)
	require.Error(t, err)
}

func TestGenerate_StructDeclIsFatal(t *testing.T) {
	err := generateErr(t, `struct Pair { left: i64, right: i64 }`)
	require.Error(t, err)
}

func TestGenerate_StringLiteralIsFatal(t *testing.T) {
	err := generateErr(t, `fn main() i64 { let s: i64 = "x"; return s; }`)
	require.Error(t, err)
}

func TestGenerate_PostfixIsFatal(t *testing.T) {
	err := generateErr(t, `fn main() i64 { let a: i64 = 1; return a!; }`)
	require.Error(t, err)
}

func TestGenerate_UnknownTypeIsFatal(t *testing.T) {
	err := generateErr(t, `fn main() frobnicate { return; }`)
	require.Error(t, err)
}
