package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veil-lang/veilc/internal/ast"
	"github.com/veil-lang/veilc/internal/token"
)

func parseExprSrc(t *testing.T, src string) ast.Expr {
	t.Helper()
	p, err := New("test.vl", src)
	require.NoError(t, err)
	e, err := p.parseExpr(0)
	require.NoError(t, err)
	return e
}

func TestParseExpr_PrecedenceOverAddAndMul(t *testing.T) {
	e := parseExprSrc(t, "x + y * z")
	top, ok := e.(*ast.Infix)
	require.True(t, ok)
	assert.Equal(t, token.Plus, top.Op)
	_, leftIsIdent := top.Left.(*ast.Ident)
	assert.True(t, leftIsIdent)
	right, ok := top.Right.(*ast.Infix)
	require.True(t, ok)
	assert.Equal(t, token.Asterisk, right.Op)
}

func TestParseExpr_LeftAssociativeMinus(t *testing.T) {
	e := parseExprSrc(t, "a - b - c")
	top, ok := e.(*ast.Infix)
	require.True(t, ok)
	assert.Equal(t, token.Minus, top.Op)
	_, rightIsIdent := top.Right.(*ast.Ident)
	assert.True(t, rightIsIdent)
	left, ok := top.Left.(*ast.Infix)
	require.True(t, ok)
	assert.Equal(t, token.Minus, left.Op)
}

func TestParseExpr_BitwiseBelowComparison(t *testing.T) {
	e := parseExprSrc(t, "a == b | c")
	top, ok := e.(*ast.Infix)
	require.True(t, ok)
	assert.Equal(t, token.Pipe, top.Op)
	left, ok := top.Left.(*ast.Infix)
	require.True(t, ok)
	assert.Equal(t, token.Equal, left.Op)
}

func TestParseExpr_ParenOverridesPrecedence(t *testing.T) {
	e := parseExprSrc(t, "(a + b) * c")
	top, ok := e.(*ast.Infix)
	require.True(t, ok)
	assert.Equal(t, token.Asterisk, top.Op)
	_, ok = top.Left.(*ast.Infix)
	require.True(t, ok)
}

func TestParseExpr_PrefixBindsTighterThanInfix(t *testing.T) {
	e := parseExprSrc(t, "-a + b")
	top, ok := e.(*ast.Infix)
	require.True(t, ok)
	assert.Equal(t, token.Plus, top.Op)
	_, ok = top.Left.(*ast.Prefix)
	require.True(t, ok)
}

func TestParseExpr_PostfixBang(t *testing.T) {
	e := parseExprSrc(t, "a!")
	post, ok := e.(*ast.Postfix)
	require.True(t, ok)
	assert.Equal(t, token.Bang, post.Op)
}

func TestParseExpr_CallWithArgs(t *testing.T) {
	e := parseExprSrc(t, "add(1, 2)")
	call, ok := e.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "add", call.Name)
	require.Len(t, call.Args, 2)
}

func TestParse_FunctionDecl(t *testing.T) {
	src := `fn add(a: i64, b: i64) i64 { return a + b; }`
	decls, err := Parse("test.vl", src)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	fn, ok := decls[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "i64", fn.Params[0].Type.Name)
	require.NotNil(t, fn.ReturnType)
	assert.Equal(t, "i64", fn.ReturnType.Name)
}

func TestParse_BlockNotFlattened(t *testing.T) {
	src := `fn f() { a(); }`
	decls, err := Parse("test.vl", src)
	require.NoError(t, err)
	fn := decls[0].(*ast.FuncDecl)
	block, ok := fn.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, block.Stmts, 1)
	_, ok = block.Stmts[0].(*ast.ExprStmt)
	assert.True(t, ok)
}

func TestParse_IfElse(t *testing.T) {
	src := `fn abs(x: i64) i64 { if x < 0 { return -x; } return x; }`
	decls, err := Parse("test.vl", src)
	require.NoError(t, err)
	fn := decls[0].(*ast.FuncDecl)
	block := fn.Body.(*ast.BlockStmt)
	require.Len(t, block.Stmts, 2)
	ifStmt, ok := block.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	assert.Nil(t, ifStmt.Else)
	cond, ok := ifStmt.Cond.(*ast.Infix)
	require.True(t, ok)
	assert.Equal(t, token.LessThan, cond.Op)
}

func TestParse_LetWithAndWithoutType(t *testing.T) {
	src := `fn f() { let a: i64 = 1; let b = 2; }`
	decls, err := Parse("test.vl", src)
	require.NoError(t, err)
	fn := decls[0].(*ast.FuncDecl)
	block := fn.Body.(*ast.BlockStmt)
	require.Len(t, block.Stmts, 2)
	a := block.Stmts[0].(*ast.LetStmt)
	require.NotNil(t, a.Type)
	assert.Equal(t, "i64", a.Type.Name)
	b := block.Stmts[1].(*ast.LetStmt)
	assert.Nil(t, b.Type)
}

func TestParse_StructDecl(t *testing.T) {
	src := `struct Pair<i64> { left: i64, right: i64 }`
	decls, err := Parse("test.vl", src)
	require.NoError(t, err)
	st, ok := decls[0].(*ast.StructDecl)
	require.True(t, ok)
	assert.Equal(t, "Pair", st.Type.Name)
	require.Len(t, st.Type.Generics, 1)
	require.Len(t, st.Members, 2)
}

func TestParse_UnexpectedTokenIsFatal(t *testing.T) {
	_, err := Parse("test.vl", `fn f() { let ; }`)
	require.Error(t, err)
}

func TestParse_UnexpectedEOFIsFatal(t *testing.T) {
	_, err := Parse("test.vl", `fn f() { return 1;`)
	require.Error(t, err)
}
