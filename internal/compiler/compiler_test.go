package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileFile_ProducesAnObjectFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.vl")
	require.NoError(t, os.WriteFile(src, []byte(`fn main() i64 { return 0; }`), 0o644))

	out := filepath.Join(dir, "main.o")
	res, err := New().CompileFile(src, out)
	require.NoError(t, err)
	require.NotNil(t, res.Mod)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestCompileFile_FatalParseErrorStopsBeforeObjectEmission(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.vl")
	require.NoError(t, os.WriteFile(src, []byte(`fn main() i64 { return + ; }`), 0o644))

	_, err := New().CompileFile(src, filepath.Join(dir, "broken.o"))
	assert.Error(t, err)
}

func TestParseAndLower_FatalCodegenErrorStillReturnsDecls(t *testing.T) {
	res, err := New().ParseAndLower("t.vl", `fn main() i64 { return a; }`)
	require.Error(t, err)
	assert.NotEmpty(t, res.Decls)
	assert.Nil(t, res.Mod)
}
