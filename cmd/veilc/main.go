// Command veilc is the ahead-of-time compiler's CLI entry point: by
// convention it accepts one input source path and emits `a.out`
// (a relocatable object file) beside it, exiting 0 on success and
// non-zero on any failure (spec §6).
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/veil-lang/veilc/internal/ast"
	"github.com/veil-lang/veilc/internal/compiler"
	"github.com/veil-lang/veilc/internal/lexer"
	"github.com/veil-lang/veilc/internal/token"
)

var (
	redColor  = color.New(color.FgRed)
	cyanColor = color.New(color.FgCyan)
)

func main() {
	outPath := flag.String("o", "", "output object file path (default: a.out beside the input)")
	dumpTokens := flag.Bool("tokens", false, "print the token stream instead of compiling")
	dumpAST := flag.Bool("ast", false, "print the parsed AST instead of compiling")
	inspect := flag.Bool("inspect", false, "start the interactive token/AST inspector instead of compiling")
	flag.Parse()

	if *inspect {
		runInspector()
		return
	}

	if flag.NArg() != 1 {
		redColor.Fprintln(os.Stderr, "usage: veilc [-o path] [-tokens] [-ast] [-inspect] <source.vl>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	src, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read %q: %v\n", path, err)
		os.Exit(1)
	}

	if *dumpTokens {
		printTokens(path, string(src))
		return
	}

	c := compiler.New()

	if *dumpAST {
		res, err := c.ParseAndLower(path, string(src))
		printDiagnosticAndExit(err)
		cyanColor.Println(ast.Print(res.Decls))
		return
	}

	out := *outPath
	if out == "" {
		out = filepath.Join(filepath.Dir(path), "a.out")
	}
	_, err = c.CompileFile(path, out)
	printDiagnosticAndExit(err)
}

// printDiagnosticAndExit prints err (a *diagnostic.Error, formatted
// "<file>:<line>:<col>: <message>" by its Error() method) in red and
// exits 1, or does nothing if err is nil.
func printDiagnosticAndExit(err error) {
	if err == nil {
		return
	}
	redColor.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func printTokens(path, src string) {
	lex := lexer.New(path, src)
	var b strings.Builder
	for {
		tok, err := lex.NextToken()
		printDiagnosticAndExit(err)
		fmt.Fprintf(&b, "%-14s %-10q %s\n", tok.Kind, tok.Text, tok.Pos)
		if tok.Kind == token.Eof {
			break
		}
	}
	cyanColor.Println(b.String())
}
