package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/veil-lang/veilc/internal/ast"
	"github.com/veil-lang/veilc/internal/compiler"
	"github.com/veil-lang/veilc/internal/lexer"
	"github.com/veil-lang/veilc/internal/token"
)

const inspectPrompt = "veilc-inspect >>> "

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	greenColor  = color.New(color.FgGreen)
)

// runInspector starts the -inspect developer shell: a line-at-a-time
// read-eval-print loop over the lexer and parser/codegen pipeline,
// echoing the token stream and the lowered AST for whatever the user
// types. Unlike the teacher's REPL there is no evaluator to run
// afterward — veilc compiles to object code, not a runtime value — so
// this is a pipeline inspector rather than an interpreter shell.
func runInspector() {
	printInspectorBanner()

	rl, err := readline.New(inspectPrompt)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[INSPECT ERROR] %v\n", err)
		return
	}
	defer rl.Close()

	c := compiler.New()
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on Ctrl+D, readline.ErrInterrupt on Ctrl+C
			fmt.Println("Good bye!")
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Println("Good bye!")
			return
		}
		rl.SaveHistory(line)
		inspectLine(c, line)
	}
}

func printInspectorBanner() {
	blueColor.Println(strings.Repeat("-", 60))
	greenColor.Println("veilc inspector — dumps tokens and the lowered AST per line")
	blueColor.Println(strings.Repeat("-", 60))
	yellowColor.Println("Type a declaration and press enter. Type '.exit' to quit.")
	blueColor.Println(strings.Repeat("-", 60))
}

// inspectLine lexes and parses one line of input, printing its token
// stream and (if parsing and lowering both succeed) its AST dump. Unlike file mode, a
// fatal diagnostic here is reported in red and the shell keeps going.
func inspectLine(c *compiler.Compiler, line string) {
	lex := lexer.New("<inspect>", line)
	var toks strings.Builder
	for {
		tok, err := lex.NextToken()
		if err != nil {
			redColor.Fprintf(os.Stdout, "%s\n", err)
			return
		}
		fmt.Fprintf(&toks, "%s %q ", tok.Kind, tok.Text)
		if tok.Kind == token.Eof {
			break
		}
	}
	cyanColor.Println(toks.String())

	res, err := c.ParseAndLower("<inspect>", line)
	if err != nil {
		redColor.Println(err)
		return
	}
	yellowColor.Println(ast.Print(res.Decls))
}
