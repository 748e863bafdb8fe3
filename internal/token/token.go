// Package token defines the closed set of lexical token kinds the
// compiler recognises, and the Token/Position records the lexer hands
// to the parser.
package token

import "fmt"

// Kind identifies the syntactic category of a Token. The set is closed —
// spec §6 lists every member; there is no "other" bucket.
type Kind string

const (
	// Literals
	Identifier Kind = "Identifier"
	String     Kind = "String"
	Integer    Kind = "Integer"
	Boolean    Kind = "Boolean"

	// Arithmetic / bitwise operators
	Plus     Kind = "+"
	Minus    Kind = "-"
	Asterisk Kind = "*"
	Slash    Kind = "/"
	Percent  Kind = "%"
	And      Kind = "&"
	Pipe     Kind = "|"
	Caret    Kind = "^"
	Bang     Kind = "!"
	Tilde    Kind = "~"
	Assign   Kind = "="

	// Comparison operators
	Equal        Kind = "=="
	UnEqual      Kind = "!="
	LessThan     Kind = "<"
	GreaterThan  Kind = ">"
	LessEqual    Kind = "<="
	GreaterEqual Kind = ">="

	// Punctuation
	Dot         Kind = "."
	Comma       Kind = ","
	Colon       Kind = ":"
	SemiColon   Kind = ";"
	OpenParen   Kind = "("
	ClosedParen Kind = ")"
	OpenBrace   Kind = "{"
	ClosedBrace Kind = "}"

	// Keywords
	Struct   Kind = "struct"
	Function Kind = "fn"
	Let      Kind = "let"
	If       Kind = "if"
	Else     Kind = "else"
	For      Kind = "for"
	Loop     Kind = "loop"
	Break    Kind = "break"
	Continue Kind = "continue"
	Return   Kind = "return"
	Inline   Kind = "inline"

	Eof Kind = "EOF"
)

// Keywords maps the exact reserved words to their token kind. The lexer
// does not consult this map: it carries one keyword rule per word in its
// own rule table, and longest-match is what makes "returnX" an
// identifier and "return" (followed by a non-identifier byte) the keyword.
var Keywords = map[string]Kind{
	"struct":   Struct,
	"fn":       Function,
	"let":      Let,
	"if":       If,
	"else":     Else,
	"for":      For,
	"loop":     Loop,
	"break":    Break,
	"continue": Continue,
	"return":   Return,
	"inline":   Inline,
	"true":     Boolean,
	"false":    Boolean,
}

// Position is a 1-indexed (file, line, column) triple. It is carried on
// every token and echoed verbatim into diagnostics.
type Position struct {
	File   string
	Line   int
	Column int
}

// String renders a position as "<file>:<line>:<col>", the prefix every
// fatal diagnostic uses (spec §7).
func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Token is a value-like record: a kind, the exact source slice that
// produced it, and the position it started at. The lexer owns the
// source string and hands out slices of it — callers must keep the
// source alive for as long as any Token from it is in use.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// String renders a token for debugging/dump output.
func (t Token) String() string {
	return fmt.Sprintf("%s %q @%s", t.Kind, t.Text, t.Pos)
}
