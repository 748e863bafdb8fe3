// Package lexer scans UTF-8 source bytes into a lazy token sequence.
//
// Lexer exposes a single operation, NextToken, callable repeatedly until
// it reports end-of-input; the sequence is finite and non-restartable.
// Each call skips whitespace, then tries every rule in ruleTable and
// takes the longest match — on ties, the rule defined later in the table
// wins (spec §4.1 step 3). This is how "return " classifies as the
// keyword rather than an identifier, and how ">=" beats ">".
package lexer

import (
	"regexp"
	"unicode/utf8"

	"github.com/veil-lang/veilc/internal/diagnostic"
	"github.com/veil-lang/veilc/internal/token"
)

// Lexer holds the scanning position over one source string. It is not
// safe for concurrent use, and every Token it produces borrows a slice
// of Src — the caller must keep Src alive for as long as the tokens.
type Lexer struct {
	File string
	Src  string

	pos  int // byte offset of the next unconsumed rune
	line int
	col  int
}

// New creates a Lexer positioned at line 1, column 1 of src.
func New(file, src string) *Lexer {
	return &Lexer{File: file, Src: src, pos: 0, line: 1, col: 1}
}

func (l *Lexer) here() token.Position {
	return token.Position{File: l.File, Line: l.line, Column: l.col}
}

func (l *Lexer) rest() string {
	return l.Src[l.pos:]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.Src)
}

// advance moves the scanner forward n bytes of already-classified input,
// updating line/column. It must not be called across a '\n'; callers
// that skip whitespace advance one rune at a time instead (see
// skipWhitespace) so the newline bookkeeping in spec §4.1 step 1 holds.
func (l *Lexer) advance(n int) {
	l.pos += n
	l.col += n
}

func (l *Lexer) skipWhitespace() {
	for !l.atEOF() {
		r, size := utf8.DecodeRuneInString(l.rest())
		switch r {
		case '\n':
			l.pos += size
			l.line++
			l.col = 1
		case ' ', '\t', '\r', '\v', '\f':
			l.pos += size
			l.col++
		default:
			return
		}
	}
}

// rule is one entry of the table described by spec §4.1: match reports
// "no match" as (0, false), or the byte length of the longest prefix of
// input it recognises.
type rule struct {
	kind  token.Kind
	match func(input string) (length int, ok bool)
}

func literalRule(kind token.Kind, lit string) rule {
	return rule{kind: kind, match: func(input string) (int, bool) {
		if len(input) >= len(lit) && input[:len(lit)] == lit {
			return len(lit), true
		}
		return 0, false
	}}
}

func keywordRule(kind token.Kind, word string) rule {
	return rule{kind: kind, match: func(input string) (int, bool) {
		if len(input) < len(word) || input[:len(word)] != word {
			return 0, false
		}
		return len(word), true
	}}
}

func regexRule(kind token.Kind, re *regexp.Regexp) rule {
	return rule{kind: kind, match: func(input string) (int, bool) {
		loc := re.FindStringIndex(input)
		if loc == nil || loc[0] != 0 {
			return 0, false
		}
		return loc[1], true
	}}
}

var (
	stringRegexp     = regexp.MustCompile(`^"(\\"|\\\\|[^\\"])*"`)
	integerRegexp    = regexp.MustCompile(`^(0o[0-7]+|0b[01]+|0x[0-9A-Fa-f]+|[0-9]+)`)
	identifierRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z_0-9]*`)
)

// ruleTable order matters only for same-length matches (spec §4.1 step
// 3: "on ties, the rule defined later in the rule list wins"). Two-char
// operators never need the tie-break — they simply outscore their
// one-char prefix on length — but keywords and the boolean literals tie
// the identifier rule exactly, so they are listed after it here.
var ruleTable = []rule{
	literalRule(token.Plus, "+"),
	literalRule(token.Minus, "-"),
	literalRule(token.Asterisk, "*"),
	literalRule(token.Slash, "/"),
	literalRule(token.Percent, "%"),
	literalRule(token.And, "&"),
	literalRule(token.Pipe, "|"),
	literalRule(token.Caret, "^"),
	literalRule(token.Bang, "!"),
	literalRule(token.Tilde, "~"),
	literalRule(token.Assign, "="),
	literalRule(token.Dot, "."),
	literalRule(token.Comma, ","),
	literalRule(token.Colon, ":"),
	literalRule(token.SemiColon, ";"),
	literalRule(token.OpenParen, "("),
	literalRule(token.ClosedParen, ")"),
	literalRule(token.OpenBrace, "{"),
	literalRule(token.ClosedBrace, "}"),
	literalRule(token.LessThan, "<"),
	literalRule(token.GreaterThan, ">"),

	literalRule(token.Equal, "=="),
	literalRule(token.UnEqual, "!="),
	literalRule(token.LessEqual, "<="),
	literalRule(token.GreaterEqual, ">="),

	regexRule(token.Identifier, identifierRegexp),
	regexRule(token.String, stringRegexp),
	regexRule(token.Integer, integerRegexp),

	// Keywords and booleans are listed after Identifier so that on a
	// length tie (e.g. "return" matches both the identifier regex and
	// this keyword rule) the later rule — the keyword — wins, and
	// "returnX" still classifies as an identifier since only the
	// identifier rule matches its full length.
	keywordRule(token.Struct, "struct"),
	keywordRule(token.Function, "fn"),
	keywordRule(token.Let, "let"),
	keywordRule(token.If, "if"),
	keywordRule(token.Else, "else"),
	keywordRule(token.For, "for"),
	keywordRule(token.Loop, "loop"),
	keywordRule(token.Break, "break"),
	keywordRule(token.Continue, "continue"),
	keywordRule(token.Return, "return"),
	keywordRule(token.Inline, "inline"),
	keywordRule(token.Boolean, "true"),
	keywordRule(token.Boolean, "false"),
}

// NextToken returns the next token, or a token of kind token.Eof when the
// input is exhausted. It returns a *diagnostic.Error if no rule matches
// a non-whitespace character (the redesigned behavior of spec §9 item 3:
// this is reported rather than silently treated as end-of-input).
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	start := l.here()
	if l.atEOF() {
		return token.Token{Kind: token.Eof, Text: "", Pos: start}, nil
	}

	input := l.rest()
	bestLen := 0
	bestKind := token.Kind("")
	matched := false
	for _, r := range ruleTable {
		if n, ok := r.match(input); ok && n >= bestLen {
			bestLen, bestKind, matched = n, r.kind, true
		}
	}

	if !matched || bestLen == 0 {
		r, _ := utf8.DecodeRuneInString(input)
		return token.Token{}, diagnostic.Errorf(start, "unrecognised character %q", r)
	}

	text := input[:bestLen]
	l.advance(bestLen)
	return token.Token{Kind: bestKind, Text: text, Pos: start}, nil
}
