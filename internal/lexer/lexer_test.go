package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veil-lang/veilc/internal/token"
)

func allTokens(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New("test.vl", src)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		if tok.Kind == token.Eof {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestNextToken_Operators(t *testing.T) {
	toks := allTokens(t, "+ - * / % & | ^ ! ~ = . , : ; ( ) { } < >")
	kinds := make([]token.Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []token.Kind{
		token.Plus, token.Minus, token.Asterisk, token.Slash, token.Percent,
		token.And, token.Pipe, token.Caret, token.Bang, token.Tilde,
		token.Assign, token.Dot, token.Comma, token.Colon, token.SemiColon,
		token.OpenParen, token.ClosedParen, token.OpenBrace, token.ClosedBrace,
		token.LessThan, token.GreaterThan,
	}, kinds)
}

func TestNextToken_TwoCharOperatorsBeatPrefix(t *testing.T) {
	toks := allTokens(t, "== != <= >= < >")
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.Equal, token.UnEqual, token.LessEqual, token.GreaterEqual,
		token.LessThan, token.GreaterThan,
	}, kinds)
}

func TestNextToken_KeywordBeatsIdentifierOnExactMatch(t *testing.T) {
	toks := allTokens(t, "return returnX returns")
	require.Len(t, toks, 3)
	assert.Equal(t, token.Return, toks[0].Kind)
	assert.Equal(t, token.Identifier, toks[1].Kind)
	assert.Equal(t, "returnX", toks[1].Text)
	assert.Equal(t, token.Identifier, toks[2].Kind)
	assert.Equal(t, "returns", toks[2].Text)
}

func TestNextToken_IntegerLiteralForms(t *testing.T) {
	toks := allTokens(t, "0o17 0b101 0x1F 42")
	require.Len(t, toks, 4)
	for _, tok := range toks {
		assert.Equal(t, token.Integer, tok.Kind)
	}
	assert.Equal(t, []string{"0o17", "0b101", "0x1F", "42"}, []string{
		toks[0].Text, toks[1].Text, toks[2].Text, toks[3].Text,
	})
}

func TestNextToken_StringLiteralEscapes(t *testing.T) {
	toks := allTokens(t, `"hello \"world\"" "back\\slash"`)
	require.Len(t, toks, 2)
	assert.Equal(t, `"hello \"world\""`, toks[0].Text)
	assert.Equal(t, `"back\\slash"`, toks[1].Text)
}

func TestNextToken_LineAndColumnTracking(t *testing.T) {
	toks := allTokens(t, "let a\n= 1;")
	require.Len(t, toks, 5)
	assert.Equal(t, 1, toks[0].Pos.Line)
	assert.Equal(t, 1, toks[0].Pos.Column)
	assert.Equal(t, 2, toks[2].Pos.Line) // '='
	assert.Equal(t, 1, toks[2].Pos.Column)
}

func TestNextToken_UnrecognisedCharacterIsAnError(t *testing.T) {
	l := New("test.vl", "let a = @;")
	for i := 0; i < 3; i++ {
		_, err := l.NextToken()
		require.NoError(t, err)
	}
	_, err := l.NextToken()
	require.Error(t, err)
}

func TestNextToken_RoundTrip(t *testing.T) {
	src := "fn add(a: i64, b: i64) i64 { return a + b; }"
	l := New("test.vl", src)
	var rebuilt string
	lastEnd := 0
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		if tok.Kind == token.Eof {
			break
		}
		idx := indexAt(src, lastEnd, tok.Text)
		rebuilt += src[lastEnd:idx] + tok.Text
		lastEnd = idx + len(tok.Text)
	}
	rebuilt += src[lastEnd:]
	assert.Equal(t, src, rebuilt)
}

func indexAt(src string, from int, needle string) int {
	for i := from; i+len(needle) <= len(src); i++ {
		if src[i:i+len(needle)] == needle {
			return i
		}
	}
	return from
}
