package parser

import "github.com/veil-lang/veilc/internal/token"

// Binding powers exactly as tabulated in spec §4.2. Pairs are
// asymmetric so that left-associative operators climb correctly: a run
// of same-precedence infix operators binds the left operand tighter
// than the right, forcing "a - b - c" to parse as "(a - b) - c".
const (
	prefixRBP  = 51
	postfixLBP = 101
)

type bp struct{ left, right int }

var infixBP = map[token.Kind]bp{
	token.Pipe:         {1, 2},
	token.And:          {3, 4},
	token.Equal:        {5, 6},
	token.UnEqual:      {5, 6},
	token.LessThan:     {7, 8},
	token.GreaterThan:  {7, 8},
	token.LessEqual:    {7, 8},
	token.GreaterEqual: {7, 8},
	token.Caret:        {9, 10},
	token.Plus:         {11, 12},
	token.Minus:        {11, 12},
	token.Asterisk:     {13, 14},
	token.Slash:        {13, 14},
	token.Percent:      {13, 14},
}

var postfixOps = map[token.Kind]bool{
	token.Bang: true,
}

var prefixOps = map[token.Kind]bool{
	token.Minus: true,
	token.Bang:  true,
}
