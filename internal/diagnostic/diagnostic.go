// Package diagnostic provides the single fatal-error type every stage of
// the compiler reports through. There is no warning level and no
// recovery: the first diagnostic produced halts compilation (spec §7).
package diagnostic

import (
	"fmt"

	"github.com/veil-lang/veilc/internal/token"
)

// Error is a location-tagged fatal diagnostic. Its Error() string is the
// exact "<file>:<line>:<col>: <message>" format spec §7 mandates.
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Errorf builds a *Error at pos with a formatted message.
func Errorf(pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
