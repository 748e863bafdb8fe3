package codegen

import (
	"github.com/veil-lang/veilc/internal/ast"
	"github.com/veil-lang/veilc/internal/diagnostic"
	"github.com/veil-lang/veilc/internal/ir"
)

// resolveType maps a parsed Type's name to one of the six primitives
// honoured at codegen time; generic arguments are ignored (spec §4.3
// "Type resolution"). Any other name is fatal.
func resolveType(t *ast.Type) (ir.Type, error) {
	switch t.Name {
	case "i8":
		return ir.I8, nil
	case "i16":
		return ir.I16, nil
	case "i32":
		return ir.I32, nil
	case "i64":
		return ir.I64, nil
	case "i128":
		return ir.I128, nil
	case "bool":
		return ir.Bool, nil
	default:
		return 0, diagnostic.Errorf(t.Pos, "unknown primitive type %q", t.Name)
	}
}
