// Package ast defines the tree the parser builds and the code generator
// walks: a flat list of top-level declarations, each a tagged variant
// per spec §3. Node kinds are plain structs dispatched by type switch
// (the idiom the teacher's evaluator uses for its own node dispatch),
// not a visitor interface — nothing here needs double dispatch.
package ast

import "github.com/veil-lang/veilc/internal/token"

// Type is (name, ordered generic arguments). Only the six primitive leaf
// names are honoured by the code generator; generics parse but are
// otherwise ignored (spec §3, §4.3).
type Type struct {
	Name     string
	Generics []*Type
	Pos      token.Position
}

// Param is one function parameter: name and declared type.
type Param struct {
	Name string
	Type *Type
}

// Member is one struct field: name and declared type.
type Member struct {
	Name string
	Type *Type
}

// Decl is a top-level declaration: a Function or a Struct.
type Decl interface {
	declNode()
	Position() token.Position
}

// FuncDecl is `fn NAME ( PARAMS ) [TYPE] BLOCK`.
type FuncDecl struct {
	Name       string
	Params     []Param
	ReturnType *Type // nil if the function returns void
	Body       Stmt
	Pos        token.Position
}

func (*FuncDecl) declNode()                  {}
func (d *FuncDecl) Position() token.Position { return d.Pos }

// StructDecl is `struct TYPE { MEMBERS }`. The core parses it but never
// lowers it (spec §4.3: "Struct: not implemented in the core").
type StructDecl struct {
	Type    *Type
	Members []Member
	Pos     token.Position
}

func (*StructDecl) declNode()                  {}
func (d *StructDecl) Position() token.Position { return d.Pos }

// Stmt is a statement: Let, Assign, If, Block, ExprStmt, or Return.
type Stmt interface {
	stmtNode()
	Position() token.Position
}

// LetStmt is `let IDENT [: TYPE] = EXPR ;`. The annotation is optional
// in the grammar but mandatory for code generation (spec §9 item 1).
type LetStmt struct {
	Name  string
	Type  *Type // nil if omitted
	Value Expr
	Pos   token.Position
}

func (*LetStmt) stmtNode()                  {}
func (s *LetStmt) Position() token.Position { return s.Pos }

// AssignStmt is `IDENT = EXPR ;`. Op is always nil in this grammar —
// there is no compound-assignment syntax — but the field exists so the
// shape matches spec §9 item 5's documented (and accepted) gap.
type AssignStmt struct {
	Name  string
	Op    *token.Kind
	Value Expr
	Pos   token.Position
}

func (*AssignStmt) stmtNode()                  {}
func (s *AssignStmt) Position() token.Position { return s.Pos }

// IfStmt is `if EXPR STMT [else (IF-STMT|BLOCK)]`. Else is nil when
// absent.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
	Pos  token.Position
}

func (*IfStmt) stmtNode()                  {}
func (s *IfStmt) Position() token.Position { return s.Pos }

// BlockStmt is `{ STMT* }`. It is never flattened into its parent.
type BlockStmt struct {
	Stmts []Stmt
	Pos   token.Position
}

func (*BlockStmt) stmtNode()                  {}
func (s *BlockStmt) Position() token.Position { return s.Pos }

// ExprStmt is `EXPR ;` used as a statement (typically a call).
type ExprStmt struct {
	Expr Expr
	Pos  token.Position
}

func (*ExprStmt) stmtNode()                  {}
func (s *ExprStmt) Position() token.Position { return s.Pos }

// ReturnStmt is `return [EXPR] ;`. Value is nil for a bare return.
type ReturnStmt struct {
	Value Expr
	Pos   token.Position
}

func (*ReturnStmt) stmtNode()                  {}
func (s *ReturnStmt) Position() token.Position { return s.Pos }

// Expr is an expression: Literal, Ident, Call, Prefix, Infix, or Postfix.
type Expr interface {
	exprNode()
	Position() token.Position
}

// IntegerLit is an unsigned integer literal (decimal, 0o, 0b, or 0x).
type IntegerLit struct {
	Value uint64
	Pos   token.Position
}

func (*IntegerLit) exprNode()                  {}
func (e *IntegerLit) Position() token.Position { return e.Pos }

// StringLit is a decoded string literal (quotes stripped, \" and \\
// escapes resolved). The core code generator never lowers one (spec
// §4.3: "String literal -> not implemented"), but the parser still
// builds the node so later stages can diagnose it by kind.
type StringLit struct {
	Value string
	Pos   token.Position
}

func (*StringLit) exprNode()                  {}
func (e *StringLit) Position() token.Position { return e.Pos }

// BoolLit is a `true`/`false` literal.
type BoolLit struct {
	Value bool
	Pos   token.Position
}

func (*BoolLit) exprNode()                  {}
func (e *BoolLit) Position() token.Position { return e.Pos }

// Ident is a bare identifier reference.
type Ident struct {
	Name string
	Pos  token.Position
}

func (*Ident) exprNode()                  {}
func (e *Ident) Position() token.Position { return e.Pos }

// Call is `NAME ( ARGS )`.
type Call struct {
	Name string
	Args []Expr
	Pos  token.Position
}

func (*Call) exprNode()                  {}
func (e *Call) Position() token.Position { return e.Pos }

// Prefix is `OP EXPR` for the prefix operators `-` and `!`.
type Prefix struct {
	Op  token.Kind
	X   Expr
	Pos token.Position
}

func (*Prefix) exprNode()                  {}
func (e *Prefix) Position() token.Position { return e.Pos }

// Infix is `LEFT OP RIGHT`.
type Infix struct {
	Op    token.Kind
	Left  Expr
	Right Expr
	Pos   token.Position
}

func (*Infix) exprNode()                  {}
func (e *Infix) Position() token.Position { return e.Pos }

// Postfix is `EXPR OP` for the postfix operator `!`.
type Postfix struct {
	Op  token.Kind
	X   Expr
	Pos token.Position
}

func (*Postfix) exprNode()                  {}
func (e *Postfix) Position() token.Position { return e.Pos }
