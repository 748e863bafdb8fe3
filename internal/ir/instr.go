package ir

// Instr is any instruction that can appear inside a BasicBlock.
// Instructions that produce a usable result also implement Value —
// there is no separate "register" type, an instruction's identity is
// its value, the same model LLVM exposes through its C++ Instruction
// hierarchy.
type Instr interface {
	instrNode()
}

// BinOpKind names the arithmetic/bitwise instruction a BinOp performs.
type BinOpKind int

const (
	Add BinOpKind = iota
	Sub
	Mul
	SDiv
	SRem
	And
	Or
	Xor
)

// ICmpPred names the signed-integer comparison an ICmp performs (spec
// §4.3 expression-lowering table).
type ICmpPred int

const (
	ICmpEQ ICmpPred = iota
	ICmpNE
	ICmpSLT
	ICmpSLE
	ICmpSGT
	ICmpSGE
)

// Alloca reserves a stack slot of Typ. Every named local and every
// parameter is backed by one (spec §4.3 driver step, §9 "Symbol
// table"); Load/Store mediate all reads and writes of it.
type Alloca struct {
	ID  int
	Typ Type
}

func (a *Alloca) Type() Type { return a.Typ }
func (*Alloca) valueNode()   {}
func (*Alloca) instrNode()   {}

// Store writes Val into the slot Addr refers to.
type Store struct {
	Addr *Alloca
	Val  Value
}

func (*Store) instrNode() {}

// Load reads the current value out of the slot Addr refers to.
type Load struct {
	ID   int
	Addr *Alloca
	Typ  Type
}

func (l *Load) Type() Type { return l.Typ }
func (*Load) valueNode()   {}
func (*Load) instrNode()   {}

// BinOp applies Op to Lhs and Rhs, both already-lowered values of the
// same type.
type BinOp struct {
	ID       int
	Op       BinOpKind
	Lhs, Rhs Value
	Typ      Type
}

func (b *BinOp) Type() Type { return b.Typ }
func (*BinOp) valueNode()   {}
func (*BinOp) instrNode()   {}

// ICmp compares Lhs and Rhs with Pred, producing a Bool value.
type ICmp struct {
	ID       int
	Pred     ICmpPred
	Lhs, Rhs Value
}

func (*ICmp) Type() Type { return Bool }
func (*ICmp) valueNode() {}
func (*ICmp) instrNode() {}

// Neg computes the two's-complement negation of X (prefix `-`).
type Neg struct {
	ID  int
	X   Value
	Typ Type
}

func (n *Neg) Type() Type { return n.Typ }
func (*Neg) valueNode()   {}
func (*Neg) instrNode()   {}

// Not computes the bitwise complement of X (prefix/postfix `!`, also
// used as logical not on a Bool operand — spec §4.3).
type Not struct {
	ID  int
	X   Value
	Typ Type
}

func (n *Not) Type() Type { return n.Typ }
func (*Not) valueNode()   {}
func (*Not) instrNode()   {}

// Call invokes Callee (resolved by name in the module, spec §4.3) with
// Args, producing a value of Typ (Void if the callee returns nothing).
type Call struct {
	ID     int
	Callee *Function
	Args   []Value
	Typ    Type
}

func (c *Call) Type() Type { return c.Typ }
func (*Call) valueNode()   {}
func (*Call) instrNode()   {}

// Br is an unconditional branch terminator.
type Br struct {
	Target *BasicBlock
}

func (*Br) instrNode() {}

// CondBr is a two-way conditional branch terminator; Cond must be a
// Bool value.
type CondBr struct {
	Cond       Value
	Then, Else *BasicBlock
}

func (*CondBr) instrNode() {}

// Ret is a return terminator. Val is nil for a void return.
type Ret struct {
	Val Value
}

func (*Ret) instrNode() {}
