package ir

// Builder emits instructions at a moveable insertion point — exactly
// the ambient state spec §4.3 calls for ("an IR builder with a
// moveable insertion point"). Callers reposition it with SetInsertPoint
// before lowering each basic block.
type Builder struct {
	fn    *Function
	block *BasicBlock
}

// NewBuilder creates a Builder with no insertion point yet; call
// SetInsertPoint before emitting anything.
func NewBuilder(fn *Function) *Builder {
	return &Builder{fn: fn}
}

// SetInsertPoint moves the builder to the end of b.
func (bld *Builder) SetInsertPoint(b *BasicBlock) {
	bld.block = b
}

// Block returns the builder's current insertion block.
func (bld *Builder) Block() *BasicBlock {
	return bld.block
}

func (bld *Builder) CreateAlloca(typ Type) *Alloca {
	a := &Alloca{ID: bld.fn.newValueID(), Typ: typ}
	bld.block.append(a)
	return a
}

func (bld *Builder) CreateStore(val Value, addr *Alloca) {
	bld.block.append(&Store{Addr: addr, Val: val})
}

func (bld *Builder) CreateLoad(addr *Alloca) *Load {
	l := &Load{ID: bld.fn.newValueID(), Addr: addr, Typ: addr.Typ}
	bld.block.append(l)
	return l
}

func (bld *Builder) CreateBinOp(op BinOpKind, lhs, rhs Value, typ Type) *BinOp {
	b := &BinOp{ID: bld.fn.newValueID(), Op: op, Lhs: lhs, Rhs: rhs, Typ: typ}
	bld.block.append(b)
	return b
}

func (bld *Builder) CreateICmp(pred ICmpPred, lhs, rhs Value) *ICmp {
	c := &ICmp{ID: bld.fn.newValueID(), Pred: pred, Lhs: lhs, Rhs: rhs}
	bld.block.append(c)
	return c
}

func (bld *Builder) CreateNeg(x Value, typ Type) *Neg {
	n := &Neg{ID: bld.fn.newValueID(), X: x, Typ: typ}
	bld.block.append(n)
	return n
}

func (bld *Builder) CreateNot(x Value, typ Type) *Not {
	n := &Not{ID: bld.fn.newValueID(), X: x, Typ: typ}
	bld.block.append(n)
	return n
}

func (bld *Builder) CreateCall(callee *Function, args []Value) *Call {
	c := &Call{ID: bld.fn.newValueID(), Callee: callee, Args: args, Typ: callee.ReturnType}
	bld.block.append(c)
	return c
}

// CreateCondBr terminates the current block. It is the caller's job to
// check BasicBlock.Terminated before calling this when the current
// block might already end in a return (spec §9 item 2).
func (bld *Builder) CreateCondBr(cond Value, then, els *BasicBlock) {
	bld.block.append(&CondBr{Cond: cond, Then: then, Else: els})
}

// CreateBr terminates the current block with an unconditional branch.
func (bld *Builder) CreateBr(target *BasicBlock) {
	bld.block.append(&Br{Target: target})
}

// CreateRet terminates the current block, returning val (nil for void).
func (bld *Builder) CreateRet(val Value) {
	bld.block.append(&Ret{Val: val})
}
