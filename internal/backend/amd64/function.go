package amd64

import "github.com/veil-lang/veilc/internal/ir"

// Every local (parameter or let-binding) gets a full 8-byte rbp-relative
// slot, regardless of its ir.Type's natural width; this keeps the
// encoder's load/store pair uniform at the cost of some wasted frame
// space, an acceptable trade for a from-scratch backend.
const slotSize = 8

// callPatch records a CALL whose displacement field could not be
// resolved until every function in the module had been laid out into
// the combined .text buffer.
type callPatch struct {
	fieldPos int // offset of the 4-byte field, relative to this function's own code
	callee   string
}

// jumpPatch is a Br/CondBr displacement resolved entirely within this
// function, against the block-offset table built on the first pass.
type jumpPatch struct {
	fieldPos int
	target   *ir.BasicBlock
}

// funcEncoder lowers one ir.Function to machine code. Every IR value is
// produced into rax and immediately pushed; consumers read it back via
// an rsp-relative offset computed from how many words have been pushed
// since (depth), rather than popping, so a value can sit beneath later
// temporaries without its address moving. The stack is only actually
// reclaimed in bulk, right before a Br/CondBr crosses into another
// block (so every block is entered with the same relative depth
// regardless of which arm led to it) or via `leave` on Ret.
type funcEncoder struct {
	asmBuf
	fn      *ir.Function
	offsets map[*ir.Alloca]int32 // rbp-relative slot offset, negative
	loc     map[ir.Value]int     // depth at which a value was pushed
	depth   int

	blockStart map[*ir.BasicBlock]int
	jumps      []jumpPatch
	calls      []callPatch
	frameSize  uint32
}

// encodeFunction assembles fn's body and returns its machine code plus
// the call sites that still need a callee address, which the caller
// resolves once every function's position in the combined object is
// known.
func encodeFunction(fn *ir.Function) ([]byte, []callPatch) {
	e := &funcEncoder{
		fn:         fn,
		offsets:    map[*ir.Alloca]int32{},
		loc:        map[ir.Value]int{},
		blockStart: map[*ir.BasicBlock]int{},
	}
	e.layoutFrame()
	e.prologue()
	for _, b := range fn.Blocks {
		e.blockStart[b] = e.pos()
		e.depth = 0 // predecessors reclaim (or return) before leaving
		for _, instr := range b.Instrs {
			e.encodeInstr(instr)
		}
	}
	for _, j := range e.jumps {
		e.patchRel32(j.fieldPos, e.blockStart[j.target])
	}
	return e.buf, e.calls
}

// layoutFrame assigns every Alloca in the function (wherever its block
// appears — nested if-arms included) a distinct stack slot, in the
// order the allocas were created.
func (e *funcEncoder) layoutFrame() {
	next := int32(0)
	for _, b := range e.fn.Blocks {
		for _, instr := range b.Instrs {
			if al, ok := instr.(*ir.Alloca); ok {
				next += slotSize
				e.offsets[al] = -next
			}
		}
	}
	e.frameSize = align16(uint32(next))
}

func align16(n uint32) uint32 {
	return (n + 15) &^ 15
}

func (e *funcEncoder) prologue() {
	e.pushRBP()
	e.movRBPRSP()
	if e.frameSize > 0 {
		e.subRSPImm32(e.frameSize)
	}
}

func (e *funcEncoder) encodeInstr(instr ir.Instr) {
	switch n := instr.(type) {
	case *ir.Alloca:
		// frame slot already reserved by layoutFrame; no code.

	case *ir.Store:
		e.getValue(n.Val, rax)
		e.movMemReg(rbp, e.offsets[n.Addr], rax)

	case *ir.Load:
		e.movRegMem(rax, rbp, e.offsets[n.Addr])
		e.push(n)

	case *ir.BinOp:
		e.getValue(n.Lhs, rax)
		e.getValue(n.Rhs, rcx)
		switch n.Op {
		case ir.Add:
			e.addRegReg(rax, rcx)
		case ir.Sub:
			e.subRegReg(rax, rcx)
		case ir.Mul:
			e.imulRegReg(rax, rcx)
		case ir.SDiv:
			e.cqo()
			e.idivReg(rcx)
		case ir.SRem:
			e.cqo()
			e.idivReg(rcx)
			e.movRegReg(rax, rdx)
		case ir.And:
			e.andRegReg(rax, rcx)
		case ir.Or:
			e.orRegReg(rax, rcx)
		case ir.Xor:
			e.xorRegReg(rax, rcx)
		}
		e.push(n)

	case *ir.ICmp:
		e.getValue(n.Lhs, rax)
		e.getValue(n.Rhs, rcx)
		e.cmpRegReg(rax, rcx)
		e.setccAl(icmpCond(n.Pred))
		e.movzxRaxAl()
		e.push(n)

	case *ir.Neg:
		e.getValue(n.X, rax)
		e.negReg(rax)
		e.push(n)

	case *ir.Not:
		e.getValue(n.X, rax)
		if n.Typ == ir.Bool {
			// a Bool is held as 0 or 1: flip only the low bit
			e.movRegImm64(rcx, 1)
			e.xorRegReg(rax, rcx)
		} else {
			e.notReg(rax)
		}
		e.push(n)

	case *ir.Call:
		for _, arg := range n.Args {
			e.getValue(arg, rax)
			e.pushReg(rax)
			e.depth++
		}
		for i := len(n.Args) - 1; i >= 0; i-- {
			e.popReg(argRegs[i])
			e.depth--
		}
		field := e.callRel32Placeholder()
		e.calls = append(e.calls, callPatch{fieldPos: field, callee: n.Callee.Name})
		if n.Typ != ir.Void {
			e.push(n)
		}

	case *ir.Br:
		e.reclaim()
		field := e.jmpRel32Placeholder()
		e.jumps = append(e.jumps, jumpPatch{fieldPos: field, target: n.Target})

	case *ir.CondBr:
		e.getValue(n.Cond, rax)
		e.reclaim() // add rsp clobbers flags, so it must precede the test
		e.testRegReg(rax)
		thenField := e.jccRel32Placeholder(ccNE)
		e.jumps = append(e.jumps, jumpPatch{fieldPos: thenField, target: n.Then})
		elseField := e.jmpRel32Placeholder()
		e.jumps = append(e.jumps, jumpPatch{fieldPos: elseField, target: n.Else})

	case *ir.Ret:
		if n.Val != nil {
			e.getValue(n.Val, rax)
		}
		e.leave()
		e.ret()
	}
}

// push records v's result (already sitting in rax) as pushed at the
// current depth, then commits it to the real stack.
func (e *funcEncoder) push(v ir.Value) {
	e.pushReg(rax)
	e.loc[v] = e.depth
	e.depth++
}

// reclaim drops every temporary pushed since the block's entry, so
// every block begins at the same relative depth regardless of which
// predecessor branched into it.
func (e *funcEncoder) reclaim() {
	if e.depth > 0 {
		e.addRSPImm32(uint32(e.depth) * slotSize)
		e.depth = 0
	}
}

// getValue materialises v into dst: an immediate for a constant, the
// matching argument register for a parameter, or an rsp-relative read
// for an already-computed instruction result.
func (e *funcEncoder) getValue(v ir.Value, dst reg) {
	switch n := v.(type) {
	case *ir.ConstInt:
		e.movRegImm64(dst, n.Val)
	case *ir.Param:
		e.movRegReg(dst, e.paramReg(n))
	default:
		off := int32(e.depth-1-e.loc[v]) * slotSize
		e.movRegMem(dst, rsp, off)
	}
}

func (e *funcEncoder) paramReg(p *ir.Param) reg {
	for i, fp := range e.fn.Params {
		if fp.Name == p.Name {
			return argRegs[i]
		}
	}
	// unreachable for well-formed IR: every *ir.Param is one of fn.Params
	return rax
}

func icmpCond(p ir.ICmpPred) condCode {
	switch p {
	case ir.ICmpEQ:
		return ccE
	case ir.ICmpNE:
		return ccNE
	case ir.ICmpSLT:
		return ccL
	case ir.ICmpSLE:
		return ccLE
	case ir.ICmpSGT:
		return ccG
	case ir.ICmpSGE:
		return ccGE
	default:
		return ccE
	}
}
