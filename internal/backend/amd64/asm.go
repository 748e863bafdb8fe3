package amd64

import "encoding/binary"

// condCode is an x86 condition-code suffix, used by both Jcc and SETcc.
type condCode uint8

const (
	ccE  condCode = 0x4 // equal / zero
	ccNE condCode = 0x5 // not equal
	ccL  condCode = 0xC // signed less
	ccLE condCode = 0xE // signed less-or-equal
	ccG  condCode = 0xF // signed greater
	ccGE condCode = 0xD // signed greater-or-equal
)

// asmBuf accumulates the machine code for one function. It knows
// nothing about basic blocks or IR — function.go walks the IR and
// calls these primitives in order, then patches the relative branch
// targets once every block's start offset is known.
type asmBuf struct {
	buf []byte
}

func (a *asmBuf) emit(bs ...byte) {
	a.buf = append(a.buf, bs...)
}

func (a *asmBuf) emitU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	a.buf = append(a.buf, b[:]...)
}

func (a *asmBuf) emitU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	a.buf = append(a.buf, b[:]...)
}

func (a *asmBuf) pos() int { return len(a.buf) }

// rex builds a REX prefix byte. w selects a 64-bit operand size; r/x/b
// extend the ModRM.reg, SIB.index, and ModRM.rm/SIB.base fields to
// reach registers r8-r15.
func rex(w, r, x, b bool) byte {
	out := byte(0x40)
	if w {
		out |= 0x08
	}
	if r {
		out |= 0x04
	}
	if x {
		out |= 0x02
	}
	if b {
		out |= 0x01
	}
	return out
}

func modrm(mod, regField, rmField byte) byte {
	return mod<<6 | (regField&0x7)<<3 | (rmField & 0x7)
}

// movRegImm64 emits "movabs dst, imm".
func (a *asmBuf) movRegImm64(dst reg, imm uint64) {
	a.emit(rex(true, false, false, dst.extBit() != 0))
	a.emit(0xB8 + dst.lowBits())
	a.emitU64(imm)
}

// movRegMem emits "mov dst, [base+disp32]" (a stack-slot load).
func (a *asmBuf) movRegMem(dst, base reg, disp int32) {
	a.emit(rex(true, dst.extBit() != 0, false, base.extBit() != 0))
	a.emit(0x8B)
	a.emit(modrm(2, dst.lowBits(), base.lowBits()))
	if base.lowBits() == rsp.lowBits() {
		a.emit(0x24) // SIB: base=rsp, no index
	}
	a.emitU32(uint32(disp))
}

// movMemReg emits "mov [base+disp32], src" (a stack-slot store).
func (a *asmBuf) movMemReg(base reg, disp int32, src reg) {
	a.emit(rex(true, src.extBit() != 0, false, base.extBit() != 0))
	a.emit(0x89)
	a.emit(modrm(2, src.lowBits(), base.lowBits()))
	a.emitU32(uint32(disp))
}

func (a *asmBuf) pushReg(r reg) {
	if r.extBit() != 0 {
		a.emit(rex(false, false, false, true))
	}
	a.emit(0x50 + r.lowBits())
}

func (a *asmBuf) popReg(r reg) {
	if r.extBit() != 0 {
		a.emit(rex(false, false, false, true))
	}
	a.emit(0x58 + r.lowBits())
}

// aluRegReg emits a register-register ALU op ("op dst, src"); opcode is
// the two-operand r/m64,r64 form (dst is the ModRM.rm operand).
func (a *asmBuf) aluRegReg(opcode byte, dst, src reg) {
	a.emit(rex(true, src.extBit() != 0, false, dst.extBit() != 0))
	a.emit(opcode)
	a.emit(modrm(3, src.lowBits(), dst.lowBits()))
}

func (a *asmBuf) addRegReg(dst, src reg) { a.aluRegReg(0x01, dst, src) }
func (a *asmBuf) subRegReg(dst, src reg) { a.aluRegReg(0x29, dst, src) }
func (a *asmBuf) andRegReg(dst, src reg) { a.aluRegReg(0x21, dst, src) }
func (a *asmBuf) orRegReg(dst, src reg)  { a.aluRegReg(0x09, dst, src) }
func (a *asmBuf) xorRegReg(dst, src reg) { a.aluRegReg(0x31, dst, src) }

// cmpRegReg computes lhs-rhs and sets flags accordingly; a following
// SETcc reads the flags lhs produced relative to rhs.
func (a *asmBuf) cmpRegReg(lhs, rhs reg) { a.aluRegReg(0x39, lhs, rhs) }

// testRegReg ANDs r with itself purely for the flags, to drive a
// following Jcc off whether it is zero.
func (a *asmBuf) testRegReg(r reg) {
	a.emit(rex(true, r.extBit() != 0, false, r.extBit() != 0))
	a.emit(0x85)
	a.emit(modrm(3, r.lowBits(), r.lowBits()))
}

// movRegReg emits "mov dst, src".
func (a *asmBuf) movRegReg(dst, src reg) {
	a.emit(rex(true, src.extBit() != 0, false, dst.extBit() != 0))
	a.emit(0x89)
	a.emit(modrm(3, src.lowBits(), dst.lowBits()))
}

// imulRegReg emits "imul dst, src" (dst *= src).
func (a *asmBuf) imulRegReg(dst, src reg) {
	a.emit(rex(true, dst.extBit() != 0, false, src.extBit() != 0))
	a.emit(0x0F, 0xAF)
	a.emit(modrm(3, dst.lowBits(), src.lowBits()))
}

func (a *asmBuf) negReg(r reg) {
	a.emit(rex(true, false, false, r.extBit() != 0))
	a.emit(0xF7)
	a.emit(modrm(3, 3, r.lowBits()))
}

func (a *asmBuf) notReg(r reg) {
	a.emit(rex(true, false, false, r.extBit() != 0))
	a.emit(0xF7)
	a.emit(modrm(3, 2, r.lowBits()))
}

// cqo sign-extends rax into rdx:rax ahead of a signed division.
func (a *asmBuf) cqo() {
	a.emit(rex(true, false, false, false))
	a.emit(0x99)
}

// idivReg divides rdx:rax by r, leaving the quotient in rax and the
// remainder in rdx.
func (a *asmBuf) idivReg(r reg) {
	a.emit(rex(true, false, false, r.extBit() != 0))
	a.emit(0xF7)
	a.emit(modrm(3, 7, r.lowBits()))
}

// setccAl emits "setcc al" — al becomes 0 or 1.
func (a *asmBuf) setccAl(cc condCode) {
	a.emit(0x0F, 0x90+byte(cc))
	a.emit(modrm(3, 0, rax.lowBits()))
}

// movzxRaxAl zero-extends al into all of rax.
func (a *asmBuf) movzxRaxAl() {
	a.emit(rex(true, false, false, false))
	a.emit(0x0F, 0xB6)
	a.emit(modrm(3, rax.lowBits(), rax.lowBits()))
}

func (a *asmBuf) pushRBP() { a.pushReg(rbp) }

func (a *asmBuf) movRBPRSP() {
	a.emit(rex(true, false, false, false))
	a.emit(0x89)
	a.emit(modrm(3, rsp.lowBits(), rbp.lowBits()))
}

func (a *asmBuf) subRSPImm32(n uint32) {
	a.emit(rex(true, false, false, false))
	a.emit(0x81)
	a.emit(modrm(3, 5, rsp.lowBits()))
	a.emitU32(n)
}

// addRSPImm32 emits "add rsp, n", used to bulk-discard temporaries
// pushed since a block's entry.
func (a *asmBuf) addRSPImm32(n uint32) {
	a.emit(rex(true, false, false, false))
	a.emit(0x81)
	a.emit(modrm(3, 0, rsp.lowBits()))
	a.emitU32(n)
}

func (a *asmBuf) leave() { a.emit(0xC9) }
func (a *asmBuf) ret()   { a.emit(0xC3) }

// callRel32Placeholder emits a near CALL with a zero displacement and
// returns the offset of the 4-byte displacement field, to be patched
// once the callee's address is known (patchRel32).
func (a *asmBuf) callRel32Placeholder() int {
	a.emit(0xE8)
	pos := a.pos()
	a.emitU32(0)
	return pos
}

func (a *asmBuf) jmpRel32Placeholder() int {
	a.emit(0xE9)
	pos := a.pos()
	a.emitU32(0)
	return pos
}

func (a *asmBuf) jccRel32Placeholder(cc condCode) int {
	a.emit(0x0F, 0x80+byte(cc))
	pos := a.pos()
	a.emitU32(0)
	return pos
}

// patchRel32 fills in the displacement field at fieldPos (as returned
// by one of the *Placeholder methods above) so that it jumps/calls to
// targetPos, both measured from the start of this buffer.
func (a *asmBuf) patchRel32(fieldPos, targetPos int) {
	rel := int32(targetPos - (fieldPos + 4))
	binary.LittleEndian.PutUint32(a.buf[fieldPos:fieldPos+4], uint32(rel))
}
