package amd64

// reg is a SysV AMD64 general-purpose register, numbered the way the
// ModRM/SIB and REX encodings expect: 0-7 are the legacy registers,
// 8-15 need REX.R/X/B to reach.
type reg uint8

const (
	rax reg = 0
	rcx reg = 1
	rdx reg = 2
	rbx reg = 3
	rsp reg = 4
	rbp reg = 5
	rsi reg = 6
	rdi reg = 7
	r8  reg = 8
	r9  reg = 9
)

// argRegs is the SysV integer/pointer argument-passing order. This
// encoder only supports up to six arguments, the length of this table.
var argRegs = []reg{rdi, rsi, rdx, rcx, r8, r9}

func (r reg) lowBits() uint8 { return uint8(r) & 0x7 }
func (r reg) extBit() uint8  { return uint8(r) >> 3 }
