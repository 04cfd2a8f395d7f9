package asm

import "sort"

// Opcode is the 5-bit operation code stored in bits 27-31 of every word.
type Opcode uint32

const (
	OpAdd  Opcode = 0b00000
	OpSub  Opcode = 0b00001
	OpMul  Opcode = 0b00010
	OpDiv  Opcode = 0b00011 // reserved, no mnemonic
	OpMod  Opcode = 0b00100 // reserved, no mnemonic
	OpCmp  Opcode = 0b00101
	OpAnd  Opcode = 0b00110
	OpOr   Opcode = 0b00111
	OpNot  Opcode = 0b01000
	OpMov  Opcode = 0b01001
	OpLsl  Opcode = 0b01010
	OpLsr  Opcode = 0b01011
	OpAsr  Opcode = 0b01100
	OpNop  Opcode = 0b01101
	OpLd   Opcode = 0b01110
	OpSt   Opcode = 0b01111
	OpBeq  Opcode = 0b10000
	OpBgt  Opcode = 0b10001
	OpB    Opcode = 0b10010
	OpCall Opcode = 0b10011
	OpRet  Opcode = 0b10100
)

// Format groups instructions sharing an operand layout.
type Format int

const (
	// FormatNone takes no operands.
	FormatNone Format = iota
	// FormatBranch takes a single label operand.
	FormatBranch
	// FormatThree takes rd, rs1 and a register or immediate.
	FormatThree
	// FormatTwo takes rd and a register or immediate.
	FormatTwo
	// FormatMem takes rd, rs1 and a register or immediate offset.
	FormatMem
)

type instr struct {
	op  Opcode
	fmt Format
}

var instrTable = map[string]instr{
	"nop":  {OpNop, FormatNone},
	"ret":  {OpRet, FormatNone},
	"b":    {OpB, FormatBranch},
	"beq":  {OpBeq, FormatBranch},
	"bgt":  {OpBgt, FormatBranch},
	"call": {OpCall, FormatBranch},
	"add":  {OpAdd, FormatThree},
	"sub":  {OpSub, FormatThree},
	"mul":  {OpMul, FormatThree},
	"and":  {OpAnd, FormatThree},
	"or":   {OpOr, FormatThree},
	"lsl":  {OpLsl, FormatThree},
	"lsr":  {OpLsr, FormatThree},
	"asr":  {OpAsr, FormatThree},
	"cmp":  {OpCmp, FormatTwo},
	"not":  {OpNot, FormatTwo},
	"mov":  {OpMov, FormatTwo},
	"ld":   {OpLd, FormatMem},
	"st":   {OpSt, FormatMem},
}

// Field layout.
const (
	opcodeShift = 27
	modeBit     = 1 << 26
	rdShift     = 21
	rs1Shift    = 16
	rs2Shift    = 11

	imm16Mask  = 0xFFFF
	imm21Mask  = 0x1FFFFF
	offsetMask = 0x07FFFFFF

	// NumRegisters is the size of the register file addressable by 5-bit fields.
	NumRegisters = 32
)

// operandCount returns how many operands an instruction format expects.
func (f Format) operandCount() int {
	switch f {
	case FormatBranch:
		return 1
	case FormatTwo:
		return 2
	case FormatThree, FormatMem:
		return 3
	default:
		return 0
	}
}

// Mnemonics returns the instruction names known to the assembler.
func Mnemonics() []string {
	names := make([]string, 0, len(instrTable))
	for name := range instrTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
