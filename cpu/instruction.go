package cpu

import "github.com/jmchacon/beebcore/word"

// AddressMode identifies how an instruction's operand address or value is
// formed. Unlike the Rust source this spec is translated from, register
// selection (X vs Y) is folded into the mode itself rather than carried
// as a runtime parameter alongside it - a flattening that fits Go's
// table-driven opcode-decode idiom better than a generic indexed variant.
type AddressMode int

const (
	ModeNone AddressMode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndexedIndirectX // (zp,X)
	ModeIndirectIndexedY // (zp),Y
	ModeRelative
)

// RegSel identifies one of the CPU's registers for transfer, compare and
// load/store instructions.
type RegSel int

const (
	RegA RegSel = iota
	RegX
	RegY
	RegSP
)

// UnaryOp is an in-place read-modify-write operator (ASL, LSR, ROL, ROR,
// INC, DEC) applied to the byte read from memory or the accumulator.
type UnaryOp func(r *Registers, val uint8) uint8

// BinaryOp combines the accumulator with an operand fetched from memory
// or immediate data (ORA, AND, EOR, ADC, SBC).
type BinaryOp func(r *Registers, operand uint8)

// Kind identifies an instruction category, matching the variant list in
// the spec's CPU executor design.
type Kind int

const (
	KindNop Kind = iota
	KindNopRead
	KindStore
	KindReadModifyWrite
	KindReadModifyWriteWithAccumulator // undocumented SLO/RLA/SRE/RRA family
	KindRegisterUnaryOp                // INX/DEX/INY/DEY
	KindAccumulatorBinaryOp
	KindSetFlag
	KindBreak
	KindJumpToSubRoutine
	KindJump
	KindReturnFromInterrupt
	KindReturnFromSubroutine
	KindPullAccumulator
	KindPushAccumulator
	KindPullProcessorFlags
	KindPushProcessorFlags
	KindBranch
	KindCompare
	KindLoad
	KindTransferRegister
	KindTransferRegisterNoFlags
	KindStoreHighAddressAndY // undocumented SHY/SHX
	KindLoadDual             // undocumented LAX: loads both A and X
)

// Instruction is the decoded, immutable description of one opcode. Only
// the fields relevant to Kind are populated; the rest are zero values.
type Instruction struct {
	Kind Kind
	Mode AddressMode

	// Store/Load/Compare/Transfer/RegisterUnaryOp register selection.
	Reg   RegSel
	ToReg RegSel

	UnaryOp  UnaryOp
	BinaryOp BinaryOp

	// StoreFunc overrides Reg for Store instructions whose written value
	// is computed from more than one register (undocumented SAX: A AND X).
	StoreFunc func(*Registers) uint8

	// SetFlag.
	FlagMask  uint8
	FlagValue bool

	// Break.
	Vector      word.Word
	AdvancePC   bool
	PushedBFlag bool

	// Branch.
	BranchCond func(*Registers) bool

	Mnemonic string
}
