package cpu

import "github.com/jmchacon/beebcore/word"

var decodeTable = buildDecodeTable()

func load(reg RegSel, mode AddressMode, mnemonic string) Instruction {
	return Instruction{Kind: KindLoad, Mode: mode, Reg: reg, Mnemonic: mnemonic}
}

func store(reg RegSel, mode AddressMode, mnemonic string) Instruction {
	return Instruction{Kind: KindStore, Mode: mode, Reg: reg, Mnemonic: mnemonic}
}

func rmw(op UnaryOp, mode AddressMode, mnemonic string) Instruction {
	return Instruction{Kind: KindReadModifyWrite, Mode: mode, UnaryOp: op, Mnemonic: mnemonic}
}

func rmwAcc(op UnaryOp, bin BinaryOp, mode AddressMode, mnemonic string) Instruction {
	return Instruction{Kind: KindReadModifyWriteWithAccumulator, Mode: mode, UnaryOp: op, BinaryOp: bin, Mnemonic: mnemonic}
}

func regUnary(reg RegSel, op UnaryOp, mnemonic string) Instruction {
	return Instruction{Kind: KindRegisterUnaryOp, Reg: reg, UnaryOp: op, Mnemonic: mnemonic}
}

func accBin(op BinaryOp, mode AddressMode, mnemonic string) Instruction {
	return Instruction{Kind: KindAccumulatorBinaryOp, Mode: mode, BinaryOp: op, Mnemonic: mnemonic}
}

func compare(reg RegSel, mode AddressMode, mnemonic string) Instruction {
	return Instruction{Kind: KindCompare, Mode: mode, Reg: reg, Mnemonic: mnemonic}
}

func setFlag(mask uint8, value bool, mnemonic string) Instruction {
	return Instruction{Kind: KindSetFlag, FlagMask: mask, FlagValue: value, Mnemonic: mnemonic}
}

func transfer(from, to RegSel, mnemonic string) Instruction {
	return Instruction{Kind: KindTransferRegister, Reg: from, ToReg: to, Mnemonic: mnemonic}
}

func transferNoFlags(from, to RegSel, mnemonic string) Instruction {
	return Instruction{Kind: KindTransferRegisterNoFlags, Reg: from, ToReg: to, Mnemonic: mnemonic}
}

func branch(cond func(*Registers) bool, mnemonic string) Instruction {
	return Instruction{Kind: KindBranch, BranchCond: cond, Mnemonic: mnemonic}
}

func nopRead(mode AddressMode) Instruction {
	return Instruction{Kind: KindNopRead, Mode: mode, Mnemonic: "DOP/TOP"}
}

// buildDecodeTable constructs the full opcode table at package init,
// mirroring the teacher's table-driven style but as data rather than a
// 256-arm switch: every entry is produced by a small constructor for its
// instruction category, keeping each opcode's addressing mode and
// operator visible at the call site.
func buildDecodeTable() map[uint8]Instruction {
	t := map[uint8]Instruction{}

	// Load/store.
	t[0xA9] = load(RegA, ModeImmediate, "LDA")
	t[0xA5] = load(RegA, ModeZeroPage, "LDA")
	t[0xB5] = load(RegA, ModeZeroPageX, "LDA")
	t[0xAD] = load(RegA, ModeAbsolute, "LDA")
	t[0xBD] = load(RegA, ModeAbsoluteX, "LDA")
	t[0xB9] = load(RegA, ModeAbsoluteY, "LDA")
	t[0xA1] = load(RegA, ModeIndexedIndirectX, "LDA")
	t[0xB1] = load(RegA, ModeIndirectIndexedY, "LDA")

	t[0xA2] = load(RegX, ModeImmediate, "LDX")
	t[0xA6] = load(RegX, ModeZeroPage, "LDX")
	t[0xB6] = load(RegX, ModeZeroPageY, "LDX")
	t[0xAE] = load(RegX, ModeAbsolute, "LDX")
	t[0xBE] = load(RegX, ModeAbsoluteY, "LDX")

	t[0xA0] = load(RegY, ModeImmediate, "LDY")
	t[0xA4] = load(RegY, ModeZeroPage, "LDY")
	t[0xB4] = load(RegY, ModeZeroPageX, "LDY")
	t[0xAC] = load(RegY, ModeAbsolute, "LDY")
	t[0xBC] = load(RegY, ModeAbsoluteX, "LDY")

	t[0x85] = store(RegA, ModeZeroPage, "STA")
	t[0x95] = store(RegA, ModeZeroPageX, "STA")
	t[0x8D] = store(RegA, ModeAbsolute, "STA")
	t[0x9D] = store(RegA, ModeAbsoluteX, "STA")
	t[0x99] = store(RegA, ModeAbsoluteY, "STA")
	t[0x81] = store(RegA, ModeIndexedIndirectX, "STA")
	t[0x91] = store(RegA, ModeIndirectIndexedY, "STA")

	t[0x86] = store(RegX, ModeZeroPage, "STX")
	t[0x96] = store(RegX, ModeZeroPageY, "STX")
	t[0x8E] = store(RegX, ModeAbsolute, "STX")

	t[0x84] = store(RegY, ModeZeroPage, "STY")
	t[0x94] = store(RegY, ModeZeroPageX, "STY")
	t[0x8C] = store(RegY, ModeAbsolute, "STY")

	// Transfers.
	t[0xAA] = transfer(RegA, RegX, "TAX")
	t[0xA8] = transfer(RegA, RegY, "TAY")
	t[0x8A] = transfer(RegX, RegA, "TXA")
	t[0x98] = transfer(RegY, RegA, "TYA")
	t[0xBA] = transfer(RegSP, RegX, "TSX")
	t[0x9A] = transferNoFlags(RegX, RegSP, "TXS")

	// Stack.
	t[0x48] = Instruction{Kind: KindPushAccumulator, Mnemonic: "PHA"}
	t[0x68] = Instruction{Kind: KindPullAccumulator, Mnemonic: "PLA"}
	t[0x08] = Instruction{Kind: KindPushProcessorFlags, Mnemonic: "PHP"}
	t[0x28] = Instruction{Kind: KindPullProcessorFlags, Mnemonic: "PLP"}

	// Flags.
	t[0x18] = setFlag(FlagC, false, "CLC")
	t[0x38] = setFlag(FlagC, true, "SEC")
	t[0x58] = setFlag(FlagI, false, "CLI")
	t[0x78] = setFlag(FlagI, true, "SEI")
	t[0xD8] = setFlag(FlagD, false, "CLD")
	t[0xF8] = setFlag(FlagD, true, "SED")
	t[0xB8] = setFlag(FlagV, false, "CLV")

	// Register increment/decrement.
	t[0xE8] = regUnary(RegX, opINC, "INX")
	t[0xC8] = regUnary(RegY, opINC, "INY")
	t[0xCA] = regUnary(RegX, opDEC, "DEX")
	t[0x88] = regUnary(RegY, opDEC, "DEY")

	// Accumulator binary ops.
	addAccBin := func(base uint8, op BinaryOp, mnemonic string) {
		t[base+0x09] = accBin(op, ModeImmediate, mnemonic)
		t[base+0x05] = accBin(op, ModeZeroPage, mnemonic)
		t[base+0x15] = accBin(op, ModeZeroPageX, mnemonic)
		t[base+0x0D] = accBin(op, ModeAbsolute, mnemonic)
		t[base+0x1D] = accBin(op, ModeAbsoluteX, mnemonic)
		t[base+0x19] = accBin(op, ModeAbsoluteY, mnemonic)
		t[base+0x01] = accBin(op, ModeIndexedIndirectX, mnemonic)
		t[base+0x11] = accBin(op, ModeIndirectIndexedY, mnemonic)
	}
	addAccBin(0x00, opORA, "ORA")
	addAccBin(0x20, opAND, "AND")
	addAccBin(0x40, opEOR, "EOR")
	addAccBin(0x60, opADC, "ADC")
	addAccBin(0xE0, opSBC, "SBC")

	// Read-modify-write.
	addRMW := func(zp, zpx, abs, absx, acc uint8, op UnaryOp, mnemonic string) {
		t[zp] = rmw(op, ModeZeroPage, mnemonic)
		t[zpx] = rmw(op, ModeZeroPageX, mnemonic)
		t[abs] = rmw(op, ModeAbsolute, mnemonic)
		t[absx] = rmw(op, ModeAbsoluteX, mnemonic)
		if acc != 0 {
			t[acc] = rmw(op, ModeAccumulator, mnemonic)
		}
	}
	addRMW(0x06, 0x16, 0x0E, 0x1E, 0x0A, opASL, "ASL")
	addRMW(0x26, 0x36, 0x2E, 0x3E, 0x2A, opROL, "ROL")
	addRMW(0x46, 0x56, 0x4E, 0x5E, 0x4A, opLSR, "LSR")
	addRMW(0x66, 0x76, 0x6E, 0x7E, 0x6A, opROR, "ROR")
	addRMW(0xE6, 0xF6, 0xEE, 0xFE, 0, opINC, "INC")
	addRMW(0xC6, 0xD6, 0xCE, 0xDE, 0, opDEC, "DEC")

	// Compare.
	t[0xC9] = compare(RegA, ModeImmediate, "CMP")
	t[0xC5] = compare(RegA, ModeZeroPage, "CMP")
	t[0xD5] = compare(RegA, ModeZeroPageX, "CMP")
	t[0xCD] = compare(RegA, ModeAbsolute, "CMP")
	t[0xDD] = compare(RegA, ModeAbsoluteX, "CMP")
	t[0xD9] = compare(RegA, ModeAbsoluteY, "CMP")
	t[0xC1] = compare(RegA, ModeIndexedIndirectX, "CMP")
	t[0xD1] = compare(RegA, ModeIndirectIndexedY, "CMP")
	t[0xE0] = compare(RegX, ModeImmediate, "CPX")
	t[0xE4] = compare(RegX, ModeZeroPage, "CPX")
	t[0xEC] = compare(RegX, ModeAbsolute, "CPX")
	t[0xC0] = compare(RegY, ModeImmediate, "CPY")
	t[0xC4] = compare(RegY, ModeZeroPage, "CPY")
	t[0xCC] = compare(RegY, ModeAbsolute, "CPY")

	// BIT.
	t[0x24] = accBin(func(r *Registers, m uint8) { opBIT(r, r.A, m) }, ModeZeroPage, "BIT")
	t[0x2C] = accBin(func(r *Registers, m uint8) { opBIT(r, r.A, m) }, ModeAbsolute, "BIT")

	// Branches.
	t[0x10] = branch(func(r *Registers) bool { return !r.N }, "BPL")
	t[0x30] = branch(func(r *Registers) bool { return r.N }, "BMI")
	t[0x50] = branch(func(r *Registers) bool { return !r.V }, "BVC")
	t[0x70] = branch(func(r *Registers) bool { return r.V }, "BVS")
	t[0x90] = branch(func(r *Registers) bool { return !r.C }, "BCC")
	t[0xB0] = branch(func(r *Registers) bool { return r.C }, "BCS")
	t[0xD0] = branch(func(r *Registers) bool { return !r.Z }, "BNE")
	t[0xF0] = branch(func(r *Registers) bool { return r.Z }, "BEQ")

	// Jumps/subroutines/interrupts.
	t[0x4C] = Instruction{Kind: KindJump, Mode: ModeAbsolute, Mnemonic: "JMP"}
	t[0x6C] = Instruction{Kind: KindJump, Mode: ModeIndirect, Mnemonic: "JMP"}
	t[0x20] = Instruction{Kind: KindJumpToSubRoutine, Mnemonic: "JSR"}
	t[0x60] = Instruction{Kind: KindReturnFromSubroutine, Mnemonic: "RTS"}
	t[0x40] = Instruction{Kind: KindReturnFromInterrupt, Mnemonic: "RTI"}
	t[0x00] = breakInstructionOpcode()

	t[0xEA] = Instruction{Kind: KindNop, Mnemonic: "NOP"}

	addUndocumented(t)

	return t
}

func breakInstructionOpcode() Instruction {
	inst := breakInstruction(word.New(0xFFFE), true, true)
	inst.Mnemonic = "BRK"
	return inst
}
