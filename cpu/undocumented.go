package cpu

// Undocumented NMOS 6502 opcodes. These exist because the illegal
// opcodes decode as overlapping combinations of the documented ALU and
// addressing-mode control lines; most combine a read-modify-write with
// an accumulator operation, or fold two documented effects into one
// opcode.

func cmpA(r *Registers, m uint8) { opCompare(r, r.A, m) }

// opANC: AND immediate, then copy N into C (this is what the 8-bit ALU's
// carry-out line does for this particular undocumented combination).
func opANC(r *Registers, m uint8) {
	r.A &= m
	r.setZN(r.A)
	r.C = r.N
}

// opALR: AND immediate then LSR the accumulator.
func opALR(r *Registers, m uint8) {
	r.A &= m
	r.A = opLSR(r, r.A)
}

// opARR: AND immediate then ROR the accumulator, with C/V derived from
// bits 5 and 6 of the result rather than the ordinary ROR carry-out.
func opARR(r *Registers, m uint8) {
	r.A &= m
	carryIn := uint8(0)
	if r.C {
		carryIn = 0x80
	}
	r.A = (r.A >> 1) | carryIn
	r.setZN(r.A)
	r.C = r.A&0x40 != 0
	r.V = (r.A&0x40 != 0) != (r.A&0x20 != 0)
}

// opAXS (also called SBX): X = (A AND X) - immediate, without decimal
// mode, setting C like an ordinary CMP and N/Z from the result.
func opAXS(r *Registers, m uint8) {
	val := r.A & r.X
	res := val - m
	r.C = val >= m
	r.X = res
	r.setZN(res)
}

// opXAA: a highly unstable opcode whose result depends on analog bus
// capacitance on real silicon. This models the commonly documented
// approximation A = (A OR magic) AND X AND immediate with magic taken as
// 0xFF, which is the deterministic emulation convention.
func opXAA(r *Registers, m uint8) {
	r.A = (r.A | 0xFF) & r.X & m
	r.setZN(r.A)
}

// opLAS: AND memory with SP, store into A, X and SP.
func opLAS(r *Registers, m uint8) {
	val := r.SP & m
	r.A = val
	r.X = val
	r.SP = val
	r.setZN(val)
}

func addUndocumented(t map[uint8]Instruction) {
	// SLO/RLA/SRE/RRA/DCP/ISC: RMW then combine with the accumulator.
	addRMWAcc := func(zp, zpx, abs, absx, absy, indx, indy uint8, op UnaryOp, bin BinaryOp, mnemonic string) {
		t[zp] = rmwAcc(op, bin, ModeZeroPage, mnemonic)
		t[zpx] = rmwAcc(op, bin, ModeZeroPageX, mnemonic)
		t[abs] = rmwAcc(op, bin, ModeAbsolute, mnemonic)
		t[absx] = rmwAcc(op, bin, ModeAbsoluteX, mnemonic)
		t[absy] = rmwAcc(op, bin, ModeAbsoluteY, mnemonic)
		t[indx] = rmwAcc(op, bin, ModeIndexedIndirectX, mnemonic)
		t[indy] = rmwAcc(op, bin, ModeIndirectIndexedY, mnemonic)
	}
	addRMWAcc(0x07, 0x17, 0x0F, 0x1F, 0x1B, 0x03, 0x13, opASL, opORA, "SLO")
	addRMWAcc(0x27, 0x37, 0x2F, 0x3F, 0x3B, 0x23, 0x33, opROL, opAND, "RLA")
	addRMWAcc(0x47, 0x57, 0x4F, 0x5F, 0x5B, 0x43, 0x53, opLSR, opEOR, "SRE")
	addRMWAcc(0x67, 0x77, 0x6F, 0x7F, 0x7B, 0x63, 0x73, opROR, opADC, "RRA")
	addRMWAcc(0xC7, 0xD7, 0xCF, 0xDF, 0xDB, 0xC3, 0xD3, opDEC, cmpA, "DCP")
	addRMWAcc(0xE7, 0xF7, 0xEF, 0xFF, 0xFB, 0xE3, 0xF3, opINC, opSBC, "ISC")

	// LAX: load A and X together.
	t[0xA7] = Instruction{Kind: KindLoadDual, Mode: ModeZeroPage, Mnemonic: "LAX"}
	t[0xB7] = Instruction{Kind: KindLoadDual, Mode: ModeZeroPageY, Mnemonic: "LAX"}
	t[0xAF] = Instruction{Kind: KindLoadDual, Mode: ModeAbsolute, Mnemonic: "LAX"}
	t[0xBF] = Instruction{Kind: KindLoadDual, Mode: ModeAbsoluteY, Mnemonic: "LAX"}
	t[0xA3] = Instruction{Kind: KindLoadDual, Mode: ModeIndexedIndirectX, Mnemonic: "LAX"}
	t[0xB3] = Instruction{Kind: KindLoadDual, Mode: ModeIndirectIndexedY, Mnemonic: "LAX"}
	// OAL/LAX #imm: same effect as LAX but via the immediate/unstable path.
	t[0xAB] = Instruction{Kind: KindLoadDual, Mode: ModeImmediate, Mnemonic: "OAL"}

	// SAX: store A AND X.
	saxVal := func(r *Registers) uint8 { return r.A & r.X }
	t[0x87] = Instruction{Kind: KindStore, Mode: ModeZeroPage, StoreFunc: saxVal, Mnemonic: "SAX"}
	t[0x97] = Instruction{Kind: KindStore, Mode: ModeZeroPageY, StoreFunc: saxVal, Mnemonic: "SAX"}
	t[0x8F] = Instruction{Kind: KindStore, Mode: ModeAbsolute, StoreFunc: saxVal, Mnemonic: "SAX"}
	t[0x83] = Instruction{Kind: KindStore, Mode: ModeIndexedIndirectX, StoreFunc: saxVal, Mnemonic: "SAX"}

	// Immediate-operand oddities.
	t[0x0B] = accBin(opANC, ModeImmediate, "ANC")
	t[0x2B] = accBin(opANC, ModeImmediate, "ANC")
	t[0x4B] = accBin(opALR, ModeImmediate, "ALR")
	t[0x6B] = accBin(opARR, ModeImmediate, "ARR")
	t[0xCB] = accBin(opAXS, ModeImmediate, "AXS")
	t[0x8B] = accBin(opXAA, ModeImmediate, "XAA")
	t[0xBB] = accBin(opLAS, ModeAbsoluteY, "LAS")

	// SHY/SHX.
	t[0x9C] = Instruction{Kind: KindStoreHighAddressAndY, Mode: ModeAbsoluteX, Reg: RegY, Mnemonic: "SHY"}
	t[0x9E] = Instruction{Kind: KindStoreHighAddressAndY, Mode: ModeAbsoluteY, Reg: RegX, Mnemonic: "SHX"}

	// DOP (double NOP, zero-page/immediate operand) and TOP (triple NOP,
	// absolute operand): read through their addressing mode for timing,
	// discard the result.
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		t[op] = nopRead(ModeZeroPage)
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		t[op] = nopRead(ModeZeroPageX)
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		t[op] = nopRead(ModeImmediate)
	}
	t[0x0C] = nopRead(ModeAbsolute)
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		t[op] = nopRead(ModeAbsoluteX)
	}

	// Single-byte NOPs (1A/3A/5A/7A/DA/FA) beyond the documented 0xEA.
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		t[op] = Instruction{Kind: KindNop, Mnemonic: "NOP"}
	}

	// HLT/JAM/KIL opcodes halt the processor on real hardware; this core
	// surfaces them as invalid opcodes rather than modeling a hang, since
	// nothing in this spec's scope needs the hardware-hang behavior.
}
