package cpu

import "github.com/jmchacon/beebcore/word"

// Flag bit positions within the packed processor status byte.
const (
	FlagC uint8 = 1 << 0
	FlagZ uint8 = 1 << 1
	FlagI uint8 = 1 << 2
	FlagD uint8 = 1 << 3
	FlagB uint8 = 1 << 4
	flag5 uint8 = 1 << 5
	FlagV uint8 = 1 << 6
	FlagN uint8 = 1 << 7
)

// Registers holds the full 6502 programmer-visible state.
type Registers struct {
	PC word.Word
	SP uint8
	A  uint8
	X  uint8
	Y  uint8

	C, Z, I, D, V, N bool
}

// ToByte packs the flags into a status byte. Bit 5 always reads as 1.
// brk selects the B bit, which only ever exists in the pushed byte, never
// in the live register state.
func (r *Registers) ToByte(brk bool) uint8 {
	var b uint8 = flag5
	if r.C {
		b |= FlagC
	}
	if r.Z {
		b |= FlagZ
	}
	if r.I {
		b |= FlagI
	}
	if r.D {
		b |= FlagD
	}
	if brk {
		b |= FlagB
	}
	if r.V {
		b |= FlagV
	}
	if r.N {
		b |= FlagN
	}
	return b
}

// FromByte unpacks a status byte into the flags. Bits 4 and 5 (B and the
// always-1 bit) are not part of the live register state and are ignored.
func (r *Registers) FromByte(b uint8) {
	r.C = b&FlagC != 0
	r.Z = b&FlagZ != 0
	r.I = b&FlagI != 0
	r.D = b&FlagD != 0
	r.V = b&FlagV != 0
	r.N = b&FlagN != 0
}

// setZN sets the Z and N flags from val, as every load/transfer/RMW
// instruction that touches flags does.
func (r *Registers) setZN(val uint8) {
	r.Z = val == 0
	r.N = val&0x80 != 0
}
