package cpu

import "github.com/jmchacon/beebcore/word"

func fetch(b Bus, pc *word.Word) uint8 {
	v := b.Read(*pc)
	pc.Increment()
	return v
}

func fetchWord(b Bus, pc *word.Word) word.Word {
	low := fetch(b, pc)
	high := fetch(b, pc)
	return word.Word{Low: low, High: high}
}

// readWord reads a little-endian word from addr. The high byte's fetch
// wraps within addr's page rather than crossing into the next page -
// this reproduces the 6502's well-known JMP (indirect) page-wrap bug,
// and is also correct for the zero-page pointer reads used by indexed
// indirect addressing.
func readWord(b Bus, addr word.Word) word.Word {
	low := b.Read(addr)
	high := b.Read(addr.SamePageAdd(1))
	return word.Word{Low: low, High: high}
}

// getAddress resolves an addressing mode to its effective address,
// issuing the phantom reads real hardware performs along the way. Modes
// with no meaningful address (Immediate, Accumulator, Relative) are not
// handled here - Relative is handled directly by execBranch and the
// other two never reach this function.
func (c *CPU) getAddress(b Bus, mode AddressMode) word.Word {
	r := &c.Regs
	switch mode {
	case ModeZeroPage:
		return word.ZeroPage(fetch(b, &r.PC))

	case ModeZeroPageX, ModeZeroPageY:
		base := word.ZeroPage(fetch(b, &r.PC))
		b.PhantomRead(base)
		idx := r.X
		if mode == ModeZeroPageY {
			idx = r.Y
		}
		return base.SamePageAdd(idx)

	case ModeAbsolute:
		return fetchWord(b, &r.PC)

	case ModeAbsoluteX, ModeAbsoluteY:
		base := fetchWord(b, &r.PC)
		idx := r.X
		if mode == ModeAbsoluteY {
			idx = r.Y
		}
		addr, result := base.PagedAdd(idx)
		if result.CrossedPage {
			b.PhantomRead(result.Intermediate)
		} else {
			b.PhantomRead(addr)
		}
		return addr

	case ModeIndirect:
		base := fetchWord(b, &r.PC)
		return readWord(b, base)

	case ModeIndexedIndirectX:
		addr := c.getAddress(b, ModeZeroPageX)
		return readWord(b, addr)

	case ModeIndirectIndexedY:
		zp := c.getAddress(b, ModeZeroPage)
		base := readWord(b, zp)
		addr, result := base.PagedAdd(r.Y)
		if result.CrossedPage {
			b.PhantomRead(result.Intermediate)
		} else {
			b.PhantomRead(addr)
		}
		return addr

	default:
		panic(InvalidCPUState{Reason: "getAddress called with a mode that has no address"})
	}
}

// getData resolves an addressing mode to the byte it names, for
// instructions that only read an operand (Load, Compare,
// AccumulatorBinaryOp, NopRead).
func (c *CPU) getData(b Bus, mode AddressMode) uint8 {
	r := &c.Regs
	switch mode {
	case ModeImmediate:
		return fetch(b, &r.PC)

	case ModeAccumulator:
		b.PhantomRead(r.PC)
		return r.A

	default:
		addr := c.getAddress(b, mode)
		return b.Read(addr)
	}
}
