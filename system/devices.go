package system

import "github.com/jmchacon/beebcore/memory"

// romSelect adapts the paged-ROM bank-select latch (ROMSEL, 0xFE30 on real
// hardware) to an io.Device: any write's low nibble becomes the new bank,
// matching the teacher's style of a thin io.Device wrapping a shared cell
// rather than owning the cell itself.
type romSelect struct {
	rom *memory.PagedROM
}

func (r *romSelect) Read(addr uint16, cycle uint64) uint8 { return r.rom.Latch }

func (r *romSelect) Write(addr uint16, val uint8, cycle uint64) bool {
	r.rom.Latch = val & (memory.NumBanks - 1)
	return false
}

func (r *romSelect) Phase2(addr uint16, val uint8, cycle uint64) {}
func (r *romSelect) GetInterrupt(cycle uint64) bool              { return false }

// addressableLatch models IC32, the 74LS259 addressable latch behind the
// System VIA's port A: each write's low 3 bits select one of 8 latched
// output bits, and bit 3 sets or clears it. Bits 4-5 feed the video
// screen-base selection TranslateCRTCHiresRange needs; the remaining
// bits (sound chip select, keyboard write enable, capacitor discharge)
// are latched but otherwise unused by this core, since the System VIA
// and its peripherals are out of scope.
type addressableLatch struct {
	value uint8
}

func (l *addressableLatch) Read(addr uint16, cycle uint64) uint8 { return l.value }

func (l *addressableLatch) Write(addr uint16, val uint8, cycle uint64) bool {
	bit := uint8(1) << (val & 0x07)
	if val&0x08 != 0 {
		l.value |= bit
	} else {
		l.value &^= bit
	}
	return false
}

func (l *addressableLatch) Phase2(addr uint16, val uint8, cycle uint64) {}
func (l *addressableLatch) GetInterrupt(cycle uint64) bool              { return false }

// screenBase returns the IC32 bits TranslateCRTCHiresRange reads as its
// ic32Latch parameter.
func (l *addressableLatch) screenBase() uint8 { return l.value }
