// Package bus implements the CPU-facing side of the address map: the
// four operations (phantom_read, read, write, get_interrupt) the CPU
// executor drives. The three memory operations first retire the previous
// cycle's deferred phase-2 write and tick the clock before doing anything
// else; get_interrupt does neither.
package bus

import (
	"github.com/jmchacon/beebcore/clock"
	"github.com/jmchacon/beebcore/io"
	"github.com/jmchacon/beebcore/irq"
	"github.com/jmchacon/beebcore/memory"
	"github.com/jmchacon/beebcore/word"
)

// Bus wires together RAM, paged ROM, OS ROM and the I/O device registry
// behind the fixed address-window layout in memory.Map, and presents the
// four bus operations the CPU executor calls once per cycle.
type Bus struct {
	Clock    *clock.Clock
	RAM      *memory.RAM
	PagedROM *memory.PagedROM
	OSROM    *memory.ROM
	IO       *io.Space
}

// New wires the given backing stores into a Bus.
func New(c *clock.Clock, ram *memory.RAM, pagedROM *memory.PagedROM, osROM *memory.ROM, ioSpace *io.Space) *Bus {
	return &Bus{Clock: c, RAM: ram, PagedROM: pagedROM, OSROM: osROM, IO: ioSpace}
}

// endPreviousCycle resolves the prior cycle's deferred phase-2 write and
// ticks the clock. PhantomRead, Read and Write each call this first
// (GetInterrupt does not), so a device's Phase2 always observes the cycle just after
// the write that scheduled it.
func (b *Bus) endPreviousCycle() {
	b.IO.Phase2(b.Clock)
	b.Clock.Inc()
}

// PhantomRead models a discarded bus cycle: the address is irrelevant but
// the tick must still happen, because real hardware puts something on
// the bus even when nothing uses the result.
func (b *Bus) PhantomRead(addr word.Word) {
	b.endPreviousCycle()
}

// Read dispatches addr through the address map and returns the byte
// observed, ticking the clock as endPreviousCycle and (for 1-MHz I/O
// devices) io.Space.Read require.
func (b *Bus) Read(addr word.Word) uint8 {
	b.endPreviousCycle()
	return b.read(addr.Uint16())
}

func (b *Bus) read(addr uint16) uint8 {
	switch memory.Map(addr) {
	case memory.RegionRAM:
		return b.RAM.Read(addr)
	case memory.RegionPagedROM:
		return b.PagedROM.Read(addr)
	case memory.RegionOSROM:
		return b.OSROM.Read(addr)
	case memory.RegionIO:
		return b.IO.Read(addr, b.Clock)
	default:
		return 0xFF
	}
}

// Write dispatches addr through the address map. Writes to ROM windows
// are silently discarded.
func (b *Bus) Write(addr word.Word, val uint8) {
	b.endPreviousCycle()
	b.write(addr.Uint16(), val)
}

func (b *Bus) write(addr uint16, val uint8) {
	switch memory.Map(addr) {
	case memory.RegionRAM:
		b.RAM.Write(addr, val)
	case memory.RegionPagedROM:
		b.PagedROM.Write(addr, val)
	case memory.RegionOSROM:
		b.OSROM.Write(addr, val)
	case memory.RegionIO:
		b.IO.Write(addr, val, b.Clock)
	}
}

// GetInterrupt reports whether any device bound to class is asserting
// its line, without consuming any additional bus cycle beyond what the
// surrounding memory access already ticked.
func (b *Bus) GetInterrupt(class irq.Class) bool {
	return b.IO.GetInterrupt(class, b.Clock)
}
