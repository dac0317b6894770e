// Package system wires word, memory, irq, clock, io, bus, cpu and video
// into the single machine the outer host drives: it is the only package
// that imports all of them, and it is the only surface a host needs.
package system

import (
	"fmt"

	"github.com/jmchacon/beebcore/bus"
	"github.com/jmchacon/beebcore/clock"
	"github.com/jmchacon/beebcore/cpu"
	"github.com/jmchacon/beebcore/io"
	"github.com/jmchacon/beebcore/irq"
	"github.com/jmchacon/beebcore/memory"
	"github.com/jmchacon/beebcore/video"
)

const (
	osROMBank       = memory.NumBanks
	romSelectAddr   = 0xFE30
	latchAddr       = 0xFE40
	crtcSelectAddr  = 0xFE00
	crtcDataAddr    = 0xFE01
	ulaControlAddr  = 0xFE20
	ulaPaletteAddr  = 0xFE21
)

// System is the whole machine: CPU, address map, I/O registry and video
// register file, plus the handful of glue devices (ROM select, IC32
// latch) a host never needs direct access to.
type System struct {
	CPU   *cpu.CPU
	Clock *clock.Clock
	Bus   *bus.Bus

	timers   *clock.TimerDeviceList
	ram      *memory.RAM
	pagedROM *memory.PagedROM
	osROM    *memory.ROM
	ioSpace  *io.Space

	Video     *video.VideoRegisters
	field     video.Field
	latch     *addressableLatch
	crtc      *CRTCDeviceAlias
}

// CRTCDeviceAlias is exported so a host can reach the concrete device if
// it wants to drive it directly (e.g. from a test harness); normal use
// goes through AddIODevice/Bus.
type CRTCDeviceAlias = video.CRTCDevice

// New returns a System with fresh defaults: RAM zeroed, paged ROM banks
// empty, CPU registers zeroed. The CPU's pc is uninitialized until Reset
// loads it from the reset vector.
func New() *System {
	ram := memory.NewRAM()
	pagedROM := memory.NewPagedROM(0x8000)
	osROM, _ := memory.NewROM(0xC000, make([]uint8, memory.BankSize))
	ioSpace := io.NewSpace()
	timers := clock.NewTimerDeviceList()
	c := clock.New(timers)
	b := bus.New(c, ram, pagedROM, osROM, ioSpace)

	s := &System{
		CPU:      cpu.New(cpu.Config{}),
		Clock:    c,
		Bus:      b,
		timers:   timers,
		ram:      ram,
		pagedROM: pagedROM,
		osROM:    osROM,
		ioSpace:  ioSpace,
		Video:    &video.VideoRegisters{},
		latch:    &addressableLatch{},
	}
	s.Video.Reset()

	crtcDev := &video.CRTCDevice{Regs: s.Video}
	s.crtc = crtcDev
	ulaDev := &video.ULADevice{Regs: s.Video}

	ioSpace.AddDevice([]uint16{romSelectAddr}, &romSelect{rom: pagedROM}, irq.IRQ, io.OneMHz)
	ioSpace.AddDevice([]uint16{latchAddr}, s.latch, irq.IRQ, io.OneMHz)
	ioSpace.AddDevice([]uint16{crtcSelectAddr, crtcDataAddr}, crtcDev, irq.IRQ, io.OneMHz)
	ioSpace.AddDevice([]uint16{ulaControlAddr, ulaPaletteAddr}, ulaDev, irq.IRQ, io.OneMHz)

	return s
}

// LoadROM installs bytes into a paged ROM bank (0..15) or the OS ROM
// (bank 16). bytes must be exactly memory.BankSize long.
func (s *System) LoadROM(bank int, bytes []uint8) error {
	if bank == osROMBank {
		return s.osROM.Load(bytes)
	}
	return s.pagedROM.LoadBank(bank, bytes)
}

// AddIODevice registers dev at addrs with the given interrupt class and
// bus speed, returning its stable device id.
func (s *System) AddIODevice(addrs []uint16, dev io.Device, class irq.Class, speed io.Speed) int {
	return s.ioSpace.AddDevice(addrs, dev, class, speed)
}

// AddTimerDevice registers a clock-driven timer device, returning its
// stable index within the timer list.
func (s *System) AddTimerDevice(dev clock.TimerDevice) int {
	return s.timers.Add(dev)
}

// SetDeviceInterrupt forces the named I/O device's interrupt latch.
func (s *System) SetDeviceInterrupt(id int, asserted bool) {
	s.ioSpace.SetInterrupt(id, asserted)
}

// SetDeviceTrigger sets or clears (via nil) the next cycle at which timer
// index should be synced.
func (s *System) SetDeviceTrigger(timerID int, cycle *uint64) {
	s.timers.SetTrigger(timerID, cycle)
}

// Reset restores the CPU's power-on register state (see cpu.CPU.PowerOn)
// and then runs the hardware reset sequence.
func (s *System) Reset() {
	s.CPU.PowerOn()
	s.CPU.Reset(s.Bus)
}

// Run executes instructions until the clock reaches untilCycle or later,
// returning the actual cycle count reached. A fatal opcode/interrupt
// error aborts the run immediately; the caller decides whether to panic.
func (s *System) Run(untilCycle uint64) (uint64, error) {
	for s.Clock.Cycles() < untilCycle {
		if err := s.CPU.HandleNextInstruction(s.Bus); err != nil {
			return s.Clock.Cycles(), fmt.Errorf("run aborted at cycle %d: %w", s.Clock.Cycles(), err)
		}
	}
	return s.Clock.Cycles(), nil
}

// SnapshotScanline samples current video state for one scanline into the
// packed Field the host reads directly.
func (s *System) SnapshotScanline(lineIndex int, crtcMemoryAddress uint16, crtcRasterAddressEven, crtcRasterAddressOdd uint8, fieldCounter uint8) {
	s.field.SnapshotScanline(
		lineIndex,
		crtcMemoryAddress,
		crtcRasterAddressEven, crtcRasterAddressOdd,
		s.latch.screenBase(),
		fieldCounter,
		s.Video,
		s.readBuffer,
	)
}

func (s *System) readBuffer(r video.Range) []uint8 {
	out := make([]uint8, r.End-r.Start)
	for i := range out {
		out[i] = s.ram.Read(r.Start + uint16(i))
	}
	return out
}

// VideoFieldPointer returns the packed Field for direct host reads.
func (s *System) VideoFieldPointer() *video.Field { return &s.field }

// VideoFieldSize returns the byte size of one serialized FieldLine.
func (s *System) VideoFieldSize() int {
	var line video.FieldLine
	buf := make([]uint8, 256)
	return line.Serialize(buf)
}

// CRTC exposes the CRTC device for hosts that want to drive register
// writes directly (e.g. test harnesses bypassing the I/O address map).
func (s *System) CRTC() *video.CRTCDevice { return s.crtc }
