package io

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/jmchacon/beebcore/clock"
	"github.com/jmchacon/beebcore/irq"
)

type fakeDevice struct {
	readAt  uint64
	readVal uint8
}

func (f *fakeDevice) Read(addr uint16, cycle uint64) uint8 {
	f.readAt = cycle
	return f.readVal
}
func (f *fakeDevice) Write(addr uint16, val uint8, cycle uint64) bool { return false }
func (f *fakeDevice) Phase2(addr uint16, val uint8, cycle uint64)     {}
func (f *fakeDevice) GetInterrupt(cycle uint64) bool                  { return false }

// advanceTo ticks c until it reaches cycle, for tests that need a
// specific starting parity.
func advanceTo(c *clock.Clock, cycle uint64) {
	for c.Cycles() < cycle {
		c.Inc()
	}
}

func TestTwoMHzReadDoesNotTickClock(t *testing.T) {
	s := NewSpace()
	dev := &fakeDevice{readVal: 0x42}
	s.AddDevice([]uint16{0xFE00}, dev, irq.IRQ, TwoMHz)

	c := clock.New(nil)
	advanceTo(c, 1000)

	got := s.Read(0xFE00, c)
	if got != 0x42 {
		t.Errorf("Read() = %#x, want 0x42", got)
	}
	if c.Cycles() != 1000 {
		t.Errorf("cycles after 2MHz read = %d, want unchanged 1000\n%s", c.Cycles(), spew.Sdump(c))
	}
	if dev.readAt != 1000 {
		t.Errorf("device saw cycle %d, want 1000", dev.readAt)
	}
}

func TestOneMHzReadStallsToEvenCycle(t *testing.T) {
	s := NewSpace()
	dev := &fakeDevice{readVal: 0x7F}
	s.AddDevice([]uint16{0xFE00}, dev, irq.IRQ, OneMHz)

	c := clock.New(nil)
	advanceTo(c, 1001)

	got := s.Read(0xFE00, c)
	if got != 0x7F {
		t.Errorf("Read() = %#x, want 0x7F", got)
	}
	if dev.readAt != 1002 {
		t.Errorf("device saw cycle %d, want 1002", dev.readAt)
	}
	if c.Cycles() != 1003 {
		t.Errorf("cycles after 1MHz read from odd start = %d, want 1003", c.Cycles())
	}
}

func TestUnmappedAddressReadsFF(t *testing.T) {
	s := NewSpace()
	c := clock.New(nil)
	if got := s.Read(0xFE20, c); got != 0xFF {
		t.Errorf("Read(unmapped) = %#x, want 0xFF", got)
	}
	if c.Cycles() != 0 {
		t.Errorf("unmapped read touched clock: cycles=%d", c.Cycles())
	}
}

type interruptDevice struct{ raised bool }

func (d *interruptDevice) Read(addr uint16, cycle uint64) uint8     { return 0 }
func (d *interruptDevice) Write(addr uint16, v uint8, c uint64) bool { return false }
func (d *interruptDevice) Phase2(addr uint16, v uint8, c uint64)     {}
func (d *interruptDevice) GetInterrupt(cycle uint64) bool            { return d.raised }

func TestGetInterruptAggregatesByClass(t *testing.T) {
	s := NewSpace()
	d1 := &interruptDevice{raised: false}
	d2 := &interruptDevice{raised: true}
	s.AddDevice([]uint16{0xFE00}, d1, irq.IRQ, TwoMHz)
	s.AddDevice([]uint16{0xFE01}, d2, irq.IRQ, TwoMHz)

	c := clock.New(nil)
	if !s.GetInterrupt(irq.IRQ, c) {
		t.Errorf("GetInterrupt(IRQ) = false, want true")
	}
	if s.GetInterrupt(irq.NMI, c) {
		t.Errorf("GetInterrupt(NMI) = true, want false (no NMI devices registered)")
	}
}
