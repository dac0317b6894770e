// Package io implements the memory-mapped I/O device registry: an
// address-indexed set of devices with per-device bus speed, deferred
// phase-2 writes, and aggregated interrupt lines.
package io

import "github.com/jmchacon/beebcore/clock"
import "github.com/jmchacon/beebcore/irq"

// Speed is the bus speed a device is clocked at. 1-MHz devices stall
// reads/writes onto an even cycle and consume a tail cycle; 2-MHz devices
// do not.
type Speed int

const (
	TwoMHz Speed = iota
	OneMHz
)

// Device is a device bound to a set of addresses in the I/O window.
type Device interface {
	// Read returns the byte at addr as observed at the given cycle.
	Read(addr uint16, cycle uint64) uint8
	// Write stores val at addr as observed at the given cycle. It
	// returns true if the device needs a deferred Phase2 call before the
	// next bus cycle begins.
	Write(addr uint16, val uint8, cycle uint64) bool
	// Phase2 completes a deferred write. It is only called when Write
	// most recently returned true for this address.
	Phase2(addr uint16, val uint8, cycle uint64)
	// GetInterrupt reports whether the device is currently asserting its
	// bound interrupt class at the given cycle.
	GetInterrupt(cycle uint64) bool
}

type binding struct {
	device Device
	class  irq.Class
	speed  Speed
}

type pendingWrite struct {
	addr uint16
	val  uint8
}

// Space is the address-indexed device registry. Device ids are stable
// small integers assigned in registration order and never reused or
// removed.
type Space struct {
	bindings []binding
	addrToID map[uint16]int
	pending  *pendingWrite
	latched  map[int]bool
}

// NewSpace returns an empty device registry.
func NewSpace() *Space {
	return &Space{addrToID: make(map[uint16]int), latched: make(map[int]bool)}
}

// AddDevice registers dev at the given addresses with the given interrupt
// class and bus speed, returning its stable id.
func (s *Space) AddDevice(addrs []uint16, dev Device, class irq.Class, speed Speed) int {
	id := len(s.bindings)
	s.bindings = append(s.bindings, binding{device: dev, class: class, speed: speed})
	for _, a := range addrs {
		s.addrToID[a] = id
	}
	return id
}

// Read returns the byte at addr, shaping the clock according to the
// bound device's speed. An unmapped address reads 0xFF without touching
// the clock, matching real hardware's open bus behavior.
func (s *Space) Read(addr uint16, c *clock.Clock) uint8 {
	id, ok := s.addrToID[addr]
	if !ok {
		return 0xFF
	}
	b := s.bindings[id]
	if b.speed == OneMHz {
		c.OneMHzSync()
		val := b.device.Read(addr, c.Cycles())
		c.Inc()
		return val
	}
	return b.device.Read(addr, c.Cycles())
}

// Write stores val at addr, shaping the clock as Read does. If the
// device reports it needs a phase-2 completion, the write is recorded as
// pending and must be resolved via Phase2 before the next cycle begins.
// An unmapped address drops the write without touching the clock.
func (s *Space) Write(addr uint16, val uint8, c *clock.Clock) {
	id, ok := s.addrToID[addr]
	if !ok {
		return
	}
	b := s.bindings[id]
	var needsPhase2 bool
	if b.speed == OneMHz {
		c.OneMHzSync()
		needsPhase2 = b.device.Write(addr, val, c.Cycles())
		c.Inc()
	} else {
		needsPhase2 = b.device.Write(addr, val, c.Cycles())
	}
	if needsPhase2 {
		s.pending = &pendingWrite{addr: addr, val: val}
	}
}

// Phase2 resolves any pending deferred write. It must be called by the
// bus before starting the next cycle. It is a no-op if nothing is
// pending.
func (s *Space) Phase2(c *clock.Clock) {
	if s.pending == nil {
		return
	}
	p := s.pending
	s.pending = nil
	if id, ok := s.addrToID[p.addr]; ok {
		s.bindings[id].device.Phase2(p.addr, p.val, c.Cycles())
	}
}

// GetInterrupt returns true if any device bound to class reports an
// interrupt at the current cycle. Devices are scanned in id order and
// the scan stops at the first hit, a behavior some devices' tests
// observe directly.
func (s *Space) GetInterrupt(class irq.Class, c *clock.Clock) bool {
	for id, b := range s.bindings {
		if b.class != class {
			continue
		}
		if s.latched[id] {
			return true
		}
		if b.device.GetInterrupt(c.Cycles()) {
			return true
		}
	}
	return false
}

// SetInterrupt is a side door for the outer host to force a device's
// interrupt latch independent of GetInterrupt's polling of the device
// itself.
func (s *Space) SetInterrupt(id int, asserted bool) {
	s.latched[id] = asserted
}
