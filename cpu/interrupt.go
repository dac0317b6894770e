package cpu

import "github.com/jmchacon/beebcore/irq"

// InterruptState tracks the two interrupt lines across the bus cycles
// where the CPU is allowed to sample them. NMI is edge-sensitive: once
// the line is seen to rise it stays "due" until serviced, regardless of
// what the line does afterward. IRQ is level-sensitive and gated by the
// I flag: it is due only while the line is held and I is clear at the
// moment of the most recent sample.
//
// The original source carries two independently-written copies of this
// logic (interrupt_due_state.rs, interrupt_state.rs); this keeps one, per
// the convention that the most complete variant is the intended design
// and the rest are transitional.
type InterruptState struct {
	previousNMI bool
	nmiDue      bool
	irqDue      bool
}

// Update samples the two interrupt lines. It must be called at every bus
// cycle tagged CheckInterrupt.
func (s *InterruptState) Update(nmiLine, irqLine, iFlag bool) {
	if nmiLine && !s.previousNMI {
		s.nmiDue = true
	}
	s.previousNMI = nmiLine
	s.irqDue = irqLine && !iFlag
}

// Pending reports the interrupt class to service next, if any. NMI always
// wins over IRQ when both are due.
func (s *InterruptState) Pending() (irq.Class, bool) {
	switch {
	case s.nmiDue:
		return irq.NMI, true
	case s.irqDue:
		return irq.IRQ, true
	default:
		return 0, false
	}
}

// Clear marks class as serviced.
func (s *InterruptState) Clear(class irq.Class) {
	switch class {
	case irq.NMI:
		s.nmiDue = false
	case irq.IRQ:
		s.irqDue = false
	}
}
