package cpu

import "fmt"

// InvalidOpcodeError reports a byte fetched as an opcode with no decode
// table entry.
type InvalidOpcodeError struct {
	Opcode uint8
}

func (e InvalidOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode: %#02x", e.Opcode)
}

// UntestedOpcodeError reports a decode-table hit on an opcode whose
// semantics are implemented but gated behind Config.AllowUntestedInWild
// because the behavior has not been validated against hardware.
type UntestedOpcodeError struct {
	Opcode uint8
}

func (e UntestedOpcodeError) Error() string {
	return fmt.Sprintf("opcode %#02x is implemented but untested; set Config.AllowUntestedInWild to run it anyway", e.Opcode)
}

// InvalidCPUState reports an internal consistency failure, mirroring the
// spirit of the original chip's invariant-violation aborts.
type InvalidCPUState struct {
	Reason string
}

func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}
