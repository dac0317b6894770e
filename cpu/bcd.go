package cpu

// adc implements ADC including decimal mode. This follows the real
// 6502's behavior rather than a cleaner reformulation: in decimal mode
// the Z flag comes from the plain binary sum, while N and V are taken
// from the BCD result before its high nibble is corrected back into
// range, and C reflects the decimal carry out. Do not simplify this.
func adc(r *Registers, m uint8) {
	a := r.A
	carryIn := uint8(0)
	if r.C {
		carryIn = 1
	}

	binSum := uint16(a) + uint16(m) + uint16(carryIn)
	r.Z = uint8(binSum) == 0

	if !r.D {
		result := uint8(binSum)
		r.V = (a^result)&(m^result)&0x80 != 0
		r.N = result&0x80 != 0
		r.C = binSum > 0xFF
		r.A = result
		return
	}

	al := (a & 0x0F) + (m & 0x0F) + carryIn
	if al > 9 {
		al = ((al + 6) & 0x0F) + 0x10
	}
	preCorrect := uint16(a&0xF0) + uint16(m&0xF0) + uint16(al)

	r.N = preCorrect&0x80 != 0
	r.V = (uint16(a&0x80) == uint16(m&0x80)) && (uint16(a&0x80) != preCorrect&0x80)

	if preCorrect >= 0xA0 {
		preCorrect += 0x60
	}
	r.C = preCorrect >= 0x100 || (a&0xF0)+(m&0xF0)+al >= 0xA0
	r.A = uint8(preCorrect)
}

// sbc implements SBC including decimal mode, mirroring adc's structure:
// borrow = 1 - C_in, and C_out = NOT(final borrow).
func sbc(r *Registers, m uint8) {
	a := r.A
	borrow := uint8(0)
	if !r.C {
		borrow = 1
	}

	binDiff := int16(a) - int16(m) - int16(borrow)
	result := uint8(binDiff)
	r.Z = result == 0
	r.V = (a^m)&(a^result)&0x80 != 0
	r.N = result&0x80 != 0
	r.C = binDiff >= 0

	if !r.D {
		r.A = result
		return
	}

	al := int16(a&0x0F) - int16(m&0x0F) - int16(borrow)
	if al < 0 {
		al = ((al - 6) & 0x0F) - 0x10
	}
	ah := int16(a&0xF0) - int16(m&0xF0) + al
	if ah < 0 {
		ah -= 0x60
	}
	r.A = uint8(ah)
}
