package video

// Range is a half-open [Start, End) linear RAM range.
type Range struct {
	Start, End uint16
}

// MemoryRanges is the result of a CRTC-to-linear-RAM translation: either
// one contiguous range, or two when the CRTC counter wraps mid-scanline.
type MemoryRanges struct {
	First  Range
	Second *Range
}

type translatedAddress struct {
	address uint16
	region  Range
}

func (t translatedAddress) offsetted(offset uint16) translatedAddress {
	return translatedAddress{address: t.address + offset, region: t.region}
}

// TranslateCRTCHiresRange converts a CRTC (start, length) pair plus the
// IC32 screen-base latch into one or two linear RAM ranges for a hires
// scanline. See https://beebwiki.mdfs.net/Address_translation.
func TranslateCRTCHiresRange(crtcStart uint16, crtcLength uint8, ic32Latch uint8) (MemoryRanges, bool) {
	start, ok := translateCRTCHiresAddress(crtcStart, ic32Latch)
	if !ok {
		return MemoryRanges{}, false
	}
	end, ok := translateCRTCHiresAddressEnd(crtcStart, crtcLength, ic32Latch)
	if !ok {
		return MemoryRanges{}, false
	}

	if start.region == end.region {
		return MemoryRanges{First: Range{Start: start.address, End: end.address}}, true
	}
	second := Range{Start: end.region.Start, End: end.address}
	return MemoryRanges{
		First:  Range{Start: start.address, End: start.region.End},
		Second: &second,
	}, true
}

func translateCRTCHiresAddressEnd(crtcAddress uint16, crtcLength uint8, ic32Latch uint8) (translatedAddress, bool) {
	t, ok := translateCRTCHiresAddress(crtcAddress+uint16(crtcLength)-1, ic32Latch)
	if !ok {
		return translatedAddress{}, false
	}
	return t.offsetted(8), true
}

func translateCRTCHiresAddress(crtcAddress uint16, ic32Latch uint8) (translatedAddress, bool) {
	// Screen base selector from IC32 latch bits 4-5.
	base := (ic32Latch >> 4) & 0x03
	a := crtcAddress & 0x3FFF

	var region Range
	var address uint16

	switch {
	case a < 0x1000:
		region, address = Range{0x0000, 0x8000}, crtcAddress<<3
	case base == 0b10 && a >= 0x1000 && a < 0x1A00:
		region, address = Range{0x3000, 0x8000}, (crtcAddress-0x0A00)<<3
	case base == 0b10 && a >= 0x1A00 && a < 0x2000:
		region, address = Range{0x0000, 0x3000}, (crtcAddress-0x1A00)<<3
	case base == 0b00 && a >= 0x1000 && a < 0x1800:
		region, address = Range{0x4000, 0x8000}, (crtcAddress-0x0800)<<3
	case base == 0b00 && a >= 0x1800 && a < 0x2000:
		region, address = Range{0x0000, 0x4000}, (crtcAddress-0x1800)<<3
	case base == 0b11 && a >= 0x1000 && a < 0x1500:
		region, address = Range{0x5800, 0x8000}, (crtcAddress-0x0500)<<3
	case base == 0b11 && a >= 0x1500 && a < 0x2000:
		region, address = Range{0x0000, 0x5800}, (crtcAddress-0x1500)<<3
	case base == 0b01 && a >= 0x1000 && a < 0x1400:
		region, address = Range{0x6000, 0x8000}, (crtcAddress-0x0400)<<3
	case base == 0b01 && a >= 0x1400 && a < 0x2000:
		region, address = Range{0x0000, 0x6000}, (crtcAddress-0x1400)<<3
	default:
		return translatedAddress{}, false
	}

	return translatedAddress{address: address, region: region}, true
}

// TranslateCRTCTeletextRange converts a CRTC (start, length) pair into
// one or two linear RAM ranges for a teletext scanline. Because the
// maximum displayed line length is well under the 1KB region size, a
// same-region wrap (end address less than start address) is reported as
// two ranges even though they share one region.
func TranslateCRTCTeletextRange(crtcStart uint16, crtcLength uint8) (MemoryRanges, bool) {
	start, ok := translateCRTCTeletextAddress(crtcStart)
	if !ok {
		return MemoryRanges{}, false
	}
	end, ok := translateCRTCTeletextAddressEnd(crtcStart, crtcLength)
	if !ok {
		return MemoryRanges{}, false
	}

	if start.region == end.region && start.address < end.address {
		return MemoryRanges{First: Range{Start: start.address, End: end.address}}, true
	}
	second := Range{Start: end.region.Start, End: end.address}
	return MemoryRanges{
		First:  Range{Start: start.address, End: start.region.End},
		Second: &second,
	}, true
}

func translateCRTCTeletextAddressEnd(crtcAddress uint16, crtcLength uint8) (translatedAddress, bool) {
	t, ok := translateCRTCTeletextAddress(crtcAddress + uint16(crtcLength) - 1)
	if !ok {
		return translatedAddress{}, false
	}
	return t.offsetted(1), true
}

func translateCRTCTeletextAddress(crtcAddress uint16) (translatedAddress, bool) {
	a := crtcAddress & 0x3FFF

	var region Range
	switch {
	case a >= 0x2000 && a < 0x2800, a >= 0x3000 && a < 0x3800:
		region = Range{0x3C00, 0x4000}
	case a >= 0x2800 && a < 0x3000, a >= 0x3800 && a < 0x4000:
		region = Range{0x7C00, 0x8000}
	default:
		return translatedAddress{}, false
	}

	address := region.Start + (a & 0x3FF)
	return translatedAddress{address: address, region: region}, true
}
