package video

const maxChars = 100

// FieldLine flag bits.
const (
	FlagDisplayed              uint8 = 0b0000_0001
	FlagHasBytes               uint8 = 0b0000_0010
	FlagInvalidRange           uint8 = 0b0000_0100
	FlagInterlaceVideoAndSync  uint8 = 0b0000_1000
	FlagCursorRasterEven       uint8 = 0b0001_0000
	FlagCursorRasterOdd        uint8 = 0b0010_0000
)

// FieldLine is the host-readable, byte-packed snapshot of one scanline.
// Host code reads this layout directly (see Serialize), so field order
// and sizes here are part of the external ABI and must not change.
type FieldLine struct {
	Flags                    uint8
	CharData                 [maxChars]uint8
	CRTCR1HorizontalDisplayed uint8
	BackPorch                uint8
	ULAControl               uint8
	ULAPalette               uint64
	CursorChar               uint8
}

// Clear resets the line's flags, ready for the next field. CharData is
// left as-is; a line with FlagHasBytes unset is not read by the host.
func (f *FieldLine) Clear() {
	f.Flags = 0
}

func (f *FieldLine) setRegisters(v *VideoRegisters) {
	f.ULAControl = v.ULAControl
	f.ULAPalette = v.ULAPalette
	f.CRTCR1HorizontalDisplayed = v.CRTCR1HorizontalDisplayed
}

func (f *FieldLine) setCursor(crtcRasterEven, crtcRasterOdd, fieldCounter uint8, crtcMemoryAddress uint16, v *VideoRegisters) {
	start, end := v.CursorRasterRange()
	isEvenInRange := crtcRasterEven >= start && crtcRasterEven <= end
	isOddInRange := crtcRasterOdd >= start && crtcRasterOdd <= end

	if !isEvenInRange && !isOddInRange {
		return
	}
	if !cursorBlinkVisible(v.CursorBlinkMode(), fieldCounter) {
		return
	}

	delay := v.CursorDelay()
	if delay == R8CursorDelayHidden {
		return
	}

	cursorAddress := v.CursorAddress()
	if cursorAddress < crtcMemoryAddress {
		return
	}
	relAddress := cursorAddress - crtcMemoryAddress
	if relAddress >= uint16(v.CRTCR1HorizontalDisplayed) {
		return
	}

	f.CursorChar = delay + uint8(relAddress)
	if isEvenInRange {
		f.Flags |= FlagCursorRasterEven
	}
	if isOddInRange {
		f.Flags |= FlagCursorRasterOdd
	}
}

func cursorBlinkVisible(mode CursorBlinkMode, fieldCounter uint8) bool {
	switch mode {
	case CursorSolid:
		return true
	case CursorHidden:
		return false
	case CursorFast:
		return fieldCounter&0x08 != 0
	default: // CursorSlow
		return fieldCounter&0x10 != 0
	}
}

func (f *FieldLine) setBackPorch(v *VideoRegisters) {
	fullHorizontalTotal := uint16(v.CRTCR0HorizontalTotal) + 1
	hSyncWidth := v.HSyncWidth()
	if hSyncWidth == 0 {
		hSyncWidth = 1
	}
	hSyncEnd := uint16(v.CRTCR2HorizontalSyncPosition) + uint16(hSyncWidth)
	if hSyncEnd > fullHorizontalTotal {
		hSyncEnd = fullHorizontalTotal
	}
	f.BackPorch = uint8(fullHorizontalTotal - hSyncEnd)
}

func (f *FieldLine) updateInterlaceVideoAndSync(v *VideoRegisters) {
	if v.IsInterlaceSyncAndVideo() {
		f.Flags |= FlagInterlaceVideoAndSync
	}
}

func (f *FieldLine) setDisplayed()    { f.Flags |= FlagDisplayed }
func (f *FieldLine) setInvalidRange() { f.Flags |= FlagInvalidRange }

func (f *FieldLine) setCharData(first []uint8, second []uint8) {
	f.Flags |= FlagHasBytes
	n := copy(f.CharData[:], first)
	if second != nil {
		copy(f.CharData[n:], second)
	}
}

// setCharDataForRaster extracts one raster row out of each 8-byte
// character cell in first/second (stride-8 extraction): every scanline
// collects byte[rasterLine] of each 8-byte cell into a linear buffer so
// the host gets exactly the pixel row this scanline displays.
func (f *FieldLine) setCharDataForRaster(first, second []uint8, rasterLine uint8) {
	f.Flags |= FlagHasBytes
	n := copyIntoStride8(f.CharData[:], 0, first, rasterLine)
	if second != nil {
		copyIntoStride8(f.CharData[:], n, second, rasterLine)
	}
}

func copyIntoStride8(dest []uint8, destStart int, source []uint8, sourceOffset uint8) int {
	n := len(source) / 8
	for i := 0; i < n; i++ {
		dest[destStart+i] = source[i*8+int(sourceOffset)]
	}
	return destStart + n
}
