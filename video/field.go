package video

import "encoding/binary"

// MaxLines is the largest number of scanlines a Field can hold.
const MaxLines = 320

// Field is the packed, host-readable layout holding up to MaxLines
// scanlines. It is mutated only by SnapshotScanline/SetBlankLine in the
// outer host's step loop - never by the CPU path.
type Field struct {
	Lines [MaxLines]FieldLine
}

// Clear resets every line's flags.
func (f *Field) Clear() {
	for i := range f.Lines {
		f.Lines[i].Clear()
	}
}

// BufferFunc returns the backing RAM bytes for a linear address range,
// supplied by the host/system so this package never depends on the
// concrete RAM type.
type BufferFunc func(r Range) []uint8

// SnapshotScanline fills lineIndex from the current video state: CRTC
// metrics and cursor fields are always recorded, then either teletext
// character data or hires raster data is copied in, depending on the
// ULA's mode bit.
func (f *Field) SnapshotScanline(
	lineIndex int,
	crtcMemoryAddress uint16,
	crtcRasterAddressEven, crtcRasterAddressOdd uint8,
	ic32Latch uint8,
	fieldCounter uint8,
	v *VideoRegisters,
	getBuffer BufferFunc,
) {
	line := &f.Lines[lineIndex]

	line.setDisplayed()
	line.CRTCR1HorizontalDisplayed = v.CRTCR1HorizontalDisplayed
	line.setBackPorch(v)
	line.updateInterlaceVideoAndSync(v)
	line.setRegisters(v)
	line.setCursor(crtcRasterAddressEven, crtcRasterAddressOdd, fieldCounter, crtcMemoryAddress, v)

	if v.IsTeletext() {
		snapshotTeletextScanlineData(line, crtcMemoryAddress, v, getBuffer)
	} else {
		snapshotHiresScanlineRasterData(line, crtcMemoryAddress, crtcRasterAddressEven, ic32Latch, v, getBuffer)
	}
}

// SetBlankLine marks lineIndex as displayed with no character data, for
// scanlines outside the displayed raster range.
func (f *Field) SetBlankLine(lineIndex int) {
	f.Lines[lineIndex].setDisplayed()
}

func snapshotTeletextScanlineData(line *FieldLine, crtcMemoryAddress uint16, v *VideoRegisters, getBuffer BufferFunc) {
	crtcLength := v.CRTCR1HorizontalDisplayed
	if crtcLength == 0 {
		return
	}
	ranges, ok := TranslateCRTCTeletextRange(crtcMemoryAddress, crtcLength)
	if !ok {
		line.setInvalidRange()
		return
	}
	var second []uint8
	if ranges.Second != nil {
		second = getBuffer(*ranges.Second)
	}
	line.setCharData(getBuffer(ranges.First), second)
}

func snapshotHiresScanlineRasterData(line *FieldLine, crtcMemoryAddress uint16, crtcRasterAddressEven uint8, ic32Latch uint8, v *VideoRegisters, getBuffer BufferFunc) {
	crtcLength := v.CRTCR1HorizontalDisplayed
	if crtcLength == 0 || crtcRasterAddressEven >= 8 || v.IsCRTCScreenDelayNoOutput() {
		return
	}
	ranges, ok := TranslateCRTCHiresRange(crtcMemoryAddress, crtcLength, ic32Latch)
	if !ok {
		line.setInvalidRange()
		return
	}
	var second []uint8
	if ranges.Second != nil {
		second = getBuffer(*ranges.Second)
	}
	line.setCharDataForRaster(getBuffer(ranges.First), second, crtcRasterAddressEven)
}

// fieldLineByteSize is the number of bytes FieldLine.Serialize writes:
// flags(1) + char_data(100) + crtc_r1(1) + back_porch(1) + ula_control(1)
// + ula_palette(8) + cursor_char(1).
const fieldLineByteSize = 1 + maxChars + 1 + 1 + 1 + 8 + 1

// Serialize writes one FieldLine into dst using the documented external
// layout, for hosts whose language cannot read a Go struct's memory
// directly. dst must be at least fieldLineByteSize bytes.
func (f *FieldLine) Serialize(dst []uint8) int {
	i := 0
	dst[i] = f.Flags
	i++
	i += copy(dst[i:], f.CharData[:])
	dst[i] = f.CRTCR1HorizontalDisplayed
	i++
	dst[i] = f.BackPorch
	i++
	dst[i] = f.ULAControl
	i++
	binary.LittleEndian.PutUint64(dst[i:], f.ULAPalette)
	i += 8
	dst[i] = f.CursorChar
	i++
	return i
}
