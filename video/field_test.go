package video

import (
	"encoding/binary"
	"testing"
)

func sequentialBuffer(n int) []uint8 {
	buf := make([]uint8, n)
	for i := range buf {
		buf[i] = uint8(i)
	}
	return buf
}

func TestSnapshotScanlineTeletextCursorVisible(t *testing.T) {
	var v VideoRegisters
	v.Reset()
	v.ULAControl |= 0x02 // teletext mode
	v.CRTCR1HorizontalDisplayed = 10
	v.CRTCR10CursorStartRaster = 0x00 // start=0, blink=solid
	v.CRTCR11CursorEndRaster = 0x07   // end=7
	v.CRTCR14CursorH = 0x20
	v.CRTCR15CursorL = 0x00 // cursor address = 0x2000, equal to crtcMemoryAddress below

	var f Field
	getBuffer := func(r Range) []uint8 { return sequentialBuffer(int(r.End - r.Start)) }
	f.SnapshotScanline(0, 0x2000, 0, 1, 0, 0, &v, getBuffer)

	line := &f.Lines[0]
	if line.Flags&FlagDisplayed == 0 || line.Flags&FlagHasBytes == 0 {
		t.Fatalf("Flags = %#02b, want displayed and has-bytes set", line.Flags)
	}
	if line.Flags&FlagCursorRasterEven == 0 {
		t.Errorf("FlagCursorRasterEven not set, cursor should be visible on even raster 0")
	}
	if line.Flags&FlagCursorRasterOdd == 0 {
		t.Errorf("FlagCursorRasterOdd not set, odd raster 1 is inside the inclusive 0..7 start/end range")
	}
	if line.CursorChar != 0 {
		t.Errorf("CursorChar = %d, want 0 (delay 0 + relative address 0)", line.CursorChar)
	}
	for i := 0; i < 10; i++ {
		if line.CharData[i] != uint8(i) {
			t.Errorf("CharData[%d] = %d, want %d", i, line.CharData[i], i)
		}
	}
}

func TestSnapshotScanlineCursorHiddenByDelay(t *testing.T) {
	var v VideoRegisters
	v.Reset()
	v.ULAControl |= 0x02
	v.CRTCR1HorizontalDisplayed = 10
	v.CRTCR10CursorStartRaster = 0x00
	v.CRTCR11CursorEndRaster = 0x07
	v.CRTCR8InterlaceAndSkew = 0xC0 // cursor delay = 3, hidden regardless of blink
	v.CRTCR14CursorH = 0x20
	v.CRTCR15CursorL = 0x00

	var f Field
	getBuffer := func(r Range) []uint8 { return sequentialBuffer(int(r.End - r.Start)) }
	f.SnapshotScanline(0, 0x2000, 0, 1, 0, 0, &v, getBuffer)

	line := &f.Lines[0]
	if line.Flags&(FlagCursorRasterEven|FlagCursorRasterOdd) != 0 {
		t.Errorf("cursor flags set = %#02b, want none: R8CursorDelayHidden should suppress the cursor", line.Flags)
	}
}

func TestCursorBlinkModes(t *testing.T) {
	tests := []struct {
		name         string
		mode         uint8 // CRTCR10 bits 5-6
		fieldCounter uint8
		wantVisible  bool
	}{
		{"solid always visible", 0x00, 0x00, true},
		{"hidden never visible", 0x20, 0xFF, false},
		{"fast visible on bit3", 0x40, 0x08, true},
		{"fast hidden off bit3", 0x40, 0x00, false},
		{"slow visible on bit4", 0x60, 0x10, true},
		{"slow hidden off bit4", 0x60, 0x00, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var v VideoRegisters
			v.Reset()
			v.ULAControl |= 0x02
			v.CRTCR1HorizontalDisplayed = 10
			v.CRTCR10CursorStartRaster = tc.mode
			v.CRTCR11CursorEndRaster = 0x07
			v.CRTCR14CursorH = 0x20
			v.CRTCR15CursorL = 0x00

			var f Field
			getBuffer := func(r Range) []uint8 { return sequentialBuffer(int(r.End - r.Start)) }
			f.SnapshotScanline(0, 0x2000, 0, 1, 0, tc.fieldCounter, &v, getBuffer)

			got := f.Lines[0].Flags&FlagCursorRasterEven != 0
			if got != tc.wantVisible {
				t.Errorf("cursor visible = %v, want %v", got, tc.wantVisible)
			}
		})
	}
}

func TestSnapshotScanlineBackPorch(t *testing.T) {
	var v VideoRegisters
	v.Reset() // R0=0x7F, R2=0x62, R3=0x28 -> total=128, syncEnd=98+8=106, backporch=22

	var f Field
	getBuffer := func(r Range) []uint8 { return sequentialBuffer(int(r.End - r.Start)) }
	f.SnapshotScanline(0, 0x0000, 0, 1, 0, 0, &v, getBuffer)

	if got := f.Lines[0].BackPorch; got != 22 {
		t.Errorf("BackPorch = %d, want 22", got)
	}
}

func TestSnapshotScanlineHiresStride8Extraction(t *testing.T) {
	var v VideoRegisters
	v.Reset() // hires mode by default (ULAControl bit 0x02 clear)
	v.CRTCR1HorizontalDisplayed = 2

	var f Field
	getBuffer := func(r Range) []uint8 { return sequentialBuffer(int(r.End - r.Start)) }
	// crtcRasterAddressEven=3 selects byte 3 of each 8-byte character cell.
	f.SnapshotScanline(0, 0x0000, 3, 4, 0, 0, &v, getBuffer)

	line := &f.Lines[0]
	if line.Flags&FlagHasBytes == 0 {
		t.Fatal("FlagHasBytes not set")
	}
	if line.CharData[0] != 3 || line.CharData[1] != 11 {
		t.Errorf("CharData[0:2] = %d,%d, want 3,11 (raster row 3 of each 8-byte cell)", line.CharData[0], line.CharData[1])
	}
}

func TestSnapshotScanlineHiresSkippedWhenRasterPastCell(t *testing.T) {
	var v VideoRegisters
	v.Reset()
	v.CRTCR1HorizontalDisplayed = 2

	var f Field
	calls := 0
	getBuffer := func(r Range) []uint8 {
		calls++
		return sequentialBuffer(int(r.End - r.Start))
	}
	// crtcRasterAddressEven >= 8 means this physical scanline carries no
	// hires data (only 8 raster rows exist per character row).
	f.SnapshotScanline(0, 0x0000, 8, 9, 0, 0, &v, getBuffer)

	if calls != 0 {
		t.Errorf("getBuffer called %d times, want 0 when raster >= 8", calls)
	}
	if f.Lines[0].Flags&FlagHasBytes != 0 {
		t.Errorf("FlagHasBytes set, want unset when no raster data is collected")
	}
}

func TestFieldLineSerializeLayout(t *testing.T) {
	var line FieldLine
	line.Flags = 0xAB
	line.CharData[0] = 0x11
	line.CharData[1] = 0x22
	line.CharData[maxChars-1] = 0x33
	line.CRTCR1HorizontalDisplayed = 0x50
	line.BackPorch = 0x16
	line.ULAControl = 0x9C
	line.ULAPalette = 0x0123456789ABCDEF
	line.CursorChar = 0x07

	dst := make([]uint8, fieldLineByteSize)
	n := line.Serialize(dst)
	if n != fieldLineByteSize {
		t.Fatalf("Serialize returned %d, want %d", n, fieldLineByteSize)
	}

	if dst[0] != 0xAB {
		t.Errorf("dst[0] (Flags) = %#02x, want 0xAB", dst[0])
	}
	if dst[1] != 0x11 || dst[2] != 0x22 || dst[1+maxChars-1] != 0x33 {
		t.Errorf("CharData region mismatch: %#02x %#02x %#02x", dst[1], dst[2], dst[1+maxChars-1])
	}
	crtcR1Offset := 1 + maxChars
	if dst[crtcR1Offset] != 0x50 {
		t.Errorf("dst[%d] (CRTCR1) = %#02x, want 0x50", crtcR1Offset, dst[crtcR1Offset])
	}
	if dst[crtcR1Offset+1] != 0x16 {
		t.Errorf("dst[%d] (BackPorch) = %#02x, want 0x16", crtcR1Offset+1, dst[crtcR1Offset+1])
	}
	if dst[crtcR1Offset+2] != 0x9C {
		t.Errorf("dst[%d] (ULAControl) = %#02x, want 0x9C", crtcR1Offset+2, dst[crtcR1Offset+2])
	}
	paletteOffset := crtcR1Offset + 3
	if got := binary.LittleEndian.Uint64(dst[paletteOffset:]); got != 0x0123456789ABCDEF {
		t.Errorf("palette bytes = %#016x, want 0x0123456789abcdef", got)
	}
	if dst[paletteOffset+8] != 0x07 {
		t.Errorf("dst[%d] (CursorChar) = %#02x, want 0x07", paletteOffset+8, dst[paletteOffset+8])
	}
}

func TestFieldClear(t *testing.T) {
	var f Field
	f.Lines[5].Flags = FlagDisplayed | FlagHasBytes
	f.Clear()
	if f.Lines[5].Flags != 0 {
		t.Errorf("Flags after Clear = %#02b, want 0", f.Lines[5].Flags)
	}
}

func TestSetBlankLine(t *testing.T) {
	var f Field
	f.SetBlankLine(3)
	if f.Lines[3].Flags&FlagDisplayed == 0 {
		t.Errorf("FlagDisplayed not set after SetBlankLine")
	}
	if f.Lines[3].Flags&FlagHasBytes != 0 {
		t.Errorf("FlagHasBytes set, want unset for a blank line")
	}
}
