// Package video implements the ULA/CRTC register file, the CRTC-address
// to linear-RAM translator, and the packed Field/FieldLine snapshot
// structure an outer host reads scanline-by-scanline.
package video

// VideoRegisters holds the ULA control byte, its 16-entry 4-bit packed
// palette, and the CRTC's 16 register bytes.
type VideoRegisters struct {
	ULAControl uint8
	ULAPalette uint64

	CRTCR0HorizontalTotal         uint8
	CRTCR1HorizontalDisplayed     uint8
	CRTCR2HorizontalSyncPosition  uint8
	CRTCR3SyncWidth               uint8
	CRTCR4VerticalTotal           uint8
	CRTCR5VerticalTotalAdjust     uint8
	CRTCR6VerticalDisplayed       uint8
	CRTCR7VerticalSyncPosition    uint8
	CRTCR8InterlaceAndSkew        uint8
	CRTCR9MaximumRasterAddress    uint8
	CRTCR10CursorStartRaster      uint8
	CRTCR11CursorEndRaster        uint8
	CRTCR12StartAddressH          uint8
	CRTCR13StartAddressL          uint8
	CRTCR14CursorH                uint8
	CRTCR15CursorL                uint8
}

// Reset restores the textual 40-column mode power-on defaults.
func (v *VideoRegisters) Reset() {
	v.ULAControl = 0x9C

	v.CRTCR0HorizontalTotal = 0x7F
	v.CRTCR1HorizontalDisplayed = 0x50
	v.CRTCR2HorizontalSyncPosition = 0x62
	v.CRTCR3SyncWidth = 0x28
	v.CRTCR4VerticalTotal = 0x26
	v.CRTCR5VerticalTotalAdjust = 0x00
	v.CRTCR6VerticalDisplayed = 0x20
	v.CRTCR7VerticalSyncPosition = 0x22
	v.CRTCR8InterlaceAndSkew = 0x00
	v.CRTCR9MaximumRasterAddress = 0x07
	v.CRTCR10CursorStartRaster = 0x00
	v.CRTCR11CursorEndRaster = 0x00
	v.CRTCR12StartAddressH = 0x06
	v.CRTCR13StartAddressL = 0x00
	v.CRTCR14CursorH = 0x00
	v.CRTCR15CursorL = 0x00
}

// SetULAPalette stores a 4-bit colour value into one of the 16 packed
// palette entries.
func (v *VideoRegisters) SetULAPalette(entry, value uint8) {
	shift := uint(entry) * 4
	v.ULAPalette &^= 0x0F << shift
	v.ULAPalette |= uint64(value&0x0F) << shift
}

// IsTeletext reports whether the ULA control byte selects teletext mode.
func (v *VideoRegisters) IsTeletext() bool {
	return v.ULAControl&0x02 != 0
}

// IsCRTCScreenDelayNoOutput reports the R8 "no display" skew setting.
func (v *VideoRegisters) IsCRTCScreenDelayNoOutput() bool {
	return v.CRTCR8InterlaceAndSkew&0x30 == 0x30
}

// IsInterlaceSyncAndVideo reports the R8 interlace-sync-and-video mode.
func (v *VideoRegisters) IsInterlaceSyncAndVideo() bool {
	return v.CRTCR8InterlaceAndSkew&0x03 == 0x03
}

// CursorBlinkMode identifies the four R10 cursor blink modes.
type CursorBlinkMode int

const (
	CursorSolid CursorBlinkMode = iota
	CursorHidden
	CursorFast
	CursorSlow
)

// R8CursorDelayHidden is the R8 cursor-delay value that hides the cursor
// entirely, independent of blink mode.
const R8CursorDelayHidden = 3

// CursorBlinkMode returns the blink mode selected by R10 bits 5-6.
func (v *VideoRegisters) CursorBlinkMode() CursorBlinkMode {
	switch v.CRTCR10CursorStartRaster & 0x60 {
	case 0x00:
		return CursorSolid
	case 0x20:
		return CursorHidden
	case 0x40:
		return CursorFast
	default:
		return CursorSlow
	}
}

// CursorRasterRange returns the inclusive [start, end] raster range R10/
// R11 mark as the cursor's visible rows.
func (v *VideoRegisters) CursorRasterRange() (start, end uint8) {
	return v.CRTCR10CursorStartRaster & 0x1F, v.CRTCR11CursorEndRaster
}

// CursorDelay returns the R8 cursor-delay field.
func (v *VideoRegisters) CursorDelay() uint8 {
	return (v.CRTCR8InterlaceAndSkew & 0xC0) >> 6
}

// CursorAddress returns the combined R14/R15 cursor address.
func (v *VideoRegisters) CursorAddress() uint16 {
	return uint16(v.CRTCR14CursorH)<<8 | uint16(v.CRTCR15CursorL)
}

// HSyncWidth returns R3's horizontal sync width nibble.
func (v *VideoRegisters) HSyncWidth() uint8 {
	return v.CRTCR3SyncWidth & 0x0F
}

// InvalidCRTCRegisterError reports a read of one of the four CRTC
// register indices GetRegister does not expose (12/13, the start
// address, have no read path in this core; 16/17 do not exist on this
// CRTC variant).
type InvalidCRTCRegisterError struct {
	Register uint8
}

func (e InvalidCRTCRegisterError) Error() string {
	return "crtc register not implemented for indexed read"
}

// GetRegister reads one CRTC register by its control-register index, for
// host introspection/testing. Registers 12, 13, 16 and 17 are not
// independently readable on this CRTC variant.
func (v *VideoRegisters) GetRegister(index uint8) (uint8, error) {
	switch index {
	case 0:
		return v.CRTCR0HorizontalTotal, nil
	case 1:
		return v.CRTCR1HorizontalDisplayed, nil
	case 2:
		return v.CRTCR2HorizontalSyncPosition, nil
	case 3:
		return v.CRTCR3SyncWidth, nil
	case 4:
		return v.CRTCR4VerticalTotal, nil
	case 5:
		return v.CRTCR5VerticalTotalAdjust, nil
	case 6:
		return v.CRTCR6VerticalDisplayed, nil
	case 7:
		return v.CRTCR7VerticalSyncPosition, nil
	case 8:
		return v.CRTCR8InterlaceAndSkew, nil
	case 9:
		return v.CRTCR9MaximumRasterAddress, nil
	case 10:
		return v.CRTCR10CursorStartRaster, nil
	case 11:
		return v.CRTCR11CursorEndRaster, nil
	case 14:
		return v.CRTCR14CursorH, nil
	case 15:
		return v.CRTCR15CursorL, nil
	default:
		return 0, InvalidCRTCRegisterError{Register: index}
	}
}
