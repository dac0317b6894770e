package video

// CRTCDevice adapts VideoRegisters' 16 indexed registers to the
// two-address index/data I/O device protocol real CRTC chips use:
// writing the register index latches it, then writes to the data
// address go to whichever register was last selected. Per-register
// write masks follow the 6845 family's documented unused bits.
type CRTCDevice struct {
	Regs         *VideoRegisters
	selectedReg  uint8
}

var crtcWriteMask = [16]uint8{
	0: 0xFF, 1: 0xFF, 2: 0xFF, 3: 0xFF,
	4: 0x7F, 5: 0x1F, 6: 0x7F, 7: 0x7F,
	8: 0xFF, 9: 0x1F, 10: 0x7F, 11: 0x1F,
	12: 0x3F, 13: 0xFF, 14: 0x3F, 15: 0xFF,
}

// Read models the 6845's write-only register file: the index address
// never reads back, and of the data registers only the cursor address
// (R14/R15) is readable - every other register reads as 0.
func (c *CRTCDevice) Read(addr uint16, cycle uint64) uint8 {
	if addr&1 == 0 {
		return 0
	}
	switch c.selectedReg {
	case 14:
		return c.Regs.CRTCR14CursorH
	case 15:
		return c.Regs.CRTCR15CursorL
	default:
		return 0
	}
}

func (c *CRTCDevice) Write(addr uint16, val uint8, cycle uint64) bool {
	if addr&1 == 0 {
		c.selectedReg = val & 0x1F
		return false
	}
	c.writeRegister(c.selectedReg, val)
	return false
}

func (c *CRTCDevice) writeRegister(reg uint8, val uint8) {
	if int(reg) >= len(crtcWriteMask) {
		return
	}
	val &= crtcWriteMask[reg]
	switch reg {
	case 0:
		c.Regs.CRTCR0HorizontalTotal = val
	case 1:
		c.Regs.CRTCR1HorizontalDisplayed = val
	case 2:
		c.Regs.CRTCR2HorizontalSyncPosition = val
	case 3:
		c.Regs.CRTCR3SyncWidth = val
	case 4:
		c.Regs.CRTCR4VerticalTotal = val
	case 5:
		c.Regs.CRTCR5VerticalTotalAdjust = val
	case 6:
		c.Regs.CRTCR6VerticalDisplayed = val
	case 7:
		c.Regs.CRTCR7VerticalSyncPosition = val
	case 8:
		c.Regs.CRTCR8InterlaceAndSkew = val
	case 9:
		c.Regs.CRTCR9MaximumRasterAddress = val
	case 10:
		c.Regs.CRTCR10CursorStartRaster = val
	case 11:
		c.Regs.CRTCR11CursorEndRaster = val
	case 12:
		c.Regs.CRTCR12StartAddressH = val
	case 13:
		c.Regs.CRTCR13StartAddressL = val
	case 14:
		c.Regs.CRTCR14CursorH = val
	case 15:
		c.Regs.CRTCR15CursorL = val
	}
}

func (c *CRTCDevice) Phase2(addr uint16, val uint8, cycle uint64) {}
func (c *CRTCDevice) GetInterrupt(cycle uint64) bool              { return false }

// ULADevice adapts the ULA control register and 16-entry palette to the
// two-address control/palette write protocol: the first address sets the
// mode-control byte, the second loads one palette entry, selected by the
// top nibble of the written value and set to the bottom nibble's colour.
type ULADevice struct {
	Regs *VideoRegisters
}

func (u *ULADevice) Read(addr uint16, cycle uint64) uint8 { return 0xFF }

func (u *ULADevice) Write(addr uint16, val uint8, cycle uint64) bool {
	if addr&1 == 0 {
		u.Regs.ULAControl = val
		return false
	}
	entry := (val & 0xF0) >> 4
	u.Regs.SetULAPalette(entry, val)
	return false
}

func (u *ULADevice) Phase2(addr uint16, val uint8, cycle uint64) {}
func (u *ULADevice) GetInterrupt(cycle uint64) bool              { return false }
