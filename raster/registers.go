package raster

import "github.com/bdwalton/dsrender/fixed"

func rgb555ToRGBA6(v uint32, alpha5 int64) fixed.RGBA6 {
	r5 := int64(v & 0x1F)
	g5 := int64((v >> 5) & 0x1F)
	b5 := int64((v >> 10) & 0x1F)
	return fixed.PackRGBA6(fixed.RGBA5To6(r5), fixed.RGBA5To6(g5), fixed.RGBA5To6(b5), fixed.RGBA5To6(alpha5))
}

// WriteDisp3DCnt applies a masked write to disp_3d_cnt. Bits 12 and 13 are
// sticky error flags: writing a 1 to either acknowledges (clears) it
// before the masked write is applied, rather than setting it.
func (s *State) WriteDisp3DCnt(mask, value uint16) {
	for _, bit := range [2]uint16{1 << 12, 1 << 13} {
		if value&bit != 0 {
			s.Disp3DCnt &^= bit
		}
	}
	mask &= 0x4FFF
	s.Disp3DCnt = (s.Disp3DCnt &^ mask) | (value & mask)
}

// WriteClearColor applies a masked write to clear_color. The register
// packs a 15-bit RGB555 value in bits 0-14 and a 5-bit alpha in bits
// 16-20; both are expanded to RGBA6 and stored pre-decoded since every
// cleared pixel reads it back verbatim.
func (s *State) WriteClearColor(mask, value uint32) {
	masked := value & mask
	packed := ((masked & 0x001F0000) >> 1) | (masked & 0x00007FFF)
	r5 := int64(packed & 0x1F)
	g5 := int64((packed >> 5) & 0x1F)
	b5 := int64((packed >> 10) & 0x1F)
	a5 := int64((packed >> 15) & 0x1F)
	s.ClearColor = uint32(fixed.PackRGBA6(fixed.RGBA5To6(r5), fixed.RGBA5To6(g5), fixed.RGBA5To6(b5), fixed.RGBA5To6(a5)))
}

// WriteClearDepth applies a masked write to clear_depth, expanding the
// 15-bit register value to the 24-bit depth buffer's range.
func (s *State) WriteClearDepth(mask, value uint16) {
	v := int64(value) & int64(mask)
	s.ClearDepth = v*0x200 + ((v+1)/0x8000)*0x1FF
}

// WriteToonTable applies a masked write to one of the 32 toon table
// entries.
func (s *State) WriteToonTable(index int, mask, value uint16) {
	if index < 0 || index >= len(s.ToonTable) {
		return
	}
	mask &= 0x7FFF
	s.ToonTable[index] = rgb555ToRGBA6(uint32(value&mask), 0)
}
