// Package texel implements the texture unit: S/T coordinate wrap/clamp/
// flip normalization and texel fetch/decode across the seven DS texture
// formats, including the 4x4 block-compressed format's per-tile palette
// indirection. Every decode path produces 5-bit-per-channel components
// which are expanded to RGBA6 once at the end (fixed.RGBA5To6), mirroring
// the teacher's address-space-switch style in its memory read paths
// generalized from byte lookups to texel decode.
package texel

import (
	"github.com/bdwalton/dsrender/fixed"
	"github.com/bdwalton/dsrender/geom"
	"github.com/bdwalton/dsrender/vram"
)

// NormalizeAxis applies the repeat/clamp/flip rule of spec §4.3 step 1 to
// a single axis coordinate.
func NormalizeAxis(coord, size int32, repeat, flip bool) int32 {
	if size <= 0 {
		return 0
	}
	if !repeat {
		if coord < 0 {
			return 0
		}
		if coord >= size {
			return size - 1
		}
		return coord
	}

	wraps := 0
	for coord < 0 {
		coord += size
		wraps++
	}
	for coord >= size {
		coord -= size
		wraps++
	}
	if flip && wraps%2 == 1 {
		coord = size - 1 - coord
	}
	return coord
}

// rgba5 is an undecoded, pre-expansion 5-bit-per-channel color, as held
// in palette VRAM and direct-format texel words.
type rgba5 struct {
	r, g, b, a int64
}

func (c rgba5) expand() fixed.RGBA6 {
	return fixed.PackRGBA6(
		fixed.RGBA5To6(c.r),
		fixed.RGBA5To6(c.g),
		fixed.RGBA5To6(c.b),
		fixed.RGBA5To6(c.a),
	)
}

var transparent = rgba5{}

func decodeRGB555(lo, hi byte) rgba5 {
	w := uint16(lo) | uint16(hi)<<8
	return rgba5{
		r: int64(w & 0x1F),
		g: int64((w >> 5) & 0x1F),
		b: int64((w >> 10) & 0x1F),
	}
}

func paletteColor(v *vram.View, addr uint32, alpha int64) rgba5 {
	b, ok := v.GetPalette(addr)
	if !ok || len(b) < 2 {
		return transparent
	}
	c := decodeRGB555(b[0], b[1])
	c.a = alpha
	return c
}

func lerpColor(c0, c1 rgba5, x, x2 int64) rgba5 {
	return rgba5{
		r: fixed.Lerp(c0.r, c1.r, 0, x, x2),
		g: fixed.Lerp(c0.g, c1.g, 0, x, x2),
		b: fixed.Lerp(c0.b, c1.b, 0, x, x2),
		a: 0x1F,
	}
}

// Sample normalizes (s, t) per p's wrap/flip settings, fetches and
// decodes the texel at that position according to p.TextureFmt, and
// returns it as an RGBA6 color. A polygon with TexNone, or a texture
// address that falls in an unmapped VRAM slot, samples as fully
// transparent.
func Sample(v *vram.View, p *geom.Polygon, s, t int32) fixed.RGBA6 {
	if p.TextureFmt == geom.TexNone {
		return transparent.expand()
	}

	s = NormalizeAxis(s, p.SizeS, p.RepeatS, p.FlipS)
	t = NormalizeAxis(t, p.SizeT, p.RepeatT, p.FlipT)

	var c rgba5
	switch p.TextureFmt {
	case geom.TexA3I5:
		c = decodeA3I5(v, p, s, t)
	case geom.Tex4Color:
		c = decodePaletted(v, p, s, t, 2)
	case geom.Tex16Color:
		c = decodePaletted(v, p, s, t, 4)
	case geom.Tex256Color:
		c = decodePaletted(v, p, s, t, 8)
	case geom.TexCompressed4x4:
		c = decodeCompressed4x4(v, p, s, t)
	case geom.TexA5I3:
		c = decodeA5I3(v, p, s, t)
	case geom.TexDirect:
		c = decodeDirect(v, p, s, t)
	default:
		c = transparent
	}
	return c.expand()
}

func decodeA3I5(v *vram.View, p *geom.Polygon, s, t int32) rgba5 {
	addr := p.TextureAddr + uint32(t*p.SizeS+s)
	buf, ok := v.GetTexture(addr)
	if !ok || len(buf) == 0 {
		return transparent
	}
	raw := buf[0]
	idx := raw & 0x1F
	alpha3 := int64(raw >> 5)
	alpha5 := alpha3*4 + alpha3/2

	return paletteColor(v, p.PaletteAddr+uint32(idx)*2, alpha5)
}

func decodePaletted(v *vram.View, p *geom.Polygon, s, t int32, bpp int) rgba5 {
	pixelIdx := int64(t)*int64(p.SizeS) + int64(s)
	bitPos := pixelIdx * int64(bpp)
	addr := p.TextureAddr + uint32(bitPos/8)
	shift := uint(bitPos % 8)

	buf, ok := v.GetTexture(addr)
	if !ok || len(buf) == 0 {
		return transparent
	}
	mask := byte(1<<uint(bpp) - 1)
	idx := (buf[0] >> shift) & mask

	if idx == 0 && p.Transparent0 {
		return transparent
	}
	return paletteColor(v, p.PaletteAddr+uint32(idx)*2, 0x1F)
}

func decodeCompressed4x4(v *vram.View, p *geom.Polygon, s, t int32) rgba5 {
	tile := (t/4)*(p.SizeS/4) + s/4
	idxAddr := p.TextureAddr + uint32(tile)*4 + uint32(t%4)
	idxBuf, ok := v.GetTexture(idxAddr)
	if !ok || len(idxBuf) == 0 {
		return transparent
	}
	subIdx := (idxBuf[0] >> uint((s%4)*2)) & 0x3

	palBaseAddr := uint32(0x20000) + (p.TextureAddr&0x1FFFF)/2
	if v.SlotIndex(p.TextureAddr) == 2 {
		palBaseAddr += 0x10000
	}
	pbBuf, ok := v.GetTexture(palBaseAddr)
	if !ok || len(pbBuf) < 2 {
		return transparent
	}
	palBase := uint16(pbBuf[0]) | uint16(pbBuf[1])<<8
	offset := uint32(palBase&0x3FFF) * 4
	mode := (palBase >> 14) & 0x3

	base := p.PaletteAddr + offset
	c0 := paletteColor(v, base, 0x1F)
	c1 := paletteColor(v, base+2, 0x1F)

	switch mode {
	case 0:
		switch subIdx {
		case 0:
			return c0
		case 1:
			return c1
		case 2:
			return paletteColor(v, base+4, 0x1F)
		default:
			return transparent
		}
	case 1:
		switch subIdx {
		case 0:
			return c0
		case 1:
			return c1
		case 2:
			return lerpColor(c0, c1, 1, 2)
		default:
			return transparent
		}
	case 2:
		switch subIdx {
		case 0:
			return c0
		case 1:
			return c1
		case 2:
			return paletteColor(v, base+4, 0x1F)
		default:
			return paletteColor(v, base+6, 0x1F)
		}
	default: // mode 3
		switch subIdx {
		case 0:
			return c0
		case 1:
			return c1
		case 2:
			return lerpColor(c0, c1, 3, 8)
		default:
			return lerpColor(c0, c1, 5, 8)
		}
	}
}

func decodeA5I3(v *vram.View, p *geom.Polygon, s, t int32) rgba5 {
	addr := p.TextureAddr + uint32(t*p.SizeS+s)
	buf, ok := v.GetTexture(addr)
	if !ok || len(buf) == 0 {
		return transparent
	}
	raw := buf[0]
	idx := raw & 0x07
	alpha5 := int64(raw >> 3)

	return paletteColor(v, p.PaletteAddr+uint32(idx)*2, alpha5)
}

func decodeDirect(v *vram.View, p *geom.Polygon, s, t int32) rgba5 {
	addr := p.TextureAddr + 2*uint32(t*p.SizeS+s)
	buf, ok := v.GetTexture(addr)
	if !ok || len(buf) < 2 {
		return transparent
	}
	c := decodeRGB555(buf[0], buf[1])
	if buf[1]&0x80 != 0 {
		c.a = 0x1F
	} else {
		c.a = 0
	}
	return c
}
