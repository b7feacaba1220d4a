package raster

import (
	"github.com/bdwalton/dsrender/fixed"
	"github.com/bdwalton/dsrender/geom"
	"github.com/bdwalton/dsrender/texel"
	"github.com/bdwalton/dsrender/vram"
)

const (
	maxW16 = 1<<15 - 1
	minW16 = -(1 << 15)
)

func outOfRange16(w int64) bool {
	return w > maxW16 || w < minW16
}

// normalizeW right-shifts all four vertex W's together, accumulating a
// shared shift, until each fits in 16 signed bits. The shift is later
// reapplied to w-buffered depth values so they stay comparable to
// z-buffered ones.
func normalizeW(w1, w2, w3, w4 int64) (nw1, nw2, nw3, nw4 int64, shift uint) {
	nw1, nw2, nw3, nw4 = w1, w2, w3, w4
	for outOfRange16(nw1) || outOfRange16(nw2) || outOfRange16(nw3) || outOfRange16(nw4) {
		nw1 >>= 4
		nw2 >>= 4
		nw3 >>= 4
		nw4 >>= 4
		shift += 4
	}
	return
}

// DrawPolygonScanline rasterizes polygon p's span on the given scanline
// into s, sampling texture data out of vmem. Callers are responsible for
// ordering (opaque pass before translucent pass) and for the tile/row
// clear calls that must happen before any polygon draws on a line.
func DrawPolygonScanline(s *State, vmem *vram.View, p *geom.Polygon, line int) {
	v1, v2, v3, v4, ok := SelectEdges(p, int32(line))
	if !ok {
		return
	}

	nw1, nw2, nw3, nw4, wShift := normalizeW(v1.W, v2.W, v3.W, v4.W)

	y1, y2 := int64(v1.Y), int64(v2.Y)
	y3, y4 := int64(v3.Y), int64(v4.Y)
	lineF := int64(line)

	x1 := fixed.Lerp(int64(v1.X), int64(v2.X), y1, lineF, y2)
	x2 := fixed.Lerp(int64(v3.X), int64(v4.X), y3, lineF, y4)
	if x2 <= x1 {
		return
	}

	var z1, z2 int64
	if !p.WBuffer {
		z1 = fixed.Lerp(int64(v1.Z), int64(v2.Z), y1, lineF, y2)
		z2 = fixed.Lerp(int64(v3.Z), int64(v4.Z), y3, lineF, y4)
	}
	w1 := fixed.InterpW(nw1, nw2, y1, lineF, y2)
	w2 := fixed.InterpW(nw3, nw4, y3, lineF, y4)

	c1 := fixed.ColorLerpPersp(fixed.RGBA6(v1.Color), fixed.RGBA6(v2.Color), y1, lineF, y2, nw1, nw2)
	c2 := fixed.ColorLerpPersp(fixed.RGBA6(v3.Color), fixed.RGBA6(v4.Color), y3, lineF, y4, nw3, nw4)

	textured := p.TextureFmt != geom.TexNone
	var s1, s2, t1, t2 int64
	if textured {
		s1 = fixed.LerpPersp(int64(v1.S), int64(v2.S), y1, lineF, y2, nw1, nw2)
		s2 = fixed.LerpPersp(int64(v3.S), int64(v4.S), y3, lineF, y4, nw3, nw4)
		t1 = fixed.LerpPersp(int64(v1.T), int64(v2.T), y1, lineF, y2, nw1, nw2)
		t2 = fixed.LerpPersp(int64(v3.T), int64(v4.T), y3, lineF, y4, nw3, nw4)
	}

	tileIdx := tileOf(line)
	depthRow := &s.Depth[tileIdx]
	stencilRow := &s.Stencil[tileIdx]
	attribRow := &s.Attrib[tileIdx]
	fbRow := &s.Framebuffer[line]

	xStart, xEnd := x1, x2
	if xStart < 0 {
		xStart = 0
	}
	if xEnd > ScreenWidth {
		xEnd = ScreenWidth
	}

	for x := xStart; x < xEnd; x++ {
		var depth int64
		if p.WBuffer {
			depth = fixed.InterpW(w1, w2, x1, x, x2) << wShift
		} else {
			depth = fixed.Lerp(z1, z2, x1, x, x2)
		}

		var pass bool
		if p.DepthTestEqual {
			pass = depthRow[x]-0x200 >= depth
		} else {
			pass = depthRow[x] > depth
		}
		if !pass {
			continue
		}

		if p.Mode == geom.ModeShadow {
			if p.ID == 0 {
				stencilRow[x] = true
				continue
			}
			if stencilRow[x] || attribRow[x] == p.ID {
				stencilRow[x] = false
				continue
			}
		}

		color := fixed.ColorLerpPersp(c1, c2, x1, x, x2, w1, w2)

		var texelColor fixed.RGBA6
		if textured {
			sCoord := int32(fixed.LerpPersp(s1, s2, x1, x, x2, w1, w2) >> 4)
			tCoord := int32(fixed.LerpPersp(t1, t2, x1, x, x2, w1, w2) >> 4)
			texelColor = texel.Sample(vmem, p, sCoord, tCoord)
		} else {
			texelColor = fullWhite
		}

		shaded := combine(p.Mode, texelColor, color, s.ToonTable, s.HighlightEnabled())
		if shaded.A() == 0 {
			continue
		}

		xi := int(x)
		existing := fbRow[xi]
		existingOpaque := (existing>>18)&0x3F != 0

		if shaded.A() < 0x3F && existingOpaque {
			existingColor := fixed.RGBA6(existing & 0xFFFFFF)
			blended := fixed.ColorLerp(existingColor, shaded, 0, shaded.A(), 63)
			fbRow[xi] = bit3DPixel | uint32(blended)
			if p.TransNewDepth {
				depthRow[xi] = depth
			}
		} else {
			fbRow[xi] = bit3DPixel | uint32(shaded)
			depthRow[xi] = depth
		}
		attribRow[xi] = p.ID
	}
}

// DrawScanline clears line's framebuffer row (and, if line is the first
// line of a tile, that tile's depth/stencil/attribute buffers) and then
// draws every polygon touching line in two passes, opaque first and
// translucent second, matching the hardware's per-scanline draw order.
func DrawScanline(s *State, vmem *vram.View, polys []*geom.Polygon, line int) {
	s.ClearTileBuffers(line)
	s.ClearScanlineRow(line)

	for _, p := range polys {
		if p.IsOpaquePass() {
			DrawPolygonScanline(s, vmem, p, line)
		}
	}
	for _, p := range polys {
		if !p.IsOpaquePass() {
			DrawPolygonScanline(s, vmem, p, line)
		}
	}
}
