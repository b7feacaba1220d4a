package raster

import (
	"github.com/bdwalton/dsrender/fixed"
	"github.com/bdwalton/dsrender/geom"
)

// fullWhite is the implicit texel an untextured polygon combines
// against: opaque white makes Modulation a no-op and still lets
// Decal/Toon/Shadow polygons without a texture behave sanely.
var fullWhite = fixed.PackRGBA6(63, 63, 63, 63)

func modulate(a, b int64) int64 {
	return ((a+1)*(b+1) - 1) / 64
}

func clampAdd(a, b int64) int64 {
	v := a + b
	if v > 63 {
		v = 63
	}
	return v
}

// combine applies one of the four texture-combine modes to a fetched
// texel and the interpolated vertex color.
func combine(mode geom.CombineMode, texel, color fixed.RGBA6, toonTable [32]fixed.RGBA6, highlight bool) fixed.RGBA6 {
	switch mode {
	case geom.ModeDecal, geom.ModeShadow:
		at := texel.A()
		r := (texel.R()*at + color.R()*(63-at)) / 64
		g := (texel.G()*at + color.G()*(63-at)) / 64
		b := (texel.B()*at + color.B()*(63-at)) / 64
		return fixed.PackRGBA6(r, g, b, color.A())
	case geom.ModeToonHighlight:
		toon := toonTable[color.R()/2]
		r := modulate(texel.R(), toon.R())
		g := modulate(texel.G(), toon.G())
		b := modulate(texel.B(), toon.B())
		a := modulate(texel.A(), color.A())
		if highlight {
			r = clampAdd(r, toon.R())
			g = clampAdd(g, toon.G())
			b = clampAdd(b, toon.B())
		}
		return fixed.PackRGBA6(r, g, b, a)
	default: // geom.ModeModulation
		r := modulate(texel.R(), color.R())
		g := modulate(texel.G(), color.G())
		b := modulate(texel.B(), color.B())
		a := modulate(texel.A(), color.A())
		return fixed.PackRGBA6(r, g, b, a)
	}
}
