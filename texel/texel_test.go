package texel

import (
	"testing"

	"github.com/bdwalton/dsrender/geom"
	"github.com/bdwalton/dsrender/vram"
)

func TestNormalizeAxisClamp(t *testing.T) {
	cases := []struct {
		coord, size int32
		want        int32
	}{
		{-5, 8, 0},
		{100, 8, 7},
		{3, 8, 3},
	}
	for i, tc := range cases {
		if got := NormalizeAxis(tc.coord, tc.size, false, false); got != tc.want {
			t.Errorf("%d: Got %d, wanted %d", i, got, tc.want)
		}
	}
}

// TestNormalizeAxisWrapFlip exercises all 8 combinations of sign x wrap x
// flip from spec scenario 4 on a size-2 axis.
func TestNormalizeAxisWrapFlip(t *testing.T) {
	cases := []struct {
		coord       int32
		repeat      bool
		flip        bool
		want        int32
	}{
		{-1, true, true, 0},  // one wrap (odd) then flip: 2-1-1=0
		{-1, true, false, 1}, // one wrap, no flip: coord=1
		{3, true, true, 0},   // one wrap (3-2=1, odd) then flip: 2-1-1=0
		{3, true, false, 1},
		{-3, true, true, 1}, // two wraps (-3+2+2=1, even) no flip
		{-3, true, false, 1},
		{1, true, true, 1}, // zero wraps (even), no flip
		{1, true, false, 1},
	}
	for i, tc := range cases {
		if got := NormalizeAxis(tc.coord, 2, tc.repeat, tc.flip); got != tc.want {
			t.Errorf("%d: NormalizeAxis(%d): Got %d, wanted %d", i, tc.coord, got, tc.want)
		}
	}
}

func paletteBytes(colors ...[2]byte) []byte {
	buf := make([]byte, vram.PaletteSlotSize)
	for i, c := range colors {
		buf[i*2] = c[0]
		buf[i*2+1] = c[1]
	}
	return buf
}

func TestTransparent0(t *testing.T) {
	v := vram.New()
	tex := make([]byte, vram.TextureSlotSize)
	// 2x2, 4-color (2bpp): byte 0 holds 4 pixel indices, all zero.
	tex[0] = 0x00
	v.InstallTextureSlot(0, tex)
	v.InstallPaletteSlot(0, paletteBytes([2]byte{0xFF, 0x7F}))

	p := &geom.Polygon{
		TextureFmt:   geom.Tex4Color,
		SizeS:        2,
		SizeT:        2,
		Transparent0: true,
	}

	c := Sample(v, p, 0, 0)
	if c.A() != 0 {
		t.Errorf("transparent0 index 0: Got alpha %d, wanted 0", c.A())
	}
}

func TestDirectFormatAlphaIsBinary(t *testing.T) {
	v := vram.New()
	tex := make([]byte, vram.TextureSlotSize)
	// opaque direct texel at (0,0): bit15 set.
	tex[0], tex[1] = 0x1F, 0x80
	// transparent at (1,0).
	tex[2], tex[3] = 0x1F, 0x00
	v.InstallTextureSlot(0, tex)

	p := &geom.Polygon{TextureFmt: geom.TexDirect, SizeS: 2, SizeT: 1}

	opaque := Sample(v, p, 0, 0)
	if opaque.A() != 0x3F {
		t.Errorf("opaque direct texel: Got alpha %d, wanted 0x3F", opaque.A())
	}

	trans := Sample(v, p, 1, 0)
	if trans.A() != 0 {
		t.Errorf("transparent direct texel: Got alpha %d, wanted 0", trans.A())
	}
}

func TestUnmappedSlotIsTransparent(t *testing.T) {
	v := vram.New()
	p := &geom.Polygon{TextureFmt: geom.TexDirect, SizeS: 4, SizeT: 4}

	c := Sample(v, p, 0, 0)
	if c.A() != 0 {
		t.Errorf("Got alpha %d, wanted 0", c.A())
	}
}

func TestNoneFormatIsTransparent(t *testing.T) {
	v := vram.New()
	p := &geom.Polygon{TextureFmt: geom.TexNone}
	c := Sample(v, p, 0, 0)
	if c.A() != 0 {
		t.Errorf("Got alpha %d, wanted 0", c.A())
	}
}
