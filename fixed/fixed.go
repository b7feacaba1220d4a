// Package fixed implements the integer interpolation primitives the
// rasterizer uses in place of floating point: linear and
// perspective-correct lerp, W-interpolation, and the RGBA6 channel lerp.
// All intermediates are carried in 64 bits so callers don't have to
// reason about overflow when widening 16/32-bit vertex attributes.
package fixed

// Lerp returns the linear interpolation of v1 at x1 and v2 at x2, sampled
// at x. x1 must be strictly less than x2. Integer division truncates
// toward zero, matching the hardware's fixed-point behavior.
func Lerp(v1, v2 int64, x1, x, x2 int64) int64 {
	return (v1*(x2-x) + v2*(x-x1)) / (x2 - x1)
}

// LerpPersp returns the perspective-correct interpolation of v1/v2 at
// x1/x2, weighted by the homogeneous w1/w2 of the two endpoints, sampled
// at x.
func LerpPersp(v1, v2, x1, x, x2, w1, w2 int64) int64 {
	num := v1*w2*(x2-x) + v2*w1*(x-x1)
	den := w2*(x2-x) + w1*(x-x1)
	return num / den
}

// InterpW interpolates (or acts as the W-buffered depth for) the
// homogeneous W itself between two edge endpoints.
func InterpW(w1, w2, x1, x, x2 int64) int64 {
	return w1 * w2 * (x2 - x1) / (w2*(x2-x) + w1*(x-x1))
}

// RGBA6 is a packed a<<18|b<<12|g<<6|r color, 6 bits per channel.
type RGBA6 uint32

func (c RGBA6) R() int64 { return int64(c & 0x3F) }
func (c RGBA6) G() int64 { return int64((c >> 6) & 0x3F) }
func (c RGBA6) B() int64 { return int64((c >> 12) & 0x3F) }
func (c RGBA6) A() int64 { return int64((c >> 18) & 0x3F) }

func PackRGBA6(r, g, b, a int64) RGBA6 {
	return RGBA6((a&0x3F)<<18 | (b&0x3F)<<12 | (g&0x3F)<<6 | (r & 0x3F))
}

// ColorLerp applies Lerp independently to the R, G, B channels of c1/c2;
// alpha is the maximum of the two inputs rather than an interpolated
// value, matching the hardware's blend unit.
func ColorLerp(c1, c2 RGBA6, x1, x, x2 int64) RGBA6 {
	r := Lerp(c1.R(), c2.R(), x1, x, x2)
	g := Lerp(c1.G(), c2.G(), x1, x, x2)
	b := Lerp(c1.B(), c2.B(), x1, x, x2)
	a := c1.A()
	if c2.A() > a {
		a = c2.A()
	}
	return PackRGBA6(r, g, b, a)
}

// ColorLerpPersp is the perspective-correct analogue of ColorLerp, used
// for per-pixel shading across a span.
func ColorLerpPersp(c1, c2 RGBA6, x1, x, x2, w1, w2 int64) RGBA6 {
	r := LerpPersp(c1.R(), c2.R(), x1, x, x2, w1, w2)
	g := LerpPersp(c1.G(), c2.G(), x1, x, x2, w1, w2)
	b := LerpPersp(c1.B(), c2.B(), x1, x, x2, w1, w2)
	a := c1.A()
	if c2.A() > a {
		a = c2.A()
	}
	return PackRGBA6(r, g, b, a)
}

// RGBA5To6 expands a 5-bit channel value to 6 bits: c6 = c5*2 + (c5+31)/32.
func RGBA5To6(c5 int64) int64 {
	return c5*2 + (c5+31)/32
}
