package raster

import (
	"bufio"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/bdwalton/dsrender/geom"
	"github.com/bdwalton/dsrender/vram"
)

// Config selects the renderer's threading mode.
type Config struct {
	// Threaded makes DrawScanline follow the four-tile worker state
	// machine (hand the frame to the tile workers at line 0, starting
	// them the first time, no-op on interior lines, join
	// a tile's worker at its last line) instead of rendering every
	// line synchronously on the caller's goroutine.
	Threaded bool
}

// Renderer owns the frame state, VRAM view, and current polygon list,
// and is the package's external entry point: a host drives it by
// writing registers and VRAM slots, installing a polygon list, and
// calling DrawScanline once per scanline, top to bottom, every frame.
type Renderer struct {
	cfg   Config
	state *State
	vmem  *vram.View
	polys []geom.Polygon
	sched *tileScheduler
}

// New returns a Renderer with a fresh, zeroed frame state and VRAM view.
func New(cfg Config) *Renderer {
	return &Renderer{
		cfg:   cfg,
		state: NewState(),
		vmem:  vram.New(),
	}
}

func (r *Renderer) WriteDisp3DCnt(mask, value uint16) { r.state.WriteDisp3DCnt(mask, value) }
func (r *Renderer) WriteClearColor(mask, value uint32) { r.state.WriteClearColor(mask, value) }
func (r *Renderer) WriteClearDepth(mask, value uint16) { r.state.WriteClearDepth(mask, value) }
func (r *Renderer) WriteToonTable(index int, mask, value uint16) {
	r.state.WriteToonTable(index, mask, value)
}

// InstallTextureSlot installs (or, with nil data, clears) texture VRAM
// slot i.
func (r *Renderer) InstallTextureSlot(i int, data []byte) error {
	return r.vmem.InstallTextureSlot(i, data)
}

// InstallPaletteSlot installs (or, with nil data, clears) palette VRAM
// slot i.
func (r *Renderer) InstallPaletteSlot(i int, data []byte) error {
	return r.vmem.InstallPaletteSlot(i, data)
}

// InstallPolygonList replaces the polygon list the next DrawScanline or
// RenderFrame call draws from. It rejects the list if any polygon has a
// vertex count outside 3..8; beyond that check, polygons are expected to
// already be in screen space and their geometry is not validated.
func (r *Renderer) InstallPolygonList(polys []geom.Polygon) error {
	for i := range polys {
		if err := polys[i].Validate(); err != nil {
			return err
		}
	}
	r.polys = polys
	return nil
}

func (r *Renderer) polyPtrs() []*geom.Polygon {
	ptrs := make([]*geom.Polygon, len(r.polys))
	for i := range r.polys {
		ptrs[i] = &r.polys[i]
	}
	return ptrs
}

// DrawScanline draws line from the installed polygon list.
//
// In single-threaded mode it renders exactly that line, synchronously,
// on the calling goroutine.
//
// In threaded mode it instead drives the four-tile worker state
// machine: line 0 hands the current polygon list to the four tile
// workers (starting them, the first time this renderer threads a
// frame) and returns immediately without drawing anything itself;
// lines that aren't a tile boundary are no-ops, since the owning
// worker is already rendering them in the background; the last line
// of each tile (line%48==47) blocks until that tile's worker finishes
// before returning, so every row is valid by the time its tile's last
// line has been drawn.
func (r *Renderer) DrawScanline(line int) {
	if !r.cfg.Threaded {
		DrawScanline(r.state, r.vmem, r.polyPtrs(), line)
		return
	}
	if line == 0 {
		if r.sched == nil {
			r.sched = newTileScheduler(r.state, r.vmem)
		}
		r.sched.startFrame(r.polyPtrs())
	}
	if line%TileHeight == TileHeight-1 {
		r.sched.join(line / TileHeight)
	}
}

// RenderFrame drives DrawScanline for every line of a frame, top to
// bottom, the way a host that doesn't manage its own scanline loop
// would use this renderer.
func (r *Renderer) RenderFrame() {
	for line := 0; line < ScreenHeight; line++ {
		r.DrawScanline(line)
	}
}

// Framebuffer returns the renderer's current 256x192 framebuffer. Each
// word is a<<18|b<<12|g<<6|r with bit 26 set for a pixel this renderer
// has written; callers that need to tell "drawn black" from "never
// touched" should check that bit.
func (r *Renderer) Framebuffer() *[ScreenHeight][ScreenWidth]uint32 {
	return &r.state.Framebuffer
}

// SavePNG writes the current framebuffer to w as an 8-bit RGBA PNG, for
// debugging and golden-image comparisons. Each 6-bit channel is expanded
// to 8 bits by bit replication (c<<2 | c>>4), so 0 maps to 0 and 63 to
// 255; alpha is stored unpremultiplied.
func (r *Renderer) SavePNG(w io.Writer) error {
	img := image.NewNRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			word := r.state.Framebuffer[y][x]
			rc := expand6to8(int(word & 0x3F))
			gc := expand6to8(int((word >> 6) & 0x3F))
			bc := expand6to8(int((word >> 12) & 0x3F))
			ac := expand6to8(int((word >> 18) & 0x3F))
			img.SetNRGBA(x, y, color.NRGBA{R: rc, G: gc, B: bc, A: ac})
		}
	}
	bw := bufio.NewWriter(w)
	if err := png.Encode(bw, img); err != nil {
		return err
	}
	return bw.Flush()
}

func expand6to8(c6 int) uint8 {
	return uint8(c6<<2 | c6>>4)
}
