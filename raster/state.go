// Package raster implements the polygon setup, scanline rasterization,
// register interface, and tile scheduler that together turn a frame's
// screen-space polygon list into a 256x192 framebuffer. The pipeline
// shape (a small owning struct over fixed-size buffers, a per-scanline
// driver method, and masked register writes) follows the teacher
// codebase's PPU, generalized from tile/sprite composition to polygon
// edge-walking.
package raster

import "github.com/bdwalton/dsrender/fixed"

const (
	ScreenWidth  = 256
	ScreenHeight = 192
	TileHeight   = 48
	TileCount    = ScreenHeight / TileHeight

	// bit3DPixel marks a framebuffer word as produced by this renderer,
	// consumed by the (out-of-scope) 2D compositor.
	bit3DPixel = 1 << 26
)

// State holds everything the rasterizer reads and mutates across a
// frame: the framebuffer, the four tiles' depth/stencil/attribute
// buffers, and the clear/toon registers written via the register
// interface (registers.go).
type State struct {
	Framebuffer [ScreenHeight][ScreenWidth]uint32
	Depth       [TileCount][ScreenWidth]int64
	Stencil     [TileCount][ScreenWidth]bool
	Attrib      [TileCount][ScreenWidth]uint8

	ClearColor uint32
	ClearDepth int64
	ToonTable  [32]fixed.RGBA6
	Disp3DCnt  uint16
}

// NewState returns a zeroed State; all clear registers default to zero
// until the host writes them, matching power-on hardware state.
func NewState() *State {
	return &State{}
}

func tileOf(line int) int { return line / TileHeight }

// ClearScanlineRow resets line's framebuffer row to the clear color.
// Called at the top of every scanline (spec §4.5 prologue).
func (s *State) ClearScanlineRow(line int) {
	row := &s.Framebuffer[line]
	for x := range row {
		row[x] = s.ClearColor
	}
}

// ClearTileBuffers resets the depth/stencil/attribute buffers of line's
// tile, but only when line is that tile's first scanline: those buffers
// are shared across all 48 scanlines of a tile, so clearing them on
// every scanline would erase state (notably shadow stencil bits) a
// later scanline in the same tile still needs (spec §9).
func (s *State) ClearTileBuffers(line int) {
	if line%TileHeight != 0 {
		return
	}
	t := tileOf(line)
	depth := &s.Depth[t]
	stencil := &s.Stencil[t]
	attrib := &s.Attrib[t]
	for x := 0; x < ScreenWidth; x++ {
		depth[x] = s.ClearDepth
		stencil[x] = false
		attrib[x] = 0
	}
}

// HighlightEnabled reports whether disp_3d_cnt bit 1 (the additive
// Highlight variant of Toon/Highlight mode) is set.
func (s *State) HighlightEnabled() bool {
	return s.Disp3DCnt&(1<<1) != 0
}
