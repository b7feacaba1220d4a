// Package vram implements address-to-slot translation for the texture
// and palette address spaces the rasterizer samples from. It mirrors
// the teacher codebase's mapper/address-translation shape (a small
// owning struct over a fixed slot table, with a bounds-checked switch
// at lookup time) generalized from byte-addressed CPU memory to the
// slot-indexed VRAM banks the DS texture unit reads.
package vram

import "fmt"

const (
	// TextureSlotSize is the size, in bytes, of one texture VRAM slot.
	TextureSlotSize = 0x20000
	// PaletteSlotSize is the size, in bytes, of one palette VRAM slot.
	PaletteSlotSize = 0x4000

	// TextureSlotCount and PaletteSlotCount bound the number of slots
	// the geometry/VRAM-management collaborator may install; exact
	// counts follow that collaborator, these are upper bounds.
	TextureSlotCount = 4
	PaletteSlotCount = 8
)

// View owns the texture and palette slot tables. A slot may be nil,
// meaning "not currently mapped"; lookups into an unmapped slot return a
// nil byte slice, and callers sample that as a fully transparent texel.
type View struct {
	textures [TextureSlotCount][]byte
	palettes [PaletteSlotCount][]byte
}

// New returns an empty View with all slots unmapped.
func New() *View {
	return &View{}
}

// InstallTextureSlot installs (or clears, if data is nil) texture slot i.
func (v *View) InstallTextureSlot(i int, data []byte) error {
	if i < 0 || i >= TextureSlotCount {
		return errSlot("texture", i, TextureSlotCount)
	}
	if data != nil && len(data) != TextureSlotSize {
		return errSize("texture", len(data), TextureSlotSize)
	}
	v.textures[i] = data
	return nil
}

// InstallPaletteSlot installs (or clears, if data is nil) palette slot i.
func (v *View) InstallPaletteSlot(i int, data []byte) error {
	if i < 0 || i >= PaletteSlotCount {
		return errSlot("palette", i, PaletteSlotCount)
	}
	if data != nil && len(data) != PaletteSlotSize {
		return errSize("palette", len(data), PaletteSlotSize)
	}
	v.palettes[i] = data
	return nil
}

// GetTexture returns the byte slice starting at addr in texture VRAM
// (running to the end of its slot), and true if that byte is backed by
// a mapped slot. Callers must treat a false ok as a
// transparent texel fetch.
func (v *View) GetTexture(addr uint32) (b []byte, ok bool) {
	slot := v.textures[(addr>>17)&(TextureSlotCount-1)]
	if slot == nil {
		return nil, false
	}
	return slot[addr&(TextureSlotSize-1):], true
}

// GetPalette returns the byte slice starting at addr in palette VRAM, and
// true if that byte is backed by a mapped slot.
func (v *View) GetPalette(addr uint32) (b []byte, ok bool) {
	slot := v.palettes[(addr>>14)&(PaletteSlotCount-1)]
	if slot == nil {
		return nil, false
	}
	return slot[addr&(PaletteSlotSize-1):], true
}

// SlotIndex returns which texture slot addr falls into, used by the 4x4
// compressed format's parallel per-tile-palette-index lookup (spec
// §4.3 fmt 5), which needs to know whether the texel came from slot 2.
func (v *View) SlotIndex(addr uint32) int {
	return int((addr >> 17) & (TextureSlotCount - 1))
}

func errSlot(kind string, idx, n int) error {
	return fmt.Errorf("vram: %s slot index %d out of range [0,%d)", kind, idx, n)
}

func errSize(kind string, size, wantLen int) error {
	return fmt.Errorf("vram: %s slot data is %d bytes, want %d", kind, size, wantLen)
}
