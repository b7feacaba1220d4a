package raster

import (
	"bytes"
	"testing"

	"github.com/bdwalton/dsrender/fixed"
	"github.com/bdwalton/dsrender/geom"
)

func TestRendererInstallPolygonListRejectsDegenerate(t *testing.T) {
	r := New(Config{})
	err := r.InstallPolygonList([]geom.Polygon{{Vertices: make([]geom.Vertex, 2)}})
	if err == nil {
		t.Errorf("2-vertex polygon: Got nil error, wanted one")
	}
}

func TestRendererRenderFrameAndSavePNG(t *testing.T) {
	r := New(Config{Threaded: true})
	r.WriteClearDepth(0xFFFF, 0x7FFF)
	color := fixed.PackRGBA6(0x3F, 0x10, 0x05, 0x3F)

	polys := []geom.Polygon{
		{
			Vertices: []geom.Vertex{
				{X: 64, Y: 48, W: 0x1000, Color: uint32(color)},
				{X: 192, Y: 48, W: 0x1000, Color: uint32(color)},
				{X: 128, Y: 144, W: 0x1000, Color: uint32(color)},
			},
			Mode: geom.ModeModulation,
		},
	}
	if err := r.InstallPolygonList(polys); err != nil {
		t.Fatalf("InstallPolygonList: %v", err)
	}
	r.RenderFrame()

	fb := r.Framebuffer()
	if fb[96][128]&bit3DPixel == 0 {
		t.Errorf("center pixel: Got unwritten, wanted the 3D marker set")
	}

	var buf bytes.Buffer
	if err := r.SavePNG(&buf); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if buf.Len() == 0 {
		t.Errorf("SavePNG wrote 0 bytes")
	}
}
