// Command dsview is a demo host for the raster package: it installs a
// synthetic polygon list and VRAM content and drives the renderer one
// frame at a time inside an ebiten window, standing in for the
// geometry engine and display hardware the renderer doesn't own.
package main

import (
	"flag"
	"log"

	"github.com/bdwalton/dsrender/fixed"
	"github.com/bdwalton/dsrender/geom"
	"github.com/bdwalton/dsrender/raster"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	scene    = flag.String("scene", "triangle", "Synthetic scene to render: triangle, occlusion, shadow.")
	threaded = flag.Bool("threaded", true, "Render each frame across the 4-tile worker pool.")
)

func main() {
	flag.Parse()

	r := raster.New(raster.Config{Threaded: *threaded})
	r.WriteClearDepth(0xFFFF, 0x7FFF)
	r.WriteClearColor(0xFFFFFFFF, 0)

	polys, err := buildScene(*scene)
	if err != nil {
		log.Fatalf("buildScene(%q): %v", *scene, err)
	}
	if err := r.InstallPolygonList(polys); err != nil {
		log.Fatalf("InstallPolygonList: %v", err)
	}

	ebiten.SetWindowSize(raster.ScreenWidth*2, raster.ScreenHeight*2)
	ebiten.SetWindowTitle("dsview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(&host{r: r}); err != nil {
		log.Fatal(err)
	}
}

// host adapts a raster.Renderer to the ebiten.Game interface.
type host struct {
	r *raster.Renderer
}

// Update re-renders the installed polygon list every frame. The scene
// is static, so this just re-walks the same polygons; a real host
// would install a fresh list from the geometry engine here instead.
func (h *host) Update() error {
	h.r.RenderFrame()
	return nil
}

func (h *host) Draw(screen *ebiten.Image) {
	fb := h.r.Framebuffer()
	for y := 0; y < raster.ScreenHeight; y++ {
		for x := 0; x < raster.ScreenWidth; x++ {
			word := fb[y][x]
			r8 := expand6to8(int(word & 0x3F))
			g8 := expand6to8(int((word >> 6) & 0x3F))
			b8 := expand6to8(int((word >> 12) & 0x3F))
			a8 := expand6to8(int((word >> 18) & 0x3F))
			screen.Set(x, y, rgbaColor{r8, g8, b8, a8})
		}
	}
}

// Layout returns the renderer's fixed 256x192 resolution, forcing
// ebiten to scale the display on window resize rather than us.
func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return raster.ScreenWidth, raster.ScreenHeight
}

func expand6to8(c6 int) uint8 {
	return uint8(c6<<2 | c6>>4)
}

type rgbaColor struct{ r, g, b, a uint8 }

func (c rgbaColor) RGBA() (r, g, b, a uint32) {
	r = uint32(c.r) * 0x101
	g = uint32(c.g) * 0x101
	b = uint32(c.b) * 0x101
	a = uint32(c.a) * 0x101
	return
}

func buildScene(name string) ([]geom.Polygon, error) {
	switch name {
	case "triangle":
		return []geom.Polygon{triangleScene()}, nil
	case "occlusion":
		return []geom.Polygon{occlusionFront(), occlusionBack()}, nil
	case "shadow":
		return []geom.Polygon{shadowCaster(), shadowReceiver()}, nil
	default:
		return nil, errUnknownScene(name)
	}
}

func triangleScene() geom.Polygon {
	color := fixed.PackRGBA6(0x3F, 0x08, 0x08, 0x3F)
	return geom.Polygon{
		Vertices: []geom.Vertex{
			{X: 64, Y: 48, W: 0x1000, Color: uint32(color)},
			{X: 192, Y: 48, W: 0x1000, Color: uint32(color)},
			{X: 128, Y: 144, W: 0x1000, Color: uint32(color)},
		},
		Mode: geom.ModeModulation,
	}
}

func axisQuad(x0, y0, x1, y1, z int32, color fixed.RGBA6) geom.Polygon {
	return geom.Polygon{
		Vertices: []geom.Vertex{
			{X: x0, Y: y0, Z: z, W: 0x1000, Color: uint32(color)},
			{X: x1, Y: y0, Z: z, W: 0x1000, Color: uint32(color)},
			{X: x1, Y: y1, Z: z, W: 0x1000, Color: uint32(color)},
			{X: x0, Y: y1, Z: z, W: 0x1000, Color: uint32(color)},
		},
		Mode: geom.ModeModulation,
	}
}

func occlusionFront() geom.Polygon {
	return axisQuad(70, 60, 170, 160, 0x100, fixed.PackRGBA6(0x3F, 0, 0, 0x3F))
}

func occlusionBack() geom.Polygon {
	return axisQuad(90, 40, 190, 140, 0x800, fixed.PackRGBA6(0, 0, 0x3F, 0x3F))
}

func shadowCaster() geom.Polygon {
	p := axisQuad(80, 70, 140, 130, 0x100, fixed.PackRGBA6(0x10, 0x10, 0x10, 0x3F))
	p.Mode = geom.ModeShadow
	p.ID = 0
	return p
}

func shadowReceiver() geom.Polygon {
	p := axisQuad(60, 70, 180, 130, 0x200, fixed.PackRGBA6(0x08, 0x08, 0x20, 0x3F))
	p.Mode = geom.ModeShadow
	p.ID = 5
	return p
}

type unknownSceneError string

func (e unknownSceneError) Error() string { return "unknown scene: " + string(e) }

func errUnknownScene(name string) error { return unknownSceneError(name) }
