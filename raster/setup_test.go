package raster

import (
	"testing"

	"github.com/bdwalton/dsrender/geom"
)

func triangle() *geom.Polygon {
	return &geom.Polygon{
		Vertices: []geom.Vertex{
			{X: 64, Y: 48, W: 0x1000},
			{X: 192, Y: 48, W: 0x1000},
			{X: 128, Y: 144, W: 0x1000},
		},
	}
}

func TestSelectEdgesCullsOutsideYRange(t *testing.T) {
	p := triangle()
	if _, _, _, _, ok := SelectEdges(p, 47); ok {
		t.Errorf("line above triangle: Got ok=true, wanted false")
	}
	if _, _, _, _, ok := SelectEdges(p, 144); ok {
		t.Errorf("line at/after bottom vertex: Got ok=true, wanted false")
	}
}

func TestSelectEdgesAtTopEdge(t *testing.T) {
	p := triangle()
	v1, v2, v3, v4, ok := SelectEdges(p, 48)
	if !ok {
		t.Fatalf("line at flat top edge: Got ok=false, wanted true")
	}
	if v1.Y > 48 || v2.Y <= 48 {
		t.Errorf("left edge invariant violated: v1.Y=%d v2.Y=%d", v1.Y, v2.Y)
	}
	if v3.Y > 48 || v4.Y <= 48 {
		t.Errorf("right edge invariant violated: v3.Y=%d v4.Y=%d", v3.Y, v4.Y)
	}
	if v2.Y == v1.Y || v4.Y == v3.Y {
		t.Errorf("degenerate edge returned: v1.Y=%d v2.Y=%d v3.Y=%d v4.Y=%d", v1.Y, v2.Y, v3.Y, v4.Y)
	}
}

func TestSelectEdgesNearBottom(t *testing.T) {
	p := triangle()
	_, v2, _, v4, ok := SelectEdges(p, 143)
	if !ok {
		t.Fatalf("line near bottom: Got ok=false, wanted true")
	}
	if v2.Y != 144 || v4.Y != 144 {
		t.Errorf("edges should terminate at the apex vertex: v2.Y=%d v4.Y=%d", v2.Y, v4.Y)
	}
}
