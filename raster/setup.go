package raster

import (
	"sort"

	"github.com/bdwalton/dsrender/geom"
)

// sortVertices returns p's vertices ordered by (y, x) ascending, as
// pointers into p.Vertices so downstream code can read W/Color/S/T
// without a second lookup.
func sortVertices(p *geom.Polygon) []*geom.Vertex {
	vs := make([]*geom.Vertex, len(p.Vertices))
	for i := range p.Vertices {
		vs[i] = &p.Vertices[i]
	}
	sort.SliceStable(vs, func(i, j int) bool {
		if vs[i].Y != vs[j].Y {
			return vs[i].Y < vs[j].Y
		}
		return vs[i].X < vs[j].X
	})
	return vs
}

// Cull reports whether line falls within the sorted vertex list's y
// range [vs[0].Y, vs[n-1].Y).
func Cull(vs []*geom.Vertex, line int32) bool {
	n := len(vs)
	if n == 0 {
		return false
	}
	return line >= vs[0].Y && line < vs[n-1].Y
}

// classifySides assigns each interior vertex (index 1..n-2) to the right
// chain (true) or left chain (false) of the polygon, by the sign of the
// 2D cross product of the diagonal v0->v[n-1] against v0->v[m]. The two
// endpoints belong to both chains and are left false (unused).
func classifySides(vs []*geom.Vertex) []bool {
	n := len(vs)
	right := make([]bool, n)
	if n < 3 {
		return right
	}
	v0, vn := vs[0], vs[n-1]
	ex, ey := int64(vn.X-v0.X), int64(vn.Y-v0.Y)
	for m := 1; m < n-1; m++ {
		fx, fy := int64(vs[m].X-v0.X), int64(vs[m].Y-v0.Y)
		// Screen Y grows downward, which flips the usual right-hand-rule
		// sign: a vertex left of the v0->vn diagonal in screen space
		// gives a positive cross here, not negative.
		right[m] = ex*fy-ey*fx < 0
	}
	return right
}

// buildChain returns the ordered sub-sequence of vs belonging to one
// side: both endpoints plus every interior vertex whose classification
// matches wantRight.
func buildChain(vs []*geom.Vertex, right []bool, wantRight bool) []*geom.Vertex {
	n := len(vs)
	chain := make([]*geom.Vertex, 0, n)
	chain = append(chain, vs[0])
	for m := 1; m < n-1; m++ {
		if right[m] == wantRight {
			chain = append(chain, vs[m])
		}
	}
	chain = append(chain, vs[n-1])
	return chain
}

// walkChain returns the two consecutive chain vertices a, b bounding
// line (a.Y <= line < b.Y). Horizontal runs at the top of the chain are
// skipped automatically since the scan always advances past any vertex
// whose Y has already been passed, which keeps b.Y-a.Y strictly
// positive for every edge actually returned.
func walkChain(chain []*geom.Vertex, line int32) (a, b *geom.Vertex, ok bool) {
	i := 0
	for i < len(chain)-1 && chain[i+1].Y <= line {
		i++
	}
	if i >= len(chain)-1 || chain[i].Y == chain[i+1].Y {
		return nil, nil, false
	}
	return chain[i], chain[i+1], true
}

// SelectEdges implements the polygon setup step: sort p's vertices,
// cull against line, split into left/right chains by diagonal side, and
// return the two edges (v1,v2 left, v3,v4 right) bounding the scanline.
func SelectEdges(p *geom.Polygon, line int32) (v1, v2, v3, v4 *geom.Vertex, ok bool) {
	vs := sortVertices(p)
	if !Cull(vs, line) {
		return nil, nil, nil, nil, false
	}

	right := classifySides(vs)
	leftChain := buildChain(vs, right, false)
	rightChain := buildChain(vs, right, true)

	v1, v2, ok1 := walkChain(leftChain, line)
	v3, v4, ok2 := walkChain(rightChain, line)
	if !ok1 || !ok2 {
		return nil, nil, nil, nil, false
	}
	return v1, v2, v3, v4, true
}
