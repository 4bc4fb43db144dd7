package geomkit

import "math"

// edge holds precomputed per-edge geometry for a Polygon: the edge vector,
// its length, and its outward unit normal. Precomputed once at construction
// so that closest-point queries never recompute edge arithmetic.
type edge struct {
	a, b   Vec2
	dir    Vec2 // b - a
	length float64
	normal Vec2 // outward unit normal, valid for CCW-wound polygons
}

// Polygon is a (not necessarily closed) ring of vertices with precomputed
// edge geometry. Construct with NewPolygon; do not build a Polygon literal
// directly or the cached edge data will be stale.
type Polygon struct {
	Vertices []Vec2
	edges    []edge
}

// NewPolygon precomputes edge vectors, lengths, and outward unit normals
// for verts, treated as a closed ring (the last vertex connects back to the
// first). Requires len(verts) >= 3.
func NewPolygon(verts []Vec2) Polygon {
	p := Polygon{Vertices: verts}
	n := len(verts)
	if n < 3 {
		return p
	}
	p.edges = make([]edge, n)
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		d := b.Sub(a)
		length := d.Len()
		// Outward normal for a CCW polygon is the edge direction rotated -90deg:
		// (dx, dy) -> (dy, -dx), normalized.
		var normal Vec2
		if length > 1e-12 {
			normal = Vec2{d.Y / length, -d.X / length}
		}
		p.edges[i] = edge{a: a, b: b, dir: d, length: length, normal: normal}
	}
	return p
}

// Contains reports whether pt lies inside the polygon using a ray-cast
// parity test along +x. An edge (v_j, v_{j+1}) crosses the ray iff
// (y_j > py) != (y_{j+1} > py) and the edge's x-intercept at y=py exceeds px.
func (p Polygon) Contains(pt Vec2) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			// x-intercept of edge (a,b) at y = pt.Y
			xIntercept := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if xIntercept > pt.X {
				inside = !inside
			}
		}
	}
	return inside
}

// ClosestPoint returns the closest point on the polygon boundary to pt, the
// outward unit normal of the closest edge, and the signed distance (negative
// iff pt is inside the polygon).
func (p Polygon) ClosestPoint(pt Vec2) (closest Vec2, normal Vec2, signedDist float64) {
	n := len(p.edges)
	if n == 0 {
		return pt, Vec2{}, math.Inf(1)
	}

	bestDist2 := math.Inf(1)
	var bestPoint, bestNormal Vec2

	for _, e := range p.edges {
		var t float64
		if e.length > 1e-12 {
			t = pt.Sub(e.a).Dot(e.dir) / (e.length * e.length)
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
		}
		candidate := e.a.Add(e.dir.Scale(t))
		d2 := pt.Dist2(candidate)
		if d2 < bestDist2 {
			bestDist2 = d2
			bestPoint = candidate
			bestNormal = e.normal
		}
	}

	dist := math.Sqrt(bestDist2)
	if p.Contains(pt) {
		dist = -dist
	}
	return bestPoint, bestNormal, dist
}

// NearestPolygon finds, among polys, the one minimizing |signed distance|
// to pt, and returns its closest point, outward normal, and signed distance.
// Returns ok=false if polys is empty.
func NearestPolygon(pt Vec2, polys []Polygon) (closest Vec2, normal Vec2, signedDist float64, ok bool) {
	if len(polys) == 0 {
		return Vec2{}, Vec2{}, 0, false
	}
	bestAbs := math.Inf(1)
	for _, poly := range polys {
		q, n, s := poly.ClosestPoint(pt)
		if math.Abs(s) < bestAbs {
			bestAbs = math.Abs(s)
			closest, normal, signedDist = q, n, s
			ok = true
		}
	}
	return
}
