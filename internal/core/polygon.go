package core

import "math"

// Polygon is a convex point set in winding order.
type Polygon []Vec

// Translate returns a copy of the polygon moved by d.
func (p Polygon) Translate(d Vec) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = v.Add(d)
	}
	return out
}

// Centroid returns the average of the polygon's points.
func (p Polygon) Centroid() Vec {
	var c Vec
	if len(p) == 0 {
		return c
	}
	for _, v := range p {
		c = c.Add(v)
	}
	return c.Scale(1 / float64(len(p)))
}

// Bounds returns the axis-aligned box enclosing the polygon.
func (p Polygon) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	minX, minY := p[0].X, p[0].Y
	maxX, maxY := minX, minY
	for _, v := range p[1:] {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return RectFromEdges(minX, minY, maxX, maxY)
}

// project returns the interval covered by the polygon on axis.
func (p Polygon) project(axis Vec) (lo, hi float64) {
	lo = p[0].Dot(axis)
	hi = lo
	for _, v := range p[1:] {
		d := v.Dot(axis)
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return lo, hi
}

// axes appends the unit edge normals of the polygon. Zero-length edges have
// no normal and are skipped.
func (p Polygon) axes(dst []Vec) []Vec {
	for i := range p {
		edge := p[(i+1)%len(p)].Sub(p[i])
		if n := edge.Normal(); n != (Vec{}) {
			dst = append(dst, n)
		}
	}
	return dst
}

// Collision is the result of a separating axis test.
type Collision struct {
	Intersects bool
	// MTV is the minimum translation vector. Moving the first polygon by MTV
	// separates it from the second along the cheapest axis.
	MTV Vec
}

// Depth returns the length of the minimum translation vector.
func (c Collision) Depth() float64 {
	return c.MTV.Len()
}

// Intersect runs the separating axis test over the edge normals of both
// convex polygons. Any axis with zero or negative overlap proves separation.
// Otherwise the axis with the smallest overlap gives the MTV. Empty polygons
// never intersect.
func Intersect(a, b Polygon) Collision {
	if len(a) == 0 || len(b) == 0 {
		return Collision{}
	}

	axes := make([]Vec, 0, len(a)+len(b))
	axes = a.axes(axes)
	axes = b.axes(axes)
	if len(axes) == 0 {
		return Collision{}
	}

	best := math.Inf(1)
	var bestAxis Vec
	for _, axis := range axes {
		aLo, aHi := a.project(axis)
		bLo, bHi := b.project(axis)
		overlap := math.Min(aHi, bHi) - math.Max(aLo, bLo)
		if overlap <= 0 {
			return Collision{}
		}
		if overlap < best {
			best = overlap
			bestAxis = axis
		}
	}

	// Point the MTV from b toward a.
	if a.Centroid().Sub(b.Centroid()).Dot(bestAxis) < 0 {
		bestAxis = bestAxis.Scale(-1)
	}
	return Collision{Intersects: true, MTV: bestAxis.Scale(best)}
}
