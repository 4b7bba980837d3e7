package geo

import "math"

// NewPoint creates a Point from x and y values
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// NumSegments returns how many segments the polyline has.
// Polylines with fewer than 2 points have none.
func (p Polyline) NumSegments() int {
	if len(p.Points) < 2 {
		return 0
	}
	return len(p.Points) - 1
}

// Segment returns the i-th segment (0-based) of the polyline
func (p Polyline) Segment(i int) Segment {
	return Segment{Start: p.Points[i], End: p.Points[i+1]}
}

// Segments returns all segments of the polyline in order
func (p Polyline) Segments() []Segment {
	n := p.NumSegments()
	if n == 0 {
		return nil
	}

	segments := make([]Segment, n)
	for i := 0; i < n; i++ {
		segments[i] = p.Segment(i)
	}
	return segments
}

// Orient returns the orientation of the ordered triple (p, q, r) using the
// sign of the 2D cross product. Zero is compared exactly, without tolerance.
func Orient(p, q, r Point) Orientation {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)

	switch {
	case math.IsNaN(val):
		return Undefined
	case val == 0:
		return Collinear
	case val > 0:
		return Clockwise
	default:
		return CounterClockwise
	}
}

// OnSegment reports whether q lies within the bounding box of segment p-r.
// Only meaningful when p, q and r are collinear.
func OnSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// SegmentsIntersect reports whether two closed segments share at least one point.
// Touching endpoints and overlapping collinear segments count as intersecting.
func SegmentsIntersect(a, b Segment) bool {
	o1 := Orient(a.Start, a.End, b.Start)
	o2 := Orient(a.Start, a.End, b.End)
	o3 := Orient(b.Start, b.End, a.Start)
	o4 := Orient(b.Start, b.End, a.End)

	// NaN anywhere makes the pair non-intersecting
	if o1 == Undefined || o2 == Undefined || o3 == Undefined || o4 == Undefined {
		return false
	}

	// General case: each segment straddles the other
	if o1 != o2 && o3 != o4 {
		return true
	}

	// Degenerate cases: an endpoint lies on the other segment
	if o1 == Collinear && OnSegment(a.Start, b.Start, a.End) {
		return true
	}
	if o2 == Collinear && OnSegment(a.Start, b.End, a.End) {
		return true
	}
	if o3 == Collinear && OnSegment(b.Start, a.Start, b.End) {
		return true
	}
	if o4 == Collinear && OnSegment(b.Start, a.End, b.End) {
		return true
	}

	return false
}
