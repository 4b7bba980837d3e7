package crossing

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/dpup/strem/server/internal/lib/geo"
)

// counter implements the Counter interface with a brute-force O(n·m) scan
type counter struct{}

// NewCounter creates a new Counter implementation
func NewCounter() Counter {
	return &counter{}
}

// Count returns the number of intersecting (track segment, route segment) pairs
func (c *counter) Count(track, route geo.Polyline) int {
	count := 0
	c.scan(track, route, func(int, int) {
		count++
	})
	return count
}

// Crossings returns every intersecting segment pair
func (c *counter) Crossings(track, route geo.Polyline) []Crossing {
	var crossings []Crossing
	c.scan(track, route, func(i, j int) {
		crossings = append(crossings, Crossing{TrackSegment: i, RouteSegment: j})
	})
	return crossings
}

// scan tests each track segment against each route segment.
// A pair is reported at most once no matter how many points coincide.
func (c *counter) scan(track, route geo.Polyline, hit func(i, j int)) {
	n := track.NumSegments()
	m := route.NumSegments()
	if n == 0 || m == 0 {
		return
	}

	for i := 0; i < n; i++ {
		trackSeg := track.Segment(i)
		for j := 0; j < m; j++ {
			if geo.SegmentsIntersect(trackSeg, route.Segment(j)) {
				hit(i, j)
			}
		}
	}
}

// CountRows validates both coordinate matrices and counts intersections
func (c *counter) CountRows(track, route [][]float64) (int, error) {
	trackLine, err := geo.PolylineFromRows(track)
	if err != nil {
		return 0, fmt.Errorf("invalid track: %w", err)
	}
	routeLine, err := geo.PolylineFromRows(route)
	if err != nil {
		return 0, fmt.Errorf("invalid survey route: %w", err)
	}
	return c.Count(trackLine, routeLine), nil
}

// CountMatrix validates both gonum matrices and counts intersections
func (c *counter) CountMatrix(track, route mat.Matrix) (int, error) {
	trackLine, err := geo.PolylineFromMatrix(track)
	if err != nil {
		return 0, fmt.Errorf("invalid track: %w", err)
	}
	routeLine, err := geo.PolylineFromMatrix(route)
	if err != nil {
		return 0, fmt.Errorf("invalid survey route: %w", err)
	}
	return c.Count(trackLine, routeLine), nil
}
