package crossing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/dpup/strem/server/internal/lib/geo"
)

// Crossing identifies one intersecting pair of segments (0-based indices)
type Crossing struct {
	TrackSegment int `json:"track_segment"`
	RouteSegment int `json:"route_segment"`
}

// Counter interface defines intersection counting between a track and a survey route
type Counter interface {
	// Count segment pairs (one from each polyline) that intersect
	Count(track, route geo.Polyline) int

	// List the intersecting segment pairs, ordered by track then route segment
	Crossings(track, route geo.Polyline) []Crossing

	// Count from raw N×2 coordinate rows, validating both shapes first
	CountRows(track, route [][]float64) (int, error)

	// Count from gonum matrices with exactly 2 columns
	CountMatrix(track, route mat.Matrix) (int, error)
}

// NewCounter is implemented in counter.go
