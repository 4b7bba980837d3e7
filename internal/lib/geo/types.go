package geo

import (
	"errors"
	"fmt"
)

// Point represents a planar coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polyline represents an ordered sequence of points.
// Consecutive points define the segments of the line.
type Polyline struct {
	Points []Point `json:"points"`
}

// Segment is a closed line segment between two consecutive polyline points
type Segment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Orientation describes the turn direction of an ordered point triple
type Orientation int

const (
	Collinear Orientation = iota
	Clockwise
	CounterClockwise
	Undefined // cross product is NaN
)

func (o Orientation) String() string {
	switch o {
	case Collinear:
		return "collinear"
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counterclockwise"
	default:
		return "undefined"
	}
}

// ErrInvalidShape is returned when a coordinate matrix does not have exactly 2 columns
var ErrInvalidShape = errors.New("coordinate matrix must have exactly 2 columns")

// ShapeError reports which row of a coordinate matrix had the wrong width.
// Row is -1 when the whole matrix has a fixed, wrong column count.
type ShapeError struct {
	Row     int
	Columns int
}

func (e *ShapeError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("%s: got %d columns", ErrInvalidShape.Error(), e.Columns)
	}
	return fmt.Sprintf("%s: row %d has %d values", ErrInvalidShape.Error(), e.Row, e.Columns)
}

func (e *ShapeError) Unwrap() error {
	return ErrInvalidShape
}
