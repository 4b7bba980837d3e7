package geo

import (
	"gonum.org/v1/gonum/mat"
)

// PolylineFromRows builds a polyline from an N×2 coordinate matrix given as rows.
// A nil or empty slice is a valid empty polyline.
func PolylineFromRows(rows [][]float64) (Polyline, error) {
	if len(rows) == 0 {
		return Polyline{}, nil
	}

	if err := checkRows(rows); err != nil {
		return Polyline{}, err
	}

	points := make([]Point, len(rows))
	for i, row := range rows {
		points[i] = Point{X: row[0], Y: row[1]}
	}
	return Polyline{Points: points}, nil
}

// MatrixFromRows copies an N×2 coordinate matrix given as rows into a dense
// matrix. It returns nil for an empty slice.
func MatrixFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	if err := checkRows(rows); err != nil {
		return nil, err
	}

	data := make([]float64, 0, 2*len(rows))
	for _, row := range rows {
		data = append(data, row[0], row[1])
	}
	return mat.NewDense(len(rows), 2, data), nil
}

// checkRows validates every row before anything is copied
func checkRows(rows [][]float64) error {
	for i, row := range rows {
		if len(row) != 2 {
			return &ShapeError{Row: i, Columns: len(row)}
		}
	}
	return nil
}

// PolylineFromMatrix builds a polyline from a gonum matrix with exactly 2 columns.
// gonum cannot allocate a 0×2 matrix, so nil and zero-row matrices are treated
// as empty polylines regardless of their column count. A nil *mat.Dense, as
// returned by MatrixFromRows and Polyline.Matrix, is empty too.
func PolylineFromMatrix(m mat.Matrix) (Polyline, error) {
	if m == nil {
		return Polyline{}, nil
	}
	if d, ok := m.(*mat.Dense); ok && d == nil {
		return Polyline{}, nil
	}

	r, c := m.Dims()
	if r == 0 {
		return Polyline{}, nil
	}
	if c != 2 {
		return Polyline{}, &ShapeError{Row: -1, Columns: c}
	}

	points := make([]Point, r)
	for i := 0; i < r; i++ {
		points[i] = Point{X: m.At(i, 0), Y: m.At(i, 1)}
	}
	return Polyline{Points: points}, nil
}

// Matrix returns the polyline as an N×2 dense matrix, or nil when it has no points
func (p Polyline) Matrix() *mat.Dense {
	if len(p.Points) == 0 {
		return nil
	}

	data := make([]float64, 0, 2*len(p.Points))
	for _, pt := range p.Points {
		data = append(data, pt.X, pt.Y)
	}
	return mat.NewDense(len(p.Points), 2, data)
}
