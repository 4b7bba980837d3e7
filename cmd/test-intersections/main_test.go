package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinateRows(t *testing.T) {
	rows, err := parseCoordinateRows("0,0; 2.5, -1 ;3,4")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}, {2.5, -1}, {3, 4}}, rows)

	rows, err = parseCoordinateRows("  ")
	require.NoError(t, err)
	assert.Nil(t, rows)

	// Width is passed through for the counter to reject
	rows, err = parseCoordinateRows("1,2,3")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2, 3}}, rows)

	_, err = parseCoordinateRows("1,x")
	assert.Error(t, err)
}
