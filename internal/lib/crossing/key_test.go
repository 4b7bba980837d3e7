package crossing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	a := line(0, 0, 2, 2)
	b := line(0, 2, 2, 0)

	// Stable for the same inputs
	assert.Equal(t, Key(a, b), Key(line(0, 0, 2, 2), line(0, 2, 2, 0)))
	assert.Len(t, Key(a, b), 64)

	// Roles matter
	assert.NotEqual(t, Key(a, b), Key(b, a))

	// Point boundaries between the two polylines matter
	assert.NotEqual(t, Key(line(0, 0, 1, 1), line(2, 2)), Key(line(0, 0), line(1, 1, 2, 2)))

	// Exact bit patterns, so signed zero differs
	assert.NotEqual(t, Key(line(0, 0), b), Key(line(math.Copysign(0, -1), 0), b))

	assert.NotEqual(t, Key(a, b), Key(a, line(0, 2, 2, 0.0000001)))
}
