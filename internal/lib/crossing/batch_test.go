package crossing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpup/strem/server/internal/lib/geo"
)

func TestCountAll(t *testing.T) {
	counter := NewCounter()
	track := line(0, 1, 1, -1, 2, 1, 3, -1)

	routes := []geo.Polyline{
		line(-1, 0, 4, 0),     // crosses every zigzag segment
		line(10, 10, 11, 11),  // far away
		line(0.5, -5, 0.5, 5), // vertical through the first segment
		{},                    // empty
	}

	for _, workers := range []int{0, 1, 2, 16} {
		counts, err := CountAll(context.Background(), counter, track, routes, workers)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 0, 1, 0}, counts, "workers=%d", workers)
	}
}

func TestCountAll_NoRoutes(t *testing.T) {
	counts, err := CountAll(context.Background(), NewCounter(), line(0, 0, 1, 1), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestCountAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	routes := []geo.Polyline{line(0, 0, 1, 1), line(0, 1, 1, 0)}
	_, err := CountAll(ctx, NewCounter(), line(0, 0, 1, 1), routes, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
