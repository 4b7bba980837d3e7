package routing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpup/strem/server/internal/lib/crossing"
	"github.com/dpup/strem/server/internal/lib/geo"
)

func polyline(coords ...float64) geo.Polyline {
	points := make([]geo.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		points = append(points, geo.Point{X: coords[i], Y: coords[i+1]})
	}
	return geo.Polyline{Points: points}
}

func TestRouteMatcher_RegisterAndGet(t *testing.T) {
	matcher := NewRouteMatcher(crossing.NewCounter(), 2)
	ctx := context.Background()

	err := matcher.RegisterRoute(ctx, Route{ID: "transect-b", Name: "Transect B", Polyline: polyline(0, 0, 1, 1)})
	require.NoError(t, err)
	err = matcher.RegisterRoute(ctx, Route{ID: "transect-a", Name: "Transect A", Polyline: polyline(0, 1, 1, 0)})
	require.NoError(t, err)

	route, ok := matcher.GetRoute("transect-a")
	require.True(t, ok)
	assert.Equal(t, "Transect A", route.Name)

	routes := matcher.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, "transect-a", routes[0].ID)
	assert.Equal(t, "transect-b", routes[1].ID)

	// Replace by ID
	err = matcher.RegisterRoute(ctx, Route{ID: "transect-a", Name: "Transect A v2", Polyline: polyline(0, 1, 1, 0)})
	require.NoError(t, err)
	route, _ = matcher.GetRoute("transect-a")
	assert.Equal(t, "Transect A v2", route.Name)
	assert.Len(t, matcher.Routes(), 2)

	// Missing ID
	err = matcher.RegisterRoute(ctx, Route{Name: "anonymous"})
	assert.ErrorIs(t, err, ErrMissingRouteID)

	// Removal
	assert.True(t, matcher.RemoveRoute(ctx, "transect-b"))
	assert.False(t, matcher.RemoveRoute(ctx, "transect-b"))
	_, ok = matcher.GetRoute("transect-b")
	assert.False(t, ok)
}

func TestRouteMatcher_RegisterCopiesPoints(t *testing.T) {
	matcher := NewRouteMatcher(nil, 0)
	ctx := context.Background()

	line := polyline(0, 0, 1, 1)
	require.NoError(t, matcher.RegisterRoute(ctx, Route{ID: "r1", Polyline: line}))

	line.Points[0].X = 42
	route, _ := matcher.GetRoute("r1")
	assert.Equal(t, 0.0, route.Polyline.Points[0].X)
}

func TestRouteMatcher_MatchTrack(t *testing.T) {
	matcher := NewRouteMatcher(crossing.NewCounter(), 0)
	ctx := context.Background()

	// Zigzag track crossing y=0 three times
	track := polyline(0, 1, 1, -1, 2, 1, 3, -1)

	routes := []Route{
		{ID: "baseline", Name: "Baseline", Polyline: polyline(-1, 0, 4, 0)},
		{ID: "east-leg", Name: "East leg", Polyline: polyline(2.5, -5, 2.5, 5)},
		{ID: "west-leg", Name: "West leg", Polyline: polyline(0.5, -5, 0.5, 5)},
		{ID: "offshore", Name: "Offshore", Polyline: polyline(100, 100, 200, 200)},
		{ID: "stub", Name: "Single point", Polyline: polyline(1, 1)},
	}
	for _, route := range routes {
		require.NoError(t, matcher.RegisterRoute(ctx, route))
	}

	matches, err := matcher.MatchTrack(ctx, track)
	require.NoError(t, err)

	assert.Equal(t, []RouteMatch{
		{RouteID: "baseline", Name: "Baseline", Count: 3},
		{RouteID: "east-leg", Name: "East leg", Count: 1},
		{RouteID: "west-leg", Name: "West leg", Count: 1},
	}, matches)
}

func TestRouteMatcher_MatchTrackNoRoutes(t *testing.T) {
	matcher := NewRouteMatcher(nil, 0)

	matches, err := matcher.MatchTrack(context.Background(), polyline(0, 0, 1, 1))
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestRouteMatcher_MatchTrackCanceled(t *testing.T) {
	matcher := NewRouteMatcher(nil, 1)
	require.NoError(t, matcher.RegisterRoute(context.Background(), Route{ID: "r1", Polyline: polyline(0, 1, 1, 0)}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := matcher.MatchTrack(ctx, polyline(0, 0, 1, 1))
	assert.ErrorIs(t, err, context.Canceled)
}
