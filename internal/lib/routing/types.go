package routing

import (
	"context"

	"github.com/dpup/strem/server/internal/lib/geo"
)

// Route represents a registered survey route with its reference geometry
type Route struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Polyline geo.Polyline `json:"polyline"`
}

// RouteMatch reports how many times a track crosses one survey route
type RouteMatch struct {
	RouteID string `json:"route_id"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
}

// RouteMatcher interface defines track matching against registered survey routes
type RouteMatcher interface {
	// Add or replace a survey route
	RegisterRoute(ctx context.Context, route Route) error

	// Remove a survey route, reporting whether it existed
	RemoveRoute(ctx context.Context, routeID string) bool

	// Look up a registered route
	GetRoute(routeID string) (Route, bool)

	// All registered routes, sorted by ID
	Routes() []Route

	// Count the track against every route; only crossed routes are returned
	MatchTrack(ctx context.Context, track geo.Polyline) ([]RouteMatch, error)
}

// NewRouteMatcher is implemented in matcher.go
