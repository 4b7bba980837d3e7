package routing

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dpup/strem/server/internal/lib/crossing"
	"github.com/dpup/strem/server/internal/lib/geo"
)

// ErrMissingRouteID is returned when registering a route without an ID
var ErrMissingRouteID = errors.New("route ID is required")

// routeMatcher implements the RouteMatcher interface
type routeMatcher struct {
	counter    crossing.Counter
	workers    int
	routeCache map[string]Route
	cacheMutex sync.RWMutex
}

// NewRouteMatcher creates a new RouteMatcher implementation.
// workers bounds how many routes are counted in parallel (<= 0 means GOMAXPROCS).
func NewRouteMatcher(counter crossing.Counter, workers int) RouteMatcher {
	if counter == nil {
		counter = crossing.NewCounter()
	}
	return &routeMatcher{
		counter:    counter,
		workers:    workers,
		routeCache: make(map[string]Route),
	}
}

// RegisterRoute stores a route, replacing any route with the same ID
func (r *routeMatcher) RegisterRoute(ctx context.Context, route Route) error {
	if route.ID == "" {
		return ErrMissingRouteID
	}

	// Keep our own copy of the points so later caller mutations don't leak in
	points := make([]geo.Point, len(route.Polyline.Points))
	copy(points, route.Polyline.Points)
	route.Polyline = geo.Polyline{Points: points}

	r.cacheMutex.Lock()
	defer r.cacheMutex.Unlock()
	r.routeCache[route.ID] = route
	return nil
}

// RemoveRoute deletes a route from the registry
func (r *routeMatcher) RemoveRoute(ctx context.Context, routeID string) bool {
	r.cacheMutex.Lock()
	defer r.cacheMutex.Unlock()

	if _, exists := r.routeCache[routeID]; !exists {
		return false
	}
	delete(r.routeCache, routeID)
	return true
}

// GetRoute retrieves a route from the registry
func (r *routeMatcher) GetRoute(routeID string) (Route, bool) {
	r.cacheMutex.RLock()
	defer r.cacheMutex.RUnlock()
	route, exists := r.routeCache[routeID]
	return route, exists
}

// Routes returns a snapshot of all registered routes sorted by ID
func (r *routeMatcher) Routes() []Route {
	r.cacheMutex.RLock()
	routes := make([]Route, 0, len(r.routeCache))
	for _, route := range r.routeCache {
		routes = append(routes, route)
	}
	r.cacheMutex.RUnlock()

	sort.Slice(routes, func(i, j int) bool {
		return routes[i].ID < routes[j].ID
	})
	return routes
}

// MatchTrack counts the track against every registered route.
// Matches are sorted by crossing count (highest first), then by route ID.
func (r *routeMatcher) MatchTrack(ctx context.Context, track geo.Polyline) ([]RouteMatch, error) {
	routes := r.Routes()
	if len(routes) == 0 {
		return []RouteMatch{}, nil
	}

	polylines := make([]geo.Polyline, len(routes))
	for i, route := range routes {
		polylines[i] = route.Polyline
	}

	counts, err := crossing.CountAll(ctx, r.counter, track, polylines, r.workers)
	if err != nil {
		return nil, err
	}

	matches := []RouteMatch{}
	for i, route := range routes {
		if counts[i] == 0 {
			continue
		}
		matches = append(matches, RouteMatch{
			RouteID: route.ID,
			Name:    route.Name,
			Count:   counts[i],
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Count != matches[j].Count {
			return matches[i].Count > matches[j].Count
		}
		return matches[i].RouteID < matches[j].RouteID
	})

	return matches, nil
}
