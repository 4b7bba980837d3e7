package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	api "github.com/dpup/strem/server/api/v1"
	"github.com/dpup/strem/server/internal/cache"
	"github.com/dpup/strem/server/internal/config"
	"github.com/dpup/strem/server/internal/lib/crossing"
	"github.com/dpup/strem/server/internal/lib/geo"
	"github.com/dpup/strem/server/internal/lib/routing"
)

// IntersectionService implements the gRPC IntersectionService.
// It is the adapter between decoded request matrices and the crossing counter.
type IntersectionService struct {
	api.UnimplementedIntersectionServiceServer
	counter crossing.Counter
	matcher routing.RouteMatcher
	cache   *cache.Cache
	config  *config.IntersectionsConfig
}

// NewIntersectionService creates a new IntersectionService.
// cache may be nil to disable result caching.
func NewIntersectionService(counter crossing.Counter, matcher routing.RouteMatcher, cache *cache.Cache, config *config.IntersectionsConfig) *IntersectionService {
	return &IntersectionService{
		counter: counter,
		matcher: matcher,
		cache:   cache,
		config:  config,
	}
}

// LoadSurveyRoutes registers the survey routes listed in configuration
func (s *IntersectionService) LoadSurveyRoutes(ctx context.Context) error {
	for _, configured := range s.config.SurveyRoutes {
		route, err := configured.ToRoute()
		if err != nil {
			return err
		}
		if err := s.matcher.RegisterRoute(ctx, route); err != nil {
			return fmt.Errorf("failed to register survey route %q: %w", configured.ID, err)
		}
		log.Printf("Registered survey route %s (%d points)", route.ID, len(route.Polyline.Points))
	}
	return nil
}

// CountIntersections counts segment-pair intersections between the request's
// track and survey_route matrices
func (s *IntersectionService) CountIntersections(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	requestID := uuid.NewString()

	track, trackMatrix, err := s.coordinateField(req, api.FieldTrack)
	if err != nil {
		log.Printf("[%s] CountIntersections rejected: %v", requestID, err)
		return nil, err
	}
	route, routeMatrix, err := s.coordinateField(req, api.FieldSurveyRoute)
	if err != nil {
		log.Printf("[%s] CountIntersections rejected: %v", requestID, err)
		return nil, err
	}
	includeCrossings, err := boolField(req, api.FieldIncludeCrossings)
	if err != nil {
		return nil, err
	}

	log.Printf("[%s] CountIntersections called: track=%d points, survey_route=%d points",
		requestID, len(track.Points), len(route.Points))

	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	cacheKey := crossing.Key(track, route)
	if includeCrossings {
		cacheKey += ":crossings"
	}

	if s.cachingEnabled() {
		cached, found, err := s.cache.GetCount(cacheKey)
		if err != nil {
			log.Printf("[%s] Cache error: %v", requestID, err)
		}
		if found {
			log.Printf("[%s] Returning cached count (%d)", requestID, cached.Count)
			return countResponse(cached, includeCrossings, true)
		}
	}

	var result cache.CountResult
	if includeCrossings {
		result.Crossings = s.counter.Crossings(track, route)
		result.Count = len(result.Crossings)
	} else {
		result.Count, err = s.counter.CountMatrix(trackMatrix, routeMatrix)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "%v", err)
		}
	}

	if s.cachingEnabled() {
		if err := s.cache.SetCount(cacheKey, result, s.config.CacheTTL); err != nil {
			log.Printf("[%s] Failed to cache count: %v", requestID, err)
		}
	}

	return countResponse(result, includeCrossings, false)
}

// MatchTrack counts the request's track against every registered survey route
func (s *IntersectionService) MatchTrack(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	requestID := uuid.NewString()

	track, _, err := s.coordinateField(req, api.FieldTrack)
	if err != nil {
		log.Printf("[%s] MatchTrack rejected: %v", requestID, err)
		return nil, err
	}

	log.Printf("[%s] MatchTrack called: track=%d points", requestID, len(track.Points))

	matches, err := s.matcher.MatchTrack(ctx, track)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, status.FromContextError(err).Err()
		}
		return nil, status.Errorf(codes.Internal, "failed to match track: %v", err)
	}

	items := make([]interface{}, len(matches))
	for i, match := range matches {
		items[i] = map[string]interface{}{
			api.FieldRouteID: match.RouteID,
			api.FieldName:    match.Name,
			api.FieldCount:   match.Count,
		}
	}

	return newResponse(map[string]interface{}{
		api.FieldMatches: items,
	})
}

// ListSurveyRoutes returns the registered survey routes with their point counts
func (s *IntersectionService) ListSurveyRoutes(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	log.Printf("ListSurveyRoutes called")

	routes := s.matcher.Routes()
	items := make([]interface{}, len(routes))
	for i, route := range routes {
		items[i] = map[string]interface{}{
			api.FieldID:     route.ID,
			api.FieldName:   route.Name,
			api.FieldPoints: len(route.Polyline.Points),
		}
	}

	return newResponse(map[string]interface{}{
		api.FieldRoutes: items,
	})
}

// GetSurveyRoute returns one registered survey route with its coordinates
func (s *IntersectionService) GetSurveyRoute(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := routeIDField(req)
	if err != nil {
		return nil, err
	}

	log.Printf("GetSurveyRoute called: id=%s", id)

	route, ok := s.matcher.GetRoute(id)
	if !ok {
		return nil, status.Errorf(codes.NotFound, "survey route %q not found", id)
	}

	coordinates := make([]interface{}, len(route.Polyline.Points))
	for i, pt := range route.Polyline.Points {
		coordinates[i] = []interface{}{pt.X, pt.Y}
	}

	return newResponse(map[string]interface{}{
		api.FieldID:          route.ID,
		api.FieldName:        route.Name,
		api.FieldPoints:      len(route.Polyline.Points),
		api.FieldCoordinates: coordinates,
	})
}

// RemoveSurveyRoute drops a survey route from the registry
func (s *IntersectionService) RemoveSurveyRoute(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := routeIDField(req)
	if err != nil {
		return nil, err
	}

	if !s.matcher.RemoveRoute(ctx, id) {
		return nil, status.Errorf(codes.NotFound, "survey route %q not found", id)
	}
	log.Printf("Removed survey route %s", id)

	return newResponse(map[string]interface{}{
		api.FieldID:      id,
		api.FieldRemoved: true,
	})
}

func (s *IntersectionService) cachingEnabled() bool {
	return s.cache != nil && s.config.CacheTTL > 0
}

// coordinateField decodes an N×2 coordinate matrix from a request field.
// The matrix is nil when the field holds no rows.
func (s *IntersectionService) coordinateField(req *structpb.Struct, name string) (geo.Polyline, *mat.Dense, error) {
	value, ok := req.GetFields()[name]
	if !ok {
		return geo.Polyline{}, nil, status.Errorf(codes.InvalidArgument, "%s is required", name)
	}

	rows, err := rowsFromValue(value)
	if err != nil {
		return geo.Polyline{}, nil, status.Errorf(codes.InvalidArgument, "%s: %v", name, err)
	}

	if s.config.MaxPoints > 0 && len(rows) > s.config.MaxPoints {
		return geo.Polyline{}, nil, status.Errorf(codes.InvalidArgument,
			"%s has %d points, limit is %d", name, len(rows), s.config.MaxPoints)
	}

	m, err := geo.MatrixFromRows(rows)
	if err != nil {
		return geo.Polyline{}, nil, status.Errorf(codes.InvalidArgument, "%s: %v", name, err)
	}
	line, err := geo.PolylineFromMatrix(m)
	if err != nil {
		return geo.Polyline{}, nil, status.Errorf(codes.InvalidArgument, "%s: %v", name, err)
	}
	return line, m, nil
}

func routeIDField(req *structpb.Struct) (string, error) {
	value, ok := req.GetFields()[api.FieldID].GetKind().(*structpb.Value_StringValue)
	if !ok || value.StringValue == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a non-empty string", api.FieldID)
	}
	return value.StringValue, nil
}

// rowsFromValue converts a list of numeric lists into coordinate rows.
// Row widths are left for geo.PolylineFromRows to validate.
func rowsFromValue(value *structpb.Value) ([][]float64, error) {
	if _, isNull := value.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, errors.New("must be a list of [x, y] rows, got null")
	}

	list := value.GetListValue()
	if list == nil {
		return nil, errors.New("must be a list of [x, y] rows")
	}

	rows := make([][]float64, len(list.GetValues()))
	for i, rowValue := range list.GetValues() {
		row := rowValue.GetListValue()
		if row == nil {
			return nil, fmt.Errorf("row %d must be a list of numbers", i)
		}

		coords := make([]float64, len(row.GetValues()))
		for j, coord := range row.GetValues() {
			number, ok := coord.GetKind().(*structpb.Value_NumberValue)
			if !ok {
				return nil, fmt.Errorf("row %d: value %d is not a number", i, j)
			}
			coords[j] = number.NumberValue
		}
		rows[i] = coords
	}
	return rows, nil
}

func boolField(req *structpb.Struct, name string) (bool, error) {
	value, ok := req.GetFields()[name]
	if !ok {
		return false, nil
	}
	flag, isBool := value.GetKind().(*structpb.Value_BoolValue)
	if !isBool {
		return false, status.Errorf(codes.InvalidArgument, "%s must be a boolean", name)
	}
	return flag.BoolValue, nil
}

func countResponse(result cache.CountResult, includeCrossings, cached bool) (*structpb.Struct, error) {
	fields := map[string]interface{}{
		api.FieldCount:  result.Count,
		api.FieldCached: cached,
	}

	if includeCrossings {
		items := make([]interface{}, len(result.Crossings))
		for i, c := range result.Crossings {
			items[i] = map[string]interface{}{
				api.FieldTrackSegment: c.TrackSegment,
				api.FieldRouteSegment: c.RouteSegment,
			}
		}
		fields[api.FieldCrossings] = items
	}

	return newResponse(fields)
}

func newResponse(fields map[string]interface{}) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build response: %v", err)
	}
	return resp, nil
}
