// Package v1 defines the IntersectionService gRPC contract.
//
// Messages are google.protobuf.Struct values so the service can be served
// and called without generated stubs. Request and response field names are
// listed as constants below.
package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	IntersectionService_CountIntersections_FullMethodName = "/strem.v1.IntersectionService/CountIntersections"
	IntersectionService_MatchTrack_FullMethodName         = "/strem.v1.IntersectionService/MatchTrack"
	IntersectionService_ListSurveyRoutes_FullMethodName   = "/strem.v1.IntersectionService/ListSurveyRoutes"
	IntersectionService_GetSurveyRoute_FullMethodName     = "/strem.v1.IntersectionService/GetSurveyRoute"
	IntersectionService_RemoveSurveyRoute_FullMethodName  = "/strem.v1.IntersectionService/RemoveSurveyRoute"
)

// Request and response field names
const (
	FieldTrack            = "track"
	FieldSurveyRoute      = "survey_route"
	FieldIncludeCrossings = "include_crossings"
	FieldCount            = "count"
	FieldCached           = "cached"
	FieldCrossings        = "crossings"
	FieldTrackSegment     = "track_segment"
	FieldRouteSegment     = "route_segment"
	FieldMatches          = "matches"
	FieldRoutes           = "routes"
	FieldRouteID          = "route_id"
	FieldID               = "id"
	FieldName             = "name"
	FieldPoints           = "points"
	FieldCoordinates      = "coordinates"
	FieldRemoved          = "removed"
)

// IntersectionServiceServer is the server API for IntersectionService
type IntersectionServiceServer interface {
	// Count segment-pair intersections between a track and a survey route
	CountIntersections(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// Count a track against every registered survey route
	MatchTrack(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// List registered survey routes
	ListSurveyRoutes(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// Get one survey route with its points
	GetSurveyRoute(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// Remove a survey route from the registry
	RemoveSurveyRoute(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedIntersectionServiceServer can be embedded to have forward compatible implementations
type UnimplementedIntersectionServiceServer struct{}

func (UnimplementedIntersectionServiceServer) CountIntersections(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CountIntersections not implemented")
}

func (UnimplementedIntersectionServiceServer) MatchTrack(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method MatchTrack not implemented")
}

func (UnimplementedIntersectionServiceServer) ListSurveyRoutes(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListSurveyRoutes not implemented")
}

func (UnimplementedIntersectionServiceServer) GetSurveyRoute(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSurveyRoute not implemented")
}

func (UnimplementedIntersectionServiceServer) RemoveSurveyRoute(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RemoveSurveyRoute not implemented")
}

// RegisterIntersectionServiceServer registers the service implementation with a gRPC server
func RegisterIntersectionServiceServer(s grpc.ServiceRegistrar, srv IntersectionServiceServer) {
	s.RegisterService(&IntersectionService_ServiceDesc, srv)
}

type unaryCall func(IntersectionServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler adapts a server method into a grpc method handler
func unaryHandler(fullMethod string, call unaryCall) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(IntersectionServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(IntersectionServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// IntersectionService_ServiceDesc is the grpc.ServiceDesc for IntersectionService
var IntersectionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "strem.v1.IntersectionService",
	HandlerType: (*IntersectionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CountIntersections",
			Handler:    unaryHandler(IntersectionService_CountIntersections_FullMethodName, IntersectionServiceServer.CountIntersections),
		},
		{
			MethodName: "MatchTrack",
			Handler:    unaryHandler(IntersectionService_MatchTrack_FullMethodName, IntersectionServiceServer.MatchTrack),
		},
		{
			MethodName: "ListSurveyRoutes",
			Handler:    unaryHandler(IntersectionService_ListSurveyRoutes_FullMethodName, IntersectionServiceServer.ListSurveyRoutes),
		},
		{
			MethodName: "GetSurveyRoute",
			Handler:    unaryHandler(IntersectionService_GetSurveyRoute_FullMethodName, IntersectionServiceServer.GetSurveyRoute),
		},
		{
			MethodName: "RemoveSurveyRoute",
			Handler:    unaryHandler(IntersectionService_RemoveSurveyRoute_FullMethodName, IntersectionServiceServer.RemoveSurveyRoute),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// IntersectionServiceClient is the client API for IntersectionService
type IntersectionServiceClient interface {
	CountIntersections(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	MatchTrack(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListSurveyRoutes(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetSurveyRoute(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RemoveSurveyRoute(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type intersectionServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewIntersectionServiceClient creates a client for IntersectionService
func NewIntersectionServiceClient(cc grpc.ClientConnInterface) IntersectionServiceClient {
	return &intersectionServiceClient{cc}
}

func (c *intersectionServiceClient) CountIntersections(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, IntersectionService_CountIntersections_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *intersectionServiceClient) MatchTrack(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, IntersectionService_MatchTrack_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *intersectionServiceClient) ListSurveyRoutes(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, IntersectionService_ListSurveyRoutes_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *intersectionServiceClient) GetSurveyRoute(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, IntersectionService_GetSurveyRoute_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *intersectionServiceClient) RemoveSurveyRoute(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, IntersectionService_RemoveSurveyRoute_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
