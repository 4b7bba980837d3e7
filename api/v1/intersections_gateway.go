package v1

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/grpclog"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// GatewayPrefix is the HTTP path prefix served by the IntersectionService gateway
const GatewayPrefix = "/api/v1/crossings/"

// maxRequestBytes bounds gateway request bodies
const maxRequestBytes = 64 << 20

type clientCall func(IntersectionServiceClient, context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error)

type gatewayRoute struct {
	method     string
	path       string
	fullMethod string
	hasBody    bool
	call       clientCall
}

var gatewayRoutes = []gatewayRoute{
	{http.MethodPost, GatewayPrefix + "count", IntersectionService_CountIntersections_FullMethodName, true, IntersectionServiceClient.CountIntersections},
	{http.MethodPost, GatewayPrefix + "match", IntersectionService_MatchTrack_FullMethodName, true, IntersectionServiceClient.MatchTrack},
	{http.MethodGet, GatewayPrefix + "routes", IntersectionService_ListSurveyRoutes_FullMethodName, false, IntersectionServiceClient.ListSurveyRoutes},
	{http.MethodGet, GatewayPrefix + "routes/{id}", IntersectionService_GetSurveyRoute_FullMethodName, false, IntersectionServiceClient.GetSurveyRoute},
	{http.MethodDelete, GatewayPrefix + "routes/{id}", IntersectionService_RemoveSurveyRoute_FullMethodName, false, IntersectionServiceClient.RemoveSurveyRoute},
}

// RegisterIntersectionServiceHandlerFromEndpoint is same as RegisterIntersectionServiceHandler but
// automatically dials to "endpoint" and closes the connection when "ctx" gets done.
func RegisterIntersectionServiceHandlerFromEndpoint(ctx context.Context, mux *runtime.ServeMux, endpoint string, opts []grpc.DialOption) (err error) {
	conn, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if cerr := conn.Close(); cerr != nil {
				grpclog.Errorf("Failed to close conn to %s: %v", endpoint, cerr)
			}
			return
		}
		go func() {
			<-ctx.Done()
			if cerr := conn.Close(); cerr != nil {
				grpclog.Errorf("Failed to close conn to %s: %v", endpoint, cerr)
			}
		}()
	}()
	return RegisterIntersectionServiceHandler(ctx, mux, conn)
}

// RegisterIntersectionServiceHandler registers the http handlers for IntersectionService on mux.
// The handlers forward requests to the grpc endpoint over conn.
func RegisterIntersectionServiceHandler(ctx context.Context, mux *runtime.ServeMux, conn *grpc.ClientConn) error {
	return RegisterIntersectionServiceHandlerClient(ctx, mux, NewIntersectionServiceClient(conn))
}

// RegisterIntersectionServiceHandlerClient registers the http handlers for
// IntersectionService on mux, forwarding through client:
//
//	POST   /api/v1/crossings/count        -> CountIntersections
//	POST   /api/v1/crossings/match        -> MatchTrack
//	GET    /api/v1/crossings/routes       -> ListSurveyRoutes
//	GET    /api/v1/crossings/routes/{id}  -> GetSurveyRoute
//	DELETE /api/v1/crossings/routes/{id}  -> RemoveSurveyRoute
//
// Path parameters are copied into the request struct under their own names.
func RegisterIntersectionServiceHandlerClient(ctx context.Context, mux *runtime.ServeMux, client IntersectionServiceClient) error {
	for _, route := range gatewayRoutes {
		if err := mux.HandlePath(route.method, route.path, gatewayHandler(mux, client, route)); err != nil {
			return err
		}
	}
	return nil
}

func gatewayHandler(mux *runtime.ServeMux, client IntersectionServiceClient, route gatewayRoute) runtime.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request, pathParams map[string]string) {
		ctx, cancel := context.WithCancel(req.Context())
		defer cancel()
		inboundMarshaler, outboundMarshaler := runtime.MarshalerForRequest(mux, req)
		annotatedContext, err := runtime.AnnotateContext(ctx, mux, req, route.fullMethod, runtime.WithHTTPPathPattern(route.path))
		if err != nil {
			runtime.HTTPError(ctx, mux, outboundMarshaler, w, req, err)
			return
		}
		resp, md, err := forwardRequest(annotatedContext, inboundMarshaler, w, client, route, req, pathParams)
		annotatedContext = runtime.NewServerMetadataContext(annotatedContext, md)
		if err != nil {
			runtime.HTTPError(annotatedContext, mux, outboundMarshaler, w, req, err)
			return
		}
		runtime.ForwardResponseMessage(annotatedContext, mux, outboundMarshaler, w, req, resp, mux.GetForwardResponseOptions()...)
	}
}

func forwardRequest(ctx context.Context, marshaler runtime.Marshaler, w http.ResponseWriter, client IntersectionServiceClient, route gatewayRoute, req *http.Request, pathParams map[string]string) (proto.Message, runtime.ServerMetadata, error) {
	var (
		protoReq = &structpb.Struct{}
		metadata runtime.ServerMetadata
	)
	if route.hasBody && req.Body != nil {
		body := http.MaxBytesReader(w, req.Body, maxRequestBytes)
		if err := marshaler.NewDecoder(body).Decode(protoReq); err != nil && !errors.Is(err, io.EOF) {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, metadata, status.Error(codes.ResourceExhausted, "request body too large")
			}
			return nil, metadata, status.Errorf(codes.InvalidArgument, "%v", err)
		}
	}
	for name, value := range pathParams {
		if protoReq.Fields == nil {
			protoReq.Fields = make(map[string]*structpb.Value)
		}
		protoReq.Fields[name] = structpb.NewStringValue(value)
	}
	msg, err := route.call(client, ctx, protoReq, grpc.Header(&metadata.HeaderMD), grpc.Trailer(&metadata.TrailerMD))
	return msg, metadata, err
}
