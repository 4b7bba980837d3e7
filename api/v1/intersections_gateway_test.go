package v1

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

// echoServer returns the number of track rows as the count
type echoServer struct {
	UnimplementedIntersectionServiceServer
	lastRequest atomic.Pointer[structpb.Struct]
}

func (e *echoServer) CountIntersections(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	e.lastRequest.Store(req)
	track, ok := req.GetFields()[FieldTrack]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "track is required")
	}
	return structpb.NewStruct(map[string]interface{}{
		FieldCount: len(track.GetListValue().GetValues()),
	})
}

func (e *echoServer) ListSurveyRoutes(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		FieldRoutes: []interface{}{map[string]interface{}{FieldID: "r1"}},
	})
}

func (e *echoServer) RemoveSurveyRoute(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		FieldID:      req.GetFields()[FieldID].GetStringValue(),
		FieldRemoved: true,
	})
}

type gatewayFixture struct {
	mux         *runtime.ServeMux
	intercepted atomic.Int32
}

// newGateway serves srv over an in-memory gRPC listener and registers the
// gateway against it by endpoint, with any extra mux options applied.
func newGateway(t *testing.T, srv IntersectionServiceServer, muxOpts ...runtime.ServeMuxOption) *gatewayFixture {
	t.Helper()
	f := &gatewayFixture{}

	lis := bufconn.Listen(1 << 20)
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(
		func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
			f.intercepted.Add(1)
			return handler(ctx, req)
		}))
	RegisterIntersectionServiceServer(grpcServer, srv)
	go func() { _ = grpcServer.Serve(lis) }()
	t.Cleanup(grpcServer.Stop)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	f.mux = runtime.NewServeMux(muxOpts...)
	err := RegisterIntersectionServiceHandlerFromEndpoint(ctx, f.mux, "passthrough:///bufnet", []grpc.DialOption{
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	})
	require.NoError(t, err)
	return f
}

func (f *gatewayFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGateway_Count(t *testing.T) {
	srv := &echoServer{}
	gw := newGateway(t, srv)

	rec := gw.do(http.MethodPost, GatewayPrefix+"count",
		`{"track": [[0,0],[2,2]], "survey_route": [[0,2],[2,0]]}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, 2.0, decodeBody(t, rec)[FieldCount])
	require.NotNil(t, srv.lastRequest.Load())
	assert.Contains(t, srv.lastRequest.Load().GetFields(), FieldSurveyRoute)
}

func TestGateway_GoesThroughGRPCInterceptors(t *testing.T) {
	gw := newGateway(t, &echoServer{})

	gw.do(http.MethodPost, GatewayPrefix+"count", `{"track": []}`)
	gw.do(http.MethodGet, GatewayPrefix+"routes", "")

	assert.Equal(t, int32(2), gw.intercepted.Load())
}

func TestGateway_ErrorMapping(t *testing.T) {
	gw := newGateway(t, &echoServer{})

	// Server-side InvalidArgument
	rec := gw.do(http.MethodPost, GatewayPrefix+"count", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(codes.InvalidArgument), body["code"])
	assert.Equal(t, "track is required", body["message"])

	// Malformed JSON never reaches the server
	rec = gw.do(http.MethodPost, GatewayPrefix+"count", `[1,2`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, float64(codes.InvalidArgument), decodeBody(t, rec)["code"])

	// Unimplemented method maps to 501
	rec = gw.do(http.MethodPost, GatewayPrefix+"match", `{"track": []}`)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestGateway_EmptyBodyIsEmptyRequest(t *testing.T) {
	srv := &echoServer{}
	gw := newGateway(t, srv)

	rec := gw.do(http.MethodPost, GatewayPrefix+"count", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, srv.lastRequest.Load())
	assert.Empty(t, srv.lastRequest.Load().GetFields())
}

func TestGateway_UsesMuxErrorHandler(t *testing.T) {
	var handled atomic.Int32
	gw := newGateway(t, &echoServer{}, runtime.WithErrorHandler(
		func(ctx context.Context, mux *runtime.ServeMux, m runtime.Marshaler, w http.ResponseWriter, r *http.Request, err error) {
			handled.Add(1)
			runtime.DefaultHTTPErrorHandler(ctx, mux, m, w, r, err)
		}))

	rec := gw.do(http.MethodPost, GatewayPrefix+"count", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = gw.do(http.MethodPost, GatewayPrefix+"count", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, int32(2), handled.Load())
}

func TestGateway_PathParameters(t *testing.T) {
	gw := newGateway(t, &echoServer{})

	rec := gw.do(http.MethodDelete, GatewayPrefix+"routes/west-leg", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "west-leg", body[FieldID])
	assert.Equal(t, true, body[FieldRemoved])

	rec = gw.do(http.MethodGet, GatewayPrefix+"routes/west-leg", "")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestGateway_ListRoutes(t *testing.T) {
	gw := newGateway(t, &echoServer{})

	rec := gw.do(http.MethodGet, GatewayPrefix+"routes", "")

	require.Equal(t, http.StatusOK, rec.Code)
	routes, ok := decodeBody(t, rec)[FieldRoutes].([]interface{})
	require.True(t, ok)
	assert.Len(t, routes, 1)
}
