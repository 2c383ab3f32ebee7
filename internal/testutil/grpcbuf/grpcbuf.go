// Package grpcbuf runs an in-memory gRPC server that serves every service in
// a set of compiled proto descriptors. Requests and responses are dynamic
// messages exposed to handlers as maps keyed by proto field name, so tests can
// fake the Senzing server without generated code.
package grpcbuf

import (
	"context"
	"encoding/json"
	"net"
	"sync"

	"github.com/bufbuild/protocompile/linker"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

const bufSize = 1024 * 1024

// Target is the dial target to use together with Server.Dialer.
const Target = "passthrough:///bufnet"

// Handler answers a unary method. The request map uses proto field names
// with unpopulated fields present; int64 values arrive as decimal strings.
type Handler func(ctx context.Context, req map[string]any) (map[string]any, error)

// StreamHandler answers a server-streaming method by calling send per message.
type StreamHandler func(ctx context.Context, req map[string]any, send func(map[string]any) error) error

// Call is one request observed by the server.
type Call struct {
	Method  string
	Request map[string]any
}

// Server is a bufconn-backed gRPC server for dynamic services.
type Server struct {
	srv    *grpc.Server
	lis    *bufconn.Listener
	health *health.Server

	mu      sync.Mutex
	unary   map[string]Handler
	streams map[string]StreamHandler
	calls   []Call
}

// Start registers every service found in files and starts serving. Methods
// without a handler answer codes.Unimplemented. The standard health service
// is registered and reports SERVING.
func Start(files linker.Files) *Server {
	s := &Server{
		srv:     grpc.NewServer(),
		lis:     bufconn.Listen(bufSize),
		health:  health.NewServer(),
		unary:   make(map[string]Handler),
		streams: make(map[string]StreamHandler),
	}

	for _, file := range files {
		services := file.Services()
		for i := 0; i < services.Len(); i++ {
			desc := s.serviceDesc(file, services.Get(i))
			s.srv.RegisterService(desc, s)
		}
	}
	grpc_health_v1.RegisterHealthServer(s.srv, s.health)

	go func() { _ = s.srv.Serve(s.lis) }()
	return s
}

// Stop shuts the server down.
func (s *Server) Stop() {
	s.srv.Stop()
	_ = s.lis.Close()
}

// Handle installs the handler for method, given as "Service/Method".
func (s *Server) Handle(method string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unary[method] = h
}

// HandleStream installs the handler for a server-streaming method.
func (s *Server) HandleStream(method string, h StreamHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streams[method] = h
}

// SetServingStatus changes what the health service reports.
func (s *Server) SetServingStatus(st grpc_health_v1.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", st)
}

// Calls returns a copy of the requests observed so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// LastRequest returns the most recent request for method, or nil.
func (s *Server) LastRequest(method string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.calls) - 1; i >= 0; i-- {
		if s.calls[i].Method == method {
			return s.calls[i].Request
		}
	}
	return nil
}

// Dialer returns a dial option routing connections to the in-memory listener.
func (s *Server) Dialer() grpc.DialOption {
	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return s.lis.DialContext(ctx)
	})
}

// Dial connects to the server using the standard gRPC client stack.
func (s *Server) Dial(opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	// bufconn does not provide TLS.
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		s.Dialer(),
	}
	return grpc.NewClient(Target, append(base, opts...)...)
}

func (s *Server) serviceDesc(file protoreflect.FileDescriptor, service protoreflect.ServiceDescriptor) *grpc.ServiceDesc {
	desc := &grpc.ServiceDesc{
		ServiceName: string(service.FullName()),
		HandlerType: (*any)(nil),
		Metadata:    file.Path(),
	}
	methods := service.Methods()
	for j := 0; j < methods.Len(); j++ {
		md := methods.Get(j)
		key := string(service.Name()) + "/" + string(md.Name())
		if md.IsStreamingServer() {
			desc.Streams = append(desc.Streams, grpc.StreamDesc{
				StreamName:    string(md.Name()),
				ServerStreams: true,
				Handler:       s.streamHandler(key, md),
			})
			continue
		}
		desc.Methods = append(desc.Methods, grpc.MethodDesc{
			MethodName: string(md.Name()),
			Handler:    s.unaryHandler(key, md),
		})
	}
	return desc
}

func (s *Server) unaryHandler(key string, md protoreflect.MethodDescriptor) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + string(md.Parent().FullName()) + "/" + string(md.Name())
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := dynamicpb.NewMessage(md.Input())
		if err := dec(in); err != nil {
			return nil, err
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return s.dispatch(ctx, key, md, req.(*dynamicpb.Message))
		}
		if interceptor == nil {
			return handler(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, handler)
	}
}

func (s *Server) dispatch(ctx context.Context, key string, md protoreflect.MethodDescriptor, in *dynamicpb.Message) (any, error) {
	req, err := toMap(in)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	s.mu.Lock()
	s.calls = append(s.calls, Call{Method: key, Request: req})
	h := s.unary[key]
	s.mu.Unlock()

	if h == nil {
		return nil, status.Errorf(codes.Unimplemented, "method %s not implemented", key)
	}
	resp, err := h(ctx, req)
	if err != nil {
		return nil, err
	}
	return fromMap(md.Output(), resp)
}

func (s *Server) streamHandler(key string, md protoreflect.MethodDescriptor) grpc.StreamHandler {
	return func(_ any, stream grpc.ServerStream) error {
		in := dynamicpb.NewMessage(md.Input())
		if err := stream.RecvMsg(in); err != nil {
			return err
		}
		req, err := toMap(in)
		if err != nil {
			return status.Error(codes.Internal, err.Error())
		}

		s.mu.Lock()
		s.calls = append(s.calls, Call{Method: key, Request: req})
		h := s.streams[key]
		s.mu.Unlock()

		if h == nil {
			return status.Errorf(codes.Unimplemented, "method %s not implemented", key)
		}
		return h(stream.Context(), req, func(m map[string]any) error {
			out, err := fromMap(md.Output(), m)
			if err != nil {
				return err
			}
			return stream.SendMsg(out)
		})
	}
}

func toMap(msg *dynamicpb.Message) (map[string]any, error) {
	raw, err := protojson.MarshalOptions{EmitUnpopulated: true, UseProtoNames: true}.Marshal(msg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromMap(desc protoreflect.MessageDescriptor, m map[string]any) (*dynamicpb.Message, error) {
	out := dynamicpb.NewMessage(desc)
	if m == nil {
		return out, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
