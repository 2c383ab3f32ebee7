// Package grpc provides a lightweight dynamic gRPC client for the Senzing
// services. It compiles the embedded Senzing .proto sources at runtime (via
// protocompile) and uses dynamicpb to marshal/unmarshal requests and
// responses, so no generated stubs are required. Calls can be made with native
// proto messages, JSON payloads, or plain Go maps.
package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bufbuild/protocompile/linker"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

var (
	unmarshalOptions = protojson.UnmarshalOptions{
		AllowPartial:   true,
		DiscardUnknown: true,
	}
	marshalOptions = protojson.MarshalOptions{
		EmitUnpopulated: true,
		UseProtoNames:   true,
	}
)

// Client is a dynamic gRPC client that holds a connected gRPC ClientConn and a
// set of compiled file descriptors used to locate services/methods at runtime.
type Client struct {
	// GRPC is the underlying client connection.
	GRPC *grpc.ClientConn `json:"-"`
	// ProtoFiles are the compiled descriptors of the provided .proto sources.
	ProtoFiles linker.Files `json:"-"`

	logger *zap.Logger
}

// NewClient creates a dynamic gRPC client for the given endpoint and set of
// .proto files (as filename → file content). A nil protoFiles map selects the
// embedded Senzing service definitions. The endpoint scheme determines
// transport security:
//   - "https://", "grpcs://": TLS (system defaults)
//   - "http://", "grpc://":   insecure
//   - no scheme:              insecure
//
// The provided proto files are compiled at runtime; if compilation fails the
// connection is closed and an error is returned. The returned client
// proactively starts connecting (ClientConn.Connect()).
func NewClient(endpoint string, protoFiles map[string]string, opts ...Option) (*Client, error) {
	o := newOptions(opts)

	if protoFiles == nil {
		protoFiles = SenzingProtos()
	}

	addr, creds := grpcCredsFromEndpoint(endpoint)
	conn, err := grpc.NewClient(addr, append([]grpc.DialOption{creds}, o.dialOptions()...)...)
	if err != nil {
		o.logger.Error("grpc client creation failed", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("create grpc client for %s: %w", endpoint, err)
	}

	descriptors, err := getProtoDescriptors(protoFiles)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	conn.Connect()

	return &Client{
		GRPC:       conn,
		ProtoFiles: descriptors,
		logger:     o.logger,
	}, nil
}

// Close shuts down the underlying gRPC connection.
// It is safe to call on a nil receiver or when GRPC is nil.
func (c *Client) Close() error {
	if c == nil || c.GRPC == nil {
		return nil
	}
	return c.GRPC.Close()
}

// CallWithMap invokes a unary RPC by method name using a map as the request
// body. The map is JSON-encoded and then routed through CallWithJSON.
// Method is either "Service/Method" or a method name that is unique across
// the compiled services.
func (c *Client) CallWithMap(ctx context.Context, method string, params map[string]any) (map[string]any, error) {
	jsonData, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	jsonStr, err := c.CallWithJSON(ctx, method, jsonData)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := json.Unmarshal(jsonStr, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// CallWithProto invokes a unary RPC by method name with a concrete proto.Message
// request and returns a dynamic proto.Message response.
// The final fully-qualified method path is built as "/<package>.<Service>/<Method>".
func (c *Client) CallWithProto(ctx context.Context, method string, req proto.Message) (proto.Message, error) {
	_, methodDesc, err := FindMethod(c.ProtoFiles, method)
	if err != nil {
		return nil, err
	}
	out := dynamicpb.NewMessage(methodDesc.Output())
	if err := c.GRPC.Invoke(ctx, fullMethodName(methodDesc), req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CallWithJSON invokes a unary RPC by method name using a JSON request body.
// The JSON is unmarshalled into a dynamic input message (discarding unknown
// fields and allowing partial messages), the call is performed, and the
// response is marshaled back to JSON with proto field names and unpopulated
// fields emitted.
func (c *Client) CallWithJSON(ctx context.Context, method string, body []byte) ([]byte, error) {
	_, methodDesc, err := FindMethod(c.ProtoFiles, method)
	if err != nil {
		return nil, err
	}
	if methodDesc.IsStreamingServer() || methodDesc.IsStreamingClient() {
		return nil, fmt.Errorf("method %s is streaming; use Stream", method)
	}

	in := dynamicpb.NewMessage(methodDesc.Input())
	out := dynamicpb.NewMessage(methodDesc.Output())

	if err := unmarshalOptions.Unmarshal(body, in); err != nil {
		return nil, fmt.Errorf("encode %s request: %w", method, err)
	}

	if err := c.GRPC.Invoke(ctx, fullMethodName(methodDesc), in, out); err != nil {
		return nil, err
	}

	return marshalOptions.Marshal(out)
}

// Stream invokes a server-streaming RPC by method name. The request map is
// encoded like CallWithMap and fn is called once per response message, in
// order. An error returned by fn cancels the stream and is returned as is.
func (c *Client) Stream(ctx context.Context, method string, params map[string]any, fn func(map[string]any) error) error {
	_, methodDesc, err := FindMethod(c.ProtoFiles, method)
	if err != nil {
		return err
	}
	if !methodDesc.IsStreamingServer() {
		return fmt.Errorf("method %s is not server-streaming", method)
	}

	body, err := json.Marshal(params)
	if err != nil {
		return err
	}
	in := dynamicpb.NewMessage(methodDesc.Input())
	if err := unmarshalOptions.Unmarshal(body, in); err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	desc := &grpc.StreamDesc{
		StreamName:    string(methodDesc.Name()),
		ServerStreams: true,
	}
	stream, err := c.GRPC.NewStream(ctx, desc, fullMethodName(methodDesc))
	if err != nil {
		return err
	}
	if err := stream.SendMsg(in); err != nil {
		return err
	}
	if err := stream.CloseSend(); err != nil {
		return err
	}

	for {
		out := dynamicpb.NewMessage(methodDesc.Output())
		if err := stream.RecvMsg(out); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		m, err := messageToMap(out)
		if err != nil {
			return err
		}
		if err := fn(m); err != nil {
			return err
		}
	}
}

// messageToMap renders a dynamic message with the same options CallWithJSON
// uses and decodes it into a generic map.
func messageToMap(msg proto.Message) (map[string]any, error) {
	raw, err := marshalOptions.Marshal(msg)
	if err != nil {
		return nil, err
	}
	var result map[string]any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// fullMethodName builds "/<package>.<Service>/<Method>" for a method descriptor.
func fullMethodName(md protoreflect.MethodDescriptor) string {
	return "/" + string(md.Parent().FullName()) + "/" + string(md.Name())
}

// grpcCredsFromEndpoint derives a dial address and dial option from an endpoint URL.
// "https://" and "grpcs://" enable TLS; "http://", "grpc://" and bare addresses
// use insecure credentials.
func grpcCredsFromEndpoint(endpoint string) (string, grpc.DialOption) {
	for _, scheme := range []string{"https://", "grpcs://"} {
		if strings.HasPrefix(endpoint, scheme) {
			return strings.TrimPrefix(endpoint, scheme), grpc.WithTransportCredentials(credentials.NewTLS(nil))
		}
	}
	for _, scheme := range []string{"http://", "grpc://"} {
		if strings.HasPrefix(endpoint, scheme) {
			return strings.TrimPrefix(endpoint, scheme), grpc.WithTransportCredentials(insecure.NewCredentials())
		}
	}
	return endpoint, grpc.WithTransportCredentials(insecure.NewCredentials())
}
