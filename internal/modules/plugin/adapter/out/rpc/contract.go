package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey       = "analyzer"
	serviceName        = "writerly.analyzer.v1.Analyzer"
	jsonCodecName      = "json"
	methodGetMetadata  = "/" + serviceName + "/GetMetadata"
	methodListCommands = "/" + serviceName + "/ListCommands"
	methodAnalyze      = "/" + serviceName + "/Analyze"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "WRITERLY_PLUGIN",
	MagicCookieValue: "writerly-analyzer",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type CommandDescriptor struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TimeoutMS   int32  `json:"timeout_ms"`
}

type ListCommandsResponse struct {
	Commands []CommandDescriptor `json:"commands"`
}

// AnalyzeRequest carries the work as JSON: {"title", "genre", "content"}.
type AnalyzeRequest struct {
	CommandID string `json:"command_id"`
	WorkID    string `json:"work_id"`
	InputJSON string `json:"input_json"`
}

type AnalyzeResponse struct {
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	OutputJSON string `json:"output_json"`
	ExitCode   int32  `json:"exit_code"`
}

type AnalyzerServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	ListCommands(ctx context.Context, in *Empty) (*ListCommandsResponse, error)
	Analyze(ctx context.Context, in *AnalyzeRequest) (*AnalyzeResponse, error)
}

type AnalyzerClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	ListCommands(ctx context.Context) (*ListCommandsResponse, error)
	Analyze(ctx context.Context, in *AnalyzeRequest) (*AnalyzeResponse, error)
}

type analyzerClient struct {
	conn *grpc.ClientConn
}

func NewAnalyzerClient(conn *grpc.ClientConn) AnalyzerClient {
	return &analyzerClient{conn: conn}
}

func (c *analyzerClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *analyzerClient) ListCommands(ctx context.Context) (*ListCommandsResponse, error) {
	out := &ListCommandsResponse{}
	if err := c.conn.Invoke(ctx, methodListCommands, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *analyzerClient) Analyze(ctx context.Context, in *AnalyzeRequest) (*AnalyzeResponse, error) {
	out := &AnalyzeResponse{}
	if err := c.conn.Invoke(ctx, methodAnalyze, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

// unary adapts a typed handler to grpc.MethodDesc.
func unary[Req any, Resp any](fullMethod string, call func(context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, fmt.Errorf("invalid request type")
			}
			return call(ctx, typed)
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterAnalyzerServer(server grpc.ServiceRegistrar, impl AnalyzerServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*AnalyzerServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "GetMetadata", Handler: unary(methodGetMetadata, impl.GetMetadata)},
			{MethodName: "ListCommands", Handler: unary(methodListCommands, impl.ListCommands)},
			{MethodName: "Analyze", Handler: unary(methodAnalyze, impl.Analyze)},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/analyzer-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl AnalyzerServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterAnalyzerServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewAnalyzerClient(conn), nil
}

func PluginMap(impl AnalyzerServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
