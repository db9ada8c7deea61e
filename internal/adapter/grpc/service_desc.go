package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "goldflow.v1.SimulationService"

const (
	CompareSavingsMethod     = "/" + ServiceName + "/CompareSavings"
	ProjectCompoundingMethod = "/" + ServiceName + "/ProjectCompounding"
)

// SimulationServiceServer is the server API for the simulation service.
// Requests and responses are google.protobuf.Struct messages; field names are documented on each method.
type SimulationServiceServer interface {
	CompareSavings(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ProjectCompounding(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterSimulationServiceServer registers srv on s
func RegisterSimulationServiceServer(s grpc.ServiceRegistrar, srv SimulationServiceServer) {
	s.RegisterService(&SimulationServiceDesc, srv)
}

// SimulationServiceDesc describes the simulation service for grpc.Server
var SimulationServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SimulationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CompareSavings", Handler: compareSavingsHandler},
		{MethodName: "ProjectCompounding", Handler: projectCompoundingHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "goldflow/v1/simulation.proto",
}

func compareSavingsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SimulationServiceServer).CompareSavings(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CompareSavingsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SimulationServiceServer).CompareSavings(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func projectCompoundingHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SimulationServiceServer).ProjectCompounding(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ProjectCompoundingMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SimulationServiceServer).ProjectCompounding(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// SimulationServiceClient is the client API for the simulation service
type SimulationServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSimulationServiceClient creates a client on top of an existing connection
func NewSimulationServiceClient(cc grpc.ClientConnInterface) *SimulationServiceClient {
	return &SimulationServiceClient{cc: cc}
}

// CompareSavings calls the CompareSavings RPC
func (c *SimulationServiceClient) CompareSavings(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CompareSavingsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectCompounding calls the ProjectCompounding RPC
func (c *SimulationServiceClient) ProjectCompounding(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ProjectCompoundingMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
