// Package grpc_control exposes the store to operators over gRPC. Messages are
// the well-known Empty and Struct types, so the service needs no generated
// code: the descriptor below plays the role of control_grpc.pb.go.
package grpc_control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "kstock.Control"

const (
	Control_Refresh_FullMethodName    = "/kstock.Control/Refresh"
	Control_GetState_FullMethodName   = "/kstock.Control/GetState"
	Control_ClearError_FullMethodName = "/kstock.Control/ClearError"
)

// -----------------------------------------------------------------------------
// Server side
// -----------------------------------------------------------------------------

// ControlServer is the server API for the kstock.Control service.
type ControlServer interface {
	// Refresh runs Refresh-All and answers {"success": bool}.
	Refresh(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	// GetState answers the full store state.
	GetState(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	// ClearError clears the slot named by {"category": ...}, or all of them.
	ClearError(context.Context, *structpb.Struct) (*emptypb.Empty, error)
}

func RegisterControlServer(s grpc.ServiceRegistrar, srv ControlServer) {
	s.RegisterService(&Control_ServiceDesc, srv)
}

// -----------------------------------------------------------------------------

func _Control_Refresh_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServer).Refresh(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Control_Refresh_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControlServer).Refresh(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Control_GetState_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServer).GetState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Control_GetState_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControlServer).GetState(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Control_ClearError_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControlServer).ClearError(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Control_ClearError_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControlServer).ClearError(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Control_ServiceDesc is the grpc.ServiceDesc for the kstock.Control service.
var Control_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ControlServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Refresh", Handler: _Control_Refresh_Handler},
		{MethodName: "GetState", Handler: _Control_GetState_Handler},
		{MethodName: "ClearError", Handler: _Control_ClearError_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "kstock/control.proto",
}

// -----------------------------------------------------------------------------
// Client side
// -----------------------------------------------------------------------------

type ControlClient struct {
	cc grpc.ClientConnInterface
}

func NewControlClient(cc grpc.ClientConnInterface) *ControlClient {
	return &ControlClient{cc: cc}
}

func (c *ControlClient) Refresh(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Control_Refresh_FullMethodName, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ControlClient) GetState(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Control_GetState_FullMethodName, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ClearError clears one category, or every slot when category is empty.
func (c *ControlClient) ClearError(ctx context.Context, category string, opts ...grpc.CallOption) error {
	in, err := structpb.NewStruct(map[string]interface{}{"category": category})
	if err != nil {
		return err
	}
	return c.cc.Invoke(ctx, Control_ClearError_FullMethodName, in, new(emptypb.Empty), opts...)
}
