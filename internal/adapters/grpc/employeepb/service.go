package employeepb

import (
	"context"

	"github.com/ogurasousui/codex-grpc-employee/internal/adapters/grpc/codec"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "employee.v1.EmployeeService"

const (
	EmployeeService_SaveEmployee_FullMethodName       = "/" + ServiceName + "/SaveEmployee"
	EmployeeService_ListEmployees_FullMethodName      = "/" + ServiceName + "/ListEmployees"
	EmployeeService_GetEmployee_FullMethodName        = "/" + ServiceName + "/GetEmployee"
	EmployeeService_UpdateEmployee_FullMethodName     = "/" + ServiceName + "/UpdateEmployee"
	EmployeeService_DeleteEmployee_FullMethodName     = "/" + ServiceName + "/DeleteEmployee"
	EmployeeService_FindEmployeeByName_FullMethodName = "/" + ServiceName + "/FindEmployeeByName"
)

// EmployeeServiceServer はサーバー側の実装が満たすインターフェースです。
type EmployeeServiceServer interface {
	SaveEmployee(context.Context, *SaveEmployeeRequest) (*SaveEmployeeResponse, error)
	ListEmployees(context.Context, *emptypb.Empty) (*ListEmployeesResponse, error)
	GetEmployee(context.Context, *GetEmployeeRequest) (*GetEmployeeResponse, error)
	UpdateEmployee(context.Context, *UpdateEmployeeRequest) (*UpdateEmployeeResponse, error)
	DeleteEmployee(context.Context, *DeleteEmployeeRequest) (*emptypb.Empty, error)
	FindEmployeeByName(context.Context, *FindEmployeeByNameRequest) (*FindEmployeeByNameResponse, error)
}

// UnimplementedEmployeeServiceServer は未実装メソッドに Unimplemented を返します。
type UnimplementedEmployeeServiceServer struct{}

func (UnimplementedEmployeeServiceServer) SaveEmployee(context.Context, *SaveEmployeeRequest) (*SaveEmployeeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SaveEmployee not implemented")
}

func (UnimplementedEmployeeServiceServer) ListEmployees(context.Context, *emptypb.Empty) (*ListEmployeesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEmployees not implemented")
}

func (UnimplementedEmployeeServiceServer) GetEmployee(context.Context, *GetEmployeeRequest) (*GetEmployeeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetEmployee not implemented")
}

func (UnimplementedEmployeeServiceServer) UpdateEmployee(context.Context, *UpdateEmployeeRequest) (*UpdateEmployeeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateEmployee not implemented")
}

func (UnimplementedEmployeeServiceServer) DeleteEmployee(context.Context, *DeleteEmployeeRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteEmployee not implemented")
}

func (UnimplementedEmployeeServiceServer) FindEmployeeByName(context.Context, *FindEmployeeByNameRequest) (*FindEmployeeByNameResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindEmployeeByName not implemented")
}

// RegisterEmployeeServiceServer は srv を gRPC サーバーに登録します。
func RegisterEmployeeServiceServer(s grpc.ServiceRegistrar, srv EmployeeServiceServer) {
	s.RegisterService(&EmployeeService_ServiceDesc, srv)
}

// unaryHandler は型付きのハンドラ関数から grpc.MethodDesc 用のハンドラを組み立てます。
func unaryHandler[Req any, Resp any](fullMethod string, call func(EmployeeServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EmployeeServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(EmployeeServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// EmployeeService_ServiceDesc は employee.v1.EmployeeService のサービス定義です。
var EmployeeService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EmployeeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SaveEmployee",
			Handler:    unaryHandler(EmployeeService_SaveEmployee_FullMethodName, EmployeeServiceServer.SaveEmployee),
		},
		{
			MethodName: "ListEmployees",
			Handler:    unaryHandler(EmployeeService_ListEmployees_FullMethodName, EmployeeServiceServer.ListEmployees),
		},
		{
			MethodName: "GetEmployee",
			Handler:    unaryHandler(EmployeeService_GetEmployee_FullMethodName, EmployeeServiceServer.GetEmployee),
		},
		{
			MethodName: "UpdateEmployee",
			Handler:    unaryHandler(EmployeeService_UpdateEmployee_FullMethodName, EmployeeServiceServer.UpdateEmployee),
		},
		{
			MethodName: "DeleteEmployee",
			Handler:    unaryHandler(EmployeeService_DeleteEmployee_FullMethodName, EmployeeServiceServer.DeleteEmployee),
		},
		{
			MethodName: "FindEmployeeByName",
			Handler:    unaryHandler(EmployeeService_FindEmployeeByName_FullMethodName, EmployeeServiceServer.FindEmployeeByName),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "employee/v1/employee.proto",
}

// EmployeeServiceClient は EmployeeService のクライアントです。
type EmployeeServiceClient interface {
	SaveEmployee(ctx context.Context, in *SaveEmployeeRequest, opts ...grpc.CallOption) (*SaveEmployeeResponse, error)
	ListEmployees(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListEmployeesResponse, error)
	GetEmployee(ctx context.Context, in *GetEmployeeRequest, opts ...grpc.CallOption) (*GetEmployeeResponse, error)
	UpdateEmployee(ctx context.Context, in *UpdateEmployeeRequest, opts ...grpc.CallOption) (*UpdateEmployeeResponse, error)
	DeleteEmployee(ctx context.Context, in *DeleteEmployeeRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	FindEmployeeByName(ctx context.Context, in *FindEmployeeByNameRequest, opts ...grpc.CallOption) (*FindEmployeeByNameResponse, error)
}

type employeeServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewEmployeeServiceClient は JSON コーデックを使うクライアントを生成します。
func NewEmployeeServiceClient(cc grpc.ClientConnInterface) EmployeeServiceClient {
	return &employeeServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *employeeServiceClient) SaveEmployee(ctx context.Context, in *SaveEmployeeRequest, opts ...grpc.CallOption) (*SaveEmployeeResponse, error) {
	return invoke[SaveEmployeeResponse](ctx, c.cc, EmployeeService_SaveEmployee_FullMethodName, in, opts)
}

func (c *employeeServiceClient) ListEmployees(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListEmployeesResponse, error) {
	return invoke[ListEmployeesResponse](ctx, c.cc, EmployeeService_ListEmployees_FullMethodName, in, opts)
}

func (c *employeeServiceClient) GetEmployee(ctx context.Context, in *GetEmployeeRequest, opts ...grpc.CallOption) (*GetEmployeeResponse, error) {
	return invoke[GetEmployeeResponse](ctx, c.cc, EmployeeService_GetEmployee_FullMethodName, in, opts)
}

func (c *employeeServiceClient) UpdateEmployee(ctx context.Context, in *UpdateEmployeeRequest, opts ...grpc.CallOption) (*UpdateEmployeeResponse, error) {
	return invoke[UpdateEmployeeResponse](ctx, c.cc, EmployeeService_UpdateEmployee_FullMethodName, in, opts)
}

func (c *employeeServiceClient) DeleteEmployee(ctx context.Context, in *DeleteEmployeeRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, EmployeeService_DeleteEmployee_FullMethodName, in, opts)
}

func (c *employeeServiceClient) FindEmployeeByName(ctx context.Context, in *FindEmployeeByNameRequest, opts ...grpc.CallOption) (*FindEmployeeByNameResponse, error) {
	return invoke[FindEmployeeByNameResponse](ctx, c.cc, EmployeeService_FindEmployeeByName_FullMethodName, in, opts)
}
