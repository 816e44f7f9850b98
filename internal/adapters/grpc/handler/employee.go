package handler

import (
	"context"
	"fmt"

	"github.com/ogurasousui/codex-grpc-employee/internal/adapters/grpc/employeepb"
	"github.com/ogurasousui/codex-grpc-employee/internal/core/employee"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// EmployeeGrpcHandler は EmployeeService の gRPC 実装です。
type EmployeeGrpcHandler struct {
	svc employee.UseCase
	employeepb.UnimplementedEmployeeServiceServer
}

// NewEmployeeGrpcHandler は EmployeeGrpcHandler を生成します。
func NewEmployeeGrpcHandler(svc employee.UseCase) *EmployeeGrpcHandler {
	return &EmployeeGrpcHandler{svc: svc}
}

// SaveEmployee は社員を登録します。
func (h *EmployeeGrpcHandler) SaveEmployee(ctx context.Context, req *employeepb.SaveEmployeeRequest) (*employeepb.SaveEmployeeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	saved, err := h.svc.SaveEmployee(ctx, employee.SaveEmployeeInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &employeepb.SaveEmployeeResponse{Employee: toProtoEmployee(saved)}, nil
}

// ListEmployees は全社員を返します。
func (h *EmployeeGrpcHandler) ListEmployees(ctx context.Context, _ *emptypb.Empty) (*employeepb.ListEmployeesResponse, error) {
	employees, err := h.svc.GetAllEmployees(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	protoEmployees := make([]*employeepb.Employee, 0, len(employees))
	for _, emp := range employees {
		protoEmployees = append(protoEmployees, toProtoEmployee(emp))
	}

	return &employeepb.ListEmployeesResponse{Employees: protoEmployees}, nil
}

// GetEmployee は社員を取得します。存在しない場合は NotFound を返します。
func (h *EmployeeGrpcHandler) GetEmployee(ctx context.Context, req *employeepb.GetEmployeeRequest) (*employeepb.GetEmployeeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, ok, err := h.svc.GetEmployeeByID(ctx, employee.GetEmployeeInput{ID: req.Id})
	if err != nil {
		return nil, toStatusError(err)
	}
	if !ok {
		return nil, status.Error(codes.NotFound, fmt.Sprintf("employee %d not found", req.Id))
	}

	return &employeepb.GetEmployeeResponse{Employee: toProtoEmployee(found)}, nil
}

// UpdateEmployee は社員情報を上書きします。
func (h *EmployeeGrpcHandler) UpdateEmployee(ctx context.Context, req *employeepb.UpdateEmployeeRequest) (*employeepb.UpdateEmployeeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	updated, err := h.svc.UpdateEmployee(ctx, employee.UpdateEmployeeInput{
		ID:        req.Id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &employeepb.UpdateEmployeeResponse{Employee: toProtoEmployee(updated)}, nil
}

// DeleteEmployee は社員を削除します。
func (h *EmployeeGrpcHandler) DeleteEmployee(ctx context.Context, req *employeepb.DeleteEmployeeRequest) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if err := h.svc.DeleteEmployee(ctx, employee.DeleteEmployeeInput{ID: req.Id}); err != nil {
		return nil, toStatusError(err)
	}

	return &emptypb.Empty{}, nil
}

// FindEmployeeByName は氏名が一致する社員を 1 件返します。
func (h *EmployeeGrpcHandler) FindEmployeeByName(ctx context.Context, req *employeepb.FindEmployeeByNameRequest) (*employeepb.FindEmployeeByNameResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.svc.FindEmployeeByName(ctx, employee.FindEmployeeByNameInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Query:     employee.QueryKind(req.Query),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &employeepb.FindEmployeeByNameResponse{Employee: toProtoEmployee(found)}, nil
}

func toProtoEmployee(emp *employee.Employee) *employeepb.Employee {
	if emp == nil {
		return nil
	}

	return &employeepb.Employee{
		Id:        emp.ID,
		FirstName: emp.FirstName,
		LastName:  emp.LastName,
		Email:     emp.Email,
	}
}
