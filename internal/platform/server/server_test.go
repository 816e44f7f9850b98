package server

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/ogurasousui/codex-grpc-employee/internal/adapters/grpc/employeepb"
	"github.com/ogurasousui/codex-grpc-employee/internal/adapters/grpc/interceptor"
	sqliterepo "github.com/ogurasousui/codex-grpc-employee/internal/adapters/repository/sqlite"
	"github.com/ogurasousui/codex-grpc-employee/internal/core/employee"
	sqlitedb "github.com/ogurasousui/codex-grpc-employee/internal/platform/db/sqlite"
	"github.com/ogurasousui/codex-grpc-employee/internal/platform/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
)

func startServer(t *testing.T) (*grpc.ClientConn, context.CancelFunc, <-chan error) {
	t.Helper()

	db, err := sqlitedb.Open(context.Background(), filepath.Join(t.TempDir(), "employees.db"), nil)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := employee.NewService(sqliterepo.NewEmployeeRepository(db), nil)
	srv := New("bufconn", svc, logger.Discard(), time.Second)

	lis := bufconn.Listen(1024 * 1024)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ctx, lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		cancel()
		t.Fatalf("failed to dial bufconn: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	t.Cleanup(cancel)

	return conn, cancel, errCh
}

func TestServer_EmployeeLifecycle(t *testing.T) {
	t.Parallel()

	conn, _, _ := startServer(t)
	client := employeepb.NewEmployeeServiceClient(conn)
	ctx := context.Background()

	list, err := client.ListEmployees(ctx, &emptypb.Empty{})
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if len(list.GetEmployees()) != 0 {
		t.Fatalf("expected empty store, got %d", len(list.GetEmployees()))
	}

	saved, err := client.SaveEmployee(ctx, &employeepb.SaveEmployeeRequest{
		FirstName: "Vijay",
		LastName:  "Singh",
		Email:     "vijay@gmail.com",
	})
	if err != nil {
		t.Fatalf("SaveEmployee returned error: %v", err)
	}
	id := saved.GetEmployee().GetId()
	if id == 0 {
		t.Fatal("expected assigned id")
	}

	_, err = client.SaveEmployee(ctx, &employeepb.SaveEmployeeRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "vijay@gmail.com",
	})
	if status.Code(err) != codes.AlreadyExists {
		t.Fatalf("expected AlreadyExists for duplicate email, got %v", status.Code(err))
	}

	got, err := client.GetEmployee(ctx, &employeepb.GetEmployeeRequest{Id: id})
	if err != nil {
		t.Fatalf("GetEmployee returned error: %v", err)
	}
	if got.GetEmployee().GetEmail() != "vijay@gmail.com" {
		t.Fatalf("unexpected employee: %+v", got.GetEmployee())
	}

	updated, err := client.UpdateEmployee(ctx, &employeepb.UpdateEmployeeRequest{
		Id:        id,
		FirstName: "Vijay",
		LastName:  "Kumar",
		Email:     "vijay.kumar@gmail.com",
	})
	if err != nil {
		t.Fatalf("UpdateEmployee returned error: %v", err)
	}
	if updated.GetEmployee().GetLastName() != "Kumar" {
		t.Fatalf("expected updated last name, got %s", updated.GetEmployee().GetLastName())
	}

	for _, query := range []string{"", "positional", "named", "native", "native_named"} {
		found, err := client.FindEmployeeByName(ctx, &employeepb.FindEmployeeByNameRequest{
			FirstName: "Vijay",
			LastName:  "Kumar",
			Query:     query,
		})
		if err != nil {
			t.Fatalf("FindEmployeeByName(%q) returned error: %v", query, err)
		}
		if found.GetEmployee().GetId() != id {
			t.Fatalf("FindEmployeeByName(%q) returned id %d", query, found.GetEmployee().GetId())
		}
	}

	_, err = client.FindEmployeeByName(ctx, &employeepb.FindEmployeeByNameRequest{FirstName: "No", LastName: "Body"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound for unknown name, got %v", status.Code(err))
	}

	_, err = client.FindEmployeeByName(ctx, &employeepb.FindEmployeeByNameRequest{FirstName: "Vijay", LastName: "Kumar", Query: "jpql"})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument for unknown query kind, got %v", status.Code(err))
	}

	if _, err := client.DeleteEmployee(ctx, &employeepb.DeleteEmployeeRequest{Id: id}); err != nil {
		t.Fatalf("DeleteEmployee returned error: %v", err)
	}
	if _, err := client.DeleteEmployee(ctx, &employeepb.DeleteEmployeeRequest{Id: id}); err != nil {
		t.Fatalf("DeleteEmployee of absent id returned error: %v", err)
	}

	_, err = client.GetEmployee(ctx, &employeepb.GetEmployeeRequest{Id: id})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound after delete, got %v", status.Code(err))
	}
}

func TestServer_SaveStoresEmailAsGiven(t *testing.T) {
	t.Parallel()

	conn, _, _ := startServer(t)
	client := employeepb.NewEmployeeServiceClient(conn)

	resp, err := client.SaveEmployee(context.Background(), &employeepb.SaveEmployeeRequest{
		FirstName: "Plain",
		LastName:  "Text",
		Email:     "not-an-email",
	})
	if err != nil {
		t.Fatalf("SaveEmployee returned error: %v", err)
	}
	if resp.GetEmployee().GetEmail() != "not-an-email" {
		t.Fatalf("expected email stored as given, got %q", resp.GetEmployee().GetEmail())
	}
}

func TestServer_RequestIDHeader(t *testing.T) {
	t.Parallel()

	conn, _, _ := startServer(t)
	client := employeepb.NewEmployeeServiceClient(conn)

	ctx := metadata.AppendToOutgoingContext(context.Background(), interceptor.RequestIDKey, "req-42")
	var header metadata.MD
	if _, err := client.ListEmployees(ctx, &emptypb.Empty{}, grpc.Header(&header)); err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}

	if got := header.Get(interceptor.RequestIDKey); len(got) != 1 || got[0] != "req-42" {
		t.Fatalf("expected echoed request id, got %v", got)
	}
}

func TestServer_HealthAndShutdown(t *testing.T) {
	t.Parallel()

	conn, cancel, errCh := startServer(t)
	health := healthpb.NewHealthClient(conn)

	resp, err := health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: employeepb.ServiceName})
	if err != nil {
		t.Fatalf("health check returned error: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("expected SERVING, got %v", resp.GetStatus())
	}

	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}
}

func TestServer_ServeReturnsWhenListenerFails(t *testing.T) {
	t.Parallel()

	srv := New("bufconn", nil, logger.Discard(), time.Second)

	lis := bufconn.Listen(1024)
	if err := lis.Close(); err != nil {
		t.Fatalf("failed to close listener: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(context.Background(), lis)
	}()

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("expected error from Serve on closed listener")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after listener failure")
	}
}
