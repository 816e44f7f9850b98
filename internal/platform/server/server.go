package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/ogurasousui/codex-grpc-employee/internal/adapters/grpc/employeepb"
	"github.com/ogurasousui/codex-grpc-employee/internal/adapters/grpc/handler"
	"github.com/ogurasousui/codex-grpc-employee/internal/adapters/grpc/interceptor"
	"github.com/ogurasousui/codex-grpc-employee/internal/core/employee"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr      string
	shutdownTimeout time.Duration
	grpcServer      *grpc.Server
	health          *health.Server
	log             *slog.Logger
}

// New は EmployeeService とヘルスチェックを登録した gRPC サーバーを構築します。
func New(listenAddr string, svc employee.UseCase, log *slog.Logger, shutdownTimeout time.Duration, opts ...grpc.ServerOption) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			interceptor.RequestID(),
			interceptor.Logging(log),
			interceptor.Recovery(log),
		),
	}, opts...)

	srv := grpc.NewServer(opts...)
	employeepb.RegisterEmployeeServiceServer(srv, handler.NewEmployeeGrpcHandler(svc))

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)

	return &Server{
		listenAddr:      listenAddr,
		shutdownTimeout: shutdownTimeout,
		grpcServer:      srv,
		health:          healthSrv,
		log:             log,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると停止します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は与えられたリスナーで待ち受けます。
// コンテキストのキャンセル後は GracefulStop を試み、shutdownTimeout を過ぎると強制停止します。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(employeepb.ServiceName, healthpb.HealthCheckResponse_SERVING)

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-serveCtx.Done()
		s.shutdown()
	}()

	s.log.Info("grpc server listening", "addr", lis.Addr().String())

	serveErr := s.grpcServer.Serve(lis)
	cancel()
	<-stopped

	if serveErr != nil && !errors.Is(serveErr, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", serveErr)
	}
	return nil
}

func (s *Server) shutdown() {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	if s.shutdownTimeout <= 0 {
		<-done
		s.log.Info("grpc server stopped")
		return
	}

	timer := time.NewTimer(s.shutdownTimeout)
	defer timer.Stop()

	select {
	case <-done:
		s.log.Info("grpc server stopped")
	case <-timer.C:
		s.log.Warn("graceful stop timed out, forcing stop", "timeout", s.shutdownTimeout)
		s.grpcServer.Stop()
		<-done
	}
}
