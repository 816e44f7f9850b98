package interceptor

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Recovery はハンドラ内の panic を Internal エラーに変換します。
func Recovery(l *slog.Logger) grpc.UnaryServerInterceptor {
	return recovery.UnaryServerInterceptor(
		recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
			attrs := []any{"panic", p, "stack", string(debug.Stack())}
			if id, ok := RequestIDFromContext(ctx); ok {
				attrs = append(attrs, "request_id", id)
			}
			l.ErrorContext(ctx, "grpc handler panicked", attrs...)
			return status.Error(codes.Internal, "internal error")
		}),
	)
}
