package interceptor

import (
	"context"
	"log/slog"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"google.golang.org/grpc"
)

// SlogLogger は slog.Logger を go-grpc-middleware の logging.Logger に変換します。
func SlogLogger(l *slog.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

// Logging は RPC 完了時にメソッド名・ステータス・所要時間をログ出力します。
func Logging(l *slog.Logger) grpc.UnaryServerInterceptor {
	return logging.UnaryServerInterceptor(
		SlogLogger(l),
		logging.WithLogOnEvents(logging.FinishCall),
		logging.WithFieldsFromContext(requestIDFields),
	)
}

func requestIDFields(ctx context.Context) logging.Fields {
	if id, ok := RequestIDFromContext(ctx); ok {
		return logging.Fields{"request_id", id}
	}
	return nil
}
