// Package interceptor は gRPC サーバーに差し込む横断的な処理をまとめます。
package interceptor

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// RequestIDKey はリクエスト ID を運ぶメタデータのキーです。
const RequestIDKey = "x-request-id"

type requestIDCtxKey struct{}

// RequestIDFromContext はコンテキストに格納されたリクエスト ID を返します。
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDCtxKey{}).(string)
	return id, ok && id != ""
}

// ContextWithRequestID はリクエスト ID を格納したコンテキストを返します。
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey{}, id)
}

// RequestID は受信メタデータのリクエスト ID を引き継ぎ、無ければ採番します。
// 決定した ID はレスポンスヘッダーにも付与します。
func RequestID() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		id := incomingRequestID(ctx)
		if id == "" {
			id = uuid.NewString()
		}

		ctx = ContextWithRequestID(ctx, id)
		// ストリーム外 (単体テストなど) では失敗するが、ハンドラ処理は継続する
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDKey, id))

		return handler(ctx, req)
	}
}

func incomingRequestID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	for _, v := range md.Get(RequestIDKey) {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
