package logger

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ogurasousui/codex-grpc-employee/internal/platform/config"
)

// New は設定に従って slog.Logger を生成します。
func New(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("logger: parse level %q: %w", cfg.Level, err)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("logger: unsupported format %q", cfg.Format)
	}

	return slog.New(handler), nil
}

// Discard は出力を捨てるロガーを返します。テスト用です。
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
