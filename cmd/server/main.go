package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	pgrepo "github.com/ogurasousui/codex-grpc-employee/internal/adapters/repository/postgres"
	sqliterepo "github.com/ogurasousui/codex-grpc-employee/internal/adapters/repository/sqlite"
	"github.com/ogurasousui/codex-grpc-employee/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-employee/internal/platform/config"
	pg "github.com/ogurasousui/codex-grpc-employee/internal/platform/db/postgres"
	sqlitedb "github.com/ogurasousui/codex-grpc-employee/internal/platform/db/sqlite"
	"github.com/ogurasousui/codex-grpc-employee/internal/platform/logger"
	"github.com/ogurasousui/codex-grpc-employee/internal/platform/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(os.Stdout, cfg.Log)
	if err != nil {
		return err
	}
	slog.SetDefault(log)

	svc, cleanup, err := buildService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	grpcServer := server.New(cfg.Server.ListenAddr, svc, log, cfg.Server.ShutdownTimeout)

	log.Info("starting employee service", "driver", cfg.Storage.Driver, "addr", cfg.Server.ListenAddr)

	return grpcServer.Run(ctx)
}

func buildService(ctx context.Context, cfg *config.Config, log *slog.Logger) (*employee.Service, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := sqlitedb.Open(ctx, cfg.SQLite.Path, log)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		repo := sqliterepo.NewEmployeeRepository(db)
		return employee.NewService(repo, nil), func() { _ = db.Close() }, nil
	default:
		dbPool, err := pg.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize database pool: %w", err)
		}
		repo := pgrepo.NewEmployeeRepository(dbPool)
		return employee.NewService(repo, pg.NewTransactionManager(dbPool)), dbPool.Close, nil
	}
}
