package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/joseph-ayodele/docsplit/internal/app"
	"github.com/joseph-ayodele/docsplit/internal/common"
	"github.com/joseph-ayodele/docsplit/internal/server"
)

func main() {
	cfg, err := common.LoadConfig(os.Getenv("DOCSPLIT_CONFIG"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateServer(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Error("failed to listen on address", "addr", cfg.Server.GRPCAddr, "error", err)
		os.Exit(1)
	}

	accessLog, err := zap.NewProduction()
	if err != nil {
		logger.Error("failed to create access logger", "error", err)
		os.Exit(1)
	}
	defer func() { _ = accessLog.Sync() }()

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(server.AccessLog(accessLog)))
	server.RegisterPackageServiceServer(grpcServer, server.NewPackageServer(a.Processor, a.Store, a.Exporter, logger))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(server.PackageServiceName, healthpb.HealthCheckResponse_SERVING)
	// Reflection for grpcurl
	reflection.Register(grpcServer)

	logger.Info("docsplitd listening", "addr", cfg.Server.GRPCAddr, "store", a.Store != nil, "types", a.Registry.Len())
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("grpc serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	hs.Shutdown()
	grpcServer.GracefulStop()
	logger.Info("stopped")
}
