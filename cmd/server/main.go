package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"

	grpcadapter "github.com/simaogato/goldflow-backend/internal/adapter/grpc"
	"github.com/simaogato/goldflow-backend/internal/app"
	"github.com/simaogato/goldflow-backend/internal/config"
	"github.com/simaogato/goldflow-backend/internal/logger"
	"github.com/simaogato/goldflow-backend/internal/usecase/comparison"
	"github.com/simaogato/goldflow-backend/internal/usecase/projection"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// 2. Initialize the price provider (Yahoo or stored quotes)
	ctx := context.Background()
	prices, cleanup, err := app.NewPriceProvider(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize price provider", zap.Error(err))
	}
	defer cleanup()

	// 3. Initialize Services (Use Cases)
	comparisonService := comparison.NewComparisonService(prices, log.Named("comparison"))
	projectionService := projection.NewProjectionService(log.Named("projection"))

	// 4. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(log.Named("grpc")),
			grpcadapter.RecoveryInterceptor(log.Named("grpc")),
			grpcadapter.AuthInterceptor(cfg.Server.APIToken),
		),
	)
	grpcadapter.RegisterSimulationServiceServer(grpcServer, grpcadapter.NewServer(comparisonService, projectionService))

	lis, err := net.Listen("tcp", cfg.Server.GRPCPort)
	if err != nil {
		log.Fatal("Failed to listen", zap.String("addr", cfg.Server.GRPCPort), zap.Error(err))
	}

	go func() {
		log.Info("gRPC server listening", zap.String("addr", cfg.Server.GRPCPort), zap.String("prices", cfg.Prices.Source))
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal("Failed to serve gRPC server", zap.Error(err))
		}
	}()

	// 5. Start metrics endpoint
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:              cfg.Server.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("Metrics server listening", zap.String("addr", cfg.Server.MetricsAddr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	// Graceful shutdown
	waitForShutdown(log, grpcServer, metricsServer)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down both servers
func waitForShutdown(log *zap.Logger, grpcServer *grpclib.Server, metricsServer *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info("Received signal, shutting down gracefully", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(ctx); err != nil {
		log.Warn("Metrics server shutdown failed", zap.Error(err))
	}

	grpcServer.GracefulStop()
	log.Info("gRPC server stopped")
}
