package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	health "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/pribylovaa/mensa-upb-stats/internal/config"
	"github.com/pribylovaa/mensa-upb-stats/internal/service"
	"github.com/pribylovaa/mensa-upb-stats/internal/storage/postgres"
	httpapi "github.com/pribylovaa/mensa-upb-stats/internal/transport/http"
	"github.com/pribylovaa/mensa-upb-stats/internal/transport/http/handlers"
	"github.com/pribylovaa/mensa-upb-stats/pkg/interceptors"
)

// serve — долгоживущий режим: периодический IngestWeek, HTTP API и gRPC health
// до отмены ctx (SIGINT/SIGTERM).
func serve(ctx context.Context, cfg *config.Config, svc *service.Service, store *postgres.Storage,
	scraper service.Scraper, log *slog.Logger) error {
	var ready atomic.Bool

	router := httpapi.NewRouter(handlers.New(svc, &ready, store), httpapi.Options{
		Logger:  log,
		Timeout: cfg.Timeouts.Service,
		Metrics: promhttp.Handler(),
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpc_prometheus.EnableHandlingTimeHistogram()

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			interceptors.Recover(log),
			interceptors.UnaryLoggingInterceptor(log),
			interceptors.WithTimeout(cfg.Timeouts.Service),
			grpc_prometheus.UnaryServerInterceptor,
		),
		grpc.ChainStreamInterceptor(
			grpc_prometheus.StreamServerInterceptor,
		),
	)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)

	if cfg.Env == envLocal || cfg.Env == envDev {
		reflection.Register(grpcServer)
	}
	grpc_prometheus.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPC.Addr())
	if err != nil {
		return fmt.Errorf("grpc_listen: %w", err)
	}
	log.Info("grpc_listen_start", slog.String("addr", cfg.GRPC.Addr()))

	serveErrCh := make(chan error, 2)

	go func() {
		log.Info("http_listen_start", slog.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- fmt.Errorf("http_serve: %w", err)
		}
	}()

	go func() {
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serveErrCh <- fmt.Errorf("grpc_serve: %w", err)
		}
	}()

	ingestCtx, ingestCancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := svc.StartIngest(ingestCtx, scraper); err != nil {
			log.Error("ingest_start_failed", slog.String("err", err.Error()))
		}
	}()

	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	ready.Store(true)

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown_requested")
	case runErr = <-serveErrCh:
		log.Error("serve_failed", slog.String("err", runErr.Error()))
	}

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	ready.Store(false)

	ingestCancel()
	wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		log.Info("grpc_stopped")
	case <-shutdownCtx.Done():
		log.Warn("grpc_force_stop")
		grpcServer.Stop()
	}

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_failed", slog.String("err", err.Error()))
	}

	return runErr
}
