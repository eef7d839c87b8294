// Package grpc exposes the standard gRPC health service so orchestrators can
// probe the API without going through HTTP.
package grpc

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"

	"github.com/EgehanKilicarslan/bookstore/internal/database/service"
	"github.com/EgehanKilicarslan/bookstore/internal/worker"
)

// ServiceName is the health service name reported alongside the overall "" entry.
const ServiceName = "bookstore.API"

// HealthServer serves grpc.health.v1.Health backed by the HTTP health checks.
type HealthServer struct {
	server *grpc.Server
	health *health.Server
	logger *slog.Logger
}

// NewHealthServer creates the gRPC server and registers the health service.
// Both entries start as NOT_SERVING until the first probe.
func NewHealthServer(logger *slog.Logger) *HealthServer {
	server := grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    30 * time.Second,
			Timeout: 10 * time.Second,
		}),
	)
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(server, hs)

	return &HealthServer{
		server: server,
		health: hs,
		logger: logger,
	}
}

// Serve blocks until the listener fails or Stop is called.
func (s *HealthServer) Serve(lis net.Listener) error {
	s.logger.Info("🔌 [gRPC] Health server running", "addr", lis.Addr().String())
	return s.server.Serve(lis)
}

// SetServing flips both entries.
func (s *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Stop marks everything NOT_SERVING and drains in-flight RPCs.
func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
	s.logger.Info("✅ [gRPC] Health server stopped")
}

// ProbeJob runs the health checks and publishes the result to the gRPC
// health service.
func (s *HealthServer) ProbeJob(checker service.HealthService) worker.Job {
	return func(ctx context.Context) error {
		report := checker.Check(ctx)
		serving := report.Status == service.StatusHealthy
		s.SetServing(serving)
		if !serving {
			s.logger.Warn("⚠️ [gRPC] Health probe failed", "db_status", report.DBStatus)
		}
		return nil
	}
}
