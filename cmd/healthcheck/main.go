// Command healthcheck probes a running server over gRPC and exits non-zero
// unless it reports SERVING. Intended for container health checks.
//
//	healthcheck [-addr host:port] [-service name] [-tls]
package main

import (
	"context"
	"flag"
	"net"
	"os"
	"time"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/EgehanKilicarslan/bookstore/internal/config"
	internalgrpc "github.com/EgehanKilicarslan/bookstore/internal/grpc"
	"github.com/EgehanKilicarslan/bookstore/internal/logger"
)

func main() {
	cfg := config.LoadConfig()

	addr := flag.String("addr", net.JoinHostPort("127.0.0.1", cfg.ApiGrpcPort), "gRPC health address")
	serviceName := flag.String("service", internalgrpc.ServiceName, "service name to check")
	useTLS := flag.Bool("tls", false, "dial with TLS")
	timeout := flag.Duration("timeout", 3*time.Second, "probe timeout")
	flag.Parse()

	appLogger := logger.New(cfg)

	client, err := internalgrpc.NewClient(*addr, *useTLS)
	if err != nil {
		appLogger.Error("❌ [Healthcheck] Failed to create client", "addr", *addr, "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	resp, err := client.Health.Check(ctx, &healthpb.HealthCheckRequest{Service: *serviceName})
	if err != nil {
		appLogger.Error("❌ [Healthcheck] Probe failed", "addr", *addr, "error", err)
		os.Exit(1)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		appLogger.Warn("⚠️ [Healthcheck] Not serving", "service", *serviceName, "status", resp.GetStatus().String())
		os.Exit(1)
	}
	appLogger.Debug("✅ [Healthcheck] Serving", "service", *serviceName)
}
