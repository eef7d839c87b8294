package service

import (
	"context"
	"log/slog"
	"time"
)

// Pinger is satisfied by *sql.DB and *database.RedisClient.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthReport is the /health payload.
type HealthReport struct {
	Status         string `json:"status"`
	DBStatus       string `json:"db_status"`
	RedisStatus    string `json:"redis_status,omitempty"`
	Version        string `json:"version"`
	BuildTimestamp string `json:"build_timestamp"`
}

// Health states
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusConnected = "connected"
	StatusDown      = "disconnected"
)

// HealthService reports process and dependency health.
type HealthService interface {
	Check(ctx context.Context) HealthReport
}

type healthService struct {
	db        Pinger
	redis     Pinger
	version   string
	startedAt time.Time
	timeout   time.Duration
	logger    *slog.Logger
}

// NewHealthService creates a health checker. redis may be nil when the
// cache is not configured; it never makes the service unhealthy.
func NewHealthService(db Pinger, redis Pinger, version string, logger *slog.Logger) HealthService {
	return &healthService{
		db:        db,
		redis:     redis,
		version:   version,
		startedAt: time.Now().UTC(),
		timeout:   2 * time.Second,
		logger:    logger,
	}
}

func (s *healthService) Check(ctx context.Context) HealthReport {
	report := HealthReport{
		Status:         StatusHealthy,
		DBStatus:       StatusConnected,
		Version:        s.version,
		BuildTimestamp: s.startedAt.Format(time.RFC3339),
	}

	if err := s.ping(ctx, s.db); err != nil {
		s.logger.Warn("⚠️ [Health] Database ping failed", "error", err)
		report.Status = StatusUnhealthy
		report.DBStatus = StatusDown
	}

	if s.redis != nil {
		report.RedisStatus = StatusConnected
		if err := s.ping(ctx, s.redis); err != nil {
			s.logger.Warn("⚠️ [Health] Redis ping failed", "error", err)
			report.RedisStatus = StatusDown
		}
	}

	return report
}

func (s *healthService) ping(ctx context.Context, p Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return p.PingContext(ctx)
}
