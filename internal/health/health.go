// Package health implements the liveness check the hosting platform polls.
// A check verifies database connectivity with a trivial query and produces the
// exact JSON shape the platform expects.
package health

import (
	"context"
	"fmt"
	"time"

	"dmbot/internal/config"
	"dmbot/pkg/logger"
	"dmbot/pkg/storage"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const (
	// StatusHealthy is reported when the database check succeeds.
	StatusHealthy = "healthy"
	// StatusUnhealthy is reported when the database check fails.
	StatusUnhealthy = "unhealthy"
	// StatusRunning is reported by the catch-all route for any other path.
	StatusRunning = "running"

	// databaseConnected is the value of the database field on a healthy report.
	databaseConnected = "connected"
)

// Report is the payload served by the health endpoint. Database is set only on
// healthy reports, Error only on unhealthy ones.
type Report struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Error    string `json:"error,omitempty"`
	Service  string `json:"service"`
}

// Healthy reports whether the check behind this report succeeded.
func (r Report) Healthy() bool { return r.Status == StatusHealthy }

// Options configure the checker.
type Options struct {
	// Service is the fixed identifier included in every report.
	Service string
	// Timeout bounds a single database check.
	Timeout time.Duration
}

// NewOptions constructs an Options value from the application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Service: cfg.ServiceName,
		Timeout: cfg.HTTP.HealthTimeout,
	}
}

// Checker runs health checks against the database and records check metrics.
type Checker struct {
	options Options
	pinger  storage.Pinger

	checks   metric.Int64Counter
	duration metric.Float64Histogram
}

// New creates a Checker that pings the database through the provided Pinger
// and records metrics on the given meter provider.
func New(options Options, pinger storage.Pinger, mp metric.MeterProvider) (*Checker, error) {
	meter := mp.Meter("dmbot/health")

	checks, err := meter.Int64Counter("health_checks_total",
		metric.WithDescription("Number of health checks performed, by outcome."))
	if err != nil {
		return nil, fmt.Errorf("could not create health checks counter: %w", err)
	}

	duration, err := meter.Float64Histogram("health_check_duration_seconds",
		metric.WithDescription("Duration of the database connectivity check."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("could not create health check histogram: %w", err)
	}

	return &Checker{
		options:  options,
		pinger:   pinger,
		checks:   checks,
		duration: duration,
	}, nil
}

// Service returns the fixed service identifier included in reports.
func (c *Checker) Service() string { return c.options.Service }

// Check pings the database and returns the resulting report. The check is
// bounded by the configured timeout so a wedged database cannot stall the
// health endpoint past the platform's probe deadline.
func (c *Checker) Check(ctx context.Context) Report {
	if c.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.options.Timeout)
		defer cancel()
	}

	start := time.Now()
	err := c.pinger.Ping(ctx)
	elapsed := time.Since(start).Seconds()

	outcome := StatusHealthy
	if err != nil {
		outcome = StatusUnhealthy
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	c.checks.Add(ctx, 1, attrs)
	c.duration.Record(ctx, elapsed, attrs)

	if err != nil {
		logger.Warn(ctx, "health check failed", zap.Error(err))

		return Report{
			Status:  StatusUnhealthy,
			Error:   err.Error(),
			Service: c.options.Service,
		}
	}

	return Report{
		Status:   StatusHealthy,
		Database: databaseConnected,
		Service:  c.options.Service,
	}
}
