package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nkhandel/dietplanner-backend/internal/alerts"
	"github.com/nkhandel/dietplanner-backend/pkg/config"
	"github.com/nkhandel/dietplanner-backend/pkg/db"
	"github.com/nkhandel/dietplanner-backend/pkg/logger"
	"github.com/nkhandel/dietplanner-backend/pkg/metrics"
)

const sweepJobName = "low_stock_sweep"

type ServiceParams struct {
	Config *config.Config
	Logger *logger.Logger
	DB     *db.Client
	Alerts *alerts.Service
	Jobs   *metrics.JobMetrics
}

// Service runs the periodic low stock sweep. The sweep catches products that
// dipped under their threshold outside the request path, for example after a
// manual database edit or a missed save hook.
type Service struct {
	cfg    *config.Config
	logg   *logger.Logger
	db     *db.Client
	alerts *alerts.Service
	jobs   *metrics.JobMetrics
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Config == nil {
		return nil, errors.New("config is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if params.DB == nil {
		return nil, errors.New("database client is required")
	}
	if params.Alerts == nil {
		return nil, errors.New("alert service is required")
	}

	return &Service{
		cfg:    params.Config,
		logg:   params.Logger,
		db:     params.DB,
		alerts: params.Alerts,
		jobs:   params.Jobs,
	}, nil
}

func (s *Service) ensureReadiness(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		s.logg.Error(ctx, "database ping failed", err)
		return fmt.Errorf("database ping failed: %w", err)
	}
	s.logg.Info(ctx, "all worker dependencies are ready")
	return nil
}

func (s *Service) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := s.ensureReadiness(ctx); err != nil {
		return err
	}

	interval := s.cfg.Alerts.SweepInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	s.sweep(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logg.Info(ctx, "worker context canceled")
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	start := time.Now()
	sent, err := s.alerts.Sweep(ctx)
	s.jobs.ObserveDuration(sweepJobName, time.Since(start))

	if err != nil {
		s.jobs.IncFailure(sweepJobName)
		s.logg.Error(ctx, "low stock sweep failed", err)
		return
	}

	s.jobs.IncSuccess(sweepJobName)
	logCtx := s.logg.WithField(ctx, "alerts_sent", sent)
	s.logg.Info(logCtx, "low stock sweep complete")
}
