package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"MarketScope/internal/logger"
)

// Scheduler re-runs the pipeline on a cron schedule (watch mode).
type Scheduler struct {
	Cron *cron.Cron
	Task func(context.Context) error
	Ctx  context.Context
}

// NewScheduler creates a new Scheduler around a pipeline task.
func NewScheduler(ctx context.Context, task func(context.Context) error) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds()),
		Task: task,
		Ctx:  ctx,
	}
}

// Register registers the pipeline run under the given cron expression.
func (s *Scheduler) Register(expr string) error {
	if _, err := s.Cron.AddFunc(expr, s.runTask); err != nil {
		return fmt.Errorf("register pipeline task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.L().Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	logger.L().Info().Msg("scheduler stopped")
}

// RunNow executes the pipeline immediately (manual trigger / run on start).
func (s *Scheduler) RunNow() {
	s.runTask()
}

func (s *Scheduler) runTask() {
	logger.L().Info().Msg("running scheduled pipeline")
	if err := s.Task(s.Ctx); err != nil {
		logger.L().Error().Err(err).Msg("scheduled pipeline run failed")
	}
}
