package scheduler

import (
	"context"
	"time"

	"github.com/azure/newsroom-desk/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	digestTimeout = 10 * time.Minute
	urgentTimeout = 2 * time.Minute
)

// Runner is the work the scheduler triggers
type Runner interface {
	RunDigest(ctx context.Context) error
	RunUrgentCheck(ctx context.Context) error
}

// Service handles scheduling of digest and urgent check runs
type Service struct {
	config *config.Config
	runner Runner
	cron   *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, runner Runner) *Service {
	return &Service{
		config: cfg,
		runner: runner,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Start registers the digest and urgent check jobs and starts the cron loop
func (s *Service) Start() error {
	_, err := s.cron.AddFunc(s.config.DigestSchedule, func() {
		logrus.Info("Starting scheduled digest run")
		ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
		defer cancel()
		if err := s.runner.RunDigest(ctx); err != nil {
			logrus.Errorf("Scheduled digest run failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	_, err = s.cron.AddFunc(s.config.UrgentSchedule, func() {
		logrus.Info("Starting scheduled urgent check")
		ctx, cancel := context.WithTimeout(context.Background(), urgentTimeout)
		defer cancel()
		if err := s.runner.RunUrgentCheck(ctx); err != nil {
			logrus.Errorf("Urgent check failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.WithFields(logrus.Fields{
		"digest": s.config.DigestSchedule,
		"urgent": s.config.UrgentSchedule,
	}).Info("Scheduler started")
	return nil
}

// Entries reports the number of registered jobs
func (s *Service) Entries() int {
	return len(s.cron.Entries())
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
		logrus.Info("Scheduler stopped")
	}
}
