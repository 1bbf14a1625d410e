// Package scheduler runs stored workflows that carry a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dukex/superagente/pkg/events"
	"github.com/dukex/superagente/pkg/models"
	"github.com/robfig/cron/v3"
)

// DefaultRefreshInterval is how often stored schedules are reloaded.
const DefaultRefreshInterval = time.Minute

// WorkflowLister loads the stored workflows.
type WorkflowLister interface {
	List(ctx context.Context) ([]*models.Workflow, error)
}

// Runner executes a stored workflow.
type Runner interface {
	Execute(ctx context.Context, workflowID string, trigger events.Trigger) (*models.ExecutionReport, error)
}

type job struct {
	expression string
	entryID    cron.EntryID
}

type Scheduler struct {
	lister  WorkflowLister
	runner  Runner
	logger  *slog.Logger
	refresh time.Duration

	cron   *cron.Cron
	jobs   map[string]job // workflow ID to its cron entry
	mutex  sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

type Option func(*Scheduler)

// WithRefreshInterval sets how often schedules are reloaded from storage.
func WithRefreshInterval(interval time.Duration) Option {
	return func(s *Scheduler) {
		s.refresh = interval
	}
}

func New(lister WorkflowLister, runner Runner, logger *slog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		lister:  lister,
		runner:  runner,
		logger:  logger.With("module", "workflow_scheduler"),
		refresh: DefaultRefreshInterval,
		jobs:    make(map[string]job),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))
	s.ctx, s.cancel = context.WithCancel(context.Background())

	return s
}

// Start loads the current schedules and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Starting workflow scheduler", "refresh_interval", s.refresh)

	err := s.Sync(ctx)
	if err != nil {
		return err
	}

	_, err = s.cron.AddFunc(fmt.Sprintf("@every %s", s.refresh), func() {
		syncErr := s.Sync(s.ctx)
		if syncErr != nil {
			s.logger.Error("Failed to reload workflow schedules", "error", syncErr)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add schedule refresh job: %w", err)
	}

	s.cron.Start()

	return nil
}

// Sync reconciles cron entries with the stored workflows. Workflows whose
// schedule was removed, changed or deleted lose their old entry.
func (s *Scheduler) Sync(ctx context.Context) error {
	workflows, err := s.lister.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load workflows: %w", err)
	}

	wanted := make(map[string]string, len(workflows))

	for _, workflow := range workflows {
		if workflow.Schedule != "" {
			wanted[workflow.ID] = workflow.Schedule
		}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for workflowID, existing := range s.jobs {
		if expression, ok := wanted[workflowID]; ok && expression == existing.expression {
			continue
		}

		s.cron.Remove(existing.entryID)
		delete(s.jobs, workflowID)
		s.logger.InfoContext(ctx, "Removed workflow schedule", "workflow_id", workflowID, "cron", existing.expression)
	}

	for workflowID, expression := range wanted {
		if _, ok := s.jobs[workflowID]; ok {
			continue
		}

		entryID, err := s.cron.AddFunc(expression, s.jobFor(workflowID))
		if err != nil {
			s.logger.WarnContext(ctx, "Skipping invalid workflow schedule", "workflow_id", workflowID, "cron", expression, "error", err)

			continue
		}

		s.jobs[workflowID] = job{expression: expression, entryID: entryID}
		s.logger.InfoContext(ctx, "Added workflow schedule", "workflow_id", workflowID, "cron", expression, "entry_id", entryID)
	}

	return nil
}

// Scheduled returns the cron expression of every scheduled workflow.
func (s *Scheduler) Scheduled() map[string]string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	scheduled := make(map[string]string, len(s.jobs))
	for workflowID, entry := range s.jobs {
		scheduled[workflowID] = entry.expression
	}

	return scheduled
}

func (s *Scheduler) jobFor(workflowID string) func() {
	return func() {
		logger := s.logger.With("workflow_id", workflowID)
		logger.Debug("Cron job triggered")

		report, err := s.runner.Execute(s.ctx, workflowID, events.TriggerSchedule)
		if err != nil {
			logger.Error("Error executing scheduled workflow", "error", err)

			return
		}

		logger.Info("Scheduled workflow executed", "status", report.Status)
	}
}

// Stop halts the cron loop and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Stopping workflow scheduler")

	s.cancel()

	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
