package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	JobWeeklyReminder = "recordatorio_semanal"
	JobAnnualReset    = "reset_vacaciones"
)

type Handler func(ctx context.Context) error

type Job struct {
	ID      string
	Trigger Trigger
	Run     Handler
}

// Scheduler owns the recurring jobs. Each job runs in its own loop; a firing
// runs to completion before the job's next fire time is computed.
type Scheduler struct {
	mu      sync.Mutex
	jobs    map[string]Job
	cancels map[string]context.CancelFunc
	baseCtx context.Context
	started bool
	now     func() time.Time
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		jobs:    make(map[string]Job),
		cancels: make(map[string]context.CancelFunc),
		now:     time.Now,
	}
}

// Register adds or replaces the job with the same id. When the scheduler is
// already running, the replaced job's loop is stopped and a new one started.
func (s *Scheduler) Register(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, ok := s.cancels[job.ID]; ok {
		cancel()
		delete(s.cancels, job.ID)
	}
	s.jobs[job.ID] = job
	if s.started {
		s.launch(job)
	}
}

// Start begins timer loops for every registered job. Calling Start twice is
// a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.baseCtx = ctx
	for _, job := range s.jobs {
		s.launch(job)
	}
	slog.Info("scheduler started", "jobs", len(s.jobs))
}

// Stop cancels every job loop. Safe to call when nothing is registered or
// Start was never called.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, cancel := range s.cancels {
		cancel()
		delete(s.cancels, id)
	}
	s.started = false
	slog.Info("scheduler stopped")
}

// RunNow fires a job by id immediately, outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, id string) error {
	s.mu.Lock()
	job, ok := s.jobs[id]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("jobs: unknown job %q", id)
	}
	return s.runJob(ctx, job)
}

// JobIDs lists registered job ids.
func (s *Scheduler) JobIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.jobs))
	for id := range s.jobs {
		ids = append(ids, id)
	}
	return ids
}

// launch requires s.mu held.
func (s *Scheduler) launch(job Job) {
	ctx, cancel := context.WithCancel(s.baseCtx)
	s.cancels[job.ID] = cancel
	go s.loop(ctx, job)
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	for {
		next := job.Trigger.Next(s.now())
		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if err := s.runJob(ctx, job); err != nil {
				slog.Warn("scheduled job failed", "job", job.ID, "err", err)
			}
		}
	}
}

func (s *Scheduler) runJob(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("jobs: %s panicked: %v", job.ID, r)
		}
	}()
	started := s.now()
	slog.Info("job run started", "job", job.ID)
	err = job.Run(ctx)
	if err != nil {
		slog.Warn("job run failed", "job", job.ID, "err", err, "duration", s.now().Sub(started))
		return err
	}
	slog.Info("job run completed", "job", job.ID, "duration", s.now().Sub(started))
	return nil
}
