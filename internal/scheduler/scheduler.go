// Package scheduler runs maintenance jobs at fixed intervals.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"shortly/internal/logger"
)

// Job is a periodic task. A run that is still in progress when the next
// tick fires makes that tick a no-op, so runs never overlap.
type Job struct {
	Name       string
	Interval   time.Duration
	Timeout    time.Duration
	RunOnStart bool
	Run        func(ctx context.Context) error
}

// JobStatus is a snapshot of one job.
type JobStatus struct {
	Name      string    `json:"name"`
	Interval  string    `json:"interval"`
	Running   bool      `json:"running"`
	Runs      int64     `json:"runs"`
	Failures  int64     `json:"failures"`
	Coalesced int64     `json:"coalesced"`
	LastRun   time.Time `json:"last_run,omitzero"`
	LastError string    `json:"last_error,omitempty"`
	NextRun   time.Time `json:"next_run,omitzero"`
}

type jobState struct {
	job Job

	mu      sync.Mutex
	running bool
	status  JobStatus
}

// Scheduler owns a set of jobs and their goroutines.
type Scheduler struct {
	log zerolog.Logger

	mu      sync.Mutex
	jobs    map[string]*jobState
	order   []string
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{
		log:  logger.With("scheduler"),
		jobs: make(map[string]*jobState),
	}
}

// Add registers a job. Jobs must be added before Start.
func (s *Scheduler) Add(job Job) error {
	if job.Name == "" || job.Run == nil {
		return errors.New("job needs a name and a run function")
	}
	if job.Interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive", job.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("job %s: scheduler already started", job.Name)
	}
	if _, exists := s.jobs[job.Name]; exists {
		return fmt.Errorf("job %s: already registered", job.Name)
	}

	s.jobs[job.Name] = &jobState{
		job:    job,
		status: JobStatus{Name: job.Name, Interval: job.Interval.String()},
	}
	s.order = append(s.order, job.Name)
	return nil
}

// Start launches one loop per job. The loops stop when ctx ends or Stop is
// called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	for _, name := range s.order {
		js := s.jobs[name]
		s.wg.Add(1)
		go s.loop(ctx, js)
	}
	s.log.Info().Int("jobs", len(s.order)).Msg("scheduler started")
}

func (s *Scheduler) loop(ctx context.Context, js *jobState) {
	defer s.wg.Done()

	var runs sync.WaitGroup
	defer runs.Wait()

	trigger := func() {
		if !js.begin() {
			s.log.Warn().Str("job", js.job.Name).Msg("previous run still in progress, skipping")
			return
		}
		runs.Add(1)
		go func() {
			defer runs.Done()
			s.execute(ctx, js)
		}()
	}

	if js.job.RunOnStart {
		trigger()
	}

	ticker := time.NewTicker(js.job.Interval)
	defer ticker.Stop()
	js.setNext(time.Now().Add(js.job.Interval))

	for {
		select {
		case <-ticker.C:
			js.setNext(time.Now().Add(js.job.Interval))
			trigger()
		case <-ctx.Done():
			return
		}
	}
}

// Trigger runs a job now unless it is already running. It reports whether
// a run was started.
func (s *Scheduler) Trigger(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	js, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return false, fmt.Errorf("unknown job %q", name)
	}
	if !js.begin() {
		return false, nil
	}
	s.execute(ctx, js)
	return true, nil
}

func (s *Scheduler) execute(ctx context.Context, js *jobState) {
	if js.job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, js.job.Timeout)
		defer cancel()
	}

	start := time.Now()
	s.log.Info().Str("job", js.job.Name).Msg("job started")

	err := s.safeRun(ctx, js.job)
	js.finish(start, err)

	event := s.log.Info()
	if err != nil {
		event = s.log.Error().Err(err)
	}
	event.Str("job", js.job.Name).Dur("duration", time.Since(start)).Msg("job finished")
}

func (s *Scheduler) safeRun(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", job.Name, r)
		}
	}()
	return job.Run(ctx)
}

// Stop cancels the loops and waits for running jobs until ctx ends.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info().Msg("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns a snapshot of every job in registration order.
func (s *Scheduler) Status() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JobStatus, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.jobs[name].snapshot())
	}
	return out
}

func (js *jobState) begin() bool {
	js.mu.Lock()
	defer js.mu.Unlock()
	if js.running {
		js.status.Coalesced++
		return false
	}
	js.running = true
	return true
}

func (js *jobState) finish(start time.Time, err error) {
	js.mu.Lock()
	defer js.mu.Unlock()
	js.running = false
	js.status.Runs++
	js.status.LastRun = start.UTC()
	js.status.LastError = ""
	if err != nil {
		js.status.Failures++
		js.status.LastError = err.Error()
	}
}

func (js *jobState) setNext(t time.Time) {
	js.mu.Lock()
	js.status.NextRun = t.UTC()
	js.mu.Unlock()
}

func (js *jobState) snapshot() JobStatus {
	js.mu.Lock()
	defer js.mu.Unlock()
	st := js.status
	st.Running = js.running
	return st
}
