package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/raphaelgruber/studioflow/internal/metrics"
	"github.com/raphaelgruber/studioflow/internal/models"
	"github.com/raphaelgruber/studioflow/internal/store"
)

// JobService owns the current job collection and persists it after every
// change. All methods are safe for concurrent use.
type JobService struct {
	mu      sync.RWMutex
	state   State
	store   store.Store
	clock   Clock
	newID   IDFunc
	logger  *slog.Logger
	metrics *metrics.Collector
}

// Option configures a JobService.
type Option func(*JobService)

// WithClock sets the current-date source.
func WithClock(c Clock) Option {
	return func(s *JobService) { s.clock = c }
}

// WithIDFunc sets the id generator for new jobs.
func WithIDFunc(f IDFunc) Option {
	return func(s *JobService) { s.newID = f }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *JobService) { s.logger = l }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Collector) Option {
	return func(s *JobService) { s.metrics = m }
}

// NewJobService creates a service over st with an empty collection. Call
// Load to read the persisted jobs.
func NewJobService(st store.Store, opts ...Option) *JobService {
	s := &JobService{
		state:  NewState(nil),
		store:  st,
		clock:  SystemClock{},
		newID:  NewID,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one. Every job
// goes through the normalization pass whatever the backend, and repeated ids
// are made unique. Read failures are logged and leave whatever could be
// decoded, possibly nothing.
func (s *JobService) Load(ctx context.Context) {
	start := time.Now()
	jobs, err := s.store.LoadAll(ctx)
	s.metrics.RecordResult(metrics.OpStoreLoad, time.Since(start), err)
	if err != nil {
		s.logger.Warn("load jobs", "error", err, "loaded", len(jobs))
	}
	jobs = normalizeJobs(jobs)

	s.mu.Lock()
	s.state = State{Jobs: jobs}
	s.mu.Unlock()
	s.logger.Debug("jobs loaded", "count", len(jobs))
}

// Today returns the service clock's current day.
func (s *JobService) Today() time.Time {
	return s.clock.Today()
}

// Snapshot returns a copy of the current collection.
func (s *JobService) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NewState(s.state.Jobs)
}

// List returns the derived views of all jobs in collection order. Finalized
// jobs are left out unless includeFinalized is set.
func (s *JobService) List(includeFinalized bool) []JobView {
	st := s.Snapshot()
	today := s.clock.Today()

	views := make([]JobView, 0, st.Len())
	for _, j := range st.Jobs {
		if j.IsCompleted && !includeFinalized {
			continue
		}
		views = append(views, Describe(j, today))
	}
	return views
}

// Get resolves ref to a job view.
func (s *JobService) Get(ref string) (JobView, error) {
	s.mu.RLock()
	j, err := s.state.Find(ref)
	s.mu.RUnlock()
	if err != nil {
		return JobView{}, err
	}
	return Describe(j, s.clock.Today()), nil
}

// Summary returns the dashboard counters.
func (s *JobService) Summary() Summary {
	return Summarize(s.Snapshot(), s.clock.Today())
}

// Create adds a job.
func (s *JobService) Create(ctx context.Context, in NewJob) (models.Job, error) {
	return s.mutate(ctx, "create", func(st State) (State, models.Job, error) {
		return CreateJob(st, in, s.clock.Today(), s.newID)
	})
}

// SetDeliveryMode changes a job's delivery mode.
func (s *JobService) SetDeliveryMode(ctx context.Context, ref string, mode models.DeliveryMode) (models.Job, error) {
	return s.mutate(ctx, "set_delivery_mode", func(st State) (State, models.Job, error) {
		return SetDeliveryMode(st, ref, mode)
	})
}

// SetEventDate changes a job's event date and derived due date.
func (s *JobService) SetEventDate(ctx context.Context, ref, date string) (models.Job, error) {
	return s.mutate(ctx, "set_event_date", func(st State) (State, models.Job, error) {
		return SetEventDate(st, ref, date)
	})
}

// SetDueDate overrides a job's due date.
func (s *JobService) SetDueDate(ctx context.Context, ref, date string) (models.Job, error) {
	return s.mutate(ctx, "set_due_date", func(st State) (State, models.Job, error) {
		return SetDueDate(st, ref, date)
	})
}

// UpdateDetails edits a job's names and notes.
func (s *JobService) UpdateDetails(ctx context.Context, ref string, p DetailsPatch) (models.Job, error) {
	return s.mutate(ctx, "update_details", func(st State) (State, models.Job, error) {
		return UpdateDetails(st, ref, p)
	})
}

// UpdateTask edits one task of a job.
func (s *JobService) UpdateTask(ctx context.Context, ref, taskID string, p TaskPatch) (models.Job, error) {
	return s.mutate(ctx, "update_task", func(st State) (State, models.Job, error) {
		return UpdateTask(st, ref, taskID, p)
	})
}

// Finalize marks a job completed today.
func (s *JobService) Finalize(ctx context.Context, ref string) (models.Job, error) {
	return s.mutate(ctx, "finalize", func(st State) (State, models.Job, error) {
		return Finalize(st, ref, s.clock.Today())
	})
}

// Delete removes a job and returns it.
func (s *JobService) Delete(ctx context.Context, ref string) (models.Job, error) {
	return s.mutate(ctx, "delete", func(st State) (State, models.Job, error) {
		return Delete(st, ref)
	})
}

// Import merges or replaces the collection with jobs and returns the new
// collection size.
func (s *JobService) Import(ctx context.Context, jobs []models.Job, replace bool) (int, error) {
	start := time.Now()
	defer func() { s.metrics.RecordTiming(metrics.OpImport, time.Since(start)) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Import(s.state, jobs, replace)
	s.logger.Info("jobs imported", "count", len(jobs), "replace", replace, "total", s.state.Len())
	return s.state.Len(), s.save(ctx)
}

// Export returns the current collection wrapped in an envelope.
func (s *JobService) Export() models.Envelope {
	start := time.Now()
	defer func() { s.metrics.RecordTiming(metrics.OpExport, time.Since(start)) }()

	st := s.Snapshot()
	return models.Envelope{
		Version:    models.SchemaVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Jobs:       st.Jobs,
	}
}

// Close releases the store.
func (s *JobService) Close(ctx context.Context) error {
	return s.store.Close(ctx)
}

// mutate applies op to the current state and saves the result. The new state
// is kept even when saving fails; the save error is returned.
func (s *JobService) mutate(ctx context.Context, name string, op func(State) (State, models.Job, error)) (models.Job, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	next, job, err := op(s.state)
	s.metrics.RecordResult(metrics.OpMutation, time.Since(start), err)
	if err != nil {
		s.logger.Debug("job operation rejected", "op", name, "error", err)
		return job, err
	}
	s.state = next
	s.logger.Info("job updated", "op", name, "job_id", job.ID)

	if err := s.save(ctx); err != nil {
		return job, err
	}
	return job, nil
}

// save persists the current state. Caller must hold the write lock.
func (s *JobService) save(ctx context.Context) error {
	start := time.Now()
	err := s.store.SaveAll(ctx, s.state.Jobs)
	s.metrics.RecordResult(metrics.OpStoreSave, time.Since(start), err)
	if err != nil {
		s.logger.Error("save jobs", "error", err)
		return fmt.Errorf("save jobs: %w", err)
	}
	return nil
}
