package store

import (
	"context"
	"sync"

	"github.com/raphaelgruber/studioflow/internal/models"
)

// MemoryStore keeps the collection in process.
type MemoryStore struct {
	mu    sync.RWMutex
	jobs  []models.Job
	saves int
}

// NewMemoryStore returns a MemoryStore seeded with jobs.
func NewMemoryStore(jobs ...models.Job) *MemoryStore {
	return &MemoryStore{jobs: cloneJobs(jobs)}
}

func (s *MemoryStore) LoadAll(_ context.Context) ([]models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneJobs(s.jobs), nil
}

func (s *MemoryStore) SaveAll(_ context.Context, jobs []models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = cloneJobs(jobs)
	s.saves++
	return nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

// Saves reports how many times SaveAll ran.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func cloneJobs(jobs []models.Job) []models.Job {
	out := make([]models.Job, len(jobs))
	for i, j := range jobs {
		out[i] = j.Clone()
	}
	return out
}
