package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphaelgruber/studioflow/internal/models"
)

// FileStore keeps the collection as one JSON envelope on disk.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the data file location.
func (s *FileStore) Path() string { return s.path }

// LoadAll reads the data file. A missing file is an empty collection.
func (s *FileStore) LoadAll(_ context.Context) ([]models.Job, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Job{}, nil
	}
	if err != nil {
		return []models.Job{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	return models.DecodeJobs(data)
}

// SaveAll writes the collection to a temporary file and renames it over the
// data file, so readers never see a partial write.
func (s *FileStore) SaveAll(_ context.Context, jobs []models.Job) error {
	data, err := models.EncodeJobs(jobs)
	if err != nil {
		return fmt.Errorf("encode jobs: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".jobs-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Close(context.Context) error { return nil }
