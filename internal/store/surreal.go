package store

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/studioflow/internal/db"
	"github.com/raphaelgruber/studioflow/internal/models"
)

// SurrealStore keeps one SurrealDB record per job.
type SurrealStore struct {
	client *db.Client
}

// NewSurrealStore initializes the schema on an open client. The store owns
// the client from then on.
func NewSurrealStore(ctx context.Context, client *db.Client) (*SurrealStore, error) {
	if err := client.InitSchema(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, fmt.Errorf("surrealdb: %w", err)
	}
	return &SurrealStore{client: client}, nil
}

func (s *SurrealStore) LoadAll(ctx context.Context) ([]models.Job, error) {
	return s.client.LoadJobs(ctx)
}

func (s *SurrealStore) SaveAll(ctx context.Context, jobs []models.Job) error {
	return s.client.ReplaceJobs(ctx, jobs)
}

func (s *SurrealStore) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}
