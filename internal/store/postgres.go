package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raphaelgruber/studioflow/internal/models"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS studioflow_jobs (
		id       TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		data     JSONB NOT NULL
	)
`

// PostgresStore keeps one row per job.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects, pings and creates the table if needed.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pg pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping pg: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// LoadAll reads every row in position order. Rows that no longer decode are
// skipped and reported with models.ErrMalformed.
func (s *PostgresStore) LoadAll(ctx context.Context) ([]models.Job, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM studioflow_jobs ORDER BY position`)
	if err != nil {
		return []models.Job{}, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	skipped := 0
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return jobs, fmt.Errorf("scan job: %w", err)
		}
		job, err := models.DecodeJob(data)
		if err != nil {
			skipped++
			continue
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return jobs, fmt.Errorf("iterate jobs: %w", err)
	}
	if skipped > 0 {
		return jobs, fmt.Errorf("%w: skipped %d row(s)", models.ErrMalformed, skipped)
	}
	return jobs, nil
}

// SaveAll replaces the table contents in one transaction.
func (s *PostgresStore) SaveAll(ctx context.Context, jobs []models.Job) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM studioflow_jobs`); err != nil {
		return fmt.Errorf("clear jobs: %w", err)
	}

	batch := &pgx.Batch{}
	for i, j := range jobs {
		data, err := json.Marshal(j)
		if err != nil {
			return fmt.Errorf("encode job %s: %w", j.ID, err)
		}
		batch.Queue(`INSERT INTO studioflow_jobs (id, position, data) VALUES ($1, $2, $3)`, j.ID, i, data)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert jobs: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close(context.Context) error {
	s.pool.Close()
	return nil
}
