package db

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/raphaelgruber/studioflow/internal/models"
)

type jobRow struct {
	Position int            `json:"position"`
	Data     map[string]any `json:"data"`
}

// LoadJobs returns the stored jobs in collection order. Each record goes
// through the normalization pass on its own; records that no longer decode
// are skipped and reported with models.ErrMalformed next to the rest.
func (c *Client) LoadJobs(ctx context.Context) ([]models.Job, error) {
	results, err := surrealdb.Query[[]jobRow](ctx, c.db,
		`SELECT position, data FROM job ORDER BY position ASC`, nil)
	if err != nil {
		return []models.Job{}, fmt.Errorf("load jobs: %w", wrapQueryError(err))
	}

	jobs := []models.Job{}
	if results == nil || len(*results) == 0 {
		return jobs, nil
	}
	skipped := 0
	for _, row := range (*results)[0].Result {
		job, err := models.DecodeJobMap(row.Data)
		if err != nil {
			skipped++
			continue
		}
		jobs = append(jobs, job)
	}
	if skipped > 0 {
		return jobs, fmt.Errorf("%w: skipped %d record(s)", models.ErrMalformed, skipped)
	}
	return jobs, nil
}

// ReplaceJobs swaps the stored collection for jobs in one transaction.
func (c *Client) ReplaceJobs(ctx context.Context, jobs []models.Job) error {
	rows := make([]map[string]any, len(jobs))
	for i, j := range jobs {
		rows[i] = map[string]any{
			"id":       j.ID,
			"position": i,
			"data":     j,
		}
	}

	sql := `
		BEGIN TRANSACTION;
		DELETE job;
		FOR $row IN $rows {
			CREATE type::record("job", $row.id) CONTENT {
				position: $row.position,
				data: $row.data
			};
		};
		COMMIT TRANSACTION;
	`
	if _, err := surrealdb.Query[any](ctx, c.db, sql, map[string]any{"rows": rows}); err != nil {
		return fmt.Errorf("replace jobs: %w", wrapQueryError(err))
	}
	return nil
}

// CountJobs returns the number of stored job records.
func (c *Client) CountJobs(ctx context.Context) (int, error) {
	results, err := surrealdb.Query[[]struct {
		Count int `json:"count"`
	}](ctx, c.db, `SELECT count() AS count FROM job GROUP ALL`, nil)
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return 0, nil
	}
	return (*results)[0].Result[0].Count, nil
}
