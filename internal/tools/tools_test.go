package tools_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/studioflow/internal/metrics"
	"github.com/raphaelgruber/studioflow/internal/models"
	"github.com/raphaelgruber/studioflow/internal/service"
	"github.com/raphaelgruber/studioflow/internal/store"
	"github.com/raphaelgruber/studioflow/internal/tools"
)

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

type fixture struct {
	ctx     context.Context
	session *mcp.ClientSession
	jobs    *service.JobService
	store   *store.MemoryStore
}

// connect starts a server with all tools over in-memory transports.
func connect(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	n := 0
	mem := store.NewMemoryStore()
	jobs := service.NewJobService(mem,
		service.WithClock(service.FixedClock{Day: monday}),
		service.WithIDFunc(func() string {
			n++
			return fmt.Sprintf("job-%04d", n)
		}),
		service.WithLogger(logger),
	)

	server := mcp.NewServer(&mcp.Implementation{Name: "test-studioflow", Version: "0.0.1-test"}, nil)
	tools.RegisterAll(server, &tools.Dependencies{
		Jobs:    jobs,
		Metrics: metrics.NewCollector(),
		Logger:  logger,
	})

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	go func() {
		_ = server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err, "client should connect successfully")
	t.Cleanup(func() { _ = session.Close() })

	return &fixture{ctx: ctx, session: session, jobs: jobs, store: mem}
}

// call invokes a tool and returns its text content.
func (f *fixture) call(t *testing.T, name string, args map[string]any) (string, bool) {
	t.Helper()
	result, err := f.session.CallTool(f.ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content should be TextContent")
	return text.Text, result.IsError
}

func (f *fixture) callJSON(t *testing.T, name string, args map[string]any, v any) {
	t.Helper()
	text, isErr := f.call(t, name, args)
	require.False(t, isErr, text)
	require.NoError(t, json.Unmarshal([]byte(text), v))
}

func (f *fixture) createWedding(t *testing.T) service.JobView {
	t.Helper()
	var v service.JobView
	f.callJSON(t, "create_job", map[string]any{
		"client_name": "Carla",
		"event_name":  "Wedding",
		"event_date":  "2026-01-15",
	}, &v)
	return v
}

func TestToolsList(t *testing.T) {
	f := connect(t)

	result, err := f.session.ListTools(f.ctx, nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"ping", "list_jobs", "get_job", "create_job", "set_delivery_mode",
		"set_event_date", "set_due_date", "update_task", "finalize_job",
		"delete_job", "summary", "list_templates", "server_stats",
	}, names)
}

func TestPingTool(t *testing.T) {
	f := connect(t)

	text, isErr := f.call(t, "ping", map[string]any{})
	assert.False(t, isErr)
	assert.Equal(t, "pong (today is 2026-03-02)", text)

	text, _ = f.call(t, "ping", map[string]any{"echo": "hello world"})
	assert.Equal(t, "hello world", text)
}

func TestCreateAndGetJob(t *testing.T) {
	f := connect(t)

	created := f.createWedding(t)
	assert.Equal(t, "job-0001", created.ID)
	assert.Equal(t, models.ProjectEvent, created.ProjectType)
	assert.Equal(t, models.DeliveryDigitalPlusAlbum, created.DeliveryMode)
	assert.NotEmpty(t, created.DueDate)
	assert.Len(t, created.Tasks, 16)
	assert.Equal(t, 1, f.store.Saves())

	var got service.JobView
	f.callJSON(t, "get_job", map[string]any{"job": "job-0"}, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, service.StatusInProgress, got.Status)

	text, isErr := f.call(t, "create_job", map[string]any{"client_name": " ", "event_name": "Wedding"})
	assert.True(t, isErr)
	assert.Contains(t, text, "Client name and event name are required")

	text, isErr = f.call(t, "create_job", map[string]any{
		"client_name": "Ana", "event_name": "Party", "delivery_mode": "PRINT",
	})
	assert.True(t, isErr)
	assert.Contains(t, text, "Use DIGITAL_ONLY or DIGITAL_PLUS_ALBUM")

	text, isErr = f.call(t, "get_job", map[string]any{"job": "nope"})
	assert.True(t, isErr)
	assert.Equal(t, "Job not found. Use list_jobs to find the job id", text)
}

func TestListJobsAndSummary(t *testing.T) {
	f := connect(t)
	f.createWedding(t)
	f.callJSON(t, "create_job", map[string]any{
		"client_name": "Laura", "event_name": "Maternity", "project_type": "PORTRAIT_SESSION",
	}, &service.JobView{})
	f.callJSON(t, "finalize_job", map[string]any{"job": "job-0002"}, &service.JobView{})

	var list tools.ListJobsResult
	f.callJSON(t, "list_jobs", map[string]any{}, &list)
	assert.Equal(t, "2026-03-02", list.Today)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "job-0001", list.Jobs[0].ID)

	f.callJSON(t, "list_jobs", map[string]any{"status": "finalized"}, &list)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "job-0002", list.Jobs[0].ID)

	text, isErr := f.call(t, "list_jobs", map[string]any{"status": "LATE"})
	assert.True(t, isErr)
	assert.Contains(t, text, "Unknown status")

	var sum service.Summary
	f.callJSON(t, "summary", map[string]any{}, &sum)
	assert.Equal(t, service.Summary{Total: 2, Active: 1, InProgress: 1, Finalized: 1}, sum)
}

func TestUpdateTaskTool(t *testing.T) {
	f := connect(t)
	f.createWedding(t)

	var v service.JobView
	f.callJSON(t, "update_task", map[string]any{
		"job": "job-0001", "task_id": "backup_raw", "done": true, "date": "2026-01-16",
	}, &v)
	assert.Equal(t, 6, v.Progress)
	assert.Equal(t, 1, v.DoneCount)

	f.callJSON(t, "update_task", map[string]any{
		"job": "job-0001", "task_id": "album_review", "choice": "in-person",
	}, &v)
	assert.Equal(t, models.ChoiceInPerson, v.Tasks[v.TaskByID("album_review")].ChoiceValue())

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"unknown task", map[string]any{"job": "job-0001", "task_id": "print", "done": true}, "Use get_job to see the task ids"},
		{"date not allowed", map[string]any{"job": "job-0001", "task_id": "backup_cloud", "date": "2026-01-16"}, "Use list_templates"},
		{"choice not allowed", map[string]any{"job": "job-0001", "task_id": "cull", "choice": "ONLINE"}, "Use list_templates"},
		{"bad choice", map[string]any{"job": "job-0001", "task_id": "album_review", "choice": "fax"}, "Use ONLINE, IN_PERSON"},
		{"bad date", map[string]any{"job": "job-0001", "task_id": "cull", "date": "16/01/2026"}, "Use YYYY-MM-DD"},
		{"nothing to do", map[string]any{"job": "job-0001", "task_id": "cull"}, "Nothing to update"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := f.call(t, "update_task", tt.args)
			assert.True(t, isErr)
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestDeliveryModeAndDates(t *testing.T) {
	f := connect(t)
	f.createWedding(t)

	var v service.JobView
	f.callJSON(t, "update_task", map[string]any{"job": "job-0001", "task_id": "cull", "done": true}, &v)
	f.callJSON(t, "set_delivery_mode", map[string]any{"job": "job-0001", "delivery_mode": "DIGITAL_ONLY"}, &v)
	assert.Len(t, v.Tasks, 11)
	assert.True(t, v.Tasks[v.TaskByID("cull")].Done, "shared tasks keep their state")
	assert.Equal(t, -1, v.TaskByID("album_layout"))

	f.callJSON(t, "set_due_date", map[string]any{"job": "job-0001", "date": "2026-02-27"}, &v)
	assert.Equal(t, service.StatusOverdue, v.Status)
	assert.Equal(t, service.ToneCritical, v.Tone)

	f.callJSON(t, "set_event_date", map[string]any{"job": "job-0001", "date": ""}, &v)
	assert.Empty(t, v.EventDate)
	assert.Empty(t, v.DueDate)
	assert.Equal(t, service.StatusInProgress, v.Status)

	f.callJSON(t, "finalize_job", map[string]any{"job": "job-0001"}, &v)
	assert.Equal(t, "2026-03-02", v.CompletedAt)

	text, isErr := f.call(t, "set_delivery_mode", map[string]any{"job": "job-0001", "delivery_mode": "DIGITAL_PLUS_ALBUM"})
	assert.True(t, isErr)
	assert.Contains(t, text, "Job is finalized")
}

func TestDeleteJobTool(t *testing.T) {
	f := connect(t)
	f.createWedding(t)

	text, isErr := f.call(t, "delete_job", map[string]any{"job": "job-0001"})
	assert.False(t, isErr)
	assert.Equal(t, "Deleted Carla: Wedding (job-0001)", text)
	assert.Equal(t, 0, f.jobs.Snapshot().Len())

	_, isErr = f.call(t, "delete_job", map[string]any{"job": "job-0001"})
	assert.True(t, isErr)
}

func TestListTemplatesTool(t *testing.T) {
	f := connect(t)

	var all []models.Template
	f.callJSON(t, "list_templates", map[string]any{}, &all)
	assert.Len(t, all, 4)

	var some []models.Template
	f.callJSON(t, "list_templates", map[string]any{"project_type": "portrait", "delivery_mode": "digital"}, &some)
	require.Len(t, some, 1)
	assert.Equal(t, models.ProjectPortraitSession, some[0].ProjectType)
	assert.Len(t, some[0].Tasks, 8)
}

func TestServerStatsTool(t *testing.T) {
	f := connect(t)
	f.createWedding(t)
	f.call(t, "get_job", map[string]any{"job": "missing"})

	var stats tools.StatsResult
	f.callJSON(t, "server_stats", map[string]any{}, &stats)
	assert.Equal(t, 1, stats.Jobs)

	create := stats.Operations["tool_call/create_job"]
	assert.Equal(t, int64(1), create.Count)
	assert.Equal(t, int64(0), create.Errors)

	get := stats.Operations["tool_call/get_job"]
	assert.Equal(t, int64(1), get.Count)
	assert.Equal(t, int64(1), get.Errors)
}
