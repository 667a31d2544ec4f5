package server_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/studioflow/internal/metrics"
	"github.com/raphaelgruber/studioflow/internal/server"
	"github.com/raphaelgruber/studioflow/internal/service"
	"github.com/raphaelgruber/studioflow/internal/store"
	"github.com/raphaelgruber/studioflow/internal/tools"
)

// connect runs srv over in-memory transports and returns a client session.
func connect(t *testing.T, srv *server.Server) (context.Context, *mcp.ClientSession) {
	t.Helper()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	go func() {
		_ = srv.MCPServer().Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err, "client should connect successfully")
	t.Cleanup(func() { _ = session.Close() })
	return ctx, session
}

func testDeps(logger *slog.Logger) *tools.Dependencies {
	jobs := service.NewJobService(store.NewMemoryStore(),
		service.WithClock(service.FixedClock{Day: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)}),
		service.WithLogger(logger),
	)
	return &tools.Dependencies{Jobs: jobs, Metrics: metrics.NewCollector(), Logger: logger}
}

func TestServerWithoutTools(t *testing.T) {
	srv := server.New("0.1.0-test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv.Setup(nil)
	ctx, session := connect(t, srv)

	initResult := session.InitializeResult()
	require.NotNil(t, initResult, "initialize result should not be nil")
	assert.Equal(t, server.Name, initResult.ServerInfo.Name)
	assert.Equal(t, "0.1.0-test", initResult.ServerInfo.Version)
	assert.Contains(t, initResult.Instructions, "YYYY-MM-DD")

	toolsResult, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, toolsResult.Tools, "should have no tools registered")
}

func TestServerRegistersJobTools(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := server.New("0.1.0-test", logger)
	srv.Setup(testDeps(logger))
	ctx, session := connect(t, srv)

	// Make multiple requests
	for i := 0; i < 3; i++ {
		result, err := session.ListTools(ctx, nil)
		require.NoError(t, err, "request %d should succeed", i)
		assert.Len(t, result.Tools, 13)
	}
}

func TestLoggingMiddlewareLogsToolCalls(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	srv := server.New("0.1.0-test", logger)
	srv.Setup(testDeps(slog.New(slog.NewTextHandler(io.Discard, nil))))
	ctx, session := connect(t, srv)

	_, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_job",
		Arguments: map[string]any{"job": "missing"},
	})
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, "method=tools/call")
	assert.Contains(t, logs, "tool=get_job")
	assert.Contains(t, logs, "tool_error=true")
	assert.Contains(t, logs, "missing")
}
