// Package db stores the job collection in SurrealDB over an auto-reconnecting
// WebSocket connection.
package db

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/contrib/rews"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/pkg/logger"
	"github.com/surrealdb/surrealdb.go/surrealcbor"
)

// Reconnect policy for the job store connection.
const (
	dialTimeout      = 5 * time.Second
	retryFirstDelay  = time.Second
	retryMaxDelay    = 30 * time.Second
	retryMaxAttempts = 10
)

func init() {
	// WebSocket upgrade fails under HTTP/2, so pin ALPN to HTTP/1.1 for wss.
	gorillaws.DefaultDialer.TLSClientConfig = &tls.Config{
		NextProtos: []string{"http/1.1"},
	}
}

// Config holds SurrealDB connection configuration.
type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
	AuthLevel string // "root" or "database"
}

// credentials returns the sign-in payload for the configured auth level.
// Database users are scoped to the namespace and database.
func (c Config) credentials() surrealdb.Auth {
	auth := surrealdb.Auth{Username: c.Username, Password: c.Password}
	if c.AuthLevel == "database" {
		auth.Namespace = c.Namespace
		auth.Database = c.Database
	}
	return auth
}

// Client holds the job store connection.
type Client struct {
	conn   *rews.Connection[*gorillaws.Connection]
	db     *surrealdb.DB
	logger logger.Logger
}

// NewClient connects, signs in and selects the configured namespace and
// database. A failure after connecting closes the connection again.
func NewClient(ctx context.Context, cfg Config, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	sdkLogger := logger.New(log.Handler())

	conn := dial(cfg.URL, sdkLogger)
	sdkLogger.Info("connecting to job store", "url", cfg.URL)
	if err := conn.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	c := &Client{conn: conn, logger: sdkLogger}
	if err := c.open(ctx, cfg); err != nil {
		_ = conn.Close(ctx)
		return nil, err
	}
	sdkLogger.Info("job store ready", "namespace", cfg.Namespace, "database", cfg.Database)
	return c, nil
}

// dial builds a reconnecting connection with exponential backoff. It does not
// connect yet.
func dial(url string, log logger.Logger) *rews.Connection[*gorillaws.Connection] {
	codec := surrealcbor.New()
	// gorillaws appends /rpc itself.
	base := strings.TrimSuffix(url, "/rpc")

	conn := rews.New(
		func(context.Context) (*gorillaws.Connection, error) {
			return gorillaws.New(&connection.Config{
				BaseURL:     base,
				Marshaler:   codec,
				Unmarshaler: codec,
				Logger:      log,
			}), nil
		},
		dialTimeout,
		codec,
		log,
	)

	backoff := rews.NewExponentialBackoffRetryer()
	backoff.InitialDelay = retryFirstDelay
	backoff.MaxDelay = retryMaxDelay
	backoff.Multiplier = 2.0
	backoff.MaxRetries = retryMaxAttempts
	conn.Retryer = backoff
	return conn
}

// open wraps the connection, signs in and selects the database.
func (c *Client) open(ctx context.Context, cfg Config) error {
	sdb, err := surrealdb.FromConnection(ctx, c.conn)
	if err != nil {
		return fmt.Errorf("from connection: %w", err)
	}
	if _, err := sdb.SignIn(ctx, cfg.credentials()); err != nil {
		return fmt.Errorf("signin as %s: %w", cfg.Username, err)
	}
	if err := sdb.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		return fmt.Errorf("use %s/%s: %w", cfg.Namespace, cfg.Database, err)
	}
	c.db = sdb
	return nil
}

// Close closes the connection.
func (c *Client) Close(ctx context.Context) error {
	c.logger.Info("closing job store connection")
	return c.conn.Close(ctx)
}

// InitSchema defines the job table.
func (c *Client) InitSchema(ctx context.Context) error {
	if _, err := surrealdb.Query[any](ctx, c.db, SchemaSQL, nil); err != nil {
		return fmt.Errorf("init schema: %w", wrapQueryError(err))
	}
	return nil
}
