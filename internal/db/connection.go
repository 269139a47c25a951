package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	connectTimeout = 10 * time.Second
	closeTimeout   = 5 * time.Second
)

// DB wraps a pgx connection with metadata.
type DB struct {
	Conn     *pgx.Conn
	host     string
	port     string
	user     string
	database string
}

// Connect establishes a PostgreSQL connection with a 10-second timeout.
func Connect(ctx context.Context, host, port, user, password, database string) (*DB, error) {
	return ConnectURI(ctx, BuildURI(host, port, user, password, database))
}

// BuildURI assembles a postgres:// URI from individual fields.
func BuildURI(host, port, user, password, database string) string {
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "5432"
	}
	u := url.URL{
		Scheme:   "postgres",
		Host:     host + ":" + port,
		Path:     "/" + database,
		RawQuery: "sslmode=prefer",
	}
	if password != "" {
		u.User = url.UserPassword(user, password)
	} else if user != "" {
		u.User = url.User(user)
	}
	return u.String()
}

// ConnectURI establishes a PostgreSQL connection from a raw URI string.
func ConnectURI(ctx context.Context, uri string) (*DB, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid URI: %w", err)
	}

	port := parsed.Port()
	if port == "" {
		port = "5432"
	}

	// Ensure sslmode is set if not already present
	q := parsed.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "prefer")
		parsed.RawQuery = q.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	conn, err := pgx.Connect(ctx, parsed.String())
	if err != nil {
		return nil, err
	}

	return &DB{
		Conn:     conn,
		host:     parsed.Hostname(),
		port:     port,
		user:     parsed.User.Username(),
		database: strings.TrimPrefix(parsed.Path, "/"),
	}, nil
}

// Database returns the current database name.
func (d *DB) Database() string {
	return d.database
}

// Close closes the database connection.
func (d *DB) Close() {
	if d.Conn != nil {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		d.Conn.Close(ctx)
	}
}

// IsConnected checks if the connection is alive.
func (d *DB) IsConnected(ctx context.Context) bool {
	if d.Conn == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return d.Conn.Ping(ctx) == nil
}

// ConnInfo returns a display-safe connection string (no password).
func (d *DB) ConnInfo() string {
	return fmt.Sprintf("postgres://%s@%s:%s/%s", d.user, d.host, d.port, d.database)
}
