// Package repo contains all database access for the network dataset.
//
// The network persists as a GeoPackage: an SQLite container with gpkg_*
// metadata tables and one layer table per record stream (waypoints, routes,
// route_waypoints). Each stream has its own file with an interface and an
// SQLite implementation. No business logic lives here — only SQL and type
// mapping.
package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/antarctica/bas-air-unit-network-dataset/migrations"
)

// db is the minimal interface satisfied by *sql.DB and *sql.Tx. Accepting
// this interface instead of *sql.DB directly allows tests to pass a
// transaction that is rolled back after each test.
type db interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows, allowing one scan
// helper per record type to serve QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Repos bundles the three record stream repos so callers that need the
// whole network can take one value instead of three.
type Repos struct {
	Waypoints      WaypointRepo
	Routes         RouteRepo
	RouteWaypoints RouteWaypointRepo
}

func newRepos(handle db) Repos {
	return Repos{
		Waypoints:      NewWaypointRepo(handle),
		Routes:         NewRouteRepo(handle),
		RouteWaypoints: NewRouteWaypointRepo(handle),
	}
}

// Store owns the database handle and hands out record stream repos, either
// over the handle directly or scoped to a transaction.
type Store struct {
	handle *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(handle *sql.DB) *Store {
	return &Store{handle: handle}
}

// Repos returns the record stream repos over the store's handle. Each call
// runs in its own implicit transaction.
func (s *Store) Repos() Repos {
	return newRepos(s.handle)
}

// InTx runs fn with repos scoped to a single transaction. The transaction
// commits when fn returns nil and rolls back otherwise, so a sequence of
// writes either lands in full or leaves the dataset untouched.
func (s *Store) InTx(ctx context.Context, fn func(Repos) error) error {
	tx, err := s.handle.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repo.Store.InTx: %w", err)
	}
	if err := fn(newRepos(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("repo.Store.InTx: rollback after %q: %w", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repo.Store.InTx: commit: %w", err)
	}
	return nil
}

// Open opens the GeoPackage at path. The file is created if absent but its
// schema is not: call Migrate to initialise a new dataset.
func Open(path string) (*sql.DB, error) {
	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repo.Open: %w", err)
	}
	// SQLite allows a single writer; the CLI is single-threaded so one
	// connection avoids locking surprises.
	handle.SetMaxOpenConns(1)

	if err := handle.Ping(); err != nil {
		handle.Close()
		return nil, fmt.Errorf("repo.Open: %w", err)
	}
	return handle, nil
}

// Migrate applies the embedded migrations, creating the GeoPackage metadata
// tables and the waypoints, routes and route_waypoints layers.
func Migrate(handle *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("repo.Migrate: set dialect: %w", err)
	}
	if err := goose.Up(handle, "."); err != nil {
		return fmt.Errorf("repo.Migrate: %w", err)
	}
	return nil
}

// nullString maps "" to NULL on the way into the database.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
