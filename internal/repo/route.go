package repo

import (
	"context"
	"fmt"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/domain"
)

// RouteRepo defines the persistence operations for the routes record
// stream. Routes persist as shells — id and name only. Waypoint membership
// lives in the route_waypoints stream and geometry is always derived, never
// stored.
type RouteRepo interface {
	// Insert adds one route shell record.
	Insert(ctx context.Context, rec domain.RouteRecord) error

	// List returns all route records in insertion order.
	List(ctx context.Context) ([]domain.RouteRecord, error)

	// DeleteAll removes every route record.
	DeleteAll(ctx context.Context) error
}

type sqliteRouteRepo struct {
	db db
}

// NewRouteRepo constructs a RouteRepo backed by the provided connection.
func NewRouteRepo(db db) RouteRepo {
	return &sqliteRouteRepo{db: db}
}

func (r *sqliteRouteRepo) Insert(ctx context.Context, rec domain.RouteRecord) error {
	const q = `INSERT INTO routes (id, name) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, q, rec.ID, rec.Name); err != nil {
		return fmt.Errorf("repo.RouteRepo.Insert: %w", err)
	}
	return nil
}

func (r *sqliteRouteRepo) List(ctx context.Context) ([]domain.RouteRecord, error) {
	// Feature IDs are time-ordered, so sorting by id preserves the order
	// routes were created in — which FPL export relies on for flight-plan
	// index assignment.
	const q = `SELECT id, name FROM routes ORDER BY id`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.RouteRepo.List: %w", err)
	}
	defer rows.Close()

	var recs []domain.RouteRecord
	for rows.Next() {
		var rec domain.RouteRecord
		if err := rows.Scan(&rec.ID, &rec.Name); err != nil {
			return nil, fmt.Errorf("repo.RouteRepo.List: scan: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RouteRepo.List: rows: %w", err)
	}
	return recs, nil
}

func (r *sqliteRouteRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM routes`); err != nil {
		return fmt.Errorf("repo.RouteRepo.DeleteAll: %w", err)
	}
	return nil
}
