package repo

import (
	"context"
	"fmt"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/domain"
)

// RouteWaypointRepo defines the persistence operations for the
// route_waypoints record stream: the join records binding waypoints into
// routes by id and sequence.
type RouteWaypointRepo interface {
	// Insert adds one join record.
	Insert(ctx context.Context, rec domain.RouteWaypointRecord) error

	// List returns all join records ordered by route then sequence, which
	// is the order the load phase regroups them in.
	List(ctx context.Context) ([]domain.RouteWaypointRecord, error)

	// DeleteAll removes every join record.
	DeleteAll(ctx context.Context) error
}

type sqliteRouteWaypointRepo struct {
	db db
}

// NewRouteWaypointRepo constructs a RouteWaypointRepo backed by the
// provided connection.
func NewRouteWaypointRepo(db db) RouteWaypointRepo {
	return &sqliteRouteWaypointRepo{db: db}
}

func (r *sqliteRouteWaypointRepo) Insert(ctx context.Context, rec domain.RouteWaypointRecord) error {
	const q = `
		INSERT INTO route_waypoints (route_id, waypoint_id, sequence, description)
		VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q, rec.RouteID, rec.WaypointID, rec.Sequence, nullString(rec.Description))
	if err != nil {
		return fmt.Errorf("repo.RouteWaypointRepo.Insert: %w", err)
	}
	return nil
}

func (r *sqliteRouteWaypointRepo) List(ctx context.Context) ([]domain.RouteWaypointRecord, error) {
	const q = `
		SELECT route_id, waypoint_id, sequence, description
		FROM route_waypoints
		ORDER BY route_id, sequence`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.RouteWaypointRepo.List: %w", err)
	}
	defer rows.Close()

	var recs []domain.RouteWaypointRecord
	for rows.Next() {
		var (
			rec         domain.RouteWaypointRecord
			description *string
		)
		if err := rows.Scan(&rec.RouteID, &rec.WaypointID, &rec.Sequence, &description); err != nil {
			return nil, fmt.Errorf("repo.RouteWaypointRepo.List: scan: %w", err)
		}
		if description != nil {
			rec.Description = *description
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RouteWaypointRepo.List: rows: %w", err)
	}
	return recs, nil
}

func (r *sqliteRouteWaypointRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM route_waypoints`); err != nil {
		return fmt.Errorf("repo.RouteWaypointRepo.DeleteAll: %w", err)
	}
	return nil
}
