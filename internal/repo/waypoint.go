package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/domain"
)

const dateLayout = "2006-01-02"

// WaypointRepo defines the persistence operations for the waypoints record
// stream. The service layer depends on this interface, not the concrete
// SQLite implementation, so it can be unit-tested with a mock.
type WaypointRepo interface {
	// Insert adds one waypoint record, geometry and full attribute set.
	Insert(ctx context.Context, rec domain.WaypointRecord) error

	// List returns all waypoint records ordered by identifier.
	List(ctx context.Context) ([]domain.WaypointRecord, error)

	// DeleteAll removes every waypoint record. Saves replace the stream
	// wholesale; there is no incremental persistence.
	DeleteAll(ctx context.Context) error
}

type sqliteWaypointRepo struct {
	db db
}

// NewWaypointRepo constructs a WaypointRepo backed by the provided
// connection. In production pass the *sql.DB from Open; in tests a *sql.Tx
// gives rollback isolation.
func NewWaypointRepo(db db) WaypointRepo {
	return &sqliteWaypointRepo{db: db}
}

func (r *sqliteWaypointRepo) Insert(ctx context.Context, rec domain.WaypointRecord) error {
	const q = `
		INSERT INTO waypoints (id, identifier, geom, name, colocated_with, last_accessed_at, last_accessed_by, comment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	blob, err := encodeGeometry(rec.Geometry)
	if err != nil {
		return fmt.Errorf("repo.WaypointRepo.Insert: %w", err)
	}

	var lastAccessedAt any
	if rec.LastAccessedAt != nil {
		lastAccessedAt = rec.LastAccessedAt.Format(dateLayout)
	}

	_, err = r.db.ExecContext(ctx, q,
		rec.ID, rec.Identifier, blob,
		nullString(rec.Name), nullString(rec.ColocatedWith),
		lastAccessedAt, nullString(rec.LastAccessedBy), nullString(rec.Comment))
	if err != nil {
		return fmt.Errorf("repo.WaypointRepo.Insert: %w", err)
	}
	return nil
}

func (r *sqliteWaypointRepo) List(ctx context.Context) ([]domain.WaypointRecord, error) {
	const q = `
		SELECT id, identifier, geom, name, colocated_with, last_accessed_at, last_accessed_by, comment
		FROM waypoints
		ORDER BY identifier`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.WaypointRepo.List: %w", err)
	}
	defer rows.Close()

	var recs []domain.WaypointRecord
	for rows.Next() {
		rec, err := scanWaypoint(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.WaypointRepo.List: scan: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.WaypointRepo.List: rows: %w", err)
	}
	return recs, nil
}

func (r *sqliteWaypointRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM waypoints`); err != nil {
		return fmt.Errorf("repo.WaypointRepo.DeleteAll: %w", err)
	}
	return nil
}

// scanWaypoint maps a single row into a WaypointRecord, decoding the
// geometry blob and the nullable attribute columns.
func scanWaypoint(s scanner) (domain.WaypointRecord, error) {
	var (
		rec                            domain.WaypointRecord
		blob                           []byte
		name, colocatedWith            *string
		lastAccessedAt, lastAccessedBy *string
		comment                        *string
	)

	err := s.Scan(&rec.ID, &rec.Identifier, &blob, &name, &colocatedWith, &lastAccessedAt, &lastAccessedBy, &comment)
	if err != nil {
		return domain.WaypointRecord{}, err
	}

	rec.Geometry, err = decodeGeometry(blob)
	if err != nil {
		return domain.WaypointRecord{}, err
	}

	if name != nil {
		rec.Name = *name
	}
	if colocatedWith != nil {
		rec.ColocatedWith = *colocatedWith
	}
	if lastAccessedAt != nil {
		at, err := time.Parse(dateLayout, *lastAccessedAt)
		if err != nil {
			return domain.WaypointRecord{}, fmt.Errorf("invalid last_accessed_at %q: %w", *lastAccessedAt, err)
		}
		rec.LastAccessedAt = &at
	}
	if lastAccessedBy != nil {
		rec.LastAccessedBy = *lastAccessedBy
	}
	if comment != nil {
		rec.Comment = *comment
	}
	return rec, nil
}
