package domain

import (
	"fmt"

	"github.com/twpayne/go-geom"
)

// RouteWaypoint binds one Waypoint into one Route at a sequence position.
//
// It is a pure join entity: it references the shared Waypoint held by the
// WaypointCollection and never owns or copies waypoint data. Sequence values
// are 1-based and contiguous within a route, in list order.
type RouteWaypoint struct {
	waypoint    *Waypoint
	sequence    int
	description string
}

// NewRouteWaypoint creates a route waypoint. The waypoint and sequence are
// required together; partial construction is an error.
func NewRouteWaypoint(waypoint *Waypoint, sequence int) (*RouteWaypoint, error) {
	if waypoint == nil {
		return nil, fmt.Errorf("a waypoint value must be provided if sequence is set: %w", ErrValidation)
	}
	if sequence < 1 {
		return nil, fmt.Errorf("sequence must be a positive value, got %d: %w", sequence, ErrValidation)
	}
	return &RouteWaypoint{waypoint: waypoint, sequence: sequence}, nil
}

// Waypoint returns the referenced waypoint.
func (rw *RouteWaypoint) Waypoint() *Waypoint { return rw.waypoint }

// Sequence returns the 1-based position of the waypoint within its route.
func (rw *RouteWaypoint) Sequence() int { return rw.sequence }

// Description returns the optional free-text description, or "".
func (rw *RouteWaypoint) Description() string { return rw.description }

// SetDescription sets the optional free-text description.
func (rw *RouteWaypoint) SetDescription(s string) { rw.description = s }

// Route is a known, planned path between an origin and destination.
//
// A route holds only an identity and a name; the path itself is an ordered
// list of RouteWaypoints. Routes are not spatial features directly but a
// LineString can be derived from the point geometry of each waypoint.
type Route struct {
	id        string
	name      string
	waypoints []*RouteWaypoint
}

// RouteRecord is the flat persistence form of a Route shell: identity and
// name only. Waypoint membership is persisted separately as route_waypoints
// records.
type RouteRecord struct {
	ID   string
	Name string
}

// RouteWaypointRecord is the flat persistence form of a RouteWaypoint.
// Geometry is derivable from the referenced waypoint and never duplicated.
type RouteWaypointRecord struct {
	RouteID     string
	WaypointID  string
	Sequence    int
	Description string
}

// NewRoute creates a route with a freshly minted feature ID. A name is
// required; it is descriptive and need not be unique.
func NewRoute(name string) (*Route, error) {
	r := &Route{id: NewID()}
	if err := r.SetName(name); err != nil {
		return nil, err
	}
	return r, nil
}

// RouteFromRecord reconstructs a route shell from a persisted record. The
// stored feature ID is parsed and validated rather than regenerated.
func RouteFromRecord(rec RouteRecord) (*Route, error) {
	id, err := ParseID(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("domain.RouteFromRecord: %w", err)
	}
	r := &Route{id: id}
	if err := r.SetName(rec.Name); err != nil {
		return nil, fmt.Errorf("domain.RouteFromRecord: %w", err)
	}
	return r, nil
}

// ID returns the route's feature ID.
func (r *Route) ID() string { return r.id }

// Name returns the route name.
func (r *Route) Name() string { return r.name }

// SetName sets the route name. Names are required but not required to be
// unique.
func (r *Route) SetName(name string) error {
	if name == "" {
		return fmt.Errorf("route name is required: %w", ErrValidation)
	}
	r.name = name
	return nil
}

// Waypoints returns the ordered route waypoints. May be empty, a single
// waypoint (start equals end), or many.
func (r *Route) Waypoints() []*RouteWaypoint { return r.waypoints }

// SetWaypoints replaces the whole ordered waypoint list atomically. There is
// no partial-update API. Sequence values must be contiguous from 1 in list
// order; anything else is rejected without modifying the route.
func (r *Route) SetWaypoints(waypoints []*RouteWaypoint) error {
	for i, rw := range waypoints {
		if rw == nil {
			return fmt.Errorf("route waypoint at position %d is nil: %w", i, ErrValidation)
		}
		if rw.sequence != i+1 {
			return fmt.Errorf("route waypoint sequences must be contiguous from 1, got %d at position %d: %w",
				rw.sequence, i, ErrValidation)
		}
	}
	r.waypoints = waypoints
	return nil
}

// FirstWaypoint returns the origin of the route, or nil for an empty route.
// Single-waypoint routes return the same waypoint as LastWaypoint.
func (r *Route) FirstWaypoint() *RouteWaypoint {
	if len(r.waypoints) == 0 {
		return nil
	}
	return r.waypoints[0]
}

// LastWaypoint returns the destination of the route, or nil for an empty
// route.
func (r *Route) LastWaypoint() *RouteWaypoint {
	if len(r.waypoints) == 0 {
		return nil
	}
	return r.waypoints[len(r.waypoints)-1]
}

// WaypointsCount returns the number of waypoints in the route.
func (r *Route) WaypointsCount() int { return len(r.waypoints) }

// LineString derives the route path geometry by concatenating each
// referenced waypoint's point in order. Elevations are dropped so the line
// is uniform regardless of which waypoints carry them.
func (r *Route) LineString() *geom.LineString {
	coords := make([]geom.Coord, 0, len(r.waypoints))
	for _, rw := range r.waypoints {
		coords = append(coords, geom.Coord{rw.waypoint.Lon(), rw.waypoint.Lat()})
	}
	ls := geom.NewLineString(geom.XY).SetSRID(SRID)
	if len(coords) > 0 {
		ls.MustSetCoords(coords)
	}
	return ls
}

// Record returns the flat persistence form of the route shell.
func (r *Route) Record() RouteRecord {
	return RouteRecord{ID: r.id, Name: r.name}
}

// WaypointRecords returns the flat persistence form of the route's
// waypoints, keyed back to this route.
func (r *Route) WaypointRecords() []RouteWaypointRecord {
	recs := make([]RouteWaypointRecord, 0, len(r.waypoints))
	for _, rw := range r.waypoints {
		recs = append(recs, RouteWaypointRecord{
			RouteID:     r.id,
			WaypointID:  rw.waypoint.ID(),
			Sequence:    rw.sequence,
			Description: rw.description,
		})
	}
	return recs
}

// String renders the route for inspection output.
func (r *Route) String() string {
	start, end := "-", "-"
	if first := r.FirstWaypoint(); first != nil {
		start = first.Waypoint().Identifier()
	}
	if last := r.LastWaypoint(); last != nil {
		end = last.Waypoint().Identifier()
	}
	return fmt.Sprintf("<Route %s :- [%-10s], %d waypoints, Start/End: %-6s / %-6s>",
		r.id, r.name, len(r.waypoints), start, end)
}
