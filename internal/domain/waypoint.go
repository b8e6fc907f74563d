// Package domain contains the core data types for the air unit network
// dataset: waypoints, routes, the join entity binding them, and the
// collections that own them. This package enforces every field constraint at
// the point of assignment; other packages (repo, service, codecs) can assume
// any Waypoint or Route they are handed is valid.
package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/twpayne/go-geom"
)

const (
	// IdentifierMaxLength is the maximum length of a waypoint identifier.
	// The limit comes from the Garmin FPL standard and ensures identifiers
	// can be represented unambiguously in every supported output format.
	IdentifierMaxLength = 6

	// NameMaxLength is the maximum length of a waypoint name. FPL formally
	// allows 19 characters but devices only display 17, so 17 is treated as
	// the effective limit to avoid silently losing information.
	NameMaxLength = 17
)

// Waypoint is a known location with a controlled identifier.
//
// Waypoints identify locations relevant to navigation, typically as part of
// a network of waypoints and routes. A waypoint may appear in any number of
// routes, any number of times, and is not aware of the routes that use it.
//
// Fields are unexported and mutated through validating setters: a Waypoint
// is either fully valid or does not exist. Identity is the feature ID, never
// field values.
type Waypoint struct {
	id             string
	identifier     string
	geometry       *geom.Point
	name           string
	colocatedWith  string
	lastAccessedAt *time.Time
	lastAccessedBy string
	comment        string
}

// WaypointFields carries the optional attributes accepted at construction.
// Zero values mean "not set".
type WaypointFields struct {
	Name           string
	ColocatedWith  string
	LastAccessedAt *time.Time
	LastAccessedBy string
	Comment        string
}

// WaypointRecord is the flat persistence form of a Waypoint, used by the
// repo layer. Geometry keeps its EPSG:4326 point as-is; optional string
// fields are empty when absent.
type WaypointRecord struct {
	ID             string
	Identifier     string
	Geometry       *geom.Point
	Name           string
	ColocatedWith  string
	LastAccessedAt *time.Time
	LastAccessedBy string
	Comment        string
}

// NewWaypoint creates a waypoint with a freshly minted feature ID.
// The identifier and geometry are required; optional attributes are applied
// in order with the same validation their setters perform, so a returned
// Waypoint is always fully valid.
func NewWaypoint(identifier string, point *geom.Point, fields WaypointFields) (*Waypoint, error) {
	w := &Waypoint{id: NewID()}
	if err := w.applyFields(identifier, point, fields); err != nil {
		return nil, err
	}
	return w, nil
}

// WaypointFromRecord reconstructs a waypoint from a persisted record. The
// stored feature ID is parsed and validated rather than regenerated; all
// other fields go through the same validation as NewWaypoint.
func WaypointFromRecord(rec WaypointRecord) (*Waypoint, error) {
	id, err := ParseID(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("domain.WaypointFromRecord: %w", err)
	}
	w := &Waypoint{id: id}
	fields := WaypointFields{
		Name:           rec.Name,
		ColocatedWith:  rec.ColocatedWith,
		LastAccessedAt: rec.LastAccessedAt,
		LastAccessedBy: rec.LastAccessedBy,
		Comment:        rec.Comment,
	}
	if err := w.applyFields(rec.Identifier, rec.Geometry, fields); err != nil {
		return nil, fmt.Errorf("domain.WaypointFromRecord: %w", err)
	}
	return w, nil
}

// applyFields is the single ordered validation path shared by both
// constructors, so rules like the paired last-accessed fields are enforced
// exactly once regardless of how a waypoint comes into being.
func (w *Waypoint) applyFields(identifier string, point *geom.Point, fields WaypointFields) error {
	if err := w.SetIdentifier(identifier); err != nil {
		return err
	}
	if err := w.SetGeometry(point); err != nil {
		return err
	}
	if fields.Name != "" {
		if err := w.SetName(fields.Name); err != nil {
			return err
		}
	}
	w.SetColocatedWith(fields.ColocatedWith)
	if err := w.SetLastAccessed(fields.LastAccessedAt, fields.LastAccessedBy); err != nil {
		return err
	}
	w.SetComment(fields.Comment)
	return nil
}

// ID returns the waypoint's feature ID: unique, persistent, and assigned at
// construction.
func (w *Waypoint) ID() string { return w.id }

// Identifier returns the short controlled code naming the waypoint.
func (w *Waypoint) Identifier() string { return w.identifier }

// SetIdentifier sets the waypoint identifier. Identifiers are required,
// at most 6 characters, and by convention unique across a collection (the
// collection enforces uniqueness on insert). Longer, less formal values
// belong in the name field: identifier 'FOXTRT', name 'Foxtrot'.
func (w *Waypoint) SetIdentifier(identifier string) error {
	if identifier == "" {
		return fmt.Errorf("identifier is required: %w", ErrValidation)
	}
	if n := utf8.RuneCountInString(identifier); n > IdentifierMaxLength {
		return fmt.Errorf("identifier must be %d characters or less, %q is %d: %w",
			IdentifierMaxLength, identifier, n, ErrValidation)
	}
	w.identifier = identifier
	return nil
}

// Geometry returns the waypoint's EPSG:4326 point (2D, or 3D when an
// elevation is known).
func (w *Waypoint) Geometry() *geom.Point { return w.geometry }

// Lon returns the longitude component of the waypoint geometry.
func (w *Waypoint) Lon() float64 { return w.geometry.X() }

// Lat returns the latitude component of the waypoint geometry.
func (w *Waypoint) Lat() float64 { return w.geometry.Y() }

// Elevation returns the elevation in metres and whether one is set.
func (w *Waypoint) Elevation() (float64, bool) {
	if w.geometry.Layout() == geom.XYZ {
		return w.geometry.Z(), true
	}
	return 0, false
}

// SetGeometry sets the waypoint geometry, rejecting coordinates outside
// EPSG:4326 bounds.
func (w *Waypoint) SetGeometry(point *geom.Point) error {
	if err := validatePoint(point); err != nil {
		return err
	}
	w.geometry = point
	return nil
}

// Name returns the optional longer name, or "" when unset.
func (w *Waypoint) Name() string { return w.name }

// SetName sets the optional waypoint name, at most 17 characters.
func (w *Waypoint) SetName(name string) error {
	if n := utf8.RuneCountInString(name); n > NameMaxLength {
		return fmt.Errorf("name must be %d characters or less, %q is %d: %w",
			NameMaxLength, name, n, ErrValidation)
	}
	w.name = name
	return nil
}

// ColocatedWith returns what the waypoint is near or also known as, or ""
// when unset. Values are free text.
func (w *Waypoint) ColocatedWith() string { return w.colocatedWith }

// SetColocatedWith records what the waypoint is near, or what other teams
// call it. Free text, no constraints.
func (w *Waypoint) SetColocatedWith(s string) { w.colocatedWith = s }

// LastAccessedAt returns the date the waypoint was last accessed, or nil.
func (w *Waypoint) LastAccessedAt() *time.Time { return w.lastAccessedAt }

// LastAccessedBy returns who last accessed the waypoint, or "".
func (w *Waypoint) LastAccessedBy() string { return w.lastAccessedBy }

// SetLastAccessed sets the last-accessed audit pair. The two values must be
// set together or not at all: a date without an agent (or vice versa) is a
// validation error and leaves the waypoint unchanged. Passing a nil date and
// empty agent clears both.
func (w *Waypoint) SetLastAccessed(at *time.Time, by string) error {
	if at != nil && by == "" {
		return fmt.Errorf("a last accessed by value must be provided if last accessed at is set: %w", ErrValidation)
	}
	if at == nil && by != "" {
		return fmt.Errorf("a last accessed at value must be provided if last accessed by is set: %w", ErrValidation)
	}
	w.lastAccessedAt = at
	w.lastAccessedBy = by
	return nil
}

// Comment returns the free-text comment, or "" when unset.
func (w *Waypoint) Comment() string { return w.comment }

// SetComment sets the free-text descriptive comment.
func (w *Waypoint) SetComment(comment string) { w.comment = comment }

// Equal reports whether two waypoints are the same entity. Identity is by
// feature ID only, never by field value.
func (w *Waypoint) Equal(other *Waypoint) bool {
	return other != nil && w.id == other.id
}

// Record returns the flat persistence form of the waypoint.
func (w *Waypoint) Record() WaypointRecord {
	return WaypointRecord{
		ID:             w.id,
		Identifier:     w.identifier,
		Geometry:       w.geometry,
		Name:           w.name,
		ColocatedWith:  w.colocatedWith,
		LastAccessedAt: w.lastAccessedAt,
		LastAccessedBy: w.lastAccessedBy,
		Comment:        w.comment,
	}
}

// String renders the waypoint for inspection output.
func (w *Waypoint) String() string {
	return fmt.Sprintf("<Waypoint %s :- [%-6s], (%v, %v)>", w.id, w.identifier, w.Lon(), w.Lat())
}
