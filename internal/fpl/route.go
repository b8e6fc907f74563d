package fpl

import (
	"fmt"
	"unicode/utf8"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/domain"
)

const (
	// RouteNameMaxLength is the longest accepted route name.
	RouteNameMaxLength = 25

	// RouteIndexMax is the highest permitted flight-plan index. Indexes
	// identify a route uniquely across the whole device and run 0-98
	// inclusive (not 99).
	RouteIndexMax = 98

	// RoutePointsMax is the most route points a single FPL route may hold.
	RoutePointsMax = 3000
)

// RoutePoint is the FPL-specific rendering of a route waypoint. Route
// points reference waypoints by identifier only; geometry is never
// duplicated into a route document.
type RoutePoint struct {
	waypointIdentifier  string
	waypointType        string
	waypointCountryCode string
}

// NewRoutePoint builds an FPL route point referencing the given domain
// waypoint by identifier.
func NewRoutePoint(w *domain.Waypoint) (*RoutePoint, error) {
	rp := &RoutePoint{}
	if err := rp.SetWaypointIdentifier(w.Identifier()); err != nil {
		return nil, err
	}
	if err := rp.SetWaypointType(TypeUserWaypoint); err != nil {
		return nil, err
	}
	if err := rp.SetWaypointCountryCode(AntarcticaCountryCode); err != nil {
		return nil, err
	}
	return rp, nil
}

// WaypointIdentifier returns the sanitized identifier of the referenced
// waypoint.
func (rp *RoutePoint) WaypointIdentifier() string { return rp.waypointIdentifier }

// SetWaypointIdentifier sets the referenced waypoint identifier. The
// reference cannot be resolved here — only the device, which holds the full
// waypoint set, can do that — so the value is sanitized like a waypoint
// identifier and otherwise taken on trust.
func (rp *RoutePoint) SetWaypointIdentifier(identifier string) error {
	if n := utf8.RuneCountInString(identifier); n > WaypointIdentifierMaxLength {
		return fmt.Errorf("fpl: waypoint identifier must be %d characters or less, %q is %d: %w",
			WaypointIdentifierMaxLength, identifier, n, domain.ErrValidation)
	}
	rp.waypointIdentifier = Alnum(identifier)
	return nil
}

// WaypointType returns the referenced waypoint's type.
func (rp *RoutePoint) WaypointType() string { return rp.waypointType }

// SetWaypointType sets the referenced waypoint's type.
func (rp *RoutePoint) SetWaypointType(waypointType string) error {
	for _, t := range waypointTypes {
		if waypointType == t {
			rp.waypointType = waypointType
			return nil
		}
	}
	return fmt.Errorf("fpl: waypoint type must be one of %v, got %q: %w",
		waypointTypes, waypointType, domain.ErrValidation)
}

// WaypointCountryCode returns the referenced waypoint's country code.
func (rp *RoutePoint) WaypointCountryCode() string { return rp.waypointCountryCode }

// SetWaypointCountryCode sets the referenced waypoint's country code, with
// the same Antarctica exception as Waypoint.SetCountryCode.
func (rp *RoutePoint) SetWaypointCountryCode(code string) error {
	if n := utf8.RuneCountInString(code); n > CountryCodeMaxLength {
		return fmt.Errorf("fpl: country code must be %d characters or less, %q is %d: %w",
			CountryCodeMaxLength, code, n, domain.ErrValidation)
	}
	if code == AntarcticaCountryCode {
		rp.waypointCountryCode = code
		return nil
	}
	rp.waypointCountryCode = Alnum(code)
	return nil
}

// Route is the FPL-specific rendering of a route: a name, a device-wide
// flight-plan index, and the ordered points making up the path.
type Route struct {
	name   string
	index  int
	points []*RoutePoint
}

// NewRoute builds an FPL route from a domain route. The flight-plan index
// is an explicit parameter: the FPL standard identifies routes by index
// rather than name, and the caller decides how indexes are assigned.
// Index and point-count limits are format capacities checked at encode
// time, not here.
func NewRoute(r *domain.Route, index int) (*Route, error) {
	fr := &Route{index: index}
	if err := fr.SetName(r.Name()); err != nil {
		return nil, err
	}
	points := make([]*RoutePoint, 0, r.WaypointsCount())
	for _, rw := range r.Waypoints() {
		rp, err := NewRoutePoint(rw.Waypoint())
		if err != nil {
			return nil, err
		}
		points = append(points, rp)
	}
	fr.points = points
	return fr, nil
}

// Name returns the sanitized route name.
func (r *Route) Name() string { return r.name }

// SetName sets the route name. The length limit applies to the input before
// sanitization. Underscores are replaced with spaces before sanitizing —
// route names in the source data conventionally use underscores where the
// FPL standard wants spaces — so "FOO_BAR" becomes "FOO BAR", not "FOOBAR".
func (r *Route) SetName(name string) error {
	if n := utf8.RuneCountInString(name); n > RouteNameMaxLength {
		return fmt.Errorf("fpl: route name must be %d characters or less, %q is %d: %w",
			RouteNameMaxLength, name, n, domain.ErrValidation)
	}
	r.name = AlnumSpace(underscoreToSpace(name))
	return nil
}

// Index returns the flight-plan index.
func (r *Route) Index() int { return r.index }

// SetIndex sets the flight-plan index. Range checking happens at encode
// time as the 0-98 window is a capacity of the output format.
func (r *Route) SetIndex(index int) { r.index = index }

// Points returns the ordered route points.
func (r *Route) Points() []*RoutePoint { return r.points }

// SetPoints replaces the ordered route points. The 3000-point ceiling is
// checked at encode time.
func (r *Route) SetPoints(points []*RoutePoint) { r.points = points }

func underscoreToSpace(s string) string {
	out := []byte(s)
	for i := range out {
		if out[i] == '_' {
			out[i] = ' '
		}
	}
	return string(out)
}
