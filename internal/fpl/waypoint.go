package fpl

import (
	"fmt"
	"unicode/utf8"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/domain"
)

const (
	// WaypointIdentifierMaxLength is the longest accepted waypoint
	// identifier. FPL formally allows more but devices display at most 17
	// characters when listing waypoints, so 17 is the effective limit.
	WaypointIdentifierMaxLength = 17

	// CountryCodeMaxLength is the longest accepted country code.
	CountryCodeMaxLength = 2

	// CommentMaxLength is the longest accepted waypoint comment.
	CommentMaxLength = 25

	// TypeUserWaypoint is the only waypoint type this system produces.
	TypeUserWaypoint = "USER WAYPOINT"
)

// waypointTypes are the values the FPL standard defines for waypoint and
// route-point types.
var waypointTypes = []string{TypeUserWaypoint, "AIRPORT", "NDB", "VOR", "INT", "INT-VRP"}

// AntarcticaCountryCode is the conventional country code used for waypoints
// in Antarctica. It fails the alphanumeric rule but has been accepted by
// devices in operational use, so it passes through verbatim.
const AntarcticaCountryCode = "__"

// Waypoint is the FPL-specific rendering of a waypoint: the entry emitted
// into a document's waypoint table. Values are sanitized on assignment so an
// encoded element never needs further cleaning.
type Waypoint struct {
	identifier   string
	waypointType string
	countryCode  string
	lat          float64
	lon          float64
	comment      string
	hasComment   bool
}

// NewWaypoint builds an FPL waypoint from a domain waypoint. The type is
// fixed to USER WAYPOINT and the country code to the Antarctica convention,
// as those are the only values this system produces. The domain name, when
// set, becomes the FPL comment.
func NewWaypoint(w *domain.Waypoint) (*Waypoint, error) {
	fw := &Waypoint{}
	if err := fw.SetIdentifier(w.Identifier()); err != nil {
		return nil, err
	}
	if err := fw.SetType(TypeUserWaypoint); err != nil {
		return nil, err
	}
	if err := fw.SetCountryCode(AntarcticaCountryCode); err != nil {
		return nil, err
	}
	if err := fw.SetLat(w.Lat()); err != nil {
		return nil, err
	}
	if err := fw.SetLon(w.Lon()); err != nil {
		return nil, err
	}
	if name := w.Name(); name != "" {
		if err := fw.SetComment(name); err != nil {
			return nil, err
		}
	}
	return fw, nil
}

// Identifier returns the sanitized waypoint identifier. Within an FPL
// document set, identifiers are the foreign key route-points use to
// reference waypoints.
func (w *Waypoint) Identifier() string { return w.identifier }

// SetIdentifier sets the waypoint identifier. The length limit applies to
// the input before sanitization; invalid characters are then silently
// dropped, so "FOO-bar-ABCDEF" becomes "FOOABCDEF".
func (w *Waypoint) SetIdentifier(identifier string) error {
	if n := utf8.RuneCountInString(identifier); n > WaypointIdentifierMaxLength {
		return fmt.Errorf("fpl: identifier must be %d characters or less, %q is %d: %w",
			WaypointIdentifierMaxLength, identifier, n, domain.ErrValidation)
	}
	w.identifier = Alnum(identifier)
	return nil
}

// Type returns the waypoint type.
func (w *Waypoint) Type() string { return w.waypointType }

// SetType sets the waypoint type, which must be one of the small set the
// FPL standard defines. Types other than USER WAYPOINT may pass schema
// validation yet still be rejected by a device, which applies further
// per-type requirements this encoder does not model.
func (w *Waypoint) SetType(waypointType string) error {
	for _, t := range waypointTypes {
		if waypointType == t {
			w.waypointType = waypointType
			return nil
		}
	}
	return fmt.Errorf("fpl: waypoint type must be one of %v, got %q: %w",
		waypointTypes, waypointType, domain.ErrValidation)
}

// CountryCode returns the waypoint country code.
func (w *Waypoint) CountryCode() string { return w.countryCode }

// SetCountryCode sets the two-character country code. The literal "__" is
// accepted verbatim for Antarctica even though it fails the alphanumeric
// rule; everything else is sanitized.
func (w *Waypoint) SetCountryCode(code string) error {
	if n := utf8.RuneCountInString(code); n > CountryCodeMaxLength {
		return fmt.Errorf("fpl: country code must be %d characters or less, %q is %d: %w",
			CountryCodeMaxLength, code, n, domain.ErrValidation)
	}
	if code == AntarcticaCountryCode {
		w.countryCode = code
		return nil
	}
	w.countryCode = Alnum(code)
	return nil
}

// Lat returns the latitude, after any pole clamping.
func (w *Waypoint) Lat() float64 { return w.lat }

// SetLat sets the latitude. The schema does not permit the poles exactly,
// so ±90 is replaced with the closest representable value rather than
// rejected. Values beyond ±90 are invalid.
func (w *Waypoint) SetLat(lat float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("fpl: latitude must be between -90 and +90, got %v: %w", lat, domain.ErrValidation)
	}
	w.lat = ClampLat(lat)
	return nil
}

// Lon returns the longitude, after any antimeridian clamping.
func (w *Waypoint) Lon() float64 { return w.lon }

// SetLon sets the longitude. As with latitude, ±180 exactly is not
// schema-valid and is clamped to the closest representable value.
func (w *Waypoint) SetLon(lon float64) error {
	if lon < -180 || lon > 180 {
		return fmt.Errorf("fpl: longitude must be between -180 and +180, got %v: %w", lon, domain.ErrValidation)
	}
	w.lon = ClampLon(lon)
	return nil
}

// Comment returns the waypoint comment. Waypoints without a comment encode
// the fixed placeholder "NO COMMENT".
func (w *Waypoint) Comment() string {
	if !w.hasComment {
		return "NO COMMENT"
	}
	return w.comment
}

// SetComment sets the waypoint comment. The length limit applies to the
// input before sanitization; invalid characters are then dropped, so
// "FOO-bar-ABC 123 DEF 456 G" (25 characters) becomes
// "FOOABC 123 DEF 456 G" (20 characters).
func (w *Waypoint) SetComment(comment string) error {
	if n := utf8.RuneCountInString(comment); n > CommentMaxLength {
		return fmt.Errorf("fpl: comment must be %d characters or less, %q is %d: %w",
			CommentMaxLength, comment, n, domain.ErrValidation)
	}
	w.comment = AlnumSpace(comment)
	w.hasComment = true
	return nil
}

// ClampLat replaces exact pole latitudes with the closest value the FPL
// schema allows. Other values pass through unchanged.
func ClampLat(lat float64) float64 {
	switch lat {
	case 90:
		return 89.999999
	case -90:
		return -89.999999
	}
	return lat
}

// ClampLon replaces exact antimeridian longitudes with the closest value
// the FPL schema allows. Other values pass through unchanged.
func ClampLon(lon float64) float64 {
	switch lon {
	case 180:
		return 179.999999
	case -180:
		return -179.999999
	}
	return lon
}
