package fpl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/domain"
	"github.com/antarctica/bas-air-unit-network-dataset/internal/fpl"
)

func domainWaypoint(t *testing.T, identifier, name string, lon, lat float64) *domain.Waypoint {
	t.Helper()
	w, err := domain.NewWaypoint(identifier, domain.NewPoint(lon, lat), domain.WaypointFields{Name: name})
	require.NoError(t, err)
	return w
}

func TestNewWaypoint_Defaults(t *testing.T) {
	w, err := fpl.NewWaypoint(domainWaypoint(t, "ALPHA", "ALPHA 001", -75.0, -69.9))
	require.NoError(t, err)

	assert.Equal(t, "ALPHA", w.Identifier())
	assert.Equal(t, fpl.TypeUserWaypoint, w.Type())
	assert.Equal(t, fpl.AntarcticaCountryCode, w.CountryCode())
	assert.Equal(t, "ALPHA 001", w.Comment(), "domain name becomes the FPL comment, sanitized")
}

func TestWaypoint_CommentDefault(t *testing.T) {
	w, err := fpl.NewWaypoint(domainWaypoint(t, "ALPHA", "", -75.0, -69.9))
	require.NoError(t, err)

	assert.Equal(t, "NO COMMENT", w.Comment(), "waypoints without a comment carry the fixed placeholder")

	require.NoError(t, w.SetComment("ON A RIDGE"))
	assert.Equal(t, "ON A RIDGE", w.Comment())

	// Lowercase characters are invalid and dropped, never case-folded.
	require.NoError(t, w.SetComment("Alpha 001"))
	assert.Equal(t, "A 001", w.Comment())
}

func TestWaypoint_LimitsMeasuredBeforeSanitization(t *testing.T) {
	var w fpl.Waypoint

	// 25 characters raw, 20 after sanitization: accepted.
	require.NoError(t, w.SetComment("FOO-bar-ABC 123 DEF 456 G"))
	assert.Equal(t, "FOOABC 123 DEF 456 G", w.Comment())

	// 26 characters raw even though sanitization would shrink it: rejected.
	err := w.SetComment("FOO-bar-ABC 123 DEF 456 GH")
	assert.ErrorIs(t, err, domain.ErrValidation)

	// The raw limit counts characters, not bytes.
	require.NoError(t, w.SetComment("Ø-ØØ-ABC 123 DEF 456 GHIJ")) // 25 characters, 28 bytes
	assert.Equal(t, "ABC 123 DEF 456 GHIJ", w.Comment())

	err = w.SetComment("Ø-ØØ-ABC 123 DEF 456 GHIJK") // 26 characters
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestWaypoint_CountryCode(t *testing.T) {
	var w fpl.Waypoint

	// The Antarctica convention passes through verbatim despite failing
	// the alphanumeric rule.
	require.NoError(t, w.SetCountryCode(fpl.AntarcticaCountryCode))
	assert.Equal(t, "__", w.CountryCode())

	require.NoError(t, w.SetCountryCode("G-"))
	assert.Equal(t, "G", w.CountryCode())

	err := w.SetCountryCode("GBR")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestWaypoint_Type(t *testing.T) {
	var w fpl.Waypoint

	require.NoError(t, w.SetType("AIRPORT"))
	err := w.SetType("SEAPORT")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestWaypoint_PoleAndAntimeridianClamping(t *testing.T) {
	var w fpl.Waypoint

	require.NoError(t, w.SetLat(90))
	assert.Equal(t, 89.999999, w.Lat())
	require.NoError(t, w.SetLat(-90))
	assert.Equal(t, -89.999999, w.Lat())
	require.NoError(t, w.SetLat(-69.915214))
	assert.Equal(t, -69.915214, w.Lat(), "values inside the bounds pass through unchanged")

	require.NoError(t, w.SetLon(180))
	assert.Equal(t, 179.999999, w.Lon())
	require.NoError(t, w.SetLon(-180))
	assert.Equal(t, -179.999999, w.Lon())

	assert.ErrorIs(t, w.SetLat(90.1), domain.ErrValidation)
	assert.ErrorIs(t, w.SetLon(-180.1), domain.ErrValidation)
}

func TestRoute_NameSanitization(t *testing.T) {
	r, err := domain.NewRoute("01_BRAVO_TO_ALPHA")
	require.NoError(t, err)

	fr, err := fpl.NewRoute(r, 1)
	require.NoError(t, err)

	// Underscores become spaces before sanitization, never dropped.
	assert.Equal(t, "01 BRAVO TO ALPHA", fr.Name())

	// Lowercase characters are dropped after the underscore replacement.
	require.NoError(t, fr.SetName("01_BRAVO_to_ALPHA"))
	assert.Equal(t, "01 BRAVO  ALPHA", fr.Name())
}

func TestRoute_NameLength(t *testing.T) {
	r, err := domain.NewRoute("01_BRAVO_TO_ALPHA_AND_BACK") // 26 characters
	require.NoError(t, err)

	_, err = fpl.NewRoute(r, 1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewRoute_PointsFromDomain(t *testing.T) {
	r, err := domain.NewRoute("01_ALPHA_TO_BRAVO")
	require.NoError(t, err)

	alpha := domainWaypoint(t, "ALPHA", "", -75.0, -69.9)
	bravo := domainWaypoint(t, "BRAVO", "", -68.5, -71.2)

	rwa, err := domain.NewRouteWaypoint(alpha, 1)
	require.NoError(t, err)
	rwb, err := domain.NewRouteWaypoint(bravo, 2)
	require.NoError(t, err)
	require.NoError(t, r.SetWaypoints([]*domain.RouteWaypoint{rwa, rwb}))

	fr, err := fpl.NewRoute(r, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, fr.Index())
	require.Len(t, fr.Points(), 2)
	assert.Equal(t, "ALPHA", fr.Points()[0].WaypointIdentifier())
	assert.Equal(t, "BRAVO", fr.Points()[1].WaypointIdentifier())
	assert.Equal(t, fpl.TypeUserWaypoint, fr.Points()[0].WaypointType())
	assert.Equal(t, fpl.AntarcticaCountryCode, fr.Points()[0].WaypointCountryCode())
}
