package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/domain"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// waypointFixture returns a valid waypoint with every optional attribute set.
func waypointFixture(t *testing.T) *domain.Waypoint {
	t.Helper()
	w, err := domain.NewWaypoint("ALPHA", domain.NewPoint(-75.014648, -69.915214), domain.WaypointFields{
		Name:           "Alpha 001",
		ColocatedWith:  "Fossil Bluff",
		LastAccessedAt: date(2014, time.December, 24),
		LastAccessedBy: "Conwat",
		Comment:        "Alpha 001 is on a high ridge",
	})
	require.NoError(t, err)
	return w
}

func TestNewWaypoint(t *testing.T) {
	w := waypointFixture(t)

	assert.NotEmpty(t, w.ID())
	assert.Equal(t, "ALPHA", w.Identifier())
	assert.Equal(t, "Alpha 001", w.Name())
	assert.Equal(t, "Fossil Bluff", w.ColocatedWith())
	assert.Equal(t, "Conwat", w.LastAccessedBy())
	assert.InDelta(t, -75.014648, w.Lon(), 1e-9)
	assert.InDelta(t, -69.915214, w.Lat(), 1e-9)

	_, ok := w.Elevation()
	assert.False(t, ok, "2D waypoint should have no elevation")
}

func TestNewWaypoint_Elevation(t *testing.T) {
	w, err := domain.NewWaypoint("BRAVO", domain.NewPointZ(-68.5, -71.25, 1220.0), domain.WaypointFields{})
	require.NoError(t, err)

	ele, ok := w.Elevation()
	require.True(t, ok)
	assert.Equal(t, 1220.0, ele)
}

func TestNewWaypoint_IDsUnique(t *testing.T) {
	a := waypointFixture(t)
	b := waypointFixture(t)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.False(t, a.Equal(b), "distinct entities with equal fields must not be equal")
	assert.True(t, a.Equal(a))
}

func TestSetIdentifier_Validation(t *testing.T) {
	w := waypointFixture(t)

	err := w.SetIdentifier("")
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = w.SetIdentifier("TOOLONG") // 7 characters
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "ALPHA", w.Identifier(), "failed set must not modify the waypoint")

	require.NoError(t, w.SetIdentifier("ABCDEF"))
}

func TestSetName_Validation(t *testing.T) {
	w := waypointFixture(t)

	require.NoError(t, w.SetName("ABCDEFGHIJKLMNOPQ")) // 17 characters
	err := w.SetName("ABCDEFGHIJKLMNOPQR")             // 18 characters
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Limits count characters, not bytes.
	require.NoError(t, w.SetName("ÅBCDEFGHIJKLMNOPQ")) // 17 characters, 18 bytes
	err = w.SetName("ÅBCDEFGHIJKLMNOPQR")              // 18 characters
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSetGeometry_Bounds(t *testing.T) {
	w := waypointFixture(t)

	assert.ErrorIs(t, w.SetGeometry(domain.NewPoint(-180.1, 0)), domain.ErrValidation)
	assert.ErrorIs(t, w.SetGeometry(domain.NewPoint(0, 90.1)), domain.ErrValidation)
	assert.ErrorIs(t, w.SetGeometry(nil), domain.ErrValidation)
	require.NoError(t, w.SetGeometry(domain.NewPoint(-180, -90)))
}

func TestSetLastAccessed_Paired(t *testing.T) {
	w := waypointFixture(t)

	err := w.SetLastAccessed(date(2020, time.January, 1), "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = w.SetLastAccessed(nil, "Conwat")
	assert.ErrorIs(t, err, domain.ErrValidation)

	// The failed sets must leave the existing pair intact.
	assert.NotNil(t, w.LastAccessedAt())
	assert.Equal(t, "Conwat", w.LastAccessedBy())

	// Clearing both together is allowed.
	require.NoError(t, w.SetLastAccessed(nil, ""))
	assert.Nil(t, w.LastAccessedAt())
	assert.Empty(t, w.LastAccessedBy())
}

func TestWaypointRecord_RoundTrip(t *testing.T) {
	w := waypointFixture(t)

	restored, err := domain.WaypointFromRecord(w.Record())
	require.NoError(t, err)

	assert.True(t, w.Equal(restored), "record round trip must preserve identity")
	assert.Equal(t, w.Identifier(), restored.Identifier())
	assert.Equal(t, w.Name(), restored.Name())
	assert.Equal(t, w.ColocatedWith(), restored.ColocatedWith())
	assert.Equal(t, w.LastAccessedBy(), restored.LastAccessedBy())
	assert.Equal(t, w.Comment(), restored.Comment())
}

func TestWaypointFromRecord_InvalidID(t *testing.T) {
	rec := waypointFixture(t).Record()
	rec.ID = "not-an-id"

	_, err := domain.WaypointFromRecord(rec)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
