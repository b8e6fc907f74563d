package gpx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/gpx"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestPackDescription(t *testing.T) {
	full := gpx.DescriptionFields{
		Name:           "Alpha 001",
		ColocatedWith:  "Fossil Bluff",
		LastAccessedAt: date(2014, time.December, 24),
		LastAccessedBy: "Conwat",
		Comment:        "On a high ridge",
	}
	assert.Equal(t,
		"Name: Alpha 001 | Co-located with: Fossil Bluff | Last accessed at: 2014-12-24 | Last accessed by: Conwat | Comment: On a high ridge",
		gpx.PackDescription(full))
}

func TestPackDescription_PartialFieldsUseSentinel(t *testing.T) {
	partial := gpx.DescriptionFields{Name: "Alpha 001"}
	assert.Equal(t,
		"Name: Alpha 001 | Co-located with: N/A | Last accessed at: N/A | Last accessed by: N/A | Comment: N/A",
		gpx.PackDescription(partial))
}

func TestPackDescription_AllAbsent(t *testing.T) {
	assert.Equal(t, "-", gpx.PackDescription(gpx.DescriptionFields{}))
}

func TestUnpackDescription(t *testing.T) {
	f, err := gpx.UnpackDescription(
		"Name: Alpha 001 | Co-located with: Fossil Bluff | Last accessed at: 2014-12-24 | Last accessed by: Conwat | Comment: N/A")
	require.NoError(t, err)

	assert.Equal(t, "Alpha 001", f.Name)
	assert.Equal(t, "Fossil Bluff", f.ColocatedWith)
	require.NotNil(t, f.LastAccessedAt)
	assert.Equal(t, *date(2014, time.December, 24), *f.LastAccessedAt)
	assert.Equal(t, "Conwat", f.LastAccessedBy)
	assert.Empty(t, f.Comment, "N/A unpacks as absent")
}

func TestUnpackDescription_BareValues(t *testing.T) {
	// Field teams often supply values without labels, in segment order.
	f, err := gpx.UnpackDescription("Alpha 001 | Fossil Bluff | 2014-12-24 | Conwat | N/A")
	require.NoError(t, err)

	assert.Equal(t, "Alpha 001", f.Name)
	assert.Equal(t, "Fossil Bluff", f.ColocatedWith)
	require.NotNil(t, f.LastAccessedAt)
	assert.Equal(t, "Conwat", f.LastAccessedBy)
}

func TestUnpackDescription_Sentinels(t *testing.T) {
	for _, description := range []string{"", "-"} {
		f, err := gpx.UnpackDescription(description)
		require.NoError(t, err)
		assert.Equal(t, gpx.DescriptionFields{}, f)
	}
}

func TestUnpackDescription_BadDate(t *testing.T) {
	_, err := gpx.UnpackDescription("Alpha 001 | N/A | 24/12/2014 | Conwat | N/A")
	assert.Error(t, err)
}

func TestDescription_RoundTrip(t *testing.T) {
	want := gpx.DescriptionFields{
		Name:           "Alpha 001",
		LastAccessedAt: date(2014, time.December, 24),
		LastAccessedBy: "Conwat",
	}

	got, err := gpx.UnpackDescription(gpx.PackDescription(want))
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.LastAccessedBy, got.LastAccessedBy)
	require.NotNil(t, got.LastAccessedAt)
	assert.True(t, want.LastAccessedAt.Equal(*got.LastAccessedAt))
}
