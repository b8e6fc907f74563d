package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/domain"
	"github.com/antarctica/bas-air-unit-network-dataset/internal/gpx"
	"github.com/antarctica/bas-air-unit-network-dataset/internal/repo"
	"github.com/antarctica/bas-air-unit-network-dataset/internal/service"
	"github.com/antarctica/bas-air-unit-network-dataset/testutil"
)

// writeGPXFixture writes a GPX file describing two waypoints and one route
// between them, the way field teams supply data.
func writeGPXFixture(t *testing.T, doc *gpx.Document) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.gpx")

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, doc.Write(f))
	require.NoError(t, f.Close())
	return path
}

func gpxFixture() *gpx.Document {
	doc := gpx.NewDocument()
	doc.Waypoints = []gpx.Waypoint{
		{Lat: -69.915214, Lon: -75.014648, Name: "ALPHA",
			Description: "Name: Alpha 001 | Co-located with: Fossil Bluff | Last accessed at: 2014-12-24 | Last accessed by: Conwat | Comment: N/A"},
		{Lat: -71.25, Lon: -68.5, Name: "BRAVO", Description: "-"},
	}
	doc.Routes = []gpx.Route{
		{Name: "01_ALPHA_TO_BRAVO", Points: []gpx.RoutePoint{
			{Lat: -69.915214, Lon: -75.014648, Name: "ALPHA"},
			{Lat: -71.25, Lon: -68.5, Name: "BRAVO"},
		}},
	}
	return doc
}

// newServices builds the network and import services over a real dataset.
func newServices(t *testing.T) (*service.NetworkService, *service.ImportService) {
	t.Helper()
	handle := testutil.NewDB(t)
	network := service.NewNetworkService(repo.NewStore(handle), nil)
	return network, service.NewImportService(network, nil)
}

func TestImportGPX(t *testing.T) {
	networkSvc, importer := newServices(t)
	path := writeGPXFixture(t, gpxFixture())

	require.NoError(t, importer.ImportGPX(context.Background(), path))

	// Load back through the persistence layer to prove the import saved.
	network, err := networkSvc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, network.Waypoints.Len())
	alpha, err := network.Waypoints.Lookup("ALPHA")
	require.NoError(t, err)
	assert.Equal(t, "Alpha 001", alpha.Name())
	assert.Equal(t, "Fossil Bluff", alpha.ColocatedWith())
	assert.Equal(t, "Conwat", alpha.LastAccessedBy())
	require.NotNil(t, alpha.LastAccessedAt())

	require.Equal(t, 1, network.Routes.Len())
	route := network.Routes.Routes()[0]
	assert.Equal(t, "01_ALPHA_TO_BRAVO", route.Name())
	require.Equal(t, 2, route.WaypointsCount())
	assert.Equal(t, "ALPHA", route.FirstWaypoint().Waypoint().Identifier())
	assert.Equal(t, 1, route.FirstWaypoint().Sequence())
	assert.Equal(t, "BRAVO", route.LastWaypoint().Waypoint().Identifier())
}

func TestImportGPX_ReplacesExistingContents(t *testing.T) {
	networkSvc, importer := newServices(t)

	require.NoError(t, importer.ImportGPX(context.Background(), writeGPXFixture(t, gpxFixture())))

	// A second import with different contents replaces, not appends.
	second := gpx.NewDocument()
	second.Waypoints = []gpx.Waypoint{{Lat: -70.0, Lon: -67.0, Name: "CHARLY", Description: "-"}}
	require.NoError(t, importer.ImportGPX(context.Background(), writeGPXFixture(t, second)))

	network, err := networkSvc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, network.Waypoints.Len())
	assert.Equal(t, 0, network.Routes.Len())
	_, err = network.Waypoints.Lookup("ALPHA")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImportGPX_UnknownRoutePoint(t *testing.T) {
	_, importer := newServices(t)

	doc := gpxFixture()
	doc.Routes[0].Points = append(doc.Routes[0].Points, gpx.RoutePoint{Lat: 0, Lon: 0, Name: "GHOST"})

	err := importer.ImportGPX(context.Background(), writeGPXFixture(t, doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "GHOST", "the error must name the unresolvable waypoint")
}

func TestImportGPX_MissingFile(t *testing.T) {
	_, importer := newServices(t)

	err := importer.ImportGPX(context.Background(), filepath.Join(t.TempDir(), "absent.gpx"))
	assert.Error(t, err)
}
