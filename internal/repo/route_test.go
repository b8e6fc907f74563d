package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/domain"
	"github.com/antarctica/bas-air-unit-network-dataset/internal/repo"
	"github.com/antarctica/bas-air-unit-network-dataset/testutil"
)

func TestRouteRepo_InsertListCreationOrder(t *testing.T) {
	r := repo.NewRouteRepo(testutil.NewDB(t))
	ctx := context.Background()

	// Names sort differently to creation order on purpose.
	names := []string{"03_VICTOR_TO_ALPHA", "01_BRAVO_TO_ALPHA", "02_BRAVO_TO_BRAVO"}
	for _, name := range names {
		route, err := domain.NewRoute(name)
		require.NoError(t, err)
		require.NoError(t, r.Insert(ctx, route.Record()))
	}

	recs, err := r.List(ctx)
	require.NoError(t, err)

	var got []string
	for _, rec := range recs {
		got = append(got, rec.Name)
	}
	assert.Equal(t, names, got, "routes list in creation order, not name order")
}

func TestRouteRepo_DeleteAll(t *testing.T) {
	r := repo.NewRouteRepo(testutil.NewDB(t))
	ctx := context.Background()

	route, err := domain.NewRoute("01_BRAVO_TO_ALPHA")
	require.NoError(t, err)
	require.NoError(t, r.Insert(ctx, route.Record()))
	require.NoError(t, r.DeleteAll(ctx))

	recs, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRouteWaypointRepo_ListOrdered(t *testing.T) {
	handle := testutil.NewDB(t)
	routes := repo.NewRouteRepo(handle)
	waypoints := repo.NewWaypointRepo(handle)
	joins := repo.NewRouteWaypointRepo(handle)
	ctx := context.Background()

	routeA, err := domain.NewRoute("01_ALPHA_TO_BRAVO")
	require.NoError(t, err)
	routeB, err := domain.NewRoute("02_BRAVO_TO_ALPHA")
	require.NoError(t, err)
	require.NoError(t, routes.Insert(ctx, routeA.Record()))
	require.NoError(t, routes.Insert(ctx, routeB.Record()))

	alpha, err := domain.NewWaypoint("ALPHA", domain.NewPoint(-75.0, -69.9), domain.WaypointFields{})
	require.NoError(t, err)
	bravo, err := domain.NewWaypoint("BRAVO", domain.NewPoint(-68.5, -71.2), domain.WaypointFields{})
	require.NoError(t, err)
	require.NoError(t, waypoints.Insert(ctx, alpha.Record()))
	require.NoError(t, waypoints.Insert(ctx, bravo.Record()))

	// Insert out of sequence order; List must still come back ordered.
	for _, rec := range []domain.RouteWaypointRecord{
		{RouteID: routeB.ID(), WaypointID: bravo.ID(), Sequence: 1},
		{RouteID: routeA.ID(), WaypointID: bravo.ID(), Sequence: 2, Description: "end"},
		{RouteID: routeA.ID(), WaypointID: alpha.ID(), Sequence: 1, Description: "start"},
		{RouteID: routeB.ID(), WaypointID: alpha.ID(), Sequence: 2},
	} {
		require.NoError(t, joins.Insert(ctx, rec))
	}

	recs, err := joins.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 4)

	// Grouped by route, then by sequence within each route.
	assert.Equal(t, routeA.ID(), recs[0].RouteID)
	assert.Equal(t, 1, recs[0].Sequence)
	assert.Equal(t, "start", recs[0].Description)
	assert.Equal(t, routeA.ID(), recs[1].RouteID)
	assert.Equal(t, 2, recs[1].Sequence)
	assert.Equal(t, routeB.ID(), recs[2].RouteID)
	assert.Equal(t, 1, recs[2].Sequence)
	assert.Empty(t, recs[2].Description)
}

func TestMigrate_GeoPackageMetadata(t *testing.T) {
	handle := testutil.NewDB(t)

	// The dataset must be a well-formed GeoPackage: metadata tables
	// present and the waypoints layer registered as a point layer.
	var count int
	err := handle.QueryRow(
		`SELECT COUNT(*) FROM gpkg_contents WHERE table_name = 'waypoints' AND data_type = 'features'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var geometryType string
	var srid int
	err = handle.QueryRow(
		`SELECT geometry_type_name, srs_id FROM gpkg_geometry_columns WHERE table_name = 'waypoints'`).
		Scan(&geometryType, &srid)
	require.NoError(t, err)
	assert.Equal(t, "POINT", geometryType)
	assert.Equal(t, 4326, srid)
}
