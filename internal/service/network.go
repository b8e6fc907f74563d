// Package service contains the business logic for the network dataset:
// loading and saving the network through the repo record streams, importing
// interchange files, and exporting the supported output formats. Services
// depend on repo interfaces, not implementations, so they can be
// unit-tested with mocks.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/domain"
	"github.com/antarctica/bas-air-unit-network-dataset/internal/repo"
)

// Store hands out the record stream repos, either directly or scoped to a
// transaction. Satisfied by *repo.Store.
type Store interface {
	Repos() repo.Repos
	InTx(ctx context.Context, fn func(repo.Repos) error) error
}

// NetworkService loads and saves a whole network as the three related
// record streams (waypoints, routes, route_waypoints), reconstructing
// cross-references by feature ID on load.
type NetworkService struct {
	store Store
	log   *slog.Logger
}

// NewNetworkService constructs a NetworkService over a record store.
func NewNetworkService(store Store, log *slog.Logger) *NetworkService {
	if log == nil {
		log = slog.Default()
	}
	return &NetworkService{store: store, log: log}
}

// Load materializes the whole network in memory.
//
// The three phases run in a fixed order: waypoints first, then route
// shells, then the join records — which are grouped by route and resolved
// against the already-populated waypoint collection. The order is what
// makes dangling-reference detection possible: a join record naming an
// unknown waypoint is a hard error identifying the offending ID, never a
// silent drop.
func (s *NetworkService) Load(ctx context.Context) (*domain.Network, error) {
	network := domain.NewNetwork()
	repos := s.store.Repos()

	waypointRecs, err := repos.Waypoints.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.NetworkService.Load: %w", err)
	}
	for _, rec := range waypointRecs {
		w, err := domain.WaypointFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("service.NetworkService.Load: %w", err)
		}
		if err := network.Waypoints.Append(w); err != nil {
			return nil, fmt.Errorf("service.NetworkService.Load: %w", err)
		}
	}

	routeRecs, err := repos.Routes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.NetworkService.Load: %w", err)
	}
	for _, rec := range routeRecs {
		r, err := domain.RouteFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("service.NetworkService.Load: %w", err)
		}
		if err := network.Routes.Append(r); err != nil {
			return nil, fmt.Errorf("service.NetworkService.Load: %w", err)
		}
	}

	joinRecs, err := repos.RouteWaypoints.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.NetworkService.Load: %w", err)
	}

	// Group join records by route, preserving the repo's (route, sequence)
	// order, then assign each ordered group onto its route in one step.
	grouped := make(map[string][]*domain.RouteWaypoint)
	var routeOrder []string
	for _, rec := range joinRecs {
		waypoint, err := network.Waypoints.Get(rec.WaypointID)
		if err != nil {
			return nil, fmt.Errorf("service.NetworkService.Load: route waypoint references waypoint with ID %q not found in loaded waypoints: %w",
				rec.WaypointID, err)
		}
		rw, err := domain.NewRouteWaypoint(waypoint, rec.Sequence)
		if err != nil {
			return nil, fmt.Errorf("service.NetworkService.Load: %w", err)
		}
		rw.SetDescription(rec.Description)

		if _, seen := grouped[rec.RouteID]; !seen {
			routeOrder = append(routeOrder, rec.RouteID)
		}
		grouped[rec.RouteID] = append(grouped[rec.RouteID], rw)
	}

	for _, routeID := range routeOrder {
		route, err := network.Routes.Get(routeID)
		if err != nil {
			return nil, fmt.Errorf("service.NetworkService.Load: route waypoint references route with ID %q not found in loaded routes: %w",
				routeID, err)
		}
		if err := route.SetWaypoints(grouped[routeID]); err != nil {
			return nil, fmt.Errorf("service.NetworkService.Load: route %q: %w", routeID, err)
		}
	}

	s.log.Info("network loaded", "waypoints", network.Waypoints.Len(), "routes", network.Routes.Len())
	return network, nil
}

// Save persists the whole network, replacing the stored record streams
// wholesale: all waypoints (with geometry), then all join records, then all
// route shells. There is no incremental persistence. The replacement runs
// in a single transaction so a failure part way through leaves the stored
// network as it was.
func (s *NetworkService) Save(ctx context.Context, network *domain.Network) error {
	err := s.store.InTx(ctx, func(repos repo.Repos) error {
		if err := repos.RouteWaypoints.DeleteAll(ctx); err != nil {
			return err
		}
		if err := repos.Routes.DeleteAll(ctx); err != nil {
			return err
		}
		if err := repos.Waypoints.DeleteAll(ctx); err != nil {
			return err
		}

		for _, w := range network.Waypoints.Waypoints() {
			if err := repos.Waypoints.Insert(ctx, w.Record()); err != nil {
				return err
			}
		}
		for _, r := range network.Routes.Routes() {
			for _, rec := range r.WaypointRecords() {
				if err := repos.RouteWaypoints.Insert(ctx, rec); err != nil {
					return err
				}
			}
		}
		for _, r := range network.Routes.Routes() {
			if err := repos.Routes.Insert(ctx, r.Record()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.NetworkService.Save: %w", err)
	}

	s.log.Info("network saved", "waypoints", network.Waypoints.Len(), "routes", network.Routes.Len())
	return nil
}
