package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/domain"
	"github.com/antarctica/bas-air-unit-network-dataset/internal/gpx"
)

// ImportService builds a network from a GPX interchange file and persists
// it through the NetworkService.
type ImportService struct {
	network *NetworkService
	log     *slog.Logger
}

func NewImportService(network *NetworkService, log *slog.Logger) *ImportService {
	if log == nil {
		log = slog.Default()
	}
	return &ImportService{network: network, log: log}
}

// ImportGPX reads a GPX file and replaces the stored network with its
// contents. Waypoints are created from GPX waypoints, with attributes
// unpacked from the structured description field. Routes are created from
// GPX routes, with each route point resolved against the imported waypoints
// by designator; a route point naming an unknown designator is a hard
// error.
func (s *ImportService) ImportGPX(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("service.ImportService.ImportGPX: %w", err)
	}
	defer f.Close()

	doc, err := gpx.Read(f)
	if err != nil {
		return fmt.Errorf("service.ImportService.ImportGPX: %w", err)
	}

	network := domain.NewNetwork()

	for _, wpt := range doc.Waypoints {
		fields, err := gpx.UnpackDescription(wpt.Description)
		if err != nil {
			return fmt.Errorf("service.ImportService.ImportGPX: waypoint %q: %w", wpt.Name, err)
		}

		geometry := domain.NewPoint(wpt.Lon, wpt.Lat)
		if wpt.Elevation != nil {
			geometry = domain.NewPointZ(wpt.Lon, wpt.Lat, *wpt.Elevation)
		}

		w, err := domain.NewWaypoint(wpt.Name, geometry, domain.WaypointFields{
			Name:           fields.Name,
			ColocatedWith:  fields.ColocatedWith,
			LastAccessedAt: fields.LastAccessedAt,
			LastAccessedBy: fields.LastAccessedBy,
			Comment:        fields.Comment,
		})
		if err != nil {
			return fmt.Errorf("service.ImportService.ImportGPX: waypoint %q: %w", wpt.Name, err)
		}
		if err := network.Waypoints.Append(w); err != nil {
			return fmt.Errorf("service.ImportService.ImportGPX: waypoint %q: %w", wpt.Name, err)
		}
	}

	for _, rte := range doc.Routes {
		route, err := domain.NewRoute(rte.Name)
		if err != nil {
			return fmt.Errorf("service.ImportService.ImportGPX: route %q: %w", rte.Name, err)
		}

		var rws []*domain.RouteWaypoint
		for i, pt := range rte.Points {
			waypoint, err := network.Waypoints.Lookup(pt.Name)
			if err != nil {
				return fmt.Errorf("service.ImportService.ImportGPX: route %q references waypoint %q not present in imported waypoints: %w",
					rte.Name, pt.Name, err)
			}
			rw, err := domain.NewRouteWaypoint(waypoint, i+1)
			if err != nil {
				return fmt.Errorf("service.ImportService.ImportGPX: route %q: %w", rte.Name, err)
			}
			rw.SetDescription(pt.Comment)
			rws = append(rws, rw)
		}
		if err := route.SetWaypoints(rws); err != nil {
			return fmt.Errorf("service.ImportService.ImportGPX: route %q: %w", rte.Name, err)
		}
		if err := network.Routes.Append(route); err != nil {
			return fmt.Errorf("service.ImportService.ImportGPX: route %q: %w", rte.Name, err)
		}
	}

	s.log.Info("gpx imported", "path", path, "waypoints", network.Waypoints.Len(), "routes", network.Routes.Len())
	return s.network.Save(ctx, network)
}
