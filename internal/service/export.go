package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/csvx"
	"github.com/antarctica/bas-air-unit-network-dataset/internal/domain"
	"github.com/antarctica/bas-air-unit-network-dataset/internal/fpl"
	"github.com/antarctica/bas-air-unit-network-dataset/internal/gpx"
)

// Output file names are prefixed so the waypoint-wide products sort ahead
// of per-route products in a directory listing. The date stamp is always
// UTC so products generated either side of local midnight agree.
const (
	filePrefix    = "00"
	fileDateStamp = "2006_01_02"
)

// Subdirectory per output format under the export base path.
const (
	csvSubdir = "CSV"
	gpxSubdir = "GPX"
	fplSubdir = "FPL"
)

// ExportService renders a network into the supported output formats. Each
// format writes into its own subdirectory under the base path. Flight plan
// output is checked against the manufacturer schema before anything is
// written, using the injected validator.
type ExportService struct {
	validator fpl.SchemaValidator
	log       *slog.Logger

	// Now supplies the time used for dated file names. Overridable so tests
	// produce stable names; nil means time.Now.
	Now func() time.Time
}

func NewExportService(validator fpl.SchemaValidator, log *slog.Logger) *ExportService {
	if log == nil {
		log = slog.Default()
	}
	return &ExportService{validator: validator, log: log}
}

func (s *ExportService) dateStamp() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Format(fileDateStamp)
}

// ExportAll writes every supported format for the network under basePath.
func (s *ExportService) ExportAll(ctx context.Context, network *domain.Network, basePath string) error {
	if err := s.ExportCSV(network, basePath); err != nil {
		return err
	}
	if err := s.ExportGPX(network, basePath); err != nil {
		return err
	}
	return s.ExportFPL(ctx, network, basePath)
}

// ExportCSV writes the waypoint listing twice, once with degrees decimal
// minutes coordinates and once with decimal degrees, plus one listing per
// route, into the CSV subdirectory.
func (s *ExportService) ExportCSV(network *domain.Network, basePath string) error {
	dir := filepath.Join(basePath, csvSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("service.ExportService.ExportCSV: %w", err)
	}
	stamp := s.dateStamp()

	path := filepath.Join(dir, fmt.Sprintf("%s_WAYPOINTS_%s.csv", filePrefix, stamp))
	if err := s.writeWaypointsCSV(path, network, true); err != nil {
		return err
	}
	path = filepath.Join(dir, fmt.Sprintf("%s_WAYPOINTS_%s_DD.csv", filePrefix, stamp))
	if err := s.writeWaypointsCSV(path, network, false); err != nil {
		return err
	}

	for _, route := range network.Routes.Routes() {
		path = filepath.Join(dir, fmt.Sprintf("%s.csv", strings.ToUpper(route.Name())))
		if err := s.writeRouteCSV(path, route); err != nil {
			return err
		}
	}

	s.log.Info("csv exported", "dir", dir, "routes", network.Routes.Len())
	return nil
}

func (s *ExportService) writeWaypointsCSV(path string, network *domain.Network, ddm bool) error {
	header := []string{"identifier", "name", "colocated_with", "latitude_dd", "longitude_dd", "last_accessed_at", "last_accessed_by", "comment"}
	if ddm {
		header[3], header[4] = "latitude_ddm", "longitude_ddm"
	}

	var rows [][]string
	for _, w := range network.Waypoints.Waypoints() {
		lat := strconv.FormatFloat(w.Lat(), 'f', -1, 64)
		lon := strconv.FormatFloat(w.Lon(), 'f', -1, 64)
		if ddm {
			coords := domain.ConvertDDToDDM(w.Lon(), w.Lat())
			lat, lon = coords.Lat, coords.Lon
		}

		lastAccessedAt := ""
		if at := w.LastAccessedAt(); at != nil {
			lastAccessedAt = at.Format("2006-01-02")
		}

		rows = append(rows, []string{
			w.Identifier(),
			csvx.OrEmpty(w.Name()),
			csvx.OrEmpty(w.ColocatedWith()),
			lat,
			lon,
			csvx.OrEmpty(lastAccessedAt),
			csvx.OrEmpty(w.LastAccessedBy()),
			csvx.OrEmpty(w.Comment()),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("service.ExportService.ExportCSV: %w", err)
	}
	defer f.Close()

	if err := csvx.WriteTable(f, header, rows); err != nil {
		return fmt.Errorf("service.ExportService.ExportCSV: %w", err)
	}
	return f.Close()
}

func (s *ExportService) writeRouteCSV(path string, route *domain.Route) error {
	header := []string{"sequence", "identifier", "name", "colocated_with", "latitude_dd", "longitude_dd", "latitude_ddm", "longitude_ddm", "description"}

	var rows [][]string
	for _, rw := range route.Waypoints() {
		w := rw.Waypoint()
		coords := domain.ConvertDDToDDM(w.Lon(), w.Lat())
		rows = append(rows, []string{
			strconv.Itoa(rw.Sequence()),
			w.Identifier(),
			csvx.OrEmpty(w.Name()),
			csvx.OrEmpty(w.ColocatedWith()),
			strconv.FormatFloat(w.Lat(), 'f', -1, 64),
			strconv.FormatFloat(w.Lon(), 'f', -1, 64),
			coords.Lat,
			coords.Lon,
			csvx.OrEmpty(rw.Description()),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("service.ExportService.ExportCSV: %w", err)
	}
	defer f.Close()

	if err := csvx.WriteTable(f, header, rows); err != nil {
		return fmt.Errorf("service.ExportService.ExportCSV: %w", err)
	}
	return f.Close()
}

// ExportGPX writes the whole network, waypoints and routes together, as a
// single GPX file in the GPX subdirectory.
func (s *ExportService) ExportGPX(network *domain.Network, basePath string) error {
	dir := filepath.Join(basePath, gpxSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("service.ExportService.ExportGPX: %w", err)
	}

	doc := gpx.NewDocument()
	for _, w := range network.Waypoints.Waypoints() {
		wpt := gpx.Waypoint{
			Lat:  w.Lat(),
			Lon:  w.Lon(),
			Name: w.Identifier(),
			Description: gpx.PackDescription(gpx.DescriptionFields{
				Name:           w.Name(),
				ColocatedWith:  w.ColocatedWith(),
				LastAccessedAt: w.LastAccessedAt(),
				LastAccessedBy: w.LastAccessedBy(),
				Comment:        w.Comment(),
			}),
		}
		if ele, ok := w.Elevation(); ok {
			wpt.Elevation = &ele
		}
		doc.Waypoints = append(doc.Waypoints, wpt)
	}
	for _, route := range network.Routes.Routes() {
		rte := gpx.Route{Name: route.Name()}
		for _, rw := range route.Waypoints() {
			w := rw.Waypoint()
			rte.Points = append(rte.Points, gpx.RoutePoint{
				Lat:     w.Lat(),
				Lon:     w.Lon(),
				Name:    w.Identifier(),
				Comment: rw.Description(),
			})
		}
		doc.Routes = append(doc.Routes, rte)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_NETWORK_%s.gpx", filePrefix, s.dateStamp()))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("service.ExportService.ExportGPX: %w", err)
	}
	defer f.Close()

	if err := doc.Write(f); err != nil {
		return fmt.Errorf("service.ExportService.ExportGPX: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("service.ExportService.ExportGPX: %w", err)
	}

	s.log.Info("gpx exported", "path", path)
	return nil
}

// ExportFPL writes one flight plan holding the full waypoint index, then
// one flight plan per route, into the FPL subdirectory. Flight plan
// indexes are assigned from each route's position in the network, starting
// at 1. Every document is schema-validated before it is written; a
// document the receiver would reject is never produced.
func (s *ExportService) ExportFPL(ctx context.Context, network *domain.Network, basePath string) error {
	dir := filepath.Join(basePath, fplSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("service.ExportService.ExportFPL: %w", err)
	}

	doc := fpl.NewDocument()
	for _, w := range network.Waypoints.Waypoints() {
		fw, err := fpl.NewWaypoint(w)
		if err != nil {
			return fmt.Errorf("service.ExportService.ExportFPL: waypoint %q: %w", w.Identifier(), err)
		}
		doc.AppendWaypoint(fw)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_WAYPOINTS_%s.fpl", filePrefix, s.dateStamp()))
	if err := s.writeFPL(ctx, path, doc); err != nil {
		return err
	}

	for i, route := range network.Routes.Routes() {
		fr, err := fpl.NewRoute(route, i+1)
		if err != nil {
			return fmt.Errorf("service.ExportService.ExportFPL: route %q: %w", route.Name(), err)
		}
		routeDoc := fpl.NewDocument()
		routeDoc.SetRoute(fr)

		path := filepath.Join(dir, fmt.Sprintf("%s.fpl", strings.ToUpper(route.Name())))
		if err := s.writeFPL(ctx, path, routeDoc); err != nil {
			return err
		}
	}

	s.log.Info("fpl exported", "dir", dir, "routes", network.Routes.Len())
	return nil
}

func (s *ExportService) writeFPL(ctx context.Context, path string, doc *fpl.Document) error {
	encoded, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("service.ExportService.ExportFPL: %w", err)
	}
	if s.validator != nil {
		if err := s.validator.Validate(ctx, encoded); err != nil {
			return fmt.Errorf("service.ExportService.ExportFPL: %s: %w", filepath.Base(path), err)
		}
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("service.ExportService.ExportFPL: %w", err)
	}
	return nil
}
