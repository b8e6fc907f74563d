package domain

import (
	"fmt"

	"github.com/twpayne/go-geom"
)

// SRID is the spatial reference for all geometry in the network (EPSG:4326,
// longitude/latitude in decimal degrees).
const SRID = 4326

// NewPoint builds a 2D EPSG:4326 point in longitude/latitude axis order.
func NewPoint(lon, lat float64) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{lon, lat}).SetSRID(SRID)
}

// NewPointZ builds a 3D EPSG:4326 point with an elevation in metres.
func NewPointZ(lon, lat, elevation float64) *geom.Point {
	return geom.NewPointFlat(geom.XYZ, []float64{lon, lat, elevation}).SetSRID(SRID)
}

// validatePoint checks a point is usable as waypoint geometry: 2D or 3D,
// with longitude and latitude inside EPSG:4326 bounds.
func validatePoint(p *geom.Point) error {
	if p == nil {
		return fmt.Errorf("geometry is required: %w", ErrValidation)
	}
	if layout := p.Layout(); layout != geom.XY && layout != geom.XYZ {
		return fmt.Errorf("geometry must be a 2D or 3D point, got layout %v: %w", layout, ErrValidation)
	}
	if lon := p.X(); lon < -180 || lon > 180 {
		return fmt.Errorf("longitude must be between -180 and +180, got %v: %w", lon, ErrValidation)
	}
	if lat := p.Y(); lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and +90, got %v: %w", lat, ErrValidation)
	}
	return nil
}
