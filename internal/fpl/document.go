package fpl

import (
	"fmt"
	"math"
	"strconv"

	"github.com/beevik/etree"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/domain"
)

// XML namespaces and schema location for the Garmin FPL standard.
const (
	Namespace      = "http://www8.garmin.com/xmlschemas/FlightPlan/v1"
	NamespaceXSI   = "http://www.w3.org/2001/XMLSchema-instance"
	SchemaLocation = "http://www8.garmin.com/xmlschemas/FlightPlanv1.xsd"
)

// Document is a Garmin flight plan. A document can hold two shapes that
// share one encoder:
//
//   - a waypoint index: a waypoint-table acting as a lookup file for routes
//     defined elsewhere
//   - a route: a single route whose points reference waypoints by identifier
//
// Both shapes may appear in one document, though operationally only one is
// ever populated. There is no formal link between the two kinds of file;
// a device loads them all together, which is why waypoint identifiers and
// flight-plan indexes must be unique device-wide.
type Document struct {
	waypoints []*Waypoint
	route     *Route
}

// NewDocument creates an empty flight plan.
func NewDocument() *Document {
	return &Document{}
}

// Waypoints returns the waypoint-table entries.
func (d *Document) Waypoints() []*Waypoint { return d.waypoints }

// SetWaypoints replaces the waypoint-table entries.
func (d *Document) SetWaypoints(waypoints []*Waypoint) { d.waypoints = waypoints }

// AppendWaypoint adds an entry to the waypoint table.
func (d *Document) AppendWaypoint(w *Waypoint) { d.waypoints = append(d.waypoints, w) }

// Route returns the document's route, or nil.
func (d *Document) Route() *Route { return d.route }

// SetRoute sets the document's route. FPL supports at most one route per
// document.
func (d *Document) SetRoute(r *Route) { d.route = r }

// Encode renders the flight plan as a pretty-printed UTF-8 XML document
// with an XML declaration.
//
// Format capacities are checked here rather than during assembly: a route
// index outside 0-98 or more than 3000 route points is an encode-time
// error. A waypoint table with fewer than two entries is omitted entirely —
// a single-waypoint lookup file has no operational value and devices have
// been seen to reject them.
func (d *Document) Encode() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("flight-plan")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("xmlns:xsi", NamespaceXSI)
	root.CreateAttr("xsi:schemaLocation", Namespace+" "+SchemaLocation)

	if len(d.waypoints) > 1 {
		table := root.CreateElement("waypoint-table")
		for _, w := range d.waypoints {
			encodeWaypoint(table, w)
		}
	}

	if d.route != nil {
		if err := encodeRoute(root, d.route); err != nil {
			return nil, err
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("fpl.Document.Encode: %w", err)
	}
	return out, nil
}

func encodeWaypoint(parent *etree.Element, w *Waypoint) {
	el := parent.CreateElement("waypoint")
	el.CreateElement("identifier").SetText(w.Identifier())
	el.CreateElement("type").SetText(w.Type())
	el.CreateElement("country-code").SetText(w.CountryCode())
	el.CreateElement("lat").SetText(formatCoordinate(w.Lat()))
	el.CreateElement("lon").SetText(formatCoordinate(w.Lon()))
	el.CreateElement("comment").SetText(w.Comment())
}

func encodeRoute(parent *etree.Element, r *Route) error {
	if r.Index() < 0 || r.Index() > RouteIndexMax {
		return fmt.Errorf("fpl: flight-plan index must be between 0 and %d, got %d: %w",
			RouteIndexMax, r.Index(), domain.ErrCapacity)
	}
	if len(r.Points()) > RoutePointsMax {
		return fmt.Errorf("fpl: routes must have %d points or less, got %d: %w",
			RoutePointsMax, len(r.Points()), domain.ErrCapacity)
	}

	el := parent.CreateElement("route")
	el.CreateElement("route-name").SetText(r.Name())
	el.CreateElement("flight-plan-index").SetText(strconv.Itoa(r.Index()))

	for _, rp := range r.Points() {
		point := el.CreateElement("route-point")
		point.CreateElement("waypoint-identifier").SetText(rp.WaypointIdentifier())
		point.CreateElement("waypoint-type").SetText(rp.WaypointType())
		point.CreateElement("waypoint-country-code").SetText(rp.WaypointCountryCode())
	}
	return nil
}

// formatCoordinate rounds a coordinate to 7 decimal places and renders it
// in the shortest form that round-trips, matching what devices expect.
func formatCoordinate(v float64) string {
	rounded := math.Round(v*1e7) / 1e7
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
