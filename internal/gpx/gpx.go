// Package gpx reads and writes GPX 1.1 documents for the network.
//
// GPX is the interchange format field teams supply data in and the least
// strict output format. The element model maps directly onto struct tags;
// attributes the GPX standard has no field for are packed into the free
// text description (see description.go).
package gpx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Namespace is the GPX 1.1 XML namespace.
const Namespace = "http://www.topografix.com/GPX/1/1"

// Creator identifies this tool in generated documents.
const Creator = "BAS Air Unit Network Dataset"

// utf8BOM is tolerated on input; files exported for Windows tooling often
// carry it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is the root gpx element.
type Document struct {
	XMLName   xml.Name   `xml:"gpx"`
	Namespace string     `xml:"xmlns,attr"`
	Version   string     `xml:"version,attr"`
	Creator   string     `xml:"creator,attr"`
	Waypoints []Waypoint `xml:"wpt"`
	Routes    []Route    `xml:"rte"`
}

// Waypoint is a single wpt element.
type Waypoint struct {
	Lat         float64  `xml:"lat,attr"`
	Lon         float64  `xml:"lon,attr"`
	Elevation   *float64 `xml:"ele,omitempty"`
	Name        string   `xml:"name,omitempty"`
	Comment     string   `xml:"cmt,omitempty"`
	Description string   `xml:"desc,omitempty"`
}

// Route is a single rte element.
type Route struct {
	Name   string       `xml:"name,omitempty"`
	Points []RoutePoint `xml:"rtept"`
}

// RoutePoint is a single rtept element within a route.
type RoutePoint struct {
	Lat     float64 `xml:"lat,attr"`
	Lon     float64 `xml:"lon,attr"`
	Name    string  `xml:"name,omitempty"`
	Comment string  `xml:"cmt,omitempty"`
}

// NewDocument creates an empty GPX 1.1 document with this tool's creator
// attribute.
func NewDocument() *Document {
	return &Document{Namespace: Namespace, Version: "1.1", Creator: Creator}
}

// Write renders the document as indented XML with an XML declaration.
func (d *Document) Write(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("gpx.Document.Write: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("gpx.Document.Write: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("gpx.Document.Write: %w", err)
	}
	return nil
}

// Read parses a GPX document, tolerating a UTF-8 byte order mark.
func Read(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gpx.Read: %w", err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	var doc Document
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("gpx.Read: %w", err)
	}
	return &doc, nil
}
