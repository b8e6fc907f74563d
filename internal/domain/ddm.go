package domain

import (
	"fmt"
	"math"
)

// DDM is a coordinate pair rendered in degrees decimal minutes notation,
// the format pilots work with, as distinct from decimal degrees. Output
// only; nothing parses these back.
type DDM struct {
	Lon string
	Lat string
}

// ConvertDDToDDM converts a decimal-degree coordinate to degrees decimal
// minutes, e.g. (-50.846167, -69.915167) becomes
// {Lon: "50° 50.770020' W", Lat: "69° 54.910020' S"}. Minutes are rendered
// to 6 decimal places.
func ConvertDDToDDM(lon, lat float64) DDM {
	return DDM{
		Lon: ddmAxis(lon, "E", "W"),
		Lat: ddmAxis(lat, "N", "S"),
	}
}

func ddmAxis(coordinate float64, positiveSymbol, negativeSymbol string) string {
	degrees, fraction := math.Modf(math.Abs(coordinate))
	minutes := fraction * 60.0

	symbol := positiveSymbol
	if coordinate < 0 {
		symbol = negativeSymbol
	}

	return fmt.Sprintf("%d° %.6f' %s", int(degrees), minutes, symbol)
}
