package parser

import "image/color"

// Model is a complete VisualTopo survey.
// This is the top-level structure returned by the parser.
//
// A Model is built in a single pass and is not modified after Parse returns.
type Model struct {
	Name         string     // Cave name, first field of the Trou header
	Author       string     // Club header
	Entrance     string     // Entree header (entrance station or description)
	Toporobot    bool       // Toporobot header == "1"
	DefaultColor color.RGBA // Couleur header, opaque white when absent

	EntryPoint     EntryPoint // Scaled entry coordinates, see EntryPoint
	ProjectionCode string     // Raw projection code from the Trou header
	SRID           int        // EPSG code resolved from ProjectionCode

	Sets []Set // Measurement groups in file order
}

// EntryPoint is the surveyed cave entrance.
//
// X and Y come from the third and second Trou fields respectively and are
// multiplied by the projection scale factor (kilometers to meters for
// projected systems, unchanged degrees for WGS84). Elevation is never scaled.
type EntryPoint struct {
	X         float64
	Y         float64
	Elevation float64
}

// Set is one contiguous block of data lines sharing a color and name.
type Set struct {
	Name  string
	Color color.RGBA
	Legs  []Leg // In file order
}

// Leg is a single station-to-station shot.
type Leg struct {
	From        string
	To          string
	Length      float64 // Length units as given in the file
	Azimuth     float64 // Decimal degrees
	Inclination float64 // Decimal degrees
	Section     Section
	Comment     string
}

// Section is the passage cross-section around the origin station.
type Section struct {
	Left  float64
	Right float64
	Up    float64
	Down  float64
}

// newModel returns an empty model with the header defaults applied.
func newModel() *Model {
	return &Model{
		DefaultColor: White,
	}
}

// LegCount returns the number of legs across all sets.
func (m *Model) LegCount() int {
	n := 0
	for _, s := range m.Sets {
		n += len(s.Legs)
	}
	return n
}
