package vtopo

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/beetlebugorg/vtopo/internal/parser"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// Survey model types.
type (
	EntryPoint = parser.EntryPoint
	Set        = parser.Set
	Leg        = parser.Leg
	Section    = parser.Section
)

// Supported projection codes and their EPSG codes.
const (
	ProjectionUTM31 = parser.ProjectionUTM31
	ProjectionLT3   = parser.ProjectionLT3
	ProjectionWGS84 = parser.ProjectionWGS84

	SRIDUTM31 = parser.SRIDUTM31
	SRIDLT3   = parser.SRIDLT3
	SRIDWGS84 = parser.SRIDWGS84
)

// Survey represents a parsed VisualTopo survey.
//
// A survey holds the header metadata (cave name, club, entrance), the entry
// point in its source coordinate system and the measurement sets in file order.
//
// All fields are private; a Survey is immutable once returned by a Parser.
type Survey struct {
	path string
	name string

	author       string
	entrance     string
	toporobot    bool
	defaultColor color.RGBA

	entry          EntryPoint
	projectionCode string
	srid           int

	sets []Set
}

// convertSurvey converts an internal model into a public Survey
func convertSurvey(path string, m *parser.Model) *Survey {
	return &Survey{
		path:           path,
		name:           m.Name,
		author:         m.Author,
		entrance:       m.Entrance,
		toporobot:      m.Toporobot,
		defaultColor:   m.DefaultColor,
		entry:          m.EntryPoint,
		projectionCode: m.ProjectionCode,
		srid:           m.SRID,
		sets:           m.Sets,
	}
}

// Path returns the file the survey was read from, or "" for streams.
func (s *Survey) Path() string { return s.path }

// Name returns the cave name from the Trou header.
func (s *Survey) Name() string { return s.name }

// Author returns the Club header.
func (s *Survey) Author() string { return s.author }

// Entrance returns the Entree header.
func (s *Survey) Entrance() string { return s.entrance }

// Toporobot reports whether the survey was exported from Toporobot.
func (s *Survey) Toporobot() bool { return s.toporobot }

// DefaultColor returns the Couleur header, opaque white when absent.
func (s *Survey) DefaultColor() color.RGBA { return s.defaultColor }

// EntryPoint returns the entry point in the survey's coordinate system.
// Projected coordinates are in meters; WGS84 is in degrees (X=lon, Y=lat).
func (s *Survey) EntryPoint() EntryPoint { return s.entry }

// ProjectionCode returns the raw projection code, e.g. "LT3".
func (s *Survey) ProjectionCode() string { return s.projectionCode }

// SRID returns the EPSG code of the entry point.
func (s *Survey) SRID() int { return s.srid }

// Sets returns the measurement sets in file order.
//
// The returned slice should not be modified.
func (s *Survey) Sets() []Set { return s.sets }

// SetCount returns the number of sets.
func (s *Survey) SetCount() int { return len(s.sets) }

// LegCount returns the number of legs across all sets.
func (s *Survey) LegCount() int {
	n := 0
	for _, set := range s.sets {
		n += len(set.Legs)
	}
	return n
}

// TotalLength returns the sum of all leg lengths, in file units.
func (s *Survey) TotalLength() float64 {
	total := 0.0
	for _, set := range s.sets {
		for _, leg := range set.Legs {
			total += leg.Length
		}
	}
	return total
}

// EntryGeometry returns the entry point as a 3D point tagged with the survey SRID.
func (s *Survey) EntryGeometry() *geom.Point {
	return geom.NewPointFlat(geom.XYZ, []float64{s.entry.X, s.entry.Y, s.entry.Elevation}).
		SetSRID(s.srid)
}

// EntryWKT returns the entry point as well-known text, e.g. "POINT Z (1 2 3)".
func (s *Survey) EntryWKT() (string, error) {
	return wkt.Marshal(s.EntryGeometry())
}

// EntryGeoJSON returns the entry point as a GeoJSON feature carrying the
// survey metadata as properties.
func (s *Survey) EntryGeoJSON() ([]byte, error) {
	g, err := geojson.Encode(s.EntryGeometry())
	if err != nil {
		return nil, fmt.Errorf("encode entry geometry: %w", err)
	}
	feature := struct {
		Type       string            `json:"type"`
		Geometry   *geojson.Geometry `json:"geometry"`
		Properties map[string]any    `json:"properties"`
	}{
		Type:     "Feature",
		Geometry: g,
		Properties: map[string]any{
			"name":     s.name,
			"author":   s.author,
			"entrance": s.entrance,
			"srid":     s.srid,
			"sets":     len(s.sets),
			"legs":     s.LegCount(),
		},
	}
	return json.Marshal(feature)
}

// Validate checks value ranges (entry bounds for WGS84, angle ranges,
// cross-sections) and returns every violation. A survey with violations is
// still well-formed; Parse does not call Validate.
func (s *Survey) Validate() []error {
	return parser.Validate(&parser.Model{
		EntryPoint: s.entry,
		SRID:       s.srid,
		Sets:       s.sets,
	})
}
