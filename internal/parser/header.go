package parser

import (
	"strings"
)

// Projection codes understood in the Trou header and their EPSG codes.
const (
	ProjectionUTM31 = "UTM31" // WGS 84 / UTM zone 31N
	ProjectionLT3   = "LT3"   // NTF (Paris) / Lambert zone III
	ProjectionWGS84 = "WGS84" // Geographic WGS 84

	SRIDUTM31 = 32631
	SRIDLT3   = 27573
	SRIDWGS84 = 4326
)

// projections is the closed projection table. There is no fallback entry.
var projections = map[string]int{
	ProjectionUTM31: SRIDUTM31,
	ProjectionLT3:   SRIDLT3,
	ProjectionWGS84: SRIDWGS84,
}

// ResolveProjection returns the EPSG code for a VisualTopo projection code.
func ResolveProjection(code string) (int, error) {
	srid, ok := projections[code]
	if !ok {
		return 0, &ErrUnsupportedProjection{Code: code}
	}
	return srid, nil
}

// CoordinateScale returns the factor applied to entry coordinates.
// Projected coordinates are written in kilometers; WGS84 is in degrees.
func CoordinateScale(code string) float64 {
	if code == ProjectionWGS84 {
		return 1
	}
	return 1000
}

// entryFields is the field count of the Trou header value.
const entryFields = 5

// parseEntry parses the Trou header value
// "name,coordA,coordB,elevation,projectionCode" into m.
//
// The positional contract is X=coordB, Y=coordA, Elevation=elevation.
func parseEntry(m *Model, value string) error {
	data := strings.Split(value, ",")
	for i := range data {
		data[i] = strings.TrimSpace(data[i])
	}
	if len(data) != entryFields {
		return &ErrMalformedHeader{
			Key:    keyTrou,
			Reason: "expected 5 comma-separated fields",
		}
	}

	code := data[4]
	srid, err := ResolveProjection(code)
	if err != nil {
		return err
	}
	factor := CoordinateScale(code)

	a, err := parseNumber("entry coordinate A", data[1])
	if err != nil {
		return err
	}
	b, err := parseNumber("entry coordinate B", data[2])
	if err != nil {
		return err
	}
	z, err := parseNumber("entry elevation", data[3])
	if err != nil {
		return err
	}

	m.Name = data[0]
	m.ProjectionCode = code
	m.SRID = srid
	m.EntryPoint = EntryPoint{
		X:         b * factor,
		Y:         a * factor,
		Elevation: z,
	}
	return nil
}

// Recognized header keys.
const (
	keyTrou      = "Trou"
	keyClub      = "Club"
	keyEntree    = "Entree"
	keyToporobot = "Toporobot"
	keyCouleur   = "Couleur"
)

// headerSetter applies one header value to the model.
type headerSetter func(m *Model, value string) error

// headerSetters is the closed key dispatch table. Keys missing from the
// table are ignored by parseHeaderLines.
var headerSetters = map[string]headerSetter{
	keyTrou: parseEntry,
	keyClub: func(m *Model, value string) error {
		m.Author = value
		return nil
	},
	keyEntree: func(m *Model, value string) error {
		m.Entrance = value
		return nil
	},
	keyToporobot: func(m *Model, value string) error {
		m.Toporobot = value == "1"
		return nil
	},
	keyCouleur: func(m *Model, value string) error {
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		m.DefaultColor = c
		return nil
	},
}

// headerLine is a split header line and its source position.
type headerLine struct {
	line  int
	key   string
	value string
}

// parseHeader consumes the leading block and the header block.
//
// The leading block (the "Version" line in files written by VisualTopo) runs
// up to the first blank line and is discarded. The header block runs up to
// the next blank line. Both use the whitespace-tolerant blank test.
func parseHeader(m *Model, c *lineCursor) error {
	if _, ok := c.readUntil(isBlank); !ok {
		return c.endOfStream("leading block")
	}

	start := c.line + 1
	lines, ok := c.readUntil(isBlank)
	if !ok {
		return c.endOfStream("header block")
	}

	var header []headerLine
	for i, text := range lines {
		key, value, _ := strings.Cut(strings.TrimSpace(text), " ")
		header = append(header, headerLine{line: start + i, key: key, value: strings.TrimSpace(value)})
	}
	return parseHeaderLines(m, header)
}

// parseHeaderLines applies header lines in order; a repeated key overrides
// the earlier value.
func parseHeaderLines(m *Model, header []headerLine) error {
	for _, h := range header {
		set, ok := headerSetters[h.key]
		if !ok {
			continue
		}
		if err := set(m, h.value); err != nil {
			return &ParseError{Line: h.line, Err: err}
		}
	}
	return nil
}
