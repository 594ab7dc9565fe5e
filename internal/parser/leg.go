package parser

import (
	"math"
	"strconv"
)

const (
	// DataLineFields is the fixed token count of a data line.
	DataLineFields = 13

	// Placeholder marks an unknown value: an unsurveyed destination station,
	// or a cross-section dimension that takes DefaultSectionSize.
	Placeholder = "*"

	// DefaultSectionSize replaces a Placeholder cross-section dimension.
	DefaultSectionSize = 2.0
)

// Data line token positions. Positions 9 through 12 are not modeled.
const (
	fieldFrom = iota
	fieldTo
	fieldLength
	fieldAzimuth
	fieldInclination
	fieldLeft
	fieldRight
	fieldUp
	fieldDown
)

// parseLeg builds a Leg from the tokens of one data line.
//
// excluded is true, with a zero Leg and nil error, when the destination is
// the Placeholder and ignoreStars is set. Callers must drop such lines.
func parseLeg(tokens []string, comment string, decimalDegrees, ignoreStars bool) (leg Leg, excluded bool, err error) {
	if len(tokens) != DataLineFields {
		return Leg{}, false, &ErrMalformedDataLine{Fields: len(tokens)}
	}

	leg.From = tokens[fieldFrom]
	leg.To = tokens[fieldTo]
	if leg.To == Placeholder && ignoreStars {
		return Leg{}, true, nil
	}

	if leg.Length, err = parseNumber("length", tokens[fieldLength]); err != nil {
		return Leg{}, false, err
	}
	if leg.Length <= 0 {
		return Leg{}, false, &ErrMalformedNumber{Field: "length", Token: tokens[fieldLength]}
	}

	azimuth, err := parseNumber("azimuth", tokens[fieldAzimuth])
	if err != nil {
		return Leg{}, false, err
	}
	leg.Azimuth = ConvertAngle(azimuth, decimalDegrees)

	inclination, err := parseNumber("inclination", tokens[fieldInclination])
	if err != nil {
		return Leg{}, false, err
	}
	leg.Inclination = ConvertAngle(inclination, decimalDegrees)

	dims := []struct {
		name string
		pos  int
		dst  *float64
	}{
		{"left", fieldLeft, &leg.Section.Left},
		{"right", fieldRight, &leg.Section.Right},
		{"up", fieldUp, &leg.Section.Up},
		{"down", fieldDown, &leg.Section.Down},
	}
	for _, d := range dims {
		if *d.dst, err = parseDimension(d.name, tokens[d.pos]); err != nil {
			return Leg{}, false, err
		}
	}

	leg.Comment = comment
	return leg, false, nil
}

// parseDimension parses a cross-section dimension, substituting
// DefaultSectionSize for the Placeholder.
func parseDimension(field, token string) (float64, error) {
	if token == Placeholder {
		return DefaultSectionSize, nil
	}
	return parseNumber(field, token)
}

// parseNumber parses a finite dot-decimal real regardless of the host locale.
func parseNumber(field, token string) (float64, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ErrMalformedNumber{Field: field, Token: token}
	}
	return v, nil
}
