package parser

import (
	"image/color"
	"strconv"
	"strings"
)

// StandardColor is the literal VisualTopo writes for the default color.
const StandardColor = "Std"

// White is the color StandardColor stands for.
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// ParseColor parses a VisualTopo color literal: either StandardColor or
// three comma-separated byte values "r,g,b". The result is always opaque.
func ParseColor(token string) (color.RGBA, error) {
	if token == StandardColor {
		return White, nil
	}

	parts := strings.Split(token, ",")
	if len(parts) != 3 {
		return color.RGBA{}, &ErrMalformedColor{
			Token:  token,
			Reason: "expected 3 components, got " + strconv.Itoa(len(parts)),
		}
	}

	var rgb [3]uint8
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return color.RGBA{}, &ErrMalformedColor{
				Token:  token,
				Reason: "component " + strconv.Itoa(i+1) + " is not a byte: " + strconv.Quote(part),
			}
		}
		rgb[i] = uint8(v)
	}

	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}
