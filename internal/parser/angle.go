package parser

import "math"

// sexagesimalMinutesRange is the span of the packed minutes fraction:
// .00 through .60 stands for 0 through 60 minutes.
const sexagesimalMinutesRange = 0.6

// ConvertAngle normalizes a raw angle to decimal degrees.
//
// When decimalDegrees is true the value is returned unchanged. Otherwise the
// value is sexagesimal-packed: the integer part is whole degrees and the
// fractional part is minutes on a 0-0.6 scale, so 125.30 is 125 degrees 30
// minutes and converts to 125.5.
//
// The fraction is remapped linearly without clamping. A fraction above 0.6
// (e.g. 10.70) extrapolates past the next whole degree (11.1666...).
func ConvertAngle(value float64, decimalDegrees bool) float64 {
	if decimalDegrees {
		return value
	}
	whole, frac := math.Modf(value)
	return whole + remap(math.Abs(frac), 0, sexagesimalMinutesRange, 0, 1)*sign(value)
}

// remap maps v linearly from [fromMin, fromMax] onto [toMin, toMax].
func remap(v, fromMin, fromMax, toMin, toMax float64) float64 {
	return toMin + (v-fromMin)*(toMax-toMin)/(fromMax-fromMin)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
