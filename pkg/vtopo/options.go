package vtopo

import (
	"runtime"

	"github.com/beetlebugorg/vtopo/internal/parser"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ParseOptions configures parsing behavior.
type ParseOptions struct {
	// Encoding decodes the file bytes. VisualTopo writes Windows-1252.
	// nil reads the file as UTF-8.
	Encoding encoding.Encoding

	// DecimalDegrees reports whether angles are already decimal degrees.
	// When false, angles are read as degrees.minutes (125.30 = 125°30').
	DecimalDegrees bool

	// IgnoreStars drops legs whose destination station is "*".
	IgnoreStars bool
}

// DefaultParseOptions returns default options.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Encoding:       charmap.Windows1252,
		DecimalDegrees: true,
		IgnoreStars:    true,
	}
}

func (o ParseOptions) internal() parser.ParseOptions {
	return parser.ParseOptions{
		Encoding:       o.Encoding,
		DecimalDegrees: o.DecimalDegrees,
		IgnoreStars:    o.IgnoreStars,
	}
}

// DefaultLoadOptions returns load options with sensible defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Parse:      DefaultParseOptions(),
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
	}
}
