package parser

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Parser parses VisualTopo survey files (.tro).
//
// A .tro file is line oriented: a version line, a header block describing
// the cave entrance and its projection, then one block per measurement set.
// VisualTopo may append a "[Configuration ...]" settings section after the
// last set; parsing stops there.
type Parser interface {
	// Parse reads a survey file with default options
	// Returns error if file cannot be read or parsed
	Parse(filename string) (*Model, error)

	// ParseWithOptions parses with custom options
	ParseWithOptions(filename string, opts ParseOptions) (*Model, error)

	// ParseReader parses an already opened stream with custom options.
	// The caller keeps ownership of r.
	ParseReader(r io.Reader, opts ParseOptions) (*Model, error)
}

// ParseOptions configures parsing behavior
type ParseOptions struct {
	// Encoding decodes the source bytes. VisualTopo writes Windows-1252.
	// nil reads the file as UTF-8.
	Encoding encoding.Encoding

	// DecimalDegrees: if true, azimuth and inclination are already decimal
	// degrees. If false they are sexagesimal-packed (see ConvertAngle).
	// Default: true
	DecimalDegrees bool

	// IgnoreStars: if true, legs whose destination station is "*" are
	// dropped from the model.
	// Default: true
	IgnoreStars bool
}

// DefaultParseOptions returns parse options with defaults
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Encoding:       charmap.Windows1252,
		DecimalDegrees: true,
		IgnoreStars:    true,
	}
}

// defaultParser implements the Parser interface
type defaultParser struct {
}

// NewParser creates a new VisualTopo parser
func NewParser() Parser {
	return &defaultParser{}
}

// Parse reads a survey file with default options
func (p *defaultParser) Parse(filename string) (*Model, error) {
	return p.ParseWithOptions(filename, DefaultParseOptions())
}

// ParseWithOptions parses with custom options
func (p *defaultParser) ParseWithOptions(filename string, opts ParseOptions) (*Model, error) {
	return ParseFile(filename, opts)
}

// ParseReader parses r with custom options
func (p *defaultParser) ParseReader(r io.Reader, opts ParseOptions) (*Model, error) {
	return Parse(r, opts)
}

// ParseFile opens filename, parses it and closes it on every path.
func ParseFile(filename string, opts ParseOptions) (*Model, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Parse(f, opts)
}

// Parse reads a complete survey from r.
//
// The header block is parsed once, then set blocks are parsed until the end
// of the stream or the configuration section. Any error aborts the parse and
// no model is returned.
func Parse(r io.Reader, opts ParseOptions) (*Model, error) {
	if opts.Encoding != nil {
		r = opts.Encoding.NewDecoder().Reader(r)
	}
	c := newLineCursor(r)

	m := newModel()
	if err := parseHeader(m, c); err != nil {
		return nil, err
	}

	for {
		done, err := parseSet(m, c, opts)
		if err != nil {
			return nil, err
		}
		if done {
			return m, nil
		}
	}
}
