// Package vtopo provides a public API for reading VisualTopo cave surveys (.tro).
package vtopo

import (
	"io"

	"github.com/beetlebugorg/vtopo/internal/parser"
)

// Parser parses VisualTopo survey files.
//
// Create a parser with NewParser and use Parse or ParseWithOptions to read surveys.
type Parser interface {
	// Parse reads a .tro file with DefaultParseOptions.
	//
	// Returns an error if the file cannot be opened or is malformed. No partial
	// survey is ever returned alongside an error.
	Parse(filename string) (*Survey, error)

	// ParseWithOptions parses a .tro file with custom options.
	ParseWithOptions(filename string, opts ParseOptions) (*Survey, error)

	// ParseReader parses an already opened stream. The returned survey has no path.
	ParseReader(r io.Reader, opts ParseOptions) (*Survey, error)
}

// NewParser creates a new VisualTopo parser with default settings.
//
// Example:
//
//	parser := vtopo.NewParser()
//	survey, err := parser.Parse("gouffre.tro")
func NewParser() Parser {
	return &parserWrapper{
		internal: parser.NewParser(),
	}
}

// parserWrapper wraps the internal parser and converts types
type parserWrapper struct {
	internal parser.Parser
}

func (p *parserWrapper) Parse(filename string) (*Survey, error) {
	return p.ParseWithOptions(filename, DefaultParseOptions())
}

func (p *parserWrapper) ParseWithOptions(filename string, opts ParseOptions) (*Survey, error) {
	model, err := p.internal.ParseWithOptions(filename, opts.internal())
	if err != nil {
		return nil, err
	}
	return convertSurvey(filename, model), nil
}

func (p *parserWrapper) ParseReader(r io.Reader, opts ParseOptions) (*Survey, error) {
	model, err := p.internal.ParseReader(r, opts.internal())
	if err != nil {
		return nil, err
	}
	return convertSurvey("", model), nil
}
