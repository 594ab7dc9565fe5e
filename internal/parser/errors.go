package parser

import (
	"fmt"
)

// ParseError attaches the 1-based source line to an error raised while
// reading a survey file.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrUnsupportedProjection indicates a projection code outside the known table
type ErrUnsupportedProjection struct {
	Code string
}

func (e *ErrUnsupportedProjection) Error() string {
	return fmt.Sprintf("unsupported projection %q", e.Code)
}

// ErrMalformedNumber indicates a token that should have been a number
type ErrMalformedNumber struct {
	Field string
	Token string
}

func (e *ErrMalformedNumber) Error() string {
	return fmt.Sprintf("malformed number for %s: %q", e.Field, e.Token)
}

// ErrMalformedColor indicates a color literal that is neither "Std" nor r,g,b
type ErrMalformedColor struct {
	Token  string
	Reason string
}

func (e *ErrMalformedColor) Error() string {
	return fmt.Sprintf("malformed color %q: %s", e.Token, e.Reason)
}

// ErrMalformedDataLine indicates a data line without exactly DataLineFields tokens
type ErrMalformedDataLine struct {
	Fields int
}

func (e *ErrMalformedDataLine) Error() string {
	return fmt.Sprintf("malformed data line: expected %d fields, got %d", DataLineFields, e.Fields)
}

// ErrMalformedHeader indicates a header value with the wrong shape
type ErrMalformedHeader struct {
	Key    string
	Reason string
}

func (e *ErrMalformedHeader) Error() string {
	return fmt.Sprintf("malformed %s header: %s", e.Key, e.Reason)
}

// ErrMalformedSetHeader indicates a set header line too short to carry a color
type ErrMalformedSetHeader struct {
	Header string
}

func (e *ErrMalformedSetHeader) Error() string {
	return fmt.Sprintf("malformed set header %q", e.Header)
}

// ErrUnexpectedEndOfStream indicates EOF before a block terminator
type ErrUnexpectedEndOfStream struct {
	Block string
}

func (e *ErrUnexpectedEndOfStream) Error() string {
	return fmt.Sprintf("unexpected end of stream in %s", e.Block)
}

// ErrInvalidCoordinate indicates a geographic entry point out of valid bounds
type ErrInvalidCoordinate struct {
	Lat, Lon float64
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate: lat=%f lon=%f (lat must be ±90, lon must be ±180)",
		e.Lat, e.Lon)
}

// ErrInvalidLeg indicates a parsed leg whose values are outside survey ranges
type ErrInvalidLeg struct {
	Set    int
	Index  int
	From   string
	To     string
	Reason string
}

func (e *ErrInvalidLeg) Error() string {
	return fmt.Sprintf("invalid leg %s->%s (set %d, leg %d): %s", e.From, e.To, e.Set, e.Index, e.Reason)
}
