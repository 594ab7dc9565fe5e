package vtopo

import "github.com/beetlebugorg/vtopo/internal/parser"

// Error types returned by Parse. Use errors.As to inspect them.
type (
	ParseError               = parser.ParseError
	ErrUnsupportedProjection = parser.ErrUnsupportedProjection
	ErrMalformedNumber       = parser.ErrMalformedNumber
	ErrMalformedColor        = parser.ErrMalformedColor
	ErrMalformedDataLine     = parser.ErrMalformedDataLine
	ErrMalformedHeader       = parser.ErrMalformedHeader
	ErrMalformedSetHeader    = parser.ErrMalformedSetHeader
	ErrUnexpectedEndOfStream = parser.ErrUnexpectedEndOfStream
	ErrInvalidCoordinate     = parser.ErrInvalidCoordinate
	ErrInvalidLeg            = parser.ErrInvalidLeg
)
