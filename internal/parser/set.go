package parser

import (
	"strings"
)

// configurationPrefix opens the settings section VisualTopo appends after
// the survey data. Nothing after it is survey data.
const configurationPrefix = "[Configuration "

// setHeaderSkipLines is the number of lines between a set header and its
// first data line. VisualTopo writes the set's starting station there.
const setHeaderSkipLines = 1

// parseSet parses the set block at the cursor and appends it to m.
//
// done is true when the configuration section was reached (the rest of the
// stream has been drained and m is unchanged) or when only blank lines were
// left. The set is appended only once its terminating empty line is read.
func parseSet(m *Model, c *lineCursor, opts ParseOptions) (done bool, err error) {
	header, ok := c.readLine()
	for ok && isBlank(header) {
		header, ok = c.readLine()
	}
	if !ok {
		if c.err != nil {
			return true, c.endOfStream("set header")
		}
		return true, nil
	}
	headerLine := c.line

	if strings.HasPrefix(header, configurationPrefix) {
		c.drain()
		if c.err != nil {
			return true, c.endOfStream("configuration")
		}
		return true, nil
	}

	set, err := parseSetHeader(header)
	if err != nil {
		return false, &ParseError{Line: headerLine, Err: err}
	}

	if !c.skip(setHeaderSkipLines) {
		return false, c.endOfStream("set")
	}

	for {
		text, ok := c.readLine()
		if !ok {
			return false, c.endOfStream("set")
		}
		if isEmpty(text) {
			break
		}

		payload, comment, _ := strings.Cut(text, ";")
		leg, excluded, err := parseLeg(strings.Fields(payload), strings.TrimSpace(comment),
			opts.DecimalDegrees, opts.IgnoreStars)
		if err != nil {
			return false, &ParseError{Line: c.line, Err: err}
		}
		if excluded {
			continue
		}
		set.Legs = append(set.Legs, leg)
	}

	m.Sets = append(m.Sets, set)
	return false, nil
}

// parseSetHeader reads the color and name from a set header line:
//
//	<tok1> ... <color> <tokN-1> <tokN>[;<name>]
func parseSetHeader(header string) (Set, error) {
	var segments []string
	for _, seg := range strings.Split(header, ";") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return Set{}, &ErrMalformedSetHeader{Header: header}
	}

	slots := strings.Fields(segments[0])
	if len(slots) < 3 {
		return Set{}, &ErrMalformedSetHeader{Header: header}
	}

	color, err := ParseColor(slots[len(slots)-3])
	if err != nil {
		return Set{}, err
	}

	set := Set{Color: color}
	if len(segments) > 1 {
		set.Name = strings.TrimSpace(segments[1])
	}
	return set, nil
}
