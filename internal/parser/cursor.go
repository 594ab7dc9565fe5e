package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineLength bounds a single source line. VisualTopo lines are short;
// anything longer is not a survey file.
const maxLineLength = 1 << 20

// lineCursor gives forward-only access to the lines of a decoded stream.
type lineCursor struct {
	scanner *bufio.Scanner
	line    int // 1-based number of the last line returned
	err     error
}

func newLineCursor(r io.Reader) *lineCursor {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), maxLineLength)
	return &lineCursor{scanner: s}
}

// readLine returns the next line without its terminator. ok is false at end
// of stream or on a read error; check c.err to tell them apart.
func (c *lineCursor) readLine() (string, bool) {
	if !c.scanner.Scan() {
		c.err = c.scanner.Err()
		return "", false
	}
	c.line++
	text := strings.TrimSuffix(c.scanner.Text(), "\r")
	if c.line == 1 {
		text = strings.TrimPrefix(text, "\ufeff")
	}
	return text, true
}

// readUntil returns the lines preceding the first line for which stop
// reports true. That line is consumed and not returned. ok is false if the
// stream ended before a stop line was seen; lines still holds what was read.
func (c *lineCursor) readUntil(stop func(string) bool) (lines []string, ok bool) {
	for {
		text, more := c.readLine()
		if !more {
			return lines, false
		}
		if stop(text) {
			return lines, true
		}
		lines = append(lines, text)
	}
}

// skip consumes n lines unconditionally. It reports false if the stream
// ended first.
func (c *lineCursor) skip(n int) bool {
	for i := 0; i < n; i++ {
		if _, ok := c.readLine(); !ok {
			return false
		}
	}
	return true
}

// drain consumes the remainder of the stream.
func (c *lineCursor) drain() {
	for {
		if _, ok := c.readLine(); !ok {
			return
		}
	}
}

// isBlank is the header-block terminator: empty or whitespace only.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// isEmpty is the set-block terminator: exactly the empty string.
func isEmpty(s string) bool {
	return s == ""
}

// endOfStream reports why the cursor stopped inside block: the underlying
// read error if there was one, otherwise ErrUnexpectedEndOfStream.
func (c *lineCursor) endOfStream(block string) error {
	if c.err != nil {
		return fmt.Errorf("read line %d: %w", c.line+1, c.err)
	}
	return &ParseError{Line: c.line, Err: &ErrUnexpectedEndOfStream{Block: block}}
}
