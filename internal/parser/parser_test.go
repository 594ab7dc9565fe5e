package parser

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/charmap"
)

// testSurvey is a two-set survey followed by the configuration section and
// a set that must never be read.
const testSurvey = `Version 5.02

Trou Gouffre de Test,1842.500,682.250,1200,LT3
Entree A0
Club Speleo Club
Toporobot 0
Couleur 0,128,255

Param Deca Degd Clino Degd Dir,Dir,Dir 255,0,0 Inc Std;Galerie principale
A0 A0 0.00 0.00 0.00 * * * * N I * *
A0 A1 10.00 90.00 -5.00 1.00 2.00 3.00 0.50 N I * * ;entrance pitch
A1 A2 5.50 180.00 0.00 * * * * N I * *
A2 * 3.00 45.00 10.00 * * * * N I * *
A2 A3 7.25 270.00 15.00 0.50 0.50 * * N I * *

Param Deca Degd Clino Degd Dir,Dir,Dir Std Inc Std
A3 A3 0.00 0.00 0.00 * * * * N I * *
A3 B1 2.00 10.00 0.00 * * * * N I * *

[Configuration 5.02]
Visualtopo=1
Param Deca Degd Clino Degd Dir,Dir,Dir 0,0,0 Inc Std;Never read
A9 A9 0.00 0.00 0.00 * * * * N I * *
A9 B9 2.00 10.00 0.00 * * * * N I * *

`

func parseString(t *testing.T, src string, opts ParseOptions) (*Model, error) {
	t.Helper()
	return Parse(strings.NewReader(src), opts)
}

func utf8Options(decimalDegrees, ignoreStars bool) ParseOptions {
	return ParseOptions{DecimalDegrees: decimalDegrees, IgnoreStars: ignoreStars}
}

// TestParseSurvey tests a complete file end to end
func TestParseSurvey(t *testing.T) {
	m, err := parseString(t, testSurvey, utf8Options(true, true))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if m.Name != "Gouffre de Test" || m.Author != "Speleo Club" || m.Entrance != "A0" {
		t.Errorf("metadata = %q/%q/%q", m.Name, m.Author, m.Entrance)
	}
	if m.DefaultColor != (color.RGBA{0, 128, 255, 255}) {
		t.Errorf("DefaultColor = %v", m.DefaultColor)
	}
	if m.SRID != SRIDLT3 {
		t.Errorf("SRID = %d, want %d", m.SRID, SRIDLT3)
	}

	if len(m.Sets) != 2 {
		t.Fatalf("got %d sets, want 2", len(m.Sets))
	}

	first := m.Sets[0]
	if first.Name != "Galerie principale" {
		t.Errorf("set 0 name = %q", first.Name)
	}
	if first.Color != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("set 0 color = %v", first.Color)
	}

	want := []Leg{
		{From: "A0", To: "A1", Length: 10, Azimuth: 90, Inclination: -5,
			Section: Section{Left: 1, Right: 2, Up: 3, Down: 0.5}, Comment: "entrance pitch"},
		{From: "A1", To: "A2", Length: 5.5, Azimuth: 180, Inclination: 0,
			Section: Section{Left: 2, Right: 2, Up: 2, Down: 2}},
		{From: "A2", To: "A3", Length: 7.25, Azimuth: 270, Inclination: 15,
			Section: Section{Left: 0.5, Right: 0.5, Up: 2, Down: 2}},
	}
	if diff := cmp.Diff(want, first.Legs); diff != "" {
		t.Errorf("set 0 legs mismatch (-want +got):\n%s", diff)
	}

	second := m.Sets[1]
	if second.Name != "" {
		t.Errorf("set 1 name = %q, want empty", second.Name)
	}
	if second.Color != White {
		t.Errorf("set 1 color = %v, want white", second.Color)
	}
	if len(second.Legs) != 1 || second.Legs[0].To != "B1" {
		t.Errorf("set 1 legs = %+v", second.Legs)
	}
}

// TestParseKeepsPlaceholderLegs tests the exclusion rule at file level
func TestParseKeepsPlaceholderLegs(t *testing.T) {
	m, err := parseString(t, testSurvey, utf8Options(true, false))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	legs := m.Sets[0].Legs
	if len(legs) != 4 {
		t.Fatalf("got %d legs, want 4", len(legs))
	}
	if legs[2].From != "A2" || legs[2].To != "*" {
		t.Errorf("placeholder leg = %+v", legs[2])
	}
	if legs[3].To != "A3" {
		t.Errorf("order not preserved: %+v", legs)
	}
}

// TestParseDeterministic tests that parsing is a pure function of input and options
func TestParseDeterministic(t *testing.T) {
	for _, opts := range []ParseOptions{utf8Options(true, true), utf8Options(false, false)} {
		a, err := parseString(t, testSurvey, opts)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		b, err := parseString(t, testSurvey, opts)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("models differ (-first +second):\n%s", diff)
		}
	}
}

// TestParseConfigurationTruncates tests that nothing after the configuration section is read
func TestParseConfigurationTruncates(t *testing.T) {
	cut := strings.Index(testSurvey, "[Configuration ")
	before, err := parseString(t, testSurvey[:cut], utf8Options(true, true))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	full, err := parseString(t, testSurvey, utf8Options(true, true))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff(before, full); diff != "" {
		t.Errorf("configuration section changed the model (-before +full):\n%s", diff)
	}

	// Garbage after the section is never inspected
	garbage := testSurvey + "this is not a set header\n\x00\x01\n"
	if _, err := parseString(t, garbage, utf8Options(true, true)); err != nil {
		t.Errorf("Parse() read past the configuration section: %v", err)
	}
}

// TestParseConfigurationFirst tests a file with no sets before the configuration section
func TestParseConfigurationFirst(t *testing.T) {
	src := "Version 5.02\n\nTrou A,1,2,3,WGS84\n\n[Configuration 5.02]\nParam x y Std a b;set\n"
	m, err := parseString(t, src, utf8Options(true, true))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(m.Sets) != 0 {
		t.Errorf("got %d sets, want 0", len(m.Sets))
	}
}

// TestParseEntryScenarios tests entry coordinate scaling through a full parse
func TestParseEntryScenarios(t *testing.T) {
	tests := []struct {
		code     string
		want     EntryPoint
		wantSRID int
	}{
		{"WGS84", EntryPoint{X: 200, Y: 700, Elevation: 150}, 4326},
		{"UTM31", EntryPoint{X: 200000, Y: 700000, Elevation: 150}, 32631},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			src := "Version 5.02\n\nTrou A,700.0,200.0,150.0," + tt.code + "\n\n"
			m, err := parseString(t, src, utf8Options(true, true))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if m.EntryPoint != tt.want {
				t.Errorf("EntryPoint = %+v, want %+v", m.EntryPoint, tt.want)
			}
			if m.SRID != tt.wantSRID {
				t.Errorf("SRID = %d, want %d", m.SRID, tt.wantSRID)
			}
		})
	}
}

// TestParseShortDataLine tests that a malformed line aborts the whole parse
func TestParseShortDataLine(t *testing.T) {
	src := strings.Replace(testSurvey, "A1 A2 5.50 180.00 0.00 * * * * N I * *", "A1 A2 5.50 180.00 0.00 * * * *", 1)
	m, err := parseString(t, src, utf8Options(true, true))
	if err == nil {
		t.Fatal("expected error")
	}
	if m != nil {
		t.Errorf("got partial model with %d sets", len(m.Sets))
	}

	var lineErr *ErrMalformedDataLine
	if !errors.As(err, &lineErr) {
		t.Fatalf("error = %T %v, want *ErrMalformedDataLine", err, err)
	}
	if lineErr.Fields != 9 {
		t.Errorf("Fields = %d, want 9", lineErr.Fields)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Line != 12 {
		t.Errorf("error = %v, want line 12", err)
	}
}

// TestParseErrors tests error kinds surfaced by Parse
func TestParseErrors(t *testing.T) {
	const head = "Version 5.02\n\nTrou A,1,2,3,WGS84\n\n"
	tests := []struct {
		name  string
		src   string
		check func(error) bool
	}{
		{"unsupported projection", "V\n\nTrou A,1,2,3,GPS\n\n", func(err error) bool {
			var e *ErrUnsupportedProjection
			return errors.As(err, &e)
		}},
		{"bad set color", head + "Param a b 1,2 c d\nskip\n\n", func(err error) bool {
			var e *ErrMalformedColor
			return errors.As(err, &e)
		}},
		{"short set header", head + "Std a\nskip\n\n", func(err error) bool {
			var e *ErrMalformedSetHeader
			return errors.As(err, &e)
		}},
		{"eof before set terminator", head + "Param a Std b c\nskip\nA B 1 0 0 * * * * N I * *\n", func(err error) bool {
			var e *ErrUnexpectedEndOfStream
			return errors.As(err, &e)
		}},
		{"eof before skip line", head + "Param a Std b c", func(err error) bool {
			var e *ErrUnexpectedEndOfStream
			return errors.As(err, &e)
		}},
		{"whitespace line is data, not terminator", head + "Param a Std b c\nskip\nA B 1 0 0 * * * * N I * *\n \n\n", func(err error) bool {
			var e *ErrMalformedDataLine
			return errors.As(err, &e) && e.Fields == 0
		}},
		{"bad number", head + "Param a Std b c\nskip\nA B 1 0 up * * * * N I * *\n\n", func(err error) bool {
			var e *ErrMalformedNumber
			return errors.As(err, &e) && e.Field == "inclination" && e.Token == "up"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := parseString(t, tt.src, utf8Options(true, true))
			if err == nil {
				t.Fatal("expected error")
			}
			if m != nil {
				t.Error("got model alongside error")
			}
			if !tt.check(err) {
				t.Errorf("unexpected error %T: %v", err, err)
			}
		})
	}
}

// TestParseEmptySetAndTrailingBlanks tests an empty set and blank separators
func TestParseEmptySetAndTrailingBlanks(t *testing.T) {
	src := "Version 5.02\n\nTrou A,1,2,3,WGS84\n\nParam a Std b c;empty\nA0 A0 0 0 0 * * * * N I * *\n\n\n  \n"
	m, err := parseString(t, src, utf8Options(true, true))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(m.Sets) != 1 {
		t.Fatalf("got %d sets, want 1", len(m.Sets))
	}
	if m.Sets[0].Name != "empty" || len(m.Sets[0].Legs) != 0 {
		t.Errorf("set = %+v", m.Sets[0])
	}
}

// TestParseSexagesimal tests angle mode selection through a full parse
func TestParseSexagesimal(t *testing.T) {
	src := "V\n\nTrou A,1,2,3,WGS84\n\nParam a Std b c\nskip\nA B 1 125.30 -10.30 * * * * N I * *\n\n"
	m, err := parseString(t, src, utf8Options(false, true))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	leg := m.Sets[0].Legs[0]
	if leg.Azimuth < 125.49 || leg.Azimuth > 125.51 {
		t.Errorf("Azimuth = %v, want 125.5", leg.Azimuth)
	}
	if leg.Inclination > -10.49 || leg.Inclination < -10.51 {
		t.Errorf("Inclination = %v, want -10.5", leg.Inclination)
	}
}

// TestParseFileWindows1252 tests decoding through the configured encoding
func TestParseFileWindows1252(t *testing.T) {
	src := strings.Replace(testSurvey, "Club Speleo Club", "Club Spéléo Club", 1)
	src = strings.ReplaceAll(src, "\n", "\r\n")
	encoded, err := charmap.Windows1252.NewEncoder().String(src)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "test.tro")
	if err := os.WriteFile(path, []byte(encoded), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if bytes.Contains([]byte(encoded), []byte("é")) {
		t.Fatal("fixture was not re-encoded")
	}

	m, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if m.Author != "Spéléo Club" {
		t.Errorf("Author = %q, want %q", m.Author, "Spéléo Club")
	}
	if len(m.Sets) != 2 || m.LegCount() != 4 {
		t.Errorf("got %d sets / %d legs, want 2 / 4", len(m.Sets), m.LegCount())
	}
}

// TestParseFileMissing tests that open errors are wrapped
func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.tro"), DefaultParseOptions())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

// TestDefaultParseOptions tests the documented defaults
func TestDefaultParseOptions(t *testing.T) {
	opts := DefaultParseOptions()
	if opts.Encoding != charmap.Windows1252 {
		t.Error("default encoding should be Windows-1252")
	}
	if !opts.DecimalDegrees || !opts.IgnoreStars {
		t.Errorf("defaults = %+v", opts)
	}
}
