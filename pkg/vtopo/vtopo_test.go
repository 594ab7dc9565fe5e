package vtopo

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// surveyFile renders a minimal UTF-8 survey with one set of n legs.
func surveyFile(name string, a, b float64, projection string, legs int) string {
	src := fmt.Sprintf("Version 5.02\n\nTrou %s,%.3f,%.3f,100,%s\nClub Test\n\n", name, a, b, projection)
	src += "Param Deca Degd Clino Degd Dir,Dir,Dir 10,20,30 Inc Std;Main\n"
	src += "S0 S0 0.00 0.00 0.00 * * * * N I * *\n"
	for i := 0; i < legs; i++ {
		src += fmt.Sprintf("S%d S%d 2.50 90.00 0.00 * * * * N I * *\n", i, i+1)
	}
	return src + "\n"
}

// writeSurvey writes src to dir/name and returns its path.
func writeSurvey(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// utf8Options parses fixtures written as UTF-8.
func utf8Options() ParseOptions {
	opts := DefaultParseOptions()
	opts.Encoding = nil
	return opts
}
