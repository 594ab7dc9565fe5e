package cli

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/beetlebugorg/vtopo/pkg/vtopo"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
)

// printer writes human readable survey summaries. Swatches are drawn only
// when out is a terminal.
type printer struct {
	out    io.Writer
	styles bool
	label  lipgloss.Style
	r      *lipgloss.Renderer
}

func newPrinter(out io.Writer) *printer {
	r := lipgloss.NewRenderer(out)
	return &printer{
		out:    out,
		styles: isTerminal(out),
		label:  r.NewStyle().Bold(true).Width(12),
		r:      r,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// hexColor renders c as #rrggbb.
func hexColor(c color.RGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

func (p *printer) swatch(c color.RGBA) string {
	hex := hexColor(c)
	if !p.styles {
		return hex
	}
	return p.r.NewStyle().Background(lipgloss.Color(hex)).Render("  ") + " " + hex
}

func (p *printer) field(name, format string, args ...any) {
	key := name + ":"
	if p.styles {
		key = p.label.Render(key)
	} else {
		key = fmt.Sprintf("%-12s", key)
	}
	fmt.Fprintf(p.out, "%s%s\n", key, fmt.Sprintf(format, args...))
}

// survey prints the header, entry point and one line per set.
func (p *printer) survey(s *vtopo.Survey) error {
	entry, err := s.EntryWKT()
	if err != nil {
		return err
	}

	p.field("Name", "%s", s.Name())
	p.field("Author", "%s", s.Author())
	p.field("Entrance", "%s", s.Entrance())
	p.field("Projection", "%s (EPSG:%d)", s.ProjectionCode(), s.SRID())
	p.field("Entry", "%s", entry)
	p.field("Color", "%s", p.swatch(s.DefaultColor()))
	p.field("Sets", "%d (%d legs, %.2f total length)", s.SetCount(), s.LegCount(), s.TotalLength())

	for i, set := range s.Sets() {
		name := set.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(p.out, "  %3d  %s  %-32s %4d legs\n", i+1, p.swatch(set.Color), name, len(set.Legs))
	}
	return nil
}
