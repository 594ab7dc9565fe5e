package cli

import (
	"fmt"

	"github.com/beetlebugorg/vtopo/internal/config"
	"github.com/beetlebugorg/vtopo/pkg/vtopo"
	"github.com/goforj/godump"
	"github.com/spf13/cobra"
)

type parseOptions struct {
	decimalDegrees bool
	ignoreStars    bool
	encoding       string

	dump     bool
	geojson  bool
	validate bool
}

func newParseCmd(a *app) *cobra.Command {
	var opts parseOptions
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a survey and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parse, err := a.parseOptions(cmd, opts)
			if err != nil {
				return err
			}
			return a.runParse(cmd, args[0], parse, opts)
		},
	}
	fs := cmd.Flags()
	fs.BoolVar(&opts.decimalDegrees, "decimal-degrees", true, "angles are decimal degrees (false: degrees.minutes)")
	fs.BoolVar(&opts.ignoreStars, "ignore-stars", true, "drop legs whose destination is *")
	fs.StringVar(&opts.encoding, "encoding", "", "source charset (IANA name), default from config")
	fs.BoolVar(&opts.dump, "dump", false, "dump the full survey structure")
	fs.BoolVar(&opts.geojson, "geojson", false, "print the entry point as a GeoJSON feature")
	fs.BoolVar(&opts.validate, "validate", false, "report out-of-range values and fail if any")
	return cmd
}

// parseOptions merges the config parse section with flags given explicitly.
func (a *app) parseOptions(cmd *cobra.Command, opts parseOptions) (vtopo.ParseOptions, error) {
	parse, err := a.cfg.ParseOptions()
	if err != nil {
		return vtopo.ParseOptions{}, err
	}
	fs := cmd.Flags()
	if fs.Changed("decimal-degrees") {
		parse.DecimalDegrees = opts.decimalDegrees
	}
	if fs.Changed("ignore-stars") {
		parse.IgnoreStars = opts.ignoreStars
	}
	if fs.Changed("encoding") {
		enc, err := config.ResolveEncoding(opts.encoding)
		if err != nil {
			return vtopo.ParseOptions{}, err
		}
		parse.Encoding = enc
	}
	return parse, nil
}

func (a *app) runParse(cmd *cobra.Command, path string, parse vtopo.ParseOptions, opts parseOptions) error {
	s, err := a.loadSurvey(path, parse)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	a.log.Info("parsed survey", "path", path, "sets", s.SetCount(), "legs", s.LegCount())

	out := cmd.OutOrStdout()
	switch {
	case opts.geojson:
		data, err := s.EntryGeoJSON()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, string(data)); err != nil {
			return err
		}
	case opts.dump:
		godump.Fdump(out, dumpView(s))
	default:
		if err := newPrinter(out).survey(s); err != nil {
			return err
		}
	}

	if !opts.validate {
		return nil
	}
	errs := s.Validate()
	for _, e := range errs {
		a.log.Warn("validation", "path", path, "error", e)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %d validation errors", path, len(errs))
	}
	return nil
}

// surveyDump is the exported view of a survey printed by --dump.
type surveyDump struct {
	Path           string
	Name           string
	Author         string
	Entrance       string
	Toporobot      bool
	ProjectionCode string
	SRID           int
	EntryPoint     vtopo.EntryPoint
	Sets           []vtopo.Set
}

func dumpView(s *vtopo.Survey) surveyDump {
	return surveyDump{
		Path:           s.Path(),
		Name:           s.Name(),
		Author:         s.Author(),
		Entrance:       s.Entrance(),
		Toporobot:      s.Toporobot(),
		ProjectionCode: s.ProjectionCode(),
		SRID:           s.SRID(),
		EntryPoint:     s.EntryPoint(),
		Sets:           s.Sets(),
	}
}
