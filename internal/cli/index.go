package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/beetlebugorg/vtopo/pkg/vtopo"
	"github.com/spf13/cobra"
)

type indexOptions struct {
	bbox string
	srid int
}

func newIndexCmd(a *app) *cobra.Command {
	var opts indexOptions
	cmd := &cobra.Command{
		Use:   "index DIR",
		Short: "Index every survey below DIR and list those in a bounding box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runIndex(cmd, args[0], opts)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&opts.bbox, "bbox", "", "minX,minY,maxX,maxY in SRID units (default: everything)")
	fs.IntVar(&opts.srid, "srid", 0, "restrict to one EPSG code")
	return cmd
}

func (a *app) runIndex(cmd *cobra.Command, root string, opts indexOptions) error {
	load, err := a.cfg.LoadOptions()
	if err != nil {
		return err
	}
	load.Logger = a.log.Logger

	idx, errs, err := vtopo.BuildIndexFromDir(cmd.Context(), root, a.parser, load)
	if err != nil {
		return err
	}
	a.log.Info("indexed surveys", "root", root, "surveys", idx.Count(), "failed", len(errs))

	var entries []vtopo.SurveyEntry
	if opts.bbox == "" {
		for _, e := range idx.All() {
			if opts.srid == 0 || e.SRID == opts.srid {
				entries = append(entries, e)
			}
		}
	} else {
		b, err := vtopo.ParseBounds(opts.bbox)
		if err != nil {
			return err
		}
		entries = idx.Query(b, vtopo.QueryOptions{SRID: opts.srid})
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSRID\tX\tY\tZ\tSETS\tLEGS\tLENGTH\tPATH")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%.1f\t%d\t%d\t%.2f\t%s\n",
			e.Name, e.SRID, e.Entry.X, e.Entry.Y, e.Entry.Elevation, e.Sets, e.Legs, e.TotalLength, e.Path)
	}
	return tw.Flush()
}
