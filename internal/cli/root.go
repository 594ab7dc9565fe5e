// Package cli implements the vtopo command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/beetlebugorg/vtopo/internal/config"
	vlog "github.com/beetlebugorg/vtopo/internal/log"
	"github.com/beetlebugorg/vtopo/pkg/vtopo"
	"github.com/spf13/cobra"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	cfgPath  string
	logLevel string

	cfg    *config.Config
	log    *vlog.Logger
	parser vtopo.Parser
	cache  *vtopo.SurveyCache
}

// Execute runs the command line with args and returns the first error.
func Execute(ctx context.Context, args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	a := &app{parser: vtopo.NewParser()}

	cmd := &cobra.Command{
		Use:           "vtopo",
		Short:         "Read VisualTopo cave surveys (.tro)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.log == nil {
				return nil
			}
			return a.log.Close()
		},
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&a.cfgPath, "config", config.DefaultPath, "config yaml path")
	fs.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newParseCmd(a),
		newIndexCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// setup loads the config and builds the logger and cache.
func (a *app) setup(cmd *cobra.Command) error {
	optional := !cmd.Flags().Changed("config")
	cfg, err := config.Load(a.cfgPath, optional)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg

	l, err := vlog.New(vlog.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.log = l

	a.cache, err = vtopo.NewSurveyCache(cfg.Cache.Size)
	return err
}

// loadSurvey parses path through the cache. The key includes size and
// modification time so an edited file is parsed again.
func (a *app) loadSurvey(path string, opts vtopo.ParseOptions) (*vtopo.Survey, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
	return a.cache.Get(key, func() (*vtopo.Survey, error) {
		a.log.Debug("parsing survey", "path", path)
		return a.parser.ParseWithOptions(path, opts)
	})
}

// Main is the process entry point used by cmd/vtopo.
func Main(ctx context.Context) int {
	if err := Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
