package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/beetlebugorg/vtopo/pkg/vtopo"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var opts parseOptions
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Parse a survey again every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parse, err := a.parseOptions(cmd, opts)
			if err != nil {
				return err
			}
			return a.runWatch(cmd, args[0], parse)
		},
	}
	fs := cmd.Flags()
	fs.BoolVar(&opts.decimalDegrees, "decimal-degrees", true, "angles are decimal degrees (false: degrees.minutes)")
	fs.BoolVar(&opts.ignoreStars, "ignore-stars", true, "drop legs whose destination is *")
	fs.StringVar(&opts.encoding, "encoding", "", "source charset (IANA name), default from config")
	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, path string, parse vtopo.ParseOptions) error {
	out := cmd.OutOrStdout()
	report := func() {
		s, err := a.loadSurvey(path, parse)
		if err != nil {
			a.log.Error("reload failed", "path", path, "error", err)
			return
		}
		a.log.Info("survey reloaded", "path", path, "sets", s.SetCount(), "legs", s.LegCount())
		fmt.Fprintf(out, "%s  %s: %d sets, %d legs, %.2f total length\n",
			time.Now().Format(time.TimeOnly), s.Name(), s.SetCount(), s.LegCount(), s.TotalLength())
	}

	report()
	debounce := time.Duration(a.cfg.Watch.DebounceMs) * time.Millisecond
	return watchFile(cmd.Context(), path, debounce, report, func(err error) {
		a.log.Warn("watcher error", "path", path, "error", err)
	})
}

// watchFile calls onChange, debounced, whenever path is written, created or
// renamed into place. The parent directory is watched so that editors that
// replace the file are seen. It returns when ctx is done.
func watchFile(ctx context.Context, path string, debounce time.Duration, onChange func(), onError func(error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerC = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(debounce)
		timerC = timer.C
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timerC:
			timerC = nil
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onError(err)
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldTriggerReload(evt, abs) {
				resetTimer()
			}
		}
	}
}

func shouldTriggerReload(evt fsnotify.Event, path string) bool {
	if filepath.Clean(evt.Name) != path {
		return false
	}
	return evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}
