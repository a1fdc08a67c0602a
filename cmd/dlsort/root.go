package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/backmassage/dlsort/internal/check"
	"github.com/backmassage/dlsort/internal/config"
	"github.com/backmassage/dlsort/internal/display"
	"github.com/backmassage/dlsort/internal/logging"
	"github.com/backmassage/dlsort/internal/naming"
	"github.com/backmassage/dlsort/internal/pipeline"
)

// errFailures is returned when at least one file could not be moved, so
// the process exits non-zero after the summary has been printed.
var errFailures = errors.New("some files could not be moved")

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "dlsort [flags] [path]",
		Short: "Sort a downloads folder into category subfolders",
		Long: `dlsort moves the files in a directory (by default ~/Downloads) into
subfolders by type (Documents, Images, Screenshots, ...) or by modification
date (Year/Month). Name collisions get a " (N)" suffix; nothing is ever
overwritten. Use --dry-run to preview and --monitor to keep sorting.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadConfigFile(v, cfgFile); err != nil {
				return err
			}
			if err := config.ApplyFlagOverrides(cmd.Flags(), v, args); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), &cfg, cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/dlsort/config.yaml)")
	if err := config.DefineFlags(cmd.Flags(), v); err != nil {
		panic(err)
	}
	cmd.AddCommand(versionCmd())
	return cmd
}

// run executes one invocation with a validated config. out receives the
// banner and summary box; log lines go through the logger.
func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close() //nolint:errcheck

	rules, err := naming.LoadRules(cfg.RulesFile)
	if err != nil {
		log.Error("%v", err)
		return err
	}

	display.PrintBanner(out, version)

	if cfg.CheckOnly {
		return check.RunCheck(cfg, rules, log)
	}

	runner := pipeline.NewRunner(cfg, rules, log)

	if cfg.Monitor {
		m := &pipeline.Monitor{
			Interval: cfg.Interval,
			Log:      log,
			Cycle: func(ctx context.Context) error {
				_, err := runner.RunCycle(ctx)
				return err
			},
		}
		if cfg.Watch {
			wake, err := pipeline.Watch(ctx, cfg.SourceDir, cfg.Debounce, log)
			if err != nil {
				log.Warn("File watching unavailable, using the interval only: %v", err)
			} else {
				m.Wake = wake
			}
		}
		m.Run(ctx)
		return nil
	}

	stats, err := runner.RunCycle(ctx)
	if err != nil {
		log.Error("%v", err)
		return err
	}
	_, _ = fmt.Fprintln(out, summaryBox(&stats))
	if stats.Failed > 0 {
		return fmt.Errorf("%w (%d failed)", errFailures, stats.Failed)
	}
	return nil
}

func summaryBox(stats *pipeline.RunStats) string {
	rows := []display.Row{
		{Label: "Scanned", Value: display.FormatCount(stats.Scanned)},
	}
	if stats.DryRun {
		rows = append(rows, display.Row{Label: "Would move", Value: display.FormatCount(stats.WouldMove)})
	} else {
		rows = append(rows, display.Row{Label: "Moved", Value: display.FormatCount(stats.Moved)})
	}
	rows = append(rows,
		display.Row{Label: "Size", Value: display.FormatBytes(stats.Bytes)},
		display.Row{Label: "Skipped", Value: display.FormatCount(stats.Skipped)},
		display.Row{Label: "Errors", Value: display.FormatCount(stats.Failed), Bad: stats.Failed > 0},
	)
	for _, cat := range stats.Categories() {
		rows = append(rows, display.Row{Label: "  " + cat, Value: display.FormatCount(stats.ByCategory[cat])})
	}

	title := "Organization complete"
	if stats.DryRun {
		title += " (dry run)"
	}
	return display.SummaryBox(title, rows)
}
