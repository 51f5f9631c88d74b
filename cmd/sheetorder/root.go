package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ukaji3/sheetorder-go/pkg/sheetorder"
)

const envPrefix = "SHEETORDER"

// Flag names, also used as viper keys.
const (
	flagProjectRoot = "project-root"
	flagWorkers     = "workers"
	flagDryRun      = "dry-run"
	flagVerbose     = "verbose"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "sheetorder [config.yml]",
		Short: "Normalize worksheet tab order across Excel workbooks",
		Long: `sheetorder reorders the worksheets of every matching workbook under the
configured directories so they follow the canonical order file. Sheets missing
from the order file keep their relative order to the right of ranked sheets.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), v.GetBool(flagVerbose))
			err := run(cmd, v, logger, args)
			if err != nil {
				logger.Error("command failed", "error", err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.String(flagProjectRoot, "", "Project root all config paths are relative to (default: working directory)")
	flags.Int(flagWorkers, 0, "Number of workbooks processed concurrently (default: number of CPUs)")
	flags.Bool(flagDryRun, false, "Report planned changes without saving any workbook")
	flags.BoolP(flagVerbose, "v", false, "Enable debug logging")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper, logger *slog.Logger, args []string) error {
	configPath := args[0]
	for i, arg := range os.Args[1:] {
		logger.Debug("argument", "index", i, "value", arg)
	}

	opts := sheetorder.Options{
		ProjectRoot: v.GetString(flagProjectRoot),
		Workers:     v.GetInt(flagWorkers),
		DryRun:      v.GetBool(flagDryRun),
		Logger:      logger,
	}
	if opts.Workers < 0 {
		return fmt.Errorf("invalid --%s: %d (must be >= 0)", flagWorkers, opts.Workers)
	}

	report, err := sheetorder.Run(cmd.Context(), configPath, opts)
	if report != nil {
		printSummary(cmd.OutOrStdout(), report)
	}
	return err
}

// newLogger builds the text logger shared by every component.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
