package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/excise"
	logAdapter "github.com/bft-labs/excise/internal/adapters/log"
	"github.com/bft-labs/excise/internal/cliconfig"
)

const longHelp = `Remove a known block of corrupted or duplicated lines from a text file.

Lines [keep-start, resume-at) are dropped and the file is rewritten in place.
Files with fewer than min-lines lines are left untouched, so running the
repair a second time is refused.

Configure via $HOME/.excise/config.toml, EXCISE_* environment variables or flags.`

var exampleUsage = strings.TrimSpace(`
  excise app/globals.css
  excise --file app/globals.css --keep-start 720 --resume-at 915 --min-lines 900
  excise --dry-run --atomic app/globals.css
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	log := logAdapter.NewConsoleLogger(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(log, os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("excise")
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the excise command. Diagnostics go to log and dry-run
// diffs to out.
func newRootCmd(log zerolog.Logger, out io.Writer) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "excise [file]",
		Short:         "Remove a fixed range of lines from a text file",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			// A positional path counts as setting --file
			if len(args) == 1 {
				cfg.File = args[0]
				changed["file"] = true
			}

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && (cfgPath != "" || cliconfig.FileExists(cfgFile)) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment overrides file config but not flags
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			log.Debug().Interface("config", cfg).Msg("configuration")

			_, err := excise.Repair(cmd.Context(), cfg,
				excise.WithLogger(logAdapter.NewZerologAdapterWithLogger(log)),
				excise.WithDiffOutput(out),
			)
			return err
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.excise/config.toml)")
	root.Flags().StringVar(&cfg.File, "file", cfg.File, "file to repair")
	root.Flags().IntVar(&cfg.KeepStart, "keep-start", cfg.KeepStart, "index of the first line to remove (0-based)")
	root.Flags().IntVar(&cfg.KeepResumeAt, "resume-at", cfg.KeepResumeAt, "index of the first line kept after the removed block")
	root.Flags().IntVar(&cfg.MinLines, "min-lines", cfg.MinLines, "abort without changes if the file has fewer lines")
	root.Flags().BoolVar(&cfg.Atomic, "atomic", cfg.Atomic, "write to a temp file and rename over the original")
	root.Flags().BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "print a unified diff instead of writing")

	return root
}
