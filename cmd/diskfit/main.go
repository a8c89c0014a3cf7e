package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/diskfit/diskfit/internal/config"
	"github.com/diskfit/diskfit/internal/linker"
	"github.com/diskfit/diskfit/internal/pack"
	"github.com/diskfit/diskfit/internal/pathutil"
	"github.com/diskfit/diskfit/internal/scan"
	"github.com/diskfit/diskfit/internal/stats"
	"github.com/diskfit/diskfit/internal/ui"
	"github.com/diskfit/diskfit/internal/unit"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// sizeFlag is a custom pflag.Value that parses the human-entered size
// string at flag time, so bad input surfaces as a usage error before any
// traversal starts.
type sizeFlag struct {
	bytes int64
	set   bool
}

var _ pflag.Value = (*sizeFlag)(nil)

func (f *sizeFlag) String() string {
	if !f.set {
		return ""
	}
	return unit.FormatSize(f.bytes)
}

func (f *sizeFlag) Type() string { return "size" }

func (f *sizeFlag) Set(val string) error {
	n, err := unit.ParseSize(val)
	if err != nil {
		return err
	}
	f.bytes = n
	f.set = true
	return nil
}

func run() int {
	var (
		size        sizeFlag
		destDir     string
		countOnly   bool
		recursive   bool
		verbose     bool
		quiet       bool
		logFile     string
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:   "diskfit --size SIZE [flags] <path>...",
		Short: "Fit files onto fixed-size disks and hardlink them into place",
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "diskfit %s\n", version)
				return nil
			}

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			applyConfigDefaults(cmd, cfg.Defaults, &size, &recursive, &verbose)

			if !size.set {
				return errors.New("--size is required")
			}
			capacity := size.bytes
			if capacity <= 0 {
				return errors.New("disk size is too small")
			}

			// Configure logging.
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			} else if !quiet {
				logLevel = slog.LevelInfo
			}
			textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			var logHandler slog.Handler = textHandler
			if logFile != "" {
				lf, lfErr := os.Create(logFile)
				if lfErr != nil {
					return fmt.Errorf("open log file: %w", lfErr)
				}
				defer lf.Close()
				jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
			}
			slog.SetDefault(slog.New(logHandler))

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			collector := stats.NewCollector()

			sc := scan.NewCollector(capacity, collector)
			for _, arg := range args {
				root := pathutil.Clean(arg)
				slog.Debug("collecting", "root", root, "recursive", recursive)
				if err := sc.Collect(ctx, root, recursive); err != nil {
					return err
				}
			}

			files := sc.Files()
			if len(files) == 0 {
				return errors.New("no files found")
			}

			disks := pack.NewPacker(capacity).Fit(files)
			collector.SetDisksPacked(int64(len(disks)))
			if len(disks) > pack.MaxDisks {
				return fmt.Errorf("fitting takes too many disks (%d > %d)", len(disks), pack.MaxDisks)
			}

			switch {
			case countOnly:
				ui.PrintCount(os.Stdout, len(disks))
			case destDir != "":
				lnk := linker.New(destDir, os.Stdout, collector)
				if err := lnk.Link(ctx, disks); err != nil {
					return err
				}
			default:
				ui.PrintReport(os.Stdout, disks, capacity)
			}

			slog.Debug("run complete", "stats", collector.Snapshot().String())
			return nil
		},
	}

	rootCmd.Flags().VarP(&size, "size", "s", "disk size, e.g. 700m, 4700m or 25g (required)")
	rootCmd.Flags().
		StringVarP(&destDir, "link", "l", "", "directory to hardlink files into (omit to print the layout)")
	rootCmd.Flags().
		BoolVarP(&countOnly, "count", "n", false, "print only the number of disks the fit takes")
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "search the given paths recursively")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress everything except errors and results")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write structured JSON log to FILE")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	rootCmd.AddCommand(docsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	size *sizeFlag,
	recursive *bool,
	verbose *bool,
) {
	if !cmd.Flags().Changed("size") && defaults.Size != nil {
		if err := size.Set(*defaults.Size); err != nil {
			slog.Warn("invalid size in config file", "value", *defaults.Size, "error", err)
		}
	}
	if !cmd.Flags().Changed("recursive") && defaults.Recursive != nil {
		*recursive = *defaults.Recursive
	}
	if !cmd.Flags().Changed("verbose") && defaults.Verbose != nil {
		*verbose = *defaults.Verbose
	}
}
