package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DeusData/viewcode/internal/pipeline"
)

var version = "dev"

// Persistent flag values.
var (
	configPath string
	verbose    bool
	dbPath     string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "viewcode",
		Short:         "Generate procedural Swift layout code from widget dumps",
		Long:          "viewcode turns a captured widget tree with its layout constraints into Swift code that rebuilds the same hierarchy in SnapKit, anchor or NSLayoutConstraint style. Without a subcommand it serves the tools over MCP on stdio.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(verbose)
		},
		RunE: runServeCommand,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: .viewcode.yaml next to the input)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "archive database (default: ~/.cache/viewcode/screens.db)")
	root.SetVersionTemplate("viewcode {{.Version}}\n")

	root.AddCommand(newGenerateCmd(), newBatchCmd(), newWatchCmd(), newServeCmd())
	return root
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func main() {
	pipeline.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle().Render("error: "+err.Error()))
		stop()
		os.Exit(1)
	}
}
