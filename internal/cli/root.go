// Package cli is the dev-tools-mcp command line. With no subcommand it runs
// the MCP server on stdio; the other subcommands run single tools directly.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/ironsheep/dev-tools-mcp/internal/config"
)

// BuildInfo is set by ldflags in main.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

type rootOptions struct {
	configPath string
	logLevel   string
	copy       bool
}

// Execute runs the root command and exits non-zero on failure.
func Execute(info BuildInfo) {
	cmd := newRootCmd(info)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(info BuildInfo) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "dev-tools-mcp",
		Short:        "Developer utilities as an MCP server and CLI",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts, info)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (.toml, .yaml); default "+config.DefaultPath())
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.copy, "copy", false, "also copy the result to the clipboard")

	cmd.AddCommand(
		serveCmd(opts, info),
		versionCmd(info),
		convertCmd(opts),
		unitsCmd(),
		colorCmd(opts),
		passwordCmd(opts),
		markdownCmd(opts),
		pomodoroCmd(opts),
	)
	return cmd
}

// loadConfig loads the configured file and applies the --log-level flag.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// emit prints text and, with --copy, places it on the clipboard.
func (o *rootOptions) emit(w io.Writer, text string) error {
	fmt.Fprintln(w, text)
	if o.copy {
		if err := writeClipboard(text); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
	}
	return nil
}

func versionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "dev-tools-mcp %s\n", info.Version)
			fmt.Fprintf(w, "  Build time: %s\n", info.BuildTime)
			fmt.Fprintf(w, "  Git commit: %s\n", info.GitCommit)
		},
	}
}
