package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/dev-tools-mcp/internal/config"
	"github.com/ironsheep/dev-tools-mcp/internal/logger"
	"github.com/ironsheep/dev-tools-mcp/internal/server"
)

func serveCmd(opts *rootOptions, info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts, info)
		},
	}
}

func runServe(cmd *cobra.Command, opts *rootOptions, info BuildInfo) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	cleanup, err := logger.Setup(logger.Config{Level: cfg.LogLevel, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, info.Version)

	if path := watchPath(opts.configPath); path != "" {
		go func() {
			err := config.Watch(ctx, path, func(c *config.Config) {
				if opts.logLevel != "" {
					c.LogLevel = opts.logLevel
				}
				srv.Reload(c)
			}, func(err error) {
				logger.L().Warn("config.reload_failed", "path", path, "error", err)
			})
			if err != nil {
				logger.L().Warn("config.watch_failed", "path", path, "error", err)
			}
		}()
	}

	return srv.Run(ctx)
}

// watchPath is the config file to watch, or "" when there is none on disk.
func watchPath(flagPath string) string {
	path := flagPath
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return ""
	}
	return path
}
