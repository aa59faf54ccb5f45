package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"glinerd/internal/config"
	"glinerd/internal/httpapi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "glinerd:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command { return newRootCmdWith(&serveOptions{}) }

// newRootCmdWith builds the command tree around opts. The root runs serve
// when no subcommand is given.
func newRootCmdWith(opts *serveOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "glinerd",
		Short:         "GLiNER PII detection server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd)
		},
	}
	opts.bind(root)

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd)
		},
	}
	opts.bind(serve)

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the API version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), httpapi.Version)
		},
	}

	root.AddCommand(serve, newModelsCmd(), version)
	return root
}

// modelsDirDefault is the models directory from GLINER_MODELS_DIR or the default.
func modelsDirDefault() string {
	if v := os.Getenv(config.EnvModelsDir); v != "" {
		return v
	}
	return config.DefaultModelsDir
}
